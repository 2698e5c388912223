package service

import (
	"context"
	"sync"
	"time"

	"portfolio-cms-be/internal/dto"
	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/internal/repository/memory"
	"portfolio-cms-be/internal/repository/unitofwork"
	"portfolio-cms-be/pkg/bulk"
	"portfolio-cms-be/pkg/events"
	"portfolio-cms-be/pkg/grid"
	"portfolio-cms-be/pkg/query"

	"github.com/google/uuid"
)

const logModule = "SERVICE"

var adminSortableFields = []string{
	entity.FieldId,
	entity.FieldTitle,
	entity.FieldStatus,
	entity.FieldCreatedAt,
	entity.FieldUpdatedAt,
	entity.FieldPublishedAt,
	entity.FieldPinned,
	entity.FieldFeatured,
	entity.FieldLevel,
	"slug",
	"album",
	"taken_at",
	"post_count",
}

type IAdminListService interface {
	Open(ctx context.Context, req *dto.OpenAdminListRequest) (*dto.AdminListResponse, error)
	Show(ctx context.Context, sessionId string) (*dto.AdminListResponse, error)
	Refresh(ctx context.Context, sessionId string) (*dto.AdminListResponse, error)
	SwitchKind(ctx context.Context, req *dto.SwitchKindRequest) (*dto.AdminListResponse, error)
	Sort(ctx context.Context, req *dto.SortRequest) (*dto.AdminListResponse, error)
	Filter(ctx context.Context, req *dto.FilterRequest) (*dto.AdminListResponse, error)
	Page(ctx context.Context, req *dto.PageRequest) (*dto.AdminListResponse, error)
	ToggleSelect(ctx context.Context, req *dto.SelectRequest) (*dto.AdminListResponse, error)
	SelectAll(ctx context.Context, req *dto.SelectAllRequest) (*dto.AdminListResponse, error)
	ClearSelection(ctx context.Context, sessionId string) (*dto.AdminListResponse, error)
	RunBulkAction(ctx context.Context, req *dto.BulkActionRequest) (*dto.BulkActionResponse, error)
	Close(ctx context.Context, sessionId string) error
}

type AdminListConfig struct {
	PageSize    int
	DefaultLang entity.Lang
	SessionTTL  time.Duration
}

// adminSession is one open admin table. mu serializes requests against it
// so a reload never interleaves with a bulk run.
type adminSession struct {
	mu   sync.Mutex
	id   string
	kind entity.ContentKind
	lang entity.Lang
	grid *grid.Engine[entity.Discoverable]
}

func (s *adminSession) SessionId() string {
	return s.id
}

type adminListService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessions    *memory.SessionRepository[*adminSession]
	coordinator *bulk.Coordinator
	publisher   IPublisherService
	cfg         AdminListConfig
	logger      logger.ILogger
}

func NewAdminListService(
	uowFactory unitofwork.RepositoryFactory,
	coordinator *bulk.Coordinator,
	publisher IPublisherService,
	cfg AdminListConfig,
	l logger.ILogger,
) IAdminListService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = query.DefaultPageSize
	}
	if cfg.DefaultLang == "" {
		cfg.DefaultLang = entity.DefaultLang
	}
	return &adminListService{
		uowFactory:  uowFactory,
		sessions:    memory.NewSessionRepository[*adminSession](cfg.SessionTTL),
		coordinator: coordinator,
		publisher:   publisher,
		cfg:         cfg,
		logger:      l,
	}
}

func (c *adminListService) Open(ctx context.Context, req *dto.OpenAdminListRequest) (*dto.AdminListResponse, error) {
	kind := entity.ContentKind(req.Kind)
	if !kind.Valid() {
		return nil, ErrUnknownContentKind
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = c.cfg.PageSize
	}
	lang := c.cfg.DefaultLang
	if req.Lang != "" {
		lang = entity.ParseLang(req.Lang)
	}

	s := &adminSession{
		id:   uuid.NewString(),
		kind: kind,
		lang: lang,
		grid: grid.New[entity.Discoverable](grid.Config{
			PageSize:       pageSize,
			SortableFields: adminSortableFields,
			Logger:         c.logger,
		}),
	}
	if err := c.load(ctx, s); err != nil {
		return nil, err
	}
	c.sessions.Save(s)

	c.logger.Info(logModule, "admin list opened", map[string]interface{}{"session": s.id, "kind": string(kind)})
	return c.view(s), nil
}

func (c *adminListService) Show(ctx context.Context, sessionId string) (*dto.AdminListResponse, error) {
	return c.with(sessionId, func(s *adminSession) error { return nil })
}

func (c *adminListService) Refresh(ctx context.Context, sessionId string) (*dto.AdminListResponse, error) {
	return c.with(sessionId, func(s *adminSession) error { return c.load(ctx, s) })
}

func (c *adminListService) SwitchKind(ctx context.Context, req *dto.SwitchKindRequest) (*dto.AdminListResponse, error) {
	kind := entity.ContentKind(req.Kind)
	if !kind.Valid() {
		return nil, ErrUnknownContentKind
	}
	return c.with(req.SessionId, func(s *adminSession) error {
		prev := s.kind
		s.kind = kind
		if err := c.load(ctx, s); err != nil {
			s.kind = prev
			return err
		}
		return nil
	})
}

func (c *adminListService) Sort(ctx context.Context, req *dto.SortRequest) (*dto.AdminListResponse, error) {
	return c.with(req.SessionId, func(s *adminSession) error {
		s.grid.SetSort(req.Key, req.Direction)
		return nil
	})
}

func (c *adminListService) Filter(ctx context.Context, req *dto.FilterRequest) (*dto.AdminListResponse, error) {
	return c.with(req.SessionId, func(s *adminSession) error {
		s.grid.SetFilter(query.FilterPatch{
			Status:     req.Status,
			Level:      req.Level,
			Tags:       req.Tags,
			TaxonomyId: req.TaxonomyId,
			FreeText:   req.Query,
		})
		return nil
	})
}

func (c *adminListService) Page(ctx context.Context, req *dto.PageRequest) (*dto.AdminListResponse, error) {
	return c.with(req.SessionId, func(s *adminSession) error {
		if req.Size != nil {
			s.grid.SetPageSize(*req.Size)
		}
		if req.Index != nil {
			s.grid.SetPage(*req.Index)
		}
		return nil
	})
}

func (c *adminListService) ToggleSelect(ctx context.Context, req *dto.SelectRequest) (*dto.AdminListResponse, error) {
	return c.with(req.SessionId, func(s *adminSession) error {
		s.grid.ToggleSelect(req.Id)
		return nil
	})
}

func (c *adminListService) SelectAll(ctx context.Context, req *dto.SelectAllRequest) (*dto.AdminListResponse, error) {
	return c.with(req.SessionId, func(s *adminSession) error {
		s.grid.SelectAll(grid.Scope(req.Scope))
		return nil
	})
}

func (c *adminListService) ClearSelection(ctx context.Context, sessionId string) (*dto.AdminListResponse, error) {
	return c.with(sessionId, func(s *adminSession) error {
		s.grid.ClearSelection()
		return nil
	})
}

// RunBulkAction mutates every target id independently, then re-lists the
// dataset under the same key so the selection survives, and announces
// the run.
func (c *adminListService) RunBulkAction(ctx context.Context, req *dto.BulkActionRequest) (*dto.BulkActionResponse, error) {
	patch, err := bulkPatch(req.Action, req.Tag)
	if err != nil {
		return nil, err
	}
	s, ok := c.sessions.Get(req.SessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := req.Ids
	if len(ids) == 0 {
		ids = s.grid.Selection()
	}
	if len(ids) == 0 {
		return nil, ErrNothingSelected
	}

	repo, err := c.uowFactory.NewUnitOfWork(ctx).Content(s.kind)
	if err != nil {
		return nil, err
	}
	result := c.coordinator.Run(ctx, ids, func(ctx context.Context, id string) error {
		return repo.Mutate(ctx, id, patch)
	})

	if err := c.load(ctx, s); err != nil {
		c.logger.Error(logModule, "reload after bulk action failed", map[string]interface{}{
			"session": s.id,
			"error":   err,
		})
	}

	if len(result.Succeeded) > 0 && c.publisher != nil {
		evt := events.BulkUpdated{
			Kind:      string(s.kind),
			Action:    req.Action,
			Succeeded: result.Succeeded,
			Failed:    result.FailedIds(),
		}
		if err := c.publisher.PublishBulkUpdated(ctx, evt); err != nil {
			c.logger.Error(logModule, "publish bulk update failed", map[string]interface{}{"error": err})
		}
	}

	failed := make([]dto.BulkFailure, 0, len(result.Failed))
	for _, f := range result.Failed {
		failed = append(failed, dto.BulkFailure{Id: f.Id, Reason: f.Reason})
	}
	return &dto.BulkActionResponse{
		Action:    req.Action,
		Succeeded: result.Succeeded,
		Failed:    failed,
		List:      *c.view(s),
	}, nil
}

func (c *adminListService) Close(ctx context.Context, sessionId string) error {
	if _, ok := c.sessions.Get(sessionId); !ok {
		return ErrSessionNotFound
	}
	c.sessions.Delete(sessionId)
	return nil
}

func (c *adminListService) with(sessionId string, fn func(s *adminSession) error) (*dto.AdminListResponse, error) {
	s, ok := c.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s); err != nil {
		return nil, err
	}
	return c.view(s), nil
}

// load fetches every record of the session's kind. The kind is the
// dataset key, so a reload keeps the selection and a kind switch clears it.
func (c *adminListService) load(ctx context.Context, s *adminSession) error {
	repo, err := c.uowFactory.NewUnitOfWork(ctx).Content(s.kind)
	if err != nil {
		return err
	}
	page, err := repo.List(ctx, contract.ListQuery{})
	if err != nil {
		c.logger.Error(logModule, "admin list fetch failed", map[string]interface{}{
			"kind":  string(s.kind),
			"error": err,
		})
		return err
	}
	s.grid.SetDataset(string(s.kind), page.Items)
	return nil
}

func (c *adminListService) view(s *adminSession) *dto.AdminListResponse {
	v := s.grid.Snapshot()
	return &dto.AdminListResponse{
		SessionId:     s.id,
		Kind:          string(s.kind),
		Items:         toContentItems(v.Items, s.kind, s.lang),
		PageIndex:     v.PageIndex,
		PageSize:      v.PageSize,
		PageCount:     v.PageCount,
		FilteredCount: v.FilteredCount,
		TotalCount:    v.TotalCount,
		Sort:          dto.SortView{Key: v.Sort.Key, Direction: string(v.Sort.Direction)},
		Filter: dto.FilterView{
			Status:     string(v.Filter.Status),
			Level:      string(v.Filter.Level),
			Tags:       v.Filter.Tags.Sorted(),
			TaxonomyId: v.Filter.TaxonomyId,
			Query:      v.Filter.FreeText,
		},
		SelectedIds: v.SelectedIds,
	}
}
