package service

import (
	"context"
	"sync"
	"time"

	"portfolio-cms-be/internal/dto"
	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/memory"
	"portfolio-cms-be/internal/repository/unitofwork"
	"portfolio-cms-be/pkg/clock"
	"portfolio-cms-be/pkg/discovery"
	"portfolio-cms-be/pkg/search"

	"github.com/google/uuid"
)

type IDiscoveryService interface {
	Open(ctx context.Context, req *dto.OpenDiscoveryRequest) (*dto.DiscoveryResponse, error)
	Show(ctx context.Context, sessionId string) (*dto.DiscoveryResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.DiscoveryResponse, error)
	SetTaxonomy(ctx context.Context, req *dto.TaxonomyRequest) (*dto.DiscoveryResponse, error)
	SetTags(ctx context.Context, req *dto.TagsRequest) (*dto.DiscoveryResponse, error)
	ToggleTag(ctx context.Context, req *dto.ToggleTagRequest) (*dto.DiscoveryResponse, error)
	LoadMore(ctx context.Context, sessionId string) (*dto.DiscoveryResponse, error)
	// RefreshKind reloads every open session showing kind.
	RefreshKind(ctx context.Context, kind entity.ContentKind) int
	Close(ctx context.Context, sessionId string) error
}

type DiscoveryConfig struct {
	PageSize    int
	Debounce    time.Duration
	DefaultLang entity.Lang
	SessionTTL  time.Duration
	Clock       clock.Clock
}

type discoverySession struct {
	id     string
	kind   entity.ContentKind
	lang   entity.Lang
	engine *discovery.Engine[entity.Discoverable]

	// mu guards which filters came from an inline query, so a later query
	// without them can clear them.
	mu             sync.Mutex
	inlineTaxonomy bool
	inlineTags     bool
}

func (s *discoverySession) SessionId() string {
	return s.id
}

type discoveryService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository[*discoverySession]
	matcher    *search.Matcher
	cfg        DiscoveryConfig
	logger     logger.ILogger
}

func NewDiscoveryService(
	uowFactory unitofwork.RepositoryFactory,
	cfg DiscoveryConfig,
	l logger.ILogger,
) IDiscoveryService {
	if cfg.DefaultLang == "" {
		cfg.DefaultLang = entity.DefaultLang
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	sessions := memory.NewSessionRepository[*discoverySession](cfg.SessionTTL)
	sessions.OnEvicted(func(s *discoverySession) { s.engine.Close() })
	return &discoveryService{
		uowFactory: uowFactory,
		sessions:   sessions,
		matcher:    search.NewMatcher(),
		cfg:        cfg,
		logger:     l,
	}
}

func (c *discoveryService) Open(ctx context.Context, req *dto.OpenDiscoveryRequest) (*dto.DiscoveryResponse, error) {
	kind := entity.ContentKind(req.Kind)
	if !kind.Valid() {
		return nil, ErrUnknownContentKind
	}
	repo, err := c.uowFactory.NewUnitOfWork(ctx).Content(kind)
	if err != nil {
		return nil, err
	}
	lang := c.cfg.DefaultLang
	if req.Lang != "" {
		lang = entity.ParseLang(req.Lang)
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = c.cfg.PageSize
	}

	s := &discoverySession{
		id:   uuid.NewString(),
		kind: kind,
		lang: lang,
		engine: discovery.New[entity.Discoverable](repo, discovery.Config{
			Lang:     lang,
			Debounce: c.cfg.Debounce,
			PageSize: pageSize,
			Clock:    c.cfg.Clock,
			Matcher:  c.matcher,
			Logger:   c.logger,
		}),
	}
	if err := s.engine.Reset(ctx); err != nil {
		c.logger.Error(logModule, "discovery fetch failed", map[string]interface{}{
			"kind":  string(kind),
			"error": err,
		})
		return nil, err
	}
	c.sessions.Save(s)
	return c.view(s), nil
}

func (c *discoveryService) Show(ctx context.Context, sessionId string) (*dto.DiscoveryResponse, error) {
	s, ok := c.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c.view(s), nil
}

// Search applies inline filters from the query at once and debounces the
// remaining text. Filters set inline earlier are cleared when the new
// query no longer carries them.
func (c *discoveryService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.DiscoveryResponse, error) {
	s, ok := c.sessions.Get(req.SessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	parsed := search.ParseQuery(req.Query)

	s.mu.Lock()
	switch {
	case parsed.HasTaxonomy():
		s.engine.SetTaxonomy(discovery.Taxonomy{
			GoalId:    parsed.GoalId,
			OutcomeId: parsed.OutcomeId,
			Level:     entity.Level(parsed.Level),
		})
		s.inlineTaxonomy = true
	case s.inlineTaxonomy:
		s.engine.SetTaxonomy(discovery.Taxonomy{})
		s.inlineTaxonomy = false
	}
	switch {
	case len(parsed.Tags) > 0:
		s.engine.SetTags(parsed.Tags)
		s.inlineTags = true
	case s.inlineTags:
		s.engine.SetTags(nil)
		s.inlineTags = false
	}
	s.mu.Unlock()

	s.engine.SetSearchQuery(parsed.Text)
	if req.Submit {
		s.engine.Flush()
	}
	return c.view(s), nil
}

func (c *discoveryService) SetTaxonomy(ctx context.Context, req *dto.TaxonomyRequest) (*dto.DiscoveryResponse, error) {
	s, ok := c.sessions.Get(req.SessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	s.inlineTaxonomy = false
	s.mu.Unlock()

	s.engine.SetTaxonomy(discovery.Taxonomy{
		GoalId:    req.GoalId,
		OutcomeId: req.OutcomeId,
		Level:     entity.Level(req.Level),
	})
	return c.view(s), nil
}

func (c *discoveryService) SetTags(ctx context.Context, req *dto.TagsRequest) (*dto.DiscoveryResponse, error) {
	s, ok := c.sessions.Get(req.SessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	s.inlineTags = false
	s.mu.Unlock()

	s.engine.SetTags(req.Tags)
	return c.view(s), nil
}

func (c *discoveryService) ToggleTag(ctx context.Context, req *dto.ToggleTagRequest) (*dto.DiscoveryResponse, error) {
	s, ok := c.sessions.Get(req.SessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.engine.ToggleTag(req.Tag)
	return c.view(s), nil
}

func (c *discoveryService) LoadMore(ctx context.Context, sessionId string) (*dto.DiscoveryResponse, error) {
	s, ok := c.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := s.engine.LoadMore(ctx); err != nil {
		c.logger.Error(logModule, "discovery load more failed", map[string]interface{}{
			"session": s.id,
			"error":   err,
		})
		return nil, err
	}
	return c.view(s), nil
}

func (c *discoveryService) RefreshKind(ctx context.Context, kind entity.ContentKind) int {
	refreshed := 0
	c.sessions.Each(func(s *discoverySession) {
		if s.kind != kind {
			return
		}
		if err := s.engine.Reset(ctx); err != nil {
			c.logger.Warn(logModule, "discovery refresh failed", map[string]interface{}{
				"session": s.id,
				"error":   err.Error(),
			})
			return
		}
		refreshed++
	})
	return refreshed
}

func (c *discoveryService) Close(ctx context.Context, sessionId string) error {
	if _, ok := c.sessions.Get(sessionId); !ok {
		return ErrSessionNotFound
	}
	c.sessions.Delete(sessionId)
	return nil
}

func (c *discoveryService) view(s *discoverySession) *dto.DiscoveryResponse {
	v := s.engine.View()
	return &dto.DiscoveryResponse{
		SessionId: s.id,
		Kind:      string(s.kind),
		Lang:      string(s.lang),
		State:     s.engine.State().String(),
		Seq:       v.Seq,
		Query:     v.Query,
		Tags:      v.Filter.Tags.Sorted(),
		Taxonomy: dto.TaxonomyView{
			GoalId:    v.Filter.Taxonomy.GoalId,
			OutcomeId: v.Filter.Taxonomy.OutcomeId,
			Level:     string(v.Filter.Taxonomy.Level),
		},
		Items:   toContentItems(v.Items, s.kind, s.lang),
		Loaded:  v.Loaded,
		HasMore: v.HasMore,
	}
}
