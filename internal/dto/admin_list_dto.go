package dto

type OpenAdminListRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=post insight series photo"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=100"`
	Lang     string `json:"lang" validate:"omitempty,oneof=vi en"`
}

type SwitchKindRequest struct {
	SessionId string
	Kind      string `json:"kind" validate:"required,oneof=post insight series photo"`
}

type SortRequest struct {
	SessionId string
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// FilterRequest patches the grid filter. Omitted fields keep their value;
// "all" clears a category.
type FilterRequest struct {
	SessionId  string
	Status     *string   `json:"status"`
	Level      *string   `json:"level"`
	Tags       *[]string `json:"tags"`
	TaxonomyId *string   `json:"taxonomy_id"`
	Query      *string   `json:"query"`
}

type PageRequest struct {
	SessionId string
	Index     *int `json:"index" validate:"omitempty,min=0"`
	Size      *int `json:"size" validate:"omitempty,min=1,max=100"`
}

type SelectRequest struct {
	SessionId string
	Id        string `json:"id" validate:"required"`
}

type SelectAllRequest struct {
	SessionId string
	Scope     string `json:"scope" validate:"required,oneof=visible all_matching"`
}

// BulkActionRequest runs Action over Ids, or over the current selection
// when Ids is empty.
type BulkActionRequest struct {
	SessionId string
	Action    string   `json:"action" validate:"required,oneof=publish unpublish pin unpin feature unfeature add_tag remove_tag"`
	Tag       string   `json:"tag" validate:"required_if=Action add_tag,required_if=Action remove_tag"`
	Ids       []string `json:"ids"`
}

type SortView struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

type FilterView struct {
	Status     string   `json:"status"`
	Level      string   `json:"level"`
	Tags       []string `json:"tags"`
	TaxonomyId string   `json:"taxonomy_id"`
	Query      string   `json:"query"`
}

type AdminListResponse struct {
	SessionId     string        `json:"session_id"`
	Kind          string        `json:"kind"`
	Items         []ContentItem `json:"items"`
	PageIndex     int           `json:"page_index"`
	PageSize      int           `json:"page_size"`
	PageCount     int           `json:"page_count"`
	FilteredCount int           `json:"filtered_count"`
	TotalCount    int           `json:"total_count"`
	Sort          SortView      `json:"sort"`
	Filter        FilterView    `json:"filter"`
	SelectedIds   []string      `json:"selected_ids"`
}

type BulkFailure struct {
	Id     string `json:"id"`
	Reason string `json:"reason"`
}

type BulkActionResponse struct {
	Action    string            `json:"action"`
	Succeeded []string          `json:"succeeded"`
	Failed    []BulkFailure     `json:"failed"`
	List      AdminListResponse `json:"list"`
}
