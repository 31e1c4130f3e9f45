package source

import "daily-briefing/internal/domain/entity"

// request is the body of create and update calls. Omitted fields are left unchanged on update.
type request struct {
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	Type     entity.SourceType `json:"type"`
	Category string            `json:"category"`
	Enabled  *bool             `json:"enabled"`
}
