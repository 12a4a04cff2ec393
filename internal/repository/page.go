package repository

import "encoding/json"

// PageOptions controls Paginate. The zero value means page 1, limit 10,
// pagination on, default labels.
type PageOptions struct {
	Page  int
	Limit int
	// Unpaged disables slicing: every matching document is returned and the
	// result collapses to a single page.
	Unpaged bool
	// CustomLabels remaps the JSON keys of the page envelope.
	CustomLabels *CustomLabels
}

// Normalized applies the defaults: page 1, limit 10.
func (o PageOptions) Normalized() PageOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 10
	}
	return o
}

// CustomLabels renames page envelope keys on marshal. Empty entries keep the
// default name.
type CustomLabels struct {
	Docs          string
	TotalDocs     string
	Limit         string
	Page          string
	TotalPages    string
	HasNextPage   string
	HasPrevPage   string
	NextPage      string
	PrevPage      string
	PagingCounter string
}

// PageResult is one page of documents plus navigation metadata, recomputed
// per query and never persisted.
type PageResult[T any] struct {
	Docs          []T    `json:"docs"`
	TotalDocs     int64  `json:"totalDocs"`
	Limit         int    `json:"limit"`
	Page          int    `json:"page"`
	TotalPages    int    `json:"totalPages"`
	HasNextPage   bool   `json:"hasNextPage"`
	HasPrevPage   bool   `json:"hasPrevPage"`
	NextPage      *int   `json:"nextPage"`
	PrevPage      *int   `json:"prevPage"`
	PagingCounter int64  `json:"pagingCounter"`

	labels *CustomLabels
}

// NewPageResult derives the navigation metadata from the page slice and the
// total count produced by the facet pass.
func NewPageResult[T any](docs []T, totalDocs int64, page, limit int) *PageResult[T] {
	if docs == nil {
		docs = []T{}
	}
	totalPages := int((totalDocs + int64(limit) - 1) / int64(limit))

	r := &PageResult[T]{
		Docs:          docs,
		TotalDocs:     totalDocs,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
		PagingCounter: int64(page-1)*int64(limit) + 1,
	}
	if r.HasNextPage {
		next := page + 1
		r.NextPage = &next
	}
	if r.HasPrevPage {
		prev := page - 1
		r.PrevPage = &prev
	}
	return r
}

// WithLabels attaches custom labels applied on marshal.
func (r *PageResult[T]) WithLabels(labels *CustomLabels) *PageResult[T] {
	r.labels = labels
	return r
}

// MarshalJSON writes the envelope, remapping keys through the custom labels
// when present.
func (r *PageResult[T]) MarshalJSON() ([]byte, error) {
	labels := r.labels
	if labels == nil {
		labels = &CustomLabels{}
	}
	out := map[string]any{
		label(labels.Docs, "docs"):                   r.Docs,
		label(labels.TotalDocs, "totalDocs"):         r.TotalDocs,
		label(labels.Limit, "limit"):                 r.Limit,
		label(labels.Page, "page"):                   r.Page,
		label(labels.TotalPages, "totalPages"):       r.TotalPages,
		label(labels.HasNextPage, "hasNextPage"):     r.HasNextPage,
		label(labels.HasPrevPage, "hasPrevPage"):     r.HasPrevPage,
		label(labels.NextPage, "nextPage"):           r.NextPage,
		label(labels.PrevPage, "prevPage"):           r.PrevPage,
		label(labels.PagingCounter, "pagingCounter"): r.PagingCounter,
	}
	return json.Marshal(out)
}

func label(custom, def string) string {
	if custom != "" {
		return custom
	}
	return def
}
