package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/inovacc/shelfr/internal/model"
)

// Page is one window of a collection, normalized from either response
// shape the store serves.
type Page[E model.Entity] struct {
	Items []E

	// TotalCount is the size of the whole filtered collection, not of
	// Items.
	TotalCount int

	// ServerPaged is false when the store returned the whole collection
	// and the window was cut client-side.
	ServerPaged bool
}

// Resource is the typed API surface for one entity collection rooted at
// basePath (e.g. /authors).
type Resource[E model.Entity] struct {
	client   *Client
	basePath string
}

// NewResource creates the resource for basePath.
func NewResource[E model.Entity](client *Client, basePath string) *Resource[E] {
	return &Resource[E]{client: client, basePath: basePath}
}

// BasePath returns the collection path this resource is rooted at.
func (r *Resource[E]) BasePath() string { return r.basePath }

// List fetches one page of the collection filtered by query. The inquiry
// parameter is omitted when the query is empty. Stores answer either with
// a {content, totalElements} envelope or with a bare array; the bare
// array is windowed here so callers always see at most size items.
func (r *Resource[E]) List(ctx context.Context, query string, page, size int) (Page[E], error) {
	params := url.Values{}
	if query != "" {
		params.Set("inquiry", query)
	}

	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, r.basePath, params, nil, &raw); err != nil {
		return Page[E]{}, err
	}

	return normalizePage[E](raw, page, size)
}

// Get fetches a single record by id.
func (r *Resource[E]) Get(ctx context.Context, id string) (E, error) {
	var out E

	err := r.client.do(ctx, http.MethodGet, r.basePath+"/"+id, nil, nil, &out)

	return out, err
}

// Create stores a draft; the store assigns the id.
func (r *Resource[E]) Create(ctx context.Context, draft E) (E, error) {
	var out E

	err := r.client.do(ctx, http.MethodPost, r.basePath, nil, draft, &out)

	return out, err
}

// Update replaces the record at id with the full record body.
func (r *Resource[E]) Update(ctx context.Context, id string, record E) (E, error) {
	var out E

	err := r.client.do(ctx, http.MethodPut, r.basePath+"/"+id, nil, record, &out)

	return out, err
}

// Patch sends a partial same-record update, used by inline row edits.
func (r *Resource[E]) Patch(ctx context.Context, id string, fields map[string]any) (E, error) {
	var out E

	err := r.client.do(ctx, http.MethodPut, r.basePath+"/"+id, nil, fields, &out)

	return out, err
}

// BulkDelete removes all given ids in one batch request. The store
// contract is all-or-nothing; any failure means nothing is reported as
// deleted.
func (r *Resource[E]) BulkDelete(ctx context.Context, ids []string) error {
	return r.client.do(ctx, http.MethodPost, r.basePath+"/bulk-delete", nil, ids, nil)
}

func normalizePage[E model.Entity](raw json.RawMessage, page, size int) (Page[E], error) {
	trimmedBody := bytes.TrimSpace(raw)

	if len(trimmedBody) > 0 && trimmedBody[0] == '[' {
		var all []E
		if err := json.Unmarshal(trimmedBody, &all); err != nil {
			return Page[E]{}, fmt.Errorf("failed to decode list response: %w", err)
		}

		return Page[E]{
			Items:      window(all, page, size),
			TotalCount: len(all),
		}, nil
	}

	var envelope struct {
		Content       []E `json:"content"`
		TotalElements int `json:"totalElements"`
	}

	if err := json.Unmarshal(trimmedBody, &envelope); err != nil {
		return Page[E]{}, fmt.Errorf("failed to decode list response: %w", err)
	}

	return Page[E]{
		Items:       envelope.Content,
		TotalCount:  envelope.TotalElements,
		ServerPaged: true,
	}, nil
}

func window[E model.Entity](all []E, page, size int) []E {
	start := page * size
	if start >= len(all) {
		return nil
	}

	end := start + size
	if end > len(all) {
		end = len(all)
	}

	return all[start:end]
}
