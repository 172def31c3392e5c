package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nvoronin/daybook/internal/models"
)

// WindowFunc bounds a pull to a date-key range. Nil means unbounded; only
// the day-pins collection uses a window.
type WindowFunc func() (from, to string)

// Collection gives the sync engine remote access to one record collection.
type Collection[T models.Record] struct {
	client *Client
	kind   models.Kind
	window WindowFunc
}

func NewCollection[T models.Record](client *Client, kind models.Kind, window WindowFunc) *Collection[T] {
	return &Collection[T]{client: client, kind: kind, window: window}
}

// Pull fetches the owner's records, keyed by id. An empty partition yields
// an empty non-nil snapshot, which callers must treat as a successful pull.
func (c *Collection[T]) Pull(ctx context.Context, owner string) (models.Snapshot[T], error) {
	u := fmt.Sprintf("%s/api/v1/%s/records?owner=%s", c.client.baseURL, c.kind, url.QueryEscape(owner))
	if c.window != nil {
		from, to := c.window()
		if from != "" {
			u += "&from=" + url.QueryEscape(from)
		}
		if to != "" {
			u += "&to=" + url.QueryEscape(to)
		}
	}

	body, err := c.client.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode %s records: %w", c.kind, err)
	}

	snap := make(models.Snapshot[T], len(records))
	for _, r := range records {
		snap[r.Key()] = r
	}
	return snap, nil
}

// Push upserts the given records into the owner's partition. A zero-length
// batch is a no-op.
func (c *Collection[T]) Push(ctx context.Context, owner string, records []T) error {
	if len(records) == 0 {
		return nil
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s records: %w", c.kind, err)
	}

	u := fmt.Sprintf("%s/api/v1/%s/records?owner=%s", c.client.baseURL, c.kind, url.QueryEscape(owner))
	_, err = c.client.do(ctx, http.MethodPost, u, payload)
	return err
}

// Delete removes one record from the owner's partition on the server. Local
// deletion is a tombstone; this hard delete exists for explicit purges.
func (c *Collection[T]) Delete(ctx context.Context, owner, id string) error {
	u := fmt.Sprintf("%s/api/v1/%s/records/%s?owner=%s",
		c.client.baseURL, c.kind, url.PathEscape(id), url.QueryEscape(owner))
	_, err := c.client.do(ctx, http.MethodDelete, u, nil)
	return err
}
