package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// PageRenderer rebuilds the payload for a cached path.
type PageRenderer interface {
	RenderPath(ctx context.Context, path string) ([]byte, error)
}

// PageStore receives rebuilt payloads.
type PageStore interface {
	Put(path string, payload []byte)
}

// RefreshPageTask rebuilds one invalidated page cache entry.
type RefreshPageTask struct {
	Path string `json:"path"`
}

// Config returns the queue configuration for page refresh tasks.
func (t RefreshPageTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_page",
		MaxAttempts: 3,
		Backoff:     10 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshPageProcessor creates the processor for RefreshPageTask.
func RefreshPageProcessor(renderer PageRenderer, store PageStore) backlite.QueueProcessor[RefreshPageTask] {
	return func(ctx context.Context, task RefreshPageTask) error {
		payload, err := renderer.RenderPath(ctx, task.Path)
		if err != nil {
			return fmt.Errorf("render %s: %w", task.Path, err)
		}
		store.Put(task.Path, payload)
		log.Printf("[TASK] Refreshed page cache for %s (%d bytes)", task.Path, len(payload))
		return nil
	}
}

// NewRefreshPageQueue creates a backlite queue for page refresh tasks.
func NewRefreshPageQueue(renderer PageRenderer, store PageStore) backlite.Queue {
	return backlite.NewQueue(RefreshPageProcessor(renderer, store))
}

// Refresher adapts the client to the page cache's refresher interface.
// Paths the renderer cannot rebuild are dropped instead of queued, so a
// mutation never spawns tasks that are guaranteed to exhaust their
// attempts.
type Refresher struct {
	client     *Client
	renderable func(path string) bool
}

// NewRefresher wraps the client for use by the page cache. renderable
// reports whether the renderer has a payload for a path; nil admits
// every path.
func NewRefresher(client *Client, renderable func(path string) bool) *Refresher {
	return &Refresher{client: client, renderable: renderable}
}

// EnqueueRefresh queues a rebuild of path. Failures are logged; the cache
// entry stays absent and is rebuilt lazily on the next request instead.
func (r *Refresher) EnqueueRefresh(path string) {
	if r.renderable != nil && !r.renderable(path) {
		return
	}
	if _, err := r.client.Add(RefreshPageTask{Path: path}).Save(); err != nil {
		log.Printf("Failed to enqueue page refresh for %s: %v", path, err)
	}
}
