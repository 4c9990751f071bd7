// Package pagecache holds pre-rendered page payloads keyed by path. The
// action layer invalidates paths after mutations; invalidated paths are
// handed to a refresher (the task queue) so they can be rebuilt in the
// background, and a cron job sweeps entries past their TTL.
package pagecache

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher is asked to rebuild a path after it has been invalidated.
// Typically backed by the task queue. Implementations may ignore paths
// they have no way to rebuild; those stay out of the cache until a
// renderer exists for them.
type Refresher interface {
	EnqueueRefresh(path string)
}

type entry struct {
	payload  []byte
	storedAt time.Time
}

// Cache is an in-memory path-keyed payload cache.
type Cache struct {
	ttl       time.Duration
	refresher Refresher

	mu      sync.RWMutex
	entries map[string]entry

	cron    *cron.Cron
	entryID cron.EntryID
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// SetRefresher wires the background refresher. Must be called before any
// Revalidate.
func (c *Cache) SetRefresher(r Refresher) {
	c.refresher = r
}

// Get returns the cached payload for path, if present and fresh.
func (c *Cache) Get(path string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.payload, true
}

// Put stores a payload for path.
func (c *Cache) Put(path string, payload []byte) {
	c.mu.Lock()
	c.entries[path] = entry{payload: payload, storedAt: time.Now()}
	c.mu.Unlock()
}

// Revalidate drops the named paths and queues them for a background
// rebuild. Implements the action layer's Revalidator.
func (c *Cache) Revalidate(paths ...string) {
	c.mu.Lock()
	for _, p := range paths {
		delete(c.entries, p)
	}
	c.mu.Unlock()

	if c.refresher != nil {
		for _, p := range paths {
			c.refresher.EnqueueRefresh(p)
		}
	}
}

// Len returns the number of cached entries, including expired ones not
// yet swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartSweeper begins periodic eviction of expired entries on the given
// cron schedule.
func (c *Cache) StartSweeper(schedule string) error {
	entryID, err := c.cron.AddFunc(schedule, c.Sweep)
	if err != nil {
		return err
	}
	c.entryID = entryID
	c.cron.Start()
	log.Printf("Page cache sweeper started (schedule: %s)", schedule)
	return nil
}

// StopSweeper stops the sweep job. Safe to call when the sweeper was
// never started.
func (c *Cache) StopSweeper() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

// Sweep removes every expired entry.
func (c *Cache) Sweep() {
	if c.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-c.ttl)
	c.mu.Lock()
	removed := 0
	for path, e := range c.entries {
		if e.storedAt.Before(cutoff) {
			delete(c.entries, path)
			removed++
		}
	}
	c.mu.Unlock()
	if removed > 0 {
		log.Printf("Page cache sweep removed %d expired entries", removed)
	}
}
