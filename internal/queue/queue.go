// Package queue is the bounded client-side generation queue. Admission
// is limited by a semaphore: items in pending, generating or failed
// state hold a slot, and new submissions are rejected outright once the
// bound is reached, before any network call is made.
package queue

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"frame-art-backend/internal/models"
)

// DefaultBound is the maximum number of concurrently active items.
const DefaultBound = 4

// ErrQueueFull rejects a submission over the admission bound.
var ErrQueueFull = errors.New("generation queue is full")

type Status string

const (
	StatusPending    Status = "pending"
	StatusGenerating Status = "generating"
	StatusFailed     Status = "failed"
)

// Request is one queued generation.
type Request struct {
	StylePrompt string
	UserPrompt  string
	TealAccent  bool
}

// Item is a queue entry. Succeeded items are removed outright; there is
// no succeeded resting state.
type Item struct {
	ID      string
	Request Request
	Status  Status
	Error   string
}

// ProcessFunc runs the full generation chain for one accepted item.
type ProcessFunc func(ctx context.Context, req Request) (models.GeneratedImage, error)

type Queue struct {
	mu       sync.Mutex
	sem      *semaphore.Weighted
	items    map[string]*Item
	order    []string
	process  ProcessFunc
	onResult func(models.GeneratedImage)
}

// New builds a queue with the given admission bound. onResult is called
// with each completed artwork, in completion order, not submission
// order.
func New(bound int64, process ProcessFunc, onResult func(models.GeneratedImage)) *Queue {
	if bound <= 0 {
		bound = DefaultBound
	}
	if onResult == nil {
		onResult = func(models.GeneratedImage) {}
	}
	return &Queue{
		sem:      semaphore.NewWeighted(bound),
		items:    make(map[string]*Item),
		process:  process,
		onResult: onResult,
	}
}

// Submit admits a generation request. Each accepted item starts its own
// call chain immediately; there is no worker pool.
func (q *Queue) Submit(ctx context.Context, req Request) (string, error) {
	if !q.sem.TryAcquire(1) {
		return "", ErrQueueFull
	}

	id := uuid.NewString()
	q.mu.Lock()
	q.items[id] = &Item{ID: id, Request: req, Status: StatusPending}
	q.order = append(q.order, id)
	q.mu.Unlock()

	go q.run(ctx, id, req)
	return id, nil
}

func (q *Queue) run(ctx context.Context, id string, req Request) {
	q.setStatus(id, StatusGenerating)

	image, err := q.process(ctx, req)
	if err != nil {
		q.fail(id, err)
		return
	}

	// Success removes the item entirely and frees its slot.
	q.mu.Lock()
	if _, ok := q.items[id]; !ok {
		// Dismissed while in flight; the artwork may still have been
		// persisted and will show up on the next refresh.
		q.mu.Unlock()
		return
	}
	q.removeLocked(id)
	q.mu.Unlock()
	q.sem.Release(1)

	q.onResult(image)
}

// Dismiss removes a failed item. The freed slot is available
// immediately, whether or not the underlying call has resolved.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	item, ok := q.items[id]
	if !ok || item.Status != StatusFailed {
		q.mu.Unlock()
		return false
	}
	q.removeLocked(id)
	q.mu.Unlock()

	q.sem.Release(1)
	return true
}

// Items returns a snapshot in submission order.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Item, 0, len(q.order))
	for _, id := range q.order {
		if item, ok := q.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out
}

// Len is the number of active items, all of which count toward the
// admission bound.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) setStatus(id string, status Status) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if item, ok := q.items[id]; ok {
		item.Status = status
	}
}

// fail marks an item failed. Failure is isolated to the item and the
// slot stays held until the user dismisses it.
func (q *Queue) fail(id string, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if item, ok := q.items[id]; ok {
		item.Status = StatusFailed
		item.Error = strings.TrimSpace(err.Error())
	}
}

func (q *Queue) removeLocked(id string) {
	delete(q.items, id)
	for i, existing := range q.order {
		if existing == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}
