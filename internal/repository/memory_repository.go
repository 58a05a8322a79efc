package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osa911/folio/internal/models"

	"github.com/google/uuid"
)

// MemoryContactRepository keeps messages in memory. Used when no database
// is configured and in tests.
type MemoryContactRepository struct {
	mu       sync.RWMutex
	messages map[string]*models.ContactMessage
}

// NewMemoryContactRepository creates an empty MemoryContactRepository
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{messages: make(map[string]*models.ContactMessage)}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) Save(_ context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *msg
	r.messages[msg.ID] = &stored
	return nil
}

func (r *MemoryContactRepository) List(_ context.Context, opts models.ContactListOptions) ([]*models.ContactMessage, error) {
	opts = opts.Normalize()

	r.mu.RLock()
	var matched []*models.ContactMessage
	for _, m := range r.messages {
		if opts.Status != "" && string(m.Status) != opts.Status {
			continue
		}
		cp := *m
		matched = append(matched, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if opts.Offset >= len(matched) {
		return nil, nil
	}
	end := opts.Offset + opts.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[opts.Offset:end], nil
}

func (r *MemoryContactRepository) UpdateStatus(_ context.Context, id string, status models.ContactStatus) (*models.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	cp := *m
	return &cp, nil
}

func (r *MemoryContactRepository) DeleteReadBefore(_ context.Context, t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, m := range r.messages {
		if m.Status == models.ContactStatusRead && m.UpdatedAt.Before(t) {
			delete(r.messages, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryContactRepository) Ping(context.Context) error {
	return nil
}
