package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// MessageRepository stores contact messages in process memory.
type MessageRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{byID: make(map[string]*domain.Message)}
}

func (r *MessageRepository) Create(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *m
	r.byID[m.ID] = &clone
	return nil
}

func (r *MessageRepository) List(_ context.Context) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Message, 0, len(r.byID))
	for _, m := range r.byID {
		clone := *m
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *MessageRepository) SetRead(_ context.Context, id string, read bool) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound(domain.KindMessage, id)
	}
	m.Read = read
	clone := *m
	return &clone, nil
}

func (r *MessageRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrSubmissionNotFound(domain.KindMessage, id)
	}
	delete(r.byID, id)
	return nil
}
