package repo

import (
	"context"
	"sync"

	dom "entryledger/internal/domain"
)

// MemEntryRepo is a mutex-guarded in-memory EntryRepo. Used by tests
// and as a backing store when no database is configured.
type MemEntryRepo struct {
	mu         sync.RWMutex
	entries    map[dom.Identity]dom.Entry
	priorities map[dom.Identity]dom.PriorityRecord
	temporals  map[dom.Identity]dom.TemporalRecord
}

// NewMemEntryRepo returns an empty in-memory repo.
func NewMemEntryRepo() *MemEntryRepo {
	return &MemEntryRepo{
		entries:    make(map[dom.Identity]dom.Entry),
		priorities: make(map[dom.Identity]dom.PriorityRecord),
		temporals:  make(map[dom.Identity]dom.TemporalRecord),
	}
}

func (r *MemEntryRepo) InsertEntry(_ context.Context, e dom.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.Identity]; ok {
		return ErrEntryExists
	}
	r.entries[e.Identity] = e
	return nil
}

func (r *MemEntryRepo) GetEntry(_ context.Context, id dom.Identity) (dom.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return dom.Entry{}, ErrNoEntry
	}
	return e, nil
}

func (r *MemEntryRepo) UpdateEntry(_ context.Context, e dom.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.Identity]; !ok {
		return ErrNoEntry
	}
	r.entries[e.Identity] = e
	return nil
}

func (r *MemEntryRepo) DeleteEntry(_ context.Context, id dom.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrNoEntry
	}
	// Priority and temporal rows are left behind on purpose.
	delete(r.entries, id)
	return nil
}

func (r *MemEntryRepo) UpsertPriority(_ context.Context, p dom.PriorityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.priorities[p.Identity] = p
	return nil
}

func (r *MemEntryRepo) GetPriority(_ context.Context, id dom.Identity) (dom.PriorityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.priorities[id]
	if !ok {
		return dom.PriorityRecord{}, ErrNoEntry
	}
	return p, nil
}

func (r *MemEntryRepo) UpsertTemporal(_ context.Context, t dom.TemporalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.temporals[t.Identity] = t
	return nil
}

func (r *MemEntryRepo) GetTemporal(_ context.Context, id dom.Identity) (dom.TemporalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.temporals[id]
	if !ok {
		return dom.TemporalRecord{}, ErrNoEntry
	}
	return t, nil
}
