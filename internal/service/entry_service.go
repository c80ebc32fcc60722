package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"entryledger/internal/cache"
	dom "entryledger/internal/domain"
	"entryledger/internal/height"
	"entryledger/internal/repo"

	"golang.org/x/sync/singleflight"
)

// The contract surface: callers branch on these with errors.Is, the
// handler layer maps them onto 400/404/409.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrDuplicateEntry   = errors.New("entry already exists")
)

// EntryService owns the per-identity entry lifecycle: creation,
// mutation, deletion, priority and deadline configuration, and reads.
// Every mutation runs under a per-identity lock so the existence check
// and the write cannot interleave with a concurrent call for the same
// identity.
type EntryService struct {
	repo    repo.EntryRepo
	cache   *cache.EntryCache
	heights height.Source
	locks   *keyedLock
	sf      singleflight.Group
}

// NewEntryService creates an EntryService. If c is nil, caching is disabled.
func NewEntryService(r repo.EntryRepo, c *cache.EntryCache, h height.Source) *EntryService {
	return &EntryService{repo: r, cache: c, heights: h, locks: newKeyedLock()}
}

// Create inserts the entry for identity. Fails with ErrDuplicateEntry
// if one already exists.
func (s *EntryService) Create(ctx context.Context, id dom.Identity, content string) (dom.Entry, error) {
	content, err := validContent(content)
	if err != nil {
		return dom.Entry{}, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	e := dom.Entry{Identity: id, Content: content, Completed: false}
	if err := s.repo.InsertEntry(ctx, e); err != nil {
		if errors.Is(err, repo.ErrEntryExists) {
			return dom.Entry{}, ErrDuplicateEntry
		}
		return dom.Entry{}, err
	}
	s.invalidate(ctx, id)
	return e, nil
}

// Delegate creates an entry for an explicit target identity. Any
// caller may delegate to any target, provided the target has no entry
// yet; the semantics otherwise mirror Create.
func (s *EntryService) Delegate(ctx context.Context, target dom.Identity, content string) (dom.Entry, error) {
	return s.Create(ctx, target, content)
}

// Update replaces content and completion in one write. Completion can
// toggle freely in both directions.
func (s *EntryService) Update(ctx context.Context, id dom.Identity, content string, completed bool) (dom.Entry, error) {
	content, err := validContent(content)
	if err != nil {
		return dom.Entry{}, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	e := dom.Entry{Identity: id, Content: content, Completed: completed}
	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		if errors.Is(err, repo.ErrNoEntry) {
			return dom.Entry{}, ErrEntryNotFound
		}
		return dom.Entry{}, err
	}
	s.invalidate(ctx, id)
	return e, nil
}

// Delete removes the entry. Priority and temporal records are not
// cascaded; they linger until a later entry overwrites them.
func (s *EntryService) Delete(ctx context.Context, id dom.Identity) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNoEntry) {
			return ErrEntryNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// AssignPriority upserts the priority tier for an identity that has an
// entry. Tier must be within [TierLow, TierHigh].
func (s *EntryService) AssignPriority(ctx context.Context, id dom.Identity, tier int) (dom.PriorityRecord, error) {
	if tier < dom.TierLow || tier > dom.TierHigh {
		return dom.PriorityRecord{}, fmt.Errorf("%w: tier must be between %d and %d", ErrInvalidParameter, dom.TierLow, dom.TierHigh)
	}

	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.requireEntry(ctx, id); err != nil {
		return dom.PriorityRecord{}, err
	}
	p := dom.PriorityRecord{Identity: id, Tier: tier}
	if err := s.repo.UpsertPriority(ctx, p); err != nil {
		return dom.PriorityRecord{}, err
	}
	return p, nil
}

// ConfigureDeadline upserts the temporal record: deadline is the
// height observed now plus durationBlocks, and notified resets to
// false on every reconfiguration. The height read happens under the
// identity lock, atomically with the write that uses it.
func (s *EntryService) ConfigureDeadline(ctx context.Context, id dom.Identity, durationBlocks int64) (dom.TemporalRecord, error) {
	if durationBlocks <= 0 {
		return dom.TemporalRecord{}, fmt.Errorf("%w: duration must be greater than zero blocks", ErrInvalidParameter)
	}

	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.requireEntry(ctx, id); err != nil {
		return dom.TemporalRecord{}, err
	}
	h, err := s.heights.Current(ctx)
	if err != nil {
		return dom.TemporalRecord{}, fmt.Errorf("read height: %w", err)
	}
	t := dom.TemporalRecord{Identity: id, Deadline: h + uint64(durationBlocks), Notified: false}
	if err := s.repo.UpsertTemporal(ctx, t); err != nil {
		return dom.TemporalRecord{}, err
	}
	return t, nil
}

// Fetch returns the entry for identity. Pure lookup.
func (s *EntryService) Fetch(ctx context.Context, id dom.Identity) (dom.Entry, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do(string(id), func() (interface{}, error) {
			if e, err := s.cache.GetEntry(ctx, id); err == nil && e != nil {
				return *e, nil
			}
			e, err := s.repo.GetEntry(ctx, id)
			if err != nil {
				return dom.Entry{}, err
			}
			_ = s.cache.SetEntry(ctx, e)
			return e, nil
		})
		if err != nil {
			if errors.Is(err, repo.ErrNoEntry) {
				return dom.Entry{}, ErrEntryNotFound
			}
			return dom.Entry{}, err
		}
		return v.(dom.Entry), nil
	}
	e, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoEntry) {
			return dom.Entry{}, ErrEntryNotFound
		}
		return dom.Entry{}, err
	}
	return e, nil
}

// CheckCompletion returns the completion flag. Pure lookup.
func (s *EntryService) CheckCompletion(ctx context.Context, id dom.Identity) (bool, error) {
	e, err := s.Fetch(ctx, id)
	if err != nil {
		return false, err
	}
	return e.Completed, nil
}

// Diagnostics never reports a missing entry as an error: an absent
// identity yields the zero view so the probe is callable
// unconditionally.
func (s *EntryService) Diagnostics(ctx context.Context, id dom.Identity) (dom.Diagnostics, error) {
	e, err := s.Fetch(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return dom.Diagnostics{}, nil
		}
		return dom.Diagnostics{}, err
	}
	return dom.Diagnostics{
		Exists:        true,
		ContentLength: uint(len(e.Content)),
		Completed:     e.Completed,
	}, nil
}

func (s *EntryService) requireEntry(ctx context.Context, id dom.Identity) error {
	if _, err := s.repo.GetEntry(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNoEntry) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

func (s *EntryService) invalidate(ctx context.Context, id dom.Identity) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: content must not be empty", ErrInvalidParameter)
	}
	if len(content) > dom.MaxContentBytes {
		return "", fmt.Errorf("%w: content exceeds %d bytes", ErrInvalidParameter, dom.MaxContentBytes)
	}
	return content, nil
}
