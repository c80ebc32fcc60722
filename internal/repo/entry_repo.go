package repo

import (
	"context"
	"errors"

	dom "entryledger/internal/domain"
)

// Storage-level sentinels. Implementations translate their backend's
// errors into these; the service layer maps them onto the API contract.
var (
	ErrNoEntry     = errors.New("no entry for identity")
	ErrEntryExists = errors.New("entry already exists for identity")
)

// EntryRepo persists the three per-identity tables. Priority and
// temporal rows are not foreign-keyed to the entry row: deleting an
// entry leaves them behind, and a later re-create silently exposes the
// stale rows to overwrite again.
type EntryRepo interface {
	InsertEntry(ctx context.Context, e dom.Entry) error
	GetEntry(ctx context.Context, id dom.Identity) (dom.Entry, error)
	UpdateEntry(ctx context.Context, e dom.Entry) error
	DeleteEntry(ctx context.Context, id dom.Identity) error

	UpsertPriority(ctx context.Context, p dom.PriorityRecord) error
	GetPriority(ctx context.Context, id dom.Identity) (dom.PriorityRecord, error)

	UpsertTemporal(ctx context.Context, t dom.TemporalRecord) error
	GetTemporal(ctx context.Context, id dom.Identity) (dom.TemporalRecord, error)
}
