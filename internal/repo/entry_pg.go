package repo

import (
	"context"
	"errors"

	dom "entryledger/internal/domain"
	"entryledger/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGEntryRepo implements EntryRepo with Postgres. Identity is the
// primary key of all three tables, so concurrent creates race on the
// unique constraint rather than on a check-then-insert window.
type PGEntryRepo struct {
	db *pgxpool.Pool
}

// NewPGEntryRepo returns a new PGEntryRepo.
func NewPGEntryRepo(db *pgxpool.Pool) *PGEntryRepo {
	return &PGEntryRepo{db: db}
}

func (r *PGEntryRepo) InsertEntry(ctx context.Context, e dom.Entry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO entries (identity, content, completed) VALUES ($1, $2, $3)`,
		string(e.Identity), e.Content, e.Completed,
	)
	if utils.IsPGUniqueViolation(err) {
		return ErrEntryExists
	}
	return err
}

func (r *PGEntryRepo) GetEntry(ctx context.Context, id dom.Identity) (dom.Entry, error) {
	var e dom.Entry
	err := r.db.QueryRow(ctx,
		`SELECT identity, content, completed FROM entries WHERE identity = $1`,
		string(id),
	).Scan(&e.Identity, &e.Content, &e.Completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Entry{}, ErrNoEntry
	}
	return e, err
}

func (r *PGEntryRepo) UpdateEntry(ctx context.Context, e dom.Entry) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE entries SET content = $2, completed = $3, updated_at = NOW() WHERE identity = $1`,
		string(e.Identity), e.Content, e.Completed,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEntry
	}
	return nil
}

func (r *PGEntryRepo) DeleteEntry(ctx context.Context, id dom.Identity) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM entries WHERE identity = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEntry
	}
	return nil
}

func (r *PGEntryRepo) UpsertPriority(ctx context.Context, p dom.PriorityRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO entry_priorities (identity, tier) VALUES ($1, $2)
		ON CONFLICT (identity) DO UPDATE SET tier = EXCLUDED.tier, updated_at = NOW()`,
		string(p.Identity), p.Tier,
	)
	return err
}

func (r *PGEntryRepo) GetPriority(ctx context.Context, id dom.Identity) (dom.PriorityRecord, error) {
	var p dom.PriorityRecord
	err := r.db.QueryRow(ctx,
		`SELECT identity, tier FROM entry_priorities WHERE identity = $1`,
		string(id),
	).Scan(&p.Identity, &p.Tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.PriorityRecord{}, ErrNoEntry
	}
	return p, err
}

func (r *PGEntryRepo) UpsertTemporal(ctx context.Context, t dom.TemporalRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO entry_deadlines (identity, deadline, notified) VALUES ($1, $2, $3)
		ON CONFLICT (identity) DO UPDATE
		SET deadline = EXCLUDED.deadline, notified = EXCLUDED.notified, updated_at = NOW()`,
		string(t.Identity), t.Deadline, t.Notified,
	)
	return err
}

func (r *PGEntryRepo) GetTemporal(ctx context.Context, id dom.Identity) (dom.TemporalRecord, error) {
	var t dom.TemporalRecord
	err := r.db.QueryRow(ctx,
		`SELECT identity, deadline, notified FROM entry_deadlines WHERE identity = $1`,
		string(id),
	).Scan(&t.Identity, &t.Deadline, &t.Notified)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.TemporalRecord{}, ErrNoEntry
	}
	return t, err
}
