package domain

// Identity is the principal under which all ledger tables are keyed.
// Supplied by the auth layer for most operations; Delegate takes an
// explicit target identity instead.
type Identity string

// MaxContentBytes is the upper bound on entry content length.
const MaxContentBytes = 100

// Priority tiers. Tier 0 means unclassified and is never stored.
const (
	TierLow    = 1
	TierMedium = 2
	TierHigh   = 3
)

// Entry is the primary per-identity record. At most one exists per
// identity; its presence gates every dependent operation.
type Entry struct {
	Identity  Identity
	Content   string
	Completed bool
}

// PriorityRecord classifies an identity's entry. Exists only once
// assigned; there is no unset operation.
type PriorityRecord struct {
	Identity Identity
	Tier     int
}

// TemporalRecord carries an absolute block-height deadline. Deadline is
// computed once, from the height observed when it was configured, and
// is never re-validated against the current height on read.
type TemporalRecord struct {
	Identity Identity
	Deadline uint64
	Notified bool
}

// Diagnostics is the unconditional introspection view of an identity's
// slot. Unlike the other reads it exists even when no entry does.
type Diagnostics struct {
	Exists        bool
	ContentLength uint
	Completed     bool
}
