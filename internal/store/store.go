package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"daybook/internal/models"
)

// MaxTitleLen caps entry titles at the column width.
const MaxTitleLen = 200

const selectCols = `SELECT id, date, title, content, mood, tags, insights, created_at, updated_at FROM journal_entries`

// EntryCodec transforms sensitive fields on their way in and out of the
// database. services.EncryptionService implements it; a nil codec stores
// everything in plaintext.
type EntryCodec interface {
	EncryptEntry(e *models.JournalEntry) error
	DecryptEntry(e *models.JournalEntry) error
}

// Store handles durable CRUD over journal entries. Queries are written
// with ? bindvars and rebound per driver, so the same code runs against
// SQLite and Postgres.
type Store struct {
	db    *sqlx.DB
	codec EntryCodec
}

func New(db *sqlx.DB, codec EntryCodec) *Store {
	return &Store{db: db, codec: codec}
}

func validate(e *models.JournalEntry) error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(e.Title) > MaxTitleLen {
		return &ValidationError{Field: "title", Reason: "must be at most 200 characters"}
	}
	if strings.TrimSpace(e.Content) == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	return nil
}

// Create assigns an id and timestamps, persists the entry and returns the
// stored record. Validation rejects empty title/content before any write.
func (s *Store) Create(ctx context.Context, e *models.JournalEntry) (*models.JournalEntry, error) {
	if err := validate(e); err != nil {
		return nil, err
	}

	rec := *e
	now := time.Now().UTC()
	if rec.Date.IsZero() {
		rec.Date = now
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	enc := rec
	if err := s.encrypt(&enc); err != nil {
		return nil, &StorageError{Op: "encrypt entry", Err: err}
	}

	query := s.db.Rebind(`INSERT INTO journal_entries (date, title, content, mood, tags, insights, created_at, updated_at)
	                       VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err := s.db.QueryRowxContext(ctx, query,
		enc.Date, enc.Title, enc.Content, enc.Mood, enc.Tags, enc.Insights, enc.CreatedAt, enc.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return nil, &StorageError{Op: "insert entry", Err: err}
	}
	return &rec, nil
}

// Get returns the entry with the given id, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id int64) (*models.JournalEntry, error) {
	var e models.JournalEntry
	query := s.db.Rebind(selectCols + ` WHERE id = ?`)
	err := s.db.GetContext(ctx, &e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get entry", Err: err}
	}
	if err := s.decrypt(&e); err != nil {
		return nil, &StorageError{Op: "decrypt entry", Err: err}
	}
	return &e, nil
}

// List returns up to limit entries, most recent business date first.
// Equal dates are broken by id descending so the order is deterministic.
func (s *Store) List(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	query := s.db.Rebind(selectCols + ` ORDER BY date DESC, id DESC LIMIT ?`)
	return s.selectEntries(ctx, "list entries", query, limit)
}

// ListByDateRange returns entries with start <= date <= end, both bounds
// inclusive, ordered like List.
func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.JournalEntry, error) {
	query := s.db.Rebind(selectCols + ` WHERE date >= ? AND date <= ? ORDER BY date DESC, id DESC`)
	return s.selectEntries(ctx, "list entries by date range", query, start, end)
}

// Paginate returns the 1-indexed page ordered by insertion time, not
// business date. Both orderings are intentional per-operation contracts.
func (s *Store) Paginate(ctx context.Context, page, perPage int) ([]models.JournalEntry, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage
	query := s.db.Rebind(selectCols + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	return s.selectEntries(ctx, "paginate entries", query, perPage, offset)
}

// Update replaces the mutable fields of an entry and refreshes updated_at.
// The business date and created_at are left alone. Returns nil when the id
// does not exist.
func (s *Store) Update(ctx context.Context, id int64, e *models.JournalEntry) (*models.JournalEntry, error) {
	if err := validate(e); err != nil {
		return nil, err
	}

	enc := *e
	enc.UpdatedAt = time.Now().UTC()
	if err := s.encrypt(&enc); err != nil {
		return nil, &StorageError{Op: "encrypt entry", Err: err}
	}

	query := s.db.Rebind(`UPDATE journal_entries SET title = ?, content = ?, mood = ?, tags = ?, insights = ?, updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, enc.Title, enc.Content, enc.Mood, enc.Tags, enc.Insights, enc.UpdatedAt, id)
	if err != nil {
		return nil, &StorageError{Op: "update entry", Err: err}
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, &StorageError{Op: "update entry", Err: err}
	}
	if rows == 0 {
		return nil, nil
	}
	return s.Get(ctx, id)
}

// Delete removes the entry permanently and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	query := s.db.Rebind(`DELETE FROM journal_entries WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, &StorageError{Op: "delete entry", Err: err}
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, &StorageError{Op: "delete entry", Err: err}
	}
	return rows > 0, nil
}

// Count returns the total number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM journal_entries`); err != nil {
		return 0, &StorageError{Op: "count entries", Err: err}
	}
	return n, nil
}

func (s *Store) selectEntries(ctx context.Context, op, query string, args ...any) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, &StorageError{Op: op, Err: err}
	}
	for i := range entries {
		if err := s.decrypt(&entries[i]); err != nil {
			return nil, &StorageError{Op: "decrypt entry", Err: err}
		}
	}
	return entries, nil
}

func (s *Store) encrypt(e *models.JournalEntry) error {
	if s.codec == nil {
		return nil
	}
	return s.codec.EncryptEntry(e)
}

func (s *Store) decrypt(e *models.JournalEntry) error {
	if s.codec == nil {
		return nil
	}
	return s.codec.DecryptEntry(e)
}
