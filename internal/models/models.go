package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList is stored as a JSON-encoded TEXT column so the same scan path
// works on both SQLite and Postgres. Order and duplicates are preserved
// exactly as supplied.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *TagList) Scan(src any) error {
	if src == nil {
		*t = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into TagList", src)
	}
}

type JournalEntry struct {
	ID        int64     `db:"id" json:"id"`
	Date      time.Time `db:"date" json:"date"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`             // Encrypted in DB when an encryption key is configured
	Mood      *string   `db:"mood" json:"mood,omitempty"`
	Tags      TagList   `db:"tags" json:"tags,omitempty"`
	Insights  *string   `db:"insights" json:"insights,omitempty"` // Encrypted in DB when an encryption key is configured
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
