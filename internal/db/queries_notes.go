package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID        int64     `json:"id" yaml:"id"`
	GUID      string    `json:"guid" yaml:"guid"`
	Title     string    `json:"title" yaml:"title"`
	Created   time.Time `json:"created" yaml:"created"`
	Updated   time.Time `json:"updated" yaml:"updated"`
	SourceURL string    `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	Content   string    `json:"content" yaml:"content"`
	USN       int       `json:"usn" yaml:"usn"`
	Active    bool      `json:"active" yaml:"active"`
}

// CreateNote stores a note and returns its ID and GUID. A missing GUID is
// generated; zero timestamps default to now.
func (d *DB) CreateNote(n Note) (int64, string, error) {
	if n.GUID == "" {
		n.GUID = uuid.NewString()
	}
	now := time.Now().UTC()
	if n.Created.IsZero() {
		n.Created = now
	}
	if n.Updated.IsZero() {
		n.Updated = n.Created
	}
	res, err := d.conn.Exec(
		"INSERT INTO NOTES (GUID, TITLE, CREATED, UPDATED, SOURCEURL, CONTENT, USN, ISACTIVE) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		n.GUID, n.Title, n.Created, n.Updated, nullStr(n.SourceURL), n.Content, n.USN, n.Active,
	)
	if err != nil {
		return 0, "", fmt.Errorf("creating note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", fmt.Errorf("reading note id: %w", err)
	}
	return id, n.GUID, nil
}

// SetNoteActive flips the active flag of a note.
func (d *DB) SetNoteActive(id int64, active bool) error {
	res, err := d.conn.Exec("UPDATE NOTES SET ISACTIVE = ?, UPDATED = ? WHERE ID = ?", active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating note %d: %w", id, err)
	}
	return requireAffected(res, "note", fmt.Sprint(id))
}
