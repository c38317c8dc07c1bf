package db

import (
	"fmt"

	"github.com/google/uuid"
)

type Resource struct {
	GUID        string `json:"guid" yaml:"guid"`
	OwnerGUID   string `json:"owner_guid" yaml:"owner_guid"`
	Data        []byte `json:"-" yaml:"-"`
	Mime        string `json:"mime" yaml:"mime"`
	Filename    string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Hash        string `json:"hash" yaml:"hash"`
	Recognition []byte `json:"-" yaml:"-"`
	USN         int    `json:"usn" yaml:"usn"`
}

// CreateResource stores a resource attached to r.OwnerGUID and returns its
// GUID. When r.Hash is empty the hex MD5 of r.Data is stored.
func (d *DB) CreateResource(r Resource) (string, error) {
	if r.OwnerGUID == "" {
		return "", fmt.Errorf("creating resource: owner guid is required")
	}
	if r.GUID == "" {
		r.GUID = uuid.NewString()
	}
	if r.Hash == "" {
		r.Hash = hashData(r.Data)
	}
	_, err := d.conn.Exec(
		"INSERT INTO RESOURCES (GUID, OWNERGUID, DATA, MIME, FILENAME, HASH, RECOGNITION, USN) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		r.GUID, r.OwnerGUID, nullBytes(r.Data), nullStr(r.Mime), nullStr(r.Filename), r.Hash, nullBytes(r.Recognition), r.USN,
	)
	if err != nil {
		return "", fmt.Errorf("creating resource: %w", err)
	}
	return r.GUID, nil
}

// SetResourceHash overwrites the stored hash verbatim, without padding.
func (d *DB) SetResourceHash(guid, hash string) error {
	res, err := d.conn.Exec("UPDATE RESOURCES SET HASH = ? WHERE GUID = ?", hash, guid)
	if err != nil {
		return fmt.Errorf("updating resource %s: %w", guid, err)
	}
	return requireAffected(res, "resource", guid)
}
