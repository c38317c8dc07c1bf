package notefields

import (
	"io"
	"strings"
	"time"
)

// Title returns the note title.
func (s *Statements) Title(id int64) (string, bool, error) {
	return s.titleFromNotes.get(id)
}

// Created returns when the note was created.
func (s *Statements) Created(id int64) (time.Time, bool, error) {
	return s.createdFromNotes.get(id)
}

// Updated returns when the note was last updated.
func (s *Statements) Updated(id int64) (time.Time, bool, error) {
	return s.updatedFromNotes.get(id)
}

// GUID returns the note's globally unique id.
func (s *Statements) GUID(id int64) (string, bool, error) {
	return s.guidFromNotes.get(id)
}

// SourceURL returns the URL the note was clipped from.
func (s *Statements) SourceURL(id int64) (string, bool, error) {
	return s.sourceURLFromNotes.get(id)
}

// Content returns the note body.
func (s *Statements) Content(id int64) (string, bool, error) {
	return s.contentFromNotes.get(id)
}

// ContentReader is Content wrapped in a reader, for callers that parse the
// note body as a stream.
func (s *Statements) ContentReader(id int64) (io.Reader, bool, error) {
	content, ok, err := s.contentFromNotes.get(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	return strings.NewReader(content), true, nil
}

// UpdateSequenceNumber returns the note's USN.
func (s *Statements) UpdateSequenceNumber(id int64) (int, bool, error) {
	return s.usnFromNotes.get(id)
}

// IsActive reports whether the note is active, i.e. not in the trash.
func (s *Statements) IsActive(id int64) (bool, bool, error) {
	return s.activeFromNotes.get(id)
}
