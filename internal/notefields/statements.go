// Package notefields reads single note and resource fields through a fixed
// set of prepared statements shared by the whole process.
package notefields

import (
	"bytes"
	"database/sql"
	"io"
	"sync/atomic"
	"time"

	"github.com/chris/notefields/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// closer is an owned statement registered at construction time.
type closer interface {
	Name() string
	Close() error
}

// Statements owns one prepared statement per supported lookup.
type Statements struct {
	log     *zap.Logger
	closers []closer
	retired atomic.Bool
	// stream wraps raw blob bytes before they are handed to callers.
	stream func([]byte) io.Reader

	contentFromNotes     *accessor[int64, string]
	sourceURLFromNotes   *accessor[int64, string]
	titleFromNotes       *accessor[int64, string]
	createdFromNotes     *accessor[int64, time.Time]
	updatedFromNotes     *accessor[int64, time.Time]
	usnFromNotes         *accessor[int64, int]
	guidFromNotes        *accessor[int64, string]
	activeFromNotes      *accessor[int64, bool]
	hashesFromOwner      *accessor[string, []string]
	hashFromResources    *accessor[string, string]
	dataFromResources    *accessor[string, []byte]
	lengthFromResources  *accessor[string, int64]
	mimeFromResources    *accessor[string, string]
	ownerFromResources   *accessor[string, string]
	recogFromResources   *accessor[string, []byte]
	usnFromResources     *accessor[string, int]
	filenameFromResource *accessor[string, string]
}

// builder prepares statements in order and stops at the first failure.
type builder struct {
	conn Preparer
	s    *Statements
	err  error
}

func define[K, V any](b *builder, name, query string, extract func(*sql.Rows) (V, bool, error)) *accessor[K, V] {
	if b.err != nil {
		return nil
	}
	stmt, err := b.conn.Prepare(query)
	if err != nil {
		b.err = errors.Wrapf(err, "preparing %s", name)
		return nil
	}
	a := &accessor[K, V]{name: name, stmt: stmt, extract: extract, retired: &b.s.retired}
	b.s.closers = append(b.s.closers, a)
	return a
}

func newStatements(conn Preparer, log *zap.Logger) (*Statements, error) {
	s := &Statements{
		log:    log,
		stream: func(b []byte) io.Reader { return bytes.NewReader(b) },
	}
	b := &builder{conn: conn, s: s}

	s.contentFromNotes = define[int64](b, "contentFromNotes", "SELECT CONTENT FROM NOTES WHERE ID = ?", scanNull[string])
	s.sourceURLFromNotes = define[int64](b, "sourceURLFromNotes", "SELECT SOURCEURL FROM NOTES WHERE ID = ?", scanNull[string])
	s.titleFromNotes = define[int64](b, "titleFromNotes", "SELECT TITLE FROM NOTES WHERE ID = ?", scanNull[string])
	s.createdFromNotes = define[int64](b, "createdFromNotes", "SELECT CREATED FROM NOTES WHERE ID = ?", scanNull[time.Time])
	s.updatedFromNotes = define[int64](b, "updatedFromNotes", "SELECT UPDATED FROM NOTES WHERE ID = ?", scanNull[time.Time])
	s.usnFromNotes = define[int64](b, "usnFromNotes", "SELECT USN FROM NOTES WHERE ID = ?", scanNull[int])
	s.guidFromNotes = define[int64](b, "guidFromNotes", "SELECT GUID FROM NOTES WHERE ID = ?", scanNull[string])
	s.activeFromNotes = define[int64](b, "activeFromNotes", "SELECT ISACTIVE FROM NOTES WHERE ID = ?", scanNull[bool])
	s.hashesFromOwner = define[string](b, "hashesFromOwner", "SELECT HASH FROM RESOURCES WHERE OWNERGUID = ?", collectStrings)
	s.hashFromResources = define[string](b, "hashFromResources", "SELECT HASH FROM RESOURCES WHERE GUID = ?", scanNull[string])
	s.dataFromResources = define[string](b, "dataFromResources", "SELECT DATA FROM RESOURCES WHERE GUID = ?", scanNull[[]byte])
	s.lengthFromResources = define[string](b, "lengthFromResources", "SELECT LENGTH(DATA) FROM RESOURCES WHERE GUID = ?", scanNull[int64])
	s.mimeFromResources = define[string](b, "mimeFromResources", "SELECT MIME FROM RESOURCES WHERE GUID = ?", scanNull[string])
	s.ownerFromResources = define[string](b, "ownerFromResources", "SELECT OWNERGUID FROM RESOURCES WHERE GUID = ?", scanNull[string])
	s.recogFromResources = define[string](b, "recogFromResources", "SELECT RECOGNITION FROM RESOURCES WHERE GUID = ?", scanNull[[]byte])
	s.usnFromResources = define[string](b, "usnFromResources", "SELECT USN FROM RESOURCES WHERE GUID = ?", scanNull[int])
	s.filenameFromResource = define[string](b, "filenameFromResource", "SELECT FILENAME FROM RESOURCES WHERE GUID = ?", scanNull[string])

	if b.err != nil {
		// release what was prepared before the failure
		_ = s.close()
		return nil, b.err
	}
	log.Debug("prepared statements", zap.Int(logger.FieldCount, len(s.closers)))
	return s, nil
}

// close releases every registered statement in construction order. It is
// only called once per instance, by the Holder.
func (s *Statements) close() error {
	s.retired.Store(true)
	var errs error
	for _, c := range s.closers {
		s.log.Debug("closing statement", zap.String(logger.FieldStatement, c.Name()))
		if err := c.Close(); err != nil {
			s.log.Error("closing statement", zap.String(logger.FieldStatement, c.Name()), zap.Error(err))
			errs = multierr.Append(errs, errors.Wrapf(err, "closing %s", c.Name()))
		}
	}
	s.closers = nil
	return errs
}
