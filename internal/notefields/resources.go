package notefields

import (
	"bytes"
	"io"
	"slices"

	"github.com/chris/notefields/internal/logger"
	"go.uber.org/zap"
)

// copyBufferSize is the chunk size Data drains a resource stream with.
const copyBufferSize = 32000

// Resources returns the padded hashes of every resource owned by the note
// with the given guid, de-duplicated and sorted. The slice is never nil.
func (s *Statements) Resources(ownerGUID string) ([]string, error) {
	hashes, ok, err := s.hashesFromOwner.get(ownerGUID)
	if err != nil {
		return nil, err
	}
	out := []string{}
	if !ok {
		return out, nil
	}
	for _, h := range hashes {
		out = append(out, s.padded(h))
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// DataHash returns the padded hash of one resource.
func (s *Statements) DataHash(guid string) (string, bool, error) {
	hash, ok, err := s.hashFromResources.get(guid)
	if err != nil || !ok {
		return "", ok, err
	}
	return s.padded(hash), true, nil
}

// DataReader opens the resource body as a stream.
func (s *Statements) DataReader(guid string) (io.Reader, bool, error) {
	data, ok, err := s.dataFromResources.get(guid)
	if err != nil || !ok {
		return nil, ok, err
	}
	return s.stream(data), true, nil
}

// Data reads the whole resource body into memory. A failure while copying
// the stream is logged and reported as not found, so callers must not read
// found == false as proof that storage has no body. A stored empty body is
// found with a non-nil empty slice.
func (s *Statements) Data(guid string) ([]byte, bool, error) {
	r, ok, err := s.DataReader(guid)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := drain(r)
	if err != nil {
		s.log.Error("reading resource data", zap.String(logger.FieldGUID, guid), zap.Error(err))
		return nil, false, nil
	}
	return data, true, nil
}

func drain(r io.Reader) ([]byte, error) {
	out := bytes.NewBuffer(make([]byte, 0, copyBufferSize))
	buf := make([]byte, copyBufferSize)
	for {
		n, err := r.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			return out.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// DataLength returns the size of the resource body in bytes.
func (s *Statements) DataLength(guid string) (int64, bool, error) {
	return s.lengthFromResources.get(guid)
}

// Filename returns the original file name of the resource.
func (s *Statements) Filename(guid string) (string, bool, error) {
	return s.filenameFromResource.get(guid)
}

// Mime returns the resource's MIME type.
func (s *Statements) Mime(guid string) (string, bool, error) {
	return s.mimeFromResources.get(guid)
}

// NoteGUID returns the guid of the note owning the resource.
func (s *Statements) NoteGUID(guid string) (string, bool, error) {
	return s.ownerFromResources.get(guid)
}

// Recognition returns the raw recognition payload (OCR index) of the resource.
func (s *Statements) Recognition(guid string) ([]byte, bool, error) {
	return s.recogFromResources.get(guid)
}

// ResourceUpdateSequenceNumber returns the resource's USN.
func (s *Statements) ResourceUpdateSequenceNumber(guid string) (int, bool, error) {
	return s.usnFromResources.get(guid)
}
