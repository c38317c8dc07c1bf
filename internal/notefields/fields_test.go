package notefields

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/chris/notefields/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Notes ---

func TestNoteFields(t *testing.T) {
	d, s, _ := newTestStatements(t)

	created := time.Date(2010, 5, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)
	id, guid, err := d.CreateNote(db.Note{
		Title:     "Groceries",
		Created:   created,
		Updated:   updated,
		SourceURL: "http://example.com/list",
		Content:   "<en-note>milk</en-note>",
		USN:       42,
		Active:    true,
	})
	require.NoError(t, err)

	title, ok, err := s.Title(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Groceries", title)

	gotGUID, ok, err := s.GUID(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, guid, gotGUID)

	gotCreated, ok, err := s.Created(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, created.Equal(gotCreated), "created: %v", gotCreated)

	gotUpdated, ok, err := s.Updated(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, updated.Equal(gotUpdated), "updated: %v", gotUpdated)

	url, ok, err := s.SourceURL(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/list", url)

	content, ok, err := s.Content(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<en-note>milk</en-note>", content)

	usn, ok, err := s.UpdateSequenceNumber(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, usn)

	active, ok, err := s.IsActive(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, active)

	require.NoError(t, d.SetNoteActive(id, false))
	active, _, err = s.IsActive(id)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestContentReader(t *testing.T) {
	d, s, _ := newTestStatements(t)
	id, _, err := d.CreateNote(db.Note{Title: "x", Content: "body text"})
	require.NoError(t, err)

	r, ok, err := s.ContentReader(id)
	require.NoError(t, err)
	require.True(t, ok)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "body text", string(b))

	r, ok, err = s.ContentReader(id + 100)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, r)
}

func TestNoteMissingRow(t *testing.T) {
	_, s, _ := newTestStatements(t)

	title, ok, err := s.Title(12345)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, title)

	_, ok, err = s.Created(12345)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.IsActive(12345)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNoteNullSourceURL(t *testing.T) {
	d, s, _ := newTestStatements(t)
	id, _, err := d.CreateNote(db.Note{Title: "no source"})
	require.NoError(t, err)

	url, ok, err := s.SourceURL(id)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, url)
}

// --- Resources ---

func seedResource(t *testing.T, d *db.DB, r db.Resource) (owner, guid string) {
	t.Helper()
	_, owner, err := d.CreateNote(db.Note{Title: "owner"})
	require.NoError(t, err)
	r.OwnerGUID = owner
	guid, err = d.CreateResource(r)
	require.NoError(t, err)
	return owner, guid
}

func TestResourceFields(t *testing.T) {
	d, s, _ := newTestStatements(t)
	owner, guid := seedResource(t, d, db.Resource{
		Data:        []byte("hello"),
		Mime:        "image/png",
		Filename:    "hello.png",
		Recognition: []byte("<recoIndex/>"),
		USN:         9,
	})

	data, ok, err := s.Data(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("hello"), data)

	length, ok, err := s.DataLength(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 5, length)

	filename, ok, err := s.Filename(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello.png", filename)

	mime, ok, err := s.Mime(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "image/png", mime)

	noteGUID, ok, err := s.NoteGUID(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, owner, noteGUID)

	hash, ok, err := s.DataHash(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", hash)

	recog, ok, err := s.Recognition(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("<recoIndex/>"), recog)

	usn, ok, err := s.ResourceUpdateSequenceNumber(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, usn)
}

func TestResourceMissingRow(t *testing.T) {
	_, s, _ := newTestStatements(t)

	data, ok, err := s.Data("missing")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	_, ok, err = s.DataHash("missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Mime("missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDataLargerThanCopyBuffer(t *testing.T) {
	d, s, _ := newTestStatements(t)
	body := bytes.Repeat([]byte("0123456789"), 10_000)
	_, guid := seedResource(t, d, db.Resource{Data: body})

	data, ok, err := s.Data(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, body, data)

	r, ok, err := s.DataReader(guid)
	require.NoError(t, err)
	require.True(t, ok)
	streamed, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, body, streamed)
}

func TestDataCopyFailureIsSwallowed(t *testing.T) {
	d, s, logs := newTestStatements(t)
	_, guid := seedResource(t, d, db.Resource{Data: []byte("payload")})
	s.stream = func([]byte) io.Reader {
		return io.MultiReader(strings.NewReader("pay"), iotest.ErrReader(errors.New("disk gone")))
	}

	data, ok, err := s.Data(guid)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
	assert.Equal(t, 1, logs.FilterMessage("reading resource data").Len())
}

func TestDataEmptyBody(t *testing.T) {
	d, s, _ := newTestStatements(t)
	_, guid := seedResource(t, d, db.Resource{Data: []byte{}})

	length, ok, err := s.DataLength(guid)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 0, length)

	data, ok, err := s.Data(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestQueryFailurePropagates(t *testing.T) {
	d, s, logs := newTestStatements(t)
	owner, guid := seedResource(t, d, db.Resource{Data: []byte("x"), Mime: "image/png"})
	_, err := d.Conn().Exec("DROP TABLE RESOURCES")
	require.NoError(t, err)

	_, ok, err := s.Mime(guid)
	assert.ErrorContains(t, err, "mimeFromResources")
	assert.False(t, ok)

	hashes, err := s.Resources(owner)
	assert.ErrorContains(t, err, "hashesFromOwner")
	assert.Nil(t, hashes)

	data, ok, err := s.Data(guid)
	assert.ErrorContains(t, err, "dataFromResources")
	assert.False(t, ok)
	assert.Nil(t, data)
	// a failed query is not a swallowed copy failure
	assert.Zero(t, logs.FilterMessage("reading resource data").Len())

	assert.NotErrorIs(t, err, ErrClosed)
}

func TestResourcesPadsAndDeduplicates(t *testing.T) {
	d, s, logs := newTestStatements(t)
	_, owner, err := d.CreateNote(db.Note{Title: "owner"})
	require.NoError(t, err)

	full := "5d41402abc4b2a76b9719d911017c592"
	g1, err := d.CreateResource(db.Resource{OwnerGUID: owner, Data: []byte("a")})
	require.NoError(t, err)
	g2, err := d.CreateResource(db.Resource{OwnerGUID: owner, Data: []byte("b")})
	require.NoError(t, err)
	g3, err := d.CreateResource(db.Resource{OwnerGUID: owner, Data: []byte("c")})
	require.NoError(t, err)
	require.NoError(t, d.SetResourceHash(g1, "abc123"))
	require.NoError(t, d.SetResourceHash(g2, "00000000000000000000000000abc123"))
	require.NoError(t, d.SetResourceHash(g3, full))

	hashes, err := s.Resources(owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"00000000000000000000000000abc123", full}, hashes)

	warned := logs.FilterMessage("padding hash").AllUntimed()
	require.Len(t, warned, 1)
	assert.Equal(t, "00000000000000000000000000abc123", warned[0].ContextMap()["hash"])
	assert.EqualValues(t, 32, warned[0].ContextMap()["length"])
}

func TestResourcesUnknownOwner(t *testing.T) {
	_, s, _ := newTestStatements(t)

	hashes, err := s.Resources("nobody")
	require.NoError(t, err)
	assert.NotNil(t, hashes)
	assert.Empty(t, hashes)
}

func TestDataHashPadsLegacyValue(t *testing.T) {
	d, s, _ := newTestStatements(t)
	_, guid := seedResource(t, d, db.Resource{Data: []byte("x")})
	require.NoError(t, d.SetResourceHash(guid, "abc123"))

	hash, ok, err := s.DataHash(guid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "00000000000000000000000000abc123", hash)
}
