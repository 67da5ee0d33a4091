package decoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/deploymenttheory/go-applefile/internal/types"
)

// testPart is a part to place in a test container
type testPart struct {
	id   types.ASEntryIDT
	data []byte
}

// buildContainer lays the parts out back to back after the entry table and
// returns the container together with the entries it declares
func buildContainer(magic uint32, parts ...testPart) ([]byte, []types.ASEntryT) {
	offset := uint32(types.ASHeaderSize + len(parts)*types.ASEntrySize)
	entries := make([]types.ASEntryT, len(parts))
	for i, p := range parts {
		entries[i] = types.ASEntryT{EntryID: p.id, Offset: offset, Length: uint32(len(p.data))}
		offset += uint32(len(p.data))
	}

	buf := encodeHeader(magic, types.AppleFileVersion, uint16(len(entries)))
	buf = append(buf, encodeEntries(entries...)...)
	for _, p := range parts {
		buf = append(buf, p.data...)
	}
	return buf, entries
}

func encodeHeader(magic, version uint32, count uint16) []byte {
	buf := make([]byte, types.ASHeaderSize)
	binary.BigEndian.PutUint32(buf[0:4], magic)
	binary.BigEndian.PutUint32(buf[4:8], version)
	binary.BigEndian.PutUint16(buf[24:26], count)
	return buf
}

func encodeEntries(entries ...types.ASEntryT) []byte {
	buf := make([]byte, len(entries)*types.ASEntrySize)
	for i, e := range entries {
		rec := buf[i*types.ASEntrySize:]
		binary.BigEndian.PutUint32(rec[0:4], uint32(e.EntryID))
		binary.BigEndian.PutUint32(rec[4:8], e.Offset)
		binary.BigEndian.PutUint32(rec[8:12], e.Length)
	}
	return buf
}

func encodeDates(create, modify, backup, access int32) []byte {
	buf := make([]byte, types.ASFileDatesSize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(create))
	binary.BigEndian.PutUint32(buf[4:8], uint32(modify))
	binary.BigEndian.PutUint32(buf[8:12], uint32(backup))
	binary.BigEndian.PutUint32(buf[12:16], uint32(access))
	return buf
}

func encodeFinderInfo(fileType, creator string, flags uint16) []byte {
	buf := make([]byte, types.ASFinderInfoSize)
	copy(buf[0:4], fileType)
	copy(buf[4:8], creator)
	binary.BigEndian.PutUint16(buf[8:10], flags)
	binary.BigEndian.PutUint16(buf[10:12], 64)
	binary.BigEndian.PutUint16(buf[12:14], 128)
	buf[types.FInfoSize] = 0xAA
	buf[types.ASFinderInfoSize-1] = 0xBB
	return buf
}

func pattern(n int, seed byte) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = seed + byte(i*7)
	}
	return buf
}

// memFork records data-fork writes
type memFork struct {
	bytes.Buffer
	flushes  int
	closed   bool
	failAt   int
	shortBy  int
	closeErr error
}

func (m *memFork) Write(p []byte) (int, error) {
	if m.failAt > 0 && m.Len()+len(p) > m.failAt {
		return 0, errors.New("disk full")
	}
	if m.shortBy > 0 && len(p) > m.shortBy {
		n, _ := m.Buffer.Write(p[:len(p)-m.shortBy])
		return n, nil
	}
	return m.Buffer.Write(p)
}

func (m *memFork) Flush() error {
	m.flushes++
	return nil
}

func (m *memFork) Close() error {
	m.closed = true
	return m.closeErr
}

// memResourceForks records resource-fork opens and writes
type memResourceForks struct {
	opens   int
	openErr error
	shortBy int
	handle  *memHandle
}

type memHandle struct {
	bytes.Buffer
	shortBy int
	closed  bool
}

func (h *memHandle) Write(p []byte) (int, error) {
	if h.shortBy > 0 && len(p) > h.shortBy {
		return h.Buffer.Write(p[:len(p)-h.shortBy])
	}
	return h.Buffer.Write(p)
}

func (h *memHandle) Close() error {
	h.closed = true
	return nil
}

func (m *memResourceForks) OpenResourceFork(ref types.FileRef) (io.WriteCloser, error) {
	m.opens++
	if m.openErr != nil {
		return nil, m.openErr
	}
	m.handle = &memHandle{shortBy: m.shortBy}
	return m.handle, nil
}

func (m *memResourceForks) data() []byte {
	if m.handle == nil {
		return nil
	}
	return m.handle.Bytes()
}

// memCatalog is an in-memory host catalog
type memCatalog struct {
	info         types.CatalogInfo
	gets         int
	sets         int
	comment      []byte
	noComments   bool
	setErr       error
	commentCalls int
}

func (m *memCatalog) GetMetadata(ref types.FileRef) (*types.CatalogInfo, error) {
	m.gets++
	info := m.info
	return &info, nil
}

func (m *memCatalog) SetMetadata(ref types.FileRef, info *types.CatalogInfo) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.info = *info
	return nil
}

func (m *memCatalog) SupportsComments(ref types.FileRef) bool {
	return !m.noComments
}

func (m *memCatalog) SetComment(ref types.FileRef, comment []byte) error {
	m.commentCalls++
	m.comment = append([]byte(nil), comment...)
	return nil
}

// session bundles a decoder with its fakes
type session struct {
	dec     *Decoder
	dest    *memFork
	forks   *memResourceForks
	catalog *memCatalog
}

func newSession() *session {
	s := &session{
		dest:    &memFork{},
		forks:   &memResourceForks{},
		catalog: &memCatalog{},
	}
	s.dec = New(s.dest, "target", Options{ResourceForks: s.forks, Metadata: s.catalog})
	return s
}

// feed writes input in chunks of the given sizes, then the remainder in one write
func (s *session) feed(input []byte, sizes ...int) error {
	for _, n := range sizes {
		if n > len(input) {
			n = len(input)
		}
		if _, err := s.dec.Write(input[:n]); err != nil {
			return err
		}
		input = input[n:]
	}
	if len(input) > 0 {
		_, err := s.dec.Write(input)
		return err
	}
	return nil
}
