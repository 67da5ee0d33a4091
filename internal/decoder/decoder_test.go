package decoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-applefile/internal/types"
)

func appleSingleFixture() ([]byte, []byte, []byte) {
	data := pattern(1000, 5)
	rsrc := pattern(300, 1)
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryFinderInfo, encodeFinderInfo("TEXT", "ttxt", 0x41ff)},
		testPart{types.ASEntryFileDates, encodeDates(86400, 172800, -86400, 0)},
		testPart{types.ASEntryComment, []byte("hello")},
		testPart{types.ASEntryResourceFork, rsrc},
		testPart{types.ASEntryDataFork, data},
	)
	return input, data, rsrc
}

func TestDecodeAppleSingle(t *testing.T) {
	input, data, rsrc := appleSingleFixture()
	s := newSession()

	n, err := s.dec.Write(input)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.Equal(t, uint64(len(input)), s.dec.Offset())

	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)

	assert.Equal(t, data, s.dest.Bytes())
	assert.Equal(t, rsrc, s.forks.data())
	assert.Equal(t, 1, s.forks.opens)
	assert.True(t, s.forks.handle.closed)
	assert.True(t, s.dest.closed)

	stats := s.dec.Stats()
	assert.Equal(t, LayoutAppleSingle, stats.Layout)
	assert.Equal(t, 5, stats.Entries)
	assert.Equal(t, uint64(len(data)), stats.DataForkBytes)
	assert.Equal(t, uint64(len(rsrc)), stats.ResourceForkBytes)
	assert.Equal(t, uint64(32+16+5), stats.MetadataBytes)
	assert.Zero(t, stats.StrayBytes)

	info := s.catalog.info
	assert.Equal(t, "TEXT", string(info.FinderInfo[0:4]))
	assert.Equal(t, "ttxt", string(info.FinderInfo[4:8]))
	assert.Equal(t, uint16(0x4000), binary.BigEndian.Uint16(info.FinderInfo[8:10]), "finder maintained flags must be cleared")
	assert.Equal(t, byte(0xAA), info.ExtendedFinderInfo[0])
	assert.Equal(t, byte(0xBB), info.ExtendedFinderInfo[15])

	assert.Equal(t, uint32(3029616000), info.CreateDate)
	assert.Equal(t, uint32(3029702400), info.ModifyDate)
	assert.Equal(t, uint32(3029443200), info.BackupDate)
	assert.Equal(t, "2000-01-02", types.MacTime(info.CreateDate).Format("2006-01-02"))

	assert.Equal(t, []byte("hello"), s.catalog.comment)
}

func TestChunkBoundaryInvariance(t *testing.T) {
	single, _, _ := appleSingleFixture()
	double, _ := buildContainer(types.AppleDoubleMagic,
		testPart{types.ASEntryComment, []byte("a comment")},
		testPart{types.ASEntryResourceFork, pattern(90, 3)},
		testPart{types.ASEntryFinderInfo, encodeFinderInfo("APPL", "MACS", 0x2001)},
		testPart{types.ASEntryFileDates, encodeDates(1, 2, 3, 4)},
	)
	double = append(double, pattern(120, 9)...)

	fixtures := map[string][]byte{
		"AppleSingle": single,
		"AppleDouble": double,
	}

	for name, input := range fixtures {
		t.Run(name, func(t *testing.T) {
			ref := newSession()
			require.NoError(t, ref.feed(input))
			refOutcome, err := ref.dec.Finish()
			require.NoError(t, err)
			require.Equal(t, OutcomeCommitted, refOutcome)

			check := func(t *testing.T, s *session) {
				outcome, err := s.dec.Finish()
				require.NoError(t, err)
				assert.Equal(t, refOutcome, outcome)
				assert.Equal(t, ref.dest.Bytes(), s.dest.Bytes())
				assert.Equal(t, ref.forks.data(), s.forks.data())
				assert.Equal(t, ref.catalog.info, s.catalog.info)
				assert.Equal(t, ref.catalog.comment, s.catalog.comment)
				assert.Equal(t, ref.dec.Metadata(), s.dec.Metadata())
				assert.Equal(t, ref.dec.Stats(), s.dec.Stats())
			}

			for split := 0; split <= len(input); split++ {
				s := newSession()
				require.NoError(t, s.feed(input, split))
				check(t, s)
			}

			t.Run("byte at a time", func(t *testing.T) {
				s := newSession()
				for i := range input {
					_, err := s.dec.Write(input[i : i+1])
					require.NoError(t, err)
				}
				check(t, s)
			})

			t.Run("uneven chunks", func(t *testing.T) {
				s := newSession()
				require.NoError(t, s.feed(input, 3, 25, 1, 13, 7, 40, 2, 100))
				check(t, s)
			})
		})
	}
}

func TestAppleDoubleInferredDataFork(t *testing.T) {
	// Header and two entries occupy the first 50 bytes, so the resource fork
	// starts at 50, the comment at 100 and the data fork at 110.
	rsrc := pattern(50, 11)
	comment := []byte("0123456789")
	input, entries := buildContainer(types.AppleDoubleMagic,
		testPart{types.ASEntryResourceFork, rsrc},
		testPart{types.ASEntryComment, comment},
	)
	require.Equal(t, uint32(50), entries[0].Offset)
	require.Equal(t, uint32(100), entries[1].Offset)

	trailing := pattern(777, 42)
	// Trailing bytes that look like a header must not be interpreted.
	copy(trailing, encodeHeader(types.AppleSingleMagic, types.AppleFileVersion, 1))
	input = append(input, trailing...)

	s := newSession()
	require.NoError(t, s.feed(input, 60, 1, 49))

	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)

	assert.Equal(t, rsrc, s.forks.data())
	assert.Equal(t, comment, s.dec.Metadata().Comment)
	assert.Equal(t, comment, s.catalog.comment)
	assert.Equal(t, trailing, s.dest.Bytes())
	assert.Equal(t, LayoutAppleDouble, s.dec.Stats().Layout)
	assert.Equal(t, uint64(len(trailing)), s.dec.Stats().DataForkBytes)
}

func TestAppleDoubleListedDataForkIsBounded(t *testing.T) {
	data := pattern(20, 3)
	rsrc := pattern(10, 9)
	input, entries := buildContainer(types.AppleDoubleMagic,
		testPart{types.ASEntryDataFork, data},
		testPart{types.ASEntryResourceFork, rsrc},
	)
	require.Equal(t, uint32(50), entries[0].Offset)
	require.Equal(t, uint32(70), entries[1].Offset)

	for _, split := range []int{1, 7, len(input)} {
		s := newSession()
		require.NoError(t, s.feed(input, split))

		outcome, err := s.dec.Finish()
		require.NoError(t, err)
		assert.Equal(t, OutcomeCommitted, outcome, "split %d", split)
		assert.Equal(t, data, s.dest.Bytes(), "split %d", split)
		assert.Equal(t, rsrc, s.forks.data(), "split %d", split)
		assert.Equal(t, uint64(len(data)), s.dec.Stats().DataForkBytes)
	}
}

func TestPassThrough(t *testing.T) {
	valid, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryResourceFork, pattern(20, 1)},
		testPart{types.ASEntryDataFork, pattern(20, 2)},
	)

	tests := []struct {
		name   string
		mutate func([]byte)
	}{
		{
			name:   "unknown magic",
			mutate: func(b []byte) { binary.BigEndian.PutUint32(b[0:4], 0x00051601) },
		},
		{
			name:   "version mismatch",
			mutate: func(b []byte) { binary.BigEndian.PutUint32(b[4:8], 0x00010000) },
		},
		{
			name:   "non-zero filler",
			mutate: func(b []byte) { b[23] = 1 },
		},
		{
			name:   "zero entries",
			mutate: func(b []byte) { binary.BigEndian.PutUint16(b[24:26], 0) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := bytes.Clone(valid)
			tt.mutate(input)

			s := newSession()
			require.NoError(t, s.feed(input, 5, 30))

			outcome, err := s.dec.Finish()
			require.NoError(t, err)
			assert.Equal(t, OutcomePassThrough, outcome)

			assert.Equal(t, input, s.dest.Bytes())
			assert.Nil(t, s.dec.Entries())
			assert.Nil(t, s.dec.Header())
			assert.Zero(t, s.forks.opens)
			assert.Zero(t, s.catalog.gets)
			assert.Zero(t, s.catalog.sets)
			assert.Equal(t, LayoutPassThrough, s.dec.Stats().Layout)
		})
	}
}

func TestShortInputPassesThroughOnFinish(t *testing.T) {
	s := newSession()
	_, err := s.dec.Write([]byte("short"))
	require.NoError(t, err)
	assert.Zero(t, s.dest.Len())

	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomePassThrough, outcome)
	assert.Equal(t, "short", s.dest.String())
}

func TestEmptyInput(t *testing.T) {
	s := newSession()
	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomePassThrough, outcome)
	assert.Zero(t, s.dest.Len())
	assert.True(t, s.dest.closed)
}

func TestMismatchedMetadataLengths(t *testing.T) {
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryFileDates, pattern(12, 1)},
		testPart{types.ASEntryFinderInfo, pattern(16, 2)},
		testPart{types.ASEntryComment, []byte("still parsed")},
		testPart{types.ASEntryResourceFork, []byte("rsrc")},
		testPart{types.ASEntryDataFork, []byte("data")},
	)

	s := newSession()
	s.catalog.info.CreateDate = 12345
	s.catalog.info.FinderInfo[0] = 'X'
	require.NoError(t, s.feed(input, 40, 40, 3))

	meta := s.dec.Metadata()
	assert.False(t, meta.HasDates)
	assert.Equal(t, types.ASFileDatesT{}, meta.Dates)
	assert.False(t, meta.HasFinderInfo)
	assert.Equal(t, [types.FInfoSize]byte{}, meta.FinderInfo)
	assert.Equal(t, []byte("still parsed"), meta.Comment)
	assert.Equal(t, uint64(len(input)), s.dec.Offset())

	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.Equal(t, "data", s.dest.String())
	assert.Equal(t, uint32(12345), s.catalog.info.CreateDate)
	assert.Equal(t, byte('X'), s.catalog.info.FinderInfo[0])
}

func TestCommentTruncated(t *testing.T) {
	long := pattern(300, 7)
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryComment, long},
		testPart{types.ASEntryResourceFork, []byte("r")},
		testPart{types.ASEntryDataFork, []byte("after")},
	)

	s := newSession()
	require.NoError(t, s.feed(input, 100, 100))

	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.Equal(t, long[:types.MaxCommentSize], s.catalog.comment)
	assert.Equal(t, "after", s.dest.String())
	assert.Equal(t, uint64(300), s.dec.Stats().MetadataBytes)
}

func TestIncompleteForksSkipFinalize(t *testing.T) {
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryFinderInfo, encodeFinderInfo("TEXT", "ttxt", 0)},
		testPart{types.ASEntryDataFork, pattern(64, 1)},
		testPart{types.ASEntryResourceFork, pattern(100, 2)},
	)

	for _, cut := range []int{1, 10, 100, 150} {
		s := newSession()
		require.NoError(t, s.feed(input[:len(input)-cut]))

		outcome, err := s.dec.Finish()
		require.NoError(t, err, "cut %d", cut)
		assert.Equal(t, OutcomeIncomplete, outcome, "cut %d", cut)
		assert.Zero(t, s.catalog.gets, "cut %d", cut)
		assert.Zero(t, s.catalog.sets, "cut %d", cut)
		assert.Zero(t, s.catalog.commentCalls, "cut %d", cut)
	}
}

func TestMissingResourceForkEntrySkipsFinalize(t *testing.T) {
	single, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryDataFork, pattern(40, 1)},
		testPart{types.ASEntryFinderInfo, encodeFinderInfo("TEXT", "ttxt", 0)},
	)
	double, _ := buildContainer(types.AppleDoubleMagic,
		testPart{types.ASEntryFinderInfo, encodeFinderInfo("TEXT", "ttxt", 0)},
	)
	double = append(double, pattern(10, 2)...)

	tests := []struct {
		name     string
		input    []byte
		dataFork []byte
	}{
		{name: "AppleSingle", input: single, dataFork: pattern(40, 1)},
		{name: "AppleDouble", input: double, dataFork: pattern(10, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession()
			require.NoError(t, s.feed(tt.input, 17))

			outcome, err := s.dec.Finish()
			require.NoError(t, err)
			assert.Equal(t, OutcomeIncomplete, outcome)
			assert.Equal(t, tt.dataFork, s.dest.Bytes())
			assert.True(t, s.dec.Metadata().HasFinderInfo)
			assert.Zero(t, s.catalog.gets)
			assert.Zero(t, s.catalog.sets)
			assert.Zero(t, s.forks.opens)
		})
	}
}

func TestIncompleteEntryTable(t *testing.T) {
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryDataFork, pattern(8, 1)},
		testPart{types.ASEntryResourceFork, pattern(8, 2)},
	)

	s := newSession()
	require.NoError(t, s.feed(input[:types.ASHeaderSize+5]))

	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeIncomplete, outcome)
	assert.Zero(t, s.dest.Len())
}

func TestResourceForkOpenedLazily(t *testing.T) {
	t.Run("no resource fork entry", func(t *testing.T) {
		input, _ := buildContainer(types.AppleSingleMagic,
			testPart{types.ASEntryDataFork, pattern(32, 1)},
		)
		s := newSession()
		require.NoError(t, s.feed(input))
		outcome, err := s.dec.Finish()
		require.NoError(t, err)
		assert.Equal(t, OutcomeIncomplete, outcome)
		assert.Zero(t, s.forks.opens)
	})

	t.Run("empty resource fork entry", func(t *testing.T) {
		input, _ := buildContainer(types.AppleDoubleMagic,
			testPart{types.ASEntryResourceFork, nil},
			testPart{types.ASEntryComment, []byte("c")},
		)
		s := newSession()
		require.NoError(t, s.feed(input))
		outcome, err := s.dec.Finish()
		require.NoError(t, err)
		assert.Equal(t, OutcomeCommitted, outcome)
		assert.Zero(t, s.forks.opens)
	})

	t.Run("opened once across many writes", func(t *testing.T) {
		input, _ := buildContainer(types.AppleSingleMagic,
			testPart{types.ASEntryResourceFork, pattern(500, 1)},
		)
		s := newSession()
		for i := 0; i < len(input); i += 9 {
			_, err := s.dec.Write(input[i:min(i+9, len(input))])
			require.NoError(t, err)
		}
		assert.Equal(t, 1, s.forks.opens)
		assert.Equal(t, pattern(500, 1), s.forks.data())
	})
}

func TestResourceForkOpenFailure(t *testing.T) {
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryResourceFork, pattern(10, 1)},
		testPart{types.ASEntryDataFork, pattern(10, 2)},
	)

	s := newSession()
	s.forks.openErr = errors.New("permission denied")

	n, err := s.dec.Write(input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceForkOpen)
	assert.Equal(t, types.ASHeaderSize+2*types.ASEntrySize, n)

	_, err = s.dec.Write([]byte{0})
	assert.ErrorIs(t, err, ErrSessionFailed)
	assert.ErrorIs(t, err, ErrResourceForkOpen)

	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Zero(t, s.catalog.sets)
}

func TestResourceForkWithoutOpener(t *testing.T) {
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryResourceFork, pattern(10, 1)},
	)

	dec := New(&memFork{}, "target", Options{})
	_, err := dec.Write(input)
	assert.ErrorIs(t, err, ErrResourceForkOpen)
}

func TestResourceForkShortWrite(t *testing.T) {
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryResourceFork, pattern(40, 1)},
	)

	s := newSession()
	s.forks.shortBy = 1

	_, err := s.dec.Write(input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDestinationWrite)
	require.NotNil(t, s.forks.handle)
	assert.True(t, s.forks.handle.closed, "resource fork must be released on failure")
	assert.Equal(t, err, s.dec.Err())
}

func TestDataForkWriteFailure(t *testing.T) {
	input, _ := buildContainer(types.AppleSingleMagic,
		testPart{types.ASEntryResourceFork, pattern(10, 1)},
		testPart{types.ASEntryDataFork, pattern(100, 2)},
	)

	s := newSession()
	s.dest.failAt = 50

	_, err := s.dec.Write(input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDestinationWrite)
	assert.True(t, s.forks.handle.closed)

	outcome, _ := s.dec.Finish()
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Zero(t, s.catalog.sets)
}

func TestStrayAndUnknownParts(t *testing.T) {
	// header(26) + 3 entries(36) = 62; 7 stray bytes, then comment, unknown, data fork
	entries := []types.ASEntryT{
		{EntryID: types.ASEntryComment, Offset: 69, Length: 3},
		{EntryID: types.ASEntryIDT(99), Offset: 72, Length: 4},
		{EntryID: types.ASEntryDataFork, Offset: 76, Length: 6},
	}
	input := encodeHeader(types.AppleSingleMagic, types.AppleFileVersion, 3)
	input = append(input, encodeEntries(entries...)...)
	input = append(input, []byte("strays!")...)
	input = append(input, []byte("abc")...)
	input = append(input, []byte("????")...)
	input = append(input, []byte("datafk")...)
	input = append(input, []byte("trailing")...)

	for _, chunk := range []int{1, 4, len(input)} {
		s := newSession()
		for i := 0; i < len(input); i += chunk {
			_, err := s.dec.Write(input[i:min(i+chunk, len(input))])
			require.NoError(t, err)
		}

		outcome, err := s.dec.Finish()
		require.NoError(t, err)
		assert.Equal(t, OutcomeIncomplete, outcome, "no resource fork entry")
		assert.Equal(t, "datafk", s.dest.String())
		assert.Equal(t, []byte("abc"), s.dec.Metadata().Comment)

		stats := s.dec.Stats()
		assert.Equal(t, uint64(7+8), stats.StrayBytes)
		assert.Equal(t, uint64(4), stats.SkippedBytes)
		assert.Equal(t, uint64(len(input)), stats.TotalBytes)
	}
}

func TestAppleDoubleGapBeforeDataFork(t *testing.T) {
	// The inferred data fork starts after a gap that no entry claims.
	entries := []types.ASEntryT{
		{EntryID: types.ASEntryComment, Offset: 62, Length: 2},
		{EntryID: types.ASEntryIconBW, Offset: 200, Length: 0},
		{EntryID: types.ASEntryMacFileInfo, Offset: 67, Length: 5},
	}
	input := encodeHeader(types.AppleDoubleMagic, types.AppleFileVersion, 3)
	input = append(input, encodeEntries(entries...)...)
	input = append(input, []byte("hi")...)
	input = append(input, []byte("gap")...)
	input = append(input, []byte("attrs")...)
	input = append(input, []byte("data fork")...)

	s := newSession()
	require.NoError(t, s.feed(input, 39))
	_, err := s.dec.Finish()
	require.NoError(t, err)

	// zero length entries never match but still move the bound, so the
	// bytes after the last real part are strays rather than data fork
	assert.Equal(t, "", s.dest.String())
	assert.Equal(t, []byte("hi"), s.dec.Metadata().Comment)
	assert.Equal(t, uint64(5), s.dec.Stats().SkippedBytes)
	assert.Equal(t, uint64(3+9), s.dec.Stats().StrayBytes)
}

func TestFinishTwice(t *testing.T) {
	s := newSession()
	_, err := s.dec.Finish()
	require.NoError(t, err)

	outcome, err := s.dec.Finish()
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, OutcomePassThrough, outcome)

	_, err = s.dec.Write([]byte{1})
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.NoError(t, s.dec.Close())
	assert.ErrorIs(t, s.dec.Flush(), ErrSessionClosed)
}

func TestAbort(t *testing.T) {
	input, _, _ := appleSingleFixture()
	s := newSession()

	// stop half way through the resource fork
	require.NoError(t, s.feed(input[:300]))
	require.NotNil(t, s.forks.handle)

	require.NoError(t, s.dec.Abort())
	assert.True(t, s.forks.handle.closed)
	assert.True(t, s.dest.closed)
	assert.Equal(t, OutcomeAborted, s.dec.Outcome())
	assert.Zero(t, s.catalog.sets)
	assert.NoError(t, s.dec.Close())
}

func TestCommentsUnsupported(t *testing.T) {
	input, _, _ := appleSingleFixture()
	s := newSession()
	s.catalog.noComments = true
	require.NoError(t, s.feed(input))

	outcome, err := s.dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.Equal(t, 1, s.catalog.sets)
	assert.Zero(t, s.catalog.commentCalls)
}

func TestMetadataWriteFailure(t *testing.T) {
	input, _, _ := appleSingleFixture()
	s := newSession()
	s.catalog.setErr = errors.New("read-only volume")
	require.NoError(t, s.feed(input))

	outcome, err := s.dec.Finish()
	assert.ErrorIs(t, err, ErrMetadataWrite)
	assert.Equal(t, OutcomeFailed, outcome)
}

func TestCloseErrorFailsSession(t *testing.T) {
	input, _, _ := appleSingleFixture()
	s := newSession()
	s.dest.closeErr = errors.New("flush failed")
	require.NoError(t, s.feed(input))

	outcome, err := s.dec.Finish()
	assert.ErrorIs(t, err, ErrDestinationWrite)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Zero(t, s.catalog.sets)
}

func TestFlushForwards(t *testing.T) {
	s := newSession()
	require.NoError(t, s.dec.Flush())
	assert.Equal(t, 1, s.dest.flushes)
}

func TestNilCatalogStillAudits(t *testing.T) {
	input, data, _ := appleSingleFixture()
	dest := &memFork{}
	dec := New(dest, "target", Options{ResourceForks: &memResourceForks{}})
	_, err := dec.Write(input)
	require.NoError(t, err)

	outcome, err := dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.Equal(t, data, dest.Bytes())
}

func TestNilDestinationDiscards(t *testing.T) {
	input, _, _ := appleSingleFixture()
	dec := New(nil, "target", Options{ResourceForks: &memResourceForks{}})
	_, err := dec.Write(input)
	require.NoError(t, err)
	outcome, err := dec.Finish()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
}
