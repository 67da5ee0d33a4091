package decoder

import "github.com/deploymenttheory/go-applefile/internal/types"

// stagingCapacity is the largest fixed record staged outside of the entry table.
const stagingCapacity = max(types.ASHeaderSize, types.ASFinderInfoSize, types.ASFileDatesSize, types.MaxCommentSize)

// accumulator stages a fixed-size record that may arrive split across writes.
// It counts need bytes but stores at most keep of them, so a part with a large
// declared length never grows memory beyond what its slot can hold.
type accumulator struct {
	buf  []byte
	need uint64
	have uint64
	keep int
}

func newAccumulator() accumulator {
	return accumulator{buf: make([]byte, 0, stagingCapacity)}
}

// reset prepares the accumulator for a record of need bytes, retaining the first keep bytes
func (a *accumulator) reset(need uint64, keep int) {
	if uint64(keep) > need {
		keep = int(need)
	}
	if cap(a.buf) < keep {
		a.buf = make([]byte, 0, keep)
	}
	a.buf = a.buf[:0]
	a.need = need
	a.have = 0
	a.keep = keep
}

// fill consumes as much of p as the record still needs and returns the count consumed
func (a *accumulator) fill(p []byte) int {
	n := len(p)
	if rem := a.need - a.have; uint64(n) > rem {
		n = int(rem)
	}
	if room := a.keep - len(a.buf); room > 0 {
		a.buf = append(a.buf, p[:min(room, n)]...)
	}
	a.have += uint64(n)
	return n
}

func (a *accumulator) complete() bool {
	return a.have == a.need
}

// bytes returns the retained bytes. The slice is only valid until the next reset.
func (a *accumulator) bytes() []byte {
	return a.buf
}

// pending reports whether a record has been started but not completed
func (a *accumulator) pending() bool {
	return a.have > 0 && !a.complete()
}
