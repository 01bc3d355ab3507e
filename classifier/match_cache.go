package classifier

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// MatchState is the cached outcome of a match test.
type MatchState uint8

const (
	// MatchUnknown means the instance was never checked.
	MatchUnknown MatchState = iota
	// MatchHit means the classifier matched the instance.
	MatchHit
	// MatchMiss means the classifier did not match the instance.
	MatchMiss
)

func (s MatchState) String() string {
	switch s {
	case MatchHit:
		return "match"
	case MatchMiss:
		return "no-match"
	default:
		return "unknown"
	}
}

// matchCache records match results per instance index.
// Both bitmaps are allocated on first use.
type matchCache struct {
	checked *roaring.Bitmap
	matched *roaring.Bitmap
}

func cacheKey(index int) (uint32, bool) {
	if index < 0 || index > math.MaxUint32 {
		return 0, false
	}
	return uint32(index), true
}

func (m *matchCache) lookup(index int) MatchState {
	key, ok := cacheKey(index)
	if !ok || m.checked == nil || !m.checked.Contains(key) {
		return MatchUnknown
	}
	if m.matched.Contains(key) {
		return MatchHit
	}
	return MatchMiss
}

func (m *matchCache) record(index int, matched bool) {
	key, ok := cacheKey(index)
	if !ok {
		return
	}
	if m.checked == nil {
		m.checked = roaring.New()
		m.matched = roaring.New()
	}
	m.checked.Add(key)
	if matched {
		m.matched.Add(key)
	}
}

func (m *matchCache) counts() (checked, matched uint64) {
	if m.checked == nil {
		return 0, 0
	}
	return m.checked.GetCardinality(), m.matched.GetCardinality()
}

func (m *matchCache) reset() {
	m.checked = nil
	m.matched = nil
}
