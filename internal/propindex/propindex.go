// Package propindex provides a hash-indexed lookup from a Property id to its
// position in an ordered property list. XISF requires property ids to be
// unique within their owning element (spec section 4.2), so the index
// doubles as the duplicate-id check: Insert reports whether an id was
// already present.
//
// Lookups hash the id with xxhash and key a map on the 64-bit digest rather
// than the string itself, trading a (vanishingly unlikely) collision check
// for faster comparisons on the long, dotted identifiers XISF favors
// ("Instrument:Camera:Gain"). On the rare digest collision, a secondary
// string-keyed map takes over entirely so correctness never depends on the
// hash being collision-free.
package propindex

import "github.com/cespare/xxhash/v2"

// Index maps property ids to their position in an ordered slice.
type Index struct {
	byHash map[uint64]string // hash -> first id that produced it, for collision detection
	byPos  map[uint64]int    // hash -> position, valid only while byID is nil
	byID   map[string]int    // id -> position, populated lazily on first hash collision
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		byHash: make(map[uint64]string),
		byPos:  make(map[uint64]int),
	}
}

// hashID folds a property id down to a 64-bit digest for the byHash map.
// Ids are dotted identifiers XISF favors ("Instrument:Camera:Gain"), not
// attacker-controlled input, so a non-cryptographic hash is appropriate.
func hashID(id string) uint64 { return xxhash.Sum64String(id) }

// Has reports whether id is already indexed.
func (idx *Index) Has(id string) bool {
	if idx.byID != nil {
		_, ok := idx.byID[id]
		return ok
	}

	h := hashID(id)
	existing, ok := idx.byHash[h]

	return ok && existing == id
}

// Position returns the slice index for id.
func (idx *Index) Position(id string) (int, bool) {
	if idx.byID != nil {
		pos, ok := idx.byID[id]
		return pos, ok
	}

	h := hashID(id)
	existing, ok := idx.byHash[h]
	if !ok || existing != id {
		return 0, false
	}

	return idx.byPos[h], true
}

// Insert records id at position pos. It reports false without modifying the
// index if id is already present, so callers can reject duplicate property
// ids per spec section 4.2.
func (idx *Index) Insert(id string, pos int) bool {
	if idx.Has(id) {
		return false
	}

	if idx.byID != nil {
		idx.byID[id] = pos
		return true
	}

	h := hashID(id)
	if existing, collided := idx.byHash[h]; collided && existing != id {
		idx.promoteToStringKeyed()
		idx.byID[id] = pos

		return true
	}

	idx.byHash[h] = id
	idx.byPos[h] = pos

	return true
}

// Remove drops id from the index. Positions of other entries are not
// renumbered; callers that delete from the backing slice must call
// Reindex afterward.
func (idx *Index) Remove(id string) {
	if idx.byID != nil {
		delete(idx.byID, id)
		return
	}

	h := hashID(id)
	if existing, ok := idx.byHash[h]; ok && existing == id {
		delete(idx.byHash, h)
		delete(idx.byPos, h)
	}
}

// Reindex rebuilds position bookkeeping from scratch given the current
// ordered list of ids, e.g. after a property is removed from the backing
// slice and every later entry shifted down by one.
func (idx *Index) Reindex(ids []string) {
	*idx = *New()
	for pos, id := range ids {
		idx.forceInsert(id, pos)
	}
}

// forceInsert is Insert without the duplicate check, used by Reindex where
// the caller already guarantees uniqueness.
func (idx *Index) forceInsert(id string, pos int) {
	if idx.byID != nil {
		idx.byID[id] = pos
		return
	}

	h := hashID(id)
	if existing, collided := idx.byHash[h]; collided && existing != id {
		idx.promoteToStringKeyed()
		idx.byID[id] = pos

		return
	}

	idx.byHash[h] = id
	idx.byPos[h] = pos
}

// promoteToStringKeyed migrates all entries into idx.byID after a hash
// collision is observed, so correctness no longer depends on the digest
// being collision-free.
func (idx *Index) promoteToStringKeyed() {
	idx.byID = make(map[string]int, len(idx.byHash))
	for h, id := range idx.byHash {
		idx.byID[id] = idx.byPos[h]
	}

	idx.byHash = nil
	idx.byPos = nil
}

// Len returns the number of indexed ids.
func (idx *Index) Len() int {
	if idx.byID != nil {
		return len(idx.byID)
	}

	return len(idx.byHash)
}
