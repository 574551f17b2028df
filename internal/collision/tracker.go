// Package collision detects xxHash64 collisions between trace-cache source
// names (net.sta.loc.chan[.quality]) and rejects repeated source names.
package collision

import (
	"github.com/geokit/mseed2sac/errs"
)

// Tracker tracks source names and detects hash collisions while building a
// trace-cache index. It maintains a map of hash-to-name mappings and an
// ordered list of every tracked name.
type Tracker struct {
	sourceNames     map[uint64]string // Hash → name mapping for collision detection
	sourceNamesList []string          // Ordered list for index encoding
	hasCollision    bool              // Whether a collision has been detected
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		sourceNames:     make(map[uint64]string),
		sourceNamesList: make([]string, 0),
		hasCollision:    false,
	}
}

// TrackSourceID tracks a source hash supplied directly by the caller, with
// no corresponding name available. Returns an error if the hash was already
// used, since a collision can't be resolved without the name.
func (t *Tracker) TrackSourceID(hash uint64) error {
	if _, exists := t.sourceNames[hash]; exists {
		return errs.ErrHashCollision
	}

	t.sourceNames[hash] = ""

	return nil
}

// TrackSource tracks a source name with its hash.
// Returns an error if:
//   - the name is empty (ErrInvalidSourceName)
//   - the same name is tracked twice (ErrSourceAlreadyStarted)
//
// Hash collisions (different names, same hash) are NOT errors here. Instead
// the collision flag is set (see HasCollision); the trace-cache index still
// stores hashes only.
func (t *Tracker) TrackSource(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidSourceName
	}

	if existingName, exists := t.sourceNames[hash]; exists {
		if existingName != name {
			t.hasCollision = true
		} else {
			return errs.ErrSourceAlreadyStarted
		}
	}

	t.sourceNames[hash] = name
	t.sourceNamesList = append(t.sourceNamesList, name)

	return nil
}

// HasCollision returns true if a collision has been detected.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// GetSourceNames returns the ordered list of tracked source names, in the
// order TrackSource was called.
func (t *Tracker) GetSourceNames() []string {
	return t.sourceNamesList
}

// Count returns the number of tracked sources.
func (t *Tracker) Count() int {
	return len(t.sourceNamesList)
}

// Reset clears all tracked sources and collision state, allowing the
// tracker to be reused for encoding a new trace-cache index.
func (t *Tracker) Reset() {
	for k := range t.sourceNames {
		delete(t.sourceNames, k)
	}
	t.sourceNamesList = t.sourceNamesList[:0]
	t.hasCollision = false
}
