package input

import (
	"sync"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/core"
)

type Options struct {
	Flags  core.Flags
	Logger logger.Logger
}

// Encoder turns key presses into the escape sequences for the current
// terminal modes.
//
// SetModes and SequenceFor may be called from different goroutines: the
// active map is swapped under a write lock and read under a read lock, so a
// lookup sees either the old map or the new one, never a mix.
type Encoder struct {
	mu      sync.RWMutex
	current *SequenceMap

	// Built maps by fingerprint of their flags. Maps are immutable, so a
	// previously built one can be made current again as is.
	built map[uint64]*SequenceMap

	logger logger.Logger
}

func NewEncoder(opts Options) *Encoder {
	e := &Encoder{
		built:  make(map[uint64]*SequenceMap),
		logger: logger.OrDefault(opts.Logger),
	}
	e.SetModes(opts.Flags)
	return e
}

// SetModes replaces the active map with the one for flags. The last call
// wins.
func (e *Encoder) SetModes(flags core.Flags) {
	m := e.mapFor(flags)

	e.mu.Lock()
	e.current = m
	e.mu.Unlock()
}

// SequenceFor returns the sequence for key pressed with mods under the
// current modes. The second result is false when the combination has no
// sequence and should be sent as text.
func (e *Encoder) SequenceFor(mods Modifiers, key KeyCode) (string, bool) {
	e.mu.RLock()
	m := e.current
	e.mu.RUnlock()

	return m.Lookup(mods, key)
}

// Modes returns the flags of the active map.
func (e *Encoder) Modes() core.Flags {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current.Flags()
}

// Map returns the active map.
func (e *Encoder) Map() *SequenceMap {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

func (e *Encoder) mapFor(flags core.Flags) *SequenceMap {
	key, err := hashstructure.Hash(flags, hashstructure.FormatV2, nil)
	if err != nil {
		e.logger.Warn("unable to fingerprint key modes, rebuilding", "modes", flags.String(), "error", err)
		return Rebuild(flags)
	}

	e.mu.RLock()
	m, ok := e.built[key]
	e.mu.RUnlock()
	if ok && m.Flags() == flags {
		return m
	}

	m = Rebuild(flags)
	e.logger.Debug("key map rebuilt", "modes", flags.String(), "entries", m.Len())

	e.mu.Lock()
	e.built[key] = m
	e.mu.Unlock()
	return m
}
