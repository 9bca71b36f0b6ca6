package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/core"
)

func TestEncoder_SetModesReplacesMap(t *testing.T) {
	e := NewEncoder(Options{Logger: logger.Discard})

	seq, ok := e.SequenceFor(ModNone, KeyUp)
	assert.True(t, ok)
	assert.Equal(t, "\x1b[A", seq)

	first := e.Map()
	e.SetModes(core.Flags{CursorKey: true})
	seq, _ = e.SequenceFor(ModNone, KeyUp)
	assert.Equal(t, "\x1bOA", seq)
	assert.Equal(t, core.Flags{CursorKey: true}, e.Modes())

	// The old map was not modified by the rebuild.
	seq, _ = first.Lookup(ModNone, KeyUp)
	assert.Equal(t, "\x1b[A", seq)

	e.SetModes(core.Flags{})
	assert.Same(t, first, e.Map(), "maps are reused for identical modes")
}

func TestEncoder_UnregisteredIsNotAnError(t *testing.T) {
	e := NewEncoder(Options{Logger: logger.Discard})
	seq, ok := e.SequenceFor(ModNone, KeyNumpad4)
	assert.False(t, ok)
	assert.Empty(t, seq)
}

func TestEncoder_ConcurrentLookups(t *testing.T) {
	e := NewEncoder(Options{Logger: logger.Discard})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				seq, ok := e.SequenceFor(ModNone, KeyUp)
				assert.True(t, ok)
				assert.Contains(t, []string{"\x1b[A", "\x1bOA"}, seq)
			}
		}()
	}
	for i := range 100 {
		e.SetModes(core.Flags{CursorKey: i%2 == 0})
	}
	wg.Wait()
}
