package conpty

import (
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// channel is one duplex byte-stream channel pair. The parent end stays with
// the caller, the child end is handed to the child process. Each end is
// closed at most once.
type channel struct {
	name   string
	parent *os.File
	child  *os.File

	parentOnce sync.Once
	parentErr  error
	childOnce  sync.Once
	childErr   error
}

// newChannel creates a channel pair. Both ends are close-on-exec; the child
// end is only inherited through the descriptor slot the spawn puts it in.
var newChannel = socketPair

func (c *channel) closeParent() error {
	c.parentOnce.Do(func() { c.parentErr = c.parent.Close() })
	return c.parentErr
}

func (c *channel) closeChild() error {
	c.childOnce.Do(func() { c.childErr = c.child.Close() })
	return c.childErr
}

func (c *channel) close() error {
	var result error
	if err := c.closeChild(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.closeParent(); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}
