//go:build windows

package headless

import (
	"context"
	"errors"
)

// Run is not available on Windows, which has a console host of its own.
func Run(ctx context.Context, opts Options) error {
	return errors.ErrUnsupported
}
