//go:build windows

package conpty

import (
	"errors"
	"fmt"
)

func socketPair(name string) (*channel, error) {
	return nil, fmt.Errorf("socketpair %s: %w", name, errors.ErrUnsupported)
}
