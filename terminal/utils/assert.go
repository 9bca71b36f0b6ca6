// Package utils holds helpers shared by the terminal packages.
package utils

import "strings"

// Assert panics when condition is false. It guards invariants whose
// violation is a programming error, never input from the outside.
func Assert(condition bool, message ...string) {
	if condition {
		return
	}
	if len(message) == 0 {
		panic("assertion failed")
	}
	panic("assertion failed: " + strings.Join(message, " "))
}
