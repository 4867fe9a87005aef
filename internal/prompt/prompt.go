// Package prompt is the only place that talks to the user's terminal. Menus
// and the review engine read answers and print results through IO.
package prompt

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInputClosed is returned once the user can no longer type anything: end
// of input, Ctrl-D or Ctrl-C.
var ErrInputClosed = errors.New("input closed")

// IO reads lines from and writes lines to the user.
type IO interface {
	// ReadLine shows label and blocks until the user enters a line. The
	// trailing newline is not included.
	ReadLine(label string) (string, error)
	// WriteLine prints text followed by a newline. It is best effort.
	WriteLine(text string)
}

// PasswordReader is implemented by IO adapters that can read a line without
// echoing it.
type PasswordReader interface {
	ReadPassword(label string) (string, error)
}

// Clearer is implemented by IO adapters that can clear the screen.
type Clearer interface {
	Clear()
}

// Text reads one line and trims surrounding whitespace.
func Text(io IO, label string) (string, error) {
	line, err := io.ReadLine(label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// OptionalText reads one line and returns nil when it is blank, so callers
// can tell "leave unchanged" from a value.
func OptionalText(io IO, label string) (*string, error) {
	s, err := Text(io, label)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// Int64 reads an integer, asking again until the user enters one.
func Int64(io IO, label string) (int64, error) {
	for {
		s, err := Text(io, label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return n, nil
		}
		io.WriteLine("Please enter a number.")
	}
}

// Confirm reads a yes/no answer. Anything other than "y" or "yes" is no.
func Confirm(io IO, label string) (bool, error) {
	s, err := Text(io, label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Password reads a secret without echo when the adapter supports it.
func Password(io IO, label string) (string, error) {
	if pr, ok := io.(PasswordReader); ok {
		return pr.ReadPassword(label)
	}
	return io.ReadLine(label)
}

// Clear clears the screen when the adapter supports it.
func Clear(io IO) {
	if c, ok := io.(Clearer); ok {
		c.Clear()
	}
}
