package prompt

import (
	"bufio"
	"fmt"
	"io"
)

// Stream reads lines from any reader and writes to any writer. It serves
// pipes, redirected input and tests.
type Stream struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// NewStream creates a Stream over r and w.
func NewStream(r io.Reader, w io.Writer) *Stream {
	return &Stream{scanner: bufio.NewScanner(r), w: w}
}

func (s *Stream) ReadLine(label string) (string, error) {
	if label != "" {
		fmt.Fprint(s.w, label)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return s.scanner.Text(), nil
}

func (s *Stream) WriteLine(text string) {
	fmt.Fprintln(s.w, text)
}
