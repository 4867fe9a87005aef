package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// Terminal is an interactive IO with line editing and history, backed by
// liner.
type Terminal struct {
	line *liner.State
	out  io.Writer
}

// NewTerminal puts the terminal in raw mode. Close must be called to restore it.
func NewTerminal() *Terminal {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &Terminal{line: line, out: os.Stdout}
}

func (t *Terminal) ReadLine(label string) (string, error) {
	s, err := t.line.Prompt(label)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if s != "" {
		t.line.AppendHistory(s)
	}
	return s, nil
}

func (t *Terminal) ReadPassword(label string) (string, error) {
	s, err := t.line.PasswordPrompt(label)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return s, nil
}

func (t *Terminal) WriteLine(text string) {
	fmt.Fprintln(t.out, text)
}

// Clear erases the screen and moves the cursor home.
func (t *Terminal) Clear() {
	fmt.Fprint(t.out, "\033[2J\033[1;1H")
}

// Close restores the terminal mode.
func (t *Terminal) Close() error {
	return t.line.Close()
}

// Open returns a Terminal when stdin and stdout are both terminals and a
// Stream over them otherwise. The returned close func must be called on exit.
func Open() (IO, func() error) {
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		t := NewTerminal()
		return t, t.Close
	}
	return NewStream(os.Stdin, os.Stdout), func() error { return nil }
}
