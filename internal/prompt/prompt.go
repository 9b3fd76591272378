// Package prompt reads secrets interactively.
package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrMismatch is returned when the confirmation pass does not match the
// first entry.
var ErrMismatch = errors.New("passwords do not match")

// Password reads a password from stdin without echo, asking for a
// confirmation pass when confirm is set. When stdin is not a terminal a
// single line is read instead, so piped and scripted runs keep working.
func Password(confirm bool) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return readLine(os.Stdin)
	}

	fmt.Fprint(os.Stderr, "Enter password: ")

	password, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	if confirm {
		fmt.Fprint(os.Stderr, "Confirm password: ")

		confirmation, err := term.ReadPassword(fd)

		fmt.Fprintln(os.Stderr)

		if err != nil {
			return nil, fmt.Errorf("reading confirmation: %w", err)
		}

		if !bytes.Equal(password, confirmation) {
			return nil, ErrMismatch
		}
	}

	return password, nil
}

// readLine consumes one newline-terminated line, trimming the line ending.
func readLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return bytes.TrimRight(line, "\r\n"), nil
}
