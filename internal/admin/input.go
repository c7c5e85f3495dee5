package admin

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Terminal seams, replaced in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// promptPassword prompts for a password. On a terminal it is read without
// echo, otherwise one line is read from the input.
func (a *App) promptPassword() (string, error) {
	fmt.Fprint(a.out, "Enter password: ")

	if a.fd >= 0 && isTerminal(a.fd) {
		pw, err := readPassword(a.fd)
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
