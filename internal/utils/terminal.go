package utils

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// TerminalPrompt collects passphrases interactively. It implements the
// repository's PassphrasePrompt contract: when confirm is set, the user
// is asked twice and both answers must match.
type TerminalPrompt struct{}

func (TerminalPrompt) Prompt(message string, confirm bool) ([]byte, error) {
	passphrase, err := ReadPassphrase(message)
	if err != nil {
		return nil, err
	}

	if confirm {
		again, err := ReadPassphrase("Confirm: ")
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(passphrase, again) {
			return nil, fmt.Errorf("passphrases do not match")
		}
	}

	return passphrase, nil
}
