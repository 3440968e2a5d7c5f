package repository

import (
	"github.com/calvra/cellar/internal/crypto"
)

// PassphrasePrompt collects the user's passphrase. When confirm is true
// the implementation asks twice and requires both answers to match.
// Implementations typically disable terminal echo.
type PassphrasePrompt interface {
	Prompt(message string, confirm bool) ([]byte, error)
}

// StaticPassphrase is a PassphrasePrompt that always answers with a fixed
// passphrase. Intended for non-interactive use and tests.
type StaticPassphrase []byte

func (p StaticPassphrase) Prompt(string, bool) ([]byte, error) {
	out := make([]byte, len(p))
	copy(out, p)
	return out, nil
}

// buildMasterKey prompts for the passphrase and derives the master key
// with the header's salt and parameters. The key is derived fresh for
// every operation; the caller must Zero it immediately after use.
func (r *Repository) buildMasterKey() ([]byte, error) {
	passphrase, err := r.prompt.Prompt("Passphrase: ", false)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(passphrase)

	return crypto.DeriveKey(
		passphrase,
		r.header.Salt(),
		r.header.KeySize(),
		r.header.WorkFactor(),
		r.header.ParallelizationFactor(),
	)
}
