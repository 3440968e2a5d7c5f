// Package crypto implements the key derivation and encryption pipeline
// that turns plaintext entries into ciphertext files and back.
//
// # Pipeline
//
// A master key is derived from the user's passphrase and the repository
// salt with scrypt (N = workFactor, r = 8; the cost need not be a power
// of two). Plaintext is padded to the
// cipher block size with a length-prefixed random-tail scheme, then
// encrypted twice in CBC mode: Serpent-256 on the inside and AES-256 on
// the outside, each layer with a fresh random IV appended after its
// ciphertext. There is no authentication layer; corrupted ciphertext
// surfaces as ErrCorrupt when the recovered padding is inconsistent.
//
// # Randomness
//
// All randomness flows through RandomBytes and RandomUint64Range, which
// take an explicit quality level. Strong and VeryStrong map to the OS
// CSPRNG; Weak is a fast PRNG for tests only. Integer sampling uses
// rejection sampling and is unbiased.
//
// # Lifecycle
//
// Callers hold a Lifecycle token while using the package. The token
// replaces a global "library initialized" flag with an explicit
// acquire/release scope; only one token may be live per process.
package crypto
