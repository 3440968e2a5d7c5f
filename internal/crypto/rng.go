package crypto

import (
	"crypto/rand"
	"fmt"
	"math"
	mathrand "math/rand/v2"

	cerrors "github.com/calvra/cellar/internal/errors"
)

// RandomQuality selects the randomness source for an operation.
type RandomQuality int

const (
	// Weak is a fast, non-cryptographic source. Tests only.
	Weak RandomQuality = iota
	// Strong is an OS-seeded CSPRNG. Used for salts, padding, and
	// password generation.
	Strong
	// VeryStrong is an OS-seeded CSPRNG. Used for cipher IVs and
	// long-term key derivation inputs.
	VeryStrong
)

// DefaultSaltSize is the size of freshly generated key salts.
const DefaultSaltSize = 16

// RandomBytes returns length fresh random bytes from the source selected
// by quality.
func RandomBytes(length int, quality RandomQuality) ([]byte, error) {
	b := make([]byte, length)
	switch quality {
	case Weak:
		for i := range b {
			b[i] = byte(mathrand.Uint32())
		}
	case Strong, VeryStrong:
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("%w: %v", cerrors.ErrRng, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported random quality %d", cerrors.ErrRng, quality)
	}
	return b, nil
}

// GenerateSalt returns a fresh salt suitable for key derivation.
func GenerateSalt(length int) ([]byte, error) {
	return RandomBytes(length, Strong)
}

// RandomUint64Range returns a uniformly sampled integer in the inclusive
// range [minimum, maximum]. Sampling is unbiased: values are drawn and
// rejected until one falls below the largest multiple of the range span,
// rather than reduced modulo the span.
func RandomUint64Range(minimum, maximum uint64, quality RandomQuality) (uint64, error) {
	if minimum > maximum {
		return 0, fmt.Errorf("%w: invalid range [%d, %d]", cerrors.ErrRng, minimum, maximum)
	}

	span := maximum - minimum + 1
	if span == 0 {
		// The range covers every uint64 value.
		return randomUint64(quality)
	}

	// Reject draws from the biased tail of the uint64 space.
	limit := math.MaxUint64 - math.MaxUint64%span
	for {
		v, err := randomUint64(quality)
		if err != nil {
			return 0, err
		}
		if v < limit {
			return minimum + v%span, nil
		}
	}
}

func randomUint64(quality RandomQuality) (uint64, error) {
	buf, err := RandomBytes(8, quality)
	if err != nil {
		return 0, err
	}

	var v uint64
	for i, b := range buf {
		v |= uint64(b) << (8 * i)
	}
	return v, nil
}
