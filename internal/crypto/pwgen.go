package crypto

import (
	"fmt"
	"sort"
	"strings"

	cerrors "github.com/calvra/cellar/internal/errors"
)

// CharacterClass identifies a set of characters passwords may be drawn from.
type CharacterClass int

const (
	Lowercase CharacterClass = iota
	Uppercase
	Numbers
	Special
)

var characterClassMembers = map[CharacterClass]string{
	Lowercase: "abcdefghijklmnopqrstuvwxyz",
	Uppercase: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	Numbers:   "0123456789",
	Special:   "`~!@#$%^&*()-_=+/[{]}\\|;:'\",<.>?",
}

// GeneratorOptions controls password generation. The zero value is not
// usable; start from DefaultGeneratorOptions.
type GeneratorOptions struct {
	// Classes is the non-empty set of character classes to draw from.
	Classes []CharacterClass

	// MinimumLength and MaximumLength bound the generated length,
	// inclusive. MinimumLength must be positive and no greater than
	// MaximumLength.
	MinimumLength int
	MaximumLength int

	// ExcludedCharacters are removed from the union of the selected
	// classes.
	ExcludedCharacters string
}

// DefaultGeneratorOptions selects all character classes and lengths
// between 8 and 32.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Classes:       []CharacterClass{Lowercase, Uppercase, Numbers, Special},
		MinimumLength: 8,
		MaximumLength: 32,
	}
}

// GeneratePassword produces a random password from the effective character
// set (the union of the selected classes minus the exclusions), with a
// uniformly sampled length and uniformly sampled characters.
func GeneratePassword(opts GeneratorOptions) (string, error) {
	alphabet, err := effectiveAlphabet(opts)
	if err != nil {
		return "", err
	}

	if opts.MinimumLength <= 0 || opts.MinimumLength > opts.MaximumLength {
		return "", fmt.Errorf("%w: invalid length bounds [%d, %d]", cerrors.ErrRng, opts.MinimumLength, opts.MaximumLength)
	}

	length, err := RandomUint64Range(uint64(opts.MinimumLength), uint64(opts.MaximumLength), Strong)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(int(length))
	for i := uint64(0); i < length; i++ {
		idx, err := RandomUint64Range(0, uint64(len(alphabet)-1), Strong)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[idx])
	}
	return sb.String(), nil
}

func effectiveAlphabet(opts GeneratorOptions) ([]byte, error) {
	included := make(map[byte]struct{})
	for _, class := range opts.Classes {
		for i := 0; i < len(characterClassMembers[class]); i++ {
			included[characterClassMembers[class][i]] = struct{}{}
		}
	}
	for i := 0; i < len(opts.ExcludedCharacters); i++ {
		delete(included, opts.ExcludedCharacters[i])
	}

	if len(included) == 0 {
		return nil, cerrors.ErrEmptyAlphabet
	}

	alphabet := make([]byte, 0, len(included))
	for c := range included {
		alphabet = append(alphabet, c)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
	return alphabet, nil
}
