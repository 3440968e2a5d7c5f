package cmd

import (
	"fmt"
	"strings"

	"github.com/calvra/cellar/internal/crypto"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// classesFlag is a pflag.Value holding a set of password character
// classes, accepted as a comma-separated list like "lowercase,numbers".
type classesFlag struct {
	classes []crypto.CharacterClass
}

var _ pflag.Value = (*classesFlag)(nil)

func (f *classesFlag) String() string {
	names := make([]string, 0, len(f.classes))
	for _, c := range f.classes {
		switch c {
		case crypto.Lowercase:
			names = append(names, "lowercase")
		case crypto.Uppercase:
			names = append(names, "uppercase")
		case crypto.Numbers:
			names = append(names, "numbers")
		case crypto.Special:
			names = append(names, "special")
		}
	}
	return strings.Join(names, ",")
}

func (f *classesFlag) Set(value string) error {
	var classes []crypto.CharacterClass
	for _, name := range strings.Split(value, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "lowercase":
			classes = append(classes, crypto.Lowercase)
		case "uppercase":
			classes = append(classes, crypto.Uppercase)
		case "numbers":
			classes = append(classes, crypto.Numbers)
		case "special":
			classes = append(classes, crypto.Special)
		default:
			return fmt.Errorf("unknown character class %q", name)
		}
	}
	f.classes = classes
	return nil
}

func (f *classesFlag) Type() string {
	return "classes"
}

var (
	generateClasses = classesFlag{classes: []crypto.CharacterClass{
		crypto.Lowercase, crypto.Uppercase, crypto.Numbers, crypto.Special,
	}}
	generateMinLength int
	generateMaxLength int
	generateExclude   string
)

func init() {
	GenerateCmd.Flags().Var(&generateClasses, "classes", "character classes to draw from (lowercase,uppercase,numbers,special)")
	GenerateCmd.Flags().IntVar(&generateMinLength, "min-length", 8, "minimum password length")
	GenerateCmd.Flags().IntVar(&generateMaxLength, "max-length", 32, "maximum password length")
	GenerateCmd.Flags().StringVar(&generateExclude, "exclude", "", "characters to exclude from the password")
}

// GenerateCmd produces a random password without storing it.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a random password",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to start session: %v", err)
		}
		defer session.Close()

		password, err := crypto.GeneratePassword(crypto.GeneratorOptions{
			Classes:            generateClasses.classes,
			MinimumLength:      generateMinLength,
			MaximumLength:      generateMaxLength,
			ExcludedCharacters: generateExclude,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to generate password: %v", err)
		}

		fmt.Println(password)
		return nil
	},
}
