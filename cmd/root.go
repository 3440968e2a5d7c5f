package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/calvra/cellar/internal/configs"
	"github.com/calvra/cellar/internal/crypto"
	logger "github.com/calvra/cellar/internal/logging"
	"github.com/calvra/cellar/internal/repository"
	"github.com/calvra/cellar/internal/ui"
	"github.com/calvra/cellar/internal/utils"
	"github.com/spf13/cobra"
)

var (
	verbose        bool
	debug          bool
	repositoryFlag string
	Logger         logger.Logger
)

// RegisterPersistentFlags attaches the flags shared by every command and
// wires the logger setup.
func RegisterPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentFlags().StringVarP(&repositoryFlag, "repository", "r", "", "repository path (defaults to the configured default_repository)")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing command with verbose=%t, debug=%t", verbose, debug)
	}
}

func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
			s.Stop()
		}
		if s.FinalMSG != "" {
			fmt.Print(ui.EnsureNewline(s.FinalMSG))
		}
	}

	return s, cleanup
}

// session holds the lifecycle tokens every command acquires at startup.
type session struct {
	cryptoLifecycle *crypto.Lifecycle
	configLifecycle *configs.Lifecycle
}

func openSession() (*session, error) {
	cl, err := crypto.Acquire()
	if err != nil {
		return nil, err
	}

	cfg, err := configs.Acquire()
	if err != nil {
		cl.Close()
		return nil, err
	}

	return &session{cryptoLifecycle: cl, configLifecycle: cfg}, nil
}

func (s *session) Close() {
	s.configLifecycle.Close()
	s.cryptoLifecycle.Close()
}

// repositoryPath resolves the repository to operate on: the --repository
// flag when given, otherwise the configured default.
func (s *session) repositoryPath() (string, error) {
	if repositoryFlag != "" {
		return repositoryFlag, nil
	}

	if path := s.configLifecycle.Config().DefaultRepository; path != "" {
		return path, nil
	}

	return "", fmt.Errorf("no repository specified; pass --repository or set a default with %s",
		ui.Code.Sprint("cellar config default_repository --set <path>"))
}

func (s *session) openRepository(create bool) (*repository.Repository, error) {
	path, err := s.repositoryPath()
	if err != nil {
		return nil, err
	}

	Logger.Debugf("Opening repository at %s (create=%t)", path, create)
	return repository.Open(s.cryptoLifecycle, path, repository.Options{
		Create: create,
		Prompt: utils.TerminalPrompt{},
	})
}
