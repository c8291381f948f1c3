// Package cli wires the cobra command tree for hubscope. Commands parse
// flags, call one core operation each, and render the normalized result;
// everything with invariants lives in internal/gh.
package cli

import (
	gogithub "github.com/google/go-github/v75/github"
	"github.com/spf13/cobra"

	"github.com/hubscope/hubscope/internal/config"
	"github.com/hubscope/hubscope/internal/gh"
	"github.com/hubscope/hubscope/pkg/logging"
)

// NewRootCmd builds the hubscope command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hubscope",
		Short:         "Browse GitHub repositories without cloning them",
		Long:          "hubscope browses repository trees, files, code search, commits and diffs\nstraight from the GitHub API, without a local checkout.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("json", false, "emit results as JSON instead of tables")

	root.AddCommand(newReposCmd())
	root.AddCommand(newLsCmd())
	root.AddCommand(newCatCmd())
	root.AddCommand(newGlobCmd())
	root.AddCommand(newGrepCmd())
	root.AddCommand(newCommitsCmd())
	root.AddCommand(newCompareCmd())

	return root
}

// newClient builds the browsing client from the resolved configuration.
func newClient() (*gh.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var gc *gogithub.Client
	if cfg.UseApp() {
		gc, err = gh.NewAppClient(cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath, cfg.APIBaseURL, cfg.RetryMax)
		if err != nil {
			return nil, err
		}
	} else {
		gc = gh.NewTokenClient(cfg.Token, cfg.APIBaseURL, cfg.RetryMax)
	}

	return gh.New(gc, gh.Options{
		Logger:        logging.New(),
		Authenticated: cfg.Authenticated(),
	}), nil
}
