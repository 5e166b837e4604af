// Package cli implements coilctl, the admin command line for the coil store.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"coilapi/internal/database"
	"coilapi/internal/repository"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "yaml"}

// Sessions is the part of database.SessionManager the commands use.
type Sessions interface {
	Session(ctx context.Context, fn func(tx database.DBTX) error) error
	Connection(ctx context.Context, fn func(tx database.DBTX) error) error
}

// Env is what a command needs once it actually runs.
type Env struct {
	Sessions Sessions
	Repo     repository.CoilRepository
	DBHost   string
}

// EnvFunc builds the Env lazily so --help works without a database.
// The returned func releases whatever EnvFunc opened.
type EnvFunc func(ctx context.Context) (*Env, func() error, error)

// NewRootCommand creates the coilctl root command.
func NewRootCommand(envFn EnvFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "coilctl",
		Short:         "Administer the coil inventory store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewMigrateCommand(envFn))
	cmd.AddCommand(NewDropCommand(envFn))
	cmd.AddCommand(NewStatsCommand(envFn))

	return cmd
}

// withEnv opens the Env, runs fn and releases it, keeping the first error.
func withEnv(ctx context.Context, envFn EnvFunc, fn func(env *Env) error) (err error) {
	env, release, err := envFn(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := release(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	return fn(env)
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
