package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"coilapi/internal/database"
	"coilapi/internal/database/migration"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(envFn EnvFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the coils schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), envFn, func(env *Env) error {
				err := env.Sessions.Connection(cmd.Context(), func(tx database.DBTX) error {
					return migration.EnsureMigrated(cmd.Context(), tx, env.DBHost)
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}
}

// NewDropCommand creates the drop command. It refuses to run without --yes.
func NewDropCommand(envFn EnvFunc) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every table created by migrate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to drop tables without --yes")
			}
			return withEnv(cmd.Context(), envFn, func(env *Env) error {
				err := env.Sessions.Connection(cmd.Context(), func(tx database.DBTX) error {
					return migration.DropAll(cmd.Context(), tx, env.DBHost)
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema dropped")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm dropping all tables")
	return cmd
}
