package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"coilapi/internal/database"
	"coilapi/internal/model"
)

type statsOptions struct {
	createdAtGte string
	deletedAtLte string
	output       string
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(envFn EnvFunc) *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print coil statistics for a period",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.output, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := opts.window()
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), envFn, func(env *Env) error {
				var stats *model.CoilStats
				err := env.Sessions.Session(cmd.Context(), func(tx database.DBTX) error {
					var err error
					stats, err = env.Repo.GetCoilStats(cmd.Context(), tx, window)
					return err
				})
				if err != nil {
					return err
				}
				return writeStats(cmd.OutOrStdout(), opts.output, stats)
			})
		},
	}

	cmd.Flags().StringVar(&opts.createdAtGte, "created-at-gte", "", "only coils created at or after this RFC 3339 time")
	cmd.Flags().StringVar(&opts.deletedAtLte, "deleted-at-lte", "", "only coils removed at or before this RFC 3339 time")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "output format (json|yaml)")

	return cmd
}

func (o *statsOptions) window() (model.StatsWindow, error) {
	var w model.StatsWindow
	if o.createdAtGte != "" {
		t, err := time.Parse(time.RFC3339Nano, o.createdAtGte)
		if err != nil {
			return w, fmt.Errorf("--created-at-gte: %w", err)
		}
		w.CreatedAtGte = &t
	}
	if o.deletedAtLte != "" {
		t, err := time.Parse(time.RFC3339Nano, o.deletedAtLte)
		if err != nil {
			return w, fmt.Errorf("--deleted-at-lte: %w", err)
		}
		w.DeletedAtLte = &t
	}
	return w, nil
}

func writeStats(w io.Writer, format string, stats *model.CoilStats) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(stats); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
