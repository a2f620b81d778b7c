package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teenjuna/lifo/internal/sqlite"
)

var errNoDB = errors.New("history requires --db")

func newHistoryCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "list stored simulation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.history(cmd)
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to list")
	_ = o.v.BindPFlags(cmd.Flags())

	return cmd
}

func (o *options) history(cmd *cobra.Command) error {
	file := o.v.GetString("db")
	if file == "" {
		return errNoDB
	}

	limit := o.v.GetInt("limit")
	if limit < 1 {
		return errors.New("limit can't be < 1")
	}

	storage, err := sqlite.New(func(c *sqlite.Config) { c.File(file) })
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer storage.Close()

	runs, err := storage.Runs(limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	o.logger.WithField("runs", len(runs)).Debug("Runs loaded")

	fmt.Fprintln(cmd.OutOrStdout(), formatRuns(runs))

	return nil
}
