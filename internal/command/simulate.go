package command

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/teenjuna/lifo/internal/simulate"
	"github.com/teenjuna/lifo/internal/sqlite"
)

var defaultPolicies = []string{"doubling", "exponential:1.5", "linear:4096"}

func newSimulateCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "run a workload against growth policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.simulate(cmd)
		},
	}

	flags := cmd.Flags()
	flags.Int("pushes", 100_000, "Number of pushed items")
	flags.Int("pop-every", 0, "Pop one item after every N pushes, 0 disables pops")
	flags.Int("capacity", 0, "Initial capacity of the stacks")
	flags.StringSlice("policy", defaultPolicies, "Growth policies: doubling, exact, exponential:<base>, linear:<step>")
	flags.Bool("metrics", false, "Print Prometheus metrics of the simulated stacks")
	_ = o.v.BindPFlags(flags)

	return cmd
}

func (o *options) simulate(cmd *cobra.Command) error {
	policies, err := simulate.ParsePolicies(o.v.GetStringSlice("policy")...)
	if err != nil {
		return err
	}

	workload := simulate.Workload{
		Pushes:   o.v.GetInt("pushes"),
		PopEvery: o.v.GetInt("pop-every"),
		Capacity: o.v.GetInt("capacity"),
	}

	configFuncs := []simulate.ConfigFunc{
		func(c *simulate.Config) { c.Logger(o.logger) },
	}

	var registry *prometheus.Registry
	if o.v.GetBool("metrics") {
		registry = prometheus.NewRegistry()
		configFuncs = append(configFuncs, func(c *simulate.Config) { c.Prometheus(registry) })
	}

	ranAt := time.Now()
	results, err := simulate.Run(cmd.Context(), workload, policies, configFuncs...)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatResults(results))

	if file := o.v.GetString("db"); file != "" {
		id, err := save(file, ranAt, results)
		if err != nil {
			return err
		}
		o.logger.WithFields(log.Fields{"db": file, "run": id}).Info("Run saved")
	}

	if registry != nil {
		families, err := registry.Gather()
		if err != nil {
			return fmt.Errorf("gather metrics: %w", err)
		}
		fmt.Fprintln(out)
		for _, family := range families {
			if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
		}
	}

	return nil
}

func save(file string, ranAt time.Time, results []simulate.Result) (id sqlite.RunID, err error) {
	storage, err := sqlite.New(func(c *sqlite.Config) { c.File(file) })
	if err != nil {
		return "", fmt.Errorf("open history: %w", err)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close history: %w", cerr)
		}
	}()

	id, err = storage.Save(ranAt, results...)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}

	return id, nil
}
