package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type options struct {
	v      *viper.Viper
	logger *log.Logger
}

// Execute runs the root command and exits the process on error.
func Execute(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the lifosim command tree. Every call returns an independent tree with
// its own configuration.
func NewRootCommand() *cobra.Command {
	o := &options{
		v:      viper.New(),
		logger: log.New(),
	}

	cmd := &cobra.Command{
		Use:           "lifosim",
		Short:         "simulate growth policies of lifo stacks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolP("debug", "d", false, "Enable debug log information")
	flags.String("config", "", "Path to a YAML config file")
	flags.String("db", "", "Path to the SQLite run history, empty disables it")
	_ = o.v.BindPFlags(flags)

	cmd.AddCommand(
		newSimulateCommand(o),
		newHistoryCommand(o),
	)

	return cmd
}

func (o *options) load(cmd *cobra.Command) error {
	o.v.SetEnvPrefix("lifosim")
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	if file := o.v.GetString("config"); file != "" {
		o.v.SetConfigFile(file)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	}

	o.logger.SetOutput(cmd.ErrOrStderr())
	if o.v.GetBool("debug") {
		o.logger.SetLevel(log.DebugLevel)
	} else {
		o.logger.SetLevel(log.InfoLevel)
	}

	o.logger.WithField("config", o.v.ConfigFileUsed()).Debug("Config loaded")

	return nil
}
