package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "thermowire",
		Short: "Thermostat firmware configuration encoder",
		Long: `thermowire - encode thermostat configurations for firmware delivery.

Reads a configuration document (YAML, JSON or CBOR) holding a device
configuration and its schedule settings, and prints the envelope string that
is passed to the device's config function.

Logs go to stderr; the envelope is the only thing written to stdout.`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newEncodeCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newLogger builds the stderr text logger for the configured level.
func (o *rootOptions) newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the thermowire version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "thermowire %s\n", version)
		},
	}
}
