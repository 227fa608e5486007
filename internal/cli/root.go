// Package cli wires the gmlbound command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	debug      bool
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "gmlbound",
		Short:        "Convert administrative boundary GML into drawing-space primitives",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging on stderr")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file (optional)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file with GMLBOUND_* overrides; ignored when absent")

	cmd.AddCommand(convertCmd(flags))
	cmd.AddCommand(zonesCmd())
	return cmd
}
