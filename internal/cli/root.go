// internal/cli/root.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabin/internal/version"
)

const longHelp = `fabin: FASTA toolkit with Huffman-encoded storage and base-grid routing.

Without a sub-command fabin starts an interactive shell reading commands from
standard input. Type help inside the shell for its command list.

Version: %s`

// NewRootCommand builds the command tree over rt. The caller executes it and
// calls rt.Close afterwards.
func NewRootCommand(rt *Runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "fabin",
		Short:         "FASTA toolkit with Huffman-encoded storage",
		Long:          fmt.Sprintf(longHelp, version.Version),
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return rt.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), rt)
		},
	}
	root.SetIn(rt.In)
	root.SetOut(rt.Out)
	root.SetErr(rt.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&rt.flags.configPath, "config", "", "config file (default $FABIN_CONFIG or ./fabin.yaml)")
	pf.StringVar(&rt.flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&rt.flags.color, "color", "", "colour output: auto|always|never")
	pf.StringVar(&rt.flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")

	root.AddCommand(
		newShellCmd(rt),
		newEncodeCmd(rt),
		newDecodeCmd(rt),
		newListCmd(rt),
		newPathCmd(rt),
		newRemoteCmd(rt),
		newVersionCmd(rt),
	)
	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErr("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErr("%s takes %d arguments, got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

func rangeArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min || (max >= 0 && len(args) > max) {
			return usageErr("%s: wrong number of arguments (%d)\n%s", cmd.Name(), len(args), cmd.UseLine())
		}
		return nil
	}
}
