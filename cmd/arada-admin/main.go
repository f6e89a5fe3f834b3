// Command arada-admin inspects the portal's role registry and route guard and probes
// the identity API with a session token.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/maf-y/ArardaHospital-Frontend/internal/bootstrap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1) //nolint:forbidigo // CLI must exit with failure status when a command fails
	}
}

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "arada-admin",
		Short: "Arada Care portal administration",
		Long: `arada-admin prints the role registry, checks that every role's dashboard is
reachable, evaluates the route guard for a role and path, and probes the identity API.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	root.AddCommand(newRoutesCmd(), newCheckCmd(), newDecideCmd(), newProbeCmd())
	return root
}

// cliLogger logs to stderr so command output stays parseable.
func cliLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

// loadRegistry builds the registry the portal serves with.
func loadRegistry(cmd *cobra.Command) (*registryView, error) {
	reg, err := bootstrap.BuildRegistry(cliLogger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}
	return newRegistryView(reg), nil
}
