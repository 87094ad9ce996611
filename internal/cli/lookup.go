package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hightemp/intltel/internal/batch"
)

func runResolve(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	opts := a.options(false)
	if _, err := a.newInput(opts); err != nil {
		return err
	}
	processor, err := batch.NewProcessor(a.catalog, opts, a.engine, a.logger)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return a.print(cmd, processor.Resolve(args[0]))
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return cmd.Help()
	}

	// Batch mode from stdin
	processor.SetConcurrency(a.cfg.Concurrency)
	if a.cfg.Concurrency > 1 {
		return processor.ProcessInputConcurrent(cmd.Context(), in, cmd.OutOrStdout(), a.format)
	}
	return processor.ProcessInput(cmd.Context(), in, cmd.OutOrStdout(), a.format)
}

// isTerminal reports whether r is an interactive terminal rather than a pipe
// or file.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
