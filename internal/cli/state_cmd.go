package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newStateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Move timer and ledger state to or from a localStorage JSON dump",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "export [FILE]",
			Short: "Write the persisted state as JSON (stdout by default)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 0 || args[0] == "-" {
					_, err := app.State.Export(cmd.Context(), cmd.OutOrStdout())
					return err
				}
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating state file: %w", err)
				}
				n, err := app.State.Export(cmd.Context(), f)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d keys to %s\n", n, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Replace the persisted state from a JSON dump (- for stdin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var r io.Reader = cmd.InOrStdin()
				if args[0] != "-" {
					f, err := os.Open(args[0])
					if err != nil {
						return fmt.Errorf("opening state file: %w", err)
					}
					defer f.Close()
					r = f
				}
				keys, err := app.State.Import(cmd.Context(), r)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d keys: %s\n", len(keys), strings.Join(keys, ", "))
				return nil
			},
		},
	)

	return cmd
}
