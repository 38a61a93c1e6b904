package main

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Print a readable outline of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}
		res, err := app.LoadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		render := tui.NewRenderer(!cli.IsTerminal(out))
		text, err := render(tui.Describe(filepath.Base(args[0]), res))
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
