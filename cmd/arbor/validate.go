package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errInvalid = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check documents for loader errors",
	Long: `Loads every file and reports malformed records, unknown types, duplicate
identifiers and dangling references.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			res, err := app.LoadFile(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			fmt.Fprintf(out, "✓ %s: %d objects, %d actors\n", path, res.Len(), len(res.Actors()))
		}
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d documents", errInvalid, failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
