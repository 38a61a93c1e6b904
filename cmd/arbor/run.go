package main

import (
	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var runOpts cli.RunOptions

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Tick the actors of a document",
	Long: `Loads a document and ticks each actor until its tree finishes or the tick
budget runs out, printing the status of every tick.`,
	Args: cobra.ExactArgs(1),
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
		_, err = cli.RunActors(out, cli.Profile(out), res, runOpts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&runOpts.Ticks, "ticks", "n", 100, "Maximum ticks per actor")
	runCmd.Flags().StringVar(&runOpts.Actor, "actor", "", "Only run the actor with this name")
}
