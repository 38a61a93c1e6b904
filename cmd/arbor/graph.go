package main

import (
	"fmt"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the tree visualization",
	Long:  `Loads a document and outputs a Mermaid diagram (graph TD) of its actors and trees.`,
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

		var output string
		if actors := res.Actors(); len(actors) > 0 {
			output = graph.GenerateActorsMermaid(actors, nil)
		} else {
			output = graph.GenerateMermaid(res.Roots(), nil)
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
