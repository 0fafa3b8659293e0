package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticecdt/cdt/cdt"
	"github.com/latticecdt/cdt/types"
)

var buildScenario string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "insert a scenario incrementally and print diagnostics",
	Long: `Build inserts every point of the scenario one at a time via
Kernel.Insert, then threads the scenario's constraint edges in with
CDT.AddConstraint, the way an interactive caller would grow the
triangulation point by point rather than loading it in bulk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(buildScenario)
		if err != nil {
			return err
		}

		c := cdt.New()
		handles := make([]types.VertexID, len(sc.Points))
		for i, p := range sc.points() {
			v, err := c.Insert(p)
			if err != nil {
				return fmt.Errorf("cdtcli: inserting point %d: %w", i, err)
			}
			handles[i] = v
		}
		for _, e := range sc.Edges {
			c.AddConstraint(handles[e[0]], handles[e[1]])
		}
		if sc.Closed && len(handles) > 1 {
			c.AddConstraint(handles[len(handles)-1], handles[0])
		}

		fmt.Printf("vertices: %d\n", c.NumVertices())
		fmt.Printf("faces:    %d\n", c.Store().NumFaces())
		fmt.Printf("constraints: %d\n", c.NumConstraints())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildScenario, "scenario", "", "scenario YAML file (required)")
	buildCmd.MarkFlagRequired("scenario")
}
