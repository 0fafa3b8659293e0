package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticecdt/cdt/bulk"
	"github.com/latticecdt/cdt/cdt"
	"github.com/latticecdt/cdt/mesh"
	"github.com/latticecdt/cdt/rasterize"
	"github.com/latticecdt/cdt/types"
)

var (
	renderScenario string
	renderOut      string
	renderBulk     bool
	renderWidth    int
	renderHeight   int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render a scenario's triangulation to a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(renderScenario)
		if err != nil {
			return err
		}

		var c *cdt.CDT
		if renderBulk {
			edges := sc.Edges
			if sc.Closed && len(sc.Points) > 1 {
				edges = append(edges, [2]int{len(sc.Points) - 1, 0})
			}
			c, _, err = bulk.LoadCDT(sc.points(), edges)
			if err != nil {
				return fmt.Errorf("cdtcli: bulk load: %w", err)
			}
		} else {
			c = cdt.New()
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
		}

		m := mesh.FromCDT(c)
		img, err := rasterize.Rasterize(m, rasterize.WithDimensions(renderWidth, renderHeight))
		if err != nil {
			return fmt.Errorf("cdtcli: rasterize: %w", err)
		}

		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("cdtcli: creating %s: %w", renderOut, err)
		}
		defer f.Close()
		return png.Encode(f, img)
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderScenario, "scenario", "", "scenario YAML file (required)")
	renderCmd.Flags().StringVar(&renderOut, "out", "cdt.png", "output PNG path")
	renderCmd.Flags().BoolVar(&renderBulk, "bulk", false, "build via the circle-sweep bulk loader instead of incrementally")
	renderCmd.Flags().IntVar(&renderWidth, "width", 800, "output image width")
	renderCmd.Flags().IntVar(&renderHeight, "height", 600, "output image height")
	renderCmd.MarkFlagRequired("scenario")
}
