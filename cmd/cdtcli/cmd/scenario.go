package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/latticecdt/cdt/types"
)

// scenario is the YAML shape cdtcli reads: a point set plus the
// constraint edges (by index into Points) to thread through it.
type scenario struct {
	Points [][2]float64 `yaml:"points"`
	Edges  [][2]int     `yaml:"edges"`
	Closed bool         `yaml:"closed"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cdtcli: reading scenario %s: %w", path, err)
	}
	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("cdtcli: parsing scenario %s: %w", path, err)
	}
	return &sc, nil
}

func (sc *scenario) points() []types.Point {
	pts := make([]types.Point, len(sc.Points))
	for i, p := range sc.Points {
		pts[i] = types.Point{X: p[0], Y: p[1]}
	}
	return pts
}
