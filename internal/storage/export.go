package storage

import (
	"encoding/json"
	"os"

	"github.com/san-kum/particlelab/internal/engine"
	"github.com/san-kum/particlelab/internal/rules"
)

// ExportData is the portable JSON form of a captured simulation:
// enough to reload both the particle arrays and the rule matrix.
type ExportData struct {
	Scenario  string           `json:"scenario"`
	Scheme    string           `json:"scheme"`
	Boundary  string           `json:"boundary"`
	Steps     uint64           `json:"steps"`
	TypeCount int              `json:"type_count"`
	Particles *particleArrays  `json:"particles"`
	Rules     []rules.RuleSpec `json:"rules"`
}

type particleArrays struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	VX     []float64 `json:"vx"`
	VY     []float64 `json:"vy"`
	Mass   []float64 `json:"mass"`
	Size   []float64 `json:"size"`
	Type   []int     `json:"type"`
	Active []bool    `json:"active"`
}

func ExportJSON(path, scenario, scheme, boundary string, snap *engine.Snapshot, steps uint64) error {
	buf := snap.Particles
	data := ExportData{
		Scenario:  scenario,
		Scheme:    scheme,
		Boundary:  boundary,
		Steps:     steps,
		TypeCount: snap.TypeCount,
		Particles: &particleArrays{
			X:      buf.X,
			Y:      buf.Y,
			VX:     buf.VX,
			VY:     buf.VY,
			Mass:   buf.Mass,
			Size:   buf.Size,
			Type:   buf.Type,
			Active: buf.Active,
		},
		Rules: rules.SpecsFromRules(snap.Rules),
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
