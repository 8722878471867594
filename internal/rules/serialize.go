package rules

// RuleSpec is the portable form of one matrix slot, used by exporters
// and custom-rule files. Inactive slots are skipped entirely.
type RuleSpec struct {
	Source             int     `json:"source" yaml:"source"`
	Target             int     `json:"target" yaml:"target"`
	Attraction         float64 `json:"attraction" yaml:"attraction"`
	Repulsion          float64 `json:"repulsion" yaml:"repulsion"`
	ActivationDistance float64 `json:"activation_distance" yaml:"activation_distance"`
	MinDistance        float64 `json:"min_distance" yaml:"min_distance"`
	Falloff            string  `json:"falloff" yaml:"falloff"`
	Asymmetry          float64 `json:"asymmetry" yaml:"asymmetry"`
}

// SpecsFromRules flattens an exported rule slice (row-major, as
// returned by Table.Export) into specs for the active slots only.
func SpecsFromRules(flat []Rule) []RuleSpec {
	n := 0
	for n*n < len(flat) {
		n++
	}
	specs := make([]RuleSpec, 0)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			r := flat[a*n+b]
			if !r.Active {
				continue
			}
			specs = append(specs, RuleSpec{
				Source:             a,
				Target:             b,
				Attraction:         r.Attraction,
				Repulsion:          r.Repulsion,
				ActivationDistance: r.ActivationDistance,
				MinDistance:        r.MinDistance,
				Falloff:            r.Falloff.String(),
				Asymmetry:          r.Asymmetry,
			})
		}
	}
	return specs
}

// ApplySpecs installs specs into a table via SetRule, so the usual
// clamping and cache invalidation apply.
func ApplySpecs(t *Table, specs []RuleSpec) {
	for _, s := range specs {
		falloff := ParseFalloff(s.Falloff)
		t.SetRule(s.Source, s.Target, Params{
			Attraction:         f(s.Attraction),
			Repulsion:          f(s.Repulsion),
			ActivationDistance: f(s.ActivationDistance),
			MinDistance:        f(s.MinDistance),
			Falloff:            fo(falloff),
			Asymmetry:          f(s.Asymmetry),
		})
	}
}
