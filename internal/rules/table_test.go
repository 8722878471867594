package rules_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlelab/internal/rules"
)

func fp(v float64) *float64              { return &v }
func fop(v rules.Falloff) *rules.Falloff { return &v }

var _ = Describe("Table", func() {
	var t *rules.Table

	BeforeEach(func() {
		t = rules.NewTable(3)
	})

	Describe("CalculateForce", func() {
		BeforeEach(func() {
			ok := t.SetRule(0, 1, rules.Params{
				Attraction:         fp(2.0),
				Repulsion:          fp(0.5),
				ActivationDistance: fp(50),
				MinDistance:        fp(1),
				Falloff:            fop(rules.Constant),
			})
			Expect(ok).To(BeTrue())
		})

		It("returns exactly zero beyond the activation distance", func() {
			for _, d := range []float64{50.001, 51, 100, 1e6} {
				Expect(t.CalculateForce(0, 1, d)).To(BeZero())
			}
		})

		It("returns zero for inactive pairs", func() {
			Expect(t.CalculateForce(1, 0, 10)).To(BeZero())
		})

		It("returns zero for out-of-range types", func() {
			Expect(t.CalculateForce(-1, 1, 10)).To(BeZero())
			Expect(t.CalculateForce(0, 3, 10)).To(BeZero())
		})

		It("yields attraction minus repulsion at min distance under constant falloff, independent of closer approach", func() {
			want := 2.0 - 0.5
			Expect(t.CalculateForce(0, 1, 1)).To(Equal(want))
			Expect(t.CalculateForce(0, 1, 0.5)).To(Equal(want))
			Expect(t.CalculateForce(0, 1, 0.0001)).To(Equal(want))
		})
	})

	Describe("SetRule", func() {
		It("retains unset fields when merging", func() {
			t.SetRule(0, 1, rules.Params{Attraction: fp(1), ActivationDistance: fp(70)})
			t.SetRule(0, 1, rules.Params{Repulsion: fp(0.2)})

			r, ok := t.Rule(0, 1)
			Expect(ok).To(BeTrue())
			Expect(r.Attraction).To(Equal(1.0))
			Expect(r.Repulsion).To(Equal(0.2))
			Expect(r.ActivationDistance).To(Equal(70.0))
		})

		It("clamps min distance to the floor", func() {
			t.SetRule(0, 1, rules.Params{Attraction: fp(1), MinDistance: fp(0.001)})
			r, _ := t.Rule(0, 1)
			Expect(r.MinDistance).To(Equal(rules.MinDistanceFloor))
		})

		It("defaults asymmetry to zero for user rules", func() {
			t.SetRule(0, 1, rules.Params{Attraction: fp(1)})
			r, _ := t.Rule(0, 1)
			Expect(r.Asymmetry).To(BeZero())
		})

		It("mirrors the reverse pair on symmetric requests, overwriting distinct reverse rules", func() {
			t.SetRule(1, 0, rules.Params{Repulsion: fp(9)})
			t.SetRule(0, 1, rules.Params{
				Attraction: fp(3),
				Repulsion:  fp(1),
				Asymmetry:  fp(0.5),
				Symmetric:  true,
			})

			fwd, _ := t.Rule(0, 1)
			rev, _ := t.Rule(1, 0)
			Expect(rev.Attraction).To(Equal(fwd.Attraction))
			Expect(rev.Repulsion).To(Equal(fwd.Repulsion))
			Expect(rev.Asymmetry).To(Equal(fwd.Asymmetry))
		})

		It("no-ops on invalid type indices", func() {
			Expect(t.SetRule(5, 0, rules.Params{Attraction: fp(1)})).To(BeFalse())
			Expect(t.SetRule(0, -1, rules.Params{Attraction: fp(1)})).To(BeFalse())
		})
	})

	Describe("MaxInteractionDistance", func() {
		It("tracks the largest activation distance per source type", func() {
			t.SetRule(0, 1, rules.Params{Attraction: fp(1), ActivationDistance: fp(40)})
			t.SetRule(0, 2, rules.Params{Attraction: fp(1), ActivationDistance: fp(90)})

			Expect(t.MaxInteractionDistance(0)).To(Equal(90.0))
			Expect(t.MaxInteractionDistance(1)).To(BeZero())
		})

		It("is invalidated by subsequent mutations", func() {
			t.SetRule(0, 1, rules.Params{Attraction: fp(1), ActivationDistance: fp(40)})
			Expect(t.MaxInteractionDistance(0)).To(Equal(40.0))

			t.SetRule(0, 2, rules.Params{Attraction: fp(1), ActivationDistance: fp(200)})
			Expect(t.MaxInteractionDistance(0)).To(Equal(200.0))
		})

		It("ignores rules whose magnitudes drop below the active threshold", func() {
			t.SetRule(0, 1, rules.Params{Attraction: fp(1), ActivationDistance: fp(40)})
			t.SetRule(0, 1, rules.Params{Attraction: fp(0)})
			Expect(t.MaxInteractionDistance(0)).To(BeZero())
			Expect(t.HasActiveInteractions(0)).To(BeFalse())
		})
	})

	Describe("presets", func() {
		It("installs the food chain with broken symmetry", func() {
			Expect(t.ApplyPreset("food_chain")).To(BeTrue())

			hunt, _ := t.Rule(0, 1)
			flee, _ := t.Rule(1, 0)
			Expect(hunt.Attraction).To(BeNumerically(">", 0))
			Expect(hunt.Asymmetry).To(BeNumerically(">", 0))
			Expect(flee.Repulsion).To(BeNumerically(">", 0))
			Expect(flee.Asymmetry).To(BeZero())
		})

		It("rejects unknown preset names", func() {
			Expect(t.ApplyPreset("nope")).To(BeFalse())
		})

		It("replaces everything via a custom rule list", func() {
			t.ApplyPreset("basic_attraction")
			t.ApplyCustomPreset([]rules.PresetRule{
				{A: 2, B: 0, Params: rules.Params{Attraction: fp(7)}},
			})

			r, _ := t.Rule(2, 0)
			Expect(r.Attraction).To(Equal(7.0))
			other, _ := t.Rule(0, 1)
			Expect(other.Active).To(BeFalse())
		})
	})

	Describe("Randomize", func() {
		It("activates every pair within the strength bound", func() {
			rng := rand.New(rand.NewSource(42))
			t.Randomize(rng, 1.0, 60)

			for a := 0; a < 3; a++ {
				Expect(t.MaxInteractionDistance(a)).To(Equal(60.0))
				for b := 0; b < 3; b++ {
					r, _ := t.Rule(a, b)
					Expect(r.Attraction).To(BeNumerically("<=", 1.0))
					Expect(r.Repulsion).To(BeNumerically("<=", 1.0))
				}
			}
		})
	})
})

var _ = Describe("ParseFalloff", func() {
	It("defaults unknown names to inverse square", func() {
		Expect(rules.ParseFalloff("definitely_not_a_falloff")).To(Equal(rules.InverseSquare))
		Expect(rules.ParseFalloff("sigmoid")).To(Equal(rules.Sigmoid))
	})
})
