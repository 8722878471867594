package config

// Scenarios are ready-to-run setups keyed by name. Each pairs a rule
// preset with worlds, counts, and integrator settings that show it off.
var Scenarios = map[string]*Config{
	"soup": {
		MaxParticles: 3000, TypeCount: 6, Count: 1500, FixedStepMS: 16, TimeScale: 1,
		World:      WorldConfig{Width: 1000, Height: 1000},
		Integrator: IntegratorConfig{Scheme: "euler", Boundary: "wrap", Damping: 0.95, SubSteps: 1, Elasticity: 0.8},
		Rules:      RulesConfig{Preset: "random", RandomStrength: 1.2, ActivationDistance: 80},
	},
	"orbits": {
		MaxParticles: 500, TypeCount: 2, Count: 200, FixedStepMS: 16, TimeScale: 1,
		World:      WorldConfig{Width: 800, Height: 800},
		Integrator: IntegratorConfig{Scheme: "verlet", Boundary: "none", Damping: 1.0, SubSteps: 2, Elasticity: 0.8},
		Rules:      RulesConfig{Preset: "orbital"},
	},
	"cells": {
		MaxParticles: 2000, TypeCount: 3, Count: 900, FixedStepMS: 16, TimeScale: 1,
		World:      WorldConfig{Width: 600, Height: 600},
		Integrator: IntegratorConfig{Scheme: "euler", Boundary: "reflect", Damping: 0.9, SubSteps: 1, Elasticity: 0.5},
		Rules:      RulesConfig{Preset: "segregation"},
	},
	"chase": {
		MaxParticles: 1500, TypeCount: 3, Count: 600, FixedStepMS: 16, TimeScale: 1,
		World:      WorldConfig{Width: 900, Height: 900},
		Integrator: IntegratorConfig{Scheme: "euler", Boundary: "wrap", Damping: 0.92, SubSteps: 1, Elasticity: 0.8},
		Rules:      RulesConfig{Preset: "food_chain"},
	},
	"lattice": {
		MaxParticles: 800, TypeCount: 2, Count: 400, FixedStepMS: 16, TimeScale: 1,
		World:      WorldConfig{Width: 500, Height: 500},
		Integrator: IntegratorConfig{Scheme: "verlet", Boundary: "reflect", Damping: 0.85, SubSteps: 2, Elasticity: 0.3},
		Rules:      RulesConfig{Preset: "crystal"},
	},
	"rain": {
		MaxParticles: 4000, TypeCount: 1, Count: 2000, FixedStepMS: 16, TimeScale: 1,
		World:      WorldConfig{Width: 800, Height: 600},
		Integrator: IntegratorConfig{Scheme: "rk4", Boundary: "absorb", Damping: 1.0, SubSteps: 1, Elasticity: 0.8},
		Rules:      RulesConfig{Preset: "basic_attraction"},
		Forces:     ForcesConfig{GravityY: 40, Drag: 0.1},
	},
}

func GetScenario(name string) *Config {
	cfg, ok := Scenarios[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListScenarios() []string {
	names := make([]string, 0, len(Scenarios))
	for name := range Scenarios {
		names = append(names, name)
	}
	return names
}
