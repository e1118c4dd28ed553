package config

// Presets cover the standard calcium encoding studies. The sweep
// windows bracket the Hopf bifurcations of each regime: the AM model
// oscillates between roughly IP3 = 0.355 and 0.637, the FM model
// between 0.5 and 1.24 with frequency rising across the window.
var Presets = map[string]map[string]*Config{
	"lirinzel": {
		"baseline": {
			Model: "lirinzel", Integrator: "rk4", Dt: 0.01, Duration: 100.0,
			Param: 0.3, InitState: []float64{0.2, 0.2},
		},
		"oscillating": {
			Model: "lirinzel", Integrator: "rk4", Dt: 0.01, Duration: 100.0,
			Param: 0.4, InitState: []float64{0.2, 0.2},
		},
		"sweep-onset": {
			Model: "lirinzel", Integrator: "rk4", Dt: 0.01, Duration: 400.0,
			Param: 0.3, InitState: []float64{0.2, 0.2},
			Sweep: &SweepConfig{ParStart: 0.1, ParStop: 0.4, ParTot: 50, Relax: 17000},
		},
		"sweep-offset": {
			Model: "lirinzel", Integrator: "rk4", Dt: 0.01, Duration: 700.0,
			Param: 0.5, InitState: []float64{0.2, 0.2},
			Sweep: &SweepConfig{ParStart: 0.4, ParStop: 0.7, ParTot: 70, Relax: -10000},
		},
	},
	"lirinzel-fm": {
		"baseline": {
			Model: "lirinzel-fm", Integrator: "rk4", Dt: 0.01, Duration: 100.0,
			Param: 0.8, InitState: []float64{0.2, 0.2},
		},
		"sweep-onset": {
			Model: "lirinzel-fm", Integrator: "rk4", Dt: 0.01, Duration: 400.0,
			Param: 0.3, InitState: []float64{0.2, 0.2},
			Sweep: &SweepConfig{ParStart: 0.1, ParStop: 0.5, ParTot: 50, Relax: 15000},
		},
		"sweep-plateau": {
			Model: "lirinzel-fm", Integrator: "rk4", Dt: 0.01, Duration: 700.0,
			Param: 0.8, InitState: []float64{0.2, 0.2},
			Sweep: &SweepConfig{ParStart: 0.5, ParStop: 1.1, ParTot: 60, Relax: -10000},
		},
		"sweep-offset": {
			Model: "lirinzel-fm", Integrator: "rk4", Dt: 0.01, Duration: 400.0,
			Param: 1.3, InitState: []float64{0.2, 0.2},
			Sweep: &SweepConfig{ParStart: 1.1, ParStop: 1.5, ParTot: 50, Relax: 15000},
		},
	},
	"chi": {
		"baseline": {
			Model: "chi", Integrator: "rk4", Dt: 0.01, Duration: 200.0,
			Param: 0.01, InitState: []float64{0.05, 0.9, 0.1},
		},
		"stimulated": {
			Model: "chi", Integrator: "rk4", Dt: 0.01, Duration: 200.0,
			Param: 0.1, InitState: []float64{0.05, 0.9, 0.1},
		},
		"sweep": {
			Model: "chi", Integrator: "rk4", Dt: 0.01, Duration: 600.0,
			Param: 0.05, InitState: []float64{0.05, 0.9, 0.1},
			Sweep: &SweepConfig{ParStart: 0.0, ParStop: 0.2, ParTot: 60, Relax: -20000},
		},
	},
	"tmsynapse": {
		"low-rate": {
			Model: "tmsynapse", Integrator: "rk4", Dt: 0.0001, Duration: 2.0,
			Param: 1.5, InitState: []float64{0.0, 1.0, 0.0},
		},
		"high-rate": {
			Model: "tmsynapse", Integrator: "rk4", Dt: 0.0001, Duration: 2.0,
			Param: 10.0, InitState: []float64{0.0, 1.0, 0.0},
		},
	},
	"vanderpol": {
		"relaxation": {
			Model: "vanderpol", Integrator: "rk4", Dt: 0.01, Duration: 100.0,
			Param: 5.0, InitState: []float64{2.0, 0.0},
		},
		"sweep": {
			Model: "vanderpol", Integrator: "rk4", Dt: 0.01, Duration: 200.0,
			Param: 1.0, InitState: []float64{2.0, 0.0},
			Sweep: &SweepConfig{ParStart: 0.1, ParStop: 4.0, ParTot: 40, Relax: -5000},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
