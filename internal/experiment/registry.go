package experiment

import (
	"fmt"
	"sort"

	"github.com/astroglia/casim/internal/integrators"
	"github.com/astroglia/casim/internal/models"
	"github.com/astroglia/casim/internal/odesys"
)

// ModelInfo describes one registered dynamical system.
type ModelInfo struct {
	Name        string
	Description string
	ParamName   string
	New         func() odesys.System
	Default     func() odesys.State
}

// IntegratorInfo describes one registered stepping scheme. Factory
// returns a fresh integrator so scratch buffers are never shared.
type IntegratorInfo struct {
	Name        string
	Description string
	Factory     func() odesys.Integrator
}

var modelRegistry = map[string]ModelInfo{
	"lirinzel": {
		Name:        "lirinzel",
		Description: "Li-Rinzel calcium model, AM encoding regime",
		ParamName:   "ip3",
		New:         func() odesys.System { return models.NewLiRinzel() },
		Default:     func() odesys.State { return models.NewLiRinzel().DefaultState() },
	},
	"lirinzel-fm": {
		Name:        "lirinzel-fm",
		Description: "Li-Rinzel calcium model, FM encoding regime",
		ParamName:   "ip3",
		New:         func() odesys.System { return models.NewLiRinzelFM() },
		Default:     func() odesys.State { return models.NewLiRinzelFM().DefaultState() },
	},
	"chi": {
		Name:        "chi",
		Description: "ChI astrocyte model with IP3 metabolism",
		ParamName:   "gamma",
		New:         func() odesys.System { return models.NewChI() },
		Default:     func() odesys.State { return models.NewChI().DefaultState() },
	},
	"tmsynapse": {
		Name:        "tmsynapse",
		Description: "Tsodyks-Markram mean-field synapse",
		ParamName:   "rate",
		New:         func() odesys.System { return models.NewTMSynapse() },
		Default:     func() odesys.State { return models.NewTMSynapse().DefaultState() },
	},
	"vanderpol": {
		Name:        "vanderpol",
		Description: "Van der Pol oscillator",
		ParamName:   "mu",
		New:         func() odesys.System { return models.NewVanDerPol() },
		Default:     func() odesys.State { return models.NewVanDerPol().DefaultState() },
	},
}

var integratorRegistry = map[string]IntegratorInfo{
	"euler": {
		Name:        "euler",
		Description: "forward Euler, first order",
		Factory:     func() odesys.Integrator { return integrators.NewEuler() },
	},
	"rk4": {
		Name:        "rk4",
		Description: "classical Runge-Kutta, fourth order",
		Factory:     func() odesys.Integrator { return integrators.NewRK4() },
	},
	"rk45": {
		Name:        "rk45",
		Description: "Dormand-Prince 4(5)",
		Factory:     func() odesys.Integrator { return integrators.NewRK45() },
	},
}

// LookupModel returns the registered model info for name.
func LookupModel(name string) (ModelInfo, error) {
	info, ok := modelRegistry[name]
	if !ok {
		return ModelInfo{}, fmt.Errorf("unknown model %q (have %v)", name, ModelNames())
	}
	return info, nil
}

// LookupIntegrator returns the registered integrator info for name.
func LookupIntegrator(name string) (IntegratorInfo, error) {
	info, ok := integratorRegistry[name]
	if !ok {
		return IntegratorInfo{}, fmt.Errorf("unknown integrator %q (have %v)", name, IntegratorNames())
	}
	return info, nil
}

// ModelNames lists registered model names in sorted order.
func ModelNames() []string {
	names := make([]string, 0, len(modelRegistry))
	for name := range modelRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IntegratorNames lists registered integrator names in sorted order.
func IntegratorNames() []string {
	names := make([]string, 0, len(integratorRegistry))
	for name := range integratorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
