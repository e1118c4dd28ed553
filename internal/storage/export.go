package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/astroglia/casim/internal/bifurcation"
	"github.com/astroglia/casim/internal/odesys"
)

type ExportData struct {
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Param      float64            `json:"param"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

type DiagramExport struct {
	Model      string    `json:"model"`
	Integrator string    `json:"integrator"`
	Dt         float64   `json:"dt"`
	Duration   float64   `json:"duration"`
	Points     int       `json:"points"`
	Succeeded  int       `json:"succeeded"`
	Params     []float64 `json:"params"`
	Values     []float64 `json:"values"`
	Failures   []string  `json:"failures,omitempty"`
}

// ExportJSON writes a trajectory run as indented JSON to path, or to
// stdout when path is empty.
func ExportJSON(path, model, integrator string, dt, duration, param float64, traj *odesys.Trajectory, metricVals map[string]float64) error {
	data := ExportData{
		Model:      model,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Param:      param,
		Steps:      traj.Len(),
		Times:      traj.Times,
		States:     make([][]float64, traj.Len()),
		Metrics:    metricVals,
	}
	for i, s := range traj.States {
		data.States[i] = s
	}
	return writeIndented(path, data)
}

// ExportDiagramJSON writes a bifurcation diagram as indented JSON to
// path, or to stdout when path is empty.
func ExportDiagramJSON(path, model, integrator string, dt, duration float64, d *bifurcation.Diagram) error {
	data := DiagramExport{
		Model:      model,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Points:     len(d.Params),
		Succeeded:  d.Succeeded,
		Params:     d.Params,
		Values:     d.Values,
	}
	for _, f := range d.Failures {
		data.Failures = append(data.Failures, f.Err.Error())
	}
	return writeIndented(path, data)
}

func writeIndented(path string, v any) error {
	var out io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
