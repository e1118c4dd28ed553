package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/astroglia/casim/internal/bifurcation"
	"github.com/astroglia/casim/internal/odesys"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Param      float64            `json:"param"`
	Kind       string             `json:"kind"`
	Metrics    map[string]float64 `json:"metrics"`
}

// SaveRun writes one trajectory run as metadata.json plus trace.csv
// under a fresh run directory and returns the run ID.
func (s *Store) SaveRun(model, integrator string, dt, duration, param float64, traj *odesys.Trajectory, metricVals map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Integrator: integrator,
		Param:      param,
		Kind:       "trace",
		Metrics:    metricVals,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if traj.Len() == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range traj.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'f', 6, 64)}
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveDiagram writes a bifurcation sweep as metadata.json plus a flat
// diagram.csv of (param, value) rows, one row per extremum.
func (s *Store) SaveDiagram(model, integrator string, dt, duration float64, d *bifurcation.Diagram) (string, error) {
	runID := fmt.Sprintf("%s_sweep_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Integrator: integrator,
		Kind:       "diagram",
		Metrics: map[string]float64{
			"points":    float64(len(d.Params)),
			"succeeded": float64(d.Succeeded),
			"failures":  float64(len(d.Failures)),
		},
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "diagram.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"param", "value"}); err != nil {
		return "", err
	}
	for i := range d.Params {
		row := []string{
			strconv.FormatFloat(d.Params[i], 'f', 6, 64),
			strconv.FormatFloat(d.Values[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads a stored trace.csv back into a trajectory.
func (s *Store) LoadTrace(runID string) (*odesys.Trajectory, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}

	traj := &odesys.Trajectory{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		state := make(odesys.State, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}

		traj.Times = append(traj.Times, t)
		traj.States = append(traj.States, state)
	}

	return traj, nil
}

// LoadDiagram reads a stored diagram.csv back into param/value slices.
func (s *Store) LoadDiagram(runID string) (*bifurcation.Diagram, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "diagram.csv"))
	if err != nil {
		return nil, err
	}

	d := &bifurcation.Diagram{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		p, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		d.Params = append(d.Params, p)
		d.Values = append(d.Values, v)
	}

	return d, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
