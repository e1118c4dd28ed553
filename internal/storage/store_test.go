package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/astroglia/casim/internal/bifurcation"
	"github.com/astroglia/casim/internal/odesys"
)

func TestStoreSaveLoadRun(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	traj := &odesys.Trajectory{
		Times: []float64{0.0, 0.01},
		States: []odesys.State{
			{0.2, 0.2},
			{0.21, 0.19},
		},
	}

	runID, err := st.SaveRun("lirinzel", "rk4", 0.01, 1.0, 0.3, traj, map[string]float64{"peak": 0.21})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Model != "lirinzel" {
		t.Errorf("expected model 'lirinzel', got '%s'", meta.Model)
	}

	if meta.Param != 0.3 {
		t.Errorf("expected param 0.3, got %f", meta.Param)
	}

	if meta.Metrics["peak"] != 0.21 {
		t.Errorf("expected peak 0.21, got %f", meta.Metrics["peak"])
	}

	loaded, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}

	if loaded.Len() != 2 {
		t.Errorf("expected 2 samples, got %d", loaded.Len())
	}

	if len(loaded.States[0]) != 2 {
		t.Errorf("expected 2-dim states, got %d", len(loaded.States[0]))
	}
}

func TestStoreSaveLoadDiagram(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	d := &bifurcation.Diagram{
		Params:    []float64{0.3, 0.3, 0.4},
		Values:    []float64{0.5, 0.1, 0.6},
		Succeeded: 2,
	}

	runID, err := st.SaveDiagram("lirinzel", "rk4", 0.01, 400.0, d)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != "diagram" {
		t.Errorf("expected kind 'diagram', got '%s'", meta.Kind)
	}

	loaded, err := st.LoadDiagram(runID)
	if err != nil {
		t.Fatalf("load diagram failed: %v", err)
	}

	if len(loaded.Params) != 3 || len(loaded.Values) != 3 {
		t.Errorf("expected 3 points, got %d/%d", len(loaded.Params), len(loaded.Values))
	}
	if loaded.Params[2] != 0.4 || loaded.Values[2] != 0.6 {
		t.Errorf("last point = (%f, %f), want (0.4, 0.6)", loaded.Params[2], loaded.Values[2])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	traj := &odesys.Trajectory{
		Times:  []float64{0.0},
		States: []odesys.State{{0.2, 0.2}},
	}

	_, err = st.SaveRun("lirinzel", "rk4", 0.01, 1.0, 0.3, traj, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	traj := &odesys.Trajectory{
		Times:  []float64{0.0},
		States: []odesys.State{{0.2, 0.2}},
	}

	runID, err := st.SaveRun("lirinzel", "rk4", 0.01, 1.0, 0.3, traj, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)

	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	if _, err := os.Stat(filepath.Join(runDir, "trace.csv")); os.IsNotExist(err) {
		t.Error("trace.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	traj := &odesys.Trajectory{
		Times:  []float64{0.0, 0.01},
		States: []odesys.State{{0.2, 0.2}, {0.21, 0.19}},
	}

	if err := ExportJSON(path, "lirinzel", "rk4", 0.01, 1.0, 0.3, traj, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty export")
	}
}
