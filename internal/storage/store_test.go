package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/emerge/internal/entropy"
	"github.com/san-kum/emerge/internal/integrators"
	"github.com/san-kum/emerge/internal/regime"
	"github.com/san-kum/emerge/internal/sim"
	"github.com/san-kum/emerge/internal/sweep"
)

func sampleTrajectory(t *testing.T) (*entropy.Trajectory, entropy.Config) {
	t.Helper()
	sys, x0, cfg, err := regime.BuildTransformative(regime.DefaultTransformative())
	if err != nil {
		t.Fatal(err)
	}
	tr, err := sim.New(sys, integrators.NewHeun()).Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return tr, cfg
}

func TestSaveLoadRun(t *testing.T) {
	tr, cfg := sampleTrajectory(t)

	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.SaveRun("transformative", "heun", cfg, tr)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Regime != "transformative" || meta.Samples != len(tr.Times) {
		t.Errorf("metadata mismatch: %+v", meta)
	}

	se, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	if len(se.Times) != len(tr.Times) {
		t.Fatalf("expected %d rows, got %d", len(tr.Times), len(se.Times))
	}
	if se.Column("drug_profile") == nil {
		t.Error("transformative series must export the drug profile column")
	}
	if se.Column("meaning_entropy") == nil || se.Column("meaning_construction_signal") == nil {
		t.Error("series missing required columns")
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("list mismatch: %+v", runs)
	}
}

func TestListEmpty(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "missing")).List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestNearestIndex(t *testing.T) {
	se := &Series{Times: []float64{0, 0.5, 1.0, 1.5}}
	if i := se.NearestIndex(1.1); i != 2 {
		t.Errorf("expected index 2, got %d", i)
	}
	if i := se.NearestIndex(-3); i != 0 {
		t.Errorf("expected index 0, got %d", i)
	}
}

func TestSaveSweep(t *testing.T) {
	res := &sweep.Result{
		Param:     "coupling",
		Threshold: 0.4,
		Points: []sweep.Point{
			{Value: 0.2, Summary: sweep.Summary{
				FinalInfo: 0.21, FinalMeaning: 0.31,
				PeakConstruction: 0.05, ThresholdTime: 12.5, ThresholdReached: true,
			}},
			{Value: 0.4, Summary: sweep.Summary{FinalInfo: 0.2, FinalMeaning: 0.6}},
			{Value: 80, Err: errors.New("step 1 (t=0.1000): state left valid region")},
		},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.csv")
	if err := New(dir).SaveSweep(path, res); err != nil {
		t.Fatalf("save sweep: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data := string(b)

	if !strings.Contains(data, "coupling") {
		t.Error("header missing varied parameter name")
	}
	if !strings.Contains(data, "12.500000") {
		t.Error("threshold crossing time missing")
	}
	if !strings.Contains(data, NotReached) {
		t.Error("unreached threshold not explicitly represented")
	}
	if !strings.Contains(data, "state left valid region") {
		t.Error("per-point failure not recorded")
	}

	lines := strings.Split(strings.TrimSpace(data), "\n")
	if len(lines) != 4 {
		t.Errorf("expected header plus 3 rows, got %d lines", len(lines))
	}
}
