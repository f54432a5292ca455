// Package storage persists runs and sweeps as flat tabular files:
// one directory per run holding metadata.json and timeseries.csv, and a
// single CSV per sensitivity sweep.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/emerge/internal/entropy"
	"github.com/san-kum/emerge/internal/sweep"
)

// NotReached marks an unreached threshold in exported tables.
const NotReached = "not_reached"

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
	ID               string    `json:"id"`
	Regime           string    `json:"regime"`
	Timestamp        time.Time `json:"timestamp"`
	Dt               float64   `json:"dt"`
	Duration         float64   `json:"duration"`
	Integrator       string    `json:"integrator"`
	Samples          int       `json:"samples"`
	FinalInfo        float64   `json:"final_informational_entropy"`
	FinalMeaning     float64   `json:"final_meaning_entropy"`
	PeakConstruction float64   `json:"peak_meaning_construction_signal"`
	PeakTime         float64   `json:"peak_time"`
}

// SaveRun writes one trajectory under a fresh run directory and returns
// the run id.
func (s *Store) SaveRun(regime, integrator string, cfg entropy.Config, tr *entropy.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", regime, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	peak, peakAt := tr.PeakConstruction()
	final := tr.Final()
	meta := RunMetadata{
		ID:               runID,
		Regime:           regime,
		Timestamp:        time.Now(),
		Dt:               cfg.Dt,
		Duration:         cfg.Duration,
		Integrator:       integrator,
		Samples:          len(tr.Times),
		FinalInfo:        final.Info,
		FinalMeaning:     final.Meaning,
		PeakConstruction: peak,
		PeakTime:         peakAt,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, "timeseries.csv"), tr); err != nil {
		return "", err
	}
	return runID, nil
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

func writeSeries(path string, tr *entropy.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"time", "informational_entropy", "meaning_entropy",
		"meaning_construction_signal", "meaning_index"}
	if tr.Drug != nil {
		header = append(header, "drug_profile")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range tr.Times {
		row := []string{
			formatFloat(tr.Times[i]),
			formatFloat(tr.States[i].Info),
			formatFloat(tr.States[i].Meaning),
			formatFloat(tr.Construction[i]),
			formatFloat(tr.MeaningIndex[i]),
		}
		if tr.Drug != nil {
			row = append(row, formatFloat(tr.Drug[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
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

// Series is a loaded timeseries table: one named column per exported
// channel, rows aligned with Times.
type Series struct {
	Columns []string
	Times   []float64
	Rows    [][]float64
}

// Column returns the values of a named column, or nil.
func (se *Series) Column(name string) []float64 {
	for j, col := range se.Columns {
		if col != name {
			continue
		}
		vals := make([]float64, len(se.Rows))
		for i, row := range se.Rows {
			vals[i] = row[j]
		}
		return vals
	}
	return nil
}

// NearestIndex returns the sample index closest to time t.
func (se *Series) NearestIndex(t float64) int {
	best := 0
	for i, tm := range se.Times {
		if abs(tm-t) < abs(se.Times[best]-t) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// LoadSeries reads a stored timeseries table back.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "timeseries.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &Series{}, nil
	}

	se := &Series{
		Columns: records[0][1:],
		Times:   make([]float64, 0, len(records)-1),
		Rows:    make([][]float64, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = 0
			}
			row = append(row, v)
		}
		se.Times = append(se.Times, t)
		se.Rows = append(se.Rows, row)
	}

	return se, nil
}

// SaveSweep writes the sensitivity table. Failed grid points carry their
// error message; an unreached threshold is written as NotReached.
func (s *Store) SaveSweep(path string, res *sweep.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		res.Param,
		"final_informational_entropy",
		"final_meaning_entropy",
		"peak_meaning_construction_signal",
		"threshold_crossing_time",
		"error",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range res.Points {
		row := []string{formatFloat(p.Value)}
		if p.Err != nil {
			row = append(row, "", "", "", "", p.Err.Error())
		} else {
			crossing := NotReached
			if p.Summary.ThresholdReached {
				crossing = formatFloat(p.Summary.ThresholdTime)
			}
			row = append(row,
				formatFloat(p.Summary.FinalInfo),
				formatFloat(p.Summary.FinalMeaning),
				formatFloat(p.Summary.PeakConstruction),
				crossing,
				"",
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
