package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/springbar/internal/dynamo"
)

// Trajectory is a sampled spring run.
type Trajectory struct {
	Name       string             `json:"name" yaml:"name"`
	Method     string             `json:"method" yaml:"method"`
	Frequency  float64            `json:"frequency" yaml:"frequency"`
	Damping    float64            `json:"damping" yaml:"damping"`
	Dt         float64            `json:"dt" yaml:"dt"`
	Steps      int                `json:"steps" yaml:"steps"`
	Times      []float64          `json:"times" yaml:"times"`
	Positions  []float64          `json:"positions" yaml:"positions"`
	Velocities []float64          `json:"velocities" yaml:"velocities"`
	Targets    []float64          `json:"targets" yaml:"targets"`
	Metrics    map[string]float64 `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Append records one sample.
func (t *Trajectory) Append(time, position, velocity, target float64) {
	t.Times = append(t.Times, time)
	t.Positions = append(t.Positions, position)
	t.Velocities = append(t.Velocities, velocity)
	t.Targets = append(t.Targets, target)
	t.Steps = len(t.Times)
}

// ExportTrajectory writes tr to path, picking JSON or YAML from the
// extension.
func ExportTrajectory(path string, tr *Trajectory) error {
	enc, err := EncodingFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return Encode(file, enc, tr)
}

// ExportTrajectoryStdout writes tr as JSON to stdout.
func ExportTrajectoryStdout(tr *Trajectory) error {
	return Encode(os.Stdout, JSON, tr)
}

var csvHeader = []string{"time", "position", "velocity", "target"}

// WriteCSV writes one row per sample.
func WriteCSV(w io.Writer, tr *Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range tr.Times {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Positions[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Velocities[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Targets[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(r io.Reader) (*Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	tr := &Trajectory{}
	if len(records) < 2 {
		return tr, nil
	}

	for i, record := range records[1:] {
		var vals [4]float64
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, csvHeader[j], err)
			}
			vals[j] = v
		}
		tr.Append(vals[0], vals[1], vals[2], vals[3])
	}
	return tr, nil
}

// SaveTrajectory stores tr as trajectory.csv inside an existing run.
func (s *Store) SaveTrajectory(id string, tr *Trajectory) error {
	if id == "" || filepath.Base(id) != id {
		return dynamo.InvalidArgument("storage.SaveTrajectory", "id", id, "must be a plain file name")
	}
	runDir := filepath.Join(s.baseDir, id)
	if _, err := os.Stat(runDir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	f, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, tr)
}

// LoadTrajectory reads the trajectory saved with a run.
func (s *Store) LoadTrajectory(id string) (*Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "trajectory.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: trajectory for %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
