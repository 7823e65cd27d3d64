package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/quantity"
	"github.com/san-kum/sixdof/internal/sim"
	"github.com/san-kum/sixdof/internal/store"
)

const (
	metadataFile   = "metadata.json"
	statesFile     = "states.csv"
	finalStateFile = "final_state.json"
	scenarioFile   = "scenario.yaml"
)

// Columns is the header of states.csv. Moment columns hold the moment
// applied over the step that starts at that row; the last row has none.
var Columns = []string{
	"time",
	"tx", "ty", "tz",
	"qw", "qx", "qy", "qz",
	"px", "py", "pz",
	"lx", "ly", "lz",
	"fx", "fy", "fz",
	"mx", "my", "mz",
}

var ErrBadRecord = errors.New("storage: malformed states record")

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
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Integrator  string             `json:"integrator"`
	Controller  string             `json:"controller"`
	Steps       int                `json:"steps"`
	Panels      int                `json:"panels"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Errors      []string           `json:"errors,omitempty"`
}

// Save writes a run directory holding the metadata, every recorded step as
// CSV, the final state and the scenario that produced it.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	name := cfg.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        cfg.Name,
		Timestamp:   now,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Integrator:  cfg.Integrator,
		Controller:  cfg.Controller,
		Steps:       result.StepsTaken,
		Panels:      len(result.Body.Panels),
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := s.writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", err
	}

	final, err := store.EncodeState(result.Final())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, finalStateFile), final, 0644); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, scenarioFile), cfg); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func (s *Store) writeStates(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return err
	}

	row := make([]string, len(Columns))
	for i, sn := range result.Snapshots {
		var m dynamo.Moment
		if i < len(result.Moments) {
			m = result.Moments[i]
		}
		q := sn.Transform.Rotation
		vals := []float64{
			result.Times[i],
			sn.Transform.Translation[0], sn.Transform.Translation[1], sn.Transform.Translation[2],
			q.W, q.V[0], q.V[1], q.V[2],
			sn.Momentum.Linear[0], sn.Momentum.Linear[1], sn.Momentum.Linear[2],
			sn.Momentum.Angular[0], sn.Momentum.Angular[1], sn.Momentum.Angular[2],
			m.Force[0], m.Force[1], m.Force[2],
			m.Torque[0], m.Torque[1], m.Torque[2],
		}
		for j, v := range vals {
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns the metadata of every run, oldest first. Directories without
// readable metadata are skipped.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads states.csv back into snapshots, the applied moments and
// the sample times.
func (s *Store) LoadStates(runID string) ([]sim.Snapshot, []dynamo.Moment, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(Columns)

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return []sim.Snapshot{}, []dynamo.Moment{}, []float64{}, nil
		}
		return nil, nil, nil, err
	}

	snapshots := make([]sim.Snapshot, 0)
	moments := make([]dynamo.Moment, 0)
	times := make([]float64, 0)

	vals := make([]float64, len(Columns))
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, err
		}

		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("%w: line %d column %s: %v", ErrBadRecord, line, Columns[j], err)
			}
			vals[j] = v
		}

		times = append(times, vals[0])
		snapshots = append(snapshots, sim.Snapshot{
			Transform: dynamo.Transform{
				Translation: quantity.Translation{vals[1], vals[2], vals[3]},
				Rotation:    quantity.Rotation{W: vals[4], V: mgl64.Vec3{vals[5], vals[6], vals[7]}},
			},
			Momentum: dynamo.Momentum{
				Linear:  quantity.LinMom{vals[8], vals[9], vals[10]},
				Angular: quantity.AngMom{vals[11], vals[12], vals[13]},
			},
		})
		moments = append(moments, dynamo.Moment{
			Force:  quantity.Force{vals[14], vals[15], vals[16]},
			Torque: quantity.Torque{vals[17], vals[18], vals[19]},
		})
	}

	// The last row only closes the run.
	if len(moments) > 0 {
		moments = moments[:len(moments)-1]
	}
	return snapshots, moments, times, nil
}

// LoadState reads the final state of a run.
func (s *Store) LoadState(runID string) (*dynamo.State, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, finalStateFile))
	if err != nil {
		return nil, err
	}
	return store.DecodeState(data)
}

// LoadScenario reads the scenario a run was made from.
func (s *Store) LoadScenario(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, scenarioFile))
}

// LoadResult rebuilds a run's result from its directory. The body is taken
// from the final state; mass, panels and medium do not change during a run.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.LoadState(runID)
	if err != nil {
		return nil, nil, err
	}
	snapshots, moments, times, err := s.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}

	return meta, &sim.Result{
		Body:        body,
		Snapshots:   snapshots,
		Moments:     moments,
		Times:       times,
		Metrics:     meta.Metrics,
		EnergyDrift: meta.EnergyDrift,
		StepsTaken:  meta.Steps,
	}, nil
}
