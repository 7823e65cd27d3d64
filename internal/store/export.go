package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/sim"
)

// ExportData is a whole run in one JSON document. Body holds the fixed part
// of the state (mass, panels, medium); each snapshot carries pose and
// momentum.
type ExportData struct {
	Name        string             `json:"name"`
	Integrator  string             `json:"integrator"`
	Controller  string             `json:"controller"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Body        *dynamo.State      `json:"body"`
	Times       []float64          `json:"times"`
	Snapshots   []sim.Snapshot     `json:"snapshots"`
	Moments     []dynamo.Moment    `json:"moments"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift float64            `json:"energy_drift"`
}

func NewExportData(name, integrator, controller string, dt, duration float64, result *sim.Result) *ExportData {
	return &ExportData{
		Name:        name,
		Integrator:  integrator,
		Controller:  controller,
		Dt:          dt,
		Duration:    duration,
		Steps:       result.StepsTaken,
		Body:        result.Body,
		Times:       result.Times,
		Snapshots:   result.Snapshots,
		Moments:     result.Moments,
		Metrics:     result.Metrics,
		EnergyDrift: result.EnergyDrift,
	}
}

// Result rebuilds the run result the export was made from.
func (d *ExportData) Result() *sim.Result {
	return &sim.Result{
		Body:        d.Body,
		Snapshots:   d.Snapshots,
		Moments:     d.Moments,
		Times:       d.Times,
		Metrics:     d.Metrics,
		EnergyDrift: d.EnergyDrift,
		StepsTaken:  d.Steps,
	}
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, data); err != nil {
		return err
	}
	return file.Close()
}

func ExportJSONStdout(data *ExportData) error {
	return WriteJSON(os.Stdout, data)
}

func ReadJSON(r io.Reader) (*ExportData, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
