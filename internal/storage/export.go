package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Scenario   string             `json:"scenario"`
	Scheme     string             `json:"scheme"`
	Speed      float64            `json:"speed"`
	SubSteps   int                `json:"sub_steps"`
	Duration   float64            `json:"duration"`
	Frames     int                `json:"frames"`
	Steps      int                `json:"steps"`
	Bodies     []string           `json:"bodies"`
	Trajectory []ExportSample     `json:"trajectory"`
	Apsides    []ApsisEntry       `json:"apsides"`
	Metrics    map[string]float64 `json:"metrics"`
}

type ExportSample struct {
	Time     float64    `json:"time"`
	Body     string     `json:"body"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

func newExportData(run *Run) ExportData {
	data := ExportData{
		Scenario:   run.Meta.Scenario,
		Scheme:     run.Meta.Scheme,
		Speed:      run.Meta.Speed,
		SubSteps:   run.Meta.SubSteps,
		Duration:   run.Meta.Duration,
		Frames:     run.Meta.Frames,
		Steps:      len(run.Trajectory),
		Bodies:     run.Meta.Bodies,
		Trajectory: make([]ExportSample, len(run.Trajectory)),
		Apsides:    run.Apsides,
		Metrics:    run.Meta.Metrics,
	}
	for i, s := range run.Trajectory {
		data.Trajectory[i] = ExportSample{
			Time:     s.Time,
			Body:     s.Body,
			Position: s.Position,
			Velocity: s.Velocity,
		}
	}
	if data.Apsides == nil {
		data.Apsides = []ApsisEntry{}
	}
	return data
}

// WriteJSON encodes run as a single indented JSON document.
func WriteJSON(w io.Writer, run *Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(run))
}

func ExportJSON(path string, run *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, run)
}

func ExportJSONStdout(run *Run) error {
	return WriteJSON(os.Stdout, run)
}
