package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/orbit"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
	apsisFile      = "apsis.json"
)

var trajectoryHeader = []string{"time", "body", "x", "y", "z", "vx", "vy", "vz"}

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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Scheme    string             `json:"scheme"`
	Speed     float64            `json:"speed"`
	SubSteps  int                `json:"sub_steps"`
	FrameDt   float64            `json:"frame_dt"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	SimTime   float64            `json:"sim_time"`
	Bodies    []string           `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Sample is one body's physical state at one point in simulated time.
type Sample struct {
	Time     float64
	Body     string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// ApsisEntry is the final apsis record of one parented body.
type ApsisEntry struct {
	Body              string     `json:"body"`
	Parent            string     `json:"parent"`
	Periapsis         float32    `json:"periapsis"`
	PeriapsisPosition mgl64.Vec3 `json:"periapsis_position"`
	Apoapsis          float32    `json:"apoapsis"`
	ApoapsisPosition  mgl64.Vec3 `json:"apoapsis_position"`
	SemiMajorAxis     float64    `json:"semi_major_axis,omitempty"`
	Eccentricity      float64    `json:"eccentricity,omitempty"`
	Period            float64    `json:"period,omitempty"`
}

// Run is everything persisted for one simulation.
type Run struct {
	Meta       RunMetadata
	Trajectory []Sample
	Apsides    []ApsisEntry
}

// Save writes run into a new directory and returns its ID. Meta.ID and
// Meta.Timestamp are filled in.
func (s *Store) Save(run *Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Meta.Scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	run.Meta.ID = runID
	run.Meta.Timestamp = now

	if err := writeJSON(filepath.Join(runDir, metadataFile), run.Meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := WriteCSV(csvFile, run.Trajectory); err != nil {
		return "", fmt.Errorf("write trajectory: %w", err)
	}

	apsides := run.Apsides
	if apsides == nil {
		apsides = []ApsisEntry{}
	}
	if err := writeJSON(filepath.Join(runDir, apsisFile), apsides); err != nil {
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
	return enc.Encode(v)
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

func (s *Store) LoadApsides(runID string) ([]ApsisEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, apsisFile))
	if err != nil {
		return nil, err
	}
	var out []ApsisEntry
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return out, nil
}

// LoadRun reads all three files of a run.
func (s *Store) LoadRun(runID string) (*Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	traj, err := s.LoadTrajectory(runID)
	if err != nil {
		return nil, err
	}
	apsides, err := s.LoadApsides(runID)
	if err != nil {
		return nil, err
	}
	return &Run{Meta: *meta, Trajectory: traj, Apsides: apsides}, nil
}

func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	row := make([]string, len(trajectoryHeader))
	for _, smp := range samples {
		row[0] = strconv.FormatFloat(smp.Time, 'f', 3, 64)
		row[1] = smp.Body
		for k := 0; k < 3; k++ {
			row[2+k] = strconv.FormatFloat(smp.Position[k], 'g', -1, 64)
			row[5+k] = strconv.FormatFloat(smp.Velocity[k], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(trajectoryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [7]float64
		for j, field := range []int{0, 2, 3, 4, 5, 6, 7} {
			v, err := strconv.ParseFloat(record[field], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+2, err)
			}
			vals[j] = v
		}
		samples = append(samples, Sample{
			Time:     vals[0],
			Body:     record[1],
			Position: mgl64.Vec3{vals[1], vals[2], vals[3]},
			Velocity: mgl64.Vec3{vals[4], vals[5], vals[6]},
		})
	}
	return samples, nil
}

// BodyNames lists body names in store order.
func BodyNames(bodies []orbit.Body) []string {
	names := make([]string, len(bodies))
	for i := range bodies {
		names[i] = bodies[i].Name
	}
	return names
}
