package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/san-kum/armtorque/internal/experiment"
)

const FileName = "robotic_arm_data.csv"

var ErrNotFound = errors.New("storage: snapshot not found")

// Header is the column layout of the snapshot file. m1..m5 are the link 1,
// link 2, link 3, elbow and wrist masses.
var Header = []string{
	"id", "timestamp",
	"rock_mass", "m1", "m2", "m3", "m4", "m5",
	"shoulder_limit", "elbow_limit",
	"shoulder_torque", "elbow_torque",
	"max_x", "theta1_deg", "theta2_deg",
}

// Snapshot is one saved set of inputs with the results they produced.
type Snapshot struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	RockMass float64 `json:"rock_mass"`
	M1       float64 `json:"m1"`
	M2       float64 `json:"m2"`
	M3       float64 `json:"m3"`
	M4       float64 `json:"m4"`
	M5       float64 `json:"m5"`

	ShoulderLimit float64 `json:"shoulder_limit"`
	ElbowLimit    float64 `json:"elbow_limit"`

	ShoulderTorque float64 `json:"shoulder_torque"`
	ElbowTorque    float64 `json:"elbow_torque"`
	MaxX           float64 `json:"max_x"`
	Theta1Deg      float64 `json:"theta1_deg"`
	Theta2Deg      float64 `json:"theta2_deg"`
}

// FromReport builds a snapshot from a report. Missing scenarios leave their
// columns at zero.
func FromReport(r *experiment.Report) Snapshot {
	s := Snapshot{
		ID:            uuid.NewString(),
		Timestamp:     r.Timestamp.UTC().Truncate(time.Second),
		RockMass:      r.Masses.Payload,
		M1:            r.Masses.Link1,
		M2:            r.Masses.Link2,
		M3:            r.Masses.Link3,
		M4:            r.Masses.Elbow,
		M5:            r.Masses.Wrist,
		ShoulderLimit: r.Limits.Shoulder,
		ElbowLimit:    r.Limits.Elbow,
	}
	if r.Reference != nil {
		s.ShoulderTorque = r.Reference.Shoulder
		s.ElbowTorque = r.Reference.Elbow
	}
	if r.Reach != nil {
		s.MaxX = r.Reach.MaxX
		s.Theta1Deg = r.Reach.Theta1Deg
		s.Theta2Deg = r.Reach.Theta2Deg
	}
	return s
}

func (s Snapshot) record() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []string{
		s.ID, s.Timestamp.Format(time.RFC3339),
		f(s.RockMass), f(s.M1), f(s.M2), f(s.M3), f(s.M4), f(s.M5),
		f(s.ShoulderLimit), f(s.ElbowLimit),
		f(s.ShoulderTorque), f(s.ElbowTorque),
		f(s.MaxX), f(s.Theta1Deg), f(s.Theta2Deg),
	}
}

func parseRecord(rec []string) (Snapshot, error) {
	if len(rec) != len(Header) {
		return Snapshot{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(rec))
	}
	ts, err := time.Parse(time.RFC3339, rec[1])
	if err != nil {
		return Snapshot{}, err
	}
	vals := make([]float64, len(rec)-2)
	for i := range vals {
		v, err := strconv.ParseFloat(rec[i+2], 64)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%s: %w", Header[i+2], err)
		}
		vals[i] = v
	}
	return Snapshot{
		ID: rec[0], Timestamp: ts,
		RockMass: vals[0], M1: vals[1], M2: vals[2], M3: vals[3], M4: vals[4], M5: vals[5],
		ShoulderLimit: vals[6], ElbowLimit: vals[7],
		ShoulderTorque: vals[8], ElbowTorque: vals[9],
		MaxX: vals[10], Theta1Deg: vals[11], Theta2Deg: vals[12],
	}, nil
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Path is the location of the snapshot file.
func (s *Store) Path() string {
	return filepath.Join(s.baseDir, FileName)
}

// Append writes one row, adding the header only when the file is new.
func (s *Store) Append(ctx context.Context, snap Snapshot) error {
	path := s.Path()
	_, err := os.Stat(path)
	isNew := errors.Is(err, os.ErrNotExist)
	if err != nil && !isNew {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(Header); err != nil {
			return err
		}
	}
	if err := w.Write(snap.record()); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	log.FromContext(ctx).Debug("appended snapshot", "id", snap.ID, "file", path, "header", isNew)
	return f.Close()
}

// List returns every snapshot in file order. A missing file is empty.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	logger := log.FromContext(ctx)
	file, err := os.Open(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no snapshot file", "file", s.Path())
			return []Snapshot{}, nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Snapshot{}, nil
	}

	snaps := make([]Snapshot, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		snap, err := parseRecord(records[i])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", FileName, i+1, err)
		}
		snaps = append(snaps, snap)
	}
	logger.Debug("read snapshots", "file", s.Path(), "count", len(snaps))
	return snaps, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	snaps, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snaps {
		if snaps[i].ID == id {
			return &snaps[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

type exportReach struct {
	Found            bool    `json:"found"`
	MaxX             float64 `json:"max_x"`
	Theta1Deg        float64 `json:"theta1_deg"`
	Theta2Deg        float64 `json:"theta2_deg"`
	ShoulderTorque   float64 `json:"shoulder_torque"`
	ElbowTorque      float64 `json:"elbow_torque"`
	Evaluated        int     `json:"evaluated"`
	PositionFeasible int     `json:"position_feasible"`
	Feasible         int     `json:"feasible"`
}

type exportReference struct {
	ShoulderTorque float64 `json:"shoulder_torque"`
	ElbowTorque    float64 `json:"elbow_torque"`
}

// ExportData is the JSON document written by ExportJSON.
type ExportData struct {
	Timestamp time.Time        `json:"timestamp"`
	Gravity   float64          `json:"gravity"`
	Masses    any              `json:"masses"`
	Limits    any              `json:"limits"`
	Lengths   any              `json:"lengths"`
	Reference *exportReference `json:"reference,omitempty"`
	Reach     *exportReach     `json:"reach,omitempty"`
}

func ExportJSON(w io.Writer, r *experiment.Report) error {
	data := ExportData{
		Timestamp: r.Timestamp,
		Gravity:   r.Gravity,
		Masses:    r.Masses,
		Limits:    r.Limits,
		Lengths:   r.Lengths,
	}
	if r.Reference != nil {
		data.Reference = &exportReference{
			ShoulderTorque: r.Reference.Shoulder,
			ElbowTorque:    r.Reference.Elbow,
		}
	}
	if res := r.Reach; res != nil {
		data.Reach = &exportReach{
			Found:            res.Found,
			MaxX:             res.MaxX,
			Theta1Deg:        res.Theta1Deg,
			Theta2Deg:        res.Theta2Deg,
			ShoulderTorque:   res.Shoulder,
			ElbowTorque:      res.Elbow,
			Evaluated:        res.Evaluated,
			PositionFeasible: res.PositionFeasible,
			Feasible:         res.Feasible,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
