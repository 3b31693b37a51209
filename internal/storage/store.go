package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/SeokHunPark/dicebox/internal/dice"
	"github.com/SeokHunPark/dicebox/internal/roll"
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

type RollMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Kind       string    `json:"kind"`
	Count      int       `json:"count"`
	Seed       int64     `json:"seed"`
	Color      string    `json:"color,omitempty"`
	Results    []int     `json:"results"`
	SettleTime float64   `json:"settle_time"`
	Frames     int       `json:"frames"`
}

// Frame is one recorded simulation snapshot.
type Frame struct {
	Time  float64
	Poses []roll.Pose
}

// Save writes a roll recording: metadata.json plus poses.csv with one row
// per die per frame. It assigns the recording ID.
func (s *Store) Save(meta RollMetadata, frames []Frame) (string, error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = time.Now()
	meta.Frames = len(frames)

	rollDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(rollDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(rollDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(rollDir, "poses.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "die", "kind", "px", "py", "pz", "qw", "qx", "qy", "qz", "settled"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, f := range frames {
		for _, p := range f.Poses {
			row := []string{
				strconv.FormatFloat(f.Time, 'f', 6, 64),
				strconv.Itoa(p.ID),
				p.Kind.String(),
				strconv.FormatFloat(p.Pos.X(), 'f', 6, 64),
				strconv.FormatFloat(p.Pos.Y(), 'f', 6, 64),
				strconv.FormatFloat(p.Pos.Z(), 'f', 6, 64),
				strconv.FormatFloat(p.Rot.W, 'f', 6, 64),
				strconv.FormatFloat(p.Rot.V.X(), 'f', 6, 64),
				strconv.FormatFloat(p.Rot.V.Y(), 'f', 6, 64),
				strconv.FormatFloat(p.Rot.V.Z(), 'f', 6, 64),
				boolField(p.Settled),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return meta.ID, nil
}

func (s *Store) List() ([]RollMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RollMetadata{}, nil
		}
		return nil, err
	}

	rolls := make([]RollMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RollMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		rolls = append(rolls, meta)
	}

	return rolls, nil
}

func (s *Store) Load(id string) (*RollMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RollMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads a recording back. Rows sharing a timestamp are grouped
// into one frame; malformed rows are skipped.
func (s *Store) LoadFrames(id string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "poses.csv"))
	if err != nil {
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
		return []Frame{}, nil
	}

	frames := make([]Frame, 0)
	for _, record := range records[1:] {
		if len(record) < 11 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		id, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		kind, err := dice.ParseKind(record[2])
		if err != nil {
			continue
		}

		vals := make([]float64, 7)
		bad := false
		for i := range vals {
			vals[i], err = strconv.ParseFloat(record[3+i], 64)
			if err != nil {
				bad = true
				break
			}
		}
		if bad {
			continue
		}

		pose := roll.Pose{
			ID:      id,
			Kind:    kind,
			Pos:     mgl64.Vec3{vals[0], vals[1], vals[2]},
			Rot:     mgl64.Quat{W: vals[3], V: mgl64.Vec3{vals[4], vals[5], vals[6]}},
			Settled: record[10] == "1",
		}

		if n := len(frames); n > 0 && frames[n-1].Time == t {
			frames[n-1].Poses = append(frames[n-1].Poses, pose)
		} else {
			frames = append(frames, Frame{Time: t, Poses: []roll.Pose{pose}})
		}
	}

	return frames, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
