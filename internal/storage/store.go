package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/particlelab/internal/particle"
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

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	FixedStepMS float64            `json:"fixed_step_ms"`
	Scheme      string             `json:"scheme"`
	Boundary    string             `json:"boundary"`
	Steps       uint64             `json:"steps"`
	Particles   int                `json:"particles"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json, the final particle
// state as particles.csv, and the per-sample series as series.csv.
func (s *Store) Save(meta RunMetadata, buf *particle.Buffer, series [][]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeParticles(runDir, buf); err != nil {
		return "", err
	}
	if err := s.writeSeries(runDir, series); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeParticles(runDir string, buf *particle.Buffer) error {
	csvFile, err := os.Create(filepath.Join(runDir, "particles.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"index", "type", "x", "y", "vx", "vy", "mass", "size"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range buf.X {
		if !buf.Active[i] {
			continue
		}
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(buf.Type[i]),
			strconv.FormatFloat(buf.X[i], 'f', 6, 64),
			strconv.FormatFloat(buf.Y[i], 'f', 6, 64),
			strconv.FormatFloat(buf.VX[i], 'f', 6, 64),
			strconv.FormatFloat(buf.VY[i], 'f', 6, 64),
			strconv.FormatFloat(buf.Mass[i], 'f', 6, 64),
			strconv.FormatFloat(buf.Size[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeSeries(runDir string, series [][]float64) error {
	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time_ms", "active", "kinetic_energy"}); err != nil {
		return err
	}

	for _, sample := range series {
		row := make([]string, 0, len(sample))
		for _, val := range sample {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads series.csv back as rows of floats, skipping the
// header and any malformed lines.
func (s *Store) LoadSeries(runID string) ([][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "series.csv")
	file, err := os.Open(csvPath)
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
		return [][]float64{}, nil
	}

	samples := make([][]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		sample := make([]float64, 0, len(record))
		ok := true
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			sample = append(sample, val)
		}
		if ok {
			samples = append(samples, sample)
		}
	}

	return samples, nil
}
