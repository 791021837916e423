package experiments

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pacman/agent"
	"pacman/config"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const (
	SetupFile    = "setup.json"
	EpisodesFile = "episodes.parquet"
	QTableFile   = "qtable.parquet"
)

const (
	PhaseTrain = "train"
	PhaseEval  = "eval"
)

// EpisodeRecord is one finished game.
type EpisodeRecord struct {
	Game       int32   `parquet:"game"`
	Phase      string  `parquet:"phase,dict"`
	Agent      string  `parquet:"agent,dict"`
	Layout     string  `parquet:"layout,dict"`
	Score      float64 `parquet:"score"`
	Win        bool    `parquet:"win"`
	Moves      int32   `parquet:"moves"`
	DurationMs int64   `parquet:"duration_ms"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates a directory named by the current time under root/name.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(cfg config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	err = os.WriteFile(filepath.Join(w.baseDir, SetupFile), data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}

func (w *Writer) WriteEpisodes(records []EpisodeRecord) error {
	return writeParquet(filepath.Join(w.baseDir, EpisodesFile), records, "episode_v1")
}

func (w *Writer) WriteQTable(entries []agent.Entry) error {
	return writeParquet(filepath.Join(w.baseDir, QTableFile), entries, "qtable_v1")
}

// writeParquet writes to a temporary file first so readers never see a partial file.
func writeParquet[T any](path string, rows []T, schema string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

func ReadEpisodes(path string) ([]EpisodeRecord, error) {
	records, err := parquet.ReadFile[EpisodeRecord](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read episodes: %w", err)
	}
	return records, nil
}

func ReadQTable(path string) ([]agent.Entry, error) {
	entries, err := parquet.ReadFile[agent.Entry](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read q-table: %w", err)
	}
	return entries, nil
}
