package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/balloonwar/config"
)

// OutputManager writes session logs as CSV files in one directory.
type OutputManager struct {
	dir        string
	popFile    *csvFile
	battleFile *csvFile
	perfFile   *csvFile
}

// csvFile tracks whether the header row has been written.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

// write appends rows, emitting the header on the first call.
func write[T any](cf *csvFile, rows []T) error {
	if !cf.headerWritten {
		if err := gocsv.Marshal(rows, cf.f); err != nil {
			return err
		}
		cf.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, cf.f)
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, spec := range []struct {
		name string
		dst  **csvFile
	}{
		{"pops.csv", &om.popFile},
		{"battles.csv", &om.battleFile},
		{"perf.csv", &om.perfFile},
	} {
		f, err := os.Create(filepath.Join(dir, spec.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", spec.name, err)
		}
		*spec.dst = &csvFile{f: f}
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePop appends a row to pops.csv.
func (om *OutputManager) WritePop(r PopRecord) error {
	if om == nil {
		return nil
	}
	if err := write(om.popFile, []PopRecord{r}); err != nil {
		return fmt.Errorf("writing pop: %w", err)
	}
	return nil
}

// WriteBattle appends a row to battles.csv.
func (om *OutputManager) WriteBattle(r BattleRecord) error {
	if om == nil {
		return nil
	}
	if err := write(om.battleFile, []BattleRecord{r}); err != nil {
		return fmt.Errorf("writing battle: %w", err)
	}
	return nil
}

// WritePerf appends a row to perf.csv.
func (om *OutputManager) WritePerf(r PerfStatsCSV) error {
	if om == nil {
		return nil
	}
	if err := write(om.perfFile, []PerfStatsCSV{r}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, cf := range []*csvFile{om.popFile, om.battleFile, om.perfFile} {
		if cf == nil {
			continue
		}
		if err := cf.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
