package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/antfarm/config"
)

// DeliveryRecord is one unload at the colony, keyed on simulated time.
type DeliveryRecord struct {
	SimTime float64 `csv:"sim_time"`
	Tick    int64   `csv:"tick"`
	AntID   uint32  `csv:"ant_id"`
	FoodID  uint32  `csv:"food_id"` // source of the load, 0 if unknown
	Amount  float64 `csv:"amount"`
	Stock   float64 `csv:"stock"` // colony stock after the unload
	Trip    int     `csv:"trip"`  // the ant's completed trips, this one included
}

// csvSink appends gocsv records to one file, with the header on first write.
type csvSink struct {
	file   *os.File
	header bool
}

func (s *csvSink) write(records any) error {
	if s.header {
		return gocsv.MarshalWithoutHeaders(records, s.file)
	}
	if err := gocsv.Marshal(records, s.file); err != nil {
		return err
	}
	s.header = true
	return nil
}

// Output files, one sink each.
const (
	fileWindows    = "telemetry.csv"
	filePerf       = "perf.csv"
	fileBookmarks  = "bookmarks.csv"
	fileDeliveries = "deliveries.csv"
)

// OutputManager writes a run's CSV files and config snapshot to one
// directory. A nil manager discards everything.
type OutputManager struct {
	dir   string
	sinks map[string]*csvSink
}

// NewOutputManager creates dir and opens every output file.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, sinks: make(map[string]*csvSink)}
	for _, name := range []string{fileWindows, filePerf, fileBookmarks, fileDeliveries} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		om.sinks[name] = &csvSink{file: f}
	}
	return om, nil
}

func (om *OutputManager) write(name string, records any) error {
	if om == nil {
		return nil
	}
	if err := om.sinks[name].write(records); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a flushed stats window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	return om.write(fileWindows, []WindowStats{stats})
}

// WritePerf appends the perf summary for the window ending at stats.
func (om *OutputManager) WritePerf(perf PerfStats, stats WindowStats) error {
	return om.write(filePerf, []PerfStatsCSV{perf.ToCSV(stats.WindowEndTick, stats.SimTimeSec)})
}

// WriteBookmark appends a bookmark.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	return om.write(fileBookmarks, []Bookmark{b})
}

// WriteDelivery appends one colony unload.
func (om *OutputManager) WriteDelivery(d DeliveryRecord) error {
	return om.write(fileDeliveries, []DeliveryRecord{d})
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
	var errs []error
	for _, s := range om.sinks {
		errs = append(errs, s.file.Close())
	}
	return errors.Join(errs...)
}
