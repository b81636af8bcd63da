package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/common/expfmt"
)

// TextfileName is the file written into the collector directory.
const TextfileName = "pgbootstrap.prom"

// WriteTextfile renders the registry in the text exposition format into the
// node_exporter textfile-collector directory. The write goes through a temp
// file and rename so the collector never reads a torn file.
func (m *JobMetrics) WriteTextfile(dir string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	tmp, err := os.CreateTemp(dir, TextfileName+".*")
	if err != nil {
		return fmt.Errorf("create metrics temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			tmp.Close()
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close metrics temp file: %w", err)
	}

	final := filepath.Join(dir, TextfileName)
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("rename metrics file: %w", err)
	}
	return nil
}
