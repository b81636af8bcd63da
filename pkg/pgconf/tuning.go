package pgconf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tuning holds the replication-tuning settings written to
// postgresql.replication.conf.
type Tuning map[string]string

// DefaultTuning returns the settings a two-node streaming-replication pair
// needs. wal_level = replica is the load-bearing one; the rest keep enough
// WAL around for the standby to catch up after short outages.
func DefaultTuning() Tuning {
	return Tuning{
		"wal_level":             "replica",
		"max_wal_senders":       "10",
		"max_replication_slots": "10",
		"hot_standby":           "on",
		"wal_keep_size":         "512MB",
		"archive_mode":          "on",
		"archive_command":       "'/bin/true'",
	}
}

// tuningOverrides is the on-disk shape of a tuning-override file.
type tuningOverrides struct {
	Settings map[string]any `yaml:"settings"`
}

// LoadOverrides reads a YAML override file. A missing settings block is an
// error; an operator passing --tuning wants overrides applied, not ignored.
func LoadOverrides(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning overrides: %w", err)
	}

	var overrides tuningOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse tuning overrides: %w", err)
	}
	if len(overrides.Settings) == 0 {
		return nil, fmt.Errorf("tuning overrides %s: no settings block", path)
	}

	tuning := make(Tuning, len(overrides.Settings))
	for key, value := range overrides.Settings {
		tuning[key] = fmt.Sprint(value)
	}
	return tuning, nil
}

// Merge returns a copy of t with every key from overrides applied on top.
func (t Tuning) Merge(overrides Tuning) Tuning {
	merged := make(Tuning, len(t)+len(overrides))
	for key, value := range t {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

// Render produces the file content. Keys are sorted so the same tuning always
// renders byte-identically.
func (t Tuning) Render() string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("# Replication tuning managed by pgbootstrap. Do not edit.\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(" = ")
		b.WriteString(t[key])
		b.WriteString("\n")
	}
	return b.String()
}
