package pgconf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postgresql.conf")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHasIncludeDirective(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"absent", "shared_buffers = 128MB\n", false},
		{"present", "shared_buffers = 128MB\ninclude 'postgresql.replication.conf'\n", true},
		{"indented", "  include 'postgresql.replication.conf'\n", true},
		{"commented out", "# include 'postgresql.replication.conf'\n", false},
		{"different file", "include 'other.conf'\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			got, err := HasIncludeDirective(path)
			if err != nil {
				t.Fatalf("HasIncludeDirective failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasIncludeDirective() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasIncludeDirectiveMissingFile(t *testing.T) {
	if _, err := HasIncludeDirective("/nonexistent/postgresql.conf"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestAppendIncludeDirective(t *testing.T) {
	path := writeConfig(t, "shared_buffers = 128MB\n")

	if err := AppendIncludeDirective(path); err != nil {
		t.Fatalf("AppendIncludeDirective failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "shared_buffers = 128MB\n") {
		t.Error("Original content must be preserved")
	}
	if count := strings.Count(string(data), IncludeDirective); count != 1 {
		t.Errorf("Expected exactly one include line, got %d", count)
	}

	has, err := HasIncludeDirective(path)
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Error("Appended directive not detected")
	}
}

func TestBackupConfig(t *testing.T) {
	path := writeConfig(t, "original content\n")

	if err := BackupConfig(path); err != nil {
		t.Fatalf("BackupConfig failed: %v", err)
	}

	data, err := os.ReadFile(BackupPath(path))
	if err != nil {
		t.Fatalf("Backup not readable: %v", err)
	}
	if string(data) != "original content\n" {
		t.Errorf("Backup content mismatch: %q", data)
	}

	info, err := os.Stat(BackupPath(path))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Backup mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestBackupConfigKeepsFirstCopy(t *testing.T) {
	path := writeConfig(t, "pristine\n")
	if err := BackupConfig(path); err != nil {
		t.Fatal(err)
	}

	// Mutate the live config, then back up again: the pristine copy wins.
	if err := os.WriteFile(path, []byte("mutated\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := BackupConfig(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(BackupPath(path))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pristine\n" {
		t.Errorf("Backup was clobbered: %q", data)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repmgr.conf")

	if err := WriteFileAtomic(path, []byte("node_id=1\n"), 0o600); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "node_id=1\n" {
		t.Errorf("Unexpected content: %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Temp file left behind: %d entries", len(entries))
	}
}
