package pgconf

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// IncludeDirective is the single line appended to postgresql.conf. Its
// presence is the source of truth for "this node is already configured";
// every re-run check keys off it.
const IncludeDirective = "include 'postgresql.replication.conf'"

// HasIncludeDirective reports whether the configuration file already carries
// the include line. Leading whitespace is tolerated; commented-out copies are
// not counted.
func HasIncludeDirective(configPath string) (bool, error) {
	f, err := os.Open(configPath)
	if err != nil {
		return false, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == IncludeDirective {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("scan config file: %w", err)
	}
	return false, nil
}

// AppendIncludeDirective appends the include line to the configuration file.
// The caller is responsible for ensuring the line is not already present;
// this function never checks, because a partial prior run could otherwise
// leave duplicate lines.
func AppendIncludeDirective(configPath string) error {
	f, err := os.OpenFile(configPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open config file for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + IncludeDirective + "\n"); err != nil {
		return fmt.Errorf("append include directive: %w", err)
	}
	return nil
}

// BackupPath returns where the pristine configuration copy lives.
func BackupPath(configPath string) string {
	return configPath + ".orig"
}

// BackupConfig copies the configuration file next to itself. If a backup
// already exists it is left alone: the first copy is the pristine original
// and is the operator's manual rollback point.
func BackupConfig(configPath string) error {
	backupPath := BackupPath(configPath)
	if _, err := os.Stat(backupPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat backup: %w", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		return fmt.Errorf("stat config file: %w", err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := os.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data via a temp file in the same directory followed
// by a rename, so readers never observe a half-written file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
