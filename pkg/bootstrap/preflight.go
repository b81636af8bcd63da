package bootstrap

import (
	"fmt"
	"os"

	"github.com/dd0wney/pgbootstrap/pkg/env"
	"github.com/dd0wney/pgbootstrap/pkg/pgconf"
)

// CheckPreconditions gates every run, in both modes. Checks run in order and
// stop at the first failure: the data directory must exist, the
// configuration file must exist, and the include directive must be absent.
// The directive's presence is the single source of truth for "already
// configured" and fails the whole run closed.
func CheckPreconditions(envctx *env.Context) error {
	info, err := os.Stat(envctx.DataDirectory)
	if err != nil || !info.IsDir() {
		return &MissingPathError{What: "data directory", Path: envctx.DataDirectory}
	}

	if _, err := os.Stat(envctx.ConfigFilePath); err != nil {
		return &MissingPathError{What: "configuration file", Path: envctx.ConfigFilePath}
	}

	configured, err := pgconf.HasIncludeDirective(envctx.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("check include directive: %w", err)
	}
	if configured {
		return ErrAlreadyConfigured
	}
	return nil
}
