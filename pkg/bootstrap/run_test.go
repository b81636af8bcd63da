package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/pgbootstrap/pkg/env"
	"github.com/dd0wney/pgbootstrap/pkg/logging"
	"github.com/dd0wney/pgbootstrap/pkg/metrics"
)

// testHarness wires a full Run with fake collaborators over temp directories
type testHarness struct {
	vars      map[string]string
	dataDir   string
	admin     *fakeAdmin
	registrar *fakeRegistrar
	stdout    bytes.Buffer
	stdin     strings.Reader
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "postgresql.conf"),
		[]byte("shared_buffers = 128MB\n"), 0o600))

	h := &testHarness{
		dataDir:   dataDir,
		admin:     newFakeAdmin(),
		registrar: &fakeRegistrar{},
		vars: map[string]string{
			env.VarProjectName:    "acme",
			env.VarServiceName:    "orders-db",
			env.VarEnvironment:    "staging",
			env.VarHost:           "10.0.0.1",
			env.VarPort:           "5432",
			env.VarDataDirectory:  dataDir,
			env.VarRepmgrPassword: "s3cret",
			env.VarPrimaryHost:    "10.0.0.2",
			env.VarPrimaryPort:    "5432",
			env.VarRepmgrConfDir:  filepath.Join(t.TempDir(), "repmgr"),
		},
	}
	return h
}

func (h *testHarness) options(mode Mode) Options {
	return Options{
		Mode:        mode,
		SkipConfirm: true,
		Stdin:       &h.stdin,
		Stdout:      &h.stdout,
		Logger:      logging.NewNopLogger(),
		Loader: &env.Loader{
			Getenv:   func(name string) string { return h.vars[name] },
			LookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil },
		},
		NewDeps: func(envctx *env.Context, logger logging.Logger) (*Deps, error) {
			return &Deps{Admin: h.admin, Registrar: h.registrar, Owner: NopOwner{}}, nil
		},
	}
}

func TestRunPrimaryExecute(t *testing.T) {
	h := newTestHarness(t)

	code := Run(context.Background(), env.RolePrimary, h.options(ModeExecute))
	require.Equal(t, ExitOK, code)

	assert.Equal(t, 1, h.registrar.registrations)
	assert.FileExists(t, filepath.Join(h.dataDir, "postgresql.replication.conf"))
	assert.FileExists(t, filepath.Join(h.dataDir, "postgresql.conf.orig"))
	assert.FileExists(t, filepath.Join(h.vars[env.VarRepmgrConfDir], "repmgr.conf"))

	// Re-running against the configured node fails closed, touching nothing.
	h.registrar.registrations = 0
	code = Run(context.Background(), env.RolePrimary, h.options(ModeExecute))
	assert.Equal(t, ExitFailure, code)
	assert.Zero(t, h.registrar.registrations)
}

func TestRunReplicaDryRun(t *testing.T) {
	h := newTestHarness(t)

	code := Run(context.Background(), env.RoleReplica, h.options(ModeSimulate))
	require.Equal(t, ExitOK, code)

	out := h.stdout.String()
	assert.Contains(t, out, "3 steps")
	assert.Contains(t, out, "1. create repmgr configuration directory")
	assert.Contains(t, out, "2. write repmgr configuration (node_id=2)")
	assert.Contains(t, out, "3. clone standby from primary")

	// No side effects of any kind
	assert.Zero(t, h.registrar.registrations)
	assert.Empty(t, h.registrar.clones)
	assert.NoDirExists(t, h.vars[env.VarRepmgrConfDir])
	assert.NoFileExists(t, filepath.Join(h.dataDir, "postgresql.replication.conf"))
}

func TestRunDeclinedConfirmation(t *testing.T) {
	h := newTestHarness(t)
	opts := h.options(ModeExecute)
	opts.SkipConfirm = false
	h.stdin = *strings.NewReader("n\n")

	code := Run(context.Background(), env.RolePrimary, opts)
	assert.Equal(t, ExitOK, code)

	// Declining executes zero steps
	assert.Zero(t, h.registrar.registrations)
	assert.NoFileExists(t, filepath.Join(h.dataDir, "postgresql.replication.conf"))
}

func TestRunAcceptedConfirmation(t *testing.T) {
	h := newTestHarness(t)
	opts := h.options(ModeExecute)
	opts.SkipConfirm = false
	h.stdin = *strings.NewReader("y\n")

	code := Run(context.Background(), env.RolePrimary, opts)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, 1, h.registrar.registrations)
}

func TestRunMissingVariable(t *testing.T) {
	h := newTestHarness(t)
	delete(h.vars, env.VarRepmgrPassword)

	code := Run(context.Background(), env.RolePrimary, h.options(ModeExecute))
	assert.Equal(t, ExitFailure, code)
}

func TestRunFailedRegistration(t *testing.T) {
	h := newTestHarness(t)
	h.registrar.err = errTest

	code := Run(context.Background(), env.RolePrimary, h.options(ModeExecute))
	assert.Equal(t, ExitFailure, code)
}

func TestRunWritesMetricsTextfile(t *testing.T) {
	h := newTestHarness(t)
	textfileDir := t.TempDir()
	h.vars[env.VarTextfileDir] = textfileDir

	code := Run(context.Background(), env.RolePrimary, h.options(ModeExecute))
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(filepath.Join(textfileDir, metrics.TextfileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pgbootstrap_steps_applied_total")
	assert.Contains(t, string(data), `role="primary"`)
}

func TestRunDryRunSkipsMetricsTextfile(t *testing.T) {
	h := newTestHarness(t)
	textfileDir := t.TempDir()
	h.vars[env.VarTextfileDir] = textfileDir

	code := Run(context.Background(), env.RolePrimary, h.options(ModeSimulate))
	require.Equal(t, ExitOK, code)

	assert.NoFileExists(t, filepath.Join(textfileDir, metrics.TextfileName))
}

func TestRunTuningOverrides(t *testing.T) {
	h := newTestHarness(t)
	overridesPath := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(overridesPath,
		[]byte("settings:\n  wal_keep_size: 2GB\n"), 0o644))

	opts := h.options(ModeExecute)
	opts.TuningOverridesPath = overridesPath

	code := Run(context.Background(), env.RolePrimary, opts)
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(filepath.Join(h.dataDir, "postgresql.replication.conf"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "wal_keep_size = 2GB")
	assert.Contains(t, string(data), "wal_level = replica")
}
