package repmgr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/dd0wney/pgbootstrap/pkg/logging"
)

// Command describes a subprocess invocation.
type Command struct {
	Path string
	Args []string
	// Env entries are appended to the inherited process environment
	Env []string
}

// Runner executes commands; tests substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner runs commands as the database service account. When the process
// is not root the credential is nil and the subprocess runs as the current
// user, which is what development and test environments want.
type ExecRunner struct {
	Account *ServiceAccount
}

// Run executes the command and returns its combined output. Any non-zero
// exit is an error; the exit code is authoritative and never reinterpreted.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Env = append(os.Environ(), cmd.Env...)
	if r.Account != nil {
		if cred := r.Account.Credential(); cred != nil {
			c.SysProcAttr = &syscall.SysProcAttr{Credential: cred}
		}
	}
	out, err := c.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return out, nil
}

// Client wraps the repmgr binary's register and clone subcommands. It treats
// repmgr as a black box: pass arguments in, classify the exit code, never
// parse the output beyond attaching it to failures.
type Client struct {
	runner   Runner
	binary   string
	confPath string
	logger   logging.Logger
}

// NewClient creates a client for the repmgr binary at the given path, using
// the given repmgr.conf.
func NewClient(runner Runner, binary, confPath string, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{runner: runner, binary: binary, confPath: confPath, logger: logger}
}

// RegisterPrimary runs `repmgr primary register` against the local instance.
func (c *Client) RegisterPrimary(ctx context.Context) error {
	cmd := Command{
		Path: c.binary,
		Args: []string{"-f", c.confPath, "primary", "register"},
	}
	c.logger.Debug("invoking repmgr", logging.String("subcommand", "primary register"))
	out, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRegistrationFailed, firstLine(out))
	}
	c.logger.Info("primary registered with repmgr")
	return nil
}

// CloneFromPrimary runs `repmgr standby clone`, streaming the primary's data
// directory onto this node. The coordinator password travels via PGPASSWORD,
// never on the command line.
func (c *Client) CloneFromPrimary(ctx context.Context, primaryHost string, primaryPort int, password string) error {
	cmd := Command{
		Path: c.binary,
		Args: []string{
			"-h", primaryHost,
			"-p", strconv.Itoa(primaryPort),
			"-U", "repmgr",
			"-d", "repmgr",
			"-f", c.confPath,
			"standby", "clone",
		},
		Env: []string{"PGPASSWORD=" + password},
	}
	c.logger.Debug("invoking repmgr",
		logging.String("subcommand", "standby clone"),
		logging.String("primary", fmt.Sprintf("%s:%d", primaryHost, primaryPort)),
	)
	out, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCloneFailed, firstLine(out))
	}
	c.logger.Info("standby cloned from primary")
	return nil
}

// firstLine trims subprocess output down to something loggable.
func firstLine(out []byte) string {
	for i, b := range out {
		if b == '\n' {
			return string(out[:i])
		}
	}
	return string(out)
}
