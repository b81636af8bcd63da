package env

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Environment variable names consumed by Loader.Load.
const (
	VarProjectName    = "PROJECT_NAME"
	VarServiceName    = "SERVICE_NAME"
	VarEnvironment    = "ENVIRONMENT"
	VarHost           = "PGHOST"
	VarPort           = "PGPORT"
	VarDataDirectory  = "PGDATA"
	VarRepmgrPassword = "REPMGR_PASSWORD"
	VarPrimaryHost    = "PRIMARY_HOST"
	VarPrimaryPort    = "PRIMARY_PORT"
	VarRepmgrConfDir  = "REPMGR_CONF_DIR"
	VarServiceUser    = "PG_SERVICE_USER"
	VarTextfileDir    = "PGBOOTSTRAP_TEXTFILE_DIR"
)

// Defaults for the optional variables.
const (
	DefaultRuntimeDirectory = "/etc/repmgr"
	DefaultServiceUser      = "postgres"
)

// Executables that must be resolvable on PATH before any step is planned.
var requiredExecutables = []string{"repmgr", "pg_ctl"}

var validate = validator.New()

// Loader resolves a Context from the process environment. The lookup
// functions are injectable so tests can run hermetically.
type Loader struct {
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

// NewLoader returns a Loader backed by the real process environment and PATH.
func NewLoader() *Loader {
	return &Loader{
		Getenv:   os.Getenv,
		LookPath: exec.LookPath,
	}
}

// Load resolves and validates every input the given role needs. It fails on
// the first missing variable or executable and never returns a partial
// context. Load reads only; nothing on disk is touched.
func (l *Loader) Load(role NodeRole) (*Context, error) {
	ctx := &Context{Role: role}

	var err error
	if ctx.ProjectName, err = l.required(VarProjectName); err != nil {
		return nil, err
	}
	if ctx.ServiceName, err = l.required(VarServiceName); err != nil {
		return nil, err
	}
	if ctx.Environment, err = l.required(VarEnvironment); err != nil {
		return nil, err
	}
	if ctx.Host, err = l.required(VarHost); err != nil {
		return nil, err
	}
	if ctx.Port, err = l.requiredPort(VarPort); err != nil {
		return nil, err
	}
	if ctx.DataDirectory, err = l.required(VarDataDirectory); err != nil {
		return nil, err
	}
	if ctx.RepmgrPassword, err = l.required(VarRepmgrPassword); err != nil {
		return nil, err
	}

	if role == RoleReplica {
		if ctx.PrimaryHost, err = l.required(VarPrimaryHost); err != nil {
			return nil, err
		}
		if ctx.PrimaryPort, err = l.requiredPort(VarPrimaryPort); err != nil {
			return nil, err
		}
	}

	ctx.RuntimeDirectory = l.Getenv(VarRepmgrConfDir)
	if ctx.RuntimeDirectory == "" {
		ctx.RuntimeDirectory = DefaultRuntimeDirectory
	}
	ctx.ServiceUser = l.Getenv(VarServiceUser)
	if ctx.ServiceUser == "" {
		ctx.ServiceUser = DefaultServiceUser
	}
	ctx.TextfileDir = l.Getenv(VarTextfileDir)

	ctx.resolvePaths()

	for _, name := range requiredExecutables {
		path, err := l.LookPath(name)
		if err != nil {
			return nil, &MissingExecutableError{Name: name}
		}
		switch name {
		case "repmgr":
			ctx.RepmgrPath = path
		case "pg_ctl":
			ctx.PgCtlPath = path
		}
	}

	if err := validate.Struct(ctx); err != nil {
		return nil, fmt.Errorf("environment context validation: %w", err)
	}

	return ctx, nil
}

func (l *Loader) required(name string) (string, error) {
	v := l.Getenv(name)
	if v == "" {
		return "", &MissingVariableError{Name: name}
	}
	return v, nil
}

func (l *Loader) requiredPort(name string) (int, error) {
	v, err := l.required(name)
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(v)
	if err != nil || port < 1 || port > 65535 {
		return 0, &InvalidVariableError{Name: name, Value: v}
	}
	return port, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
