package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/dd0wney/pgbootstrap/pkg/env"
	"github.com/dd0wney/pgbootstrap/pkg/pgadmin"
	"github.com/dd0wney/pgbootstrap/pkg/pgconf"
	"github.com/dd0wney/pgbootstrap/pkg/repmgr"
)

// Coordinator role and database names. repmgr expects its own superuser role
// and bookkeeping database on every member.
const (
	CoordinatorRole     = "repmgr"
	CoordinatorDatabase = "repmgr"
)

// Owner hands created files and directories to the database service account.
type Owner interface {
	Chown(path string) error
}

// NopOwner leaves ownership alone. Simulate runs and tests use it.
type NopOwner struct{}

func (NopOwner) Chown(path string) error { return nil }

// Registrar is the cluster-registration surface the plan needs.
// repmgr.Client implements it.
type Registrar interface {
	RegisterPrimary(ctx context.Context) error
	CloneFromPrimary(ctx context.Context, primaryHost string, primaryPort int, password string) error
}

// Planner builds the ordered step sequence for a role. The same environment
// context always yields the same sequence, independent of mode.
type Planner struct {
	Env       *env.Context
	Tuning    pgconf.Tuning
	Admin     pgadmin.Admin
	Registrar Registrar
	Owner     Owner
}

// Plan returns the role's step sequence. Ordering is load-bearing: the
// include directive is appended only after the tuning file it references
// exists, and registration always comes last so every prior artifact is
// durably on disk first.
func (p *Planner) Plan() []Step {
	if p.Env.Role == env.RolePrimary {
		return p.planPrimary()
	}
	return p.planReplica()
}

func (p *Planner) planPrimary() []Step {
	return []Step{
		p.stepWriteTuning(),
		p.stepBackupConfig(),
		p.stepAppendInclude(),
		p.stepEnsureCoordinatorAccess(),
		p.stepCreateRuntimeDir(),
		p.stepWriteRegistrationConf(),
		p.stepRegisterPrimary(),
	}
}

func (p *Planner) planReplica() []Step {
	return []Step{
		p.stepCreateRuntimeDir(),
		p.stepWriteRegistrationConf(),
		p.stepCloneFromPrimary(),
	}
}

// Steps shared between roles.

func (p *Planner) stepCreateRuntimeDir() Step {
	dir := p.Env.RuntimeDirectory
	return Step{
		Description: "create repmgr configuration directory",
		Detail:      fmt.Sprintf("mkdir %s (mode 0750, owner %s)", dir, p.Env.ServiceUser),
		IsApplied: func(ctx context.Context) (bool, error) {
			info, err := os.Stat(dir)
			if err != nil {
				if os.IsNotExist(err) {
					return false, nil
				}
				return false, err
			}
			return info.IsDir(), nil
		},
		Apply: func(ctx context.Context) error {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			return p.Owner.Chown(dir)
		},
	}
}

func (p *Planner) stepWriteRegistrationConf() Step {
	cfg := repmgr.RegistrationConfig{
		NodeID:        p.Env.Role.NodeID(),
		NodeName:      p.Env.Role.NodeName(),
		ConnInfo:      p.Env.ConnInfo(),
		DataDirectory: p.Env.DataDirectory,
	}
	content := cfg.Render()
	path := p.Env.RegistrationConfPath
	return Step{
		Description: fmt.Sprintf("write repmgr configuration (node_id=%d)", cfg.NodeID),
		Detail:      path + ":\n" + content,
		Apply: func(ctx context.Context) error {
			if err := pgconf.WriteFileAtomic(path, []byte(content), 0o600); err != nil {
				return err
			}
			return p.Owner.Chown(path)
		},
	}
}
