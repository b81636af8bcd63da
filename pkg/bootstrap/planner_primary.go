package bootstrap

import (
	"context"
	"fmt"

	"github.com/dd0wney/pgbootstrap/pkg/pgconf"
)

func (p *Planner) stepWriteTuning() Step {
	content := p.Tuning.Render()
	path := p.Env.ReplicationConfPath
	return Step{
		Description: "write replication tuning configuration",
		Detail:      path + ":\n" + content,
		Apply: func(ctx context.Context) error {
			if err := pgconf.WriteFileAtomic(path, []byte(content), 0o600); err != nil {
				return err
			}
			return p.Owner.Chown(path)
		},
	}
}

func (p *Planner) stepBackupConfig() Step {
	configPath := p.Env.ConfigFilePath
	return Step{
		Description: "back up original postgresql.conf",
		Detail:      fmt.Sprintf("copy %s to %s", configPath, pgconf.BackupPath(configPath)),
		Apply: func(ctx context.Context) error {
			if err := pgconf.BackupConfig(configPath); err != nil {
				return err
			}
			return p.Owner.Chown(pgconf.BackupPath(configPath))
		},
	}
}

func (p *Planner) stepAppendInclude() Step {
	configPath := p.Env.ConfigFilePath
	return Step{
		Description: "append include directive to postgresql.conf",
		// No IsApplied here: the precondition gate already guarantees the
		// directive is absent, and a per-line check on an append could
		// leave duplicates after a partial prior run.
		Detail: fmt.Sprintf("append %q to %s", pgconf.IncludeDirective, configPath),
		Apply: func(ctx context.Context) error {
			return pgconf.AppendIncludeDirective(configPath)
		},
	}
}

func (p *Planner) stepEnsureCoordinatorAccess() Step {
	password := p.Env.RepmgrPassword
	return Step{
		Description: "ensure repmgr role and database",
		Detail: fmt.Sprintf("create superuser role %q and database %q if absent",
			CoordinatorRole, CoordinatorDatabase),
		IsApplied: func(ctx context.Context) (bool, error) {
			roleExists, err := p.Admin.RoleExists(ctx, CoordinatorRole)
			if err != nil {
				return false, err
			}
			dbExists, err := p.Admin.DatabaseExists(ctx, CoordinatorDatabase)
			if err != nil {
				return false, err
			}
			return roleExists && dbExists, nil
		},
		Apply: func(ctx context.Context) error {
			roleExists, err := p.Admin.RoleExists(ctx, CoordinatorRole)
			if err != nil {
				return err
			}
			if !roleExists {
				if err := p.Admin.CreateRole(ctx, CoordinatorRole, password); err != nil {
					return err
				}
			}
			dbExists, err := p.Admin.DatabaseExists(ctx, CoordinatorDatabase)
			if err != nil {
				return err
			}
			if !dbExists {
				if err := p.Admin.CreateDatabase(ctx, CoordinatorDatabase, CoordinatorRole); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (p *Planner) stepRegisterPrimary() Step {
	return Step{
		Description: "register primary with cluster coordinator",
		Detail:      fmt.Sprintf("repmgr -f %s primary register", p.Env.RegistrationConfPath),
		Apply: func(ctx context.Context) error {
			return p.Registrar.RegisterPrimary(ctx)
		},
	}
}
