package bootstrap

import (
	"context"
	"fmt"
)

func (p *Planner) stepCloneFromPrimary() Step {
	host := p.Env.PrimaryHost
	port := p.Env.PrimaryPort
	password := p.Env.RepmgrPassword
	return Step{
		Description: "clone standby from primary",
		Detail: fmt.Sprintf("repmgr -h %s -p %d -U %s -d %s -f %s standby clone",
			host, port, CoordinatorRole, CoordinatorDatabase, p.Env.RegistrationConfPath),
		Apply: func(ctx context.Context) error {
			return p.Registrar.CloneFromPrimary(ctx, host, port, password)
		},
	}
}
