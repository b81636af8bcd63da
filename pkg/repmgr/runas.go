package repmgr

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// ServiceAccount identifies the database service user that must own every
// file and subprocess this tool produces.
type ServiceAccount struct {
	Name string
	UID  int
	GID  int
}

// LookupServiceAccount resolves a system user by name.
func LookupServiceAccount(name string) (*ServiceAccount, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("lookup service user %s: %w", name, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, fmt.Errorf("parse uid for %s: %w", name, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return nil, fmt.Errorf("parse gid for %s: %w", name, err)
	}
	return &ServiceAccount{Name: name, UID: uid, GID: gid}, nil
}

// Chown hands the path to the service account. Outside a root container this
// is a no-op so unprivileged development runs still work.
func (a *ServiceAccount) Chown(path string) error {
	if os.Geteuid() != 0 {
		return nil
	}
	if err := os.Chown(path, a.UID, a.GID); err != nil {
		return fmt.Errorf("chown %s to %s: %w", path, a.Name, err)
	}
	return nil
}

// Credential returns the syscall credential for dropping privilege to the
// service account, or nil when the process is not root.
func (a *ServiceAccount) Credential() *syscall.Credential {
	if os.Geteuid() != 0 {
		return nil
	}
	return &syscall.Credential{Uid: uint32(a.UID), Gid: uint32(a.GID)}
}
