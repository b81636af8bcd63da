package env

import "path/filepath"

// NodeRole identifies which side of the replication pair this node becomes.
// The role is fixed by the invoked entry point, never detected at runtime.
type NodeRole string

const (
	RolePrimary NodeRole = "primary"
	RoleReplica NodeRole = "replica"
)

// NodeID returns the repmgr node id for the role. The topology is fixed at
// two nodes: the primary is always node 1, the replica always node 2.
func (r NodeRole) NodeID() int {
	if r == RolePrimary {
		return 1
	}
	return 2
}

// NodeName returns the repmgr node name for the role.
func (r NodeRole) NodeName() string {
	if r == RolePrimary {
		return "node1"
	}
	return "node2"
}

// Context carries every input the provisioning run needs: identity variables,
// connection variables, resolved filesystem paths and executable locations.
// It is built once by Loader.Load and read-only afterwards.
type Context struct {
	Role NodeRole `validate:"required,oneof=primary replica"`

	// Identity
	ProjectName string `validate:"required"`
	ServiceName string `validate:"required"`
	Environment string `validate:"required"`

	// Local connection
	Host string `validate:"required"`
	Port int    `validate:"required,min=1,max=65535"`

	// Coordinator credential (locally chosen on the primary, the primary's
	// on the replica)
	RepmgrPassword string `validate:"required"`

	// Replica-only: where to clone from
	PrimaryHost string `validate:"required_if=Role replica"`
	PrimaryPort int    `validate:"required_if=Role replica"`

	// Resolved filesystem paths
	DataDirectory        string `validate:"required"`
	ConfigFilePath       string `validate:"required"`
	ReplicationConfPath  string `validate:"required"`
	RuntimeDirectory     string `validate:"required"`
	RegistrationConfPath string `validate:"required"`

	// Resolved executables
	RepmgrPath string `validate:"required"`
	PgCtlPath  string `validate:"required"`

	// Service account that must own everything we write
	ServiceUser string `validate:"required"`

	// Optional node_exporter textfile collector directory; empty disables
	// the job metrics file
	TextfileDir string
}

// resolvePaths fills the derived path fields from the data and runtime
// directories.
func (c *Context) resolvePaths() {
	c.ConfigFilePath = filepath.Join(c.DataDirectory, "postgresql.conf")
	c.ReplicationConfPath = filepath.Join(c.DataDirectory, "postgresql.replication.conf")
	c.RegistrationConfPath = filepath.Join(c.RuntimeDirectory, "repmgr.conf")
}

// ConnInfo returns the libpq-style conninfo string repmgr uses to reach the
// local instance.
func (c *Context) ConnInfo() string {
	return "host=" + c.Host + " port=" + itoa(c.Port) + " user=repmgr dbname=repmgr connect_timeout=5"
}
