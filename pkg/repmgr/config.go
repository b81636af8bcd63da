package repmgr

import (
	"fmt"
	"strings"
)

// RegistrationConfig is what gets rendered into repmgr.conf. Node identity
// is fixed per role: the primary is node 1 "node1", the replica node 2
// "node2". This pins the cluster at exactly two members.
type RegistrationConfig struct {
	NodeID        int
	NodeName      string
	ConnInfo      string
	DataDirectory string
}

// Render produces the repmgr.conf content.
func (c RegistrationConfig) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "node_id=%d\n", c.NodeID)
	fmt.Fprintf(&b, "node_name='%s'\n", c.NodeName)
	fmt.Fprintf(&b, "conninfo='%s'\n", c.ConnInfo)
	fmt.Fprintf(&b, "data_directory='%s'\n", c.DataDirectory)
	return b.String()
}
