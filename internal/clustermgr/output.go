package clustermgr

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"clusterfail/internal/domain"
)

const (
	folderKey = "CLUSTER_FOLDER"
	nodesKey  = "CLUSTER_NODES"
)

// Address is the host and port of one cluster node
type Address struct {
	Host string
	Port int
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Cluster is a running cluster started by the cluster manager script
type Cluster struct {
	Folder string
	Nodes  []Address
	TLS    bool
}

// ParseStartOutput extracts the cluster folder and node addresses from the
// output of the script's start command:
//
//	CLUSTER_FOLDER=/tmp/cluster-123
//	CLUSTER_NODES=127.0.0.1:7000,127.0.0.1:7001
func ParseStartOutput(output string) (*Cluster, error) {
	if !strings.Contains(output, folderKey) || !strings.Contains(output, nodesKey) {
		return nil, fmt.Errorf("%w: expected %s and %s", domain.ErrMalformedOutput, folderKey, nodesKey)
	}

	c := &Cluster{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.Contains(line, folderKey) {
			value, err := splitValue(line, folderKey)
			if err != nil {
				return nil, err
			}
			c.Folder = strings.TrimSpace(value)
		}

		if strings.Contains(line, nodesKey) {
			value, err := splitValue(line, nodesKey)
			if err != nil {
				return nil, err
			}
			nodes, err := parseNodes(value)
			if err != nil {
				return nil, err
			}
			c.Nodes = nodes
		}
	}

	return c, nil
}

func splitValue(line, key string) (string, error) {
	parts := strings.Split(line, key+"=")
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: bad %s line %q", domain.ErrMalformedOutput, key, line)
	}
	return parts[1], nil
}

func parseNodes(value string) ([]Address, error) {
	var nodes []Address
	for _, addr := range strings.Split(value, ",") {
		host, port, err := net.SplitHostPort(strings.TrimSpace(addr))
		if err != nil {
			return nil, fmt.Errorf("%w: bad node address %q: %v", domain.ErrMalformedOutput, addr, err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("%w: bad node port %q", domain.ErrMalformedOutput, addr)
		}
		nodes = append(nodes, Address{Host: host, Port: p})
	}
	return nodes, nil
}

// FormatStartOutput renders c in the same KEY=value form the script prints
func FormatStartOutput(c *Cluster) string {
	addrs := make([]string, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		addrs = append(addrs, n.String())
	}
	return fmt.Sprintf("%s=%s\n%s=%s\n", folderKey, c.Folder, nodesKey, strings.Join(addrs, ","))
}
