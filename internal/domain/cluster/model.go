package cluster

import (
	"fmt"
	"time"
)

// Cluster is a physical training ground that training plans may reference.
type Cluster struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Cluster) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("cluster id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("cluster name is required")
	}

	return nil
}
