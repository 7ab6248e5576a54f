package coach

import (
	"fmt"
	"time"
)

// Coach is a staff member allowed to review join requests, approve training
// plans, and manage assignments for the teams they are attached to.
type Coach struct {
	ID        string
	Name      string
	Specialty string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Coach) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("coach id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("coach name is required")
	}

	return nil
}
