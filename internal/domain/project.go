package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

// ProjectStatus is the studio workflow status of a project.
// The scheduling core only sets the initial value.
type ProjectStatus string

const (
	ProjectStatusBooked     ProjectStatus = "booked"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusEditing    ProjectStatus = "editing"
	ProjectStatusDelivered  ProjectStatus = "delivered"
)

// Project is the aggregate root of a studio engagement.
// It exclusively owns its Booking and Session (1:1:1 by project_id).
type Project struct {
	ID              int64
	ProjectNumber   int64
	ClientID        int64
	ServiceID       int64
	Address         string
	ShootDate       time.Time
	ShootTime       types.TimeString
	Status          ProjectStatus
	SchedulingState SchedulingState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShootStart returns the shoot start as a point in time in the date's location
func (p *Project) ShootStart() time.Time {
	return p.ShootTime.On(p.ShootDate)
}
