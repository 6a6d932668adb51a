package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminAction kind of admin operation recorded in the activity log
type AdminAction string

const (
	AdminActionCreateAppointment     AdminAction = "create_appointment"
	AdminActionUpdateAppointment     AdminAction = "update_appointment"
	AdminActionRescheduleAppointment AdminAction = "reschedule_appointment"
	AdminActionCancelAppointment     AdminAction = "cancel_appointment"
	AdminActionBlockTime             AdminAction = "block_time"
	AdminActionUnblockTime           AdminAction = "unblock_time"
)

// AdminActivity one audit record of an admin action
type AdminActivity struct {
	ID        uuid.UUID
	AdminID   uuid.UUID
	Action    AdminAction
	Details   map[string]any
	CreatedAt time.Time
}

// NewAdminActivity audit record about an appointment or a block
func NewAdminActivity(adminID uuid.UUID, action AdminAction, a *Appointment) *AdminActivity {
	details := map[string]any{
		"appointment_id":   a.ID.String(),
		"worker_id":        a.WorkerID.String(),
		"service":          a.ServiceName,
		"appointment_date": a.Date.Format(DateFormat),
		"appointment_time": a.StartTime.String(),
	}
	if !a.IsBlocked() {
		details["client_name"] = a.FirstName + " " + a.LastName
	}

	return &AdminActivity{
		AdminID: adminID,
		Action:  action,
		Details: details,
	}
}
