package services

import "parlour-api/models"

// AttendanceState is an employee's check-in state as derived from the ledger.
type AttendanceState int

const (
	StateCheckedOut AttendanceState = iota
	StateCheckedIn
)

func (s AttendanceState) String() string {
	if s == StateCheckedIn {
		return "checked_in"
	}
	return "checked_out"
}

// StateOf derives the state from the latest ledger entry. No entry means checked out.
func StateOf(latest *models.Attendance) AttendanceState {
	if latest != nil && latest.Action == models.ActionPunchIn {
		return StateCheckedIn
	}
	return StateCheckedOut
}

// Apply returns the state reached by action, or the illegal-transition error that forbids it.
func (s AttendanceState) Apply(action models.AttendanceAction) (AttendanceState, error) {
	switch action {
	case models.ActionPunchIn:
		if s == StateCheckedIn {
			return s, ErrAlreadyCheckedIn
		}
		return StateCheckedIn, nil
	case models.ActionPunchOut:
		if s != StateCheckedIn {
			return s, ErrNotCheckedIn
		}
		return StateCheckedOut, nil
	default:
		return s, validationError("action must be punch_in or punch_out")
	}
}

// StatusOf projects the latest ledger entry into the derived status.
func StatusOf(latest *models.Attendance) models.AttendanceStatus {
	if latest == nil {
		return models.AttendanceStatus{}
	}
	ts := latest.Timestamp
	return models.AttendanceStatus{
		IsCheckedIn:  StateOf(latest) == StateCheckedIn,
		LastActivity: &ts,
	}
}
