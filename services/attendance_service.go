package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"parlour-api/models"
	"parlour-api/pkg/keylock"
	"parlour-api/pkg/logger"
	"parlour-api/pkg/metrics"
)

// AttendanceStore is the ledger as seen by the attendance service.
type AttendanceStore interface {
	CreateAttendance(ctx context.Context, attendance *models.Attendance) error
	FindLatestByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*models.Attendance, error)
	FindAttendances(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithEmployee, error)
}

// EmployeeDirectory resolves employees referenced by punches.
type EmployeeDirectory interface {
	FindEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	FindActiveEmployees(ctx context.Context) ([]models.Employee, error)
}

// Notifier receives every successfully recorded punch. Implementations must not block for long.
type Notifier interface {
	NotifyAttendance(ctx context.Context, update models.AttendanceUpdate)
}

// PunchRequest asks for one ledger append. A nil Timestamp means the service clock.
type PunchRequest struct {
	EmployeeID primitive.ObjectID
	Action     models.AttendanceAction
	Timestamp  *time.Time
	Location   string
	Notes      string
}

// PunchResult is the appended entry and the employee's status after it.
type PunchResult struct {
	Attendance models.Attendance
	Employee   models.Employee
	Status     models.AttendanceStatus
}

// AttendanceService enforces the check-in/check-out state machine over the ledger.
type AttendanceService struct {
	store     AttendanceStore
	employees EmployeeDirectory
	notifiers []Notifier
	locks     *keylock.Locker

	now               func() time.Time
	location          *time.Location
	maxClockSkew      time.Duration
	statusConcurrency int

	log     logger.Logger
	metrics *metrics.Manager
}

// NewAttendanceService builds a service over the ledger and directory. Defaults: UTC, time.Now,
// one minute of clock skew and eight status lookups in flight.
func NewAttendanceService(store AttendanceStore, employees EmployeeDirectory, opts ...Option) *AttendanceService {
	s := &AttendanceService{
		store:             store,
		employees:         employees,
		locks:             keylock.New(),
		now:               time.Now,
		location:          time.UTC,
		maxClockSkew:      time.Minute,
		statusConcurrency: 8,
		log:               logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordPunch validates the requested transition against the employee's latest ledger entry
// and appends the new entry. Read, validation and append run under a per-employee lock.
func (s *AttendanceService) RecordPunch(ctx context.Context, req PunchRequest) (*PunchResult, error) {
	result, err := s.recordPunch(ctx, req)
	s.metrics.RecordPunch(string(req.Action), punchOutcome(err))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AttendanceService) recordPunch(ctx context.Context, req PunchRequest) (*PunchResult, error) {
	if req.EmployeeID.IsZero() {
		return nil, validationError("employeeId is required")
	}
	if !req.Action.Valid() {
		return nil, validationError("action must be punch_in or punch_out")
	}

	employee, err := s.employees.FindEmployeeByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, storageError("find employee", err)
	}
	if employee == nil || !employee.IsActive {
		return nil, ErrEmployeeNotFound
	}

	unlock := s.locks.Lock(req.EmployeeID.Hex())
	defer unlock()

	latest, err := s.store.FindLatestByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, storageError("find latest attendance", err)
	}

	now := s.now()
	timestamp, err := s.resolveTimestamp(req.Timestamp, latest, now)
	if err != nil {
		return nil, err
	}

	if _, err := StateOf(latest).Apply(req.Action); err != nil {
		return nil, err
	}

	attendance := models.Attendance{
		ID:         primitive.NewObjectID(),
		EmployeeID: req.EmployeeID,
		Action:     req.Action,
		Timestamp:  timestamp,
		Location:   req.Location,
		Notes:      req.Notes,
		CreatedAt:  now,
	}
	if err := s.store.CreateAttendance(ctx, &attendance); err != nil {
		return nil, storageError("append attendance", err)
	}

	status := StatusOf(&attendance)
	s.notify(ctx, models.AttendanceUpdate{
		Attendance: attendance,
		Employee:   models.EmployeeWithCheckIn{Employee: *employee, IsCheckedIn: status.IsCheckedIn},
	})

	s.log.Info(ctx, "punch recorded",
		logger.String("employee", req.EmployeeID.Hex()),
		logger.String("action", string(req.Action)),
		logger.Any("timestamp", timestamp))

	return &PunchResult{Attendance: attendance, Employee: *employee, Status: status}, nil
}

// resolveTimestamp defaults to now. A supplied time may not precede the latest entry,
// which would reorder settled history, nor lie further in the future than the allowed skew.
func (s *AttendanceService) resolveTimestamp(supplied *time.Time, latest *models.Attendance, now time.Time) (time.Time, error) {
	if supplied == nil || supplied.IsZero() {
		if latest != nil && now.Before(latest.Timestamp) {
			return latest.Timestamp, nil
		}
		return now, nil
	}
	ts := *supplied
	if ts.After(now.Add(s.maxClockSkew)) {
		return time.Time{}, validationError("timestamp is in the future")
	}
	if latest != nil && ts.Before(latest.Timestamp) {
		return time.Time{}, validationError("timestamp precedes the employee's latest punch")
	}
	return ts, nil
}

func (s *AttendanceService) notify(ctx context.Context, update models.AttendanceUpdate) {
	for _, n := range s.notifiers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error(ctx, "notifier panicked", logger.Any("panic", r))
				}
			}()
			n.NotifyAttendance(ctx, update)
		}()
	}
}

// ListEmployeeStatuses derives the status of every active employee with one latest-entry lookup each.
func (s *AttendanceService) ListEmployeeStatuses(ctx context.Context) ([]models.EmployeeStatus, error) {
	employees, err := s.employees.FindActiveEmployees(ctx)
	if err != nil {
		return nil, storageError("list active employees", err)
	}

	statuses := make([]models.EmployeeStatus, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.statusConcurrency)

	for i := range employees {
		i := i
		g.Go(func() error {
			latest, err := s.store.FindLatestByEmployee(gctx, employees[i].ID)
			if err != nil {
				return storageError("find latest attendance", err)
			}
			statuses[i] = models.EmployeeStatus{Employee: employees[i], AttendanceStatus: StatusOf(latest)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// QueryEvents returns ledger entries matching filter, newest first, joined with employee details.
func (s *AttendanceService) QueryEvents(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithEmployee, error) {
	if filter.StartTime != nil && filter.EndTime != nil && filter.StartTime.After(*filter.EndTime) {
		return nil, validationError("startDate must not be after endDate")
	}
	events, err := s.store.FindAttendances(ctx, filter)
	if err != nil {
		return nil, storageError("query attendance", err)
	}
	if events == nil {
		events = []models.AttendanceWithEmployee{}
	}
	return events, nil
}

// TodayEvents returns the entries of the current calendar day in the service's timezone.
func (s *AttendanceService) TodayEvents(ctx context.Context) ([]models.AttendanceWithEmployee, error) {
	now := s.now().In(s.location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.QueryEvents(ctx, models.AttendanceFilter{StartTime: &start, EndTime: &end})
}

// Location is the timezone used for calendar-day boundaries.
func (s *AttendanceService) Location() *time.Location {
	return s.location
}

func punchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isKind(err, ErrIllegalTransition):
		return "illegal_transition"
	case isKind(err, ErrValidation):
		return "invalid"
	case isKind(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
