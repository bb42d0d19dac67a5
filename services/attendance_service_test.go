package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/models"
	"parlour-api/services"
)

type memoryLedger struct {
	mu       sync.Mutex
	events   []models.Attendance
	readLag  time.Duration
	failNext error
}

func (m *memoryLedger) CreateAttendance(_ context.Context, a *models.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.events = append(m.events, *a)
	return nil
}

func (m *memoryLedger) FindLatestByEmployee(_ context.Context, id primitive.ObjectID) (*models.Attendance, error) {
	if m.readLag > 0 {
		time.Sleep(m.readLag)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Attendance
	for i := range m.events {
		e := m.events[i]
		if e.EmployeeID != id {
			continue
		}
		if latest == nil || e.Timestamp.After(latest.Timestamp) ||
			(e.Timestamp.Equal(latest.Timestamp) && !e.CreatedAt.Before(latest.CreatedAt)) {
			latest = &e
		}
	}
	return latest, nil
}

func (m *memoryLedger) FindAttendances(_ context.Context, f models.AttendanceFilter) ([]models.AttendanceWithEmployee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AttendanceWithEmployee
	for _, e := range m.events {
		if !f.EmployeeID.IsZero() && e.EmployeeID != f.EmployeeID {
			continue
		}
		if f.StartTime != nil && e.Timestamp.Before(*f.StartTime) {
			continue
		}
		if f.EndTime != nil && e.Timestamp.After(*f.EndTime) {
			continue
		}
		out = append(out, models.AttendanceWithEmployee{
			ID: e.ID, EmployeeID: e.EmployeeID, Action: e.Action, Timestamp: e.Timestamp, CreatedAt: e.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *memoryLedger) countFor(id primitive.ObjectID, action models.AttendanceAction) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.EmployeeID == id && e.Action == action {
			n++
		}
	}
	return n
}

type memoryDirectory struct {
	employees []models.Employee
}

func (d *memoryDirectory) FindEmployeeByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	for i := range d.employees {
		if d.employees[i].ID == id {
			e := d.employees[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (d *memoryDirectory) FindActiveEmployees(_ context.Context) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range d.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	updates []models.AttendanceUpdate
}

func (r *recordingNotifier) NotifyAttendance(_ context.Context, u models.AttendanceUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

type panickingNotifier struct{}

func (panickingNotifier) NotifyAttendance(context.Context, models.AttendanceUpdate) {
	panic("sink exploded")
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newEmployee(name string, active bool) models.Employee {
	return models.Employee{ID: primitive.NewObjectID(), Name: name, Email: name + "@parlour.test", IsActive: active}
}

func TestRecordPunch(t *testing.T) {
	Convey("Given an employee with no attendance history", t, func() {
		ctx := context.Background()
		alice := newEmployee("alice", true)
		ledger := &memoryLedger{}
		dir := &memoryDirectory{employees: []models.Employee{alice}}
		notifier := &recordingNotifier{}
		clock := &fakeClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
		svc := services.NewAttendanceService(ledger, dir,
			services.WithClock(clock.Now),
			services.WithNotifier(notifier))

		Convey("Punching in, again in, then out follows the state machine", func() {
			t1 := clock.Now()
			res, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
			So(err, ShouldBeNil)
			So(res.Status.IsCheckedIn, ShouldBeTrue)
			So(*res.Status.LastActivity, ShouldEqual, t1)
			So(res.Attendance.Timestamp, ShouldEqual, t1)
			So(res.Attendance.CreatedAt, ShouldEqual, t1)

			clock.Set(t1.Add(time.Hour))
			_, err = svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
			So(errors.Is(err, services.ErrIllegalTransition), ShouldBeTrue)
			So(errors.Is(err, services.ErrAlreadyCheckedIn), ShouldBeTrue)
			So(ledger.countFor(alice.ID, models.ActionPunchIn), ShouldEqual, 1)

			t3 := t1.Add(8 * time.Hour)
			clock.Set(t3)
			res, err = svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchOut})
			So(err, ShouldBeNil)
			So(res.Status.IsCheckedIn, ShouldBeFalse)
			So(*res.Status.LastActivity, ShouldEqual, t3)
		})

		Convey("Punching out first is rejected", func() {
			_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchOut})
			So(errors.Is(err, services.ErrIllegalTransition), ShouldBeTrue)
			So(errors.Is(err, services.ErrNotCheckedIn), ShouldBeTrue)
			So(ledger.events, ShouldBeEmpty)
		})

		Convey("An alternating sequence always succeeds and toggles the status", func() {
			for i := 0; i < 10; i++ {
				action := models.ActionPunchIn
				if i%2 == 1 {
					action = models.ActionPunchOut
				}
				clock.Set(clock.Now().Add(time.Minute))
				res, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: action})
				So(err, ShouldBeNil)
				So(res.Status.IsCheckedIn, ShouldEqual, action == models.ActionPunchIn)
			}
			So(len(ledger.events), ShouldEqual, 10)
		})

		Convey("Every successful punch is pushed to the notifier with the new status", func() {
			_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn, Location: "front desk"})
			So(err, ShouldBeNil)
			So(len(notifier.updates), ShouldEqual, 1)
			u := notifier.updates[0]
			So(u.Attendance.Location, ShouldEqual, "front desk")
			So(u.Employee.Name, ShouldEqual, "alice")
			So(u.Employee.IsCheckedIn, ShouldBeTrue)

			_, err = svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
			So(err, ShouldNotBeNil)
			So(len(notifier.updates), ShouldEqual, 1)
		})

		Convey("Invalid input is a validation error", func() {
			_, err := svc.RecordPunch(ctx, services.PunchRequest{Action: models.ActionPunchIn})
			So(errors.Is(err, services.ErrValidation), ShouldBeTrue)

			_, err = svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: "lunch"})
			So(errors.Is(err, services.ErrValidation), ShouldBeTrue)
		})

		Convey("Unknown and inactive employees are not found", func() {
			_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: primitive.NewObjectID(), Action: models.ActionPunchIn})
			So(errors.Is(err, services.ErrNotFound), ShouldBeTrue)

			bob := newEmployee("bob", false)
			dir.employees = append(dir.employees, bob)
			_, err = svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: bob.ID, Action: models.ActionPunchIn})
			So(errors.Is(err, services.ErrEmployeeNotFound), ShouldBeTrue)
		})

		Convey("A failed append surfaces as a storage error and notifies nobody", func() {
			ledger.failNext = errors.New("connection reset")
			_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
			So(errors.Is(err, services.ErrStorage), ShouldBeTrue)
			So(notifier.updates, ShouldBeEmpty)
		})

		Convey("A timed out append stays classifiable as a deadline", func() {
			ledger.failNext = context.DeadlineExceeded
			_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
			So(errors.Is(err, services.ErrStorage), ShouldBeTrue)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})

		Convey("A panicking notifier does not fail the punch", func() {
			svc := services.NewAttendanceService(ledger, dir,
				services.WithClock(clock.Now),
				services.WithNotifier(panickingNotifier{}),
				services.WithNotifier(notifier))
			res, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
			So(err, ShouldBeNil)
			So(res.Status.IsCheckedIn, ShouldBeTrue)
			So(len(notifier.updates), ShouldEqual, 1)
		})
	})
}

func TestPunchTimestamps(t *testing.T) {
	Convey("Given a checked-in employee and a clock skew allowance of one minute", t, func() {
		ctx := context.Background()
		alice := newEmployee("alice", true)
		ledger := &memoryLedger{}
		clock := &fakeClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
		svc := services.NewAttendanceService(ledger, &memoryDirectory{employees: []models.Employee{alice}},
			services.WithClock(clock.Now),
			services.WithMaxClockSkew(time.Minute))

		_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
		So(err, ShouldBeNil)
		clock.Set(clock.Now().Add(4 * time.Hour))

		Convey("A supplied timestamp between the latest punch and now is kept", func() {
			ts := clock.Now().Add(-time.Hour)
			res, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchOut, Timestamp: &ts})
			So(err, ShouldBeNil)
			So(res.Attendance.Timestamp, ShouldEqual, ts)
			So(res.Attendance.CreatedAt, ShouldEqual, clock.Now())
		})

		Convey("A timestamp before the latest punch is rejected", func() {
			ts := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
			_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchOut, Timestamp: &ts})
			So(errors.Is(err, services.ErrValidation), ShouldBeTrue)
			So(len(ledger.events), ShouldEqual, 1)
		})

		Convey("A timestamp beyond the skew allowance is rejected", func() {
			ts := clock.Now().Add(5 * time.Minute)
			_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchOut, Timestamp: &ts})
			So(errors.Is(err, services.ErrValidation), ShouldBeTrue)
		})

		Convey("A timestamp within the skew allowance is accepted", func() {
			ts := clock.Now().Add(30 * time.Second)
			_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchOut, Timestamp: &ts})
			So(err, ShouldBeNil)
		})
	})
}

func TestConcurrentPunches(t *testing.T) {
	Convey("Given a checked-out employee and a slow ledger", t, func() {
		ctx := context.Background()
		alice := newEmployee("alice", true)
		ledger := &memoryLedger{readLag: 5 * time.Millisecond}
		svc := services.NewAttendanceService(ledger, &memoryDirectory{employees: []models.Employee{alice}})

		Convey("Concurrent check-ins produce exactly one success", func() {
			const attempts = 8
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				successes int
				illegal   int
			)
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						successes++
					} else if errors.Is(err, services.ErrIllegalTransition) {
						illegal++
					}
				}()
			}
			wg.Wait()

			So(successes, ShouldEqual, 1)
			So(illegal, ShouldEqual, attempts-1)
			So(ledger.countFor(alice.ID, models.ActionPunchIn), ShouldEqual, 1)
		})
	})
}

func TestListEmployeeStatuses(t *testing.T) {
	Convey("Given active employees with and without history", t, func() {
		ctx := context.Background()
		alice := newEmployee("alice", true)
		bob := newEmployee("bob", true)
		carol := newEmployee("carol", false)
		ledger := &memoryLedger{}
		clock := &fakeClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
		svc := services.NewAttendanceService(ledger, &memoryDirectory{employees: []models.Employee{alice, bob, carol}},
			services.WithClock(clock.Now),
			services.WithStatusConcurrency(2))

		_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: alice.ID, Action: models.ActionPunchIn})
		So(err, ShouldBeNil)

		statuses, err := svc.ListEmployeeStatuses(ctx)
		So(err, ShouldBeNil)

		Convey("Only active employees are listed, in directory order", func() {
			So(len(statuses), ShouldEqual, 2)
			So(statuses[0].ID, ShouldEqual, alice.ID)
			So(statuses[1].ID, ShouldEqual, bob.ID)
		})

		Convey("Status is derived from the latest punch", func() {
			So(statuses[0].IsCheckedIn, ShouldBeTrue)
			So(*statuses[0].LastActivity, ShouldEqual, clock.Now())
		})

		Convey("Employees without history are checked out with no activity", func() {
			So(statuses[1].IsCheckedIn, ShouldBeFalse)
			So(statuses[1].LastActivity, ShouldBeNil)
		})
	})
}

func TestQueryEvents(t *testing.T) {
	Convey("Given punches for two employees across three days", t, func() {
		ctx := context.Background()
		alice := newEmployee("alice", true)
		bob := newEmployee("bob", true)
		ledger := &memoryLedger{}
		clock := &fakeClock{}
		svc := services.NewAttendanceService(ledger, &memoryDirectory{employees: []models.Employee{alice, bob}},
			services.WithClock(clock.Now))

		day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
		for d := 1; d <= 3; d++ {
			for _, e := range []models.Employee{alice, bob} {
				clock.Set(day(d, 9))
				_, err := svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: e.ID, Action: models.ActionPunchIn})
				So(err, ShouldBeNil)
				clock.Set(day(d, 17))
				_, err = svc.RecordPunch(ctx, services.PunchRequest{EmployeeID: e.ID, Action: models.ActionPunchOut})
				So(err, ShouldBeNil)
			}
		}

		Convey("Filtering by employee and range returns only matching events, newest first", func() {
			start, end := day(2, 0), day(2, 23)
			events, err := svc.QueryEvents(ctx, models.AttendanceFilter{EmployeeID: alice.ID, StartTime: &start, EndTime: &end})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 2)
			for _, e := range events {
				So(e.EmployeeID, ShouldEqual, alice.ID)
				So(e.Timestamp, ShouldHappenOnOrBetween, start, end)
			}
			So(events[0].Timestamp.After(events[1].Timestamp), ShouldBeTrue)
		})

		Convey("Range bounds are inclusive", func() {
			start, end := day(1, 17), day(2, 9)
			events, err := svc.QueryEvents(ctx, models.AttendanceFilter{StartTime: &start, EndTime: &end})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 4)
		})

		Convey("An inverted range is a validation error", func() {
			start, end := day(3, 0), day(1, 0)
			_, err := svc.QueryEvents(ctx, models.AttendanceFilter{StartTime: &start, EndTime: &end})
			So(errors.Is(err, services.ErrValidation), ShouldBeTrue)
		})

		Convey("An empty result is an empty slice", func() {
			events, err := svc.QueryEvents(ctx, models.AttendanceFilter{EmployeeID: primitive.NewObjectID()})
			So(err, ShouldBeNil)
			So(events, ShouldNotBeNil)
			So(events, ShouldBeEmpty)
		})

		Convey("Today's events use the current calendar day", func() {
			clock.Set(day(2, 12))
			events, err := svc.TodayEvents(ctx)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 4)
		})
	})
}

func TestAttendanceState(t *testing.T) {
	Convey("The state machine only allows alternating punches", t, func() {
		next, err := services.StateOf(nil).Apply(models.ActionPunchIn)
		So(err, ShouldBeNil)
		So(next, ShouldEqual, services.StateCheckedIn)
		So(next.String(), ShouldEqual, "checked_in")

		_, err = next.Apply(models.ActionPunchIn)
		So(err, ShouldEqual, services.ErrAlreadyCheckedIn)

		_, err = services.StateCheckedOut.Apply(models.ActionPunchOut)
		So(err, ShouldEqual, services.ErrNotCheckedIn)

		So(services.StatusOf(nil).LastActivity, ShouldBeNil)
	})
}
