package services

import (
	"time"

	"github.com/teambition/rrule-go"

	"parlour-api/models"
)

// maxOccurrences caps an expansion so an unbounded rule over a wide window stays cheap.
const maxOccurrences = 366

// TaskOccurrences lists the due dates of task inside [from, to]. The rule is anchored on the
// task's due date. A task without a rule occurs once, on its due date.
func TaskOccurrences(task models.Task, from, to time.Time) ([]time.Time, error) {
	if from.After(to) {
		return nil, validationError("from must not be after to")
	}
	if task.RecurrenceRule == "" {
		if inWindow(task.DueDate, from, to) {
			return []time.Time{task.DueDate}, nil
		}
		return []time.Time{}, nil
	}

	opt, err := rrule.StrToROption(task.RecurrenceRule)
	if err != nil {
		return nil, validationError("invalid recurrence rule: %v", err)
	}
	opt.Dtstart = task.DueDate

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, validationError("invalid recurrence rule: %v", err)
	}

	set := rrule.Set{}
	set.RRule(rule)

	out := []time.Time{}
	iter := set.Iterator()
	for {
		next, ok := iter()
		if !ok || next.After(to) || len(out) >= maxOccurrences {
			break
		}
		if !next.Before(from) {
			out = append(out, next)
		}
	}
	return out, nil
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
