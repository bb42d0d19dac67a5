package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parlour-api/models"
	"parlour-api/pkg/logger"
	"parlour-api/repository"
)

type EmployeeStore interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	FindEmployees(ctx context.Context, active *bool) ([]models.Employee, error)
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

var seedEmployees = []models.Employee{
	{Name: "Alice Johnson", Email: "alice@parlour.com", Phone: "+1234567890", Position: "Hair Stylist", Department: "Hair Care", JoinDate: date("2023-01-15")},
	{Name: "Bob Smith", Email: "bob@parlour.com", Phone: "+1234567891", Position: "Nail Technician", Department: "Nail Care", JoinDate: date("2023-02-20")},
	{Name: "Carol Williams", Email: "carol@parlour.com", Phone: "+1234567892", Position: "Esthetician", Department: "Skin Care", JoinDate: date("2023-03-10")},
	{Name: "David Brown", Email: "david@parlour.com", Phone: "+1234567893", Position: "Massage Therapist", Department: "Wellness", JoinDate: date("2023-04-05")},
}

// SeedEmployees adds the sample staff whose emails are not taken yet.
func SeedEmployees(ctx context.Context, employees EmployeeStore) (int, error) {
	log := logger.Named("seeder")

	existing, err := employees.FindEmployees(ctx, nil)
	if err != nil {
		return 0, err
	}
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[e.Email] = true
	}

	created := 0
	for _, seed := range seedEmployees {
		if taken[seed.Email] {
			continue
		}
		employee := seed
		employee.IsActive = true
		if err := employees.CreateEmployee(ctx, &employee); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				continue
			}
			return created, fmt.Errorf("failed to seed employee %s: %w", seed.Email, err)
		}
		created++
		log.Info(ctx, "employee seeded", logger.String("email", employee.Email))
	}
	return created, nil
}
