package seeder

import (
	"context"
	"errors"
	"fmt"

	"parlour-api/models"
	"parlour-api/pkg/logger"
	"parlour-api/pkg/password"
	"parlour-api/repository"
)

// DefaultPassword is the password given to every seeded dashboard account.
const DefaultPassword = "password123"

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

var seedUsers = []models.User{
	{Name: "Super Administrator", Email: "superadmin@parlour.com", Role: models.RoleSuperAdmin},
	{Name: "Administrator", Email: "admin@parlour.com", Role: models.RoleAdmin},
}

// SeedUsers creates the default dashboard accounts that do not exist yet and returns how many it added.
func SeedUsers(ctx context.Context, users UserStore) (int, error) {
	log := logger.Named("seeder")

	hashedPassword, err := password.HashPassword(DefaultPassword)
	if err != nil {
		return 0, fmt.Errorf("failed to hash seed password: %w", err)
	}

	created := 0
	for _, seed := range seedUsers {
		existing, err := users.FindUserByEmail(ctx, seed.Email)
		if err != nil {
			return created, err
		}
		if existing != nil {
			log.Info(ctx, "user already exists, skipping", logger.String("email", seed.Email))
			continue
		}

		user := seed
		user.Password = hashedPassword
		if err := users.CreateUser(ctx, &user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				continue
			}
			return created, fmt.Errorf("failed to seed user %s: %w", seed.Email, err)
		}
		created++
		log.Info(ctx, "user seeded", logger.String("email", user.Email), logger.String("role", user.Role))
	}
	return created, nil
}
