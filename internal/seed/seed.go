package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/educompact/school-records/internal/app/models"
	appRepos "github.com/educompact/school-records/internal/app/repositories"
	"github.com/educompact/school-records/internal/pkg/apperrors"
	"github.com/educompact/school-records/internal/pkg/auth"
)

type defaultUser struct {
	Email    string
	Name     string
	Password string
	Role     appModels.UserRole
}

// The two built-in accounts. Passwords are meant to be rotated after the
// first login.
var defaultUsers = []defaultUser{
	{
		Email:    "administrator@educompact.education",
		Name:     "School Administrator",
		Password: "Admin123!",
		Role:     appModels.RoleAdministrator,
	},
	{
		Email:    "head@educompact.education",
		Name:     "Head of School",
		Password: "Head123!",
		Role:     appModels.RoleHead,
	},
}

// CreateDefaultUsers creates the built-in administrator and head accounts if
// they don't exist yet.
func CreateDefaultUsers(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default user accounts...")
	var finalErr error

	for _, du := range defaultUsers {
		_, err := userRepo.GetByEmail(ctx, du.Email)
		if err == nil {
			lgr.Info().Str("email", du.Email).Msg("Default user already exists, skipping creation")
			continue
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Str("email", du.Email).Msg("Error checking default user")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		hashedPassword, err := auth.HashPassword(du.Password)
		if err != nil {
			lgr.Error().Err(err).Str("email", du.Email).Msg("Error hashing default user password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			Email:    du.Email,
			Name:     du.Name,
			Password: hashedPassword,
			Role:     du.Role,
		}

		id, err := userRepo.Create(ctx, user)
		if err != nil {
			// A concurrent boot may have created it in the meantime.
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("email", du.Email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Int64("userId", id).Str("email", du.Email).Str("role", string(du.Role)).Msg("Default user created")
	}

	lgr.Info().Msg("Default user check/creation finished.")
	return finalErr
}
