package utils

import (
	"context"

	"github.com/jackc/pgx/v5"

	"fitness-tracker/internal/interfaces"
	"fitness-tracker/internal/schemas"
)

// UserColumns is the column list read by ScanUser. The password hash is never selected with it.
const UserColumns = "id, email, first_name, last_name, profile_picture, goal_weight, goal_unit, created_at, updated_at"

// ScanUser reads a row selected with UserColumns.
func ScanUser(row pgx.Row) (*schemas.User, error) {
	user := &schemas.User{}
	if err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.ProfilePicture,
		&user.GoalWeight, &user.GoalUnit, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserById loads a user without the password hash. pgx.ErrNoRows is returned for unknown ids.
func FindUserById(ctx context.Context, querier interfaces.Querier, userId string) (*schemas.User, error) {
	queryString := "SELECT " + UserColumns + " FROM users WHERE id = $1"
	return ScanUser(querier.QueryRow(ctx, queryString, userId))
}
