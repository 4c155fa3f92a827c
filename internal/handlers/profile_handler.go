package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

type ProfileHdl interface {
	GetProfile(ctx *gin.Context)
	UpdateProfile(ctx *gin.Context)
}

type ProfileHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewProfileHandler(databaseManager managers.DatabaseMgr) ProfileHdl {
	return &ProfileHandler{
		DatabaseManager: databaseManager,
	}
}

// GetProfile returns the stored profile of the authenticated user.
func (handler *ProfileHandler) GetProfile(ctx *gin.Context) {
	user := utils.GetAuthenticatedUser(ctx)

	profile, err := utils.FindUserById(ctx, handler.DatabaseManager.GetPool(), user.ID.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, profile, http.StatusOK)
}

// UpdateProfile changes names, goal, email, password and profile picture.
// Changing the email or the password requires the current password.
func (handler *ProfileHandler) UpdateProfile(ctx *gin.Context) {
	request := utils.GetSanitizedPayload[schemas.UpdateProfileRequest](ctx)
	user := utils.GetAuthenticatedUser(ctx)

	picture, err := readImage(ctx, "profilePicture", maxProfilePictureBytes)
	if err != nil && !errors.Is(err, errNoFile) {
		writeUploadError(ctx, err, maxProfilePictureBytes)
		return
	}

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	var hashedPassword string
	if err = tx.QueryRow(ctx, "SELECT password FROM users WHERE id = $1 FOR UPDATE", user.ID).Scan(&hashedPassword); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	changesEmail := request.Email != nil && *request.Email != "" && *request.Email != user.Email
	changesPassword := request.NewPassword != nil && *request.NewPassword != ""
	if changesEmail || changesPassword {
		if request.CurrentPassword == nil || *request.CurrentPassword == "" {
			utils.WriteAndLogError(ctx, schemas.CurrentPasswordRequired, http.StatusBadRequest, errors.New("current password missing"))
			return
		}
		if !passwordMatches(hashedPassword, *request.CurrentPassword) {
			utils.WriteAndLogError(ctx, schemas.CurrentPasswordIncorrect, http.StatusUnauthorized, errors.New("current password mismatch"))
			return
		}
	}

	updates := utils.NewUpdateSet(user.ID)
	if request.FirstName != nil {
		updates.Set("first_name", *request.FirstName)
	}
	if request.LastName != nil {
		updates.Set("last_name", *request.LastName)
	}
	if request.GoalWeight.Set {
		if request.GoalWeight.Null {
			updates.Set("goal_weight", nil)
		} else {
			updates.Set("goal_weight", request.GoalWeight.Value)
		}
	}
	if request.GoalUnit != nil && *request.GoalUnit != "" {
		updates.Set("goal_unit", *request.GoalUnit)
	}
	if changesEmail {
		updates.Set("email", *request.Email)
	}
	if changesPassword {
		newHash, err := hashPassword(*request.NewPassword)
		if err != nil {
			utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
			return
		}
		updates.Set("password", newHash)
	}
	if picture != nil {
		updates.Set("profile_picture", picture.Base64)
	}

	updated := user
	if !updates.Empty() {
		updates.Set("updated_at", time.Now().UTC())
		queryString, args := updates.Query("users", "id = $1", utils.UserColumns)
		updated, err = utils.ScanUser(tx.QueryRow(ctx, queryString, args...))
		if err != nil {
			if isUniqueViolation(err) {
				utils.WriteAndLogError(ctx, schemas.EmailInUse, http.StatusBadRequest, err)
				return
			}
			utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	utils.LogMessageWithFields(ctx, "info", "User profile updated")
	response := &schemas.ProfileUpdatedDTO{
		Message: "Profile updated successfully",
		User:    updated,
	}
	utils.WriteAndLogResponse(ctx, response, http.StatusOK)
}
