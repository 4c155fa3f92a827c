package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/metrics"
	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

type ProgressPhotoHdl interface {
	UploadPhoto(ctx *gin.Context)
	ListPhotos(ctx *gin.Context)
	GetPhoto(ctx *gin.Context)
	DeletePhoto(ctx *gin.Context)
}

type ProgressPhotoHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewProgressPhotoHandler(databaseManager managers.DatabaseMgr) ProgressPhotoHdl {
	return &ProgressPhotoHandler{
		DatabaseManager: databaseManager,
	}
}

// UploadPhoto stores the multipart image together with its caption and date.
func (handler *ProgressPhotoHandler) UploadPhoto(ctx *gin.Context) {
	request := utils.GetSanitizedPayload[schemas.ProgressPhotoRequest](ctx)
	user := utils.GetAuthenticatedUser(ctx)

	image, err := readImage(ctx, "image", maxPhotoBytes)
	if err != nil {
		writeUploadError(ctx, err, maxPhotoBytes)
		return
	}

	date, err := utils.ParseDateOrNow(request.Date)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.ValidationFailed, http.StatusBadRequest, err)
		return
	}

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	photo := &schemas.ProgressPhoto{
		ID:          uuid.New(),
		UserID:      user.ID,
		Date:        date,
		Caption:     request.Caption,
		Image:       image.Base64,
		ContentType: image.ContentType,
		CreatedAt:   time.Now().UTC(),
	}

	queryString := "INSERT INTO progress_photos (id, user_id, date, caption, image, content_type, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)"
	if _, err = tx.Exec(ctx, queryString, photo.ID, photo.UserID, photo.Date, photo.Caption, photo.Image,
		photo.ContentType, photo.CreatedAt); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordEntryWrite("photo", "create")
	response := &schemas.ProgressPhotoUploadedDTO{
		Message:       "Progress photo uploaded",
		ProgressPhoto: photo,
	}
	utils.WriteAndLogResponse(ctx, response, http.StatusCreated)
}

// ListPhotos returns all photos of the authenticated user, newest first.
func (handler *ProgressPhotoHandler) ListPhotos(ctx *gin.Context) {
	user := utils.GetAuthenticatedUser(ctx)

	photos, err := photoStore.all(ctx, handler.DatabaseManager.GetPool(), user.ID, utils.EntryFilter{})
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, photos, http.StatusOK)
}

// GetPhoto returns a single photo of the authenticated user.
func (handler *ProgressPhotoHandler) GetPhoto(ctx *gin.Context) {
	photo := loadOwnedEntry(ctx, handler.DatabaseManager.GetPool(), photoStore, false)
	if photo == nil {
		return
	}
	utils.WriteAndLogResponse(ctx, photo, http.StatusOK)
}

// DeletePhoto removes a photo of the authenticated user.
func (handler *ProgressPhotoHandler) DeletePhoto(ctx *gin.Context) {
	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	photo := loadOwnedEntry(ctx, tx, photoStore, true)
	if photo == nil {
		return
	}

	if err := photoStore.deleteById(ctx, tx, photo.ID); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordEntryWrite("photo", "delete")
	utils.WriteAndLogResponse(ctx, &schemas.MessageDTO{Message: "Progress photo deleted"}, http.StatusOK)
}
