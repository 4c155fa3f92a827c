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

var activityUnits = []string{schemas.UnitMinutes, schemas.UnitHours}

type ActivityHdl interface {
	CreateActivity(ctx *gin.Context)
	ListActivities(ctx *gin.Context)
	ExportActivities(ctx *gin.Context)
	GetActivity(ctx *gin.Context)
	UpdateActivity(ctx *gin.Context)
	DeleteActivity(ctx *gin.Context)
}

type ActivityHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewActivityHandler(databaseManager managers.DatabaseMgr) ActivityHdl {
	return &ActivityHandler{
		DatabaseManager: databaseManager,
	}
}

// CreateActivity stores a new activity entry for the authenticated user.
func (handler *ActivityHandler) CreateActivity(ctx *gin.Context) {
	request := utils.GetSanitizedPayload[schemas.ActivityRequest](ctx)
	user := utils.GetAuthenticatedUser(ctx)

	date, err := utils.ParseDateOrNow(request.Date)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.ValidationFailed, http.StatusBadRequest, err)
		return
	}

	unit := request.Unit
	if unit == "" {
		unit = schemas.UnitMinutes
	}
	var calories float64
	if request.CaloriesBurned != nil {
		calories = *request.CaloriesBurned
	}

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	now := time.Now().UTC()
	entry := &schemas.ActivityEntry{
		ID:             uuid.New(),
		UserID:         user.ID,
		Type:           request.Type,
		Duration:       *request.Duration,
		Unit:           unit,
		CaloriesBurned: calories,
		Date:           date,
		Notes:          request.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	queryString := "INSERT INTO activity_entries (id, user_id, type, duration, unit, calories_burned, date, notes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)"
	if _, err = tx.Exec(ctx, queryString, entry.ID, entry.UserID, entry.Type, entry.Duration, entry.Unit,
		entry.CaloriesBurned, entry.Date, entry.Notes, entry.CreatedAt, entry.UpdatedAt); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordEntryWrite("activity", "create")
	utils.WriteAndLogResponse(ctx, entry, http.StatusCreated)
}

// ListActivities returns a filtered page of the user's activities, newest first.
func (handler *ActivityHandler) ListActivities(ctx *gin.Context) {
	filter, params, ok := parseListQuery(ctx, activityUnits, true, true)
	if !ok {
		return
	}
	user := utils.GetAuthenticatedUser(ctx)
	pool := handler.DatabaseManager.GetPool()

	total, err := activityStore.count(ctx, pool, user.ID, filter)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	activities, err := activityStore.page(ctx, pool, user.ID, filter, params)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	response := &schemas.ActivityPageDTO{
		Activities:   activities,
		PageMetadata: utils.NewPageMetadata(params, total),
	}
	utils.WriteAndLogResponse(ctx, response, http.StatusOK)
}

// ExportActivities writes every activity matching the filter as CSV.
func (handler *ActivityHandler) ExportActivities(ctx *gin.Context) {
	filter, _, ok := parseListQuery(ctx, activityUnits, true, false)
	if !ok {
		return
	}
	user := utils.GetAuthenticatedUser(ctx)

	activities, err := activityStore.all(ctx, handler.DatabaseManager.GetPool(), user.ID, filter)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	rows := make([][]string, 0, len(activities))
	for _, activity := range activities {
		rows = append(rows, []string{
			utils.FormatTimestamp(activity.Date),
			activity.Type,
			utils.FormatFloat(activity.Duration),
			activity.Unit,
			utils.FormatFloat(activity.CaloriesBurned),
			activity.Notes,
		})
	}

	header := []string{"date", "type", "duration", "unit", "caloriesBurned", "notes"}
	if err = utils.WriteCSV(ctx, "activities.csv", header, rows); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Writing activity export failed", err)
	}
}

// GetActivity returns a single activity of the authenticated user.
func (handler *ActivityHandler) GetActivity(ctx *gin.Context) {
	entry := loadOwnedEntry(ctx, handler.DatabaseManager.GetPool(), activityStore, false)
	if entry == nil {
		return
	}
	utils.WriteAndLogResponse(ctx, entry, http.StatusOK)
}

// UpdateActivity applies the fields present in the body. Cleared optional fields fall back to their defaults.
func (handler *ActivityHandler) UpdateActivity(ctx *gin.Context) {
	request := utils.GetSanitizedPayload[schemas.ActivityUpdateRequest](ctx)

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	entry := loadOwnedEntry(ctx, tx, activityStore, true)
	if entry == nil {
		return
	}

	updates := utils.NewUpdateSet(entry.ID)
	if request.Type.Set {
		updates.Set("type", request.Type.Value)
	}
	if request.Duration.Set {
		updates.Set("duration", request.Duration.Value)
	}
	if request.Unit.Set {
		unit := request.Unit.Value
		if request.Unit.Cleared() {
			unit = schemas.UnitMinutes
		}
		updates.Set("unit", unit)
	}
	if request.CaloriesBurned.Set {
		updates.Set("calories_burned", request.CaloriesBurned.Value)
	}
	if request.Date.Set {
		date, err := utils.ParseDateOrNow(request.Date.Value)
		if err != nil {
			utils.WriteAndLogError(ctx, schemas.ValidationFailed, http.StatusBadRequest, err)
			return
		}
		updates.Set("date", date)
	}
	if request.Notes.Set {
		updates.Set("notes", request.Notes.Value)
	}

	if updates.Empty() {
		utils.WriteAndLogResponse(ctx, entry, http.StatusOK)
		return
	}
	updates.Set("updated_at", time.Now().UTC())

	queryString, args := updates.Query(activityStore.table, "id = $1", activityStore.columns)
	updated, err := activityStore.scan(tx.QueryRow(ctx, queryString, args...))
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordEntryWrite("activity", "update")
	utils.WriteAndLogResponse(ctx, updated, http.StatusOK)
}

// DeleteActivity removes an activity of the authenticated user.
func (handler *ActivityHandler) DeleteActivity(ctx *gin.Context) {
	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	entry := loadOwnedEntry(ctx, tx, activityStore, true)
	if entry == nil {
		return
	}

	if err := activityStore.deleteById(ctx, tx, entry.ID); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordEntryWrite("activity", "delete")
	utils.WriteAndLogResponse(ctx, &schemas.MessageDTO{Message: "Activity entry deleted successfully"}, http.StatusOK)
}
