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

var weightUnits = []string{schemas.UnitKilograms, schemas.UnitPounds}

type WeightHdl interface {
	CreateWeight(ctx *gin.Context)
	ListWeights(ctx *gin.Context)
	ExportWeights(ctx *gin.Context)
	GetWeight(ctx *gin.Context)
	UpdateWeight(ctx *gin.Context)
	DeleteWeight(ctx *gin.Context)
}

type WeightHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewWeightHandler(databaseManager managers.DatabaseMgr) WeightHdl {
	return &WeightHandler{
		DatabaseManager: databaseManager,
	}
}

// CreateWeight stores a new weight entry for the authenticated user.
func (handler *WeightHandler) CreateWeight(ctx *gin.Context) {
	request := utils.GetSanitizedPayload[schemas.WeightRequest](ctx)
	user := utils.GetAuthenticatedUser(ctx)

	date, err := utils.ParseDateOrNow(request.Date)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.ValidationFailed, http.StatusBadRequest, err)
		return
	}

	unit := request.Unit
	if unit == "" {
		unit = schemas.UnitKilograms
	}

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	now := time.Now().UTC()
	entry := &schemas.WeightEntry{
		ID:        uuid.New(),
		UserID:    user.ID,
		Weight:    *request.Weight,
		Unit:      unit,
		Date:      date,
		Notes:     request.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	queryString := "INSERT INTO weight_entries (id, user_id, weight, unit, date, notes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"
	if _, err = tx.Exec(ctx, queryString, entry.ID, entry.UserID, entry.Weight, entry.Unit, entry.Date, entry.Notes,
		entry.CreatedAt, entry.UpdatedAt); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordEntryWrite("weight", "create")
	utils.WriteAndLogResponse(ctx, entry, http.StatusCreated)
}

// ListWeights returns a filtered page of the user's weight entries, newest first.
func (handler *WeightHandler) ListWeights(ctx *gin.Context) {
	filter, params, ok := parseListQuery(ctx, weightUnits, false, true)
	if !ok {
		return
	}
	user := utils.GetAuthenticatedUser(ctx)
	pool := handler.DatabaseManager.GetPool()

	total, err := weightStore.count(ctx, pool, user.ID, filter)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	weights, err := weightStore.page(ctx, pool, user.ID, filter, params)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	response := &schemas.WeightPageDTO{
		Weights:      weights,
		PageMetadata: utils.NewPageMetadata(params, total),
	}
	utils.WriteAndLogResponse(ctx, response, http.StatusOK)
}

// ExportWeights writes every entry matching the filter as CSV.
func (handler *WeightHandler) ExportWeights(ctx *gin.Context) {
	filter, _, ok := parseListQuery(ctx, weightUnits, false, false)
	if !ok {
		return
	}
	user := utils.GetAuthenticatedUser(ctx)

	weights, err := weightStore.all(ctx, handler.DatabaseManager.GetPool(), user.ID, filter)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	rows := make([][]string, 0, len(weights))
	for _, weight := range weights {
		rows = append(rows, []string{
			utils.FormatTimestamp(weight.Date),
			utils.FormatFloat(weight.Weight),
			weight.Unit,
			weight.Notes,
		})
	}

	if err = utils.WriteCSV(ctx, "weights.csv", []string{"date", "weight", "unit", "notes"}, rows); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Writing weight export failed", err)
	}
}

// GetWeight returns a single entry of the authenticated user.
func (handler *WeightHandler) GetWeight(ctx *gin.Context) {
	entry := loadOwnedEntry(ctx, handler.DatabaseManager.GetPool(), weightStore, false)
	if entry == nil {
		return
	}
	utils.WriteAndLogResponse(ctx, entry, http.StatusOK)
}

// UpdateWeight applies the fields present in the body. Cleared notes become empty,
// a cleared unit falls back to kg and a cleared date to the current time.
func (handler *WeightHandler) UpdateWeight(ctx *gin.Context) {
	request := utils.GetSanitizedPayload[schemas.WeightUpdateRequest](ctx)

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	entry := loadOwnedEntry(ctx, tx, weightStore, true)
	if entry == nil {
		return
	}

	updates := utils.NewUpdateSet(entry.ID)
	if request.Weight.Set {
		updates.Set("weight", request.Weight.Value)
	}
	if request.Unit.Set {
		unit := request.Unit.Value
		if request.Unit.Cleared() {
			unit = schemas.UnitKilograms
		}
		updates.Set("unit", unit)
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

	queryString, args := updates.Query(weightStore.table, "id = $1", weightStore.columns)
	updated, err := weightStore.scan(tx.QueryRow(ctx, queryString, args...))
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordEntryWrite("weight", "update")
	utils.WriteAndLogResponse(ctx, updated, http.StatusOK)
}

// DeleteWeight removes an entry of the authenticated user.
func (handler *WeightHandler) DeleteWeight(ctx *gin.Context) {
	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	entry := loadOwnedEntry(ctx, tx, weightStore, true)
	if entry == nil {
		return
	}

	if err := weightStore.deleteById(ctx, tx, entry.ID); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordEntryWrite("weight", "delete")
	utils.WriteAndLogResponse(ctx, &schemas.MessageDTO{Message: "Weight entry deleted successfully"}, http.StatusOK)
}
