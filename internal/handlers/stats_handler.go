package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/analytics"
	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

type StatsHdl interface {
	GetWeightStats(ctx *gin.Context)
	GetActivityStats(ctx *gin.Context)
}

type StatsHandler struct {
	DatabaseManager managers.DatabaseMgr
	now             func() time.Time
}

func NewStatsHandler(databaseManager managers.DatabaseMgr) StatsHdl {
	return &StatsHandler{
		DatabaseManager: databaseManager,
		now:             time.Now,
	}
}

// GetWeightStats summarizes the whole weight history. The goal query parameter, given in the unit
// of the latest entry, overrides the goal stored on the profile.
func (handler *StatsHandler) GetWeightStats(ctx *gin.Context) {
	user := utils.GetAuthenticatedUser(ctx)
	now, ok := handler.referenceTime(ctx)
	if !ok {
		return
	}

	goal, goalUnit := user.GoalWeight, user.GoalUnit
	if raw := strings.TrimSpace(ctx.Query(utils.GoalParamKey)); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 1000 {
			details := []schemas.FieldError{{Field: utils.GoalParamKey, Message: "Goal must be a number between 0 and 1000"}}
			utils.WriteAndLogError(ctx, schemas.ValidationFailed.WithDetails(details), http.StatusBadRequest, errors.New("goal invalid"))
			return
		}
		goal, goalUnit = &value, ""
	}

	weights, err := weightStore.all(ctx, handler.DatabaseManager.GetPool(), user.ID, utils.EntryFilter{})
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	entries := make([]schemas.WeightEntry, 0, len(weights))
	for _, weight := range weights {
		entries = append(entries, *weight)
	}

	utils.WriteAndLogResponse(ctx, analytics.SummarizeWeights(entries, goal, goalUnit, now), http.StatusOK)
}

// GetActivityStats summarizes the whole activity history.
func (handler *StatsHandler) GetActivityStats(ctx *gin.Context) {
	user := utils.GetAuthenticatedUser(ctx)
	now, ok := handler.referenceTime(ctx)
	if !ok {
		return
	}

	activities, err := activityStore.all(ctx, handler.DatabaseManager.GetPool(), user.ID, utils.EntryFilter{})
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	entries := make([]schemas.ActivityEntry, 0, len(activities))
	for _, activity := range activities {
		entries = append(entries, *activity)
	}

	utils.WriteAndLogResponse(ctx, analytics.SummarizeActivities(entries, now), http.StatusOK)
}

// referenceTime returns the current time in the zone named by the tz parameter, UTC by default.
func (handler *StatsHandler) referenceTime(ctx *gin.Context) (time.Time, bool) {
	loc := time.UTC
	if name := strings.TrimSpace(ctx.Query(utils.TimezoneParamKey)); name != "" {
		var err error
		if loc, err = time.LoadLocation(name); err != nil {
			details := []schemas.FieldError{{Field: utils.TimezoneParamKey, Message: "Tz must be an IANA time zone"}}
			utils.WriteAndLogError(ctx, schemas.ValidationFailed.WithDetails(details), http.StatusBadRequest, err)
			return time.Time{}, false
		}
	}
	return handler.now().In(loc), true
}
