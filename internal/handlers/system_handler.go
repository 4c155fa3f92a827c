package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

const (
	apiVersion    = "1.0.0"
	pingTimeout   = 2 * time.Second
	statusHealthy = "OK"
)

type SystemHdl interface {
	GetMetadata(ctx *gin.Context)
	GetHealth(ctx *gin.Context)
	RouteNotFound(ctx *gin.Context)
}

type SystemHandler struct {
	DatabaseManager managers.DatabaseMgr
	startedAt       time.Time
}

func NewSystemHandler(databaseManager managers.DatabaseMgr) SystemHdl {
	return &SystemHandler{
		DatabaseManager: databaseManager,
		startedAt:       time.Now(),
	}
}

func (handler *SystemHandler) GetMetadata(ctx *gin.Context) {
	metadata := &schemas.MetadataDTO{
		Message:   "Fitness Tracker API is running!",
		Version:   apiVersion,
		Timestamp: utils.FormatTimestamp(time.Now()),
	}
	ctx.JSON(http.StatusOK, metadata)
}

// GetHealth reports process uptime and whether the database answers, 503 if it does not.
func (handler *SystemHandler) GetHealth(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	health := &schemas.HealthDTO{
		Status:    statusHealthy,
		Timestamp: utils.FormatTimestamp(time.Now()),
		Uptime:    time.Since(handler.startedAt).Seconds(),
		Database:  "connected",
	}

	if err := handler.DatabaseManager.Ping(pingCtx); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Database ping failed", err)
		health.Status = "Service Unavailable"
		health.Database = "disconnected"
		ctx.JSON(http.StatusServiceUnavailable, health)
		return
	}

	ctx.JSON(http.StatusOK, health)
}

func (handler *SystemHandler) RouteNotFound(ctx *gin.Context) {
	utils.LogMessageWithFields(ctx, "info", "No route for "+ctx.Request.Method+" "+ctx.Request.URL.Path)
	ctx.JSON(http.StatusNotFound, &schemas.RouteNotFoundDTO{
		Error: *schemas.RouteNotFound,
		Path:  ctx.Request.URL.Path,
	})
}
