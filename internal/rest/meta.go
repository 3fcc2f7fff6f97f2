package rest

import (
	"context"
	"net/http"
	"time"

	"agenticWallet/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// MetaHandler serves the static enum lists and the health check.
type MetaHandler struct {
	appName    string
	appVersion string
	db         *gorm.DB
}

func NewMetaHandler(appName, appVersion string, db *gorm.DB) *MetaHandler {
	return &MetaHandler{
		appName:    appName,
		appVersion: appVersion,
		db:         db,
	}
}

func (h *MetaHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "down"
		}
	}

	status := http.StatusOK
	healthy := "healthy"
	if dbStatus != "up" {
		status = http.StatusServiceUnavailable
		healthy = "degraded"
	}

	return c.JSON(status, map[string]interface{}{
		"status":   healthy,
		"service":  h.appName,
		"version":  h.appVersion,
		"database": dbStatus,
	})
}

func (h *MetaHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.Categories()))
}

func (h *MetaHandler) Goals(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.OptimizationGoals()))
}
