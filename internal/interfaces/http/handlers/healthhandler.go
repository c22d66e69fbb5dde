package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carsub/internal/shared/utils"
)

type HealthHandler struct {
	db      *gorm.DB
	version string
}

func NewHealthHandler(db *gorm.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health reports service liveness and database connectivity.
func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status":  "ok",
		"version": h.version,
	})
}
