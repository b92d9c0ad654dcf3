package api

import (
	"net/http"

	"github.com/Domenick1991/flightdash/internal/service/flights"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxVersionLen caps the version string sent to the dashboard.
const maxVersionLen = 100

type FlightHandler struct {
	service flights.FlightUseCase
	logger  *zap.Logger
}

type connectionOKResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	SQLServerVersion string `json:"sql_server_version"`
}

func NewFlightHandler(service flights.FlightUseCase, logger *zap.Logger) *FlightHandler {
	return &FlightHandler{service: service, logger: logger}
}

func (h *FlightHandler) Register(router gin.IRoutes) {
	router.GET("/api/flights", h.list)
	router.GET("/api/test-connection", h.testConnection)
}

func (h *FlightHandler) list(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list flights", zap.Error(err), zap.String("request_id", RequestIDFromContext(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *FlightHandler) testConnection(c *gin.Context) {
	version, err := h.service.TestConnection(c.Request.Context())
	if err != nil {
		h.logger.Error("test connection", zap.Error(err), zap.String("request_id", RequestIDFromContext(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if version == "" {
		version = "Unknown"
	}
	if len(version) > maxVersionLen {
		version = version[:maxVersionLen]
	}
	c.JSON(http.StatusOK, connectionOKResponse{
		Success:          true,
		Message:          "Database connection successful!",
		SQLServerVersion: version,
	})
}
