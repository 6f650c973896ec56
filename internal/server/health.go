package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	NATS      string    `json:"nats"`
	LastRunID string    `json:"lastRunId,omitempty"`
}

// Checker reports broker connectivity. A nil Checker means "disabled".
type Checker interface {
	Connected() bool
}

type HealthHandler struct {
	serviceName string
	version     string
	broker      Checker
	store       *Store
}

func NewHealthHandler(serviceName, version string, broker Checker, store *Store) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		broker:      broker,
		store:       store,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	natsStatus := "disabled"
	if h.broker != nil {
		if h.broker.Connected() {
			natsStatus = "up"
		} else {
			natsStatus = "down"
		}
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		NATS:      natsStatus,
	}
	if h.store != nil {
		if s, ok := h.store.Latest(); ok {
			resp.LastRunID = s.RunID
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
