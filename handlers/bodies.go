package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"solar-system-scene/config"
	"solar-system-scene/metrics"
	"solar-system-scene/models"
	"solar-system-scene/motion"
)

// ErrUnknownBody is returned for a body name that is not in the scene.
var ErrUnknownBody = errors.New("unknown body")

// Source provides live snapshots, usually a running frame.Driver.
type Source interface {
	Snapshot() *motion.Snapshot
	Subscribe() (snaps <-chan *motion.Snapshot, cancel func())
}

// Handler serves the scene API.
type Handler struct {
	cfg     *config.Config
	source  Source
	metrics *metrics.Collector
	log     *slog.Logger

	upgrader  websocket.Upgrader
	done      chan struct{}
	closeOnce sync.Once
}

// New returns a handler for the bodies in cfg. source may be nil, in which
// case only time-based queries are served live. A nil m records into a
// private registry and a nil log uses the default logger.
func New(cfg *config.Config, source Source, m *metrics.Collector, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if m == nil {
		m = metrics.NewCollector(nil)
	}
	return &Handler{
		cfg:     cfg,
		source:  source,
		metrics: m,
		log:     log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		done: make(chan struct{}),
	}
}

type bodyResponse struct {
	models.Body
	DisplayName string   `json:"display_name"`
	Period      *float64 `json:"period_ms,omitempty"`
}

func (h *Handler) describe(b models.Body) bodyResponse {
	resp := bodyResponse{Body: b, DisplayName: b.DisplayName()}
	if p, ok := motion.Period(h.cfg.Motion.SpeedMultiplier, b.RevolutionSpeed); ok && b.Revolves() {
		resp.Period = &p
	}
	return resp
}

func (h *Handler) findBody(c *gin.Context) (models.Body, error) {
	name := c.Param("name")
	b, ok := models.FindBody(h.cfg.Bodies, name)
	if !ok {
		return models.Body{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return b, nil
}

// queryTime parses the optional t query parameter, in milliseconds.
func queryTime(c *gin.Context) (t float64, ok bool, err error) {
	raw, ok := c.GetQuery("t")
	if !ok {
		return 0, false, nil
	}
	t, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, fmt.Errorf("invalid time %q", raw)
	}
	return t, true, nil
}

// GetBodies returns all bodies in the scene
func (h *Handler) GetBodies(c *gin.Context) {
	bodies := make([]bodyResponse, 0, len(h.cfg.Bodies))
	for _, b := range h.cfg.Bodies {
		bodies = append(bodies, h.describe(b))
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  bodies,
		"count": len(bodies),
	})
}

// GetBodyByName returns a single body by name
func (h *Handler) GetBodyByName(c *gin.Context) {
	b, err := h.findBody(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Body not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.describe(b)})
}

// GetBodyPosition returns where a body is at time t (milliseconds, default 0)
func (h *Handler) GetBodyPosition(c *gin.Context) {
	b, err := h.findBody(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Body not found"})
		return
	}
	t, _, err := queryTime(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := motion.At(h.cfg.Bodies, h.cfg.Motion.SpeedMultiplier, t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	state, _ := snap.Body(b.Name)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"name":     state.Name,
		"time":     t,
		"position": state.Position,
	}})
}

// GetSnapshot returns the latest frame, or the positions at time t when
// the t query parameter is given
func (h *Handler) GetSnapshot(c *gin.Context) {
	t, hasTime, err := queryTime(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !hasTime && h.source != nil {
		c.JSON(http.StatusOK, gin.H{"data": h.source.Snapshot()})
		return
	}
	snap, err := motion.At(h.cfg.Bodies, h.cfg.Motion.SpeedMultiplier, t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snap})
}
