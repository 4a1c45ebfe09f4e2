package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const writeTimeout = 5 * time.Second

// Stream upgrades to a websocket and sends the latest snapshot, then one per
// frame, at most StreamFPS per second. Frames arriving faster are skipped in
// favor of the newest.
func (h *Handler) Stream(c *gin.Context) {
	if h.source == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No live scene"})
		return
	}

	// Subscribe before the handshake so no frame after it is missed.
	snaps, cancel := h.source.Subscribe()
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log := h.log.With("session", id, "remote", c.ClientIP())
	log.Info("stream opened")
	h.metrics.StreamOpened()
	defer func() {
		h.metrics.StreamClosed()
		log.Info("stream closed")
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go func() {
		defer stop()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	limiter := rate.NewLimiter(rate.Limit(h.cfg.Server.StreamFPS), 1)
	snap := h.source.Snapshot()
	for {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(gin.H{"session": id, "data": snap}); err != nil {
			log.Debug("stream write failed", "err", err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-h.done:
			conn.WriteControl(websocket.CloseMessage, closeMessage(), time.Now().Add(writeTimeout))
			return
		case snap = <-snaps:
		}
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		// Skip to the newest frame if more arrived while waiting.
		select {
		case newer := <-snaps:
			snap = newer
		default:
		}
	}
}

// Close ends every open stream with a going-away close frame.
func (h *Handler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func closeMessage() []byte {
	return websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
}
