package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthHandler(c *gin.Context) {
	body := gin.H{"ok": true}

	if h.Broker != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Broker.Ping(ctx); err != nil {
			body["queue"] = "down"
		} else {
			body["queue"] = "ok"
		}
	}

	c.JSON(http.StatusOK, body)
}
