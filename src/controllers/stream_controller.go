package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"Backend-Formcraft/src/middleware"
	"Backend-Formcraft/src/services/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const streamHeartbeat = 25 * time.Second

type StreamController struct {
	broadcaster notify.Broadcaster
}

func NewStreamController(b notify.Broadcaster) *StreamController {
	return &StreamController{broadcaster: b}
}

// StreamResponses godoc
// @Summary      Live "new response" events
// @Description  Server-Sent Events for every response submitted to one of my forms. Browsers may pass the token as access_token.
// @Tags         responses
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  models.ErrorResponse
// @Router       /api/stream/responses [get]
func (h *StreamController) StreamResponses(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	if !p.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx, cancelCtx := context.WithCancel(context.Background())
	events, unsubscribe := h.broadcaster.Subscribe(ctx, p.UserID)
	log.Printf("📡 [Stream] subscribed owner=%s", p.UserID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			unsubscribe()
			cancelCtx()
			log.Printf("📴 [Stream] closed owner=%s", p.UserID)
		}()

		fmt.Fprint(w, "retry: 3000\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		ticker := time.NewTicker(streamHeartbeat)
		defer ticker.Stop()
		for {
			select {
			case evt, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(evt)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// a failed flush means the client went away
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
