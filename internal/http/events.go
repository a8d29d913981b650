package http

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/librarian/internal/events"
)

// EventsController streams entity-change notifications to clients over
// Server-Sent Events, so list panels can refresh without polling.
type EventsController struct {
	bus *events.Bus
	log *zap.Logger
}

func NewEventsController(bus *events.Bus, log *zap.Logger) *EventsController {
	return &EventsController{bus: bus, log: log}
}

// Stream subscribes the client to the change feed. Notifications are
// buffered per client; a client that falls too far behind loses the
// oldest notifications rather than blocking mutations.
func (controller *EventsController) Stream(c *gin.Context) {
	notifications := make(chan events.EntityChanged, 16)
	unsubscribe := controller.bus.Subscribe(func(event events.EntityChanged) {
		select {
		case notifications <- event:
		default:
		}
	})
	defer unsubscribe()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event := <-notifications:
			c.SSEvent("change", gin.H{"kind": string(event.Kind)})
			return true
		}
	})
}
