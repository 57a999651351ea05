package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"blog-api/internal/apperr"
)

// errorBody is the wire shape of every failure response.
type errorBody struct {
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

func writeError(c *gin.Context, err error) {
	e := apperr.From(err)
	c.JSON(e.Kind.Status(), errorBody{
		Error:     e.Title,
		Message:   e.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Details:   e.Details,
	})
}
