package server

import (
	"github.com/gin-gonic/gin"
)

// GinSSEWriter implements sessions.SSEWriter for a gin context
type GinSSEWriter struct {
	Context *gin.Context
}

func (w *GinSSEWriter) WriteSSE(event string, data any) error {
	w.Context.SSEvent(event, data)
	return nil
}

func (w *GinSSEWriter) WriteSSEError(err error) error {
	w.Context.SSEvent("error", gin.H{"type": "error", "error": err.Error()})
	return nil
}

func (w *GinSSEWriter) Flush() {
	w.Context.Writer.Flush()
}
