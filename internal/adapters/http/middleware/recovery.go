package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/dto"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/logging"
)

// PanicHook receives a recovered panic value and its stack.
type PanicHook func(err any, stack []byte)

// Recovery returns middleware that turns panics into a 500 error envelope.
// The panic is logged with its stack through the request logger. Apply it
// first so it covers every later handler.
func Recovery() gin.HandlerFunc {
	return RecoveryWithHook(nil)
}

// RecoveryWithHook is Recovery with an extra callback, used to count panics
// or copy stacks somewhere other than the log.
func RecoveryWithHook(hook PanicHook) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			stack := debug.Stack()
			if hook != nil {
				hook(r, stack)
			}

			traceID := dto.GetTraceID(c)

			logging.FromContext(c.Request.Context()).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(stack)),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(traceID))
		}()

		c.Next()
	}
}
