package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order-accounting/internal/ports"
)

// Пробы и скрейпинг не логируем — их дёргают каждые несколько секунд.
var quietPaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
	"/healthz": {},
	"/readyz":  {},
}

// RequestLogger — строка лога на запрос; 5xx пишутся предупреждением.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		if _, quiet := quietPaths[path]; quiet && status < http.StatusInternalServerError {
			return
		}

		logf := log.Infof
		if status >= http.StatusInternalServerError {
			logf = log.Warnf
		}
		// request_id и trace_id логгер берёт из контекста.
		logf(c.Request.Context(),
			"request method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size(),
		)
	}
}
