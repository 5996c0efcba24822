package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
)

var enableColor = isatty.IsTerminal(os.Stdout.Fd()) && strings.TrimSpace(os.Getenv("NO_COLOR")) == ""

// corsMiddleware attaches the cross-origin headers to every response and
// answers preflight requests with an empty success advertising that
// cross-origin POST with a content-type header is permitted.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// accessLogger prints a single line per request.
//
// Example:
// [STUDIO] 2026/01/26 - 17:44:22 | 200 | 12.3ms | 127.0.0.1 | POST "/api/text-to-image"
func accessLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Printf(`[STUDIO] %s | %s | %s | %s | %s %q`,
			time.Now().Format("2006/01/02 - 15:04:05"),
			colorizeStatus(c.Writer.Status()),
			time.Since(start).String(),
			c.ClientIP(),
			c.Request.Method,
			path,
		)
	}
}

func colorizeStatus(status int) string {
	if !enableColor {
		return fmt.Sprintf("%d", status)
	}
	// ANSI colors
	const (
		reset  = "\x1b[0m"
		red    = "\x1b[31m"
		green  = "\x1b[32m"
		yellow = "\x1b[33m"
		cyan   = "\x1b[36m"
	)
	switch {
	case status >= 200 && status < 300:
		return green + fmt.Sprintf("%d", status) + reset
	case status >= 300 && status < 400:
		return cyan + fmt.Sprintf("%d", status) + reset
	case status >= 400 && status < 500:
		return yellow + fmt.Sprintf("%d", status) + reset
	default:
		return red + fmt.Sprintf("%d", status) + reset
	}
}
