package middlewares

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// SecurityOptions diisi dari config; nilai kosong memakai default
type SecurityOptions struct {
	ContentSecurityPolicy string
	HSTSMaxAge            int // detik, 0 = header HSTS tidak dikirim
}

// websocket hub butuh ws:/wss: di connect-src
const defaultCSP = "default-src 'self'; connect-src 'self' ws: wss:; frame-ancestors 'none'"

func SecurityHeaders(opts SecurityOptions) gin.HandlerFunc {
	csp := opts.ContentSecurityPolicy
	if csp == "" {
		csp = defaultCSP
	}
	hsts := ""
	if opts.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(opts.HSTSMaxAge) + "; includeSubDomains"
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Content-Security-Policy", csp)
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		// HSTS hanya berarti lewat https (langsung atau via proxy)
		if hsts != "" && (c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https") {
			h.Set("Strict-Transport-Security", hsts)
		}

		c.Next()
	}
}
