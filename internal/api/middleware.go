package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// BasicAuth 为整个站点增加一个简单的 Basic Auth 访问密码。
// exempt 中的路径（健康检查、Prometheus 抓取等）不做认证；未指定时只放行 /health。
func BasicAuth(user, pass string, exempt ...string) gin.HandlerFunc {
	const realm = "NewsLens"
	if len(exempt) == 0 {
		exempt = []string{"/health"}
	}
	open := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		open[p] = struct{}{}
	}
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if _, ok := open[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// CORS 未配置来源时允许任意来源
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
