// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊與中介層。
// 所有端點同時掛在根路徑與 /api/v1 下，方便本地測試與日後版本化。
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

// 請求中的數字以 json.Number 保留原字面，金額不經 float64 而失去精度。
func init() {
	binding.EnableDecoderUseNumber = true
}

// Router 建立並回傳整個 HTTP 處理鏈。
func (s *Server) Router() http.Handler {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery(), s.requestLogger())

	s.registerRoutes(router.Group("/"))
	s.registerRoutes(router.Group("/api/v1"))
	return router
}

func (s *Server) registerRoutes(g *gin.RouterGroup) {
	g.GET("/health", s.health)
	if s.metrics != nil {
		g.GET("/metrics", gin.WrapH(s.metrics))
	}

	g.POST("/accounts", s.createAccount)
	g.POST("/sessions", s.login)

	authed := g.Group("/", s.requireSession())
	{
		authed.GET("/account", s.balance)
		authed.POST("/account/deposit", s.deposit)
		authed.POST("/account/withdraw", s.withdraw)
		authed.POST("/transfer", s.transfer)
	}
}

// requestLogger 以 logrus 記錄每個請求的方法、路徑、狀態碼與耗時。
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := s.logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	}
}
