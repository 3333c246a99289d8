package gateway

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/marketml/scorekit/core"
)

// Server 是评分服务的 HTTP 外壳：echo 实例 + 路由 + 中间件。
type Server struct {
	echo    *echo.Echo
	handler *Handler
	scorer  core.Scorer
}

// ServerOption 配置 Server
type ServerOption func(*Server)

// WithHealthScorer 设置健康检查探测的打分客户端。
func WithHealthScorer(s core.Scorer) ServerOption {
	return func(srv *Server) {
		srv.scorer = s
	}
}

// NewServer 创建评分服务。
func NewServer(handler *Handler, opts ...ServerOption) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	srv := &Server{echo: e, handler: handler}
	for _, opt := range opts {
		opt(srv)
	}

	e.GET("/api/score", handler.HandleScore)
	e.POST("/api/score", handler.HandleScore)
	e.GET("/healthz", srv.handleHealth)

	return srv
}

// Start 启动 HTTP 监听（阻塞）。
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown 优雅停机。
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo 暴露底层 echo 实例（测试/扩展路由用）。
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	if s.scorer != nil {
		if err := s.scorer.Health(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"scorer": err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
