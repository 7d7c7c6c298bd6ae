package api

import (
	"net/http"

	"fooddash/api/health"
	"fooddash/api/middleware"
	"fooddash/api/response"
	"fooddash/config"

	"github.com/gin-gonic/gin"
)

// ControllerRegister 可注册路由的控制器
type ControllerRegister interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// Route 额外的自定义路由
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Router struct {
	engine           *gin.Engine
	config           *config.Config
	healthController *health.Controller
	controllers      []ControllerRegister
	customRoutes     []Route
}

func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	controllers []ControllerRegister,
	middlewares []gin.HandlerFunc,
	customRoutes []Route,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// request id 必须最先，recovery 和访问日志都要用到它
	engine.Use(
		middleware.RequestIDMiddleware(),
		middleware.RecoveryMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(&cfg.CORS),
		middleware.RateLimitMiddleware(&cfg.Server.RateLimit),
	)
	engine.Use(middlewares...)
	engine.NoRoute(response.HandleRouteNotFound)

	return &Router{
		engine:           engine,
		config:           cfg,
		healthController: healthController,
		controllers:      controllers,
		customRoutes:     customRoutes,
	}
}

// SetupRoutes health 公开，其余控制器都在 bearer token 之后
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	if r.healthController != nil {
		r.healthController.RegisterRoutes(apiGroup)
	}

	secured := apiGroup.Group("", middleware.ActorMiddleware(&r.config.Auth))
	for _, c := range r.controllers {
		c.RegisterRoutes(secured)
	}

	for _, route := range r.customRoutes {
		r.engine.Handle(route.Method, route.Path, route.Handler)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
