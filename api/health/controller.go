package health

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"fooddash/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	// 单个依赖探测的时限
	checkTimeout = 2 * time.Second
)

// CheckFunc 依赖探测，例如数据库 PingContext 或 Redis PING
type CheckFunc func(ctx context.Context) error

// Controller 存活、就绪与完整健康检查
// memory 后端没有外部依赖，checks 可以为空
type Controller struct {
	cfg     *config.Config
	checks  map[string]CheckFunc
	names   []string
	started time.Time
}

func NewController(cfg *config.Config, checks map[string]CheckFunc) *Controller {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Controller{
		cfg:     cfg,
		checks:  checks,
		names:   names,
		started: time.Now(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Liveness)
	router.GET("/health/ready", c.Readiness)
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Backend   string           `json:"backend"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo 仅开发环境返回
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
}

func (c *Controller) Health(ctx *gin.Context) {
	checks := c.probe(ctx.Request.Context())

	resp := HealthResponse{
		Status:    statusHealthy,
		Version:   c.cfg.App.Version,
		Backend:   c.cfg.Database.Type,
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(failing(checks)) > 0 {
		resp.Status = statusUnhealthy
	}
	if c.cfg.IsDevelopment() {
		resp.System = systemInfo()
	}

	code := http.StatusOK
	if resp.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, resp)
}

// Liveness 进程在跑即可，不探测依赖
func (c *Controller) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) Readiness(ctx *gin.Context) {
	if down := failing(c.probe(ctx.Request.Context())); len(down) > 0 {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"message": strings.Join(down, ", ") + " not available",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// probe 并发探测所有依赖，单个失败不影响其他探测
func (c *Controller) probe(parent context.Context) map[string]Check {
	results := make(map[string]Check, len(c.names))
	var mu sync.Mutex

	var g errgroup.Group
	for _, name := range c.names {
		name := name
		check := c.checks[name]
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(parent, checkTimeout)
			defer cancel()

			start := time.Now()
			err := check(ctx)
			result := Check{Status: statusHealthy, Latency: time.Since(start).String()}
			if err != nil {
				result.Status = statusUnhealthy
				result.Message = err.Error()
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func failing(checks map[string]Check) []string {
	var down []string
	for name, check := range checks {
		if check.Status != statusHealthy {
			down = append(down, name)
		}
	}
	sort.Strings(down)
	return down
}

func systemInfo() *SystemInfo {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     mem.Alloc,
	}
}
