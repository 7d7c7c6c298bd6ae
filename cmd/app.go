package cmd

import (
	"context"
	"errors"
	"net/http"

	"fooddash/api"
	orderapp "fooddash/application/order"
	"fooddash/config"
	"fooddash/infrastructure/persistence/mocks"
	"fooddash/infrastructure/persistence/mysql"
	"fooddash/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// App HTTP 服务、outbox worker 以及它们共享的资源
type App struct {
	config    *config.Config
	router    *api.Router
	server    *http.Server
	db        *gorm.DB
	redis     *redis.Client
	worker    *mysql.OutboxWorker
	publisher *mocks.MockEventPublisher

	OrderService *orderapp.ApplicationService
}

// Run 启动 HTTP 服务与 worker，ctx 取消后优雅关闭
// 任一组件异常退出都会让另一个一起停止
func (a *App) Run(ctx context.Context) error {
	defer a.closeResources()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return a.server.Shutdown(shutdownCtx)
	})

	if a.worker != nil {
		g.Go(func() error {
			if err := a.worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	if a.publisher != nil {
		a.publisher.Wait()
	}
	logger.Info("Application stopped")
	return err
}

// Handler 测试直接使用的 HTTP 处理器
func (a *App) Handler() *gin.Engine {
	return a.router.GetEngine()
}

// Worker in-process outbox worker, nil for the memory backend or when disabled
func (a *App) Worker() *mysql.OutboxWorker {
	return a.worker
}

// WaitForNotifications 等待内存模式下已分发的通知处理完
func (a *App) WaitForNotifications() {
	if a.publisher != nil {
		a.publisher.Wait()
	}
}

func (a *App) closeResources() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
		a.redis = nil
	}
	CloseDatabase(a.db)
	a.db = nil
}
