package cmd

import (
	"context"
	"fmt"
	"net/http"

	"fooddash/api"
	"fooddash/api/health"
	apiorder "fooddash/api/order"
	orderapp "fooddash/application/order"
	"fooddash/config"
	"fooddash/domain/order"
	"fooddash/domain/pricing"
	"fooddash/domain/shared"
	"fooddash/infrastructure/notification"
	"fooddash/infrastructure/persistence/mocks"
	"fooddash/infrastructure/persistence/mysql"
	"fooddash/infrastructure/persistence/retry"
	"fooddash/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg          *config.Config
	notifier     notification.Notifier
	clock        shared.Clock
	middlewares  []gin.HandlerFunc
	customRoutes []api.Route
	seedDemo     bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:   cfg,
		clock: shared.SystemClock,
	}
}

// WithNotifier overrides the notifier selected by notification.driver
func (b *AppBuilder) WithNotifier(n notification.Notifier) *AppBuilder {
	b.notifier = n
	return b
}

// WithClock fixes the time source, used by tests
func (b *AppBuilder) WithClock(clock shared.Clock) *AppBuilder {
	b.clock = clock
	return b
}

// WithMiddleware adds a middleware to the app
func (b *AppBuilder) WithMiddleware(m gin.HandlerFunc) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}

// WithRoute adds a custom route
func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// WithDemoData seeds one restaurant, menu, customer, partner and coupon at startup
func (b *AppBuilder) WithDemoData() *AppBuilder {
	b.seedDemo = true
	return b
}

// backend 一种存储后端的全部组件
type backend struct {
	repos      orderapp.Repositories
	catalog    catalogWriter
	uowFactory shared.UnitOfWorkFactory
	db         *gorm.DB
	publisher  *mocks.MockEventPublisher
	checks     map[string]health.CheckFunc
}

// Build creates the App instance
// Logger must be initialized by the caller
func (b *AppBuilder) Build() (*App, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	rates, err := b.cfg.Pricing.Rates()
	if err != nil {
		return nil, err
	}

	logger.Info("Building application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("backend", b.cfg.Database.Type))

	app := &App{config: b.cfg}

	notifier := b.notifier
	if notifier == nil {
		notifier, app.redis = NewNotifier(b.cfg)
	}

	be, err := b.initBackend(notifier)
	if err != nil {
		app.closeResources()
		return nil, err
	}
	app.db = be.db
	app.publisher = be.publisher

	if app.redis != nil {
		client := app.redis
		be.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	if be.db != nil && b.cfg.Worker.Enabled {
		app.worker, err = mysql.NewOutboxWorker(
			mysql.NewOutboxRepository(be.db),
			notification.NewOutboxPublisher(notifier),
			b.cfg.Worker,
		)
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to create outbox worker: %w", err)
		}
	}

	if b.seedDemo {
		if err := seedDemoData(context.Background(), be, b.cfg.Pricing.Currency); err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	app.OrderService = orderapp.NewApplicationService(be.repos, be.uowFactory, orderapp.Options{
		Pricing: pricing.Config{TaxRate: rates.TaxRate},
		StatusMachine: order.StatusMachineConfig{
			PartnerShare:     decimal.NewNullDecimal(rates.PartnerShare),
			LoyaltyPointUnit: rates.LoyaltyPointUnit,
		},
		OperationTimeout: b.cfg.Order.OperationTimeout,
		Clock:            b.clock,
	})

	router := api.NewRouter(
		b.cfg,
		health.NewController(b.cfg, be.checks),
		[]api.ControllerRegister{apiorder.NewController(app.OrderService)},
		b.middlewares,
		b.customRoutes,
	)
	router.SetupRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return app, nil
}

// NewNotifier 按 notification.driver 选择通知通道，API 进程和独立 worker 共用
// 返回的 redis client 由调用方关闭，log 驱动时为 nil
func NewNotifier(cfg *config.Config) (notification.Notifier, *redis.Client) {
	nc := cfg.Notification
	if nc.Driver != "redis" {
		logger.Info("Notifications are written to the log")
		return notification.NewLogNotifier(), nil
	}
	client := notification.NewRedisClient(nc.RedisAddr, nc.RedisPassword, nc.RedisDB)
	logger.Info("Notifications are published to Redis",
		zap.String("addr", nc.RedisAddr),
		zap.String("channel_prefix", nc.ChannelPrefix))
	return notification.NewRedisNotifier(client, nc.ChannelPrefix), client
}

func (b *AppBuilder) initBackend(notifier notification.Notifier) (*backend, error) {
	retryConfig := retry.FromAppConfig(b.cfg)

	if b.cfg.Database.Type == "memory" {
		logger.Info("Using in-memory persistence layer")
		store := mocks.NewStore()
		publisher := mocks.NewMockEventPublisher()
		handler := notification.NewEventHandler(notifier)
		for _, name := range []string{order.EventOrderPlaced, order.EventOrderStatusChanged, order.EventDeliveryPartnerAssigned} {
			if err := publisher.Subscribe(name, handler); err != nil {
				return nil, err
			}
		}
		restaurants := mocks.NewMockRestaurantRepository(store)
		return &backend{
			repos: orderapp.Repositories{
				Orders:      mocks.NewMockOrderRepository(store),
				Customers:   mocks.NewMockCustomerRepository(store),
				Partners:    mocks.NewMockDeliveryPartnerRepository(store),
				Restaurants: restaurants,
				Coupons:     mocks.NewMockCouponRepository(store),
			},
			catalog:    restaurants,
			uowFactory: mocks.NewMockUnitOfWorkFactory(store, publisher, retryConfig),
			publisher:  publisher,
			checks:     map[string]health.CheckFunc{},
		}, nil
	}

	db, err := OpenDatabase(b.cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		CloseDatabase(db)
		return nil, err
	}

	restaurants := mysql.NewRestaurantRepository(db)
	return &backend{
		repos: orderapp.Repositories{
			Orders:      mysql.NewOrderRepository(db),
			Customers:   mysql.NewCustomerRepository(db),
			Partners:    mysql.NewDeliveryPartnerRepository(db),
			Restaurants: restaurants,
			Coupons:     mysql.NewCouponRepository(db),
		},
		catalog:    restaurants,
		uowFactory: mysql.NewUnitOfWorkFactory(db, retryConfig),
		db:         db,
		checks:     map[string]health.CheckFunc{"database": sqlDB.PingContext},
	}, nil
}
