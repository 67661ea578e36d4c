// Package container wires the application graph: config, database,
// cache, queue client, repositories, services and handlers. Both the
// API and the worker build from here so they share one wiring.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"kiosk-backend/internal/config"
	"kiosk-backend/internal/infrastructure/cache"
	"kiosk-backend/internal/infrastructure/database"
	"kiosk-backend/internal/infrastructure/queue"
	"kiosk-backend/internal/migrations"
	"kiosk-backend/pkg/jwt"
	"kiosk-backend/pkg/logger"

	pkgcache "kiosk-backend/pkg/cache"

	loyaltyhandler "kiosk-backend/internal/domains/loyalty/handler"
	loyaltyrepo "kiosk-backend/internal/domains/loyalty/repository"
	loyaltyservice "kiosk-backend/internal/domains/loyalty/service"
	menuhandler "kiosk-backend/internal/domains/menu/handler"
	menurepo "kiosk-backend/internal/domains/menu/repository"
	menuservice "kiosk-backend/internal/domains/menu/service"
	orderhandler "kiosk-backend/internal/domains/order/handler"
	orderrepo "kiosk-backend/internal/domains/order/repository"
	orderservice "kiosk-backend/internal/domains/order/service"
	paymenthandler "kiosk-backend/internal/domains/payment/handler"
	paymentrepo "kiosk-backend/internal/domains/payment/repository"
	paymentservice "kiosk-backend/internal/domains/payment/service"
	promohandler "kiosk-backend/internal/domains/promo/handler"
	promorepo "kiosk-backend/internal/domains/promo/repository"
	promoservice "kiosk-backend/internal/domains/promo/service"
	userhandler "kiosk-backend/internal/domains/user/handler"
	userrepo "kiosk-backend/internal/domains/user/repository"
	userservice "kiosk-backend/internal/domains/user/service"
)

// Container holds every constructed component
type Container struct {
	Config *config.Config

	DB          *database.PostgresDB
	Cache       pkgcache.Cache
	QueueClient *queue.Client
	JWTManager  *jwt.Manager

	UserRepo    userrepo.UserRepository
	MenuRepo    menurepo.MenuRepository
	OrderRepo   orderrepo.OrderRepository
	PromoRepo   promorepo.PromoRepository
	PaymentRepo paymentrepo.PaymentRepository
	OutboxRepo  paymentrepo.OutboxRepository
	LoyaltyRepo loyaltyrepo.LoyaltyRepository

	UserService    userservice.UserService
	MenuService    menuservice.MenuService
	OrderService   orderservice.OrderService
	PromoService   promoservice.PromoService
	PaymentService paymentservice.PaymentService
	LoyaltyService loyaltyservice.LoyaltyService

	UserHandler    *userhandler.UserHandler
	MenuHandler    *menuhandler.MenuHandler
	OrderHandler   *orderhandler.OrderHandler
	PromoHandler   *promohandler.PromoHandler
	PaymentHandler *paymenthandler.PaymentHandler
	LoyaltyHandler *loyaltyhandler.LoyaltyHandler
}

// NewContainer builds the full application graph
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	logger.Info("🔧 Initializing container", map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
	})

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	if err := c.initCache(); err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}

	c.QueueClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("✅ Container initialized", nil)
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	c.DB = database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := c.DB.Connect(ctx); err != nil {
		return err
	}

	if err := migrations.Up(c.DB.Pool); err != nil {
		return err
	}

	logger.Info("✅ Database ready", map[string]interface{}{
		"host": dbConfig.Host,
		"name": dbConfig.DBName,
	})
	return nil
}

func (c *Container) initCache() error {
	redisCache := cache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := redisCache.Ping(ctx); err != nil {
		return err
	}

	c.Cache = redisCache
	logger.Info("✅ Redis cache ready", map[string]interface{}{
		"host": c.Config.Redis.Host,
	})
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	c.UserRepo = userrepo.NewUserRepository(pool)
	c.MenuRepo = menurepo.NewMenuRepository(pool)
	c.OrderRepo = orderrepo.NewOrderRepository(pool)
	c.PromoRepo = promorepo.NewPromoRepository(pool)
	c.PaymentRepo = paymentrepo.NewPaymentRepository(pool)
	c.OutboxRepo = paymentrepo.NewOutboxRepository(pool)
	c.LoyaltyRepo = loyaltyrepo.NewLoyaltyRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userservice.NewUserService(c.UserRepo, c.JWTManager)
	c.MenuService = menuservice.NewMenuService(c.MenuRepo, c.Cache)
	c.OrderService = orderservice.NewOrderService(c.OrderRepo, c.MenuRepo)
	c.PromoService = promoservice.NewPromoService(c.PromoRepo)
	c.LoyaltyService = loyaltyservice.NewLoyaltyService(c.LoyaltyRepo, c.Cache)

	reconciler := paymentservice.NewPricingReconciler(
		int64(c.Config.Loyalty.RedeemBlockPoints),
		decimal.NewFromInt(int64(c.Config.Loyalty.RedeemBlockValue)),
	)
	c.PaymentService = paymentservice.NewPaymentService(
		c.PaymentRepo,
		c.OrderRepo,
		c.PromoRepo,
		c.LoyaltyService,
		c.QueueClient,
		reconciler,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userhandler.NewUserHandler(c.UserService)
	c.MenuHandler = menuhandler.NewMenuHandler(c.MenuService)
	c.OrderHandler = orderhandler.NewOrderHandler(c.OrderService)
	c.PromoHandler = promohandler.NewPromoHandler(c.PromoService)
	c.PaymentHandler = paymenthandler.NewPaymentHandler(c.PaymentService)
	c.LoyaltyHandler = loyaltyhandler.NewLoyaltyHandler(c.LoyaltyService)
}

// Cleanup releases every held resource, in reverse dependency order
func (c *Container) Cleanup() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Error("❌ Queue client close failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("❌ Cache close failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("✅ Container cleanup complete", nil)
}
