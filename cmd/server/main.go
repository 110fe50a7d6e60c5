package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	appcatalog "github.com/invoiceflow/backend/internal/application/catalog"
	appcompliance "github.com/invoiceflow/backend/internal/application/compliance"
	appidentity "github.com/invoiceflow/backend/internal/application/identity"
	appinvoicing "github.com/invoiceflow/backend/internal/application/invoicing"
	apppartner "github.com/invoiceflow/backend/internal/application/partner"
	apppurchasing "github.com/invoiceflow/backend/internal/application/purchasing"
	"github.com/invoiceflow/backend/internal/infrastructure/auth"
	"github.com/invoiceflow/backend/internal/infrastructure/cache"
	"github.com/invoiceflow/backend/internal/infrastructure/config"
	"github.com/invoiceflow/backend/internal/infrastructure/logger"
	"github.com/invoiceflow/backend/internal/infrastructure/persistence"
	"github.com/invoiceflow/backend/internal/interfaces/http/handler"
	"github.com/invoiceflow/backend/internal/interfaces/http/middleware"
	"github.com/invoiceflow/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "directory containing config.toml")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	db, err := persistence.NewDatabase(cfg.Database)
	if err != nil {
		return err
	}

	if err := middleware.RegisterValidators(); err != nil {
		return err
	}

	// Infrastructure
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.JWT.Issuer)
	hasher := auth.NewBcryptHasher(0)

	var scenarioCache appcompliance.ScenarioCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		scenarioCache = cache.NewRedisScenarioCache(client, cfg.Redis.TTL, log)
	} else {
		scenarioCache = cache.NewInMemoryScenarioCache(cfg.Compliance.CacheTTL)
	}

	// Repositories
	mappingRepo := persistence.NewGormScenarioMappingRepository(db)
	companyRepo := persistence.NewGormCompanyRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	vendorRepo := persistence.NewGormVendorRepository(db)
	itemRepo := persistence.NewGormItemRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	purchaseRepo := persistence.NewGormPurchaseRepository(db)

	// Application services
	scenarioService := appcompliance.NewScenarioService(mappingRepo, scenarioCache, log, cfg.Compliance.LegacyFallback)
	companyService := appidentity.NewCompanyService(companyRepo, userRepo, hasher, log)
	authService := appidentity.NewAuthService(userRepo, hasher, jwtManager, log)
	userService := appidentity.NewUserService(userRepo, hasher, log)
	vendorService := apppartner.NewVendorService(vendorRepo, log)
	itemService := appcatalog.NewItemService(itemRepo, log)
	invoiceService := appinvoicing.NewInvoiceService(invoiceRepo, companyRepo, itemRepo, scenarioService, log)
	purchaseService := apppurchasing.NewPurchaseService(purchaseRepo, vendorRepo, log)

	// Warn on drift between the authored table and the database at startup.
	if drift, err := scenarioService.VerifyAgainstStore(context.Background()); err != nil {
		log.Warn("scenario mapping drift check failed", zap.Error(err))
	} else if len(drift) > 0 {
		log.Warn("scenario mapping table drifted from authored data", zap.Strings("drift", drift))
	}

	public := []router.RouteRegistrar{
		handler.NewSystemHandler(db, version),
		handler.NewAuthHandler(authService, companyService),
	}
	protected := []router.RouteRegistrar{
		handler.NewScenarioHandler(scenarioService),
		handler.NewCompanyHandler(companyService),
		handler.NewUserHandler(userService),
		handler.NewVendorHandler(vendorService),
		handler.NewItemHandler(itemService),
		handler.NewInvoiceHandler(invoiceService),
		handler.NewPurchaseHandler(purchaseService),
	}

	r := router.New(cfg, log, jwtManager, public, protected)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("environment", cfg.App.Environment),
			zap.Bool("legacy_fallback", cfg.Compliance.LegacyFallback))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown did not complete cleanly: %w", err)
	}

	log.Info("server stopped")
	return nil
}
