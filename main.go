package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ecom-admin/bootstrap"
	"ecom-admin/common"
	"ecom-admin/config"
	"ecom-admin/database"
	"ecom-admin/middleware"
	authAPI "ecom-admin/modules/auth/delivery/api"
	authUC "ecom-admin/modules/auth/usecase"
	menuAPI "ecom-admin/modules/menu/delivery/api"
	menuRepository "ecom-admin/modules/menu/repository"
	menuUC "ecom-admin/modules/menu/usecase"
	roleAPI "ecom-admin/modules/role/delivery/api"
	roleRepository "ecom-admin/modules/role/repository"
	roleUC "ecom-admin/modules/role/usecase"
	userAPI "ecom-admin/modules/user/delivery/api"
	userRepository "ecom-admin/modules/user/repository"
	userUC "ecom-admin/modules/user/usecase"
	"ecom-admin/pkg/cache"
	"ecom-admin/pkg/log"
	"ecom-admin/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Parse command line flags
	envPath := flag.String("env-file", "", "ENV config file path")
	yamlPath := flag.String("config", "./config/config.yml", "YAML config file path")
	flag.Parse()

	configPaths := []string{*yamlPath}
	if *envPath == "" {
		fmt.Printf("App is starting with config path '%s' and no env file\n", *yamlPath)
	} else {
		fmt.Printf("App is starting with config path '%s' and env path '%s'...\n", *yamlPath, *envPath)
		configPaths = append(configPaths, *envPath)
	}

	cfg, err := config.Load(configPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	if err = config.Validate(cfg); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	// Initialize logger
	logger := newLogger(cfg)
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Printf("Failed to sync logger: %v\n", err)
		}
	}()

	// Set logger for common package using adapter and as default logger
	loggerAdapter := common.NewLoggerAdapter(logger)
	common.SetLogger(loggerAdapter)
	log.SetDefaultLogger(logger)

	logger.Info("Application starting",
		log.String("name", cfg.App().Name()),
		log.String("version", cfg.App().Version()),
		log.String("environment", cfg.App().Environment()),
		log.String("config_path", *yamlPath),
	)

	db, err := database.Connect(cfg.Database(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", log.Error(err))
	}

	if err = database.MigrateDB(db); err != nil {
		logger.Fatal("Failed to migrate database", log.Error(err))
	}

	logger.Info("Database connected and migrated successfully")

	// Initialize cache for rate limiting and login attempt tracking
	cacheConfig := &cache.Config{
		Host:       cfg.Redis().Host(),
		Port:       cfg.Redis().Port(),
		Password:   cfg.Redis().Password(),
		DB:         cfg.Redis().DB(),
		DefaultTTL: cfg.Cache().DefaultTTL(),
	}

	cacheFactory := cache.NewCacheFactory(loggerAdapter)
	cacheClient, err := cacheFactory.CreateCache(cache.Provider(cfg.Cache().Provider()), cacheConfig)
	if err != nil {
		logger.Fatal("Failed to create cache", log.Error(err))
	}
	defer cacheClient.Close()

	logger.Info("Cache connected successfully", log.String("provider", cfg.Cache().Provider()))

	// Initialize repositories
	userRepo := userRepository.NewUserRepository(db)
	roleRepo := roleRepository.NewRoleRepository(db)
	privilegeRepo := roleRepository.NewRolePrivilegeRepository(db)
	menuRepo := menuRepository.NewMenuRepository(db)
	submenuRepo := menuRepository.NewSubmenuRepository(db)
	permissionRepo := menuRepository.NewMenuPermissionRepository(db)
	groupRepo := menuRepository.NewMenuGroupRepository(db)

	// Initialize mailer for password reset emails
	mailer, err := bootstrap.NewMailer(cfg.Email(), loggerAdapter)
	if err != nil {
		logger.Fatal("Failed to create email client", log.Error(err))
	}

	bcryptHasher := common.NewBcryptHasher()
	jwtProvider := common.NewJWTProvider(cfg.App())
	menuResolver := menuUC.NewMenuResolver(privilegeRepo, groupRepo, submenuRepo, menuRepo, logger)

	// Initialize usecases
	userUsecase := userUC.NewUserUsecase(userRepo, roleRepo, privilegeRepo, bcryptHasher)
	roleUsecase := roleUC.NewRoleUsecase(roleRepo, privilegeRepo, groupRepo, submenuRepo, menuRepo, permissionRepo, userRepo)
	menuUsecase := menuUC.NewMenuUsecase(menuRepo, submenuRepo, permissionRepo, groupRepo)
	authUsecase := authUC.NewAuthUsecase(userRepo, jwtProvider, bcryptHasher, menuResolver, cacheClient, mailer, cfg.Auth(), logger)

	// Seed default navigation, super admin role and system admin account
	seeder := bootstrap.NewSeeder(
		menuRepo, submenuRepo, permissionRepo, groupRepo, roleRepo, userRepo,
		menuUsecase, roleUsecase, userUsecase,
		bootstrap.SeedConfig{
			AdminName:     cfg.App().SystemAdminDefaultName(),
			AdminEmail:    cfg.App().SystemAdminDefaultEmail(),
			AdminPassword: cfg.App().SystemAdminDefaultPassword(),
		},
		logger,
	)
	if err := seeder.Seed(context.Background()); err != nil {
		logger.Error("Failed to seed default records", log.Error(err))
		// Don't fail the application, just log the error
	}

	// Initialize dependencies for middlewares
	deps := middleware.Dependencies{
		Cache:       cacheClient,
		Logger:      logger,
		JwtProvider: jwtProvider,
		UserRepo:    userRepo,
		RoleRepo:    roleRepo,
	}

	middlewares := middleware.NewMiddlewares(deps)

	// Initialize handlers
	authHandler := authAPI.NewAuthHandler(authUsecase, middlewares)
	userHandler := userAPI.NewUserHandler(userUsecase, middlewares)
	roleHandler := roleAPI.NewRoleHandler(roleUsecase, middlewares)
	menuHandler := menuAPI.NewMenuHandler(menuUsecase, middlewares)

	// Register custom validators with Gin's binding engine
	validator.RegisterValidatorWithGin()

	// Disable Gin's default logger and recovery
	gin.DisableConsoleColor()
	gin.SetMode(gin.ReleaseMode)

	// Create Gin server without default middleware
	r := gin.New()

	// Add custom middleware in order
	r.Use(middlewares.CORSWithLogger())
	r.Use(middlewares.RequestIDMiddleware())

	// Add general rate limiting middleware
	r.Use(middlewares.RateLimitWithLogger(middleware.RateLimitConfig{
		WindowSize:  time.Minute,
		MaxRequests: 100,
		KeyPrefix:   "global:",
		SkipPaths:   []string{"/health"},
	}))

	r.Use(middlewares.LoggingMiddleware(middleware.LoggerConfig{
		SkipPaths:          []string{"/health"},
		EnableRequestBody:  !cfg.App().IsProduction(),
		EnableResponseBody: false,
		MaxBodySize:        1024,
	}))
	r.Use(gin.Recovery())

	// Register routes; the access guard lets the auth endpoints through by
	// path and requires a valid token plus an active account everywhere else
	apiGroup := r.Group("/api/v1")
	apiGroup.Use(middlewares.AccessGuard())
	authHandler.RegisterRoutes(apiGroup)
	userHandler.RegisterRoutes(apiGroup)
	roleHandler.RegisterRoutes(apiGroup)
	menuHandler.RegisterRoutes(apiGroup)

	// Add health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().Unix()})
	})

	// Graceful shutdown setup
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server().Port()),
		Handler:        r,
		ReadTimeout:    cfg.Server().ReadTimeout(),
		WriteTimeout:   cfg.Server().WriteTimeout(),
		IdleTimeout:    cfg.Server().IdleTimeout(),
		MaxHeaderBytes: cfg.Server().MaxHeaderBytes(),
	}

	// Run server in goroutine
	go func() {
		logger.Info("Starting HTTP server",
			log.Int("port", cfg.Server().Port()),
			log.String("host", cfg.Server().Host()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", log.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", log.Error(err))
	} else {
		logger.Info("Server exited gracefully")
	}
}

// newLogger builds the production logger from the logger section of the
// config; development keeps the console logger.
func newLogger(cfg config.Config) log.Logger {
	if !cfg.App().IsProduction() {
		return log.MustNewDevelopmentLogger()
	}

	logConfig := log.ProductionConfig(cfg.App().Name(), cfg.App().Version())
	if level := cfg.Logger().LogLevel(); level != "" {
		logConfig.Level = level
	}
	if path := cfg.Logger().LogFilePath(); path != "" {
		logConfig.OutputPath = filepath.Join(path, cfg.Logger().LogFileName()+cfg.Logger().FileExtension())
		logConfig.FileMaxSizeInMB = cfg.Logger().MaxFileSizeMB()
		logConfig.FileMaxAgeInDays = cfg.Logger().MaxFileAgeDays()
		logConfig.FileMaxBackups = cfg.Logger().MaxBackupFiles()
		logConfig.CompressRotated = cfg.Logger().IsCompressEnabled()
	}

	logger, err := log.NewZapLogger(logConfig)
	if err != nil {
		panic(fmt.Errorf("failed to create logger: %w", err))
	}
	return logger
}
