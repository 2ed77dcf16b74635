package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"commerce-backend/controllers"
	"commerce-backend/database"
	"commerce-backend/kafka"
	"commerce-backend/logger"
	"commerce-backend/middleware"
	"commerce-backend/models"
	"commerce-backend/repository"
	"commerce-backend/routes"
	"commerce-backend/sender"
	"commerce-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("config error: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer logger.Sync()
	log := logger.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectPostgres(database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSLMode,
		TimeZone: cfg.PostgresTimeZone,
	})
	if err != nil {
		log.Fatal("Could not connect to PostgreSQL", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.NotificationLog{},
	); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	mongoClient, mongoDB, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.CloseMongo(mongoClient); err != nil {
			log.Warn("Mongo disconnect failed", zap.Error(err))
		}
	}()

	// Redis is optional: without it product reads just skip the cache.
	cache, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Warn("Redis unavailable, product cache disabled", zap.Error(err))
		cache = nil
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	customerRepo := repository.NewGormCustomerRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	productRepo := repository.NewMongoProductRepository(mongoDB)
	categoryRepo := repository.NewMongoCategoryRepository(mongoDB)

	// Services
	authService := services.NewAuthService(db, userRepo, []byte(cfg.JWTSecret), cfg.TokenTTL, log)
	customerService := services.NewCustomerService(customerRepo)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, orderRepo, cache, log)
	orderService := services.NewOrderService(orderRepo, customerRepo, catalogService, producer, log)

	var emailSender sender.EmailSender
	if cfg.SMTPHost != "" {
		emailSender, err = sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		if err != nil {
			log.Fatal("SMTP config invalid", zap.Error(err))
		}
	} else {
		log.Warn("SMTP_HOST not set, notifications will only be logged")
		emailSender = sender.NewLogSender(log)
	}
	notificationService := services.NewNotificationService(notificationRepo, customerRepo, emailSender, log)

	// Background worker: consumes order events and sends notifications.
	consumer := services.NewOrderEventConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, notificationService, log)
	go consumer.Start(ctx)
	defer consumer.Close()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	controllers.RegisterValidations()
	routes.Register(r, routes.Controllers{
		Auth:          controllers.NewAuthController(authService),
		Orders:        controllers.NewOrderController(orderService, customerService),
		Products:      controllers.NewProductController(catalogService),
		Categories:    controllers.NewCategoryController(catalogService),
		Customers:     controllers.NewCustomerController(customerService),
		Notifications: controllers.NewNotificationController(notificationService),
	}, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("🚀 Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
