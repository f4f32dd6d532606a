package main

import (
	"babycare/config"
	"babycare/domain"
	"babycare/middleware"
	"babycare/services/tracker/delivery"
	"babycare/services/tracker/repository"
	"babycare/services/tracker/usecase"
	"babycare/temporal"
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	log = config.GetLogrusInstance()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using process environment")
	}

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")

	loc, err := config.GetOperatingLocation()
	if err != nil {
		log.Fatalf("Failed to load operating timezone: %v", err)
	}
	clock := temporal.NewNormalizer(loc, time.Now)

	secret, err := config.GetJWTSecret()
	if err != nil {
		log.Fatalf("Failed to load credentials: %v", err)
	}
	creds := middleware.NewJWTManager(secret, 24*time.Hour)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
	}

	redisClient, err := config.BootRedis(ctx)
	if err != nil {
		log.Warnf("Redis unavailable, auto-fill runs without a lock: %v", err)
	}
	mongoClient, mongoDB, err := config.BootMongo(ctx)
	if err != nil {
		log.Warnf("Mongo unavailable, media listing is empty: %v", err)
	}

	app := fiber.New(config.GetFiberConfig())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequest,
	}))
	app.Use(middleware.RequestID())

	timeout := config.GetUseCaseTimeout()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	diaperRepo := repository.NewDiaperRepository(db)
	feedingRepo := repository.NewFeedingRepository(db)
	growthRepo := repository.NewGrowthRepository(db)
	sleepRepo := repository.NewSleepRepository(db)
	vaccinationRepo := repository.NewVaccinationRepository(db)
	mediaRepo := repository.NewMediaRepository(mongoDB, config.GetMediaCollectionName())
	autoFillLock := repository.NewRedisLock(redisClient)

	// Usecases
	guard := usecase.NewOwnershipGuard(childRepo)
	authUC := usecase.NewAuthUseCase(userRepo, creds, timeout)
	childUC := usecase.NewChildUseCase(childRepo, guard, clock, timeout)
	diaperUC := usecase.NewDiaperUseCase(diaperRepo, guard, clock, timeout)
	feedingUC := usecase.NewFeedingUseCase(feedingRepo, guard, clock, timeout)
	growthUC := usecase.NewGrowthUseCase(growthRepo, guard, clock, timeout)
	sleepUC := usecase.NewSleepUseCase(sleepRepo, childRepo, guard, clock, autoFillLock, log, timeout)
	vaccinationUC := usecase.NewVaccinationUseCase(vaccinationRepo, guard, clock, timeout)
	mediaUC := usecase.NewMediaUseCase(mediaRepo, timeout)

	// Deliveries
	delivery.NewHealthDelivery(app)
	delivery.NewAuthDelivery(app, authUC, creds)
	delivery.NewChildDelivery(app, childUC, creds)
	delivery.NewDiaperDelivery(app, diaperUC, creds)
	delivery.NewFeedingDelivery(app, feedingUC, creds)
	delivery.NewGrowthDelivery(app, growthUC, creds)
	delivery.NewSleepDelivery(app, sleepUC, creds)
	delivery.NewVaccinationDelivery(app, vaccinationUC, creds)
	delivery.NewMediaDelivery(app, mediaUC, creds)

	if interval := config.GetAutoFillInterval(); interval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runAutoFill(ctx, sleepUC, interval)
		}()
	} else {
		log.Info("Sleep auto-fill disabled")
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	<-signalChan

	log.Info("Shutting down the server...")
	stop()

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(context.Background())
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server shut down gracefully")
}

// runAutoFill fills yesterday's missing sleep records once at startup and
// then on every tick until ctx is cancelled.
func runAutoFill(ctx context.Context, sleeps domain.SleepUseCase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infof("Sleep auto-fill every %s", interval)
	fill := func() {
		filled, err := sleeps.AutoFill(ctx)
		if err != nil {
			log.Errorf("Sleep auto-fill: %v", err)
		}
		if filled > 0 {
			log.Infof("Sleep auto-fill created %d records", filled)
		}
	}

	fill()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fill()
		}
	}
}
