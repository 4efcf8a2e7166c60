package main

import (
	activityhandler "dopo/internal/activities/handler"
	activityrepository "dopo/internal/activities/repository"
	activityservice "dopo/internal/activities/service"
	activityvalidator "dopo/internal/activities/validator"
	"dopo/internal/events"
	imagehandler "dopo/internal/images/handler"
	orderhandler "dopo/internal/orders/handler"
	orderrepository "dopo/internal/orders/repository"
	orderservice "dopo/internal/orders/service"
	"dopo/pkg/app"
	"dopo/pkg/config"
	"dopo/pkg/logger"
)

const ServiceName = "dopo"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	publisher, err := events.NewPublisher(cfg.Kafka, ServiceName, cfg.Log.Component(logger.ComponentEvents))
	if err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}

	httpLog := cfg.Log.Component(logger.ComponentHTTP)
	activityService, orderService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(cfg.GracefulShutdown)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.SetApp(
		activityhandler.NewActivityHandler(activityService, httpLog),
		orderhandler.NewOrderHandler(orderService, httpLog),
		imagehandler.NewImageHandler(cfg.StaticDir, httpLog),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) (activityservice.ActivityService, orderservice.OrderService) {
	activityService := activityservice.NewActivityService(
		activityrepository.NewMongoActivityRepository(cfg),
		activityvalidator.NewSpacesUpdateValidator(),
		publisher,
		cfg,
	)

	orderService := orderservice.NewOrderService(
		orderrepository.NewMongoOrderRepository(cfg),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return activityService, orderService
}
