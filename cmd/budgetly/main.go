package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	budgethandler "budgetly/internal/budgets/handler"
	budgetrepository "budgetly/internal/budgets/repository"
	budgetservice "budgetly/internal/budgets/service"
	budgetvalidator "budgetly/internal/budgets/validator"
	"budgetly/internal/health"
	taghandler "budgetly/internal/tags/handler"
	tagrepository "budgetly/internal/tags/repository"
	tagservice "budgetly/internal/tags/service"
	tagvalidator "budgetly/internal/tags/validator"
	"budgetly/pkg/app"
	"budgetly/pkg/client"
	"budgetly/pkg/config"
	"budgetly/pkg/kafka"
	kafka_middleware "budgetly/pkg/kafka/middleware"
	"budgetly/pkg/middleware"
	"budgetly/pkg/request"
	"budgetly/pkg/sanitizer"
)

const ServiceName = "budgetly"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Budgetly service")

	mongoClient := client.ConnectMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	publisher := initPublisher(cfg)
	events := kafka.NewEmitter(publisher, ServiceName, middleware.RequestIDFromContext, cfg.Log)

	normalizer := request.NewNormalizer(sanitizer.NewText(), cfg.Log)
	budgetService, tagService := initServices(cfg, mongoClient, events)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(func(ctx context.Context) error {
		return mongoClient.Disconnect(ctx)
	})
	serverApp.OnShutdown(func(context.Context) error {
		return publisher.Close()
	})
	serverApp.SetApp(
		health.NewHandler(mongoClient, cfg.KafkaEnabled(), cfg.Log),
		budgethandler.NewBudgetHandler(budgetService, normalizer, cfg.Log),
		taghandler.NewTagHandler(tagService, normalizer, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) kafka.Publisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka brokers not configured, events disabled")
		return kafka.NoopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Kafka producer initialized", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return producer
}

func initServices(cfg *config.Config, mongoClient *mongo.Client, events *kafka.Emitter) (budgetservice.BudgetService, tagservice.TagService) {
	budgetService := budgetservice.NewBudgetService(
		budgetrepository.NewMongoBudgetRepository(cfg, mongoClient),
		budgetvalidator.NewBudgetValidator(cfg.Log),
		events,
		cfg,
	)

	tagService := tagservice.NewTagService(
		tagrepository.NewMongoTagRepository(cfg, mongoClient),
		tagvalidator.NewTagValidator(cfg.Log),
		events,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return budgetService, tagService
}
