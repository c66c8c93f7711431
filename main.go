package main

import (
	"context"
	"errors"
	"fmt"
	_ "github.com/SpeedxPz/startup-review-admin/docs"
	"github.com/SpeedxPz/startup-review-admin/src/delivery/rest_delivery"
	"github.com/SpeedxPz/startup-review-admin/src/repository/activity_repository"
	"github.com/SpeedxPz/startup-review-admin/src/repository/directory_repository"
	"github.com/SpeedxPz/startup-review-admin/src/repository/identity_repository"
	"github.com/SpeedxPz/startup-review-admin/src/repository/review_event_repository"
	"github.com/SpeedxPz/startup-review-admin/src/repository/session_repository"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var errUnknownBroker = errors.New("unknown event broker")

type config struct {
	AppName        string `env:"APP_NAME" envDefault:"startup-review-admin"`
	AppVersion     string `env:"APP_VERSION"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	Port           uint   `env:"PORT" envDefault:"8081"`
	Debuglog       bool   `env:"DEBUG_LOG" envDefault:"true"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" envDefault:"http://localhost:14268/api/traces"`
	MongoDbUri     string `env:"MONGO_DB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDbName    string `env:"MONGO_DB_NAME" envDefault:"develop-startup-review"`
	Redis          struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	Service    struct {
		Directory string        `env:"SERVICE_DIRECTORY_BASEURL" envDefault:"http://localhost:5000/api"`
		Identity  string        `env:"SERVICE_IDENTITY_BASEURL" envDefault:"http://localhost:5001"`
		Timeout   time.Duration `env:"SERVICE_TIMEOUT" envDefault:"10s"`
	}
	Review struct {
		AllowPendingReset bool          `env:"ALLOW_PENDING_RESET" envDefault:"false"`
		GuardInFlight     bool          `env:"GUARD_IN_FLIGHT" envDefault:"true"`
		StrictAssertions  bool          `env:"STRICT_ASSERTIONS" envDefault:"false"`
		ViewIdleTTL       time.Duration `env:"VIEW_IDLE_TTL" envDefault:"30m"`
	}
	EventBroker            string `env:"EVENT_BROKER" envDefault:"none"`
	KafkaServer            string `env:"KAFKA_SERVER" envDefault:"localhost:9092"`
	KafkaTopicStatusEvent  string `env:"KAFKA_TOPIC_STATUS_EVENT" envDefault:"startup-status-changed"`
	NatsUrl                string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NatsSubjectStatusEvent string `env:"NATS_SUBJECT_STATUS_EVENT" envDefault:"startup.status.changed"`
}

func main() {
	cfg := initEnvironment()
	initLogger(cfg)
	initTracer(cfg)
	directoryRepo,
		identityRepo,
		sessionRepo,
		activityRepo,
		reviewEventRepo := initRepositories(cfg)
	useCase := use_case.New(directoryRepo, identityRepo, sessionRepo, activityRepo, reviewEventRepo, useCaseOptions(cfg))

	app := rest_delivery.New(useCase, rest_delivery.Config{
		AppName:       cfg.AppName,
		EnableSwagger: cfg.Environment != "production",
	})

	stopSweep := make(chan struct{})
	go sweepIdleViews(useCase, cfg.Review.ViewIdleTTL, stopSweep)

	go func() {
		err := app.Listen(fmt.Sprintf(":%d", cfg.Port))
		if err != nil {
			zap.L().Fatal("Error start http server", zap.Error(err))
		}
	}()
	zap.L().Info("Server started", zap.Uint("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down")
	close(stopSweep)
	if err := app.Shutdown(); err != nil {
		zap.L().Error("Error shutdown http server", zap.Error(err))
	}
	useCase.CloseAllViews()
	if err := reviewEventRepo.Close(); err != nil {
		zap.L().Error("Error close event publisher", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if tp, ok := otel.GetTracerProvider().(*trace.TracerProvider); ok {
		tp.ForceFlush(ctx)
		tp.Shutdown(ctx)
	}
	zap.L().Sync()
}

func initEnvironment() config {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	err := godotenv.Load()
	if err != nil {
		log.Printf("Error loading .env file: %s\n", err)
	}

	cfg, err := parseConfig()
	if err != nil {
		log.Fatalf("Error parse env: %s\n", err)
	}

	return cfg
}

func parseConfig() (config, error) {
	var cfg config
	err := env.Parse(&cfg)
	return cfg, err
}

func useCaseOptions(cfg config) use_case.Options {
	return use_case.Options{
		SessionTTL:  cfg.SessionTTL,
		ViewIdleTTL: cfg.Review.ViewIdleTTL,
		ReviewList: use_case.ReviewListOptions{
			AllowPendingReset: cfg.Review.AllowPendingReset,
			GuardInFlight:     cfg.Review.GuardInFlight,
			StrictAssertions:  cfg.Review.StrictAssertions,
		},
	}
}

func initLogger(cfg config) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Debuglog {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	config.Level = logLevel

	logger, err := config.Build()
	if err != nil {
		log.Fatalf("Error build logger: %s\n", err)
	}

	zap.ReplaceGlobals(logger)
}

func initTracer(cfg config) {
	if cfg.JaegerEndpoint == "" {
		zap.L().Info("Jaeger endpoint not set, tracing disabled")
		return
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
	if err != nil {
		zap.S().Fatal("Error init Jaeger exporter: ", zap.Error(err))
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.AppName),
			semconv.ServiceVersionKey.String(cfg.AppVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		zap.S().Fatal("Error init Jaeger resource: ", zap.Error(err))
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(r),
	)

	otel.SetTracerProvider(tp)
}

func initRepositories(cfg config) (
	use_case.DirectoryRepository,
	use_case.IdentityRepository,
	use_case.SessionRepository,
	use_case.ActivityRepository,
	use_case.ReviewEventRepository,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDbUri))
	if err != nil {
		zap.L().Fatal("Error init mongo client: ", zap.Error(err))
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		zap.L().Fatal("Error ping mongo client: ", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	err = rdb.Ping(ctx).Err()
	if err != nil {
		zap.L().Fatal("Error ping redis: ", zap.Error(err))
	}

	reviewEventRepo, err := initReviewEventRepository(cfg)
	if err != nil {
		zap.L().Fatal("Error init event publisher: ", zap.Error(err))
	}

	directoryRepo := directory_repository.NewRest(cfg.Service.Directory, cfg.Service.Timeout)
	identityRepo := identity_repository.NewRest(cfg.Service.Identity, cfg.Service.Timeout)
	sessionRepo := session_repository.NewRedis(rdb)
	activityRepo := activity_repository.NewMongoDb(client.Database(cfg.MongoDbName))
	return directoryRepo, identityRepo, sessionRepo, activityRepo, reviewEventRepo
}

func initReviewEventRepository(cfg config) (use_case.ReviewEventRepository, error) {
	switch cfg.EventBroker {
	case "kafka":
		return review_event_repository.NewKafkaMQ(cfg.KafkaServer, cfg.KafkaTopicStatusEvent), nil
	case "nats":
		return review_event_repository.NewNatsMQ(cfg.NatsUrl, cfg.NatsSubjectStatusEvent)
	case "", "none":
		return review_event_repository.NewNoop(), nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.EventBroker, errUnknownBroker)
	}
}

type viewSweeper interface {
	SweepIdleViews() int
}

func sweepIdleViews(useCase viewSweeper, ttl time.Duration, stop <-chan struct{}) {
	if ttl <= 0 {
		return
	}
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := useCase.SweepIdleViews(); n > 0 {
				zap.L().Debug("Closed idle views", zap.Int("count", n))
			}
		}
	}
}
