package di

import (
	"context"
	"fmt"
	"time"

	"TradeLens/internal/domain/repository"
	"TradeLens/internal/handler/api"
	mid "TradeLens/internal/middleware"
	internalrepo "TradeLens/internal/repository"
	icache "TradeLens/internal/service/cache"
	"TradeLens/internal/service/stream"
	"TradeLens/internal/services/confidence"
	"TradeLens/internal/services/horizon"
	"TradeLens/internal/services/manipulation"
	"TradeLens/internal/services/pattern"
	"TradeLens/internal/services/structure"
	"TradeLens/internal/usecase"
	pkgch "TradeLens/pkg/clickhouse"
	"TradeLens/pkg/config"
	xhttp "TradeLens/pkg/http"
	pkgkafka "TradeLens/pkg/kafka"
	applogger "TradeLens/pkg/logger"
	"TradeLens/pkg/metrics"
	"TradeLens/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when the backend is Kafka.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates the tick consumer when the backend is Kafka.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideTickStorage creates ClickHouse storage and ensures the schema.
func ProvideTickStorage(chClient *pkgch.Client) (repository.Storage, error) {
	storage := internalrepo.NewClickHouseStorage(chClient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storage.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return storage, nil
}

// ProvideTickPublisher creates the Kafka tick publisher.
func ProvideTickPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideBinanceStream creates the Binance WebSocket stream.
func ProvideBinanceStream(cfg *config.Config, log *applogger.Logger) repository.MarketStream {
	return stream.New(
		cfg.Binance.WebSocketURL,
		cfg.Binance.Symbols,
		cfg.Binance.ReconnectDelay,
		cfg.Binance.PingInterval,
		log,
	)
}

// ProvideTickRouter creates the tick routing use case.
func ProvideTickRouter(
	pub repository.Publisher,
	store repository.Storage,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.TickRouter {
	return usecase.NewTickRouter(pub, store, metrics, cfg.Backend.Type)
}

// ProvideTickCollector creates the tick collector with its middleware pipeline.
func ProvideTickCollector(
	stream repository.MarketStream,
	router *usecase.TickRouter,
	metrics repository.Metrics,
) *usecase.TickCollector {
	pipe := mid.NewRealtimePipeline(router, metrics,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewTickCollector(stream, router, metrics, pipe)
}

// ProvideKafkaTicksHandler builds the consumer-side bar materializer.
func ProvideKafkaTicksHandler(store repository.Storage, metrics repository.Metrics, cfg *config.Config) *usecase.KafkaTicksHandler {
	return usecase.NewKafkaTicksHandler(cfg.Kafka.Topic, store, metrics)
}

// ProvideBarStore creates the read-side bar store.
func ProvideBarStore(chClient *pkgch.Client, log *applogger.Logger) repository.BarStore {
	store := internalrepo.NewCHBarStore(chClient)
	store.SetLogger(log)
	return store
}

// ProvideManipulationConfig maps YAML overrides onto detector defaults.
func ProvideManipulationConfig(cfg *config.Config) manipulation.Config {
	mc := manipulation.DefaultConfig()
	m := cfg.Analysis.Manipulation
	if m.LowVolumeRatio > 0 {
		mc.LowVolumeRatio = m.LowVolumeRatio
	}
	if m.LowVolumeGreenMin > 0 {
		mc.LowVolumeGreenMin = m.LowVolumeGreenMin
	}
	if m.TightRangeRatio > 0 {
		mc.TightRangeRatio = m.TightRangeRatio
	}
	if m.VolumeRiseRatio > 0 {
		mc.VolumeRiseRatio = m.VolumeRiseRatio
	}
	if m.HighVolumeRatio > 0 {
		mc.HighVolumeRatio = m.HighVolumeRatio
	}
	if m.HighVolumeRedMin > 0 {
		mc.HighVolumeRedMin = m.HighVolumeRedMin
	}
	if m.UpperWickBodyRatio > 0 {
		mc.UpperWickBodyRatio = m.UpperWickBodyRatio
	}
	if m.WickBarMin > 0 {
		mc.WickBarMin = m.WickBarMin
	}
	if m.TrapPierceRatio > 0 {
		mc.TrapPierceRatio = m.TrapPierceRatio
	}
	if m.TrapVolumeRatio > 0 {
		mc.TrapVolumeRatio = m.TrapVolumeRatio
	}
	if m.PumpGainRatio > 0 {
		mc.PumpGainRatio = m.PumpGainRatio
	}
	if m.DumpDeclineRatio > 0 {
		mc.DumpDeclineRatio = m.DumpDeclineRatio
	}
	if m.FakeBreakoutVolumeRatio > 0 {
		mc.FakeBreakoutVolumeRatio = m.FakeBreakoutVolumeRatio
	}
	if m.SqueezeDeclineRatio > 0 {
		mc.SqueezeDeclineRatio = m.SqueezeDeclineRatio
	}
	if m.SqueezeRallyRatio > 0 {
		mc.SqueezeRallyRatio = m.SqueezeRallyRatio
	}
	if m.SqueezeVolumeSpike > 0 {
		mc.SqueezeVolumeSpike = m.SqueezeVolumeSpike
	}
	return mc
}

// ProvideStructureConfig maps YAML overrides onto detector defaults.
func ProvideStructureConfig(cfg *config.Config) structure.Config {
	sc := structure.DefaultConfig()
	s := cfg.Analysis.Structure
	if s.StrongBlockMove > 0 {
		sc.StrongBlockMove = s.StrongBlockMove
	}
	if s.ModerateBlockMove > 0 {
		sc.ModerateBlockMove = s.ModerateBlockMove
	}
	if s.GapMinRatio > 0 {
		sc.GapMinRatio = s.GapMinRatio
	}
	return sc
}

// ProvideAnalysisService assembles the analysis pipeline.
func ProvideAnalysisService(
	store repository.BarStore,
	cfg *config.Config,
	log *applogger.Logger,
) *usecase.AnalysisService {
	return usecase.NewAnalysisService(
		store,
		pattern.NewDetector(),
		manipulation.NewDetector(ProvideManipulationConfig(cfg)),
		structure.NewDetector(ProvideStructureConfig(cfg)),
		horizon.NewAggregator(),
		confidence.NewEngine(),
		log,
	)
}

// ProvideHTTPHandler builds the analysis HTTP handler with its cache.
func ProvideHTTPHandler(svc *usecase.AnalysisService, cfg *config.Config, log *applogger.Logger) xhttp.Handler {
	h := api.NewAnalysisHandler(log, svc)
	h.SetCacheTTLs(cfg.Analysis.CacheTTL.Analyze, cfg.Analysis.CacheTTL.Reports, cfg.Analysis.CacheTTL.Bars)
	if cfg.Analysis.Redis.Enabled {
		h.SetCache(icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Analysis.Redis.Addr,
			Password: cfg.Analysis.Redis.Password,
			DB:       cfg.Analysis.Redis.DB,
		}))
	} else {
		h.SetCache(icache.NewTTLCache())
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	ticks *usecase.KafkaTicksHandler,
	chClient *pkgch.Client,
	httpHandler xhttp.Handler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, log, collector, consumer, ticks, chClient, httpHandler)
}
