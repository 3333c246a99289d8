// scored 是评分服务守护进程：
// 开放的查询接口 → 特征补全 → 定长向量编码 → 外部打分服务 → JSON 结果。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/marketml/scorekit/config"
	"github.com/marketml/scorekit/core"
	"github.com/marketml/scorekit/feature"
	"github.com/marketml/scorekit/gateway"
	"github.com/marketml/scorekit/guard"
	"github.com/marketml/scorekit/pipeline"
	"github.com/marketml/scorekit/score"
	"github.com/marketml/scorekit/service"
	"github.com/marketml/scorekit/store"
)

func main() {
	configPath := flag.String("config", "scored.yaml", "path to config file")
	flag.Parse()

	logger := log.New("scored")
	logger.SetLevel(log.INFO)

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatalf("scored: %v", err)
	}
}

func run(cfg *config.AppConfig, logger *log.Logger) error {
	kv, err := newStore(&cfg.FeatureStore)
	if err != nil {
		return fmt.Errorf("feature store: %w", err)
	}
	defer kv.Close()
	logger.Infof("feature store: %s", kv.Name())

	featureSvc := newFeatureService(kv, &cfg.FeatureStore)
	defer featureSvc.Close(context.Background())

	scorer, err := service.NewScorer(&cfg.Scorer)
	if err != nil {
		return fmt.Errorf("scorer: %w", err)
	}
	defer scorer.Close(context.Background())
	logger.Infof("scorer: %s endpoint=%s", scorer.Name(), cfg.Scorer.Endpoint)

	p := buildPipeline(cfg, featureSvc, scorer)

	var audit *gateway.AuditRecorder
	if cfg.Audit.Enabled {
		audit = gateway.NewAuditRecorder(kv, cfg.Audit.TTL)
	}

	handler := &gateway.Handler{
		Pipeline:  p,
		Extractor: feature.NewInputExtractor(nil),
		Audit:     audit,
	}
	srv := gateway.NewServer(handler, gateway.WithHealthScorer(scorer))

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		errCh <- srv.Start(cfg.Server.Addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func newStore(cfg *config.FeatureStoreConfig) (core.KeyValueStore, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(cfg.Addr, cfg.DB)
	default:
		return nil, fmt.Errorf("unsupported feature store backend: %s", cfg.Backend)
	}
}

func newFeatureService(kv core.Store, cfg *config.FeatureStoreConfig) core.FeatureService {
	var svc core.FeatureService = feature.NewStoreFeatureService(kv, cfg.KeyPrefix)
	if cfg.CacheTTL > 0 {
		svc = feature.NewCachedFeatureService(svc, 0, time.Duration(cfg.CacheTTL)*time.Second)
	}
	return svc
}

func buildPipeline(cfg *config.AppConfig, featureSvc core.FeatureService, scorer core.Scorer) *pipeline.Pipeline {
	nodes := []pipeline.Node{}
	if len(cfg.Guard) > 0 {
		nodes = append(nodes, &guard.GuardNode{Rules: cfg.Guard})
	}
	nodes = append(nodes,
		&feature.EnrichNode{Service: featureSvc},
		&feature.EncodeNode{Encoder: feature.NewVectorEncoder(nil)},
		&score.RemoteNode{
			Scorer:       scorer,
			ModelName:    cfg.Scorer.ModelName,
			ModelVersion: cfg.Scorer.ModelVersion,
		},
	)
	return &pipeline.Pipeline{Nodes: nodes}
}
