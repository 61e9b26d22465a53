package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	domrepo "GeoPrice/internal/domain/repository"
	internalrepo "GeoPrice/internal/repository"
	"GeoPrice/internal/services/model"
	"GeoPrice/internal/services/synth"
	"GeoPrice/internal/usecase"
	pkgch "GeoPrice/pkg/clickhouse"
	"GeoPrice/pkg/config"
	applogger "GeoPrice/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	seed := flag.Int64("seed", 0, "override synthesis seed (0 uses config)")
	out := flag.String("out", "", "override artifact output path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *seed != 0 {
		cfg.Synthesis.Seed = *seed
	}
	if *out != "" {
		cfg.Model.ArtifactPath = *out
	}

	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	if err := run(cfg, l); err != nil {
		l.Error("training failed", applogger.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, l *applogger.Logger) error {
	ctx := context.Background()

	source, cleanup, err := observationSource(cfg, l)
	if err != nil {
		return err
	}
	defer cleanup()

	params := model.GBTParams{
		Trees:        cfg.Model.Trees,
		LearningRate: cfg.Model.LearningRate,
		MaxDepth:     cfg.Model.MaxDepth,
		MinLeaf:      1,
		Subsample:    cfg.Model.Subsample,
		Seed:         cfg.Model.Seed,
	}

	trainer := usecase.NewTrainer(
		source,
		synth.New(cfg.Synthesis.Seed),
		params,
		internalrepo.NewFileArtifactStore(cfg.Model.ArtifactPath),
		l,
	)

	artifact, err := trainer.Run(ctx)
	if err != nil {
		return err
	}

	l.Info("artifact written",
		applogger.String("path", cfg.Model.ArtifactPath),
		applogger.Int("samples", artifact.Samples),
		applogger.Int("trees", len(artifact.Pipeline.Regressor.Trees)),
	)
	return nil
}

func observationSource(cfg *config.Config, l *applogger.Logger) (domrepo.ObservationSource, func(), error) {
	switch cfg.Data.Source {
	case "clickhouse":
		ch := cfg.Data.ClickHouse
		client, err := pkgch.NewClient(
			pkgch.WithHost(ch.Host),
			pkgch.WithPort(ch.Port),
			pkgch.WithDatabase(ch.Database),
			pkgch.WithCredentials(ch.User, ch.Password),
			pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("clickhouse client: %w", err)
		}
		src := internalrepo.NewCHObservationSource(client, ch.Database+"."+ch.Table)
		src.SetLogger(l)
		return src, func() { _ = client.Close() }, nil
	case "csv":
		return internalrepo.NewCSVObservationSource(cfg.Data.CSVPath), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}
