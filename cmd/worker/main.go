package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/port"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/artifact"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/config"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/email"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/ffmpeg"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/mediapipe"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/metrics"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/objectstore"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/postgres"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/rabbitmq"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/infra/tracing"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/usecase"
	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting poses-etl-worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if the collector is unavailable)
	tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
	} else {
		defer tp.Shutdown(ctx)
	}

	// Keypoint store
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	fatalOnErr(err, "connect to postgres")
	defer pool.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	fatalOnErr(pool.Ping(pingCtx), "ping postgres")
	pingCancel()

	fatalOnErr(postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir), "apply migrations")

	// Optional artifact mirror
	var mirror artifact.Mirror
	if cfg.MinIOEndpoint != "" {
		m, err := objectstore.NewMirror(objectstore.MirrorConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MinIOBucket,
		})
		fatalOnErr(err, "create artifact mirror")
		fatalOnErr(m.EnsureBucket(ctx), "ensure artifact bucket")
		mirror = m
	}

	// Durable intermediate storage
	artifacts, err := artifact.NewStore(cfg.ArtifactDir, mirror, log)
	fatalOnErr(err, "provision artifact dir")

	// Optional outcome events
	var publisher port.OutcomePublisher
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		fatalOnErr(err, "connect to rabbitmq")
		defer conn.Close()

		pub, err := rabbitmq.NewOutcomePublisher(conn, cfg.AMQPExchange)
		fatalOnErr(err, "create outcome publisher")
		publisher = pub
	}

	// Pipeline stages
	opener := ffmpeg.NewOpener(cfg.FFmpegBin, cfg.FFprobeBin, log)
	detectors := mediapipe.NewProvider(mediapipe.ProviderConfig{
		Endpoint:               cfg.DetectorEndpoint,
		ModelComplexity:        cfg.ModelComplexity,
		MinDetectionConfidence: cfg.MinDetectionConfidence,
		MinTrackingConfidence:  cfg.MinTrackingConfidence,
	}, log)
	captureStage := usecase.NewCaptureStage(opener, artifacts, log)
	loadStage := usecase.NewLoadStage(postgres.NewKeypointRepository(pool), log)

	orchestrator := usecase.NewOrchestrator(
		captureStage, loadStage, detectors, publisher,
		cfg.WorkerCount, log,
	)

	// Metrics server
	metricsSrv := metrics.StartMetricsServer(ctx, cfg.MetricsPort, log)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	videos, err := usecase.EnumerateVideos(cfg.VideoInputDir)
	fatalOnErr(err, "enumerate videos")
	if len(videos) == 0 {
		log.Warn("no .mp4 videos found", zap.String("dir", cfg.VideoInputDir))
	}

	summary := orchestrator.Run(ctx, videos)

	if summary.Failed > 0 && cfg.SMTPHost != "" {
		notifier := email.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.NotificationTo, log)
		if err := notifier.NotifyRunFailures(ctx, summary); err != nil {
			log.Warn("failure notification not sent", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	metricsSrv.Shutdown(shutdownCtx)

	log.Info("poses-etl-worker stopped",
		zap.Int("videos", summary.Total()),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("no_pose", summary.NoPose),
		zap.Int("failed", summary.Failed),
	)
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
