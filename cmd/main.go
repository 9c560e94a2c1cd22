package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostly/mirrorbox/config"
	"hostly/mirrorbox/internal/admission"
	"hostly/mirrorbox/internal/fanout"
	"hostly/mirrorbox/internal/repository"
	"hostly/mirrorbox/internal/status"
	"hostly/mirrorbox/internal/storage"
	"hostly/mirrorbox/pkg/dealer"
	"hostly/mirrorbox/pkg/http_server"
	"hostly/mirrorbox/pkg/jobqueue"
	"hostly/mirrorbox/pkg/logging"
	"hostly/mirrorbox/pkg/metrics"
	"hostly/mirrorbox/pkg/mongodb"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

func main() {

	log.Println("booting application...")

	debug, strict, logsPath, configPath := parseFlags()

	logger, err := logging.WithConfig(&logging.Config{
		Encoding: logging.JSON,
		Strict:   strict,
		LogsPath: logsPath,
		Debug:    debug,
	})

	if err != nil {
		log.Fatalf("could not get logger. %s", err.Error())
	}

	if err := godotenv.Load(".env"); err != nil {
		logger.Warnf("could not load .env variables %s", err.Error())
	}

	cfg, err := config.GetAppConfig(configPath, debug)
	if err != nil {
		logger.Fatalf("could not get app config. %s", err.Error())
	}

	//Context for determining timeout to connect to database
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	mng, err := mongodb.New(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalf("could not connect to database. %s", err.Error())
	}
	logger.Info("mongodb has connected")

	repos := repository.NewMongo(logger, cfg.DBName, mng.Client())
	if err := repos.EnsureIndexes(ctx); err != nil {
		logger.Fatalf("could not ensure indexes. %s", err.Error())
	}

	gateway, err := storage.NewS3Gateway(ctx, storage.S3Config{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		logger.Fatalf("could not build storage gateway. %s", err.Error())
	}

	m := mux.NewRouter()
	srv := http_server.New(cfg.AppPort, cfg.AppHost, m)

	queue := jobqueue.New(logger, jobqueue.Config{
		Workers:    cfg.Queue.Workers,
		Buffer:     cfg.Queue.Buffer,
		MaxRetries: cfg.Queue.MaxRetries,
		RetryDelay: cfg.Queue.RetryDelay,
	})

	pool := dealer.New(logger, cfg.Fanout.MaxConcurrent)

	worker := fanout.NewWorkerClient(logger, cfg.WorkerURL)
	orchestrator := fanout.New(logger, repos.Files, repos.Mirrors, repos.Attempts, gateway, worker, pool, &fanout.Config{
		MaxTries:      cfg.Fanout.MaxTries,
		WorkerTimeout: cfg.Fanout.WorkerTimeout,
		BackoffBase:   cfg.Fanout.BackoffBase,
		ReadURLTTL:    cfg.Fanout.ReadURLTTL,
	})

	admissionService := admission.NewService(logger, repos.Files, gateway, queue, &admission.Config{
		MaxSize:             cfg.Upload.MaxSize,
		AllowedMimePrefixes: cfg.Upload.AllowedMimePrefixes,
	})
	admissionHandler := admission.NewHandler(logger, m, admissionService)
	statusHandler := status.NewHandler(logger, m, repos.Files, repos.Mirrors, repos.Attempts)

	sweeper := fanout.NewSweeper(logger, repos.Files, queue, cfg.Sweep.Every, cfg.Sweep.OlderThan)

	admissionHandler.InitRoutes()
	statusHandler.InitRoutes()
	metrics.StartRecordingMetrics(m)

	//Starts several goroutines
	pool.Start()
	queue.Start(orchestrator)
	sweeper.Start()

	//Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server could not start listening. %s", err.Error())
		}
	}()
	logger.Infof("server is listening on %s:%s", cfg.AppHost, cfg.AppPort)

	<-shutdown
	logger.Debug("shutting down gracefully...")

	//Context for graceful shutdown
	gctx, gcancel := context.WithTimeout(context.Background(), time.Second*5)
	defer gcancel()

	if err := srv.Shutdown(gctx); err != nil {
		//No fatal error to make clean up
		logger.Errorf("server could not shutdown gracefully. %s", err.Error())
	}
	logger.Debug("server has shutdown")

	sweeper.Stop()
	logger.Debugf("sweeper has stopped")

	queue.Stop()
	logger.Debugf("job queue has stopped")

	pool.Stop()
	logger.Debugf("worker pool has stopped")

	if err := mng.CloseConnection(gctx); err != nil {
		logger.Errorf("mongo could not close connection. %s", err.Error())
	}
	logger.Debug("mongo connection has closed")
}

func parseFlags() (bool, bool, string, string) {

	debug := flag.Bool("debug", true, "determines whether logs are written to stdout or file")
	strict := flag.Bool("strict-log", false, "determines if logger shouldn't log any info/debug logs")
	logsPath := flag.String("logs-path", "", "determines where log file is")
	configPath := flag.String("config-path", "config.yaml", "determines where config file is")
	flag.Parse()

	return *debug, *strict, *logsPath, *configPath
}
