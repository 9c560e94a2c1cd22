package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrConfigNoExist = errors.New("config does not exist")
)

type UploadConfig struct {
	// MaxSize is the global upload cap in bytes.
	MaxSize             int64
	AllowedMimePrefixes []string
}

type FanoutConfig struct {
	MaxConcurrent int
	MaxTries      int
	WorkerTimeout time.Duration
	BackoffBase   time.Duration
	ReadURLTTL    time.Duration
}

type QueueConfig struct {
	Workers    int
	Buffer     int
	MaxRetries int
	RetryDelay time.Duration
}

type SweepConfig struct {
	Every     time.Duration
	OlderThan time.Duration
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

type AppConfig struct {
	MongoURI  string
	DBName    string
	AppPort   string
	AppHost   string
	Debug     bool
	WorkerURL string
	S3        S3Config
	Upload    *UploadConfig
	Fanout    *FanoutConfig
	Queue     *QueueConfig
	Sweep     *SweepConfig
}

func GetAppConfig(path string, debug bool) (*AppConfig, error) {

	// Check if file does exist
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNoExist
		}

		return nil, err
	}

	viper.SetConfigFile(path)
	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return nil, fmt.Errorf("missing MONGO_URI env")
	}

	dbname := os.Getenv("MONGO_DB_NAME")
	if dbname == "" {
		return nil, fmt.Errorf("missing MONGO_DB_NAME env")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		return nil, fmt.Errorf("missing APP_PORT env")
	}

	appHost := os.Getenv("APP_HOST")
	if appHost == "" {
		return nil, fmt.Errorf("missing APP_HOST env")
	}

	workerURL := os.Getenv("WORKER_URL")
	if workerURL == "" {
		return nil, fmt.Errorf("missing WORKER_URL env")
	}

	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		return nil, fmt.Errorf("missing S3_REGION env")
	}

	s3Bucket := os.Getenv("S3_BUCKET")
	if s3Bucket == "" {
		return nil, fmt.Errorf("missing S3_BUCKET env")
	}

	s3AccessKey := os.Getenv("S3_ACCESS_KEY")
	if s3AccessKey == "" {
		return nil, fmt.Errorf("missing S3_ACCESS_KEY env")
	}

	s3SecretKey := os.Getenv("S3_SECRET_KEY")
	if s3SecretKey == "" {
		return nil, fmt.Errorf("missing S3_SECRET_KEY env")
	}

	// Empty endpoint means real AWS instead of an S3-compatible store
	s3Endpoint := os.Getenv("S3_ENDPOINT")

	uploadMaxSize := viper.GetInt64("upload.max_size")
	if uploadMaxSize == 0 {
		return nil, fmt.Errorf("missing upload.max_size in config")
	}

	mimePrefixes := viper.GetStringSlice("upload.allowed_mime_prefixes")
	if len(mimePrefixes) == 0 {
		return nil, fmt.Errorf("missing upload.allowed_mime_prefixes in config")
	}

	maxConcurrent := viper.GetInt("fanout.max_concurrent")
	if maxConcurrent == 0 {
		return nil, fmt.Errorf("missing fanout.max_concurrent in config")
	}

	maxTries := viper.GetInt("fanout.max_tries")
	if maxTries == 0 {
		return nil, fmt.Errorf("missing fanout.max_tries in config")
	}

	workerTimeout := viper.GetInt("fanout.worker_timeout")
	if workerTimeout == 0 {
		return nil, fmt.Errorf("missing fanout.worker_timeout in config")
	}

	backoffBase := viper.GetInt("fanout.backoff_base_ms")
	if backoffBase == 0 {
		return nil, fmt.Errorf("missing fanout.backoff_base_ms in config")
	}

	readURLTTL := viper.GetInt("fanout.read_url_ttl")
	if readURLTTL == 0 {
		return nil, fmt.Errorf("missing fanout.read_url_ttl in config")
	}

	queueWorkers := viper.GetInt("queue.workers")
	if queueWorkers == 0 {
		return nil, fmt.Errorf("missing queue.workers in config")
	}

	queueBuffer := viper.GetInt("queue.buffer")
	if queueBuffer == 0 {
		return nil, fmt.Errorf("missing queue.buffer in config")
	}

	queueMaxRetries := viper.GetInt("queue.max_retries")
	if queueMaxRetries == 0 {
		return nil, fmt.Errorf("missing queue.max_retries in config")
	}

	queueRetryDelay := viper.GetInt("queue.retry_delay")
	if queueRetryDelay == 0 {
		return nil, fmt.Errorf("missing queue.retry_delay in config")
	}

	sweepEvery := viper.GetInt("sweep.every")
	if sweepEvery == 0 {
		return nil, fmt.Errorf("missing sweep.every in config")
	}

	sweepOlderThan := viper.GetInt("sweep.older_than")
	if sweepOlderThan == 0 {
		return nil, fmt.Errorf("missing sweep.older_than in config")
	}

	return &AppConfig{
		MongoURI:  mongoURI,
		DBName:    dbname,
		AppPort:   appPort,
		AppHost:   appHost,
		Debug:     debug,
		WorkerURL: workerURL,
		S3: S3Config{
			Endpoint:  s3Endpoint,
			Region:    s3Region,
			Bucket:    s3Bucket,
			AccessKey: s3AccessKey,
			SecretKey: s3SecretKey,
		},
		Upload: &UploadConfig{
			MaxSize:             uploadMaxSize,
			AllowedMimePrefixes: mimePrefixes,
		},
		Fanout: &FanoutConfig{
			MaxConcurrent: maxConcurrent,
			MaxTries:      maxTries,
			WorkerTimeout: time.Duration(workerTimeout) * time.Second,
			BackoffBase:   time.Duration(backoffBase) * time.Millisecond,
			ReadURLTTL:    time.Duration(readURLTTL) * time.Second,
		},
		Queue: &QueueConfig{
			Workers:    queueWorkers,
			Buffer:     queueBuffer,
			MaxRetries: queueMaxRetries,
			RetryDelay: time.Duration(queueRetryDelay) * time.Second,
		},
		Sweep: &SweepConfig{
			Every:     time.Duration(sweepEvery) * time.Second,
			OlderThan: time.Duration(sweepOlderThan) * time.Second,
		},
	}, nil
}
