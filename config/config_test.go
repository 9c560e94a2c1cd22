package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetAppConfig(t *testing.T) {

	//Imitate .env file's vars
	os.Setenv("MONGO_URI", "mock_mongo_uri")
	os.Setenv("MONGO_DB_NAME", "dbname")
	os.Setenv("APP_PORT", "9000")
	os.Setenv("APP_HOST", "localhost")
	os.Setenv("WORKER_URL", "http://worker:7000")
	os.Setenv("S3_REGION", "us-east-1")
	os.Setenv("S3_BUCKET", "mirrorbox")
	os.Setenv("S3_ACCESS_KEY", "access")
	os.Setenv("S3_SECRET_KEY", "secret")
	os.Setenv("S3_ENDPOINT", "http://minio:9000")

	cfg, err := GetAppConfig("./testdata/config.yaml", true)
	require.NoError(t, err)

	//envs..
	require.Equal(t, "mock_mongo_uri", cfg.MongoURI)
	require.Equal(t, "dbname", cfg.DBName)
	require.Equal(t, "9000", cfg.AppPort)
	require.Equal(t, "localhost", cfg.AppHost)
	require.Equal(t, true, cfg.Debug)
	require.Equal(t, "http://worker:7000", cfg.WorkerURL)
	require.Equal(t, "http://minio:9000", cfg.S3.Endpoint)
	require.Equal(t, "mirrorbox", cfg.S3.Bucket)

	//cfg file
	require.Equal(t, int64(104857600), cfg.Upload.MaxSize)
	require.Contains(t, cfg.Upload.AllowedMimePrefixes, "image/")
	require.Contains(t, cfg.Upload.AllowedMimePrefixes, "application/pdf")
	require.Equal(t, 5, cfg.Fanout.MaxConcurrent)
	require.Equal(t, 3, cfg.Fanout.MaxTries)
	require.Equal(t, time.Second*30, cfg.Fanout.WorkerTimeout)
	require.Equal(t, time.Second, cfg.Fanout.BackoffBase)
	require.Equal(t, time.Second*900, cfg.Fanout.ReadURLTTL)
	require.Equal(t, 4, cfg.Queue.Workers)
	require.Equal(t, 256, cfg.Queue.Buffer)
	require.Equal(t, 3, cfg.Queue.MaxRetries)
	require.Equal(t, time.Second*5, cfg.Queue.RetryDelay)
	require.Equal(t, time.Minute*5, cfg.Sweep.Every)
	require.Equal(t, time.Minute*10, cfg.Sweep.OlderThan)
}

func TestGetAppConfigNoFile(t *testing.T) {
	_, err := GetAppConfig("./testdata/nope.yaml", true)
	require.ErrorIs(t, err, ErrConfigNoExist)
}
