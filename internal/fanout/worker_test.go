package fanout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"hostly/mirrorbox/internal/entities"
	"hostly/mirrorbox/internal/fanout"
	mock_repository "hostly/mirrorbox/internal/repository/mocks"
	"hostly/mirrorbox/pkg/jobqueue"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWorkerClientMirror(t *testing.T) {

	t.Run("posts the request and decodes the response", func(t *testing.T) {
		var got fanout.WorkerRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/mirror", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			json.NewEncoder(w).Encode(fanout.WorkerResponse{
				Success:     true,
				DownloadURL: "https://provider/abc",
				Metadata:    map[string]interface{}{"provider": "alpha"},
			})
		}))
		defer srv.Close()

		c := fanout.NewWorkerClient(zap.NewNop().Sugar(), srv.URL)
		resp, err := c.Mirror(context.Background(), &fanout.WorkerRequest{
			JobID:    "job-1",
			FileID:   "file-1",
			FileURL:  "https://signed/get",
			Filename: "report.pdf",
			Size:     2048,
			Service:  "alpha",
			ServiceConfig: entities.MirrorConfig{
				"apiKey": "k",
			},
		})
		require.NoError(t, err)
		require.True(t, resp.Success)
		require.Equal(t, "https://provider/abc", resp.DownloadURL)
		require.Equal(t, "alpha", resp.Metadata["provider"])

		require.Equal(t, "file-1", got.FileID)
		require.Equal(t, "https://signed/get", got.FileURL)
		require.Equal(t, "alpha", got.Service)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := fanout.NewWorkerClient(zap.NewNop().Sugar(), srv.URL)
		resp, err := c.Mirror(context.Background(), &fanout.WorkerRequest{FileID: "file-1"})
		require.Nil(t, resp)
		require.EqualError(t, err, "worker responded with status 502")
	})

	t.Run("context deadline cancels the call", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
		defer cancel()

		c := fanout.NewWorkerClient(zap.NewNop().Sugar(), srv.URL)
		resp, err := c.Mirror(ctx, &fanout.WorkerRequest{FileID: "file-1"})
		require.Nil(t, resp)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

type countingQueue struct {
	mu   sync.Mutex
	jobs []jobqueue.Job
}

func (q *countingQueue) Enqueue(job jobqueue.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.jobs = append(q.jobs, job)
	return nil
}

func TestSweepReenqueuesStuckPendingFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := mock_repository.NewMockFiles(ctrl)
	queue := &countingQueue{}
	sweeper := fanout.NewSweeper(zap.NewNop().Sugar(), files, queue, time.Hour, time.Minute*10)

	files.EXPECT().ListStuckPending(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, olderThan time.Time) ([]*entities.File, error) {
			// The cutoff trails now by the configured window.
			require.WithinDuration(t, time.Now().UTC().Add(-time.Minute*10), olderThan, time.Second)
			return []*entities.File{
				{ID: "file-1", Status: entities.FileStatusPending},
				{ID: "file-2", Status: entities.FileStatusPending},
			}, nil
		})

	sweeper.Sweep(context.Background())

	require.Equal(t, []jobqueue.Job{{FileID: "file-1"}, {FileID: "file-2"}}, queue.jobs)
}
