package status_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostly/mirrorbox/internal/entities"
	mock_repository "hostly/mirrorbox/internal/repository/mocks"
	"hostly/mirrorbox/internal/status"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type handlerDeps struct {
	files    *mock_repository.MockFiles
	mirrors  *mock_repository.MockMirrors
	attempts *mock_repository.MockAttempts
	router   *mux.Router
}

func initHandler(ctrl *gomock.Controller) *handlerDeps {
	d := &handlerDeps{
		files:    mock_repository.NewMockFiles(ctrl),
		mirrors:  mock_repository.NewMockMirrors(ctrl),
		attempts: mock_repository.NewMockAttempts(ctrl),
		router:   mux.NewRouter(),
	}

	h := status.NewHandler(zap.NewNop().Sugar(), d.router, d.files, d.mirrors, d.attempts)
	h.InitRoutes()
	return d
}

func (d *handlerDeps) get(t *testing.T, fileID string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/files/"+fileID, nil)
	rec := httptest.NewRecorder()
	d.router.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestGetUnknownFileIs404(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := initHandler(ctrl)
	d.files.EXPECT().Get(gomock.Any(), "ghost").Return(nil, nil)

	rec, body := d.get(t, "ghost")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "file not found", body["error"])
}

func TestGetReturnsFileWithMirrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := initHandler(ctrl)

	f := &entities.File{
		ID:       "file-1",
		Filename: "report.pdf",
		Size:     2048,
		MimeType: "application/pdf",
		Status:   entities.FileStatusCompleted,
	}

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	d.files.EXPECT().Get(gomock.Any(), "file-1").Return(f, nil)
	d.attempts.EXPECT().ListByFile(gomock.Any(), "file-1").Return([]*entities.MirrorAttempt{
		{
			MirrorID:   "mirror-alpha",
			MirrorName: "alpha",
			Status:     entities.AttemptStatusDone,
			URL:        "https://a/1",
			ExpiresAt:  &future,
		},
		{
			MirrorID:   "mirror-beta",
			MirrorName: "beta",
			Status:     entities.AttemptStatusDone,
			URL:        "https://b/1",
			ExpiresAt:  &past,
		},
		{
			MirrorID:   "mirror-gamma",
			MirrorName: "gamma",
			Status:     entities.AttemptStatusFailed,
		},
	}, nil)
	d.mirrors.EXPECT().GetByName(gomock.Any(), "alpha").Return(&entities.Mirror{Name: "alpha", Logo: "https://logos/alpha.svg"}, nil)
	d.mirrors.EXPECT().GetByName(gomock.Any(), "beta").Return(&entities.Mirror{Name: "beta"}, nil)
	d.mirrors.EXPECT().GetByName(gomock.Any(), "gamma").Return(nil, nil)

	rec, body := d.get(t, "file-1")
	require.Equal(t, http.StatusOK, rec.Code)

	file := body["file"].(map[string]interface{})
	require.Equal(t, "file-1", file["id"])
	require.Equal(t, "report.pdf", file["filename"])
	require.Equal(t, "completed", file["status"])

	mirrors := body["mirrors"].([]interface{})
	require.Len(t, mirrors, 3)

	alpha := mirrors[0].(map[string]interface{})
	require.Equal(t, "done", alpha["status"])
	require.Equal(t, "https://a/1", alpha["url"])
	require.Equal(t, "https://logos/alpha.svg", alpha["logo"])

	// A lapsed link reads as expired even though done is stored.
	beta := mirrors[1].(map[string]interface{})
	require.Equal(t, "expired", beta["status"])

	gamma := mirrors[2].(map[string]interface{})
	require.Equal(t, "failed", gamma["status"])
	require.NotContains(t, gamma, "url")
}
