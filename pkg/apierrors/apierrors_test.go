package apierrors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, KindValidation, KindOf(Validation("bad input")))
	require.Equal(t, KindIntegrity, KindOf(Integrity("mismatch", nil)))
	require.Equal(t, KindConflict, KindOf(Conflict("already there")))
	require.Equal(t, KindInternal, KindOf(fmt.Errorf("plain")))

	// Kind survives wrapping.
	wrapped := errors.Wrap(NotFound("gone"), "handler")
	require.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestIsRetryable(t *testing.T) {
	require.True(t, IsRetryable(Transient(fmt.Errorf("conn reset"), "provider unreachable")))
	require.False(t, IsRetryable(Terminal("provider rejected")))
	require.False(t, IsRetryable(Validation("bad input")))
	require.False(t, IsRetryable(fmt.Errorf("plain")))
}

func TestToHttp(t *testing.T) {

	logger := zap.NewNop().Sugar()

	serve := func(err error) (*httptest.ResponseRecorder, map[string]interface{}) {
		rec := httptest.NewRecorder()
		ToHttp(logger, rec, err)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec, body
	}

	t.Run("validation maps to 400", func(t *testing.T) {
		rec, body := serve(Validation("size must be a positive byte count"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "size must be a positive byte count", body["error"])
	})

	t.Run("integrity maps to 422 with fields", func(t *testing.T) {
		rec, body := serve(Integrity("stored size does not match declared size", map[string]interface{}{
			"actualSize":   int64(1_100_000),
			"declaredSize": int64(1_000_000),
		}))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, "stored size does not match declared size", body["error"])
		require.Equal(t, float64(1_100_000), body["actualSize"])
		require.Equal(t, float64(1_000_000), body["declaredSize"])
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		rec, _ := serve(Conflict("file abc is already admitted"))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		rec, _ := serve(NotFound("file not found"))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("internal detail is hidden", func(t *testing.T) {
		rec, body := serve(WrapInternal(fmt.Errorf("dial tcp: connection refused"), "files.Save"))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "internal error", body["error"])
		require.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("plain error is a 500", func(t *testing.T) {
		rec, body := serve(fmt.Errorf("boom"))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "internal error", body["error"])
	})
}
