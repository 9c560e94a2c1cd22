package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type JSON map[string]interface{}

func Ok(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Internal(w http.ResponseWriter) {
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("Internal error"))
}

// Object marshals any value, not just a JSON map.
func Object(logger *zap.SugaredLogger, w http.ResponseWriter, code int, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		logger.Error(err.Error())
		Internal(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	w.Write(bytes)
}

func Json(logger *zap.SugaredLogger, w http.ResponseWriter, code int, content JSON) {
	bytes, err := json.Marshal(content)
	if err != nil {
		logger.Error(err.Error())
		Internal(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	w.Write(bytes)
}
