package admission

import (
	"encoding/json"
	"net/http"

	"hostly/mirrorbox/internal/admission/dto"
	"hostly/mirrorbox/pkg/apierrors"
	"hostly/mirrorbox/pkg/http/response"
	"hostly/mirrorbox/pkg/validate"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	logger  *zap.SugaredLogger
	mux     *mux.Router
	service Service
}

func NewHandler(logger *zap.SugaredLogger, mux *mux.Router, service Service) *Handler {
	return &Handler{
		logger:  logger,
		mux:     mux,
		service: service,
	}
}

func (h *Handler) InitRoutes() {
	api := h.mux.PathPrefix("/api").Subrouter()
	{
		api.HandleFunc("/health", h.Healthcheck).Methods(http.MethodGet)
		api.HandleFunc("/uploads/presign", h.Presign).Methods(http.MethodPost)
		api.HandleFunc("/uploads/complete", h.Complete).Methods(http.MethodPost)
	}
}

func (h *Handler) Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Presign(w http.ResponseWriter, r *http.Request) {

	var inp dto.PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&inp); err != nil {
		apierrors.ToHttp(h.logger, w, apierrors.Validation("malformed request body"))
		return
	}

	if err := validate.RequiredFields(&inp); err != nil {
		apierrors.ToHttp(h.logger, w, apierrors.Validation("%s", err.Error()))
		return
	}

	resp, err := h.service.RequestCredential(r.Context(), inp)
	if err != nil {
		apierrors.ToHttp(h.logger, w, err)
		return
	}

	response.Object(h.logger, w, http.StatusOK, resp)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {

	var inp dto.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&inp); err != nil {
		apierrors.ToHttp(h.logger, w, apierrors.Validation("malformed request body"))
		return
	}

	if err := validate.RequiredFields(&inp); err != nil {
		apierrors.ToHttp(h.logger, w, apierrors.Validation("%s", err.Error()))
		return
	}

	f, err := h.service.Admit(r.Context(), inp.Key)
	if err != nil {
		apierrors.ToHttp(h.logger, w, err)
		return
	}

	response.Object(h.logger, w, http.StatusCreated, dto.CompleteResponse{
		ID:       f.ID,
		Filename: f.Filename,
		Size:     f.Size,
		MimeType: f.MimeType,
		Status:   string(f.Status),
		Message:  "file admitted; mirroring has been scheduled",
	})
}
