package status

import (
	"net/http"
	"time"

	mirrorbox "hostly/mirrorbox"
	"hostly/mirrorbox/internal/entities"
	"hostly/mirrorbox/internal/repository"
	"hostly/mirrorbox/pkg/apierrors"
	"hostly/mirrorbox/pkg/http/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler is the read side: one file plus its per-mirror rows, with
// the derived expired state computed at read time.
type Handler struct {
	logger   *zap.SugaredLogger
	mux      *mux.Router
	files    repository.Files
	mirrors  repository.Mirrors
	attempts repository.Attempts
}

func NewHandler(logger *zap.SugaredLogger,
	mux *mux.Router,
	files repository.Files,
	mirrors repository.Mirrors,
	attempts repository.Attempts) *Handler {
	return &Handler{
		logger:   logger,
		mux:      mux,
		files:    files,
		mirrors:  mirrors,
		attempts: attempts,
	}
}

func (h *Handler) InitRoutes() {
	api := h.mux.PathPrefix("/api").Subrouter()
	{
		api.HandleFunc("/files/{fileId}", h.Get).Methods(http.MethodGet)
	}
}

type fileView struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

type mirrorView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	URL       string     `json:"url,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt"`
	Logo      string     `json:"logo,omitempty"`
}

type statusView struct {
	File    fileView     `json:"file"`
	Mirrors []mirrorView `json:"mirrors"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {

	vars := mux.Vars(r)
	fileID := vars[mirrorbox.FileIDKey]

	f, err := h.files.Get(r.Context(), fileID)
	if err != nil {
		apierrors.ToHttp(h.logger, w, apierrors.WrapInternal(err, "status.Handler.Get.files.Get"))
		return
	}
	if f == nil {
		apierrors.ToHttp(h.logger, w, apierrors.NotFound("file not found"))
		return
	}

	attempts, err := h.attempts.ListByFile(r.Context(), f.ID)
	if err != nil {
		apierrors.ToHttp(h.logger, w, apierrors.WrapInternal(err, "status.Handler.Get.ListByFile"))
		return
	}

	now := time.Now().UTC()
	mirrors := make([]mirrorView, 0, len(attempts))
	for _, a := range attempts {
		mirrors = append(mirrors, mirrorView{
			ID:        a.MirrorID,
			Name:      a.MirrorName,
			Status:    string(a.EffectiveStatus(now)),
			URL:       a.URL,
			ExpiresAt: a.ExpiresAt,
			Logo:      h.logoOf(r, a),
		})
	}

	response.Object(h.logger, w, http.StatusOK, statusView{
		File: fileView{
			ID:        f.ID,
			Filename:  f.Filename,
			Size:      f.Size,
			MimeType:  f.MimeType,
			CreatedAt: f.CreatedAt,
			Status:    string(f.Status),
		},
		Mirrors: mirrors,
	})
}

func (h *Handler) logoOf(r *http.Request, a *entities.MirrorAttempt) string {
	m, err := h.mirrors.GetByName(r.Context(), a.MirrorName)
	if err != nil || m == nil {
		return ""
	}
	return m.Logo
}
