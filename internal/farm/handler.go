package farm

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aquafarm-erp/aquafarm-erp/internal/platform/httpx"
)

type Handler struct {
	logger *slog.Logger
	repo   Repository
}

func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ponds", h.List)
}

type pondVM struct {
	PondID    int64   `json:"pond_id"`
	Name      string  `json:"name"`
	AreaSqM   float64 `json:"area_sqm"`
	DepthM    float64 `json:"depth_m"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ponds, err := h.repo.ListPonds(r.Context())
	if err != nil {
		h.logger.Error("list ponds", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]pondVM, 0, len(ponds))
	for _, p := range ponds {
		out = append(out, pondVM{
			PondID:    p.ID,
			Name:      p.Name,
			AreaSqM:   p.AreaSqM,
			DepthM:    p.DepthM,
			Active:    p.Active,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}
