package handler

import (
	"log/slog"
	"net/http"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/services"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/httputil"
)

// OrganizeHandler handles auto-organize HTTP requests
type OrganizeHandler struct {
	organizer services.Organizer
	logger    *slog.Logger
}

// NewOrganizeHandler creates a new organize handler
func NewOrganizeHandler(organizer services.Organizer, logger *slog.Logger) *OrganizeHandler {
	return &OrganizeHandler{
		organizer: organizer,
		logger:    logger,
	}
}

// OrganizeFiles routes every unfoldered file into an AI-suggested folder
// POST /api/organize-files
func (h *OrganizeHandler) OrganizeFiles(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	report, err := h.organizer.OrganizeFiles(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}
