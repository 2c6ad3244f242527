package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-league-portal/internal/usecase"
)

func (h *Handler) SyncDeadlines(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncDeadlines")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	message, err := h.adminService.SyncDeadlines(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync deadlines failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) PublishGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishGameweek")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gw, err := strconv.Atoi(strings.TrimSpace(r.PathValue("gw")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: gameweek must be a number", usecase.ErrInvalidInput))
		return
	}

	result, err := h.adminService.PublishGameweek(ctx, principal, gw)
	if err != nil {
		h.logger.ErrorContext(ctx, "publish gameweek failed", "gameweek", gw, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, result)
}
