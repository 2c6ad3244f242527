package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	"github.com/riskibarqy/fantasy-league-portal/internal/usecase"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.sessionService.Login(ctx, user.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(item, true))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.sessionService.Logout(ctx, accessTokenFromContext(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "logout failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"logged_out": true})
}

// Me restores the caller's session, e.g. after a page reload.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	item, exists, err := h.sessionService.Restore(ctx, accessTokenFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: session expired or unknown", usecase.ErrUnauthorized))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(item, false))
}
