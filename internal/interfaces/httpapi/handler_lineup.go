package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
	"github.com/riskibarqy/fantasy-league-portal/internal/usecase"
)

func (h *Handler) GetLineupEditor(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupEditor")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := parseGameweekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	view, err := h.lineupEditor.Load(ctx, principal, teamID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "load lineup editor failed", "team_id", teamID, "gameweek", gw, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupEditorToDTO(view))
}

// ApplyLineupEdit runs one edit step on the client's working selection and
// reports whether the result could be saved. Nothing is persisted.
func (h *Handler) ApplyLineupEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyLineupEdit")
	defer span.End()

	if _, err := requirePrincipal(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	var req applyLineupEditRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	// An unknown chip is passed through so validation rejects it.
	activeChip, err := chip.ParseKind(req.ActiveChip)
	if err != nil {
		activeChip = chip.Kind(strings.TrimSpace(req.ActiveChip))
	}
	result, err := h.lineupEditor.Apply(ctx, usecase.ApplyInput{
		Picks:      picksFromDTO(req.Picks),
		ActiveChip: activeChip,
		Action:     usecase.EditAction(req.Action),
		PlayerID:   req.PlayerID,
		Chip:       req.Chip,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupEditResultToDTO(result))
}

func (h *Handler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLineup")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveLineupRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	result, err := h.lineupEditor.Save(ctx, principal, usecase.SaveInput{
		TeamID:     teamID,
		Gameweek:   req.Gameweek,
		Picks:      picksFromDTO(req.Picks),
		ActiveChip: req.ActiveChip,
		Confirmed:  req.Confirmed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save lineup failed", "team_id", teamID, "gameweek", req.Gameweek, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveLineupResultDTO{
		Message:  result.Message,
		Gameweek: result.Gameweek,
	})
}

func (h *Handler) GetTeamHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamHistory")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := parseGameweekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	view, err := h.teamHistory.View(ctx, principal, teamID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "team history failed", "team_id", teamID, "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamHistoryToDTO(view))
}

func (h *Handler) GetChipBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChipBoard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := parseGameweekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	board, err := h.chipBoard.Board(ctx, principal, leagueID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "chip board failed", "league_id", leagueID, "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}
