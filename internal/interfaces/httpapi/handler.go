package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-portal/internal/usecase"
)

type Handler struct {
	sessionService   *usecase.SessionService
	lineupEditor     *usecase.LineupEditorService
	teamHistory      *usecase.TeamHistoryService
	chipBoard        *usecase.ChipBoardService
	adminService     *usecase.AdminService
	editWindowTicker *usecase.EditWindowWatcher
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	sessionService *usecase.SessionService,
	lineupEditor *usecase.LineupEditorService,
	teamHistory *usecase.TeamHistoryService,
	chipBoard *usecase.ChipBoardService,
	adminService *usecase.AdminService,
	editWindowTicker *usecase.EditWindowWatcher,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if editWindowTicker == nil {
		editWindowTicker = usecase.NewEditWindowWatcher(nil)
	}

	return &Handler{
		sessionService:   sessionService,
		lineupEditor:     lineupEditor,
		teamHistory:      teamHistory,
		chipBoard:        chipBoard,
		adminService:     adminService,
		editWindowTicker: editWindowTicker,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a strict JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, dst any) error {
	decoder := jsoniter.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

// parseGameweekQuery reads ?gw=. A missing value yields 0.
func parseGameweekQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("gw"))
	if raw == "" {
		return 0, nil
	}
	gw, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: gw must be a number", usecase.ErrInvalidInput)
	}
	return gw, nil
}
