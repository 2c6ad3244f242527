package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

const editWindowEvent = "edit_window"

type editWindowEventDTO struct {
	At time.Time `json:"at"`
	editWindowDTO
}

// StreamEditWindow pushes the lineup edit window as server-sent events, one
// per second, until the deadline passes or the client goes away. The league
// API is called once, up front.
func (h *Handler) StreamEditWindow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamEditWindow")
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
		writeError(ctx, w, err)
		return
	}

	rc := http.NewResponseController(w)
	// The stream outlives the server write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ticks, stop := h.editWindowTicker.Watch(ctx, view.EditWindowInput())
	defer stop()

	for tick := range ticks {
		payload := editWindowEventDTO{At: tick.At.UTC(), editWindowDTO: editWindowToDTO(tick.State)}
		if err := writeEvent(w, editWindowEvent, payload); err != nil {
			h.logger.WarnContext(ctx, "edit window stream write failed", "team_id", teamID, "error", err)
			return
		}
		if err := rc.Flush(); err != nil {
			h.logger.WarnContext(ctx, "edit window stream flush failed", "team_id", teamID, "error", err)
			return
		}
	}
}

func writeEvent(w io.Writer, event string, payload any) error {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
