package httpapi

import (
	"errors"
	"time"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/session"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	"github.com/riskibarqy/fantasy-league-portal/internal/usecase"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type pickDTO struct {
	PlayerID  string `json:"player_id" validate:"required"`
	IsStarter bool   `json:"is_starter"`
	IsCaptain bool   `json:"is_captain"`
}

type applyLineupEditRequest struct {
	Picks      []pickDTO `json:"picks" validate:"required,dive"`
	ActiveChip string    `json:"active_chip"`
	Action     string    `json:"action" validate:"required,oneof=toggle_starter set_captain set_chip"`
	PlayerID   string    `json:"player_id" validate:"required_unless=Action set_chip"`
	Chip       string    `json:"chip"`
}

type saveLineupRequest struct {
	Gameweek   int       `json:"gameweek" validate:"required,min=1,max=38"`
	Picks      []pickDTO `json:"picks" validate:"required,dive"`
	ActiveChip string    `json:"active_chip"`
	Confirmed  bool      `json:"confirmed"`
}

type principalDTO struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

type sessionDTO struct {
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      principalDTO `json:"user"`
}

type teamDTO struct {
	ID          string `json:"id"`
	LeagueID    string `json:"league_id,omitempty"`
	Name        string `json:"name"`
	ManagerID   string `json:"manager_id"`
	ManagerName string `json:"manager_name,omitempty"`
}

type lineupDTO struct {
	Picks        []pickDTO  `json:"picks"`
	ActiveChip   string     `json:"active_chip"`
	DeadlineTime *time.Time `json:"deadline_time,omitempty"`
	IsInherited  bool       `json:"is_inherited"`
}

type editWindowDTO struct {
	IsEditable           bool   `json:"is_editable"`
	IsDeadlinePassed     bool   `json:"is_deadline_passed"`
	HasDeadline          bool   `json:"has_deadline"`
	TimeRemainingSeconds int64  `json:"time_remaining_seconds"`
	Countdown            string `json:"countdown"`
}

type chipOptionDTO struct {
	Chip           string `json:"chip"`
	Available      bool   `json:"available"`
	UsedInGameweek int    `json:"used_in_gameweek,omitempty"`
	Label          string `json:"label,omitempty"`
}

type chipConflictDTO struct {
	Chip            string `json:"chip"`
	Phase           int    `json:"phase"`
	KeptGameweek    int    `json:"kept_gameweek"`
	IgnoredGameweek int    `json:"ignored_gameweek"`
}

type lineupEditorDTO struct {
	Team            teamDTO           `json:"team"`
	Gameweek        int               `json:"gameweek"`
	CurrentGameweek int               `json:"current_gameweek"`
	NextGameweek    int               `json:"next_gameweek"`
	Lineup          lineupDTO         `json:"lineup"`
	EditWindow      editWindowDTO     `json:"edit_window"`
	Chips           []chipOptionDTO   `json:"chips"`
	IsManager       bool              `json:"is_manager"`
	Conflicts       []chipConflictDTO `json:"conflicts,omitempty"`
}

type lineupEditResultDTO struct {
	Picks            []pickDTO `json:"picks"`
	ActiveChip       string    `json:"active_chip"`
	CanSave          bool      `json:"can_save"`
	ValidationReason string    `json:"validation_reason,omitempty"`
	ValidationError  string    `json:"validation_error,omitempty"`
}

type saveLineupResultDTO struct {
	Message  string `json:"message"`
	Gameweek int    `json:"gameweek"`
}

type teamHistoryDTO struct {
	Team           teamDTO           `json:"team"`
	Gameweek       int               `json:"gameweek"`
	Lineup         lineupDTO         `json:"lineup"`
	Chips          []chipOptionDTO   `json:"chips"`
	RemainingChips []string          `json:"remaining_chips"`
	Conflicts      []chipConflictDTO `json:"conflicts,omitempty"`
}

func sessionToDTO(item session.Session, includeToken bool) sessionDTO {
	out := sessionDTO{
		ExpiresAt: item.ExpiresAt,
		User: principalDTO{
			UserID:      item.UserID,
			Username:    item.Username,
			DisplayName: item.DisplayName,
			IsAdmin:     item.IsAdmin,
		},
	}
	if includeToken {
		out.Token = item.Token
	}
	return out
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		LeagueID:    v.LeagueID,
		Name:        v.Name,
		ManagerID:   v.ManagerUserID,
		ManagerName: v.ManagerName,
	}
}

func picksToDTO(picks []lineup.Pick) []pickDTO {
	out := make([]pickDTO, 0, len(picks))
	for _, pick := range picks {
		out = append(out, pickDTO{
			PlayerID:  pick.PlayerID,
			IsStarter: pick.IsStarter,
			IsCaptain: pick.IsCaptain,
		})
	}
	return out
}

func picksFromDTO(items []pickDTO) []lineup.Pick {
	out := make([]lineup.Pick, 0, len(items))
	for _, item := range items {
		out = append(out, lineup.Pick{
			PlayerID:  item.PlayerID,
			IsStarter: item.IsStarter,
			IsCaptain: item.IsCaptain,
		})
	}
	return out
}

func lineupToDTO(v lineup.Lineup) lineupDTO {
	activeChip := v.ActiveChip
	if activeChip == "" {
		activeChip = chip.KindNone
	}
	return lineupDTO{
		Picks:        picksToDTO(v.Picks),
		ActiveChip:   activeChip.String(),
		DeadlineTime: v.DeadlineTime,
		IsInherited:  v.IsInherited,
	}
}

func editWindowToDTO(state gameweek.EditWindowState) editWindowDTO {
	return editWindowDTO{
		IsEditable:           state.IsEditable,
		IsDeadlinePassed:     state.IsDeadlinePassed,
		HasDeadline:          state.HasDeadline,
		TimeRemainingSeconds: int64(state.TimeRemaining / time.Second),
		Countdown:            state.Countdown(),
	}
}

func chipOptionsToDTO(options []chip.Availability) []chipOptionDTO {
	out := make([]chipOptionDTO, 0, len(options))
	for _, option := range options {
		out = append(out, chipOptionDTO{
			Chip:           option.Kind.String(),
			Available:      option.Available,
			UsedInGameweek: option.UsedInGameweek,
			Label:          option.Label,
		})
	}
	return out
}

func chipConflictsToDTO(conflicts []chip.Conflict) []chipConflictDTO {
	if len(conflicts) == 0 {
		return nil
	}
	out := make([]chipConflictDTO, 0, len(conflicts))
	for _, conflict := range conflicts {
		out = append(out, chipConflictDTO{
			Chip:            conflict.Kind.String(),
			Phase:           int(conflict.Phase),
			KeptGameweek:    conflict.KeptGameweek,
			IgnoredGameweek: conflict.IgnoredGameweek,
		})
	}
	return out
}

func lineupEditorToDTO(v usecase.LineupEditorView) lineupEditorDTO {
	return lineupEditorDTO{
		Team:            teamToDTO(v.Team),
		Gameweek:        v.Gameweek,
		CurrentGameweek: v.Status.CurrentID,
		NextGameweek:    v.Status.NextID,
		Lineup:          lineupToDTO(v.Lineup),
		EditWindow:      editWindowToDTO(v.EditWindow),
		Chips:           chipOptionsToDTO(v.Chips),
		IsManager:       v.IsManager,
		Conflicts:       chipConflictsToDTO(v.Conflicts),
	}
}

func lineupEditResultToDTO(v usecase.ApplyResult) lineupEditResultDTO {
	out := lineupEditResultDTO{
		Picks:      picksToDTO(v.Picks),
		ActiveChip: v.ActiveChip.String(),
		CanSave:    v.ValidationError == nil,
	}
	if v.ValidationError != nil {
		out.ValidationReason = validationReason(v.ValidationError)
		out.ValidationError = v.ValidationError.Error()
	}
	return out
}

func teamHistoryToDTO(v usecase.TeamHistoryView) teamHistoryDTO {
	remaining := make([]string, 0, len(v.Remaining))
	for _, kind := range v.Remaining {
		remaining = append(remaining, kind.String())
	}
	return teamHistoryDTO{
		Team:           teamToDTO(v.Team),
		Gameweek:       v.Gameweek,
		Lineup:         lineupToDTO(v.Lineup),
		Chips:          chipOptionsToDTO(v.Chips),
		RemainingChips: remaining,
		Conflicts:      chipConflictsToDTO(v.Conflicts),
	}
}

func validationReason(err error) string {
	for _, candidate := range localValidationReasons {
		if errors.Is(err, candidate.target) {
			return candidate.reason
		}
	}
	return "invalidInput"
}
