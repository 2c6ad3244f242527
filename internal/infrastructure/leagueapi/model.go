package leagueapi

import (
	"strings"
	"time"
)

type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userBody `json:"user"`
}

type userBody struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type gameweekStatusResponse struct {
	ID           int     `json:"id"`
	DeadlineTime *string `json:"deadlineTime"`
	NextGwID     int     `json:"nextGwId"`
}

type teamBody struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LeagueID    string `json:"leagueId"`
	ManagerID   string `json:"managerId"`
	ManagerName string `json:"managerName"`
}

type leagueTeamsResponse struct {
	Teams []teamBody `json:"teams"`
}

type lineupResponse struct {
	Lineup       []playerBody `json:"lineup"`
	ActiveChip   string       `json:"activeChip"`
	DeadlineTime *string      `json:"deadline_time"`
	IsInherited  bool         `json:"isInherited"`
}

type playerBody struct {
	UserID    string `json:"userId"`
	IsStarter bool   `json:"isStarter"`
	IsCaptain bool   `json:"isCaptain"`
}

type chipHistoryResponse struct {
	History []chipRecordBody `json:"history"`
}

type chipRecordBody struct {
	Gameweek   int    `json:"gameweek"`
	ActiveChip string `json:"activeChip"`
}

type submitLineupRequest struct {
	Players    []playerBody `json:"players"`
	ActiveChip string       `json:"activeChip"`
	Gameweek   int          `json:"gw"`
}

// parseTimestamp accepts RFC 3339 with or without fractional seconds. A
// missing or blank value means no deadline; ok is false only for a value that
// is present but unparsable.
func parseTimestamp(raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			utc := parsed.UTC()
			return &utc, true
		}
	}
	return nil, false
}
