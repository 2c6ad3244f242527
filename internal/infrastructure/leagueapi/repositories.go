package leagueapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	"github.com/riskibarqy/fantasy-league-portal/internal/usecase"
)

const (
	pathLogin          = "/api/auth/login"
	pathGameweekStatus = "/api/gameweeks/status"
	pathSyncDeadlines  = "/api/admin/gameweeks/sync-deadlines"
	roleAdmin          = "admin"
)

func (c *Client) Login(ctx context.Context, credentials user.Credentials) (user.Principal, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   pathLogin,
		body:   loginRequest{Username: credentials.Username, Password: credentials.Password},
	}, &resp)
	if err != nil {
		return user.Principal{}, err
	}
	if strings.TrimSpace(resp.Token) == "" || strings.TrimSpace(resp.User.ID) == "" {
		return user.Principal{}, fmt.Errorf("%w: login response is missing token or user", usecase.ErrDependencyUnavailable)
	}

	return user.Principal{
		UserID:        resp.User.ID,
		Username:      resp.User.Username,
		DisplayName:   resp.User.Name,
		IsAdmin:       strings.EqualFold(resp.User.Role, roleAdmin),
		UpstreamToken: resp.Token,
	}, nil
}

// GetStatus is shared between concurrent callers holding the same token.
func (c *Client) GetStatus(ctx context.Context, accessToken string) (gameweek.Status, error) {
	v, err, _ := c.flight.DoContext(ctx, "status:"+accessToken, func() (any, error) {
		var resp gameweekStatusResponse
		if err := c.do(ctx, request{method: http.MethodGet, path: pathGameweekStatus, token: accessToken}, &resp); err != nil {
			return gameweek.Status{}, err
		}
		deadline, ok := parseTimestamp(resp.DeadlineTime)
		if !ok {
			c.logger.WarnContext(ctx, "league api sent unparsable deadline", "deadline_time", *resp.DeadlineTime)
			return gameweek.Status{}, fmt.Errorf("%w: unparsable gameweek deadline %q", usecase.ErrDependencyUnavailable, *resp.DeadlineTime)
		}
		return gameweek.Status{
			CurrentID:    resp.ID,
			DeadlineTime: deadline,
			NextID:       resp.NextGwID,
		}, nil
	})
	if err != nil {
		return gameweek.Status{}, err
	}
	status, _ := v.(gameweek.Status)
	return status, nil
}

func (c *Client) SyncDeadlines(ctx context.Context, accessToken string) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: pathSyncDeadlines, token: accessToken}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) GetByID(ctx context.Context, accessToken, teamID string) (team.Team, error) {
	var resp teamBody
	path := "/api/teams/" + url.PathEscape(teamID)
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: accessToken}, &resp); err != nil {
		return team.Team{}, err
	}
	item := mapTeam(resp)
	if item.ID == "" {
		item.ID = teamID
	}
	return item, nil
}

func (c *Client) ListByLeague(ctx context.Context, accessToken, leagueID string) ([]team.Team, error) {
	var resp leagueTeamsResponse
	path := "/api/leagues/" + url.PathEscape(leagueID) + "/teams"
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: accessToken}, &resp); err != nil {
		return nil, err
	}
	out := make([]team.Team, 0, len(resp.Teams))
	for _, body := range resp.Teams {
		item := mapTeam(body)
		if item.LeagueID == "" {
			item.LeagueID = leagueID
		}
		out = append(out, item)
	}
	return out, nil
}

func (c *Client) GetByTeamAndGameweek(ctx context.Context, accessToken, teamID string, gw int) (lineup.Lineup, error) {
	var resp lineupResponse
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/teams/" + url.PathEscape(teamID) + "/lineup",
		query:  url.Values{"gw": []string{strconv.Itoa(gw)}},
		token:  accessToken,
	}, &resp)
	if err != nil {
		return lineup.Lineup{}, err
	}

	activeChip, err := chip.ParseKind(resp.ActiveChip)
	if err != nil {
		c.logger.WarnContext(ctx, "league api sent unknown chip", "team_id", teamID, "gameweek", gw, "active_chip", resp.ActiveChip)
		activeChip = chip.KindNone
	}
	deadline, ok := parseTimestamp(resp.DeadlineTime)
	if !ok {
		c.logger.WarnContext(ctx, "league api sent unparsable lineup deadline", "team_id", teamID, "gameweek", gw, "deadline_time", *resp.DeadlineTime)
		return lineup.Lineup{}, fmt.Errorf("%w: unparsable lineup deadline %q", usecase.ErrDependencyUnavailable, *resp.DeadlineTime)
	}

	picks := make([]lineup.Pick, 0, len(resp.Lineup))
	for _, player := range resp.Lineup {
		picks = append(picks, lineup.Pick{
			PlayerID:  player.UserID,
			IsStarter: player.IsStarter,
			IsCaptain: player.IsCaptain,
		})
	}

	return lineup.Lineup{
		TeamID:       teamID,
		Gameweek:     gw,
		Picks:        picks,
		ActiveChip:   activeChip,
		DeadlineTime: deadline,
		IsInherited:  resp.IsInherited,
	}, nil
}

func (c *Client) Submit(ctx context.Context, accessToken string, submission lineup.Submission) (string, error) {
	players := make([]playerBody, 0, len(submission.Picks))
	for _, pick := range submission.Picks {
		players = append(players, playerBody{
			UserID:    pick.PlayerID,
			IsStarter: pick.IsStarter,
			IsCaptain: pick.IsCaptain,
		})
	}

	var resp messageResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/teams/" + url.PathEscape(submission.TeamID) + "/lineup",
		token:  accessToken,
		body: submitLineupRequest{
			Players:    players,
			ActiveChip: submission.ActiveChip.String(),
			Gameweek:   submission.Gameweek,
		},
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListHistory drops records with chips this portal does not know about.
func (c *Client) ListHistory(ctx context.Context, accessToken, teamID string) ([]chip.Record, error) {
	var resp chipHistoryResponse
	path := "/api/teams/" + url.PathEscape(teamID) + "/chips/history"
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: accessToken}, &resp); err != nil {
		return nil, err
	}

	out := make([]chip.Record, 0, len(resp.History))
	for _, record := range resp.History {
		kind, err := chip.ParseKind(record.ActiveChip)
		if err != nil {
			c.logger.WarnContext(ctx, "skip unknown chip in history", "team_id", teamID, "gameweek", record.Gameweek, "active_chip", record.ActiveChip)
			continue
		}
		out = append(out, chip.Record{Gameweek: record.Gameweek, ActiveChip: kind})
	}
	return out, nil
}

func mapTeam(body teamBody) team.Team {
	return team.Team{
		ID:            body.ID,
		LeagueID:      body.LeagueID,
		Name:          body.Name,
		ManagerUserID: body.ManagerID,
		ManagerName:   body.ManagerName,
	}
}
