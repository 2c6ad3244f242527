package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
)

const defaultFacebookPublishPath = "/v1/admin/facebook/publish"

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type AdminConfig struct {
	FacebookPublishPath string
}

type PublishGameweekResult struct {
	Gameweek        int    `json:"gameweek"`
	DeduplicationID string `json:"deduplication_id"`
	Queued          bool   `json:"queued"`
}

// AdminService triggers league-side maintenance. Every operation requires an
// admin principal.
type AdminService struct {
	statusRepo gameweek.Repository
	queue      JobQueue
	cfg        AdminConfig
	logger     *logging.Logger
}

func NewAdminService(statusRepo gameweek.Repository, queue JobQueue, cfg AdminConfig, logger *logging.Logger) *AdminService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.FacebookPublishPath) == "" {
		cfg.FacebookPublishPath = defaultFacebookPublishPath
	}
	return &AdminService{
		statusRepo: statusRepo,
		queue:      queue,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *AdminService) SyncDeadlines(ctx context.Context, principal user.Principal) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SyncDeadlines")
	defer span.End()

	if !principal.IsAdmin {
		return "", fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	message, err := s.statusRepo.SyncDeadlines(ctx, principal.UpstreamToken)
	if err != nil {
		return "", fmt.Errorf("sync deadlines: %w", err)
	}
	s.logger.InfoContext(ctx, "deadlines synced", "admin_user_id", principal.UserID)
	return message, nil
}

// PublishGameweek queues the Facebook recap for gw. Repeated calls for the
// same gameweek share one deduplication id, so QStash delivers it once.
func (s *AdminService) PublishGameweek(ctx context.Context, principal user.Principal, gw int) (PublishGameweekResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.PublishGameweek")
	defer span.End()

	if !principal.IsAdmin {
		return PublishGameweekResult{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if gw < gameweek.FirstGameweek || gw > gameweek.LastGameweek {
		return PublishGameweekResult{}, fmt.Errorf("%w: gameweek must be between %d and %d", ErrInvalidInput, gameweek.FirstGameweek, gameweek.LastGameweek)
	}

	dedupID := "facebook-publish-gw-" + strconv.Itoa(gw)
	payload := map[string]any{
		"gameweek":     gw,
		"requested_by": principal.UserID,
	}
	if err := s.queue.Enqueue(ctx, s.cfg.FacebookPublishPath, payload, 0, dedupID); err != nil {
		return PublishGameweekResult{}, fmt.Errorf("%w: enqueue facebook publish: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "facebook publish queued", "gameweek", gw, "deduplication_id", dedupID)
	return PublishGameweekResult{Gameweek: gw, DeduplicationID: dedupID, Queued: true}, nil
}
