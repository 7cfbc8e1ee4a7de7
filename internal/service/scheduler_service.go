package service

import (
	"context"
	"fmt"
	"time"

	"wa-coach-bot/internal/domain"

	"golang.org/x/sync/errgroup"
)

// sweepSendWorkers caps concurrent notice deliveries to the gateway.
const sweepSendWorkers = 4

// SchedulerService runs the two periodic background tasks: the expiry sweep
// over the whole user collection, and the best-effort session backup. They
// tick on independent intervals and share nothing but the context.
type SchedulerService struct {
	users  *UserService
	sender domain.MessageSender
	backup *SessionBackupService
	logger domain.Logger

	sweepInterval  time.Duration
	backupInterval time.Duration
}

// NewSchedulerService creates the scheduler.
func NewSchedulerService(users *UserService, sender domain.MessageSender, backup *SessionBackupService, logger domain.Logger, sweepInterval, backupInterval time.Duration) *SchedulerService {
	return &SchedulerService{
		users:          users,
		sender:         sender,
		backup:         backup,
		logger:         logger,
		sweepInterval:  sweepInterval,
		backupInterval: backupInterval,
	}
}

// Start launches both loops; they stop when ctx is cancelled.
func (s *SchedulerService) Start(ctx context.Context) {
	go s.runSweep(ctx)
	go s.runBackup(ctx)
	s.logger.Info("Scheduler started", "sweep_interval", s.sweepInterval, "backup_interval", s.backupInterval)
}

func (s *SchedulerService) runSweep(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx, time.Now())
		}
	}
}

type outboundNotice struct {
	to   string
	body string
}

// Sweep applies expiry resolution, reminder checks and the hysteresis reset
// to every record, persists once if anything changed, then dispatches the
// collected notices. Records are marked notified before delivery, so a
// failed send can only ever under-deliver, never duplicate. A failure for
// one user does not stop the others.
func (s *SchedulerService) Sweep(ctx context.Context, now time.Time) {
	var notices []outboundNotice
	changed := false

	s.users.ForEach(func(u *domain.User) {
		if domain.ResolveExpiry(u, now) {
			changed = true
			notices = append(notices, outboundNotice{to: u.Number, body: noticeAccessRevoked})
			return
		}
		if days, due := domain.NoticeDue(u, now); due {
			u.ExpiryNotified = true
			changed = true
			notices = append(notices, outboundNotice{to: u.Number, body: fmt.Sprintf(noticeExpiryReminder, days)})
			return
		}
		if domain.ResetNoticeFlag(u, now) {
			changed = true
		}
	})

	if changed {
		_ = s.users.Persist()
	}
	if len(notices) == 0 {
		return
	}

	sem := make(chan struct{}, sweepSendWorkers)
	g, gctx := errgroup.WithContext(ctx)
	for _, n := range notices {
		n := n
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			if err := s.sender.SendText(gctx, n.to, n.body); err != nil {
				s.logger.Error("Failed to deliver expiry notice", err, "to", n.to)
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("Expiry sweep completed", "users", s.users.Count(), "notices", len(notices))
}

func (s *SchedulerService) runBackup(ctx context.Context) {
	ticker := time.NewTicker(s.backupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.backup.Backup(); err != nil {
				s.logger.Warn("Scheduled session backup failed", "error", err)
			}
		}
	}
}
