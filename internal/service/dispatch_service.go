package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"wa-coach-bot/internal/domain"
)

const (
	commandMarker = "/"

	completionMaxTokens   = 500
	completionTemperature = 0.7
)

// DispatchService is the per-message entry point: it routes commands, runs
// the admission decision for the AI path, and produces exactly one reply per
// handled message.
type DispatchService struct {
	users    *UserService
	commands *CommandService
	backend  domain.CompletionBackend
	sender   domain.MessageSender
	logger   domain.Logger
	model    string
}

// NewDispatchService wires the dispatcher.
func NewDispatchService(users *UserService, commands *CommandService, backend domain.CompletionBackend, sender domain.MessageSender, logger domain.Logger, model string) *DispatchService {
	return &DispatchService{
		users:    users,
		commands: commands,
		backend:  backend,
		sender:   sender,
		logger:   logger,
		model:    model,
	}
}

// HandleMessage runs the full decision-and-reply sequence for one inbound
// message. Messages from the bot itself and status broadcasts are ignored.
func (s *DispatchService) HandleMessage(ctx context.Context, msg domain.InboundMessage) {
	if msg.FromMe || msg.From == domain.BroadcastAddress {
		return
	}

	body := strings.TrimSpace(msg.Body)
	if body == "" {
		return
	}

	if strings.HasPrefix(body, commandMarker) {
		if reply := s.commands.Handle(ctx, msg.From, body); reply != "" {
			s.reply(ctx, msg.From, reply)
		}
		return
	}

	u, err := s.admit(ctx, msg.From, time.Now())
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		s.reply(ctx, msg.From, replyNotRegistered)
		return
	case errors.Is(err, domain.ErrAccessExpired):
		s.reply(ctx, msg.From, replyAccessExpired)
		return
	case errors.Is(err, domain.ErrAccessInactive):
		s.reply(ctx, msg.From, replyAccessInactive)
		return
	case errors.Is(err, domain.ErrQuotaExhausted):
		s.reply(ctx, msg.From, replyQuotaExhausted)
		return
	}

	if err := s.sender.SendTyping(ctx, msg.From); err != nil {
		s.logger.Debug("Failed to send typing indicator", "error", err, "to", msg.From)
	}

	answer, err := s.backend.Complete(ctx, domain.CompletionRequest{
		SystemPrompt: coachSystemPrompt,
		Prompt:       body,
		Model:        s.model,
		MaxTokens:    completionMaxTokens,
		Temperature:  completionTemperature,
	})
	if err != nil {
		s.logger.Error("Completion call failed", err, "from", msg.From, "user", u.Number)
		answer = fallbackReplies[rand.Intn(len(fallbackReplies))]
	}
	s.reply(ctx, msg.From, answer)
}

// admit performs the admission decision for one AI-path message: lookup,
// usage metering, lazy expiry resolution, entitlement and quota gates, quota
// consumption. Usage is counted for every registered sender, even when a
// gate below rejects the message; unregistered senders leave no record
// behind.
func (s *DispatchService) admit(ctx context.Context, from string, now time.Time) (domain.User, error) {
	if _, ok := s.users.Find(from); !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	var revoked bool
	u, _ := s.users.Mutate(from, func(u *domain.User) {
		u.UsageCount++
		u.LastUsed = now
		revoked = domain.ResolveExpiry(u, now)
	})
	if revoked {
		_ = s.users.Persist()
		// One-time revocation notice, separate from the reply to the
		// rejected message.
		if err := s.sender.SendText(ctx, from, noticeAccessRevoked); err != nil {
			s.logger.Error("Failed to send revocation notice", err, "to", from)
		}
		return u, domain.ErrAccessExpired
	}
	if u.Status != domain.StatusPaid {
		return u, domain.ErrAccessInactive
	}
	if !u.HasQuota() {
		return u, domain.ErrQuotaExhausted
	}

	u, _ = s.users.Mutate(from, func(u *domain.User) {
		u.ConsumeQuota()
	})
	_ = s.users.Persist()
	return u, nil
}

func (s *DispatchService) reply(ctx context.Context, to, body string) {
	if err := s.sender.SendText(ctx, to, body); err != nil {
		s.logger.Error("Failed to send reply", err, "to", to)
	}
}
