package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wa-coach-bot/internal/domain"
)

const defaultGrantDays = 30

// CommandService parses slash commands and maps them onto the user store.
// The owner and everyone else get disjoint command sets, selected by the
// sender's address.
type CommandService struct {
	users  *UserService
	sender domain.MessageSender
	logger domain.Logger
	owner  string
}

// NewCommandService creates the command router. ownerNumber is the bare
// number from configuration; the gateway address form is derived here.
func NewCommandService(users *UserService, sender domain.MessageSender, logger domain.Logger, ownerNumber string) *CommandService {
	return &CommandService{
		users:  users,
		sender: sender,
		logger: logger,
		owner:  ownerNumber + domain.UserSuffix,
	}
}

// Handle routes one slash-command body and returns the reply text. An empty
// reply means nothing should be sent.
func (s *CommandService) Handle(ctx context.Context, from, body string) string {
	parts := strings.Fields(body)
	if len(parts) == 0 {
		return ""
	}
	command := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	if from == s.owner {
		return s.handleOwner(ctx, command, args)
	}
	return s.handleUser(ctx, from, command, args)
}

func (s *CommandService) handleOwner(ctx context.Context, command string, args []string) string {
	switch command {
	case "add":
		if len(args) < 2 {
			return "❌ Format: /add [nomor] [hari] [kuota?]"
		}

		target := args[0] + domain.UserSuffix
		days, err := strconv.Atoi(args[1])
		if err != nil || days <= 0 {
			days = defaultGrantDays
		}
		var quota *int
		if len(args) >= 3 {
			if q, err := strconv.Atoi(args[2]); err == nil {
				quota = &q
			}
		}

		s.users.Grant(target, time.Now(), days, quota)
		s.logger.Info("Access granted", "user", target, "days", days)

		quotaLabel := "Unlimited"
		if quota != nil {
			quotaLabel = strconv.Itoa(*quota)
		}
		return fmt.Sprintf("✅ User %s ditambahkan.\nMasa aktif: %d hari.\nQuota: %s", target, days, quotaLabel)

	case "cek":
		if len(args) < 1 {
			return "❌ Format: /cek [nomor]"
		}

		target := args[0] + domain.UserSuffix
		u, ok := s.users.Find(target)
		if !ok {
			return "❌ User tidak ditemukan."
		}

		status := string(u.Status)
		if u.Status == domain.StatusPaid {
			status = fmt.Sprintf("Aktif (%d hari tersisa)", domain.RemainingDays(&u, time.Now()))
		}
		return fmt.Sprintf("📊 User %s\nStatus: %s\nKuota: %s\nDigunakan: %dx", target, status, u.QuotaLabel(), u.UsageCount)

	case "list":
		active, expired, revoked := s.users.Counts(time.Now())
		for _, u := range revoked {
			s.notifyRevoked(ctx, u.Number)
		}
		return fmt.Sprintf("📋 Daftar User:\nAktif: %d user\nKadaluarsa: %d user", active, expired)

	case "help":
		return "🤖 Owner Commands:\n/add [nomor] [hari] [kuota] - Tambah user\n/cek [nomor] - Cek status user\n/list - List semua user\n/help - Tampilkan bantuan"

	default:
		return "❌ Command tidak dikenali. Ketik /help untuk bantuan."
	}
}

func (s *CommandService) handleUser(ctx context.Context, from, command string, args []string) string {
	switch command {
	case "start", "help":
		return "🤖 AI Coaching Bot\n\nKirim pesan untuk berbicara dengan AI coach!\n\nCommands:\n/status - Cek status akun\n/help - Tampilkan bantuan"

	case "status":
		if _, ok := s.users.Find(from); !ok {
			return "❌ Anda belum terdaftar. Hubungi owner untuk akses."
		}

		now := time.Now()
		var revoked bool
		u, _ := s.users.Mutate(from, func(u *domain.User) {
			revoked = domain.ResolveExpiry(u, now)
		})
		if revoked {
			_ = s.users.Persist()
			s.notifyRevoked(ctx, from)
		}

		if u.Status != domain.StatusPaid {
			return "⛔ Akses Anda tidak aktif. Hubungi owner untuk perpanjangan."
		}

		quotaText := "unlimited"
		if u.Quota != nil {
			quotaText = fmt.Sprintf("%d pesan tersisa", *u.Quota)
		}
		return fmt.Sprintf("✅ Status Akun:\nMasa aktif: %d hari tersisa\nKuota: %s\nTotal penggunaan: %dx",
			domain.RemainingDays(&u, now), quotaText, u.UsageCount)

	default:
		return "❌ Command tidak dikenali. Ketik /help untuk bantuan."
	}
}

// notifyRevoked sends the one-time access revoked notice. Send failures are
// logged and dropped; the command reply still goes out.
func (s *CommandService) notifyRevoked(ctx context.Context, to string) {
	if err := s.sender.SendText(ctx, to, noticeAccessRevoked); err != nil {
		s.logger.Error("Failed to send revocation notice", err, "to", to)
	}
}
