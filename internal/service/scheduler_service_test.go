package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wa-coach-bot/internal/domain"
)

func newSchedulerFixture(t *testing.T, repo *mockUserRepo) (*SchedulerService, *UserService, *mockSender) {
	t.Helper()
	users := newUserService(repo)
	sender := newMockSender()
	backup := NewSessionBackupService(t.TempDir(), t.TempDir(), NewMockLogger())
	scheduler := NewSchedulerService(users, sender, backup, NewMockLogger(), 6*time.Hour, time.Hour)
	return scheduler, users, sender
}

func TestSchedulerService_SweepRevokesAndNotifies(t *testing.T) {
	now := time.Now()
	lapsed := now.Add(-time.Hour)
	future := now.Add(20 * 24 * time.Hour)
	repo := &mockUserRepo{users: []*domain.User{
		{Number: "628100" + domain.UserSuffix, Status: domain.StatusPaid, ExpireAt: &lapsed},
		{Number: "628200" + domain.UserSuffix, Status: domain.StatusPaid, ExpireAt: &future},
	}}
	scheduler, users, sender := newSchedulerFixture(t, repo)

	scheduler.Sweep(context.Background(), now)

	revoked := sender.sentTo("628100" + domain.UserSuffix)
	if len(revoked) != 1 || revoked[0] != noticeAccessRevoked {
		t.Fatalf("expected one revocation notice, got %v", revoked)
	}
	if got := sender.sentTo("628200" + domain.UserSuffix); len(got) != 0 {
		t.Fatalf("expected no notice for the healthy user, got %v", got)
	}

	u, _ := users.Find("628100" + domain.UserSuffix)
	if u.Status != domain.StatusExpired || !u.ExpiryNotified {
		t.Fatalf("expected expired+notified record, got status=%q notified=%v", u.Status, u.ExpiryNotified)
	}
	if repo.saveCalls == 0 {
		t.Fatalf("expected the sweep to persist the transition")
	}
}

func TestSchedulerService_ReminderFiresOnce(t *testing.T) {
	now := time.Now()
	expire := now.Add(7 * 24 * time.Hour)
	repo := &mockUserRepo{users: []*domain.User{
		{Number: "628100" + domain.UserSuffix, Status: domain.StatusPaid, ExpireAt: &expire},
	}}
	scheduler, users, sender := newSchedulerFixture(t, repo)

	scheduler.Sweep(context.Background(), now)
	// Same threshold again a few hours later, still inside the 7-day window.
	scheduler.Sweep(context.Background(), now.Add(5*time.Hour))

	got := sender.sentTo("628100" + domain.UserSuffix)
	want := fmt.Sprintf(noticeExpiryReminder, 7)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected a single 7-day reminder %q, got %v", want, got)
	}

	u, _ := users.Find("628100" + domain.UserSuffix)
	if !u.ExpiryNotified {
		t.Fatalf("expected the reminder flag to be set before delivery")
	}
}

func TestSchedulerService_ReminderRearmsAfterExtension(t *testing.T) {
	now := time.Now()
	expire := now.Add(7 * 24 * time.Hour)
	repo := &mockUserRepo{users: []*domain.User{
		{Number: "628100" + domain.UserSuffix, Status: domain.StatusPaid, ExpireAt: &expire},
	}}
	scheduler, users, sender := newSchedulerFixture(t, repo)

	scheduler.Sweep(context.Background(), now)

	// Extension clears the flag and pushes the expiry out.
	users.Grant("628100"+domain.UserSuffix, now, 30, nil)
	scheduler.Sweep(context.Background(), now.Add(6*time.Hour))

	u, _ := users.Find("628100" + domain.UserSuffix)
	if u.ExpiryNotified {
		t.Fatalf("expected the reminder flag to be cleared after extension")
	}

	// Back at the 7-day mark of the new period the reminder fires again.
	scheduler.Sweep(context.Background(), now.Add(23*24*time.Hour))
	got := sender.sentTo("628100" + domain.UserSuffix)
	if len(got) != 2 {
		t.Fatalf("expected a second reminder after the extension, got %v", got)
	}
}

func TestSchedulerService_OneFailedSendDoesNotBlockOthers(t *testing.T) {
	now := time.Now()
	lapsed := now.Add(-time.Minute)
	repo := &mockUserRepo{users: []*domain.User{
		{Number: "628100" + domain.UserSuffix, Status: domain.StatusPaid, ExpireAt: &lapsed},
		{Number: "628200" + domain.UserSuffix, Status: domain.StatusPaid, ExpireAt: &lapsed},
		{Number: "628300" + domain.UserSuffix, Status: domain.StatusPaid, ExpireAt: &lapsed},
	}}
	scheduler, users, sender := newSchedulerFixture(t, repo)
	sender.failTo["628200"+domain.UserSuffix] = true

	scheduler.Sweep(context.Background(), now)

	for _, n := range []string{"628100", "628300"} {
		if got := sender.sentTo(n + domain.UserSuffix); len(got) != 1 {
			t.Fatalf("expected notice for %s despite the failing peer, got %v", n, got)
		}
	}
	// The failed delivery never rolls back the state transition.
	u, _ := users.Find("628200" + domain.UserSuffix)
	if u.Status != domain.StatusExpired {
		t.Fatalf("expected failed-delivery user to stay expired, got %q", u.Status)
	}
}
