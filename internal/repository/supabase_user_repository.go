package repository

import (
	"encoding/json"
	"sort"
	"time"

	"wa-coach-bot/internal/domain"
	apperrors "wa-coach-bot/pkg/errors"
)

const userTable = "bot_users"

// SupabaseUserRepository keeps the user collection in a Supabase table. It
// satisfies the same load/save contract as the JSON file store, for
// deployments where the bot host has no durable disk.
type SupabaseUserRepository struct {
	supabaseClient *SupabaseClient
	logger         domain.Logger
}

// userRow mirrors domain.User with the table's snake_case columns.
type userRow struct {
	Number         string     `json:"number"`
	Status         string     `json:"status"`
	ExpireAt       *time.Time `json:"expire_at,omitempty"`
	Quota          *int       `json:"quota,omitempty"`
	UsageCount     int        `json:"usage_count"`
	ExpiryNotified bool       `json:"expiry_notified"`
	RegisteredAt   time.Time  `json:"registered_at"`
	LastUpdated    time.Time  `json:"last_updated"`
	LastUsed       time.Time  `json:"last_used"`
}

// NewSupabaseUserRepository creates a Supabase-backed user repository.
func NewSupabaseUserRepository(supabaseClient *SupabaseClient, logger domain.Logger) domain.UserRepository {
	return &SupabaseUserRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Load fetches every row and returns them ordered by registration time.
func (r *SupabaseUserRepository) Load() ([]*domain.User, error) {
	client := r.supabaseClient.Client()
	if client == nil {
		return nil, apperrors.NewStorageError("supabase client not initialized", nil)
	}

	data, _, err := client.From(userTable).
		Select("*", "", false).
		Execute()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load users", err)
	}

	var rows []userRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, apperrors.NewStorageError("failed to unmarshal users", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, rowToUser(row))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].RegisteredAt.Before(users[j].RegisteredAt)
	})

	r.logger.Info("Loaded users from supabase", "count", len(users))
	return users, nil
}

// Save upserts every record keyed by number. Rows removed from the in-memory
// collection are not deleted remotely; the bot never deletes users.
func (r *SupabaseUserRepository) Save(users []*domain.User) error {
	client := r.supabaseClient.Client()
	if client == nil {
		return apperrors.NewStorageError("supabase client not initialized", nil)
	}

	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userToRow(u))
	}

	_, _, err := client.From(userTable).
		Upsert(rows, "number", "", "").
		Execute()
	if err != nil {
		return apperrors.NewStorageError("failed to save users", err)
	}
	return nil
}

func rowToUser(row userRow) *domain.User {
	return &domain.User{
		Number:         row.Number,
		Status:         domain.Status(row.Status),
		ExpireAt:       row.ExpireAt,
		Quota:          row.Quota,
		UsageCount:     row.UsageCount,
		ExpiryNotified: row.ExpiryNotified,
		RegisteredAt:   row.RegisteredAt,
		LastUpdated:    row.LastUpdated,
		LastUsed:       row.LastUsed,
	}
}

func userToRow(u *domain.User) userRow {
	return userRow{
		Number:         u.Number,
		Status:         string(u.Status),
		ExpireAt:       u.ExpireAt,
		Quota:          u.Quota,
		UsageCount:     u.UsageCount,
		ExpiryNotified: u.ExpiryNotified,
		RegisteredAt:   u.RegisteredAt,
		LastUpdated:    u.LastUpdated,
		LastUsed:       u.LastUsed,
	}
}
