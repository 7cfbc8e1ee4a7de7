package domain

import (
	"context"
	"time"
)

// UserRepository defines the load/save contract for the durable user store.
// Save overwrites the whole collection; Load returns it in stored order.
type UserRepository interface {
	Load() ([]*User, error)
	Save(users []*User) error
}

// MessageSender is the outbound half of the chat transport.
type MessageSender interface {
	SendText(ctx context.Context, to, body string) error
	SendTyping(ctx context.Context, to string) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetOwnerNumber() string
	GetGatewayURL() string
	GetGatewayToken() string
	GetVertexProjectID() string
	GetVertexLocation() string
	GetModelName() string
	GetUsersFile() string
	GetSessionDir() string
	GetSessionBackupDir() string
	GetUserStore() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSweepInterval() time.Duration
	GetBackupInterval() time.Duration
}
