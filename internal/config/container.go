package config

import (
	"wa-coach-bot/internal/domain"
	"wa-coach-bot/internal/infra/gateway"
	"wa-coach-bot/internal/repository"
	"wa-coach-bot/internal/service"
	"wa-coach-bot/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger

	UserRepository domain.UserRepository
	Sender         domain.MessageSender

	Users      *service.UserService
	Commands   *service.CommandService
	AI         *service.AIService
	Dispatcher *service.DispatchService
	Backup     *service.SessionBackupService
	Scheduler  *service.SchedulerService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	userRepo := newUserRepository(config, appLogger)
	sender := gateway.NewClient(config, appLogger)

	users := service.NewUserService(userRepo, appLogger)
	commands := service.NewCommandService(users, sender, appLogger, config.GetOwnerNumber())
	ai := service.NewAIService(config, appLogger)
	dispatcher := service.NewDispatchService(users, commands, ai, sender, appLogger, config.GetModelName())
	backup := service.NewSessionBackupService(config.GetSessionDir(), config.GetSessionBackupDir(), appLogger)
	scheduler := service.NewSchedulerService(users, sender, backup, appLogger,
		config.GetSweepInterval(), config.GetBackupInterval())

	return &Container{
		Config:         config,
		Logger:         appLogger,
		UserRepository: userRepo,
		Sender:         sender,
		Users:          users,
		Commands:       commands,
		AI:             ai,
		Dispatcher:     dispatcher,
		Backup:         backup,
		Scheduler:      scheduler,
	}
}

// newUserRepository selects the durable store from USER_STORE.
func newUserRepository(config domain.Config, appLogger domain.Logger) domain.UserRepository {
	if config.GetUserStore() == "supabase" {
		client := repository.NewSupabaseClient(config, appLogger)
		if err := client.Initialize(); err != nil {
			appLogger.Warn("Supabase initialization failed, falling back to file store", "error", err)
		} else {
			return repository.NewSupabaseUserRepository(client, appLogger)
		}
	}
	return repository.NewFileUserRepository(config.GetUsersFile(), appLogger)
}
