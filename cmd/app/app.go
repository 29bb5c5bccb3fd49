package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventorg/smart-event-api/internal/api"
	"github.com/eventorg/smart-event-api/internal/config"
	"github.com/eventorg/smart-event-api/internal/db"
	"github.com/eventorg/smart-event-api/internal/logger"
	"github.com/eventorg/smart-event-api/internal/repository"
	"github.com/eventorg/smart-event-api/internal/repository/dao"
	"github.com/eventorg/smart-event-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	if err = seedAdmin(postgresDB, conf); err != nil {
		return fmt.Errorf("failed to seed admin account -> %w", err)
	}

	s := api.NewServer(conf, postgresDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// seedAdmin makes sure an administrator exists before the server accepts
// requests. The credential comes from config/env, never from source.
func seedAdmin(db *gorm.DB, conf *config.AppConfig) error {
	repo := repository.NewAccountRepository(dao.NewAccountDAO(db))
	svc := service.NewAuthService(repo)

	return svc.EnsureAdmin(context.Background(), conf.Admin.Username, conf.Admin.Password)
}
