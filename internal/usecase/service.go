package usecase

import (
	"time"

	"syndl/internal/data/repository"
	"syndl/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog CatalogService
	Grant   GrantService
	Gate    GateService
	Auth    AuthService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	clock := NewClock()

	catalog := NewCatalogService(repo, clock, log)
	grants := NewGrantService(repo.Local, clock, time.Duration(config.Player.UnlockTTLHours)*time.Hour, log)
	gates := NewGateService(catalog, grants, clock, GateConfig{
		PreviewSeconds: config.Player.PreviewSeconds,
		PollChecks:     config.Player.PollChecks,
		PollInterval:   time.Duration(config.Player.PollIntervalSec) * time.Second,
		SessionTTL:     time.Duration(config.Player.SessionTTLMin) * time.Minute,
	}, log)
	auth := NewAuthService(repo.Local, config.Admin.Username, config.Admin.Password, log)

	return &Service{
		Catalog: catalog,
		Grant:   grants,
		Gate:    gates,
		Auth:    auth,
	}
}
