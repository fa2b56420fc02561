package wire

import (
	"syndl/internal/adaptor"
	"syndl/internal/usecase"
	"syndl/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/logout", authHandler.Logout)

	r.With(middleware.AdminSession(service.Auth, log)).
		Put("/api/auth/password", authHandler.ChangePassword)
}
