package adaptor

import (
	"syndl/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Movie  *MovieHandler
	Player *PlayerHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Movie:  NewMovieHandler(service.Catalog, log),
		Player: NewPlayerHandler(service.Gate, log),
	}
}
