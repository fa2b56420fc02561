package wire

import (
	"syndl/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePlayer(r chi.Router, playerHandler *adaptor.PlayerHandler) {
	// Player sessions are public, the gate itself enforces access.
	r.Post("/api/player/{movieId}/sessions", playerHandler.CreateSession)

	r.Route("/api/player/sessions/{sessionId}", func(r chi.Router) {
		r.Get("/", playerHandler.GetSession)
		r.Delete("/", playerHandler.CloseSession)
		r.Post("/start", playerHandler.StartPreview)
		r.Post("/position", playerHandler.ReportPosition)
		r.Post("/preview-ended", playerHandler.PreviewEnded)
		r.Post("/seek", playerHandler.Seek)
		r.Post("/unlock", playerHandler.Unlock)
		r.Post("/retry", playerHandler.Retry)
		r.Post("/cancel", playerHandler.CancelRetry)

		// The locker redirects the consumer back here, so GET must work too.
		r.Get("/callback", playerHandler.Callback)
		r.Post("/callback", playerHandler.Callback)
	})
}
