package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tileforge/tileforge/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleWebSocket upgrades the connection and answers GenerateRequest
// messages with level payloads until the client goes away. One session can
// request any number of levels; all of them come from the shared cache.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	session := uuid.NewString()
	logger := s.logger.With(
		log.String("session", session),
		log.String("remote", conn.RemoteAddr().String()),
	)
	logger.Info("preview session opened")

	for {
		// Decoding over the base config keeps fields the message omits at
		// their preset values, matching the HTTP query semantics.
		req := GenerateRequest{Config: s.config.BaseLevel}
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("preview session dropped", log.Error(err))
			} else {
				logger.Info("preview session closed")
			}
			return
		}

		lvl, err := s.cache.Get(req.Seed, req.Config)
		if err != nil {
			logger.Warn("generation failed",
				log.Uint64("seed", req.Seed), log.Error(err))
			if werr := conn.WriteJSON(map[string]string{"error": err.Error()}); werr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(levelResponse(lvl)); err != nil {
			logger.Warn("write level failed", log.Error(err))
			return
		}
	}
}
