package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StreamOrderEvents handles GET /api/v1/orders/stream. It subscribes the
// authenticated user to their order events and relays them as server-sent
// events until the client disconnects. Events published while nobody is
// connected are not replayed. Browser EventSource clients pass the access
// token as a token query parameter instead of the Authorization header.
func (s *Server) StreamOrderEvents(ctx echo.Context) error {
	principal := principalFrom(ctx)

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	sub := s.hub.Subscribe(principal.UserID)
	defer sub.Close()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case envelope, ok := <-sub.Events():
			if !ok {
				return nil
			}

			payload, err := json.Marshal(envelope.Data)
			if err != nil {
				continue
			}

			if _, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", envelope.Event, payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
