package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tashanwin/club-settle-go/internal/metrics"
	"github.com/tashanwin/club-settle-go/internal/settle"
)

// wsConn serializes writes to one socket. Tick callbacks run on the round's
// goroutine while a cash-out resolution can fire from the read loop, so
// concurrent writes are possible without this lock.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// handleCrashStream upgrades to WebSocket and streams a live round: one
// "tick" frame per multiplier step, a terminal "resolved" frame, then the
// socket closes. The client may send {"type":"cash_out"} at any point.
//
// Dropping the socket does not abandon the round; the ramp runs to the
// crash point and the result stays queryable by round id.
func (s *Server) handleCrashStream(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "malformed round id")
		return
	}
	h, ok := s.lookupLive(id)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, ErrTypeRoundNotFound, "no live round with that id")
		return
	}

	raw, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", "round_id", id, "err", err)
		return
	}
	conn := &wsConn{conn: raw}
	done := make(chan struct{})

	h.OnTick(func(multiplier float64) {
		if err := conn.writeJSON(wsTick{Type: "tick", Multiplier: multiplier}); err != nil {
			s.log.Debug("tick write failed", "round_id", id, "err", err)
		}
	})
	h.OnResolved(func(res settle.SettlementResult) {
		if err := conn.writeJSON(wsResolved{Type: "resolved", Result: s.settleResponse(res, "", 0)}); err != nil {
			s.log.Debug("resolution write failed", "round_id", id, "err", err)
		}
		close(done)
	})

	// Read loop: the only meaningful client frame is a cash-out request.
	go func() {
		for {
			var msg wsClientMessage
			if err := raw.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type == "cash_out" {
				accepted := h.CashOut()
				metrics.CashOuts.WithLabelValues(strconv.FormatBool(accepted)).Inc()
				s.log.Debug("socket cash-out", "round_id", id, "accepted", accepted)
			}
		}
	}()

	<-done
	_ = raw.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "round resolved"),
		time.Now().Add(time.Second))
	raw.Close()
}
