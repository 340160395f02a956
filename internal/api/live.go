package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/erazemk/swiftship/internal/live"
	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// LiveHandler pushes package snapshots over a websocket.
type LiveHandler struct {
	Accounts *service.Accounts
	Ledger   *service.Ledger
	Hub      *live.Hub
}

// Snapshot is one complete view sent to a live client. Each replaces the
// previous one.
type Snapshot struct {
	Account  *model.Account  `json:"account"`
	Packages []model.Package `json:"packages"`
	At       time.Time       `json:"at"`
}

// Packages handles GET /api/live/packages[?active=true]. A snapshot is sent
// on connect and after every change visible to the account.
func (h *LiveHandler) Packages(w http.ResponseWriter, r *http.Request) {
	acct := GetAccount(r.Context())
	claims := GetClaims(r.Context())
	active, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var filter live.Filter
	if !acct.IsAdmin() {
		filter = live.ForOwner(acct.ID)
	}
	sub := h.Hub.Subscribe(filter)
	defer sub.Close()

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-closed:
			return
		case _, ok := <-sub.C:
			if !ok {
				return
			}
			current, err := h.Accounts.ResolveSession(ctx, claims)
			if err != nil || current == nil {
				slog.Warn("live session ended", "account_id", acct.ID, "error", err)
				return
			}
			packages, err := h.Ledger.ListFor(ctx, current, service.ListOptions{ActiveOnly: active})
			if err != nil {
				slog.Error("failed to build live snapshot", "account_id", acct.ID, "error", err)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(Snapshot{Account: current, Packages: packages, At: time.Now().UTC()}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages and closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("live connection closed unexpectedly", "error", err)
			}
			return
		}
	}
}
