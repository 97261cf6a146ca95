package http

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/lively-votes/api/internal/core/ports"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// voteEventName matches what frontends subscribe to for tally
// invalidation.
const voteEventName = "votes:caste"

type wsEvent struct {
	Event  string `json:"event"`
	PollID int64  `json:"pollId"`
}

type RealtimeHandler struct {
	broker         ports.Broker
	originPatterns []string
}

func NewRealtimeHandler(broker ports.Broker, originPatterns []string) *RealtimeHandler {
	return &RealtimeHandler{
		broker:         broker,
		originPatterns: originPatterns,
	}
}

// Stream upgrades the connection and forwards tally-change events
// until the client goes away. There is no acknowledgement and no
// replay; a client disconnected at emission time refetches on its next
// view.
func (h *RealtimeHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		logrus.WithError(err).Debug("websocket accept failed")
		return
	}

	subscriberID := uuid.NewString()
	events := h.broker.Subscribe(subscriberID)
	defer h.broker.Unsubscribe(subscriberID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Read pump: we expect nothing from the client, but reading is how
	// we learn the connection closed.
	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case <-readErr:
			conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case event, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "closed")
				return
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, wsEvent{Event: voteEventName, PollID: event.PollID})
			cancelWrite()
			if err != nil {
				conn.Close(websocket.StatusNormalClosure, "write failed")
				return
			}
		}
	}
}
