package ws

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventConvictionStale = "conviction_stale"

type ConvictionStaleEvent struct {
	Type         string `json:"type"`
	OccupationID string `json:"occupationId"`
	Timestamp    string `json:"timestamp"`
}

// NotifyConvictionStale tells the user's open sessions to refetch the breakdown for an occupation.
func (h *Hub) NotifyConvictionStale(userID uuid.UUID, occupationCode string) {
	if h == nil || userID == uuid.Nil {
		return
	}
	code := strings.TrimSpace(occupationCode)
	if code == "" {
		return
	}

	b, err := json.Marshal(ConvictionStaleEvent{
		Type:         EventConvictionStale,
		OccupationID: code,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Error("encode ws event", zap.Error(err))
		return
	}
	h.SendTo(userID, b)
}
