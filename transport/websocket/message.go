package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

const (
	actionTableNew      = "table:new"
	actionTableJoin     = "table:join"
	actionSettingsSize  = "settings:size"
	actionPlayerAdd     = "player:add"
	actionPlayerRemove  = "player:remove"
	actionSettingsApply = "settings:apply"
	actionGameNew       = "game:new"
	actionEdgeSelect    = "edge:select"
	actionNotification  = "notification"
	actionError         = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	TableID  string        `json:"table_id,omitempty"`
	Size     int           `json:"size,omitempty"`
	EdgeID   entity.EdgeID `json:"edge_id,omitempty"`
	PlayerID int           `json:"player_id,omitempty"`
}

type ResponsePayload struct {
	Table        *entity.Table        `json:"table,omitempty"`
	Move         *entity.MoveResult   `json:"move,omitempty"`
	Notification *entity.Notification `json:"notification,omitempty"`
	Error        string               `json:"error,omitempty"`
}
