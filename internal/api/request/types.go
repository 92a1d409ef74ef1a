package request

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/turnherald/internal/model"
)

// FlexibleInt decodes from either a JSON number or a numeric string;
// the upstream service is inconsistent about which it sends
type FlexibleInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f = FlexibleInt(n)
	return nil
}

// TurnEvent is the inbound webhook payload. The upstream service posts
// gameName, userName and round, plus optional gameId, civName and
// leaderName, as either JSON or form data.
type TurnEvent struct {
	GameID     string      `json:"gameId"`
	GameName   string      `json:"gameName"`
	UserName   string      `json:"userName"`
	Round      FlexibleInt `json:"round"`
	CivName    string      `json:"civName"`
	LeaderName string      `json:"leaderName"`
}

// ToModel converts the wire payload to a model event. Events without a
// gameId fall back to the game name as the tracking key, matching the
// upstream service's older payloads.
func (e TurnEvent) ToModel() model.TurnEvent {
	gameID := e.GameID
	if gameID == "" {
		gameID = e.GameName
	}
	return model.TurnEvent{
		GameID:          model.GameID(gameID),
		DisplayName:     e.GameName,
		CurrentPlayerID: e.UserName,
		RoundNumber:     int(e.Round),
		CivName:         e.CivName,
		LeaderName:      e.LeaderName,
	}
}

// ParseJSON decodes a JSON webhook body
func ParseJSON(data []byte) (TurnEvent, error) {
	var ev TurnEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return TurnEvent{}, err
	}
	return ev, nil
}
