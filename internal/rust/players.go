package rust

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Player is one entry from the `playerlist` command.
type Player struct {
	SteamID          string  `json:"SteamID"`
	OwnerSteamID     string  `json:"OwnerSteamID"`
	DisplayName      string  `json:"DisplayName"`
	Ping             int     `json:"Ping"`
	Address          string  `json:"Address"`
	ConnectedSeconds int     `json:"ConnectedSeconds"`
	Health           float64 `json:"Health"`
}

func ParsePlayerList(resp string) ([]Player, error) {
	// resp = [{"SteamID":"7656...","DisplayName":"Player1","Ping":42,...}]
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return nil, nil
	}

	var players []Player
	if err := json.Unmarshal([]byte(resp), &players); err != nil {
		return nil, fmt.Errorf("invalid playerlist output: %w", err)
	}
	return players, nil
}

// Names extracts the display names in listing order.
func Names(players []Player) []string {
	var out []string
	for _, p := range players {
		out = append(out, p.DisplayName)
	}
	return out
}

func DiffAdded(old, new []string) []string {
	set := make(map[string]struct{})
	for _, o := range old {
		set[o] = struct{}{}
	}

	var out []string
	for _, n := range new {
		if _, ok := set[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

func DiffRemoved(old, new []string) []string {
	set := make(map[string]struct{})
	for _, n := range new {
		set[n] = struct{}{}
	}

	var out []string
	for _, o := range old {
		if _, ok := set[o]; !ok {
			out = append(out, o)
		}
	}
	return out
}
