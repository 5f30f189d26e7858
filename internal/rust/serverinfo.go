package rust

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ServerInfo is the document returned by the `serverinfo` command.
type ServerInfo struct {
	Hostname        string  `json:"Hostname"`
	MaxPlayers      int     `json:"MaxPlayers"`
	Players         int     `json:"Players"`
	Queued          int     `json:"Queued"`
	Joining         int     `json:"Joining"`
	EntityCount     int     `json:"EntityCount"`
	GameTime        string  `json:"GameTime"`
	Uptime          int     `json:"Uptime"`
	Map             string  `json:"Map"`
	Framerate       float64 `json:"Framerate"`
	Memory          int     `json:"Memory"`
	Collections     int     `json:"Collections"`
	NetworkIn       int     `json:"NetworkIn"`
	NetworkOut      int     `json:"NetworkOut"`
	Restarting      bool    `json:"Restarting"`
	SaveCreatedTime string  `json:"SaveCreatedTime"`
}

func ParseServerInfo(resp string) (ServerInfo, error) {
	// resp = {"Hostname":"My Server","MaxPlayers":100,"Players":12,...}
	var info ServerInfo
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp)), &info); err != nil {
		return ServerInfo{}, fmt.Errorf("invalid serverinfo output: %w", err)
	}
	return info, nil
}

// FormatUptime renders the Uptime seconds counter as "1d 2h 3m".
func FormatUptime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
