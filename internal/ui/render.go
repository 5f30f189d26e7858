package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/foxcybersec/rust-rcon-commandline/internal/rcon"
)

var diagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))

// RenderResponse turns a command response into the one-shot CLI output.
//
// raw emits the server's reply frame byte for byte. Otherwise the Message
// text is emitted, with identifier and type appended as dimmed diagnostic
// lines when verbose is set.
func RenderResponse(resp *rcon.Response, raw, verbose bool) string {
	if raw {
		return string(resp.Raw)
	}

	if !verbose {
		return resp.Message
	}

	var b strings.Builder
	b.WriteString(resp.Message)
	b.WriteString("\n")
	b.WriteString(diagStyle.Render(fmt.Sprintf("identifier: %d", resp.Identifier)))
	b.WriteString("\n")
	b.WriteString(diagStyle.Render("type: " + resp.Type))
	if resp.Stack != "" {
		b.WriteString("\n")
		b.WriteString(diagStyle.Render("stack: " + resp.Stack))
	}
	return b.String()
}
