package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foxcybersec/rust-rcon-commandline/internal/rcon"
	"github.com/foxcybersec/rust-rcon-commandline/internal/rust"
)

type tickMsg time.Time

type Colors struct {
	text       string
	textDimmed string
	border     string
	borderHot  string

	green  string
	yellow string
	red    string
}

type Model struct {
	rcon *rcon.Client

	host string

	info      rust.ServerInfo
	players   []rust.Player
	prevNames []string

	logs []string
	err  error

	input textinput.Model

	refreshRate int
	refreshIn   int

	colors *Colors

	width  int
	height int
}

func NewModel(client *rcon.Client, host string, refreshRateInSeconds int) Model {
	c := &Colors{
		text:       "#ce422b",
		textDimmed: "#555555",
		border:     "#666666",
		borderHot:  "#ce422b",
		green:      "#37b24d",
		yellow:     "#f59f00",
		red:        "#f03e3e",
	}

	ti := textinput.New()
	ti.Placeholder = "Type commands here"
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	return Model{
		rcon:        client,
		host:        host,
		logs:        make([]string, 0),
		colors:      c,
		refreshRate: refreshRateInSeconds,
		refreshIn:   0,
		input:       ti,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(1*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m *Model) AppendLog(line string) {
	for _, l := range strings.Split(strings.TrimRight(line, "\n"), "\n") {
		m.logs = append(m.logs, l)
	}
}

// refresh pulls a fresh serverinfo and playerlist over the session. The
// client is strictly sequential, and tea.Model updates run one at a time, so
// issuing the commands inline here is safe.
func (m *Model) refresh() {
	resp, err := m.rcon.Execute("serverinfo")
	if err != nil {
		m.err = err
		return
	}
	info, err := rust.ParseServerInfo(resp.Message)
	if err != nil {
		m.err = err
		return
	}
	m.info = info

	resp, err = m.rcon.Execute("playerlist")
	if err != nil {
		m.err = err
		return
	}
	players, err := rust.ParsePlayerList(resp.Message)
	if err != nil {
		m.err = err
		return
	}

	current := rust.Names(players)
	for _, p := range rust.DiffAdded(m.prevNames, current) {
		m.AppendLog(p + " joined the server")
	}
	for _, p := range rust.DiffRemoved(m.prevNames, current) {
		m.AppendLog(p + " left the server")
	}
	m.prevNames = current
	m.players = players
	m.err = nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refreshIn--
		if m.refreshIn <= 0 {
			m.refresh()
			m.refreshIn = m.refreshRate
		}
		return m, tickCmd()

	case tea.KeyMsg:
		m.input, cmd = m.input.Update(msg)

		switch msg.String() {

		case "enter":
			if m.input.Value() != "" {
				currentCmd := m.input.Value()
				m.AppendLog("> " + currentCmd)
				m.input.SetValue("")

				resp, err := m.rcon.Execute(currentCmd)
				if err != nil {
					m.err = err
					return m, nil
				}
				m.err = nil
				if resp.Message != "" {
					m.AppendLog(resp.Message)
				}
			}
			return m, nil

		case "ctrl+l":
			m.logs = nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.width < 70 || m.height < 18 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Bold(true).
			Foreground(lipgloss.Color(m.colors.yellow)).
			AlignVertical(lipgloss.Center).
			AlignHorizontal(lipgloss.Center).
			Render("window is too small for proper rendering")
	}

	// ------------- header ------------------
	headerWidth := m.width
	titleBox := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.colors.text)).
		Width(headerWidth / 3).
		Align(lipgloss.Center).
		SetString("Rust RCON console")
	refreshBox := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.colors.text)).
		Width(headerWidth / 3).
		Align(lipgloss.Right).
		SetString(fmt.Sprintf("Refresh in: %d", m.refreshIn))
	hostBox := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.textDimmed)).
		Width(headerWidth / 3).
		SetString(m.host)
	headerBox := lipgloss.JoinHorizontal(
		lipgloss.Center,
		hostBox.Render(),
		titleBox.Render(),
		refreshBox.Render(),
	)

	// ------------- footer ------------------
	var footerBox lipgloss.Style
	if m.err != nil {
		footerBox = lipgloss.NewStyle().
			SetString(m.err.Error()).Foreground(lipgloss.Color(m.colors.red))
	} else {
		footerBox = lipgloss.NewStyle().
			SetString("[esc] Quit | [ctrl+l] Clear logs | [enter] Send command").
			Foreground(lipgloss.Color(m.colors.textDimmed))
	}

	// ------------- main content ------------------
	contentHeight := m.height - 4
	leftColumnWidth := int(float64(m.width) * 0.3)
	rightColumnWidth := m.width - leftColumnWidth - 4

	infoBoxHeight := int(float64(contentHeight) * 0.4)
	playerBoxHeight := contentHeight - infoBoxHeight - 2

	// ---------- left column ------------
	infoBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.colors.border)).
		PaddingLeft(1).
		PaddingRight(1).
		Width(leftColumnWidth).
		Height(infoBoxHeight)

	infoItemLabel := lipgloss.NewStyle().
		Width(leftColumnWidth/2 - 2).
		Align(lipgloss.Left)
	infoItemValue := lipgloss.NewStyle().
		Bold(true).
		Width(leftColumnWidth / 2).
		Align(lipgloss.Right)
	separatorStyle := lipgloss.NewStyle().
		Width(leftColumnWidth).
		Height(1).
		Foreground(lipgloss.Color(m.colors.textDimmed))

	slotsValue := fmt.Sprintf("%d/%d", m.info.Players, m.info.MaxPlayers)
	if m.info.Queued > 0 {
		slotsValue += fmt.Sprintf(" (+%d queued)", m.info.Queued)
	}

	var slotsFill float64
	if m.info.MaxPlayers > 0 {
		slotsFill = float64(m.info.Players) / float64(m.info.MaxPlayers)
	}

	fpsStyle := infoItemValue.Foreground(lipgloss.Color(m.colors.green))
	if m.info.Framerate < 30 {
		fpsStyle = infoItemValue.Foreground(lipgloss.Color(m.colors.red))
	} else if m.info.Framerate < 60 {
		fpsStyle = infoItemValue.Foreground(lipgloss.Color(m.colors.yellow))
	}

	infoRows := []string{
		lipgloss.JoinHorizontal(lipgloss.Left,
			infoItemLabel.Render("Host:"),
			infoItemValue.Render(Truncate(m.info.Hostname, leftColumnWidth/2))),
		separatorStyle.Render(strings.Repeat("-", leftColumnWidth-2)),
		lipgloss.JoinHorizontal(lipgloss.Left,
			infoItemLabel.Render("Slots:"),
			infoItemValue.Render(slotsValue)),
		lipgloss.NewStyle().
			Width(leftColumnWidth-2).
			Foreground(lipgloss.Color(m.colors.textDimmed)).
			Render(AsciiBar(slotsFill, leftColumnWidth-4, "█", "░")),
		lipgloss.JoinHorizontal(lipgloss.Left,
			infoItemLabel.Render("FPS:"),
			fpsStyle.Render(fmt.Sprintf("%.0f", m.info.Framerate))),
		lipgloss.JoinHorizontal(lipgloss.Left,
			infoItemLabel.Render("Entities:"),
			infoItemValue.Render(fmt.Sprintf("%d", m.info.EntityCount))),
		lipgloss.JoinHorizontal(lipgloss.Left,
			infoItemLabel.Render("Uptime:"),
			infoItemValue.Render(rust.FormatUptime(m.info.Uptime))),
		lipgloss.JoinHorizontal(lipgloss.Left,
			infoItemLabel.Render("Map:"),
			infoItemValue.Render(Truncate(m.info.Map, leftColumnWidth/2))),
	}

	infoBoxContent := lipgloss.JoinVertical(lipgloss.Top, infoRows...)

	// players
	playerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.colors.border)).
		PaddingLeft(1).
		PaddingRight(1).
		Width(leftColumnWidth).
		Height(playerBoxHeight)

	playerBoxItem := lipgloss.NewStyle().
		Width(leftColumnWidth - 2).
		Bold(true).Align(lipgloss.Left)

	playersMaxLines := playerBoxHeight - 2
	playerLines := []string{}

	playerLines = append(playerLines, playerBoxItem.Render("Online:"))
	playerLines = append(playerLines, separatorStyle.Render(strings.Repeat("-", leftColumnWidth-2)))

	playerStart := 0
	if len(m.players) > playersMaxLines {
		playerStart = len(m.players) - playersMaxLines
	}
	for _, p := range m.players[playerStart:] {
		line := fmt.Sprintf("- %s (%dms)", p.DisplayName, p.Ping)
		playerLines = append(playerLines, playerBoxItem.Render(Truncate(line, leftColumnWidth-2)))
	}

	leftColumn := lipgloss.JoinVertical(
		lipgloss.Top,
		infoBox.Render(infoBoxContent),
		playerBox.Render(lipgloss.JoinVertical(
			lipgloss.Top,
			playerLines...,
		)),
	)

	// ---------- right column ------------
	logBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.colors.border)).
		PaddingLeft(1).
		PaddingRight(1).
		Width(rightColumnWidth - 2).
		Height(contentHeight - 3)

	logBoxItem := lipgloss.NewStyle().
		Width(rightColumnWidth - 2)

	maxLines := contentHeight - 5 // border top/bottom
	if maxLines < 1 {
		maxLines = 1
	}
	lines := []string{}
	start := 0
	if len(m.logs) > maxLines {
		start = len(m.logs) - maxLines
	}
	for _, l := range m.logs[start:] {
		lines = append(lines, logBoxItem.Render(Truncate(l, rightColumnWidth-4)))
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.colors.borderHot)).
		PaddingLeft(1).
		PaddingRight(1).
		Width(rightColumnWidth - 2).Height(1)
	inputView := inputStyle.Render(m.input.View())

	logBlock := lipgloss.JoinVertical(
		lipgloss.Top,
		lines...,
	)

	rightColumn := lipgloss.JoinVertical(
		lipgloss.Top,
		logBox.Render(logBlock),
		inputView,
	)

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftColumn,
		rightColumn,
	)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		headerBox,
		body,
		footerBox.Render(),
	)
}
