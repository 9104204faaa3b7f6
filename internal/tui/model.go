package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wichardvalente37/war-path-progress/internal/engine"
	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	userID string

	width  int
	height int

	profile  *storage.Profile
	missions []storage.Mission
	goals    []storage.Goal

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile  *storage.Profile
	missions []storage.Mission
	goals    []storage.Goal
	err      error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, userID string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		userID:  userID,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.Profile(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		missions, err := m.svc.ListMissions(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		goals, err := m.svc.ListGoals(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{profile: p, missions: missions, goals: goals}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteMission(m.ctx, m.userID, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.missions = msg.missions
		m.goals = msg.goals
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completed %d: +%d XP (level %d → %d)", msg.res.MissionID, msg.res.XPAwarded, msg.res.LevelBefore, msg.res.LevelAfter)
		if g := msg.res.Goal; g != nil {
			m.lastLog += fmt.Sprintf(" | goal %d/%d", g.Current, g.Target)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			lines := m.missionLines()
			if m.selected < len(lines)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			lines := m.missionLines()
			if m.selected < 0 || m.selected >= len(lines) {
				return m, nil
			}
			line := lines[m.selected]
			if line.status == "completed" {
				m.lastLog = "Already completed."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %d…", line.id)
			return m, m.completeCmd(line.id)
		}
	}
	return m, nil
}

type missionLine struct {
	id     int64
	title  string
	status string
	xp     int
	goal   string
}

func (m boardModel) missionLines() []missionLine {
	if len(m.missions) == 0 {
		return nil
	}
	goalTitles := map[int64]string{}
	for _, g := range m.goals {
		goalTitles[g.ID] = g.Title
	}

	missions := make([]storage.Mission, len(m.missions))
	copy(missions, m.missions)
	sort.Slice(missions, func(i, j int) bool {
		// Pending first, then due soon, then ID.
		pi := missions[i].Status == "pending"
		pj := missions[j].Status == "pending"
		if pi != pj {
			return pi
		}
		ai := missions[i].DueDate
		aj := missions[j].DueDate
		if ai == nil && aj != nil {
			return false
		}
		if ai != nil && aj == nil {
			return true
		}
		if ai != nil && aj != nil && !ai.Equal(*aj) {
			return ai.Before(*aj)
		}
		return missions[i].ID < missions[j].ID
	})

	out := make([]missionLine, 0, len(missions))
	for _, t := range missions {
		line := missionLine{id: t.ID, title: t.Title, status: t.Status, xp: t.XP}
		if t.GoalID != nil {
			line.goal = goalTitles[*t.GoalID]
		}
		out = append(out, line)
	}
	if m.selected >= len(out) {
		m.selected = len(out) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.profile == nil {
		return "Warpath — loading…"
	}
	lvl := engine.LevelForXP(m.profile.XP)
	bar := progressBar(
		m.profile.XP-engine.XPForLevel(lvl),
		engine.XPPerLevel,
		30,
	)
	return fmt.Sprintf("Warpath | %s | Level %d | XP %d %s", m.profile.Username, lvl, m.profile.XP, bar)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Goals"}
	if len(m.goals) == 0 {
		lines = append(lines, "(none)")
	}
	for _, g := range m.goals {
		bar := progressBar(g.Current, g.Target, 12)
		lines = append(lines, fmt.Sprintf("- %s %d/%d %s", g.Title, g.Current, g.Target, bar))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Missions")

	lines := m.missionLines()
	if len(lines) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, ml := range lines {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		goal := ""
		if ml.goal != "" {
			goal = " → " + ml.goal
		}
		out = append(out, fmt.Sprintf("%s%d %s (xp=%d, %s)%s", cursor, ml.id, ml.title, ml.xp, ml.status, goal))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
