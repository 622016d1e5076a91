package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

// boardModel is the dashboard: player header, XP bar, today's tasks and open
// quests. Tasks are completed with space/enter; everything reloads through
// the service so day boundaries and expiries settle on refresh.
type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	player *engine.PlayerRecord
	quests []engine.Quest
	boosts engine.Boosts

	xpBar progress.Model

	selected int
	lastLog  string
	loading  bool
	err      error
}

type taskLine struct {
	id   string
	name string
	xp   int
	done bool
	rank bool
}

type loadedMsg struct {
	player *engine.PlayerRecord
	quests []engine.Quest
	boosts engine.Boosts
	err    error
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

// playerMsg carries a post-persist snapshot from the store observer.
type playerMsg struct {
	player *engine.PlayerRecord
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	bar := progress.New(progress.WithDefaultGradient())
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		xpBar:   bar,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Tick(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.Quests(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		_, boosts, err := m.svc.ActiveBoosts(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{player: m.svc.Player(), quests: quests, boosts: boosts}
	}
}

func (m boardModel) completeCmd(line taskLine) tea.Cmd {
	return func() tea.Msg {
		var res *engine.CompleteResult
		var err error
		if line.rank {
			res, err = m.svc.CompleteRankTask(m.ctx, line.id)
		} else {
			res, err = m.svc.CompleteCustomTask(m.ctx, line.id)
		}
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) taskLines() []taskLine {
	if m.player == nil {
		return nil
	}
	var lines []taskLine
	for _, t := range m.player.CustomTasks {
		lines = append(lines, taskLine{id: t.ID, name: t.Name, xp: t.XP, done: m.player.CustomTasksCompleted[t.ID]})
	}
	for _, t := range m.player.RankTasks {
		lines = append(lines, taskLine{id: t.ID, name: t.Name, xp: t.XP, done: m.player.RankTasksCompleted[t.ID], rank: true})
	}
	return lines
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.xpBar.Width = msg.Width - 20
		if m.xpBar.Width > 60 {
			m.xpBar.Width = 60
		}
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.player
		m.quests = msg.quests
		m.boosts = msg.boosts
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case playerMsg:
		if !m.loading {
			m.player = msg.player
		}
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Done: %s +%d XP", msg.res.Name, msg.res.XPAwarded)
		if msg.res.LevelsGained > 0 {
			m.lastLog += fmt.Sprintf(" — %s (level %d → %d)", ui.BadgeLevelUp, msg.res.LevelBefore, msg.res.LevelAfter)
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
			if m.selected < len(m.taskLines())-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ", "c":
			lines := m.taskLines()
			if m.selected < 0 || m.selected >= len(lines) {
				return m, nil
			}
			line := lines[m.selected]
			if line.done {
				m.lastLog = "Already done today."
				return m, nil
			}
			return m, m.completeCmd(line)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading…")
	}
	if m.err != nil {
		return ui.Bad.Render("Error: " + m.err.Error())
	}
	if m.player == nil {
		return ui.Muted.Render("No player loaded.")
	}

	var b strings.Builder

	p := m.player
	rank := engine.RankFor(p.TotalXP, p.PlayerClass)
	pts := engine.TotalAvailable(p)

	header := fmt.Sprintf("%s  %s  %s %d  %s %d pts  %s %d days",
		ui.Title.Render(p.Username),
		ui.Gold.Render(rank.String()),
		ui.Key.Render("Lv."), p.Level,
		ui.IconCoin, pts.Total,
		ui.IconFlame, p.Streak)
	b.WriteString(header + "\n")

	ratio := float64(p.XP) / float64(p.MaxXP)
	b.WriteString(fmt.Sprintf("%s %s %s\n", ui.Key.Render("XP"), m.xpBar.ViewAs(ratio), ui.Muted.Render(fmt.Sprintf("%d/%d", p.XP, p.MaxXP))))
	if m.boosts.XPMultiplier > 1 || m.boosts.TaskBonus > 0 {
		b.WriteString(ui.Warn.Render(fmt.Sprintf("%s boosts: ×%.2f xp, +%.0f%% tasks", ui.IconBolt, m.boosts.XPMultiplier, m.boosts.TaskBonus*100)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(ui.H2.Render("Today") + "\n")
	lines := m.taskLines()
	if len(lines) == 0 {
		b.WriteString(ui.Muted.Render("  no tasks — add one with 'lq task add'") + "\n")
	}
	for i, line := range lines {
		mark := "[ ]"
		if line.done {
			mark = "[✓]"
		}
		kind := ""
		if line.rank {
			kind = " " + ui.IconTrophy
		}
		row := fmt.Sprintf("  %s %s%s %s", mark, line.name, kind, ui.Muted.Render(fmt.Sprintf("(%d XP)", line.xp)))
		if i == m.selected {
			row = ui.SelectedRow.Render("▸" + row[1:])
		} else if line.done {
			row = ui.Muted.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n")

	open := 0
	for _, q := range m.quests {
		switch q.Status {
		case engine.StatusAvailable, engine.StatusInProgress:
			open++
		}
	}
	b.WriteString(ui.H2.Render(fmt.Sprintf("Quests (%d open)", open)) + "\n")
	for _, q := range m.quests {
		if q.Status != engine.StatusAvailable && q.Status != engine.StatusInProgress {
			continue
		}
		row := fmt.Sprintf("  [%s] %s %s", ui.QuestStatus(q.Status), q.Name, ui.Muted.Render(fmt.Sprintf("(%d/%d)", q.Progress.Current, q.Progress.Target)))
		b.WriteString(row + "\n")
	}
	b.WriteString("\n")

	help := ui.Muted.Render("↑/↓ move · space complete · r refresh · q quit")
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, ui.Muted.Render(m.lastLog), help))
	return b.String()
}
