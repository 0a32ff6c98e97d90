package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifequest/internal/clock"
	"lifequest/internal/engine"
	"lifequest/internal/ledger"
	"lifequest/internal/storage"
	"lifequest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	led *ledger.Service
	clk clock.Clock

	refresh time.Duration
	lastDay string

	width  int
	height int

	player  *storage.Player
	quests  []storage.Quest
	summary *ledger.Summary

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	player  *storage.Player
	quests  []storage.Quest
	summary *ledger.Summary
	err     error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

type tickMsg time.Time

type dayRolledMsg struct {
	reset  int
	missed int
	err    error
}

func newBoardModel(ctx context.Context, svc *engine.Service, led *ledger.Service, clk clock.Clock, refresh time.Duration) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		led:     led,
		clk:     clk,
		refresh: refresh,
		lastDay: clock.Day(clk.Now()),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m boardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.PlayerRepo().GetOrCreateMain(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.QuestRepo().ListAll(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		sum, err := m.led.Summary(m.ctx, ledger.WindowWeekly)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{player: p, quests: quests, summary: sum}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

// dayRollCmd runs the two day-boundary operations. The missed-quest check
// goes first, while yesterday's completions are still marked, then the reset
// re-opens the dailies for the new day.
func (m boardModel) dayRollCmd() tea.Cmd {
	return func() tea.Msg {
		check, err := m.svc.CheckUnfinishedDailyQuests(m.ctx)
		if err != nil {
			return dayRolledMsg{err: err}
		}
		reset, err := m.svc.ResetDailyQuests(m.ctx)
		if err != nil {
			return dayRolledMsg{missed: check.Missed, err: err}
		}
		return dayRolledMsg{reset: reset, missed: check.Missed}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		day := clock.Day(m.clk.Now())
		if day != m.lastDay {
			m.lastDay = day
			m.lastLog = "Day boundary crossed."
			return m, tea.Batch(m.dayRollCmd(), m.tickCmd())
		}
		return m, m.tickCmd()
	case dayRolledMsg:
		if msg.err != nil {
			m.lastLog = "Day rollover failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		if msg.missed > 0 {
			m.lastLog = fmt.Sprintf("New day: %d daily quest(s) reset, %d missed → penalty issued.", msg.reset, msg.missed)
		} else {
			m.lastLog = fmt.Sprintf("New day: %d daily quest(s) reset. All caught up.", msg.reset)
		}
		return m, m.loadCmd()
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.player
		m.quests = msg.quests
		m.summary = msg.summary
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.AlreadyCompleted {
			m.lastLog = "Already completed."
			return m, nil
		}
		line := fmt.Sprintf("Completed #%d: +%d XP", msg.id, msg.res.XPAwarded)
		if msg.res.LevelUp {
			line += " " + ui.BadgeLevelUp
		}
		m.lastLog = line
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
			if m.selected < len(m.orderedQuests())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			quests := m.orderedQuests()
			if m.selected < 0 || m.selected >= len(quests) {
				return m, nil
			}
			q := quests[m.selected]
			if q.Completed {
				m.lastLog = "Already completed."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing #%d…", q.ID)
			return m, m.completeCmd(q.ID)
		}
	}
	return m, nil
}

var kindOrder = map[string]int{
	"penalty": 0,
	"daily":   1,
	"main":    2,
	"dungeon": 3,
	"reward":  4,
}

// orderedQuests groups the log by kind, urgent kinds first, open before done.
func (m boardModel) orderedQuests() []storage.Quest {
	out := make([]storage.Quest, len(m.quests))
	copy(out, m.quests)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		oi, oj := kindOrder[out[i].Kind], kindOrder[out[j].Kind]
		if oi != oj {
			return oi < oj
		}
		return out[i].ID < out[j].ID
	})
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
	leftW := 26
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
	if m.player == nil {
		return "lifequest — loading…"
	}
	bar := progressBar(m.player.XPTotal, m.player.XPNext, 30)
	return fmt.Sprintf("lifequest | Level %d | XP %d/%d %s", m.player.Level, m.player.XPTotal, m.player.XPNext, bar)
}

func (m boardModel) renderSidebar() string {
	if m.player == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Stats"}
	names := make([]string, 0, len(m.player.Stats))
	for name := range m.player.Stats {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		lines = append(lines, "(none yet)")
	}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s %d", name, m.player.Stats[name]))
	}
	lines = append(lines, "")
	if m.summary != nil {
		lines = append(lines, "Ledger (weekly)")
		lines = append(lines, fmt.Sprintf("- %s gold %s", ui.IconGold, ui.Money(m.summary.TotalIncome)))
		lines = append(lines, fmt.Sprintf("- %s mana %s", ui.IconMana, ui.Money(m.summary.TotalExpense)))
		lines = append(lines, fmt.Sprintf("- net %s", ui.Money(m.summary.NetWorth)))
		lines = append(lines, "")
	}
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
	out = append(out, "Quest Log")

	quests := m.orderedQuests()
	if len(quests) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, q := range quests {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if q.Completed {
			mark = "[x]"
		}
		extra := ""
		if q.Kind == "daily" && q.Streak > 0 {
			extra = fmt.Sprintf(" 🔥%d", q.Streak)
		}
		out = append(out, fmt.Sprintf("%s%s %s #%d %s (xp=%d)%s", cursor, mark, ui.KindIcon(q.Kind), q.ID, q.Title, q.XPReward, extra))
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
