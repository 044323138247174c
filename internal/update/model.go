package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/pocketplanner/pocketplanner/internal/model"
	"github.com/pocketplanner/pocketplanner/internal/planner"
	"github.com/pocketplanner/pocketplanner/internal/scheduler"
	"github.com/pocketplanner/pocketplanner/internal/views"
)

type View string

const (
	ViewToday  View = "Today"
	ViewBlocks View = "Blocks"
	ViewFocus  View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today  string
	Blocks string
	Focus  string
	Help   string
	Quit   string
}

type TodayItem struct {
	ID          string
	Title       string
	Completed   bool
	MicroTask   bool
	Priority    string
	FocusType   string
	DeadlineAt  string
	EstimateMin int
}

type TodayState struct {
	Items       []TodayItem
	Cursor      int
	CaptureMode bool
}

type BlockItem struct {
	ID        string
	Title     string
	Start     string
	End       string
	Date      string
	TaskTitle string
}

type BlocksState struct {
	Items  []BlockItem
	Cursor int
}

type FocusPhase string

const (
	FocusPhaseWork  FocusPhase = "work"
	FocusPhaseBreak FocusPhase = "break"
)

type FocusState struct {
	TaskID             string
	TaskTitle          string
	WorkDurationSec    int
	BreakDurationSec   int
	RemainingSec       int
	Running            bool
	Phase              FocusPhase
	CompletedPomodoros int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type SuggestionRow struct {
	TaskID string
	Title  string
	Focus  string
	Score  int
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Today          TodayState
	Blocks         BlocksState
	Focus          FocusState
	Suggestions    []SuggestionRow
	EnergyLevel    int
	Streak         model.StreakData
	Planner        *planner.Service
	Engine         *scheduler.Engine
	AlertLog       []scheduler.Alert
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	ctx            context.Context
	nowFn          func() time.Time
	// Bubble components used for rich TUI controls
	todayList     list.Model
	blocksTable   table.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	helpModel     help.Model
	metaViewport  viewport.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct{}

type AlertDueMsg struct {
	Alert scheduler.Alert
}

type RefreshMsg struct{}

func NewModel(svc *planner.Service) Model {
	m := Model{
		CurrentView: ViewToday,
		Planner:     svc,
		Focus: FocusState{
			WorkDurationSec:  25 * 60,
			BreakDurationSec: 5 * 60,
			RemainingSec:     25 * 60,
			Phase:            FocusPhaseWork,
		},
		Keys: GlobalKeyMap{
			Today:  "1",
			Blocks: "2",
			Focus:  "3",
			Help:   "?",
			Quit:   "q",
		},
		ctx:   context.Background(),
		nowFn: time.Now,
	}
	m.initBubbleComponents()
	m.refreshFromPlanner()
	m.syncBubbleData()
	return m
}

func NewModelWithConfig(svc *planner.Service, engine *scheduler.Engine, cfg RuntimeConfig) Model {
	m := NewModel(svc)
	m.Engine = engine
	if cfg.FocusWorkMinutes > 0 {
		m.Focus.WorkDurationSec = cfg.FocusWorkMinutes * 60
	}
	if cfg.FocusBreakMinutes > 0 {
		m.Focus.BreakDurationSec = cfg.FocusBreakMinutes * 60
	}
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	return m
}

func (m *Model) initBubbleComponents() {
	m.todayList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.todayList.Title = "Today (list)"
	m.todayList.SetShowHelp(false)
	m.todayList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Start", Width: 9},
		{Title: "End", Width: 9},
		{Title: "Title", Width: 22},
	}
	m.blocksTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.focusProgress = progress.New(progress.WithDefaultGradient())

	m.helpModel = help.New()
	m.metaViewport = viewport.New(54, 12)
}

// refreshFromPlanner reloads today's tasks, the time blocks, the suggestion
// ranking and the streak record from the store.
func (m *Model) refreshFromPlanner() {
	if m.Planner == nil {
		return
	}
	now := m.nowFn()
	today := model.DayOf(now)

	items := make([]TodayItem, 0)
	for _, task := range m.Planner.Tasks(m.ctx) {
		if task.Date != today {
			continue
		}
		item := TodayItem{
			ID:          task.ID,
			Title:       task.Title,
			Completed:   task.Completed,
			MicroTask:   task.IsMicroTask,
			Priority:    string(task.Priority),
			FocusType:   string(task.FocusType),
			EstimateMin: task.EstimatedMinutes,
		}
		if task.Deadline != nil {
			item.DeadlineAt = task.Deadline.Local().Format("15:04")
		}
		items = append(items, item)
	}
	m.Today.Items = items
	if m.Today.Cursor >= len(items) && len(items) > 0 {
		m.Today.Cursor = len(items) - 1
	}
	m.syncSelectedTaskToTodayCursor()

	blocks := make([]BlockItem, 0)
	for _, block := range m.Planner.TimeBlocks(m.ctx) {
		blocks = append(blocks, BlockItem{
			ID:        block.ID,
			Title:     block.Title,
			Start:     block.StartTime,
			End:       block.EndTime,
			Date:      string(block.Date),
			TaskTitle: m.Planner.BlockTaskTitle(m.ctx, block),
		})
	}
	m.Blocks.Items = blocks
	if m.Blocks.Cursor >= len(blocks) && len(blocks) > 0 {
		m.Blocks.Cursor = len(blocks) - 1
	}

	ranked, energy := m.Planner.Suggestions(m.ctx)
	m.EnergyLevel = energy
	rows := make([]SuggestionRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, SuggestionRow{
			TaskID: r.Task.ID,
			Title:  r.Task.Title,
			Focus:  string(r.Task.FocusType),
			Score:  r.Score,
		})
	}
	m.Suggestions = rows

	if rec, err := m.Planner.CheckStreak(m.ctx); err == nil {
		m.Streak = rec
	}
}

func (m *Model) syncBubbleData() {
	todayItems := make([]list.Item, 0, len(m.Today.Items))
	for _, item := range m.Today.Items {
		desc := item.Priority
		if item.Completed {
			desc = "done"
		}
		todayItems = append(todayItems, listItem{title: item.Title, description: desc})
	}
	m.todayList.SetItems(todayItems)
	if len(todayItems) > 0 {
		m.todayList.Select(m.Today.Cursor)
	}

	rows := make([]table.Row, 0, len(m.Blocks.Items))
	for _, block := range m.Blocks.Items {
		rows = append(rows, table.Row{block.Date, block.Start, block.End, block.Title})
	}
	m.blocksTable.SetRows(rows)
	if len(rows) > 0 && m.Blocks.Cursor < len(rows) {
		m.blocksTable.SetCursor(m.Blocks.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}
	if m.Today.CaptureMode {
		m.quickAddInput.Focus()
	}

	m.metaViewport.SetContent(views.RenderMarkdown(m.helpMarkdown()))

	total := m.currentFocusTotal()
	pct := 0.0
	if total > 0 {
		pct = float64(total-m.Focus.RemainingSec) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	_ = m.focusProgress.SetPercent(pct)
}

func (m Model) currentTodayItem() (TodayItem, bool) {
	if len(m.Today.Items) == 0 {
		return TodayItem{}, false
	}
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(m.Today.Items) {
		return TodayItem{}, false
	}
	return m.Today.Items[m.Today.Cursor], true
}

func (m *Model) syncSelectedTaskToTodayCursor() {
	if selected, ok := m.currentTodayItem(); ok {
		m.SelectedTaskID = selected.ID
	}
}

func (m Model) currentBlockItem() (BlockItem, bool) {
	if len(m.Blocks.Items) == 0 {
		return BlockItem{}, false
	}
	if m.Blocks.Cursor < 0 || m.Blocks.Cursor >= len(m.Blocks.Items) {
		return BlockItem{}, false
	}
	return m.Blocks.Items[m.Blocks.Cursor], true
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keys\n\n")
	for _, kb := range m.globalBindings() {
		b.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	return b.String()
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}
