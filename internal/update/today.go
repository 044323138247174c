package update

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketplanner/pocketplanner/internal/model"
	"github.com/pocketplanner/pocketplanner/internal/planner"
	"github.com/pocketplanner/pocketplanner/internal/views"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
		m.syncSelectedTaskToTodayCursor()
	case "down", "j":
		if m.Today.Cursor < len(m.Today.Items)-1 {
			m.Today.Cursor++
		}
		m.syncSelectedTaskToTodayCursor()
	case "a":
		m.Today.CaptureMode = true
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "quick add active", IsError: false}
	case " ":
		m = m.toggleSelectedTask()
	case "x":
		m = m.deleteSelectedTask()
	case "s":
		m.Palette.Active = true
		m.Palette.Input = "step selected "
		m.commandInput.Focus()
		m.commandInput.SetValue(m.Palette.Input)
		m.Status = StatusBar{Text: "describe the next small step", IsError: false}
	case "y":
		m = m.yankSelectedTask()
	}
	return m
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Today.CaptureMode = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "quick add closed", IsError: false}
	case "enter":
		title := strings.TrimSpace(m.quickAddInput.Value())
		if title == "" {
			return m
		}
		if _, err := m.Planner.CreateTask(m.ctx, planner.TaskDraft{Title: title}); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.quickAddInput.SetValue("")
		m.refreshFromPlanner()
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", title), IsError: false}
	default:
		if msg.Type == tea.KeyRunes {
			m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
			return m
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) toggleSelectedTask() Model {
	selected, ok := m.currentTodayItem()
	if !ok {
		return m
	}
	task, err := m.Planner.ToggleTask(m.ctx, selected.ID)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.refreshFromPlanner()
	if task.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Title), IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", task.Title), IsError: false}
	}
	return m
}

func (m Model) deleteSelectedTask() Model {
	selected, ok := m.currentTodayItem()
	if !ok {
		return m
	}
	if err := m.Planner.DeleteTask(m.ctx, selected.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.refreshFromPlanner()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", selected.Title), IsError: false}
	return m
}

func (m Model) yankSelectedTask() Model {
	selected, ok := m.currentTodayItem()
	if !ok {
		return m
	}
	if err := clipboard.WriteAll(selected.Title); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("clipboard: %v", err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("yanked: %s", selected.Title), IsError: false}
	return m
}

func (m Model) renderTodayView() string {
	items := make([]views.TodayItemData, 0, len(m.Today.Items))
	for _, item := range m.Today.Items {
		items = append(items, views.TodayItemData{
			ID:          item.ID,
			Title:       item.Title,
			Completed:   item.Completed,
			MicroTask:   item.MicroTask,
			Priority:    item.Priority,
			FocusType:   item.FocusType,
			DeadlineAt:  item.DeadlineAt,
			EstimateMin: item.EstimateMin,
		})
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		Date:         string(model.DayOf(m.nowFn())),
		QuickAddView: m.quickAddInput.View(),
		ListView:     m.todayList.View(),
		Items:        items,
		SelectedID:   m.SelectedTaskID,
		StreakBadge:  views.RenderStreakBadge(m.Streak.CurrentStreak, m.Streak.LongestStreak),
	})
}

func (m Model) renderSuggestionsView() string {
	rows := make([]views.SuggestionData, 0, len(m.Suggestions))
	for _, s := range m.Suggestions {
		rows = append(rows, views.SuggestionData{
			Title: s.Title,
			Score: s.Score,
			Focus: s.Focus,
		})
	}
	return views.RenderSuggestionsPanel(views.SuggestionsPanelData{
		EnergyLevel: m.EnergyLevel,
		Suggestions: rows,
	})
}
