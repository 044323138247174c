package views

import (
	"fmt"
	"sort"
	"strings"
)

type TodayItemData struct {
	ID          string
	Title       string
	Completed   bool
	MicroTask   bool
	Priority    string
	FocusType   string
	DeadlineAt  string
	EstimateMin int
}

type TodayPanelData struct {
	Date         string
	QuickAddView string
	ListView     string
	Items        []TodayItemData
	SelectedID   string
	StreakBadge  string
}

type BlockItemData struct {
	ID        string
	Title     string
	Start     string
	End       string
	Date      string
	TaskTitle string
}

type BlocksPanelData struct {
	TableView string
	Items     []BlockItemData
	Selected  *BlockItemData
}

type SuggestionData struct {
	Title  string
	Score  int
	Focus  string
	Reason string
}

type SuggestionsPanelData struct {
	EnergyLevel int
	Suggestions []SuggestionData
}

type FocusPanelData struct {
	TaskTitle          string
	Phase              string
	Timer              string
	ProgressView       string
	ProgressPct        int
	CompletedPomodoros int
	ShowEndPrompt      bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s", data.Date))
	if data.StreakBadge != "" {
		b.WriteString("  " + data.StreakBadge)
	}
	b.WriteString("\n")
	b.WriteString(data.QuickAddView + "\n")
	b.WriteString("actions: [enter]add [space]toggle [s]step [x]delete [y]yank [j/k]move\n")
	b.WriteString(data.ListView + "\n")

	open := make([]TodayItemData, 0)
	done := make([]TodayItemData, 0)
	for _, item := range data.Items {
		if item.Completed {
			done = append(done, item)
		} else {
			open = append(open, item)
		}
	}
	renderTodaySection(&b, "Open", open, data.SelectedID)
	renderTodaySection(&b, "Done", done, data.SelectedID)
	return strings.TrimSpace(b.String())
}

func RenderBlocksPanel(data BlocksPanelData) string {
	var b strings.Builder
	b.WriteString("time blocks:\n")
	b.WriteString("actions: [j/k]move [x]delete [1]today [2]blocks [3]focus\n")
	b.WriteString(data.TableView + "\n")

	grouped := make(map[string][]BlockItemData)
	keys := make([]string, 0)
	for _, item := range data.Items {
		if _, ok := grouped[item.Date]; !ok {
			keys = append(keys, item.Date)
		}
		grouped[item.Date] = append(grouped[item.Date], item)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		b.WriteString("(no blocks)")
		return b.String()
	}

	for _, day := range keys {
		b.WriteString(fmt.Sprintf("\n%s:\n", day))
		items := grouped[day]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Start < items[j].Start })
		for _, item := range items {
			cursor := " "
			if data.Selected != nil && data.Selected.ID == item.ID {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s-%s %s", cursor, item.Start, item.End, item.Title))
			if item.TaskTitle != "" {
				b.WriteString(fmt.Sprintf(" -> %s", item.TaskTitle))
			}
			b.WriteString("\n")
		}
	}

	if data.Selected != nil {
		b.WriteString("\nblock-metadata:\n")
		b.WriteString(fmt.Sprintf("id: %s\n", data.Selected.ID))
		b.WriteString(fmt.Sprintf("when: %s %s-%s\n", data.Selected.Date, data.Selected.Start, data.Selected.End))
		if data.Selected.TaskTitle != "" {
			b.WriteString(fmt.Sprintf("task: %s\n", data.Selected.TaskTitle))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderSuggestionsPanel(data SuggestionsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("suggestions (energy %d/5):\n", data.EnergyLevel))
	if len(data.Suggestions) == 0 {
		b.WriteString("(nothing to suggest)")
		return b.String()
	}
	for _, sg := range data.Suggestions {
		b.WriteString(fmt.Sprintf("- %s [%s, score %d]", sg.Title, sg.Focus, sg.Score))
		if sg.Reason != "" {
			b.WriteString(" " + sg.Reason)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("pomodoros completed: %d\n", data.CompletedPomodoros))
	b.WriteString("actions: [space]start/pause [r]reset [n]next-phase\n")
	if data.ShowEndPrompt {
		b.WriteString("prompt: session ended, press [n] to continue")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderStreakText(current, longest int) string {
	return fmt.Sprintf("streak: %d (best %d)", current, longest)
}

func renderTodaySection(b *strings.Builder, title string, items []TodayItemData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		cursor := " "
		if selectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, priorityBadge(item), item.Title))
		if item.MicroTask {
			b.WriteString(" (step)")
		}
		if item.DeadlineAt != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.DeadlineAt))
		}
		if item.EstimateMin > 0 {
			b.WriteString(fmt.Sprintf(" ~%dm", item.EstimateMin))
		}
		b.WriteString("\n")
	}
}

func priorityBadge(item TodayItemData) string {
	if item.Completed {
		return "[DONE]"
	}
	switch item.Priority {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
