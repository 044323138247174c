package update

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketplanner/pocketplanner/internal/commands"
	"github.com/pocketplanner/pocketplanner/internal/importer"
	"github.com/pocketplanner/pocketplanner/internal/model"
	"github.com/pocketplanner/pocketplanner/internal/planner"
	"github.com/pocketplanner/pocketplanner/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.Planner.CreateTask(m.ctx, planner.TaskDraft{Title: a.Title})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added task: %s", task.Title)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			id, err := m.resolveTarget(d.Target)
			if err != nil {
				return commands.Result{}, err
			}
			task, err := m.Planner.ToggleTask(m.ctx, id)
			if err != nil {
				return commands.Result{}, err
			}
			if task.Completed {
				return commands.Result{Message: fmt.Sprintf("completed: %s", task.Title)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("reopened: %s", task.Title)}, nil
		},
		Step: func(s commands.StepArgs) (commands.Result, error) {
			id, err := m.resolveTarget(s.Target)
			if err != nil {
				return commands.Result{}, err
			}
			micro, err := m.Planner.CreateMicroCommitment(m.ctx, id, s.Title)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added step: %s", micro.Title)}, nil
		},
		Energy: func(e commands.EnergyArgs) (commands.Result, error) {
			if err := m.Planner.LogEnergy(m.ctx, model.DayOf(m.nowFn()), e.Level); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("energy logged: %d/5", e.Level)}, nil
		},
		Block: func(b commands.BlockArgs) (commands.Result, error) {
			block, err := m.Planner.CreateTimeBlock(m.ctx, b.Title, b.Start, b.End, "", "")
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("blocked %s-%s: %s", block.StartTime, block.EndTime, block.Title)}, nil
		},
		Import: func(a commands.ImportArgs) (commands.Result, error) {
			data, err := os.ReadFile(a.Path)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("read %s: %v", a.Path, err)}
			}
			count, err := importer.Import(m.ctx, m.Planner, string(data))
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("imported %d items from %s", count, a.Path)}, nil
		},
		Snooze: func(s commands.SnoozeArgs) (commands.Result, error) {
			id, err := m.resolveTarget(s.Target)
			if err != nil {
				return commands.Result{}, err
			}
			delay, err := parseDelay(s.For)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Planner.Snooze(m.ctx, id, delay); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("snoozed for %s", delay)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.refreshFromPlanner()
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func (m Model) resolveTarget(target string) (string, error) {
	if target == "selected" {
		if m.SelectedTaskID == "" {
			return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
		}
		return m.SelectedTaskID, nil
	}
	return target, nil
}

// parseDelay accepts Go duration syntax ("10m") and the looser "<n> minutes"
// or "<n> hours" forms.
func parseDelay(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d, nil
	}
	fields := strings.Fields(raw)
	if len(fields) == 2 {
		if n, err := strconv.Atoi(fields[0]); err == nil && n > 0 {
			switch strings.TrimSuffix(fields[1], "s") {
			case "minute", "min":
				return time.Duration(n) * time.Minute, nil
			case "hour", "hr":
				return time.Duration(n) * time.Hour, nil
			}
		}
	}
	return 0, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid duration: %s", raw)}
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
