package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketplanner/pocketplanner/internal/views"
)

func (m Model) handleBlocksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Blocks.Cursor > 0 {
			m.Blocks.Cursor--
		}
	case "down", "j":
		if m.Blocks.Cursor < len(m.Blocks.Items)-1 {
			m.Blocks.Cursor++
		}
	case "x":
		selected, ok := m.currentBlockItem()
		if !ok {
			return m
		}
		if err := m.Planner.DeleteTimeBlock(m.ctx, selected.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.refreshFromPlanner()
		m.Status = StatusBar{Text: fmt.Sprintf("deleted block: %s", selected.Title), IsError: false}
	}
	return m
}

func (m Model) renderBlocksView() string {
	items := make([]views.BlockItemData, 0, len(m.Blocks.Items))
	for _, block := range m.Blocks.Items {
		items = append(items, views.BlockItemData{
			ID:        block.ID,
			Title:     block.Title,
			Start:     block.Start,
			End:       block.End,
			Date:      block.Date,
			TaskTitle: block.TaskTitle,
		})
	}
	var selected *views.BlockItemData
	if s, ok := m.currentBlockItem(); ok {
		selected = &views.BlockItemData{
			ID:        s.ID,
			Title:     s.Title,
			Start:     s.Start,
			End:       s.End,
			Date:      s.Date,
			TaskTitle: s.TaskTitle,
		}
	}
	return views.RenderBlocksPanel(views.BlocksPanelData{
		TableView: m.blocksTable.View(),
		Items:     items,
		Selected:  selected,
	})
}
