package reading

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	flow "github.com/deeklead/midori/internal/reading"
	"github.com/deeklead/midori/internal/spread"
)

// Grid cell glyphs.
const (
	faceDownGlyph    = "▮"
	drawnGlyph       = "·"
	cursorGlyph      = "▯"
	cursorDrawnGlyph = "◌"
)

// renderView produces the full TUI output.
func (m Model) renderView() string {
	var b strings.Builder

	switch m.currentScreen() {
	case screenMenu:
		m.renderMenu(&b)
	case screenSetup:
		m.renderSetup(&b)
	case screenDraw:
		m.renderDraw(&b)
	case screenResult:
		m.renderResult(&b)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(m.text.Sprintf("Could not save reading: %s", m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderMenu(b *strings.Builder) {
	b.WriteString(TitleStyle.Render(m.text.Sprintf("🔮 Choose a spread")))
	b.WriteString("\n\n")

	for i, d := range m.engine.Spreads() {
		cursor := "  "
		style := NormalStyle
		if i == m.menuCursor {
			cursor = "▸ "
			style = SelectedStyle
		}
		line := fmt.Sprintf("%s%d. %s", cursor, i+1, d.Title.Resolve(m.tag))
		b.WriteString(style.Render(line))
		b.WriteString(DimStyle.Render(fmt.Sprintf("  (%d)", d.Size())))
		b.WriteString("\n")
		if i == m.menuCursor {
			b.WriteString("     ")
			b.WriteString(SubtitleStyle.Render(d.Description.Resolve(m.tag)))
			b.WriteString("\n")
		}
	}
}

func (m Model) renderSetup(b *strings.Builder) {
	s := m.engine.Session()
	b.WriteString(TitleStyle.Render(s.Spread.Title.Resolve(m.tag)))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(s.Spread.Description.Resolve(m.tag)))
	b.WriteString("\n\n")

	b.WriteString(m.text.Sprintf("Question") + "\n")
	b.WriteString(m.question.View())
	b.WriteString("\n\n")

	toggle := m.text.Sprintf("off")
	if s.UseReversed {
		toggle = m.text.Sprintf("on")
	}
	b.WriteString(m.text.Sprintf("Reversed cards: %s", SelectedStyle.Render(toggle)))
	b.WriteString(DimStyle.Render("  (ctrl+r)"))
	b.WriteString("\n\n")

	b.WriteString(DimStyle.Render(m.text.Sprintf("enter: begin  •  ctrl+q: quick reading  •  esc: spreads")))
	b.WriteString("\n")
}

func (m Model) renderDraw(b *strings.Builder) {
	s := m.engine.Session()
	b.WriteString(TitleStyle.Render(s.Spread.Title.Resolve(m.tag)))
	if s.Question != "" {
		b.WriteString(SubtitleStyle.Render("  " + s.Question))
	}
	b.WriteString("\n\n")

	switch {
	case s.CutInProgress:
		m.renderStacks(b, s)
	case s.GridRevealed:
		m.renderGrid(b, s)
	default:
		deck := cardBackStyle(m.cfg.CardBack).Render("▓▓▓")
		b.WriteString(deck + "  " + m.text.Sprintf("%d cards", len(s.DrawPile)))
		if s.ShuffleCount > 0 {
			b.WriteString(DimStyle.Render(m.text.Sprintf("  shuffled ×%d", s.ShuffleCount)))
		}
		b.WriteString("\n\n")
		b.WriteString(DimStyle.Render(m.text.Sprintf("s: shuffle  •  c: cut  •  g: spread the cards")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.NextInstruction != "" {
		b.WriteString(InstructionStyle.Render(s.NextInstruction))
		b.WriteString("\n")
	}
	if s.Status != "" {
		b.WriteString(StatusStyle.Render(s.Status))
		b.WriteString("\n")
	}
	if n := len(s.Drawn); n > 0 {
		b.WriteString(DimStyle.Render(m.text.Sprintf("%d of %d drawn", n, s.Spread.Size())))
		b.WriteString("\n")
	}
}

func (m Model) renderStacks(b *strings.Builder, s flow.Session) {
	back := cardBackStyle(m.cfg.CardBack)
	stacks := make([]string, 0, 3)
	for i, stack := range flow.Stacks(s.DrawPile) {
		count := DimStyle.Render(fmt.Sprintf("%d", len(stack)))
		stacks = append(stacks, PanelStyle.Render(fmt.Sprintf("%s\n%d\n%s", back.Render("▓▓▓"), i+1, count)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stacks...))
	b.WriteString("\n\n")
	b.WriteString(InstructionStyle.Render(m.text.Sprintf("Pick a stack to put on top (1-3), esc to cancel")))
	b.WriteString("\n")
}

func (m Model) renderGrid(b *strings.Builder, s flow.Session) {
	back := cardBackStyle(m.cfg.CardBack)
	for i, c := range s.DrawPile {
		drawn := s.IsDrawn(c.ID)
		var cell string
		switch {
		case i == m.gridCursor && drawn:
			cell = SelectedStyle.Render(cursorDrawnGlyph)
		case i == m.gridCursor:
			cell = SelectedStyle.Render(cursorGlyph)
		case drawn:
			cell = DimStyle.Render(drawnGlyph)
		default:
			cell = back.Render(faceDownGlyph)
		}
		b.WriteString(cell)
		if (i+1)%gridColumns == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	if len(s.DrawPile)%gridColumns != 0 {
		b.WriteString("\n")
	}
}

func (m Model) renderResult(b *strings.Builder) {
	s := m.engine.Session()
	res := s.Result()

	b.WriteString(TitleStyle.Render(s.Spread.Title.Resolve(m.tag)))
	b.WriteString("\n")
	if res.Question != "" {
		b.WriteString(SubtitleStyle.Render("“" + res.Question + "”"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(res.Placements) == 0 {
		b.WriteString(DimStyle.Render(m.text.Sprintf("This spread has no positions.")))
		b.WriteString("\n")
	}
	if len(res.Placements) > 1 {
		b.WriteString(PanelStyle.Render(layoutMap(s.Spread)))
		b.WriteString("\n\n")
	}

	for _, sp := range res.Placements {
		card := sp.Placement.Card
		b.WriteString(InstructionStyle.Render(fmt.Sprintf("%d. %s", sp.Position.Order, sp.Position.Title.Resolve(m.tag))))
		b.WriteString("\n   ")
		b.WriteString(CardNameStyle.Render(card.Name))
		if sp.Placement.Reversed {
			b.WriteString(" ")
			b.WriteString(ReversedStyle.Render(m.text.Sprintf("(reversed)")))
		}
		b.WriteString("\n   ")
		b.WriteString(NormalStyle.Render(card.Meaning(sp.Placement.Reversed)))
		b.WriteString("\n")
		if len(card.Keywords) > 0 {
			b.WriteString("   ")
			b.WriteString(DimStyle.Render(strings.Join(card.Keywords, " · ")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if entry, ok := m.Saved(); ok {
		b.WriteString(DimStyle.Render(m.text.Sprintf("Saved to history %s", entry.ID[:min(8, len(entry.ID))])))
		b.WriteString("\n")
	}
	b.WriteString(DimStyle.Render(m.text.Sprintf("r: read again  •  m: spreads  •  q: quit")))
	b.WriteString("\n")
}

// layoutMap draws the spread's grid with each position's order number in
// its cell. Overlapping positions share a cell in z order, and rotated
// ones are marked with ↻.
func layoutMap(def spread.Definition) string {
	cols, rows := def.Layout.Columns, def.Layout.Rows
	if cols <= 0 || rows <= 0 {
		return ""
	}
	cells := make([][]spread.Position, cols*rows)
	for _, pos := range def.OrderedPositions() {
		p := pos.Placement
		if p.Column < 0 || p.Column >= cols || p.Row < 0 || p.Row >= rows {
			continue
		}
		i := p.Row*cols + p.Column
		cells[i] = append(cells[i], pos)
	}

	width := 1
	labels := make([]string, len(cells))
	for i, stack := range cells {
		slices.SortStableFunc(stack, func(a, b spread.Position) int {
			return cmp.Compare(a.Placement.ZIndex, b.Placement.ZIndex)
		})
		parts := make([]string, 0, len(stack))
		for _, pos := range stack {
			label := strconv.Itoa(pos.Order)
			if pos.Placement.Rotation != 0 {
				label += "↻"
			}
			parts = append(parts, label)
		}
		labels[i] = strings.Join(parts, "+")
		if labels[i] == "" {
			labels[i] = "·"
		}
		width = max(width, utf8.RuneCountInString(labels[i]))
	}

	lines := make([]string, rows)
	for r := range rows {
		row := make([]string, cols)
		for c := range cols {
			label := labels[r*cols+c]
			row[c] = label + strings.Repeat(" ", width-utf8.RuneCountInString(label))
		}
		lines[r] = strings.TrimRight(strings.Join(row, "  "), " ")
	}
	return strings.Join(lines, "\n")
}
