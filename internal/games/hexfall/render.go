package hexfall

import (
	"fmt"

	platformcore "github.com/nya3jp/icfpc2015/internal/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

// Board glyphs. Every hex cell is two columns wide; odd rows are shifted
// right by one column.
const (
	glyphEmpty  = '·'
	glyphFilled = '⬢'
	glyphMember = '⬢'
	glyphPivot  = '+'
	glyphCenter = '◆' // pivot on a member cell
)

const (
	hudHeight  = 3
	panelWidth = 14
)

// view holds everything needed to draw one frame. Game and Playback fill
// it differently and share the drawing code.
type view struct {
	title    string
	engine   *core.Engine
	upcoming int
	power    int
	progress string
	message  string
	controls string
	overlay  []string
}

func (v view) render(dst *platformcore.Screen) {
	dst.Clear()
	v.renderHUD(dst)

	b := v.engine.Board()
	box := platformcore.NewRect(0, hudHeight, 2*b.Width()+3, b.Height()+2)
	if box.Right() > dst.Width() || box.Bottom()+2 > dst.Height() {
		renderOverlay(dst, []string{"Window too small", fmt.Sprintf("need %dx%d", box.Right(), box.Bottom()+2)})
		return
	}

	var active *core.Unit
	if u, ok := v.engine.Active(); ok {
		active = &u
	}
	dst.DrawBox(box, platformcore.ColorGray)
	drawBoard(dst, box.X+1, box.Y+1, b, active)

	if px := box.Right() + 2; px+panelWidth <= dst.Width() {
		v.renderPanel(dst, px, box.Y)
	}

	if v.message != "" {
		dst.DrawTextColor(0, box.Bottom(), v.message, platformcore.ColorYellow)
	}
	dst.DrawTextColor(0, box.Bottom()+1, v.controls, platformcore.ColorGray)

	if len(v.overlay) > 0 {
		renderOverlay(dst, v.overlay)
	}
}

func (v view) renderHUD(dst *platformcore.Screen) {
	e := v.engine
	dst.DrawTextColor(0, 0, v.title, platformcore.ColorBrightCyan)

	score := fmt.Sprintf("Score %d", e.Score()+v.power)
	if v.power > 0 {
		score += fmt.Sprintf(" (%d power)", v.power)
	}
	st := e.State()
	line := fmt.Sprintf("%s  Moves %d  Locked %d  Lines %d  Left %d",
		score, e.Moves(), st.Locked, st.LinesCleared, e.Remaining())
	if v.progress != "" {
		line += "  " + v.progress
	}
	dst.DrawTextColor(0, 1, line, platformcore.ColorWhite)
}

// renderPanel lists the next units, each drawn at its own spawn shape.
func (v view) renderPanel(dst *platformcore.Screen, x, y int) {
	dst.DrawTextColor(x, y, "Next", platformcore.ColorCyan)
	row := y + 1
	for _, t := range v.engine.Upcoming(v.upcoming) {
		u := core.SpawnPosition(t, t.Bounds().Width())
		h := u.Bounds().Height()
		if row+h > dst.Height() {
			return
		}
		for _, m := range u.Members {
			dst.SetColor(x+2*m.X+(m.Y&1), row+m.Y, glyphMember, platformcore.ColorGreen)
		}
		row += h + 1
	}
	if v.engine.Upcoming(v.upcoming) == nil {
		dst.DrawTextColor(x, row, "(none)", platformcore.ColorGray)
	}
}

// drawBoard draws b with its top-left cell at (x, y).
func drawBoard(dst *platformcore.Screen, x, y int, b *core.Board, active *core.Unit) {
	for r, row := range b.Rows() {
		for q, filled := range row {
			ch, color := cellGlyph(filled, active, core.C(q, r))
			dst.SetColor(x+2*q+(r&1), y+r, ch, color)
		}
	}
}

func cellGlyph(filled bool, active *core.Unit, c core.Cell) (rune, platformcore.Color) {
	if active != nil {
		member := active.Contains(c)
		switch {
		case member && c == active.Pivot:
			return glyphCenter, platformcore.ColorBrightYellow
		case member:
			return glyphMember, platformcore.ColorYellow
		case c == active.Pivot && !filled:
			return glyphPivot, platformcore.ColorMagenta
		}
	}
	if filled {
		return glyphFilled, platformcore.ColorBlue
	}
	return glyphEmpty, platformcore.ColorGray
}

func renderOverlay(dst *platformcore.Screen, lines []string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := dst.Bounds().Centered(w+4, len(lines)+2)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		dst.DrawHLine(box.X, yy, box.W, ' ', platformcore.ColorDefault)
	}
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColor(x, box.Y+1+i, l, platformcore.ColorBrightWhite)
	}
}
