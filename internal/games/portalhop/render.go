package portalhop

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/portalhop/internal/core"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
)

// Visual characters for rendering
const (
	PlayerChar     = '●'
	PlatformLight  = '▓'
	PlatformDark   = '▒'
	RainbowChar    = '█'
	PortalBright   = '░'
	PortalDim      = '▒'
	ProjectileChar = '•'
	SparkChar      = '·'
	RocketChar     = '^'
)

// collectibleGlyphs maps pickups to their glyph and color.
var collectibleGlyphs = map[sim.Kind]struct {
	r rune
	c core.Color
}{
	sim.KindBoost:  {'$', core.ColorBrightYellow},
	sim.KindFreeze: {'*', core.ColorBrightCyan},
	sim.KindAlert:  {'!', core.ColorBrightRed},
	sim.KindGamble: {'?', core.ColorBrightMagenta},
}

// hudRows is the number of rows reserved above the playfield.
const hudRows = 1

// viewport maps world coordinates to screen cells.
type viewport struct {
	camX, camY float64
	sx, sy     float64 // world units per cell
	w, h       int     // playfield size in cells
}

func newViewport(snap sim.Snapshot, dst *core.Screen) viewport {
	w, h := dst.Width(), dst.Height()-hudRows
	return viewport{
		camX: snap.Camera.X,
		camY: snap.Camera.Y,
		sx:   snap.ViewW / float64(w),
		sy:   snap.ViewH / float64(h),
		w:    w,
		h:    h,
	}
}

// cell returns the screen cell containing a world point.
func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor((x - v.camX) / v.sx)), int(math.Floor((y-v.camY)/v.sy)) + hudRows
}

// span returns the cell rectangle covered by a world box, clipped to the
// playfield. ok is false when nothing is visible.
func (v viewport) span(b sim.Box) (r core.Rect, ok bool) {
	x0 := int(math.Floor((b.X - v.camX) / v.sx))
	x1 := int(math.Ceil((b.X+b.W-v.camX)/v.sx)) - 1
	y0 := int(math.Floor((b.Y - v.camY) / v.sy))
	y1 := int(math.Ceil((b.Y+b.H-v.camY)/v.sy)) - 1
	if x1 < 0 || y1 < 0 || x0 >= v.w || y0 >= v.h {
		return core.Rect{}, false
	}
	x0, x1 = core.Clamp(x0, 0, v.w-1), core.Clamp(x1, 0, v.w-1)
	y0, y1 = core.Clamp(y0, 0, v.h-1), core.Clamp(y1, 0, v.h-1)
	if x0 > x1 || y0 > y1 {
		return core.Rect{}, false
	}
	return core.NewRect(x0, y0+hudRows, x1-x0+1, y1-y0+1), true
}

// field is the playfield area in screen cells.
func (v viewport) field() core.Rect {
	return core.NewRect(0, hudRows, v.w, v.h)
}

// world returns the world point at the center of a playfield cell.
func (v viewport) world(cx, cy int) (float64, float64) {
	return v.camX + (float64(cx)+0.5)*v.sx, v.camY + (float64(cy-hudRows)+0.5)*v.sy
}

// Render draws the current snapshot into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	snap := g.snap
	v := newViewport(snap, dst)

	for _, o := range snap.Objects {
		if o.Physical {
			g.renderPlatform(dst, v, o)
		}
	}
	g.renderPortal(dst, v, snap.Portal.Box)

	for _, c := range snap.Coins {
		glyph := collectibleGlyphs[c.Kind]
		color := glyph.c
		if c.Kind == sim.KindBoost {
			color = core.RainbowPalette[core.Wrap(g.frame/6, len(core.RainbowPalette))]
		}
		x, y := v.cell(c.Pos.X, c.Pos.Y)
		g.setPlayfield(dst, v, x, y, glyph.r, color)
	}
	for _, p := range snap.Shots {
		x, y := v.cell(p.Pos.X, p.Pos.Y)
		g.setPlayfield(dst, v, x, y, ProjectileChar, core.ColorRed)
	}
	for _, p := range snap.Sparks {
		x, y := v.cell(p.Pos.X, p.Pos.Y)
		g.setPlayfield(dst, v, x, y, SparkChar, core.HueColor(p.Hue))
	}
	for _, r := range snap.Rockets {
		x, y := v.cell(r.Pos.X, r.Pos.Y)
		g.setPlayfield(dst, v, x, y, RocketChar, core.HueColor(r.Hue))
	}

	if !snap.Player.Dead {
		x, y := v.cell(snap.Player.Pos.X, snap.Player.Pos.Y)
		g.setPlayfield(dst, v, x, y, PlayerChar, playerColor(snap.Player))
	}

	g.renderHUD(dst, snap)
	g.renderOverlay(dst, snap)
}

// setPlayfield draws a cell only inside the playfield.
func (g *Game) setPlayfield(dst *core.Screen, v viewport, x, y int, r rune, c core.Color) {
	if !v.field().Contains(x, y) {
		return
	}
	dst.SetColor(x, y, r, c)
}

// renderPlatform textures normal platforms with static noise; rainbow
// platforms cycle through the palette.
func (g *Game) renderPlatform(dst *core.Screen, v viewport, o sim.Object) {
	r, ok := v.span(o.Box)
	if !ok {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if o.IsRainbow() {
				c := core.RainbowPalette[core.Wrap(x+y+g.frame/4, len(core.RainbowPalette))]
				dst.SetColor(x, y, RainbowChar, c)
				continue
			}
			wx, wy := v.world(x, y)
			if sim.StaticNoise(wx/8, wy/8) == 255 {
				dst.SetColor(x, y, PlatformLight, core.ColorWhite)
			} else {
				dst.SetColor(x, y, PlatformDark, core.ColorGray)
			}
		}
	}
}

// renderPortal draws the portal as a shimmering noise mask.
func (g *Game) renderPortal(dst *core.Screen, v viewport, b sim.Box) {
	r, ok := v.span(b)
	if !ok {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if sim.StaticNoise(float64(x+g.frame/3), float64(y)) == 255 {
				dst.SetColor(x, y, PortalBright, core.ColorBrightMagenta)
			} else {
				dst.SetColor(x, y, PortalDim, core.ColorMagenta)
			}
		}
	}
}

func playerColor(p sim.PlayerView) core.Color {
	switch {
	case p.Frozen:
		return core.ColorBrightCyan
	case p.Inverted:
		return core.ColorBrightMagenta
	case p.Boosted:
		return core.ColorBrightYellow
	case p.OnRainbow:
		return core.ColorOrange
	default:
		return core.ColorBrightWhite
	}
}

// renderHUD draws stage, best, active effects and level progress.
func (g *Game) renderHUD(dst *core.Screen, snap sim.Snapshot) {
	left := fmt.Sprintf("Stage %d  Best %d", snap.Stage, snap.Best)
	dst.DrawTextColor(1, 0, left, core.ColorBrightWhite)

	x := len(left) + 3
	for _, e := range effectTags(snap.Player) {
		dst.DrawTextColor(x, 0, e.text, e.color)
		x += len(e.text) + 1
	}

	barW := min(20, dst.Width()/4)
	bar := progressBar(snap.Progress, barW)
	dst.DrawTextColor(dst.Width()-len([]rune(bar))-1, 0, bar, core.ColorGreen)
}

type effectTag struct {
	text  string
	color core.Color
}

func effectTags(p sim.PlayerView) []effectTag {
	var tags []effectTag
	if p.Frozen {
		tags = append(tags, effectTag{"FROZEN", core.ColorBrightCyan})
	}
	if p.Boosted {
		tags = append(tags, effectTag{"BOOST", core.ColorBrightYellow})
	}
	if p.Inverted {
		tags = append(tags, effectTag{"INVERTED", core.ColorBrightMagenta})
	}
	return tags
}

// progressBar renders p in [0, 1] as a bracketed bar of width w.
func progressBar(p float64, w int) string {
	if w < 3 {
		return ""
	}
	inner := w - 2
	filled := int(math.Round(core.ClampF(p, 0, 1) * float64(inner)))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", inner-filled) + "]"
}

// renderOverlay draws the clear and pause boxes.
func (g *Game) renderOverlay(dst *core.Screen, snap sim.Snapshot) {
	switch {
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	case snap.Phase == sim.PhaseCleared:
		g.drawCenteredBox(dst, "CLEARED!", fmt.Sprintf("NEXT STAGE %d", snap.Stage+1), core.ColorBrightGreen)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBoxColor(core.NewRect(boxX, boxY, boxW, boxH), c)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, c)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
