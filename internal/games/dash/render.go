package dash

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/blockdash/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	BlockChar    = '▓'
	GroundChar   = '═'
	TextureChar  = '·'
	SparkChar    = '*'
	FadingChar   = '·'
	MeterFull    = '■'
	MeterEmpty   = '□'
	meterCells   = 10
	textureEvery = 6 // Cells between ground texture marks
)

// fadingLife is the remaining life below which a particle is drawn faded.
const fadingLife = 0.15

// Draw renders a snapshot onto dst. cellW and cellH are the world size of
// one terminal cell.
func Draw(dst *core.Screen, snap Snapshot, cellW, cellH float64) {
	dst.Clear()
	if cellW <= 0 || cellH <= 0 {
		return
	}

	groundRow := int(math.Ceil(snap.GroundY / cellH))
	drawGround(dst, groundRow, snap.Scroll/cellW)

	for _, o := range snap.Obstacles {
		color := core.ColorRed
		if o.Kind == LowBlock {
			color = core.ColorOrange
		}
		dst.DrawRect(o.Rect.ToCells(cellW, cellH), BlockChar, color)
	}

	for _, p := range snap.Particles {
		ch := SparkChar
		if p.Life < fadingLife {
			ch = FadingChar
		}
		dst.SetColor(int(math.Floor(p.X/cellW)), int(math.Floor(p.Y/cellH)), ch, p.Color)
	}

	playerColor := core.ColorBrightBlue
	if snap.Player.Invulnerable {
		playerColor = core.ColorBrightGreen
	}
	dst.DrawRect(snap.Player.Rect.ToCells(cellW, cellH), PlayerChar, playerColor)

	drawHUD(dst, snap)

	switch snap.Phase {
	case core.PhaseIdle:
		drawCenteredMessage(dst, "BLOCK DASH", "Enter to start  |  Up jump  |  Space dash")
	case core.PhaseEnded:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  |  R to restart", snap.Score, snap.Best))
	}
}

// drawGround draws the ground line and a texture that scrolls with the world.
func drawGround(dst *core.Screen, row int, offset float64) {
	dst.DrawHLine(0, row, dst.Width(), GroundChar, core.ColorGray)

	shift := int(math.Floor(offset)) % textureEvery
	for x := textureEvery - 1 - shift; x < dst.Width(); x += textureEvery {
		dst.SetColor(x, row+1, TextureChar, core.ColorDarkGray)
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	left := fmt.Sprintf(" Score: %d  Best: %d  %.1fm ", snap.Score, snap.Best, snap.Distance)
	dst.DrawTextColor(1, 0, left, core.ColorWhite)

	meter, color := dashMeter(snap.Player)
	right := " Dash " + meter + " "
	dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, color)
}

// dashMeter draws the cooldown as a bar that fills up as the dash recharges.
func dashMeter(p PlayerView) (string, core.Color) {
	filled := int(math.Round((1 - p.CooldownFraction) * meterCells))
	filled = core.Max(0, core.Min(meterCells, filled))

	bar := strings.Repeat(string(MeterFull), filled) + strings.Repeat(string(MeterEmpty), meterCells-filled)
	switch {
	case p.Dashing:
		return bar, core.ColorBrightGreen
	case p.DashReady():
		return bar, core.ColorCyan
	default:
		return bar, core.ColorGray
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleLen := len([]rune(title))
	subLen := len([]rune(subtitle))

	boxW := core.Max(titleLen, subLen) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColor(box.X+(boxW-titleLen)/2, box.Y+1, title, core.ColorYellow)
	dst.DrawTextColor(box.X+(boxW-subLen)/2, box.Y+3, subtitle, core.ColorWhite)
}
