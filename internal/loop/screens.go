package loop

import (
	"fmt"
	"image/color"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/scoreboard"
)

var (
	textColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dimColor   = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	alertColor = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	pipColor   = color.RGBA{R: 102, G: 204, B: 255, A: 255}
)

// HUD layout in logical units.
const (
	hudMargin = 2.0
	lineStep  = 4.0
	pipWidth  = 2.0
	pipHeight = 3.0
	pipGap    = 1.0
)

// Draw renders the game: projectiles, player, formation, debris, the status
// line and the game-over overlay.
func (s *State) Draw(surface draw.Surface, sprites object.SpriteSet) error {
	pf := s.Playfield
	surface.ClearRect(0, 0, pf.Width, pf.Height)

	ctx := object.DrawContext{
		Surface:  surface,
		Sprites:  sprites,
		Features: s.Settings.Features,
	}
	if err := object.DrawProjectiles(ctx, s.Projectiles); err != nil {
		return err
	}
	for _, o := range []object.Object{s.Player, s.Formation, s.Debris} {
		if err := o.Draw(ctx); err != nil {
			return err
		}
	}

	s.drawStatus(surface)
	if s.GameOver {
		drawGameOver(surface, pf)
	}
	return nil
}

// drawStatus draws score, wave and life pips in the top-left corner.
func (s *State) drawStatus(surface draw.Surface) {
	f := s.Settings.Features
	surface.Save()
	defer surface.Restore()

	surface.SetFillColor(textColor)
	surface.SetTextAlign(draw.AlignLeft)

	y := hudMargin
	if f.Scoring {
		surface.FillText(fmt.Sprintf("Score: %d", s.Score), hudMargin, y)
		y += lineStep
	}
	if f.Waves {
		surface.FillText(fmt.Sprintf("Wave: %d", s.Wave), hudMargin, y)
		y += lineStep
	}
	if f.Lives {
		surface.SetStrokeColor(pipColor)
		surface.SetFillColor(pipColor)
		for i := range s.Player.MaxLives {
			x := hudMargin + float64(i)*(pipWidth+pipGap)
			surface.StrokeRect(x, y, pipWidth, pipHeight)
		}
		for i := range s.Player.Lives {
			x := hudMargin + float64(i)*(pipWidth+pipGap)
			surface.FillRect(x, y, pipWidth, pipHeight)
		}
	}
}

func drawGameOver(surface draw.Surface, pf object.Playfield) {
	surface.Save()
	defer surface.Restore()

	surface.SetTextAlign(draw.AlignCenter)
	surface.SetFillColor(alertColor)
	surface.FillText("GAME OVER!", pf.Width/2, pf.Height/2-lineStep)
	surface.SetFillColor(textColor)
	surface.FillText("Press R to restart!", pf.Width/2, pf.Height/2+lineStep/2)
}

var titleArt = []string{
	` ___ _  ___   ___   ___  ___ ___  ___ `,
	`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
	` | || .' |\ V / _ \| |) | _||   /\__ \`,
	`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
}

var controlLines = []string{
	"A D / < >  . .  Move",
	"SPACE / 1  . .  Shoot",
	"Mouse  . . .  Aim/Shoot",
	"R  . . . .  Restart",
	"Q  . . . . . .  Quit",
}

// DrawTitle draws the start screen with the best scores of the server.
// blink toggles the start prompt.
func DrawTitle(surface draw.Surface, pf object.Playfield, board *scoreboard.Board, blink bool) {
	surface.Save()
	defer surface.Restore()

	surface.ClearRect(0, 0, pf.Width, pf.Height)
	surface.SetTextAlign(draw.AlignCenter)
	surface.SetFillColor(textColor)

	cx := pf.Width / 2
	y := pf.Height/2 - 30
	for _, line := range titleArt {
		surface.FillText(line, cx, y)
		y += 2
	}

	y += lineStep
	surface.SetFillColor(dimColor)
	surface.FillText("~ Space Invaders ~", cx, y)

	y += lineStep
	surface.SetFillColor(textColor)
	surface.FillText("Controls", cx, y)
	for _, line := range controlLines {
		y += 2
		surface.FillText(line, cx, y)
	}

	y += lineStep
	if blink {
		surface.FillText(">>  Press SPACE to Start  <<", cx, y)
	}

	if board == nil {
		return
	}
	top := board.Top(TitleScoreRows)
	if len(top) == 0 {
		return
	}
	y += lineStep
	surface.FillText("High Scores", cx, y)
	surface.SetFillColor(dimColor)
	for i, e := range top {
		y += 2
		surface.FillText(fmt.Sprintf("%d. %-16s %6d", i+1, e.Name, e.Score), cx, y)
	}
}

// drawShutdown draws the server shutdown notice with its countdown.
func drawShutdown(surface draw.Surface, pf object.Playfield, remaining float64) {
	surface.Save()
	defer surface.Restore()

	surface.ClearRect(0, 0, pf.Width, pf.Height)
	surface.SetTextAlign(draw.AlignCenter)
	cx, cy := pf.Width/2, pf.Height/2

	surface.SetFillColor(alertColor)
	surface.FillText("SERVER SHUTTING DOWN", cx, cy-6)
	surface.SetFillColor(textColor)
	surface.FillText("The server is restarting for maintenance.", cx, cy-2)
	surface.FillText("Please reconnect in a moment.", cx, cy)
	surface.FillText(fmt.Sprintf("Disconnecting in %d seconds...", int(remaining)+1), cx, cy+4)
	surface.FillText("Press Q to disconnect now", cx, cy+8)
}

// drawInactivity draws the inactivity warning over whatever is on screen.
func drawInactivity(surface draw.Surface, pf object.Playfield, secondsLeft int) {
	surface.Save()
	defer surface.Restore()

	cx, cy := pf.Width/2, pf.Height/2
	surface.ClearRect(0, cy-8, pf.Width, 16)
	surface.SetTextAlign(draw.AlignCenter)

	surface.SetFillColor(alertColor)
	surface.FillText("INACTIVITY WARNING", cx, cy-6)
	surface.SetFillColor(textColor)
	surface.FillText(fmt.Sprintf("You will be disconnected in %d seconds.", secondsLeft), cx, cy-2)
	surface.FillText("Press any key to continue", cx, cy+2)
}
