//go:build ebiten

package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop"
	"github.com/tomz197/linedrop/internal/loop/config"
)

var (
	colorBackground = color.RGBA{0x10, 0x10, 0x18, 0xff}
	colorMarker     = color.RGBA{0x4c, 0xe0, 0x6c, 0xff}
	colorTarget     = color.RGBA{0xe0, 0x40, 0x40, 0xff}
	colorGuide      = color.RGBA{0x50, 0x50, 0x60, 0xff}
	colorText       = color.White
)

// Game adapts a Driver to the ebiten.Game interface.
type Game struct {
	driver *Driver
	width  int
	height int
	scaleX float32
}

// New constructs a Game for the provided driver.
func New(d *Driver) (*Game, error) {
	w, h := Layout(d.Controller().Variant())
	return &Game{
		driver: d,
		width:  w,
		height: h,
		scaleX: float32(w) / float32(config.ViewWidth),
	}, nil
}

// Update handles input and advances the round by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	var triggers []loop.Trigger
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		triggers = append(triggers, loop.TriggerStopKey)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		triggers = append(triggers, loop.TriggerPointer)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		triggers = append(triggers, loop.TriggerStartKey)
	}

	g.driver.Frame(triggers...)
	return nil
}

// Draw renders the current round.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	round := g.driver.Snapshot()

	if round.Phase == game.PhaseIdle {
		g.center(screen, g.height/2-20, "LINE DROP")
		g.center(screen, g.height/2, "Stop the falling line on the target")
		g.center(screen, g.height/2+30, "Press ENTER or CLICK to Start")
		return
	}

	y := func(pos float64) float32 { return float32(config.ViewTopMargin + pos) }

	for x := float32(0); x < float32(g.width); x += 12 {
		vector.DrawFilledRect(screen, x, y(round.Target), 6, 2, colorTarget, false)
	}
	for x := float32(0); x < float32(g.width); x += 24 {
		vector.DrawFilledRect(screen, x, y(round.Limit), 2, 1, colorGuide, false)
	}

	markerWidth := float32(config.MarkerWidth) * g.scaleX
	vector.DrawFilledRect(screen, (float32(g.width)-markerWidth)/2, y(round.Position)-2, markerWidth, 4, colorMarker, false)

	text.Draw(screen, fmt.Sprintf("Score: %d", round.Score), basicfont.Face7x13, 8, 16, colorText)
	total := fmt.Sprintf("Total: %d", round.TotalScore)
	text.Draw(screen, total, basicfont.Face7x13, g.width-8-7*len(total), 16, colorText)
	text.Draw(screen, fmt.Sprintf("Round: %d  Best: %d", round.Number, round.Best), basicfont.Face7x13, 8, 32, colorGuide)

	if round.Phase == game.PhaseActive {
		g.center(screen, g.height-12, "Press SPACE or CLICK to stop")
		return
	}

	distance := fmt.Sprintf("Distance: %.0f", round.Distance)
	if res, ok := g.driver.LastResult(); ok && res.Round == round.Number && res.Overshoot {
		distance = "Too late!"
	}
	g.center(screen, g.height/2-20, round.ResultLabel)
	g.center(screen, g.height/2, fmt.Sprintf("Score: %d", round.Score))
	g.center(screen, g.height/2+16, distance)
	recent := game.RecentLabels(g.driver.Controller().History(), config.RecentResults)
	g.center(screen, g.height/2+40, "Recent: "+recent)
	g.center(screen, g.height/2+64, "ENTER or CLICK to Play Again")
}

func (g *Game) center(screen *ebiten.Image, y int, s string) {
	x := (g.width - 7*len(s)) / 2
	text.Draw(screen, s, basicfont.Face7x13, x, y, colorText)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
