package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/linedrop/internal/draw"
	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop/config"
	"github.com/tomz197/linedrop/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On phase, inactivity or shutdown transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	round := c.state.Round
	if round.Phase != c.state.prevPhase ||
		c.state.isInactive != c.state.wasInactive ||
		c.state.shuttingDown != c.state.prevShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevPhase = round.Phase
		c.state.wasInactive = c.state.isInactive
		c.state.prevShutdown = c.state.shuttingDown
	}

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
		Field:  c.field,
	}

	if round.Phase != game.PhaseIdle && !c.overlayActive() {
		objects := []object.Object{
			object.LimitLine{},
			object.TargetLine{Gap: config.TargetDashGap},
			object.Marker{Position: round.Position, Width: config.MarkerWidth},
		}
		for _, obj := range objects {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
		for _, obj := range c.effects {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	// Draw UI overlay
	c.drawUI(ctx)

	return c.chunkWriter.Flush()
}

// overlayActive reports whether a full-screen notice replaces the playfield.
func (c *Client) overlayActive() bool {
	return c.state.shuttingDown || c.state.isInactive
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(ctx object.DrawContext) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shuttingDown {
		c.drawShutdownScreen(ctx, centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(ctx, centerX, centerY)
		return
	}

	switch c.state.Round.Phase {
	case game.PhaseIdle:
		c.drawStartScreen(ctx, centerX, centerY)
	case game.PhaseActive:
		c.drawPlayingHUD(ctx, termWidth, termHeight)
	case game.PhaseResult:
		c.drawPlayingHUD(ctx, termWidth, termHeight)
		c.drawResultPanel(ctx, centerX, centerY)
	}
}

// drawLines draws each line centered on centerX, starting at row y.
func drawLines(ctx object.DrawContext, centerX, y int, lines []string) {
	for i, line := range lines {
		_ = object.Centered(centerX, y+i, line).Draw(ctx)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(ctx object.DrawContext, centerX, centerY int) {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	drawLines(ctx, centerX, centerY-2, []string{
		"INACTIVITY WARNING",
		"",
		fmt.Sprintf("You have been inactive for too long. You will be disconnected in %3d seconds.", remaining),
		"",
		"Press any key to continue",
	})
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(ctx object.DrawContext, centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` _     ___ _  _ ___   ___  ___  ___  ___  `,
		`| |   |_ _| \| | __| |   \| _ \/ _ \| _ \ `,
		`| |__  | || .` + "`" + ` | _|  | |) |   / (_) |  _/ `,
		`|____||___|_|\_|___| |___/|_|_\\___/|_|   `,
		`                                          `,
	}

	titleStartY := centerY - 8
	drawLines(ctx, centerX, titleStartY, titleArt)

	v := c.session.Controller().Variant()
	subtitle := fmt.Sprintf("~ Stop the falling line on the target (%s) ~", v.Name)
	drawLines(ctx, centerX, titleStartY+len(titleArt)+1, []string{subtitle})

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	controlLines := []string{
		"Controls",
		"SPACE / CLICK  . . .  Stop",
		"ENTER / S / CLICK . Start",
		"Q  . . . . . . . . .  Quit",
	}
	drawLines(ctx, centerX, controlsY, controlLines)

	// Scoring table
	tableY := controlsY + len(controlLines) + 1
	tiers := v.Thresholds.Tiers()
	scoring := make([]string, 0, len(tiers)+1)
	scoring = append(scoring, "Scoring")
	for _, t := range tiers {
		if t.Points == 0 {
			continue
		}
		scoring = append(scoring, fmt.Sprintf("%-9s within %3.0f  %3d pts", t.Label, t.MaxDistance, t.Points))
	}
	drawLines(ctx, centerX, tableY, scoring)

	// Blinking start prompt
	promptY := tableY + len(scoring) + 1
	prompt := ">>  Press ENTER or CLICK to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	drawLines(ctx, centerX, promptY, []string{prompt})
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(ctx object.DrawContext, termWidth, termHeight int) {
	round := c.state.Round

	_ = object.Text{X: 2, Y: 1, Value: fmt.Sprintf("Score: %-4d", round.Score)}.Draw(ctx)

	totalText := fmt.Sprintf("Total: %-7d", round.TotalScore)
	_ = object.Text{X: termWidth - len(totalText) - 1, Y: 1, Value: totalText}.Draw(ctx)

	statsText := fmt.Sprintf("Round: %-4d Best: %-4d", round.Number, round.Best)
	_ = object.Text{X: 2, Y: 2, Value: statsText}.Draw(ctx)

	if round.Phase == game.PhaseActive {
		hint := "Press SPACE or CLICK to stop the line on the target"
		_ = object.Centered(termWidth/2, termHeight-1, hint).Draw(ctx)
	}

	// Live players (bottom right)
	playersText := fmt.Sprintf("Players: %-4d", c.state.Players)
	_ = object.Text{X: termWidth - len(playersText) - 1, Y: termHeight, Value: playersText}.Draw(ctx)
}

// drawResultPanel draws the boxed result of the last round.
func (c *Client) drawResultPanel(ctx object.DrawContext, centerX, centerY int) {
	round := c.state.Round
	distance := fmt.Sprintf("Distance: %.0f", round.Distance)
	if c.state.lastResult.Round == round.Number && c.state.lastResult.Overshoot {
		distance = "Too late!"
	}
	content := []string{
		round.ResultLabel,
		"",
		fmt.Sprintf("Score: %d", round.Score),
		distance,
		"",
		"Recent: " + game.RecentLabels(c.session.Controller().History(), config.RecentResults),
		"",
		"ENTER or CLICK to Play Again",
	}

	width := 0
	for _, line := range content {
		if len(line) > width {
			width = len(line)
		}
	}
	width += 4

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, "┌"+strings.Repeat("─", width)+"┐")
	for _, line := range content {
		pad := width - len(line)
		lines = append(lines, "│"+strings.Repeat(" ", pad/2)+line+strings.Repeat(" ", pad-pad/2)+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", width)+"┘")

	top := centerY - len(lines)/2
	drawLines(ctx, centerX, top, lines)

	label := object.Centered(centerX, top+1, round.ResultLabel)
	label.Style = labelStyle(round.Score)
	_ = label.Draw(ctx)
}

// labelStyle colors a result label by how good the round was.
func labelStyle(points int) string {
	switch {
	case points >= game.PointsGreat:
		return draw.ColorBold + draw.ColorBrightGreen
	case points > game.PointsMiss:
		return draw.ColorBold + draw.ColorYellow
	default:
		return draw.ColorBold + draw.ColorRed
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(ctx object.DrawContext, centerX, centerY int) {
	remaining := int(c.state.shutdownTimer) + 1
	drawLines(ctx, centerX, centerY-3, []string{
		"SERVER SHUTTING DOWN",
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %2d seconds...", remaining),
		"",
		"Press Q to disconnect now",
	})
}
