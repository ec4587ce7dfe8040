package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RubyShuey/Otter/internal/game"
)

const (
	boardX   = 2
	boardY   = 2
	tileStep = 4 // tile width plus gap
)

var (
	styleBase    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleTitle   = styleBase.Bold(true)
	styleDim     = styleBase.Foreground(tcell.ColorGray)
	styleTyped   = styleBase.Background(tcell.ColorDarkSlateGray)
	styleEmpty   = styleBase.Foreground(tcell.ColorDimGray)
	styleWarn    = styleBase.Foreground(tcell.ColorLightCoral)
	styleGood    = styleBase.Foreground(tcell.ColorLightGreen)
	styleMessage = styleBase.Foreground(tcell.ColorLightYellow)
)

// feedbackStyle returns the tile style for a letter with feedback f.
func feedbackStyle(f game.Feedback) tcell.Style {
	switch f {
	case game.FeedbackCorrect:
		return styleBase.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	case game.FeedbackPresent:
		return styleBase.Foreground(tcell.ColorBlack).Background(tcell.ColorGold)
	case game.FeedbackAbsent:
		return styleBase.Background(tcell.ColorDimGray)
	}
	return styleBase.Background(tcell.ColorDarkSlateGray)
}

// draw renders the whole screen.
func (a *App) draw() {
	a.screen.Clear()
	round, ok := a.game.Round()
	if !ok {
		a.screen.Show()
		return
	}
	s := a.game.Settings()

	title := fmt.Sprintf("OTTER  %s  %d letters  %d/%d attempts left",
		s.Language, round.RequiredLength, round.AttemptsRemaining, round.MaxAttempts)
	a.drawText(0, 0, title, styleTitle)

	y := boardY
	for _, at := range round.Attempts {
		for i, l := range at.Guess.Letters() {
			a.drawTile(boardX+i*tileStep, y, upper(string(l), s.Language), feedbackStyle(at.Feedback[i]))
		}
		y++
	}
	if round.Outcome == game.OutcomeInProgress {
		typed := []rune(a.game.Typed())
		for i := range round.RequiredLength {
			glyph := "_"
			if i < len(typed) {
				glyph = upper(string(typed[i]), s.Language)
			}
			a.drawTile(boardX+i*tileStep, y, glyph, styleTyped)
		}
		y++
		for range round.AttemptsRemaining - 1 {
			for i := range round.RequiredLength {
				a.drawTile(boardX+i*tileStep, y, "·", styleEmpty)
			}
			y++
		}
	}

	y = a.drawKeyboard(y + 1)
	if a.message != "" {
		a.drawText(0, y+1, a.message, messageStyle(a.msgKind))
	}
	a.drawText(0, y+2, "Enter submit  Backspace delete  Esc quit", styleDim)
	a.screen.Show()
}

// drawKeyboard renders the alphabet of the word list coloured by keyboard
// status, wrapping at the screen width. It returns the row after it.
func (a *App) drawKeyboard(y int) int {
	bank, err := a.banks.Bank(a.game.Settings().Language)
	if err != nil {
		return y
	}
	lang := a.game.Settings().Language
	kb := a.game.Keyboard()
	w, _ := a.screen.Size()
	x := boardX
	for _, l := range bank.Alphabet() {
		if x+3 > w && x > boardX {
			x, y = boardX, y+1
		}
		x = a.drawTile(x, y, upper(string(l), lang), feedbackStyle(kb.Status(l))) + 1
	}
	return y + 1
}

func messageStyle(k msgKind) tcell.Style {
	switch k {
	case msgWarn:
		return styleWarn
	case msgGood:
		return styleGood
	}
	return styleMessage
}

// drawTile draws glyph padded by one blank column on each side and returns
// the column after the tile.
func (a *App) drawTile(x, y int, glyph string, style tcell.Style) int {
	a.screen.SetContent(x, y, ' ', nil, style)
	x = a.putGlyph(x+1, y, glyph, style)
	a.screen.SetContent(x, y, ' ', nil, style)
	return x + 1
}

// putGlyph draws glyph at (x, y) and returns the column after it.
func (a *App) putGlyph(x, y int, glyph string, style tcell.Style) int {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return x
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	a.screen.SetContent(x, y, runes[0], combc, style)
	width := runewidth.StringWidth(glyph)
	if width == 2 {
		a.screen.SetContent(x+1, y, ' ', nil, style)
	}
	return x + max(width, 1)
}

func (a *App) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		a.screen.SetContent(x, y, ch, nil, style)
		x += max(runewidth.RuneWidth(ch), 1)
	}
}

// upper returns s in upper case under lang's casing rules.
func upper(s, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return cases.Upper(tag).String(s)
}
