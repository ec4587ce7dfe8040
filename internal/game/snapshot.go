package game

import (
	"sort"
)

// KeyStatus is one keyboard letter and its best-known feedback.
type KeyStatus struct {
	Letter string   `json:"letter"`
	Status Feedback `json:"status"`
}

// Snapshot is a read-only, JSON-ready view of a game. The target is only
// included once the round is lost or won.
type Snapshot struct {
	GameID            string      `json:"gameId"`
	Language          string      `json:"language"`
	Mode              string      `json:"mode"`
	Length            int         `json:"length"`
	MaxLength         int         `json:"maxLength"`
	MaxAttempts       int         `json:"maxAttempts"`
	AttemptsRemaining int         `json:"attemptsRemaining"`
	Attempts          []Attempt   `json:"attempts"`
	Outcome           Outcome     `json:"outcome"`
	Keyboard          []KeyStatus `json:"keyboard"`
	Typed             string      `json:"typed,omitempty"`
	Hint              string      `json:"hint,omitempty"`
	Answer            string      `json:"answer,omitempty"`
	NextLength        int         `json:"nextLength,omitempty"`
}

// Snapshot returns the current view of the game. ok is false before the
// first round started.
func (g *Game) Snapshot() (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.round == nil {
		return Snapshot{}, false
	}
	r := g.round.Clone()
	s := Snapshot{
		GameID:            g.ID,
		Language:          g.settings.Language,
		Mode:              g.settings.Mode,
		Length:            r.RequiredLength,
		MaxLength:         g.maxLength,
		MaxAttempts:       r.MaxAttempts,
		AttemptsRemaining: r.AttemptsRemaining,
		Attempts:          r.Attempts,
		Outcome:           r.Outcome,
		Keyboard:          keyStatuses(g.keyboard),
		Typed:             g.buffer.String(),
		NextLength:        g.nextLength,
	}
	if r.Hint.Given {
		s.Hint = string(r.Hint.Letter)
	}
	if r.Outcome != OutcomeInProgress {
		s.Answer = r.Target.String()
	}
	return s, true
}

func keyStatuses(k Keyboard) []KeyStatus {
	out := make([]KeyStatus, 0, len(k))
	for l, f := range k {
		out = append(out, KeyStatus{Letter: string(l), Status: f})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Letter < out[j].Letter })
	return out
}
