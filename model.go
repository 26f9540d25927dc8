// This files defines the model structure and the actions available to the
// player.

package main

import (
	"fmt"
	"log"
	"runtime"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"
)

// Version is the program version.
const Version = "v0.1.0"

const (
	UIWidth  = 80 // UI width
	UIHeight = 24 // UI height
)

// model describes the gruid.Model of the game.
type model struct {
	g         *Game      // game state
	gd        gruid.Grid // drawing grid
	keys      map[gruid.Key]Action
	msg       *ui.Label // messages of the current turn
	logs      Logs      // message log
	status    *ui.Label // status line
	look      *ui.Label // description of the player cell
	seeAll    bool      // reveal the whole map
	guardView bool      // show where guards would see the player
	quitting  bool
}

func newModel(g *Game) *model {
	md := &model{g: g, gd: gruid.NewGrid(UIWidth, UIHeight)}
	md.msg = ui.NewLabel(ui.StyledText{})
	md.msg.AdjustWidth = false
	md.status = ui.NewLabel(ui.StyledText{})
	md.status.AdjustWidth = false
	md.look = ui.NewLabel(ui.StyledText{})
	md.look.AdjustWidth = false
	md.initKeys()
	return md
}

func (md *model) initKeys() {
	md.keys = map[gruid.Key]Action{
		gruid.KeyArrowLeft:  ActionMove{Delta: gruid.Point{-1, 0}, Dist: 1},
		gruid.KeyArrowDown:  ActionMove{Delta: gruid.Point{0, -1}, Dist: 1},
		gruid.KeyArrowUp:    ActionMove{Delta: gruid.Point{0, 1}, Dist: 1},
		gruid.KeyArrowRight: ActionMove{Delta: gruid.Point{1, 0}, Dist: 1},
		"h":                 ActionMove{Delta: gruid.Point{-1, 0}, Dist: 1},
		"j":                 ActionMove{Delta: gruid.Point{0, -1}, Dist: 1},
		"k":                 ActionMove{Delta: gruid.Point{0, 1}, Dist: 1},
		"l":                 ActionMove{Delta: gruid.Point{1, 0}, Dist: 1},
		"H":                 ActionMove{Delta: gruid.Point{-1, 0}, Dist: 2},
		"J":                 ActionMove{Delta: gruid.Point{0, -1}, Dist: 2},
		"K":                 ActionMove{Delta: gruid.Point{0, 1}, Dist: 2},
		"L":                 ActionMove{Delta: gruid.Point{1, 0}, Dist: 2},
		".":                 ActionWait{},
		"z":                 ActionWait{},
		gruid.KeyEnter:      ActionWait{},
		"R":                 ActionRestart{},
		"A":                 ActionSeeAll{},
		"V":                 ActionGuardView{},
		"Q":                 ActionQuit{},
	}
}

func (md *model) init() gruid.Effect {
	md.Logf("Level %d. Loot the house and see every corner of it.", md.g.Level+1)
	if runtime.GOOS == "js" {
		return nil
	}
	return gruid.Sub(subSig)
}

// Logf adds a message to the log.
func (md *model) Logf(format string, args ...any) {
	md.logs.add(logEntry{Text: fmt.Sprintf(format, args...)})
}

// LogfStyled adds a styled message to the log.
func (md *model) LogfStyled(style logStyle, format string, args ...any) {
	md.logs.add(logEntry{Text: fmt.Sprintf(format, args...), Style: style})
}

// Update implements gruid.Model.Update.
func (md *model) Update(msg gruid.Msg) gruid.Effect {
	switch msg := msg.(type) {
	case gruid.MsgInit:
		return md.init()
	case gruid.MsgQuit:
		md.quitting = true
		return gruid.End()
	case gruid.MsgKeyDown:
		a, ok := md.keys[msg.Key]
		if !ok {
			return nil
		}
		eff, _ := a.Handle(md)
		return eff
	}
	return nil
}

// Action represents types that describe and handle a player action.
type Action interface {
	// Handle processes an action and returns possibly an effect along with
	// a boolean that reports whether the action took a game turn.
	Handle(*model) (gruid.Effect, bool)
}

// ActionMove moves the player, possibly leaping two cells.
type ActionMove struct {
	Delta gruid.Point
	Dist  int
}

func (a ActionMove) Handle(md *model) (gruid.Effect, bool) {
	return md.turn(a.Delta, a.Dist)
}

// ActionWait waits for a turn.
type ActionWait struct{}

func (a ActionWait) Handle(md *model) (gruid.Effect, bool) {
	return md.turn(gruid.Point{}, 0)
}

// turn runs a game turn and reports what happened.
func (md *model) turn(delta gruid.Point, dist int) (gruid.Effect, bool) {
	g := md.g
	if g.Won {
		return nil, false
	}
	md.logs.tick()
	level, health := g.Level, g.Player.Health
	res, err := g.Move(delta, dist)
	if err != nil {
		log.Print(err)
		md.LogfStyled(logError, "error: %v", err)
		return nil, false
	}
	switch {
	case g.Won:
		md.LogfStyled(logSpecial, "you escaped with the loot of every house! Press R to replay the last one.")
	case g.Level != level:
		md.LogfStyled(logSpecial, "level %d.", g.Level+1)
	case g.Player.Dead():
		md.LogfStyled(logHurtPlayer, "you were caught. Press R to restart the level.")
	case g.Player.Health < health:
		md.LogfStyled(logHurtPlayer, "a guard hits you!")
	case g.Finished && res == TurnPassed:
		md.LogfStyled(logSpecial, "you have seen and looted everything: leave the map.")
	case g.Map.AnyGuardChasing():
		md.LogfStyled(logNotable, "you are being chased!")
	}
	return nil, res != TurnNone
}

// ActionRestart restarts the current level.
type ActionRestart struct{}

func (a ActionRestart) Handle(md *model) (gruid.Effect, bool) {
	md.logs.tick()
	if err := md.g.Restart(); err != nil {
		log.Print(err)
		md.LogfStyled(logError, "error: %v", err)
		return nil, false
	}
	md.LogfStyled(logSpecial, "level %d, again.", md.g.Level+1)
	return nil, false
}

// ActionSeeAll toggles full map reveal.
type ActionSeeAll struct{}

func (a ActionSeeAll) Handle(md *model) (gruid.Effect, bool) {
	md.seeAll = !md.seeAll
	return nil, false
}

// ActionGuardView toggles the guard sight overlay.
type ActionGuardView struct{}

func (a ActionGuardView) Handle(md *model) (gruid.Effect, bool) {
	md.guardView = !md.guardView
	return nil, false
}

// ActionQuit quits the game.
type ActionQuit struct{}

func (a ActionQuit) Handle(md *model) (gruid.Effect, bool) {
	md.quitting = true
	return gruid.End(), false
}
