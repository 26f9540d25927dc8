package main

import (
	"fmt"
	"log"
	"unicode"
	"unicode/utf8"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"
)

// Logs contains the message log of a game.
type Logs struct {
	Entries  []logEntry // log entries, oldest first
	NextTick int        // index of the first entry of the current turn
}

// logEntry describes a log entry.
type logEntry struct {
	Text  string   // text for entry
	Style logStyle // style
	Dups  int      // number of duplicates of current entry
}

func (e logEntry) String() string {
	s := e.Text
	if e.Dups > 0 {
		s += fmt.Sprintf(" (%d×)", e.Dups+1)
	}
	if r := e.Style.Rune(); r != 'N' {
		s = fmt.Sprintf("@%c%s@N", r, s)
	}
	return s
}

// logStyle describes various logging styles.
type logStyle int

const (
	logNormal     logStyle = iota
	logError               // UI or game error
	logHurtPlayer          // when player is hurt or caught
	logNotable             // when the player is noticed or chased
	logSpecial             // level transitions and victory
)

// Rune returns the markup @rune corresponding to each log style.
func (st logStyle) Rune() rune {
	switch st {
	case logError:
		return 'R'
	case logHurtPlayer:
		return 'O'
	case logNotable:
		return 'Y'
	case logSpecial:
		return 'C'
	default:
		return 'N'
	}
}

// Markups contains the styling markup-characters we use for StyledText.
var Markups = map[rune]gruid.Style{
	'C': {Fg: ColorCyan},
	'O': {Fg: ColorOrange},
	'R': {Fg: ColorRed},
	'Y': {Fg: ColorYellow},
}

// UpperFirst returns a string with its first letter in upper case.
func UpperFirst(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[utf8.RuneLen(r):]
}

// add appends a new entry. An entry repeating the last one of the same turn
// only increments its duplicate count.
func (lg *Logs) add(e logEntry) {
	e.Text = UpperFirst(e.Text)
	if n := len(lg.Entries); n > lg.NextTick && lg.Entries[n-1].Text == e.Text {
		lg.Entries[n-1].Dups++
		return
	}
	log.Printf("gamelog: %s", e.Text)
	lg.Entries = append(lg.Entries, e)
	if len(lg.Entries) > 1000 {
		drop := 100
		lg.Entries = lg.Entries[drop:]
		lg.NextTick = max(lg.NextTick-drop, 0)
	}
}

// tick starts a new turn: entries from previous turns are no longer
// current.
func (lg *Logs) tick() {
	lg.NextTick = len(lg.Entries)
}

// Current returns the entries logged during the current turn, as styled
// text.
func (lg *Logs) Current() ui.StyledText {
	stt := ui.StyledText{}.WithMarkups(Markups)
	s := ""
	for _, e := range lg.Entries[lg.NextTick:] {
		if s != "" {
			s += " "
		}
		s += e.String()
	}
	return stt.WithText(s)
}
