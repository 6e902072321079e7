/*
 * KestrelGo - a UCI chess engine in Go
 *
 * MIT License
 *
 * Copyright (c) 2022-2026 Konrad Seidel
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package uci contains the UciHandler data structure and the
// functionality to handle the UCI protocol communication between the
// chess user interface and the chess engine.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	golog "log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/kseidel/KestrelGo/internal/logging"
	"github.com/kseidel/KestrelGo/internal/movegen"
	"github.com/kseidel/KestrelGo/internal/moveslice"
	"github.com/kseidel/KestrelGo/internal/position"
	"github.com/kseidel/KestrelGo/internal/search"
	. "github.com/kseidel/KestrelGo/internal/types"
	"github.com/kseidel/KestrelGo/internal/uciInterface"
	"github.com/kseidel/KestrelGo/internal/version"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

// UciHandler handles all communication with the chess ui via UCI and
// controls the options and the search.
// Create an instance with NewUciHandler().
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft
	uciLog     *logging.Logger
}

// ///////////////////////////////////////////////////////////
// Public
// ///////////////////////////////////////////////////////////

// NewUciHandler creates a new UciHandler instance.
// Input / Output io can be replaced by changing the instance's
// InIo and OutIo members.
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myPerft:    movegen.NewPerft(),
		uciLog:     getUciLog(),
	}
	var uciDriver uciInterface.UciDriver = u
	u.mySearch.SetUciHandler(uciDriver)
	return u
}

// Loop starts the main loop to receive commands through the input
// stream (pipe or user)
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			// quit command received
			return
		}
	}
}

// Command handles a single line of UCI protocol aka command and
// returns the uci response as a string. Mostly useful for debugging
// and unit testing.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// SendReadyOk sends the uci response "readyok" to the UCI ui
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an arbitrary string to the UCI ui
func (u *UciHandler) SendInfoString(info string) {
	u.send(fmt.Sprintf("info string %s", info))
}

// SendIterationEndInfo sends the information about the last search
// depth iteration to the UCI ui
func (u *UciHandler) SendIterationEndInfo(depth int, seldepth int, value Value, nodes uint64, nps uint64, time time.Duration, hashfull int, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d multipv 1 score %s nodes %d nps %d time %d hashfull %d pv %s",
		depth, seldepth, value.String(), nodes, nps, time.Milliseconds(), hashfull, pv.StringUci()))
}

// SendSearchUpdate sends a periodic update about the search stats to
// the UCI ui
func (u *UciHandler) SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, time time.Duration, hashfull int) {
	u.send(fmt.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, time.Milliseconds(), hashfull))
}

// SendCurrentRootMove sends the currently searched root move to the
// UCI ui
func (u *UciHandler) SendCurrentRootMove(currMove Move, moveNumber int) {
	u.send(fmt.Sprintf("info currmove %s currmovenumber %d", currMove.StringUci(), moveNumber+1))
}

// SendResult sends the search result to the UCI ui after the search
// has ended or has been stopped
func (u *UciHandler) SendResult(bestMove Move, ponderMove Move) {
	var resultStr strings.Builder
	resultStr.WriteString("bestmove ")
	resultStr.WriteString(bestMove.StringUci())
	if ponderMove != MoveNone {
		resultStr.WriteString(" ponder ")
		resultStr.WriteString(ponderMove.StringUci())
	}
	u.send(resultStr.String())
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

var regexWhiteSpace = regexp.MustCompile(`\s+`)

func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if len(cmd) == 0 {
		return false
	}
	log.Debugf("Received command: %s", cmd)
	u.uciLog.Infof("<< %s", cmd)
	tokens := regexWhiteSpace.Split(cmd, -1)
	// keywords are case insensitive
	switch strings.ToLower(tokens[0]) {
	case "quit":
		u.mySearch.StopSearch()
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.isReadyCommand()
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "ponderhit":
		u.ponderHitCommand()
	case "register":
		u.registerCommand()
	case "debug":
		u.debugCommand()
	case "perft":
		u.perftCommand(tokens)
	case "noop":
	default:
		msg := out.Sprintf("ERROR: Unknown command: %s", cmd)
		u.SendInfoString(msg)
		log.Warning(msg)
	}
	return false
}

// uciCommand responds with the engine identification, the available
// options and "uciok"
func (u *UciHandler) uciCommand() {
	u.send("id name KestrelGo " + version.Version())
	u.send("id author Konrad Seidel")
	for _, o := range *uciOptions.GetOptions() {
		u.send(o)
	}
	u.send("uciok")
}

// setOptionCommand reads the option name and the optional value and
// checks if the uci option exists. If it does its new value is
// validated, stored and its handler function called.
func (u *UciHandler) setOptionCommand(tokens []string) {
	name := ""
	value := ""
	if len(tokens) > 1 && strings.ToLower(tokens[1]) == "name" {
		i := 2
		for i < len(tokens) && strings.ToLower(tokens[i]) != "value" {
			name += tokens[i] + " "
			i++
		}
		name = strings.TrimSpace(name)
		if len(tokens) > i && strings.ToLower(tokens[i]) == "value" && len(tokens) > i+1 {
			value = tokens[i+1]
		}
	} else {
		msg := "ERROR: Command 'setoption' is malformed"
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	o, found := uciOptions[name]
	if !found {
		msg := out.Sprintf("ERROR: Command 'setoption': No such option '%s'", name)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	// spin options are validated against their bounds - leaves the
	// state unchanged on an out of range value
	if o.OptionType == Spin {
		v, err := strconv.Atoi(value)
		minV, _ := strconv.Atoi(o.MinValue)
		maxV, _ := strconv.Atoi(o.MaxValue)
		if err != nil || v < minV || v > maxV {
			msg := out.Sprintf("ERROR: Command 'setoption': Value '%s' out of range %s..%s for option '%s'",
				value, o.MinValue, o.MaxValue, name)
			u.SendInfoString(msg)
			log.Warning(msg)
			return
		}
	}
	o.CurrentValue = value
	o.HandlerFunc(u, o)
}

// isReadyCommand requests the ready state from the search which in
// turn might initialize itself
func (u *UciHandler) isReadyCommand() {
	u.mySearch.IsReady()
}

// ponderHitCommand signals that the move suggested as ponder move
// has been played by the opponent
func (u *UciHandler) ponderHitCommand() {
	u.mySearch.PonderHit()
}

// stopCommand sends a stop signal to the search and perft
func (u *UciHandler) stopCommand() {
	u.mySearch.StopSearch()
	u.myPerft.Stop()
}

// perftCommand starts a perft test with the given depth on the
// current position
func (u *UciHandler) perftCommand(tokens []string) {
	depth := 4 // default
	if len(tokens) > 1 {
		var err error
		depth, err = strconv.Atoi(tokens[1])
		if err != nil {
			msg := out.Sprintf("ERROR: Can't perft on depth='%s'", tokens[1])
			u.SendInfoString(msg)
			log.Warning(msg)
			return
		}
	}
	go u.myPerft.StartPerftMulti(u.myPosition.StringFen(), 1, depth)
}

// goCommand starts a search after reading the given search limits
func (u *UciHandler) goCommand(tokens []string) {
	searchLimits, err := u.readSearchLimits(tokens)
	if err {
		return
	}
	u.mySearch.StartSearch(*u.myPosition, *searchLimits)
}

// positionCommand sets the current position as given by the uci
// command and applies the given moves
func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		msg := out.Sprintf("ERROR: Command 'position' malformed. %s", tokens)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(fenb.String())
		if len(fen) > 0 {
			break
		}
		fallthrough
	default:
		msg := out.Sprintf("ERROR: Command 'position' malformed. %s", tokens)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}

	newPosition, posErr := position.NewPositionFen(fen)
	if posErr != nil {
		msg := out.Sprintf("ERROR: Command 'position' invalid fen '%s' (%s)", fen, posErr)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}

	// check for moves to make
	if i < len(tokens) {
		if tokens[i] != "moves" {
			msg := out.Sprintf("ERROR: Command 'position' malformed moves. %s", tokens)
			u.SendInfoString(msg)
			log.Warning(msg)
			return
		}
		i++
		for i < len(tokens) {
			move := u.myMoveGen.GetMoveFromUci(newPosition, tokens[i])
			if move == MoveNone {
				msg := out.Sprintf("ERROR: Command 'position' illegal move '%s' (%s)", tokens[i], tokens)
				u.SendInfoString(msg)
				log.Warning(msg)
				return
			}
			newPosition.DoMove(move)
			i++
		}
	}
	// only change the engine state when the whole command was valid
	u.myPosition = newPosition
	log.Debugf("New position: %s", u.myPosition.StringFen())
}

// uciNewGameCommand resets position, search state and hash for a
// new game
func (u *UciHandler) uciNewGameCommand() {
	u.mySearch.StopSearch()
	u.myPosition = position.NewPosition()
	u.mySearch.NewGame()
}

// debugCommand will not be implemented
func (u *UciHandler) debugCommand() {
	msg := "Command 'debug' not implemented"
	u.SendInfoString(msg)
	log.Warning(msg)
}

// registerCommand will not be implemented
func (u *UciHandler) registerCommand() {
	msg := "Command 'register' not implemented"
	u.SendInfoString(msg)
	log.Warning(msg)
}

func (u *UciHandler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	searchLimits := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		var err error
		switch strings.ToLower(tokens[i]) {
		case "searchmoves":
			i++
			for i < len(tokens) {
				move := u.myMoveGen.GetMoveFromUci(u.myPosition, tokens[i])
				if move == MoveNone {
					break
				}
				searchLimits.Moves.PushBack(move)
				i++
			}
		case "infinite":
			i++
			searchLimits.Infinite = true
		case "ponder":
			i++
			searchLimits.Ponder = true
		case "depth":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "depth")
			}
			searchLimits.Depth, err = strconv.Atoi(tokens[i])
			if err != nil {
				return u.goCommandError(tokens, "depth")
			}
			i++
		case "nodes":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "nodes")
			}
			parseInt, e := strconv.ParseInt(tokens[i], 10, 64)
			if e != nil {
				return u.goCommandError(tokens, "nodes")
			}
			searchLimits.Nodes = uint64(parseInt)
			i++
		case "mate":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "mate")
			}
			searchLimits.Mate, err = strconv.Atoi(tokens[i])
			if err != nil {
				return u.goCommandError(tokens, "mate")
			}
			i++
		case "movetime":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "movetime")
			}
			parseInt, e := strconv.ParseInt(tokens[i], 10, 64)
			if e != nil {
				return u.goCommandError(tokens, "movetime")
			}
			searchLimits.MoveTime = time.Duration(parseInt * 1_000_000)
			searchLimits.TimeControl = true
			i++
		case "wtime":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "wtime")
			}
			parseInt, e := strconv.ParseInt(tokens[i], 10, 64)
			if e != nil {
				return u.goCommandError(tokens, "wtime")
			}
			searchLimits.WhiteTime = time.Duration(parseInt * 1_000_000)
			searchLimits.TimeControl = true
			i++
		case "btime":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "btime")
			}
			parseInt, e := strconv.ParseInt(tokens[i], 10, 64)
			if e != nil {
				return u.goCommandError(tokens, "btime")
			}
			searchLimits.BlackTime = time.Duration(parseInt * 1_000_000)
			searchLimits.TimeControl = true
			i++
		case "winc":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "winc")
			}
			parseInt, e := strconv.ParseInt(tokens[i], 10, 64)
			if e != nil {
				return u.goCommandError(tokens, "winc")
			}
			searchLimits.WhiteInc = time.Duration(parseInt * 1_000_000)
			i++
		case "binc":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "binc")
			}
			parseInt, e := strconv.ParseInt(tokens[i], 10, 64)
			if e != nil {
				return u.goCommandError(tokens, "binc")
			}
			searchLimits.BlackInc = time.Duration(parseInt * 1_000_000)
			i++
		case "movestogo":
			i++
			if i >= len(tokens) {
				return u.goCommandError(tokens, "movestogo")
			}
			searchLimits.MovesToGo, err = strconv.Atoi(tokens[i])
			if err != nil {
				return u.goCommandError(tokens, "movestogo")
			}
			i++
		default:
			msg := out.Sprintf("ERROR: Command 'go' malformed. Invalid subcommand: %s", tokens[i])
			u.SendInfoString(msg)
			log.Warning(msg)
			return nil, true
		}
	}
	// sanity check / minimum settings
	if !(searchLimits.Infinite ||
		searchLimits.Ponder ||
		searchLimits.Depth > 0 ||
		searchLimits.Nodes > 0 ||
		searchLimits.Mate > 0 ||
		searchLimits.TimeControl) {
		msg := out.Sprintf("ERROR: Command 'go' malformed. No effective limits set %s", tokens)
		u.SendInfoString(msg)
		log.Warning(msg)
		return nil, true
	}
	// sanity check time control
	if searchLimits.TimeControl && searchLimits.MoveTime == 0 {
		if u.myPosition.NextPlayer() == White && searchLimits.WhiteTime == 0 {
			msg := out.Sprintf("ERROR: Command 'go' invalid. White to move but time for white is zero! %s", tokens)
			u.SendInfoString(msg)
			log.Warning(msg)
			return nil, true
		} else if u.myPosition.NextPlayer() == Black && searchLimits.BlackTime == 0 {
			msg := out.Sprintf("ERROR: Command 'go' invalid. Black to move but time for black is zero! %s", tokens)
			u.SendInfoString(msg)
			log.Warning(msg)
			return nil, true
		}
	}
	return searchLimits, false
}

func (u *UciHandler) goCommandError(tokens []string, sub string) (*search.Limits, bool) {
	msg := out.Sprintf("ERROR: Command 'go' malformed. Missing or invalid value for: %s (%s)", sub, tokens)
	u.SendInfoString(msg)
	log.Warning(msg)
	return nil, true
}

// getUciLog returns an instance of a special Logger for the UCI
// protocol communication with an os.Stdout backend. The backend level
// is ERROR, so the Infof trace lines of received commands and sent
// responses are not printed.
// Format is very simple: "time UCI <uci command>"
func getUciLog() *logging.Logger {
	uciLog := logging.MustGetLogger("UCI ")
	uciFormat := logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)
	backend := logging.NewLogBackend(os.Stdout, "", golog.Lmsgprefix)
	backendFormatter := logging.NewBackendFormatter(backend, uciFormat)
	uciBackEnd := logging.AddModuleLevel(backendFormatter)
	uciBackEnd.SetLevel(logging.ERROR, "")
	uciLog.SetBackend(uciBackEnd)
	return uciLog
}

// send sends any string to the UCI user interface
func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
