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

// Package search implements the iterative deepening alpha beta
// search of the chess engine with its prunings, extensions and the
// quiescence search. The search runs N parallel workers (Lazy SMP)
// which share only the transposition table, the stop flag and the
// node counter.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kseidel/KestrelGo/internal/config"
	myLogging "github.com/kseidel/KestrelGo/internal/logging"
	"github.com/kseidel/KestrelGo/internal/position"
	"github.com/kseidel/KestrelGo/internal/transpositiontable"
	. "github.com/kseidel/KestrelGo/internal/types"
	"github.com/kseidel/KestrelGo/internal/uciInterface"
	"github.com/kseidel/KestrelGo/internal/util"
)

var out = message.NewPrinter(language.German)

// Search represents the data structure of the chess engine search.
// Create a new instance with NewSearch().
// Lifecycle: Idle -> (StartSearch) Running -> (StopSearch or limit)
// Stopping -> Idle. StopSearch is idempotent and the search reaches
// Idle within a bounded time after it.
type Search struct {
	log *logging.Logger

	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt *transpositiontable.TtTable

	// shared search state
	stopFlag     util.Flag
	nodesVisited uint64 // atomic - shared by all workers

	startTime         time.Time
	timeLimit         time.Duration
	extraTime         time.Duration
	searchLimits      *Limits
	lastUciUpdateTime time.Time

	workers []*worker

	hasResult        bool
	lastSearchResult *Result
}

// NewSearch creates a new Search instance. If the uci handler is not
// set all output will be sent to the log only.
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
	}
}

// NewGame stops any running search and resets the search state to be
// ready for a different game. The transposition table is cleared.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
}

// StartSearch starts the search on the given position with the given
// search limits. The search runs in its own goroutines - StartSearch
// returns as soon as the search has been initialized. Search can be
// stopped with StopSearch() and its status checked with
// IsSearching().
// This takes a copy of the position and the search limits.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	// acquire init phase lock
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	go s.run(&p, &sl)
	// wait until the search is running and init is done before
	// returning to the caller
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible (within
// 50 ms). The workers stop cooperatively, a result is sent to the
// UCI handler in any case. Blocks until the search has stopped.
// Idempotent - stopping an idle search has no effect.
func (s *Search) StopSearch() {
	s.stopFlag.Set()
	s.WaitWhileSearching()
}

// PonderHit is called by the UCI handler when the engine has been
// instructed to ponder and the pondered move was played. Activates
// the time control without interrupting the running search.
func (s *Search) PonderHit() {
	if s.IsSearching() && s.searchLimits != nil && s.searchLimits.Ponder {
		s.log.Debug("Ponderhit during search - activating time control")
		s.searchLimits.Ponder = false
		if s.searchLimits.TimeControl {
			s.startTimer()
		}
		return
	}
	s.log.Warning("Ponderhit received while not pondering")
}

// IsSearching checks if the search is currently running
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until a running search has stopped
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler sets the UCI handler to communicate with the UCI
// user interface
func (s *Search) SetUciHandler(uciHandler uciInterface.UciDriver) {
	s.uciHandlerPtr = uciHandler
}

// IsReady initializes the search (e.g. allocates the transposition
// table) and signals readyok to the UCI handler when done.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// ClearHash clears the transposition table.
// Is ignored with a warning while searching.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		msg := "Can't clear hash while searching."
		s.sendInfoStringToUci(msg)
		return
	}
	if s.tt != nil {
		s.tt.Clear()
		s.sendInfoStringToUci("Hash cleared")
	}
}

// ResizeCache resizes and clears the transposition table to the size
// configured in the search configuration.
// Is ignored with a warning while searching.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		msg := "Can't resize hash while searching."
		s.sendInfoStringToUci(msg)
		return
	}
	s.tt = nil
	s.initialize()
	if s.tt != nil {
		s.sendInfoStringToUci(out.Sprintf("Hash resized: %s", s.tt.String()))
	}
}

// NodesVisited returns the number of visited nodes of the current or
// last search
func (s *Search) NodesVisited() uint64 {
	return atomic.LoadUint64(&s.nodesVisited)
}

// LastSearchResult returns a copy of the last search result
func (s *Search) LastSearchResult() Result {
	if s.lastSearchResult == nil {
		return Result{}
	}
	return *s.lastSearchResult
}

// HasResult returns true when a search has completed and a result
// is available
func (s *Search) HasResult() bool {
	return s.hasResult
}

// Statistics returns the statistics of the reporting worker of the
// last search
func (s *Search) Statistics() *Statistics {
	if len(s.workers) == 0 {
		return &Statistics{}
	}
	return &s.workers[0].statistics
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// run is called by StartSearch() in a separate goroutine. It sets up
// the workers, runs the actual search and sends the result when the
// search ends.
func (s *Search) run(p *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		s.initSemaphore.Release(1)
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.log.Infof("Searching: %s", p.StringFen())

	// init new search run
	s.stopFlag.Clear()
	s.hasResult = false
	s.timeLimit = 0
	s.extraTime = 0
	atomic.StoreUint64(&s.nodesVisited, 0)
	s.searchLimits = sl
	s.lastUciUpdateTime = s.startTime
	s.initialize()

	s.setupSearchLimits(p, sl)
	if sl.TimeControl && !sl.Ponder {
		s.startTimer()
	}

	// age the tt entries
	if s.tt != nil {
		s.tt.NewSearch()
	}

	// create the search workers - each with its own copy of the
	// position and all per-worker state
	threads := config.Settings.Search.Threads
	if threads < 1 {
		threads = 1
	}
	if threads > 128 {
		threads = 128
	}
	s.workers = make([]*worker, threads)
	for i := 0; i < threads; i++ {
		s.workers[i] = newWorker(s, *p, i)
	}

	// release the init phase lock to let StartSearch() return
	s.initSemaphore.Release(1)

	// start the helper workers, the reporting worker runs in this
	// goroutine
	var wg sync.WaitGroup
	for i := 1; i < threads; i++ {
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			w.iterativeDeepening()
		}(s.workers[i])
	}
	s.workers[0].iterativeDeepening()

	// In ponder or infinite mode the search result must not be sent
	// before the search is stopped or a ponderhit arrives - wait.
	if (s.searchLimits.Ponder || s.searchLimits.Infinite) && !s.stopFlag.IsSet() {
		s.log.Debug("Search finished before stop or ponderhit - waiting")
		for !s.stopFlag.IsSet() && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	// stop the helpers and wait for them
	s.stopFlag.Set()
	wg.Wait()

	searchResult := s.collectResult()
	searchResult.SearchTime = time.Since(s.startTime)

	s.log.Info(out.Sprintf("Search finished after %d ms", searchResult.SearchTime.Milliseconds()))
	s.log.Info(out.Sprintf("Search depth was %d(%d) with %d nodes visited. NPS = %d nps",
		searchResult.SearchDepth, searchResult.ExtraDepth, s.NodesVisited(),
		util.Nps(s.NodesVisited(), searchResult.SearchTime)))
	s.log.Debugf("Search stats: %s", s.workers[0].statistics.String())
	s.log.Infof("Search result: %s", searchResult.String())

	s.lastSearchResult = searchResult
	s.hasResult = true

	// send the result in any case - even if the search was stopped
	s.sendResult(searchResult)
}

// collectResult builds the search result from the state of the
// reporting worker.
func (s *Search) collectResult() *Result {
	w := s.workers[0]
	result := &Result{
		BestMove:    MoveNone,
		PonderMove:  MoveNone,
		BestValue:   w.statistics.CurrentBestRootMoveValue,
		SearchDepth: w.statistics.CurrentIterationDepth,
		ExtraDepth:  w.statistics.CurrentExtraSearchDepth,
	}

	switch {
	case w.pv[0].Len() > 0:
		result.BestMove = w.pv[0].Front()
		result.Pv = *w.pv[0].Clone()
	case w.rootMoves != nil && w.rootMoves.Len() > 0:
		// no iteration was completed - the first legal move is
		// better than no move at all
		result.BestMove = w.rootMoves.Front()
	default:
		// no legal move - checkmate or stalemate - the null move
		// "0000" is sent
	}

	// ponder move from the pv or from the tt
	if w.pv[0].Len() > 1 {
		result.PonderMove = w.pv[0].At(1)
	} else if result.BestMove != MoveNone && s.tt != nil && config.Settings.Search.UseTT {
		w.position.DoMove(result.BestMove)
		ponderMove := s.tt.GetMove(w.position.ZobristKey())
		w.position.UndoMove()
		if ponderMove != MoveNone {
			result.PonderMove = ponderMove
			s.log.Debugf("Using ponder move from hash: %s", ponderMove.StringUci())
		}
	}
	return result
}

// initialize allocates the transposition table if necessary. Can be
// called several times without re-initializing.
func (s *Search) initialize() {
	if config.Settings.Search.UseTT {
		if s.tt == nil {
			sizeInMByte := config.Settings.Search.TTSize
			if sizeInMByte == 0 {
				sizeInMByte = 64
			}
			s.tt = transpositiontable.NewTtTable(sizeInMByte)
		}
	} else {
		s.log.Info("Transposition Table is disabled in configuration")
	}
}

// stopConditions checks if the stop flag is set or if the visited
// nodes have reached a maximum set in the search limits.
func (s *Search) stopConditions() bool {
	if s.stopFlag.IsSet() {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.NodesVisited() >= s.searchLimits.Nodes {
		s.stopFlag.Set()
	}
	return s.stopFlag.IsSet()
}

// setupSearchLimits reports the search limits to the log and sets up
// the time control.
func (s *Search) setupSearchLimits(p *position.Position, sl *Limits) {
	if sl.Infinite {
		s.log.Info("Search mode: Infinite")
	}
	if sl.Ponder {
		s.log.Info("Search mode: Ponder")
	}
	if sl.Mate > 0 {
		s.log.Infof("Search mode: Search for mate in %d", sl.Mate)
	}
	if sl.TimeControl {
		s.timeLimit = s.setupTimeControl(p, sl)
		s.extraTime = 0
		if sl.MoveTime > 0 {
			s.log.Infof("Search mode: Time controlled: Time per move %d ms", sl.MoveTime.Milliseconds())
		} else {
			s.log.Info(out.Sprintf("Search mode: Time controlled: White = %d ms (inc %d ms) Black = %d ms (inc %d ms) Moves to go: %d",
				sl.WhiteTime.Milliseconds(), sl.WhiteInc.Milliseconds(),
				sl.BlackTime.Milliseconds(), sl.BlackInc.Milliseconds(), sl.MovesToGo))
			s.log.Info(out.Sprintf("Search mode: Time limit: %d ms", s.timeLimit.Milliseconds()))
		}
	} else {
		s.log.Info("Search mode: No time control")
	}
	if sl.Depth > 0 {
		s.log.Debugf("Search mode: Depth limited: %d", sl.Depth)
	}
	if sl.Nodes > 0 {
		s.log.Infof(out.Sprintf("Search mode: Nodes limited: %d", sl.Nodes))
	}
}

// setupTimeControl determines the time limit for the current search
// from the given search limits.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 { // time per move
		// we need a little room for executing the surrounding code
		duration := sl.MoveTime - (20 * time.Millisecond)
		if duration < 0 {
			s.log.Warningf("Very short move time: %d ms", sl.MoveTime.Milliseconds())
			return sl.MoveTime
		}
		return duration
	}
	// estimate the moves left - in early game phases up to 40, in
	// final phases a minimum of 15 more moves is assumed
	movesLeft := int64(sl.MovesToGo)
	if movesLeft == 0 {
		movesLeft = int64(15 + (25 * p.GamePhaseFactor()))
	}
	// remaining time for the current player
	var timeLeft time.Duration
	switch p.NextPlayer() {
	case White:
		timeLeft = sl.WhiteTime + time.Duration(movesLeft*sl.WhiteInc.Nanoseconds())
	case Black:
		timeLeft = sl.BlackTime + time.Duration(movesLeft*sl.BlackInc.Nanoseconds())
	}
	// estimated time per move reduced by a safety margin
	timeLimit := time.Duration(timeLeft.Nanoseconds() / movesLeft)
	if timeLimit.Milliseconds() < 100 {
		timeLimit = time.Duration(int64(0.8 * float64(timeLimit.Nanoseconds())))
	} else {
		timeLimit = time.Duration(int64(0.9 * float64(timeLimit.Nanoseconds())))
	}
	return timeLimit
}

// addExtraTime adds or subtracts a portion (%) of the current time
// limit to the search.
//  f = 1.0 --> no change
//  f = 0.9 --> reduction by 10%
//  f = 1.1 --> extension by 10%
func (s *Search) addExtraTime(f float64) {
	if s.searchLimits.TimeControl && s.searchLimits.MoveTime == 0 {
		duration := time.Duration(int64((f - 1.0) * float64(s.timeLimit.Nanoseconds())))
		s.extraTime += duration
	}
}

// startTimer starts a goroutine which regularly checks the elapsed
// time against the time limit and extra time. When the limit is
// reached the stop flag is set.
func (s *Search) startTimer() {
	go func() {
		timerStart := time.Now()
		s.log.Debugf("Timer started with time limit of %d ms", s.timeLimit.Milliseconds())
		// extra time can change the deadline so we poll in small
		// intervals instead of a fixed timeout
		for time.Since(timerStart) < s.timeLimit+s.extraTime && !s.stopFlag.IsSet() {
			time.Sleep(5 * time.Millisecond)
		}
		if !s.stopFlag.IsSet() {
			s.log.Debugf("Timer stops search after %d ms", time.Since(timerStart).Milliseconds())
			s.stopFlag.Set()
		}
	}()
}

// sendResult sends the search result to the uci handler if available
func (s *Search) sendResult(searchResult *Result) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(searchResult.BestMove, searchResult.PonderMove)
	}
}

// sendInfoStringToUci sends an info string to the uci handler and
// logs it
func (s *Search) sendInfoStringToUci(msg string) {
	s.log.Info(msg)
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString(msg)
	}
}

// sendIterationEndInfoToUci sends the result of a completed depth
// iteration to the uci handler
func (s *Search) sendIterationEndInfoToUci(w *worker) {
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendIterationEndInfo(
			w.statistics.CurrentSearchDepth,
			w.statistics.CurrentExtraSearchDepth,
			w.statistics.CurrentBestRootMoveValue,
			s.NodesVisited(),
			s.getNps(),
			time.Since(s.startTime),
			hashfull,
			*w.pv[0])
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s nodes %d nps %d time %d pv %s",
			w.statistics.CurrentSearchDepth,
			w.statistics.CurrentExtraSearchDepth,
			w.statistics.CurrentBestRootMoveValue.String(),
			s.NodesVisited(),
			s.getNps(),
			time.Since(s.startTime).Milliseconds(),
			w.pv[0].StringUci()))
	}
}

// sendSearchUpdateToUci sends a periodic update about the search
// stats to the uci handler - at most once per second.
func (s *Search) sendSearchUpdateToUci(w *worker) {
	if time.Since(s.lastUciUpdateTime) < time.Second {
		return
	}
	s.lastUciUpdateTime = time.Now()
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendSearchUpdate(
			w.statistics.CurrentSearchDepth,
			w.statistics.CurrentExtraSearchDepth,
			s.NodesVisited(),
			s.getNps(),
			time.Since(s.startTime),
			hashfull)
		s.uciHandlerPtr.SendCurrentRootMove(w.statistics.CurrentRootMove, w.statistics.CurrentRootMoveIndex)
	}
}

// getNps calculates the current nps relative to the search start
// time. Very short times would return unrealistic values which are
// reported as 0.
func (s *Search) getNps() uint64 {
	nps := util.Nps(s.NodesVisited(), time.Since(s.startTime)+100)
	if nps > 50_000_000 {
		nps = 0
	}
	return nps
}
