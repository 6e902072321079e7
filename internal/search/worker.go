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

package search

import (
	"sync/atomic"

	"github.com/kseidel/KestrelGo/internal/config"
	"github.com/kseidel/KestrelGo/internal/evaluator"
	"github.com/kseidel/KestrelGo/internal/history"
	"github.com/kseidel/KestrelGo/internal/movegen"
	"github.com/kseidel/KestrelGo/internal/moveslice"
	"github.com/kseidel/KestrelGo/internal/position"
	. "github.com/kseidel/KestrelGo/internal/types"
)

// stackFrame is the per-ply state of a worker: killer moves, the
// static eval of the node and the score buffer for move ordering.
type stackFrame struct {
	killers    [2]Move
	staticEval Value
	scores     [MaxMoves]int32
}

// worker is one independent search thread of the Lazy SMP scheme.
// Each worker owns its position copy, move generators, pv lists,
// killer/history tables and evaluator. Workers share only the
// transposition table, the stop flag and the global node counter
// through the owning Search.
type worker struct {
	id     int
	search *Search

	position position.Position
	mg       []*movegen.Movegen
	pv       []*moveslice.MoveSlice
	history  *history.History
	eval     *evaluator.Evaluator
	stack    []stackFrame

	rootMoves  *moveslice.MoveSlice
	rootValues []Value

	statistics Statistics
}

// newWorker creates a worker with its own copy of the position and
// all per-worker data structures.
func newWorker(s *Search, p position.Position, id int) *worker {
	w := &worker{
		id:       id,
		search:   s,
		position: p,
		history:  history.NewHistory(),
		eval:     evaluator.NewEvaluator(),
		stack:    make([]stackFrame, MaxDepth+2),
	}
	w.mg = make([]*movegen.Movegen, 0, MaxDepth+1)
	w.pv = make([]*moveslice.MoveSlice, 0, MaxDepth+1)
	for i := 0; i <= MaxDepth; i++ {
		w.mg = append(w.mg, movegen.NewMoveGen())
		w.pv = append(w.pv, moveslice.NewMoveSlice(MaxDepth+1))
	}
	return w
}

// incNodes counts a visited node on the shared atomic node counter
func (w *worker) incNodes() {
	atomic.AddUint64(&w.search.nodesVisited, 1)
}

// iterativeDeepening is the main loop of each worker. It starts with
// a one ply search and increments the depth until a limit is reached
// or the search is stopped. The best move of the previous iteration
// is searched first in the next iteration so a partially completed
// iteration still improves the result. Helper workers (id > 0) start
// at staggered depths and do not report to the UCI interface.
func (w *worker) iterativeDeepening() {
	p := &w.position
	reporter := w.id == 0

	// generate all legal root moves
	w.rootMoves = w.mg[0].GenerateLegalMoves(p, movegen.GenAll)
	w.rootValues = make([]Value, w.rootMoves.Len())
	for i := range w.rootValues {
		w.rootValues[i] = ValueNA
	}

	// no legal moves - mate or stalemate - nothing to search
	if w.rootMoves.Len() == 0 {
		if p.HasCheck() {
			w.statistics.Checkmates++
			w.statistics.CurrentBestRootMoveValue = -ValueCheckMate
		} else {
			w.statistics.Stalemates++
			w.statistics.CurrentBestRootMoveValue = ValueDraw
		}
		w.statistics.CurrentBestRootMove = MoveNone
		return
	}

	// age history tables between searches
	w.history.Age()

	maxDepth := MaxDepth
	if w.search.searchLimits.Depth > 0 {
		maxDepth = w.search.searchLimits.Depth
	}

	// stagger helper start depths (Lazy SMP)
	startDepth := 1
	if w.id%2 == 1 && maxDepth > 1 {
		startDepth = 2
	}

	bestValue := ValueNA

	for depth := startDepth; depth <= maxDepth; depth++ {
		w.statistics.CurrentIterationDepth = depth
		w.statistics.CurrentSearchDepth = depth
		if w.statistics.CurrentExtraSearchDepth < depth {
			w.statistics.CurrentExtraSearchDepth = depth
		}

		if config.Settings.Search.UseAspiration && depth > 3 &&
			bestValue != ValueNA && !bestValue.IsCheckMateValue() {
			bestValue = w.aspirationSearch(depth, bestValue)
		} else {
			bestValue = w.rootSearch(depth, -ValueInf, ValueInf)
		}

		// with a stop we can not trust the last iteration's values -
		// keep the result of the last completed iteration
		if w.search.stopConditions() && depth > 1 {
			break
		}

		// sort root moves so the next iteration searches the best
		// move of this iteration first
		w.sortRootMoves()
		w.statistics.CurrentBestRootMove = w.pv[0].Front()
		w.statistics.CurrentBestRootMoveValue = bestValue

		if reporter {
			w.search.sendIterationEndInfoToUci(w)
		}

		// stop when a mate score is proven - deeper searches can not
		// improve a forced mate
		if bestValue.IsCheckMateValue() {
			break
		}
		// only one legal move - no need to search deeper
		if w.rootMoves.Len() == 1 && w.search.searchLimits.TimeControl {
			break
		}
	}
}

// aspirationSearch re-seeds alpha and beta with a narrow window
// around the previous iteration's value. On a fail low or fail high
// the corresponding side of the window is widened exponentially and
// the search repeated.
func (w *worker) aspirationSearch(depth int, prev Value) Value {
	lowIdx, highIdx := 0, 0
	alpha := maxValue(prev-aspirationSteps[0], -ValueInf)
	beta := minValue(prev+aspirationSteps[0], ValueInf)

	for {
		value := w.rootSearch(depth, alpha, beta)
		if w.search.stopConditions() {
			return value
		}
		switch {
		case value <= alpha: // fail low - widen the lower bound
			w.statistics.AspirationResearches++
			lowIdx++
			if lowIdx >= len(aspirationSteps) {
				lowIdx = len(aspirationSteps) - 1
			}
			alpha = maxValue(prev-aspirationSteps[lowIdx], -ValueInf)
		case value >= beta: // fail high - widen the upper bound
			w.statistics.AspirationResearches++
			highIdx++
			if highIdx >= len(aspirationSteps) {
				highIdx = len(aspirationSteps) - 1
			}
			beta = minValue(prev+aspirationSteps[highIdx], ValueInf)
		default:
			return value
		}
	}
}

// sortRootMoves sorts the root moves and their values descending by
// value. Stable insertion sort as the list is mostly pre-sorted.
func (w *worker) sortRootMoves() {
	moves := *w.rootMoves
	values := w.rootValues
	for i := 1; i < len(moves); i++ {
		tmpM := moves[i]
		tmpV := values[i]
		j := i
		for j > 0 && tmpV > values[j-1] {
			moves[j] = moves[j-1]
			values[j] = values[j-1]
			j--
		}
		moves[j] = tmpM
		values[j] = tmpV
	}
}

func minValue(x, y Value) Value {
	if x < y {
		return x
	}
	return y
}
