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
	"github.com/kseidel/KestrelGo/internal/config"
	"github.com/kseidel/KestrelGo/internal/moveslice"
	. "github.com/kseidel/KestrelGo/internal/types"
)

// Move ordering scores. Tiers from highest to lowest:
// TT move, good captures (MVV-LVA, SEE >= 0), promotions, killers,
// counter move, quiet moves by history counter, bad captures.
const (
	scoreTTMove      int32 = 1 << 30
	scoreGoodCapture int32 = 1 << 28
	scorePromotion   int32 = 1 << 27
	scoreKiller1     int32 = 1 << 26
	scoreKiller2     int32 = scoreKiller1 - 1
	scoreCounterMove int32 = 1 << 25
	scoreHistoryMax  int32 = 1 << 24
	scoreBadCapture  int32 = -(1 << 28)
)

// scoreMoves computes an ordering score for every generated move of
// the node and stores it in the ply's score buffer parallel to the
// move list.
func (w *worker) scoreMoves(ml *moveslice.MoveSlice, ply int, ttMove Move) {
	us := w.position.NextPlayer()

	// counter move to the opponents last move
	counterMove := MoveNone
	if config.Settings.Search.UseCounterMoves {
		if lastMove := w.position.LastMove(); lastMove != MoveNone {
			counterMove = w.history.CounterMoves[lastMove.From()][lastMove.To()]
		}
	}

	scores := &w.stack[ply].scores
	for i, m := range *ml {
		var score int32
		switch {
		case m == ttMove:
			score = scoreTTMove
		case m.IsCapture():
			// most valuable victim first, least valuable attacker second
			mvvlva := int32(m.Captured().ValueOf())*10 -
				int32(w.position.GetPiece(m.From()).TypeOf().ValueOf())
			if config.Settings.Search.UseSEE && !m.IsEnPassant() && see(&w.position, m) < 0 {
				score = scoreBadCapture + mvvlva
			} else {
				score = scoreGoodCapture + mvvlva
			}
			if m.IsPromotion() {
				score += int32(m.Promoted().ValueOf())
			}
		case m.IsPromotion():
			score = scorePromotion + int32(m.Promoted().ValueOf())
		case config.Settings.Search.UseKiller && m == w.stack[ply].killers[0]:
			score = scoreKiller1
		case config.Settings.Search.UseKiller && m == w.stack[ply].killers[1]:
			score = scoreKiller2
		case m == counterMove:
			score = scoreCounterMove
		default:
			h := w.history.Get(us, m)
			if h > int64(scoreHistoryMax) {
				h = int64(scoreHistoryMax)
			}
			score = int32(h)
		}
		scores[i] = score
	}
}

// pickNextBest selects the remaining move with the highest score and
// swaps it to the front of the remaining moves (partial selection
// sort). Returns MoveNone when all moves have been picked. Avoids
// sorting moves which are never searched after a cut-off.
func (w *worker) pickNextBest(ml *moveslice.MoveSlice, ply int, taken int) Move {
	if taken >= ml.Len() {
		return MoveNone
	}
	scores := &w.stack[ply].scores
	best := taken
	for i := taken + 1; i < ml.Len(); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if best != taken {
		(*ml)[best], (*ml)[taken] = (*ml)[taken], (*ml)[best]
		scores[best], scores[taken] = scores[taken], scores[best]
	}
	return (*ml)[taken]
}

// storeKiller stores a quiet move which caused a beta cut at the
// given ply. Two killer slots are kept per ply.
func (w *worker) storeKiller(ply int, move Move) {
	killers := &w.stack[ply].killers
	if killers[0] == move {
		return
	}
	killers[1] = killers[0]
	killers[0] = move
}
