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
	"github.com/kseidel/KestrelGo/internal/movegen"
	"github.com/kseidel/KestrelGo/internal/moveslice"
	"github.com/kseidel/KestrelGo/internal/position"
	. "github.com/kseidel/KestrelGo/internal/types"
)

// rootSearch starts the actual recursive alpha beta search with the
// root moves for the first ply. Root moves are all legal and their
// values are stored for sorting before the next iteration. The pv of
// the root is updated for every new best move - even when the move
// does not exceed alpha - so the pv is never empty after the first
// move of the first iteration.
func (w *worker) rootSearch(depth int, alpha Value, beta Value) Value {
	p := &w.position
	bestNodeValue := ValueNA
	var value Value

	for i, m := range *w.rootMoves {
		p.DoMove(m)
		w.incNodes()
		w.statistics.CurrentRootMoveIndex = i
		w.statistics.CurrentRootMove = m

		if w.checkDraw(p) {
			value = ValueDraw
		} else if !config.Settings.Search.UsePVS || i == 0 {
			// first root move is the assumed pv - full window
			value = -w.negamax(depth-1, 1, -beta, -alpha, true, true)
		} else {
			// null window search - prove the move is worse than alpha
			value = -w.negamax(depth-1, 1, -alpha-1, -alpha, false, true)
			// re-search with the full window on an unexpected improvement
			if value > alpha && value < beta && !w.search.stopConditions() {
				w.statistics.RootPvsResearches++
				value = -w.negamax(depth-1, 1, -beta, -alpha, true, true)
			}
		}
		p.UndoMove()

		// at least one full depth 1 search of the first root move
		// must be completed to have a valid best move - any later
		// abort keeps the best result so far. The value of an
		// aborted search is not usable.
		if w.search.stopConditions() && (depth > 1 || i > 0) {
			return bestNodeValue
		}

		// remember the value for the root move sorting
		w.rootValues[i] = value

		if value > bestNodeValue {
			bestNodeValue = value
			savePV(m, w.pv[1], w.pv[0])
			if value > alpha {
				alpha = value
			}
		}
	}
	return bestNodeValue
}

// negamax is the recursive alpha beta search below the root.
// It is called until the remaining depth reaches 0 where it drops
// into the quiescence search. All major prunings are done here.
func (w *worker) negamax(depth int, ply int, alpha Value, beta Value, isPV bool, doNull bool) Value {
	p := &w.position

	if w.search.stopConditions() {
		return ValueNA
	}

	// at depth 0 or max ply continue with the quiescence search
	if depth <= 0 || ply >= MaxDepth {
		return w.qsearch(ply, alpha, beta, isPV)
	}

	// Mate Distance Pruning - if a shorter mate was already found
	// this node can not improve the result
	if config.Settings.Search.UseMDP {
		if alpha < -ValueCheckMate+Value(ply) {
			alpha = -ValueCheckMate + Value(ply)
		}
		if beta > ValueCheckMate-Value(ply) {
			beta = ValueCheckMate - Value(ply)
		}
		if alpha >= beta {
			w.statistics.Mdp++
			return alpha
		}
	}

	us := p.NextPlayer()
	bestNodeValue := ValueNA
	bestNodeMove := MoveNone
	ttMove := MoveNone
	ttType := ALPHA
	hasCheck := p.HasCheck()

	// TT lookup. A stored move is searched first, a stored value of
	// sufficient depth can cut this node when its bound fits the
	// current window.
	if config.Settings.Search.UseTT && w.search.tt != nil {
		if e, ok := w.search.tt.Probe(p.ZobristKey(), ply); ok {
			w.statistics.TTHit++
			ttMove = e.Move
			if int(e.Depth) >= depth && e.Value.IsValid() {
				cut := false
				switch e.Type {
				case EXACT:
					cut = true
				case ALPHA:
					cut = e.Value <= alpha
				case BETA:
					cut = e.Value >= beta
				}
				if cut && config.Settings.Search.UseTTValue {
					w.statistics.TTCuts++
					w.pv[ply].Clear()
					if ttMove != MoveNone {
						w.pv[ply].PushBack(ttMove)
					}
					return e.Value
				}
				w.statistics.TTNoCuts++
			}
		} else {
			w.statistics.TTMiss++
		}
	}

	// static evaluation of the node for pruning decisions
	staticEval := ValueNA
	if !hasCheck {
		staticEval = w.evaluate()
		w.stack[ply].staticEval = staticEval
	}

	// Reverse Futility Pruning - anticipate the beta cut before
	// making any move when the static eval is already far above beta
	if config.Settings.Search.UseRFP &&
		doNull && !isPV && !hasCheck && depth <= 3 {
		if staticEval-rfp[depth] >= beta {
			w.statistics.RfpPrunings++
			return staticEval - rfp[depth]
		}
	}

	// Null Move Pruning - if the position is still above beta after
	// giving the opponent two moves in a row the node will most
	// likely fail high. Not used when in check, in possible zugzwang
	// (no non-pawn material) or twice in a row.
	if config.Settings.Search.UseNullMove &&
		doNull && !isPV && !hasCheck &&
		depth >= config.Settings.Search.NmpDepth &&
		p.MaterialNonPawn(us) > 0 {

		r := 2 + depth/6
		newDepth := depth - r - 1
		if newDepth < 0 {
			newDepth = 0
		}

		p.DoNullMove()
		w.incNodes()
		nValue := -w.negamax(newDepth, ply+1, -beta, -beta+1, false, false)
		p.UndoNullMove()

		if w.search.stopConditions() {
			return ValueNA
		}

		if nValue >= beta {
			w.statistics.NullMoveCuts++
			// do not return unproven mates from a null search
			if nValue.IsCheckMateValue() {
				nValue = beta
			}
			w.storeTT(depth, ply, ttMove, nValue, BETA)
			return nValue
		}
	}

	// generate the pseudo legal moves of this node and score them
	// for the partial selection sort
	myMg := w.mg[ply]
	ml := myMg.GeneratePseudoLegalMoves(p, movegen.GenAll)
	w.scoreMoves(ml, ply, ttMove)
	w.pv[ply].Clear()

	var value Value
	movesSearched := 0

	for taken := 0; ; taken++ {
		move := w.pickNextBest(ml, ply, taken)
		if move == MoveNone {
			break
		}

		newDepth := depth - 1
		lmrDepth := newDepth
		extension := 0

		givesCheck := p.GivesCheck(move)

		// check extension - the search is extended by one ply when
		// the move gives check so tactics are resolved in the full
		// search with all its prunings instead of in qsearch
		if config.Settings.Search.UseCheckExt && givesCheck {
			w.statistics.CheckExtension++
			extension = 1
			newDepth += extension
			lmrDepth = newDepth
		}

		// Forward pruning of quiet uninteresting moves
		if !isPV && extension == 0 && !hasCheck && !givesCheck &&
			move.IsQuiet() &&
			move != ttMove &&
			move != w.stack[ply].killers[0] &&
			move != w.stack[ply].killers[1] {

			// Futility Pruning - the static eval is so far below
			// alpha that a quiet move is unlikely to recover
			if config.Settings.Search.UseFP && depth < 7 {
				if staticEval+fp[depth] <= alpha {
					w.statistics.FpPrunings++
					continue
				}
			}

			// Late Move Pruning - prune late quiet moves altogether
			if config.Settings.Search.UseLmp {
				if movesSearched >= LmpMovesSearched(depth) {
					w.statistics.LmpCuts++
					continue
				}
			}

			// Late Move Reductions - search late quiet moves with
			// reduced depth, re-search on an improvement
			if config.Settings.Search.UseLmr {
				if depth >= config.Settings.Search.LmrDepth &&
					movesSearched >= config.Settings.Search.LmrMovesSearched {
					lmrDepth -= LmrReduction(depth, movesSearched)
					w.statistics.LmrReductions++
				}
				if lmrDepth < 0 {
					lmrDepth = 0
				}
			}
		}

		p.DoMove(move)
		if !p.WasLegalMove() {
			p.UndoMove()
			continue
		}
		w.incNodes()
		if w.id == 0 {
			w.search.sendSearchUpdateToUci(w)
		}

		if w.checkDraw(p) {
			value = ValueDraw
		} else if !config.Settings.Search.UsePVS || movesSearched == 0 {
			// assumed pv move - full window
			value = -w.negamax(newDepth, ply+1, -beta, -alpha, isPV, true)
		} else {
			// null window (and possibly reduced) search
			value = -w.negamax(lmrDepth, ply+1, -alpha-1, -alpha, false, true)
			if value > alpha && !w.search.stopConditions() {
				if lmrDepth < newDepth {
					// re-search the reduction at full depth
					w.statistics.LmrResearches++
					value = -w.negamax(newDepth, ply+1, -beta, -alpha, true, true)
				} else if value < beta {
					// pvs re-search with the full window
					w.statistics.PvsResearches++
					value = -w.negamax(newDepth, ply+1, -beta, -alpha, true, true)
				}
			}
		}

		movesSearched++
		p.UndoMove()

		if w.search.stopConditions() {
			return ValueNA
		}

		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, w.pv[ply+1], w.pv[ply])
				if value >= beta {
					w.statistics.BetaCuts++
					if movesSearched == 1 {
						w.statistics.BetaCuts1st++
					}
					if move.IsQuiet() {
						// quiet moves causing cut offs feed the
						// killer, history and counter move tables
						if config.Settings.Search.UseKiller {
							w.storeKiller(ply, move)
						}
						if config.Settings.Search.UseHistoryCounter {
							w.history.Inc(us, move, depth)
						}
						if config.Settings.Search.UseCounterMoves {
							if lastMove := p.LastMove(); lastMove != MoveNone {
								w.history.CounterMoves[lastMove.From()][lastMove.To()] = move
							}
						}
					}
					ttType = BETA
					break
				}
				alpha = value
				ttType = EXACT
			}
		}
		// quiet move did not cause a cut off - lower its history
		if config.Settings.Search.UseHistoryCounter && move.IsQuiet() {
			w.history.Dec(us, move, depth)
		}
	}

	// no legal move at all - mate or stalemate
	if movesSearched == 0 && !w.search.stopConditions() {
		if hasCheck {
			w.statistics.Checkmates++
			bestNodeValue = -ValueCheckMate + Value(ply)
		} else {
			w.statistics.Stalemates++
			bestNodeValue = ValueDraw
		}
		ttType = EXACT
	}

	w.storeTT(depth, ply, bestNodeMove, bestNodeValue, ttType)
	return bestNodeValue
}

// qsearch resolves the horizon effect of the depth limited search by
// searching captures (and promotions, all moves when in check) until
// the position is quiet. The static eval is used as a standing pat
// lower bound.
func (w *worker) qsearch(ply int, alpha Value, beta Value, isPV bool) Value {
	p := &w.position

	if w.statistics.CurrentExtraSearchDepth < ply {
		w.statistics.CurrentExtraSearchDepth = ply
	}

	if !config.Settings.Search.UseQuiescence || ply >= MaxDepth {
		return w.evaluate()
	}

	// Mate Distance Pruning
	if config.Settings.Search.UseMDP {
		if alpha < -ValueCheckMate+Value(ply) {
			alpha = -ValueCheckMate + Value(ply)
		}
		if beta > ValueCheckMate-Value(ply) {
			beta = ValueCheckMate - Value(ply)
		}
		if alpha >= beta {
			w.statistics.Mdp++
			return alpha
		}
	}

	bestNodeValue := ValueNA
	bestNodeMove := MoveNone
	ttType := ALPHA
	ttMove := MoveNone
	hasCheck := p.HasCheck()

	// when not in check the stand pat is a lower bound - assumption
	// is that there is at least one move to improve the position
	if !hasCheck {
		staticEval := w.evaluate()
		if config.Settings.Search.UseQSStandpat {
			if staticEval >= beta {
				w.statistics.StandpatCuts++
				return staticEval
			}
			if staticEval > alpha {
				alpha = staticEval
			}
		}
		bestNodeValue = staticEval
	}

	// TT lookup
	if config.Settings.Search.UseQSTT && w.search.tt != nil {
		if e, ok := w.search.tt.Probe(p.ZobristKey(), ply); ok {
			w.statistics.TTHit++
			ttMove = e.Move
			if e.Value.IsValid() {
				cut := false
				switch e.Type {
				case EXACT:
					cut = true
				case ALPHA:
					cut = e.Value <= alpha
				case BETA:
					cut = e.Value >= beta
				}
				if cut && config.Settings.Search.UseTTValue {
					w.statistics.TTCuts++
					return e.Value
				}
			}
		} else {
			w.statistics.TTMiss++
		}
	}

	// in check all moves are generated and searched - in effect a
	// check evasion extension
	var mode movegen.GenMode
	if hasCheck {
		w.statistics.CheckInQS++
		mode = movegen.GenAll
	} else {
		mode = movegen.GenCap
	}

	myMg := w.mg[ply]
	ml := myMg.GeneratePseudoLegalMoves(p, mode)
	w.scoreMoves(ml, ply, ttMove)
	w.pv[ply].Clear()

	var value Value
	movesSearched := 0

	for taken := 0; ; taken++ {
		move := w.pickNextBest(ml, ply, taken)
		if move == MoveNone {
			break
		}

		// outside of check only captures which do not lose material
		// are searched
		if !hasCheck && move.IsCapture() && !w.goodCapture(move) {
			continue
		}

		p.DoMove(move)
		if !p.WasLegalMove() {
			p.UndoMove()
			continue
		}
		w.incNodes()

		// draw checks are only relevant when in check - captures
		// break the repetition and the 50-moves rule anyway
		if hasCheck && w.checkDraw(p) {
			value = ValueDraw
		} else {
			value = -w.qsearch(ply+1, -beta, -alpha, isPV)
		}

		movesSearched++
		p.UndoMove()

		if w.search.stopConditions() {
			return ValueNA
		}

		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, w.pv[ply+1], w.pv[ply])
				if value >= beta {
					w.statistics.BetaCuts++
					ttType = BETA
					break
				}
				alpha = value
				ttType = EXACT
			}
		}
	}

	// no moves searched and in check means we generated all moves
	// and none was legal - this is a mate. Without check there might
	// simply be no captures left and the stand pat value holds.
	if movesSearched == 0 && hasCheck && !w.search.stopConditions() {
		w.statistics.Checkmates++
		bestNodeValue = -ValueCheckMate + Value(ply)
		ttType = EXACT
	}

	if config.Settings.Search.UseQSTT {
		w.storeTT(0, ply, bestNodeMove, bestNodeValue, ttType)
	}
	return bestNodeValue
}

// evaluate calls the evaluation on the current position of the worker
func (w *worker) evaluate() Value {
	w.statistics.Evaluations++
	return w.eval.Evaluate(&w.position)
}

// goodCapture reduces the number of captures searched in quiescence
// by looking at winning or equal captures only.
func (w *worker) goodCapture(move Move) bool {
	p := &w.position
	if config.Settings.Search.UseSEE {
		return see(p, move) >= 0
	}
	// lower value piece captures higher value piece - with a margin
	// to also look at bishop x knight
	return p.GetPiece(move.From()).ValueOf()+50 < p.GetPiece(move.To()).ValueOf() ||
		// all recaptures should be looked at
		(p.LastMove() != MoveNone && p.LastMove().To() == move.To() && p.LastCapturedPiece() != PieceNone) ||
		// captures of undefended pieces are good
		!p.IsAttacked(move.To(), p.NextPlayer().Flip())
}

// checkDraw checks the 50-moves rule, 3-fold repetition and
// insufficient mating material and returns true if the position is
// a draw for the search.
func (w *worker) checkDraw(p *position.Position) bool {
	return p.HalfMoveClock() >= 100 || p.CheckRepetitions(2) || p.HasInsufficientMaterial()
}

// savePV adds the given move as the first move to a cleared dest and
// then appends all src moves
func savePV(move Move, src *moveslice.MoveSlice, dest *moveslice.MoveSlice) {
	dest.Clear()
	dest.PushBack(move)
	*dest = append(*dest, *src...)
}

// storeTT stores a search result into the shared transposition table
func (w *worker) storeTT(depth int, ply int, move Move, value Value, valueType ValueType) {
	if !config.Settings.Search.UseTT || w.search.tt == nil || value == ValueNA {
		return
	}
	w.search.tt.Put(w.position.ZobristKey(), move, int8(depth), value, valueType, ply)
}
