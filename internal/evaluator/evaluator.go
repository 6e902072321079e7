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

// Package evaluator contains the structures and functions to
// calculate the value of a chess position using material, piece
// square tables, pawn structure, mobility and king safety.
// Each search worker owns its own Evaluator instance.
package evaluator

import (
	"github.com/kseidel/KestrelGo/internal/config"
	"github.com/kseidel/KestrelGo/internal/position"
	. "github.com/kseidel/KestrelGo/internal/types"
)

// Evaluator represents the data structure and functionality for
// evaluating chess positions. Create a new instance with
// NewEvaluator().
type Evaluator struct {
	position *position.Position
	us       Color
	them     Color
	score    Score
}

// NewEvaluator creates a new instance of an Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate calculates a value for the given chess position in
// centipawns from the view of the side to move.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	// without mating material the position is a draw
	if p.HasInsufficientMaterial() {
		return ValueDraw
	}

	e.position = p
	e.us = p.NextPlayer()
	e.them = e.us.Flip()
	e.score.MidGameValue = 0
	e.score.EndGameValue = 0

	// All heuristics are computed from the view of the white player
	// and adjusted to the side to move at the end.

	// material
	e.score.MidGameValue = int(p.Material(White) - p.Material(Black))
	e.score.EndGameValue = e.score.MidGameValue

	// positional values (piece square tables, kept incrementally
	// up to date by the position)
	e.score.MidGameValue += int(p.PsqMidValue(White) - p.PsqMidValue(Black))
	e.score.EndGameValue += int(p.PsqEndValue(White) - p.PsqEndValue(Black))

	// bishop pair
	if p.PiecesBb(White, Bishop).PopCount() > 1 {
		e.score.MidGameValue += int(config.Settings.Eval.BishopPairBonus)
		e.score.EndGameValue += int(config.Settings.Eval.BishopPairBonus)
	}
	if p.PiecesBb(Black, Bishop).PopCount() > 1 {
		e.score.MidGameValue -= int(config.Settings.Eval.BishopPairBonus)
		e.score.EndGameValue -= int(config.Settings.Eval.BishopPairBonus)
	}

	// pawn structure
	if config.Settings.Eval.UsePawnEval {
		e.score.Add(e.evaluatePawns(White))
		e.score.Sub(e.evaluatePawns(Black))
	}

	// mobility
	if config.Settings.Eval.UseMobility {
		e.score.Add(e.evaluateMobility(White))
		e.score.Sub(e.evaluateMobility(Black))
	}

	// king safety (pawn shield, mid game only)
	if config.Settings.Eval.UseKingEval {
		e.score.Add(e.evaluateKing(White))
		e.score.Sub(e.evaluateKing(Black))
	}

	// interpolate between mid and end game by phase and adjust
	// to the side to move
	value := e.score.ValueFromScore(p.GamePhase())
	value = value * Value(e.us.MoveDirection())

	// small bonus for having the move
	return value + Value(config.Settings.Eval.Tempo)
}

// evaluateMobility counts the attacked squares (excluding own
// pieces) for each officer weighted by piece type.
func (e *Evaluator) evaluateMobility(c Color) Score {
	var s Score
	occupied := e.position.OccupiedAll()
	own := e.position.OccupiedBb(c)
	for pt := Knight; pt <= Queen; pt++ {
		pieces := e.position.PiecesBb(c, pt)
		for pieces != 0 {
			sq := pieces.PopLsb()
			mobility := (GetAttacksBb(pt, sq, occupied) &^ own).PopCount()
			bonus := mobility * int(config.Settings.Eval.MobilityBonus[pt])
			s.MidGameValue += bonus
			s.EndGameValue += bonus
		}
	}
	return s
}

// evaluateKing gives a mid game bonus for own pawns shielding the
// king in the king's neighbourhood.
func (e *Evaluator) evaluateKing(c Color) Score {
	var s Score
	kingSq := e.position.KingSquare(c)
	kingRing := GetAttacksBb(King, kingSq, BbZero)
	shield := kingRing & e.position.PiecesBb(c, Pawn)
	s.MidGameValue += shield.PopCount() * int(config.Settings.Eval.PawnShieldBonus)
	return s
}
