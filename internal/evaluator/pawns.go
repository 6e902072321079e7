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

package evaluator

import (
	"github.com/kseidel/KestrelGo/internal/config"
	. "github.com/kseidel/KestrelGo/internal/types"
)

// evaluatePawns scores the pawn structure of one side: passed,
// doubled and isolated pawns with separate mid and end game weights.
func (e *Evaluator) evaluatePawns(c Color) Score {
	var s Score
	ownPawns := e.position.PiecesBb(c, Pawn)
	oppPawns := e.position.PiecesBb(c.Flip(), Pawn)

	pawns := ownPawns
	for pawns != 0 {
		sq := pawns.PopLsb()

		// isolated - no own pawn on a neighbour file
		if sq.NeighbourFilesMask()&ownPawns == BbZero {
			s.MidGameValue += int(config.Settings.Eval.PawnIsolatedMidMalus)
			s.EndGameValue += int(config.Settings.Eval.PawnIsolatedEndMalus)
		}

		// doubled - more than one own pawn on this file
		if (sq.FileOf().Bb() & ownPawns).PopCount() > 1 {
			s.MidGameValue += int(config.Settings.Eval.PawnDoubledMidMalus)
			s.EndGameValue += int(config.Settings.Eval.PawnDoubledEndMalus)
		}

		// passed - no opponent pawn ahead on this or a neighbour file
		if sq.PassedPawnMask(c)&oppPawns == BbZero {
			s.MidGameValue += int(config.Settings.Eval.PawnPassedMidBonus)
			s.EndGameValue += int(config.Settings.Eval.PawnPassedEndBonus)
		}
	}
	return s
}
