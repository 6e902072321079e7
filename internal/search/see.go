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
	"github.com/kseidel/KestrelGo/internal/position"
	. "github.com/kseidel/KestrelGo/internal/types"
)

// see computes a static exchange evaluation for the given capturing
// move: the expected material gain of the capture sequence on the
// target square assuming both sides capture with their least
// valuable attacker first.
func see(p *position.Position, move Move) Value {

	// en passant is always a winning pawn capture and should never
	// be the reason for a cut-off
	if move.IsEnPassant() {
		return Pawn.ValueOf()
	}

	var gain [32]Value

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.GetPiece(fromSquare)
	nextPlayer := p.NextPlayer()

	// occupancy of the board - single pieces are removed later to
	// reveal hidden attackers (x-rays)
	occupiedBitboard := p.OccupiedAll()

	// all attackers of the target square for both sides
	remainingAttacks := p.AttacksTo(toSquare, White) | p.AttacksTo(toSquare, Black)

	// initial value of the first capture
	gain[ply] = p.GetPiece(toSquare).ValueOf()

	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		// speculative store, if defended
		if move.IsPromotion() {
			gain[ply] = move.Promoted().ValueOf() - Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		// pruning if defended - does not change the final see score
		if maxValue(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks.PopSquare(fromSquare)
		occupiedBitboard.PopSquare(fromSquare)

		// reveal new attacks after removing the moving piece
		remainingAttacks |= revealedAttacks(p, toSquare, occupiedBitboard, White) |
			revealedAttacks(p, toSquare, occupiedBitboard, Black)

		// next capture with the least valuable attacker
		fromSquare = getLeastValuablePiece(p, remainingAttacks, nextPlayer)
		if fromSquare == SqNone {
			break
		}
		movedPiece = p.GetPiece(fromSquare)
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -maxValue(-gain[ply-1], gain[ply])
		ply--
	}
	return gain[0]
}

// revealedAttacks returns sliding attacks to the square which were
// hidden behind the removed piece. Only sliders can be revealed.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}

// getLeastValuablePiece returns the square of the least valuable
// attacker within the given bitboard for the given color.
func getLeastValuablePiece(p *position.Position, bitboard Bitboard, color Color) Square {
	for pt := Pawn; pt <= King; pt++ {
		if attackers := bitboard & p.PiecesBb(color, pt); attackers != 0 {
			return attackers.Lsb()
		}
	}
	return SqNone
}

func maxValue(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
