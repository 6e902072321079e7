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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardBasics(t *testing.T) {
	b := BbZero
	b.PushSquare(SqA1)
	b.PushSquare(SqH8)
	assert.True(t, b.Has(SqA1))
	assert.True(t, b.Has(SqH8))
	assert.False(t, b.Has(SqE4))
	assert.Equal(t, 2, b.PopCount())

	assert.Equal(t, SqA1, b.Lsb())
	assert.Equal(t, SqH8, b.Msb())

	lsb := b.PopLsb()
	assert.Equal(t, SqA1, lsb)
	assert.Equal(t, 1, b.PopCount())

	b.PopSquare(SqH8)
	assert.Equal(t, BbZero, b)
	assert.Equal(t, SqNone, b.PopLsb())
}

func TestShiftBitboard(t *testing.T) {
	b := SqE4.Bb()
	assert.Equal(t, SqE5.Bb(), ShiftBitboard(b, North))
	assert.Equal(t, SqE3.Bb(), ShiftBitboard(b, South))
	assert.Equal(t, SqF4.Bb(), ShiftBitboard(b, East))
	assert.Equal(t, SqD4.Bb(), ShiftBitboard(b, West))
	assert.Equal(t, SqF5.Bb(), ShiftBitboard(b, Northeast))
	// bits must not wrap around the board edges
	assert.Equal(t, BbZero, ShiftBitboard(SqH4.Bb(), East))
	assert.Equal(t, BbZero, ShiftBitboard(SqA4.Bb(), West))
	assert.Equal(t, BbZero, ShiftBitboard(SqH8.Bb(), Northeast))
}

func TestPextPdep(t *testing.T) {
	mask := Bitboard(0b1010_1010)
	assert.Equal(t, Bitboard(0b1111), Pext(Bitboard(0b1010_1010), mask))
	assert.Equal(t, Bitboard(0b0011), Pext(Bitboard(0b0000_1010), mask))
	assert.Equal(t, mask, Pdep(Bitboard(0b1111), mask))
	// pdep is the inverse of pext on the mask bits
	val := Bitboard(0b0110)
	assert.Equal(t, val, Pext(Pdep(val, mask), mask))
}

func TestPseudoAttacks(t *testing.T) {
	// knight on e4 attacks 8 squares, on a1 only 2
	assert.Equal(t, 8, GetPseudoAttacks(Knight, SqE4).PopCount())
	assert.Equal(t, 2, GetPseudoAttacks(Knight, SqA1).PopCount())
	assert.True(t, GetPseudoAttacks(Knight, SqA1).Has(SqB3))
	assert.True(t, GetPseudoAttacks(Knight, SqA1).Has(SqC2))

	// king on e4 attacks 8 squares, in the corner 3
	assert.Equal(t, 8, GetPseudoAttacks(King, SqE4).PopCount())
	assert.Equal(t, 3, GetPseudoAttacks(King, SqA1).PopCount())

	// pawns attack diagonally without wrapping over the edge
	assert.Equal(t, 2, GetPawnAttacks(White, SqE4).PopCount())
	assert.True(t, GetPawnAttacks(White, SqE4).Has(SqD5))
	assert.True(t, GetPawnAttacks(White, SqE4).Has(SqF5))
	assert.Equal(t, 1, GetPawnAttacks(White, SqA2).PopCount())
	assert.True(t, GetPawnAttacks(Black, SqE4).Has(SqD3))

	// sliders on an empty board
	assert.Equal(t, 14, GetPseudoAttacks(Rook, SqA1).PopCount())
	assert.Equal(t, 13, GetPseudoAttacks(Bishop, SqE4).PopCount())
	assert.Equal(t, 27, GetPseudoAttacks(Queen, SqE4).PopCount())
}

func TestMagicAttacks(t *testing.T) {
	// rook on a1 with a blocker on a4 and e1
	occ := SqA4.Bb() | SqE1.Bb()
	attacks := GetAttacksBb(Rook, SqA1, occ)
	assert.True(t, attacks.Has(SqA2))
	assert.True(t, attacks.Has(SqA3))
	assert.True(t, attacks.Has(SqA4)) // includes the blocker
	assert.False(t, attacks.Has(SqA5))
	assert.True(t, attacks.Has(SqE1))
	assert.False(t, attacks.Has(SqF1))
	assert.Equal(t, 7, attacks.PopCount())

	// bishop on e4 with a blocker on c2
	occ = SqC2.Bb()
	attacks = GetAttacksBb(Bishop, SqE4, occ)
	assert.True(t, attacks.Has(SqD3))
	assert.True(t, attacks.Has(SqC2))
	assert.False(t, attacks.Has(SqB1))

	// magic attacks must equal the ray scan reference on random
	// occupancies for every square
	rng := NewPrnG(4711)
	for sq := SqA1; sq <= SqH8; sq++ {
		for i := 0; i < 20; i++ {
			occupancy := Bitboard(rng.Rand64() & rng.Rand64())
			assert.Equal(t, slidingAttack(&rookDirections, sq, occupancy),
				GetAttacksBb(Rook, sq, occupancy))
			assert.Equal(t, slidingAttack(&bishopDirections, sq, occupancy),
				GetAttacksBb(Bishop, sq, occupancy))
		}
	}
}

func TestRaysAndIntermediate(t *testing.T) {
	assert.True(t, SqE4.Ray(N).Has(SqE8))
	assert.False(t, SqE4.Ray(N).Has(SqE3))
	assert.True(t, SqE4.Ray(SW).Has(SqB1))

	assert.Equal(t, SqF1.Bb()|SqG1.Bb(), Intermediate(SqE1, SqH1))
	assert.Equal(t, BbZero, Intermediate(SqE1, SqF1))
	assert.Equal(t, BbZero, Intermediate(SqE1, SqF3))
	assert.True(t, Intermediate(SqA1, SqH8).Has(SqD4))
}

func TestPassedPawnMask(t *testing.T) {
	mask := SqE4.PassedPawnMask(White)
	assert.True(t, mask.Has(SqE5))
	assert.True(t, mask.Has(SqD7))
	assert.True(t, mask.Has(SqF5))
	assert.False(t, mask.Has(SqE3))
	assert.False(t, mask.Has(SqC5))

	mask = SqE4.PassedPawnMask(Black)
	assert.True(t, mask.Has(SqE3))
	assert.True(t, mask.Has(SqD2))
	assert.False(t, mask.Has(SqE5))
}

func TestCastlingRightsForSquares(t *testing.T) {
	assert.Equal(t, CastlingWhite, GetCastlingRights(SqE1))
	assert.Equal(t, CastlingWhiteOO, GetCastlingRights(SqH1))
	assert.Equal(t, CastlingWhiteOOO, GetCastlingRights(SqA1))
	assert.Equal(t, CastlingBlack, GetCastlingRights(SqE8))
	assert.Equal(t, CastlingNone, GetCastlingRights(SqE4))
}
