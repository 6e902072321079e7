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

// Color represents constants for each chess color White and Black
type Color uint8

// Constants for each color
const (
	White       Color = 0
	Black       Color = 1
	ColorLength int   = 2
)

// Flip returns the opposite color
func (c Color) Flip() Color {
	return c ^ 1
}

// IsValid checks if c represents a valid color
func (c Color) IsValid() bool {
	return c < 2
}

// Color direction factor
var moveDir = [2]int{1, -1}

// MoveDirection returns positive 1 for White and negative 1 (-1)
// for Black. Used to avoid branching on the pawn move direction.
func (c Color) MoveDirection() int {
	return moveDir[c]
}

// PawnDir returns the shift direction for pawn pushes of the color
func (c Color) PawnDir() Direction {
	if c == White {
		return North
	}
	return South
}

// PromotionRankBb returns a Bb of the promotion rank of the color
func (c Color) PromotionRankBb() Bitboard {
	if c == White {
		return Rank8_Bb
	}
	return Rank1_Bb
}

// PawnDoubleRank returns a Bb of the rank from which a pawn which
// just moved one step forward could do a double step
// (rank 3 for White, rank 6 for Black)
func (c Color) PawnDoubleRank() Bitboard {
	if c == White {
		return Rank3_Bb
	}
	return Rank6_Bb
}

// String returns a string representation of color as "w" or "b"
func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}
