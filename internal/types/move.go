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
	"fmt"
	"strings"
)

// Move is a 32-bit unsigned int encoding a chess move as a primitive
// data type.
//  BITMAP 32-bit
//  3 3 2 2 2 2 2 2 2 2 2 2 1 1 1 1 1 1 1 1 1 1 0 0 0 0 0 0 0 0 0 0
//  1 0 9 8 7 6 5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//  ---------------------------------------------------------------
//                                                      1 1 1 1 1 1  from
//                                          1 1 1 1 1 1              to
//                          1 1 1 1 1 1 1 1                          flags
//                  1 1 1 1                                          captured piece type
//          1 1 1 1                                                  promotion piece type
//  MoveNone (0) is the null move "0000".
type Move uint32

// MoveNone is the empty non valid move, the UCI null move "0000"
const MoveNone Move = 0

// MoveFlags is a bit set of move properties
type MoveFlags uint8

// Constants for move flags
const (
	FlagCapture    MoveFlags = 1 << iota // 0b00001
	FlagDoublePush                       // 0b00010
	FlagEnPassant                        // 0b00100
	FlagCastling                         // 0b01000
	FlagPromotion                        // 0b10000
)

const (
	toShift       uint = 6
	flagsShift    uint = 12
	capturedShift uint = 20
	promotedShift uint = 24

	squareMask   Move = 0x3F
	fromMask          = squareMask
	toMask       Move = squareMask << toShift
	flagsMask    Move = 0xFF << flagsShift
	capturedMask Move = 0xF << capturedShift
	promotedMask Move = 0xF << promotedShift
)

// MakeMove returns an encoded Move instance
func MakeMove(from Square, to Square, flags MoveFlags, captured PieceType, promoted PieceType) Move {
	return Move(from) |
		Move(to)<<toShift |
		Move(flags)<<flagsShift |
		Move(captured)<<capturedShift |
		Move(promoted)<<promotedShift
}

// From returns the from-Square of the move
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the to-Square of the move
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// Flags returns the move flags of the move
func (m Move) Flags() MoveFlags {
	return MoveFlags((m & flagsMask) >> flagsShift)
}

// Captured returns the piece type captured by the move or PtNone
func (m Move) Captured() PieceType {
	return PieceType((m & capturedMask) >> capturedShift)
}

// Promoted returns the promotion piece type of the move or PtNone.
// Must be ignored when the move has no promotion flag.
func (m Move) Promoted() PieceType {
	return PieceType((m & promotedMask) >> promotedShift)
}

// IsCapture returns true if the move captures a piece (incl. en passant)
func (m Move) IsCapture() bool {
	return m.Flags()&FlagCapture != 0
}

// IsDoublePush returns true if the move is a pawn double push
func (m Move) IsDoublePush() bool {
	return m.Flags()&FlagDoublePush != 0
}

// IsEnPassant returns true if the move is an en passant capture
func (m Move) IsEnPassant() bool {
	return m.Flags()&FlagEnPassant != 0
}

// IsCastling returns true if the move is a castling move
func (m Move) IsCastling() bool {
	return m.Flags()&FlagCastling != 0
}

// IsPromotion returns true if the move is a pawn promotion
func (m Move) IsPromotion() bool {
	return m.Flags()&FlagPromotion != 0
}

// IsQuiet returns true if the move is neither capture nor promotion
func (m Move) IsQuiet() bool {
	return m.Flags()&(FlagCapture|FlagPromotion) == 0
}

// IsValid checks if the move has valid squares and a valid
// promotion piece type if flagged as promotion.
// MoveNone is not a valid move in this sense.
func (m Move) IsValid() bool {
	if m == MoveNone {
		return false
	}
	if !m.From().IsValid() || !m.To().IsValid() || m.From() == m.To() {
		return false
	}
	if m.IsPromotion() {
		p := m.Promoted()
		return p >= Knight && p <= Queen
	}
	return true
}

// StringUci returns the UCI protocol representation of the move,
// e.g. "e2e4" or "e7e8q". The null move is "0000".
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.IsPromotion() {
		os.WriteString(strings.ToLower(m.Promoted().Char()))
	}
	return os.String()
}

// String returns a string representation of the move with details
func (m Move) String() string {
	if m == MoveNone {
		return "Move: { MoveNone }"
	}
	return fmt.Sprintf("Move: { %-5s flags:%05b captured:%s prom:%s (%d) }",
		m.StringUci(), m.Flags(), m.Captured().Char(), m.Promoted().Char(), uint32(m))
}
