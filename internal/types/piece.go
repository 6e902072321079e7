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

// Piece is a color tagged piece type encoded as (color<<3)|type.
// Values 1-6 are white pieces, 9-14 are black pieces, 0 is empty.
type Piece int8

// Constants for pieces
const (
	PieceNone   Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6
	BlackPawn   Piece = 9
	BlackKnight Piece = 10
	BlackBishop Piece = 11
	BlackRook   Piece = 12
	BlackQueen  Piece = 13
	BlackKing   Piece = 14
	PieceLength Piece = 16
)

// array of fen chars for pieces
var pieceToString = string("-PNBRQK--pnbrqk-")

// String returns the fen char of the piece
func (p Piece) String() string {
	return string(pieceToString[p])
}

// Char is an alias for String - returns the fen char of the piece
func (p Piece) Char() string {
	return p.String()
}

// MakePiece creates the piece given by color and piece type
func MakePiece(c Color, pt PieceType) Piece {
	return Piece((int(c) << 3) | int(pt))
}

// PieceFromChar returns the piece corresponding to the given fen
// character or PieceNone if the char is not a valid piece char
func PieceFromChar(s string) Piece {
	if len(s) != 1 {
		return PieceNone
	}
	for i := 0; i < len(pieceToString); i++ {
		if pieceToString[i] == s[0] && Piece(i).TypeOf().IsValid() {
			return Piece(i)
		}
	}
	return PieceNone
}

// ColorOf returns the color of the given piece
func (p Piece) ColorOf() Color {
	return Color(p >> 3)
}

// TypeOf returns the piece type of the given piece
func (p Piece) TypeOf() PieceType {
	return PieceType(p & 7)
}

// ValueOf returns the material value of the piece in centipawns
func (p Piece) ValueOf() Value {
	return pieceTypeValue[p.TypeOf()]
}
