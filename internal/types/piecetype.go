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

// PieceType is a set of constants for piece types in chess
type PieceType int8

// Constants for all piece types
const (
	PtNone   PieceType = 0
	Pawn     PieceType = 1
	Knight   PieceType = 2
	Bishop   PieceType = 3 // sliding
	Rook     PieceType = 4 // sliding
	Queen    PieceType = 5 // sliding
	King     PieceType = 6
	PtLength PieceType = 7
)

// array of string labels for piece types
var pieceTypeToString = [PtLength]string{"NOPIECE", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

// Str returns a string representation of a piece type
func (pt PieceType) Str() string {
	return pieceTypeToString[pt]
}

// array of char labels for piece types
var pieceTypeToChar = string("-PNBRQK")

// Char returns a single char string representation of a piece type
func (pt PieceType) Char() string {
	return string(pieceTypeToChar[pt])
}

// array of game phase values for piece types
var gamePhaseValue = [PtLength]int{0, 0, 1, 1, 2, 4, 0}

// GamePhaseValue returns a value for calculating the game phase
// by adding the number of a certain piece type times this value
func (pt PieceType) GamePhaseValue() int {
	return gamePhaseValue[pt]
}

// array of material values for piece types in centipawns.
// The king carries a nominal value only used in move ordering.
var pieceTypeValue = [PtLength]Value{0, 100, 320, 330, 500, 900, 2000}

// ValueOf returns the material value of the piece type in centipawns
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

// IsValid checks if pt is a valid piece type
func (pt PieceType) IsValid() bool {
	return pt > 0 && pt < 7
}
