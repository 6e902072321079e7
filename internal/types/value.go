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
	"strconv"
	"strings"

	"github.com/kseidel/KestrelGo/internal/util"
)

// Value represents the value of a chess position in centipawns
type Value int16

// Constants for values
const (
	ValueZero Value = 0
	ValueDraw Value = 0
	ValueInf  Value = 15_000
	ValueNA   Value = -ValueInf - 1
	ValueMax  Value = 10_000
	ValueMin  Value = -ValueMax

	// ValueCheckMate is the mate score at the mated ply.
	// A mate in N plies scores ValueCheckMate - N.
	ValueCheckMate          Value = ValueMax
	ValueCheckMateThreshold Value = ValueCheckMate - MaxDepth - 1
)

// IsValid checks if value is within the valid range (between Min and Max)
func (v Value) IsValid() bool {
	return v >= ValueMin && v <= ValueMax
}

// IsCheckMateValue returns true if the value is above the check mate
// threshold which is set to the check mate value minus the maximum
// search depth minus one
func (v Value) IsCheckMateValue() bool {
	return util.Abs16(int16(v)) > int16(ValueCheckMateThreshold) &&
		util.Abs16(int16(v)) <= int16(ValueCheckMate)
}

// String returns the value as a UCI compatible score string.
// Either "cp <centipawns>" or "mate <moves>".
func (v Value) String() string {
	var os strings.Builder
	switch {
	case v.IsCheckMateValue():
		os.WriteString("mate ")
		if v < ValueZero {
			os.WriteString("-")
		}
		plies := int(ValueCheckMate) - int(util.Abs16(int16(v)))
		os.WriteString(strconv.Itoa((plies + 1) / 2))
	case v == ValueNA:
		os.WriteString("N/A")
	default:
		os.WriteString("cp ")
		os.WriteString(strconv.Itoa(int(v)))
	}
	return os.String()
}

// ValueType is the bound type of a search value as stored in the
// transposition table
type ValueType uint8

// Constants for value types. ALPHA is an upper bound, BETA a
// lower bound, EXACT a precise value.
const (
	Vnone ValueType = 0
	EXACT ValueType = 1
	ALPHA ValueType = 2
	BETA  ValueType = 3
)

// String returns a short string for the value type
func (vt ValueType) String() string {
	switch vt {
	case EXACT:
		return "EXACT"
	case ALPHA:
		return "ALPHA"
	case BETA:
		return "BETA"
	default:
		return "NONE"
	}
}
