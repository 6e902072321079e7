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

package transpositiontable

import (
	. "github.com/kseidel/KestrelGo/internal/types"
)

// TtEntry is the data structure for each entry in the transposition
// table. Each entry is two 64-bit words (16 bytes).
//
// The first word holds the zobrist key XORed with the data word, the
// second word the packed payload. A torn read or write (the two words
// are updated without a lock) makes the XOR validation fail and the
// probe is treated as a miss. This makes the table safe to share
// between search workers without locks - lossy races are acceptable.
//
//  data BITMAP 64-bit
//  6 6 6 6 5 5 5 5 5 5 4 4 ... 3 3 3 2 ... 0 0
//  3 2 1 0 9 8 7 6 5 4 9 8     3 2 1 ...   1 0
//  ---------------------------------------------
//                                 move (32 bit)
//                value (16 bit)
//        depth (8 bit)
//    type (2 bit)
//  age (6 bit)
type TtEntry struct {
	xkey uint64 // zobrist key ^ data
	data uint64 // packed payload
}

// TtEntrySize is the size in bytes for each TtEntry
const TtEntrySize = 16

const (
	valueShift uint = 32
	depthShift uint = 48
	vtypeShift uint = 56
	ageShift   uint = 58

	moveMask  uint64 = 0xFFFF_FFFF
	valueMask uint64 = 0xFFFF << valueShift
	depthMask uint64 = 0xFF << depthShift
	vtypeMask uint64 = 0x3 << vtypeShift
	ageMask   uint64 = 0x3F << ageShift
)

// TtData is the decoded payload of a transposition table entry
type TtData struct {
	Move  Move
	Value Value
	Depth int8
	Type  ValueType
	Age   uint8
}

// encodeData packs move, value, depth, value type and age into the
// 64-bit data word
func encodeData(move Move, value Value, depth int8, vtype ValueType, age uint8) uint64 {
	return uint64(uint32(move)) |
		uint64(uint16(value))<<valueShift |
		uint64(uint8(depth))<<depthShift |
		uint64(vtype)<<vtypeShift |
		uint64(age&0x3F)<<ageShift
}

// decodeData unpacks a 64-bit data word
func decodeData(data uint64) TtData {
	return TtData{
		Move:  Move(data & moveMask),
		Value: Value(int16(uint16((data & valueMask) >> valueShift))),
		Depth: int8(uint8((data & depthMask) >> depthShift)),
		Type:  ValueType((data & vtypeMask) >> vtypeShift),
		Age:   uint8((data & ageMask) >> ageShift),
	}
}
