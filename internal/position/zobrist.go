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

package position

import (
	. "github.com/kseidel/KestrelGo/internal/types"
)

// zobrist holds the random keys for the incremental hashing of
// chess positions. The keys are deterministic (fixed seed) so that
// positions hash identically over program runs.
type zobrist struct {
	pieces         [PieceLength][SqLength]Key
	castlingRights [CastlingRightsLength]Key
	enPassantFile  [8]Key
	nextPlayer     Key
}

var zobristBase = zobrist{}

const zobristSeed uint64 = 1070372

func initZobrist() {
	r := NewPrnG(zobristSeed)
	for pc := PieceNone; pc < PieceLength; pc++ {
		for sq := SqA1; sq <= SqH8; sq++ {
			zobristBase.pieces[pc][sq] = Key(r.Rand64())
		}
	}
	for cr := CastlingNone; cr <= CastlingAny; cr++ {
		zobristBase.castlingRights[cr] = Key(r.Rand64())
	}
	for f := FileA; f <= FileH; f++ {
		zobristBase.enPassantFile[f] = Key(r.Rand64())
	}
	zobristBase.nextPlayer = Key(r.Rand64())
}

// RecomputeZobrist calculates the zobrist key of the position from
// scratch. Only used to verify the incrementally updated key in
// tests and debugging.
func RecomputeZobrist(p *Position) Key {
	key := Key(0)
	for sq := SqA1; sq <= SqH8; sq++ {
		pc := p.GetPiece(sq)
		if pc != PieceNone {
			key ^= zobristBase.pieces[pc][sq]
		}
	}
	key ^= zobristBase.castlingRights[p.CastlingRights()]
	if p.GetEnPassantSquare() != SqNone {
		key ^= zobristBase.enPassantFile[p.GetEnPassantSquare().FileOf()]
	}
	if p.NextPlayer() == Black {
		key ^= zobristBase.nextPlayer
	}
	return key
}
