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

// Magic holds all magic bitboard data relevant for a single square.
// The "fancy" magic bitboard approach as described on
// https://www.chessprogramming.org/Magic_Bitboards
type Magic struct {
	Mask    Bitboard
	Magic   Bitboard
	Attacks []Bitboard
	Shift   uint
}

// index calculates the index into the attack table for the given
// board occupancy:
//  occ &= mask; occ *= magic; occ >>= shift
func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.Mask
	occ = occ * m.Magic
	occ = occ >> m.Shift
	return uint(occ)
}

var (
	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}

	// magic bitboards - rook attacks
	rookTable  []Bitboard
	rookMagics [SqLength]Magic

	// magic bitboards - bishop attacks
	bishopTable  []Bitboard
	bishopMagics [SqLength]Magic
)

// initMagicBitboards allocates the attack tables and computes the
// magics for rooks and bishops
func initMagicBitboards() {
	rookTable = make([]Bitboard, 0x19000)
	bishopTable = make([]Bitboard, 0x1480)
	initMagics(&rookTable, &rookMagics, &rookDirections)
	initMagics(&bishopTable, &bishopMagics, &bishopDirections)
}

// initMagics computes all rook or bishop attacks at startup. Magic
// bitboards are used to look up attacks of sliding pieces. For each
// square the relevant occupancy mask (edges excluded) is computed,
// all subsets of the mask are enumerated with the Carry-Rippler trick
// and a magic multiplier is searched which maps every subset to an
// index that looks up the correct attack set. A magic which maps two
// subsets with different attack sets to the same index is rejected.
func initMagics(table *[]Bitboard, magics *[SqLength]Magic, directions *[4]Direction) {

	// PRNG seeds per rank which find the magics quickly
	seeds := [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	occupancy := [4096]Bitboard{}
	reference := [4096]Bitboard{}
	epoch := [4096]int{}
	var edges, b Bitboard
	cnt := 0
	size := 0

	for sq := SqA1; sq <= SqH8; sq++ {

		// board edges are not considered in the relevant occupancies
		edges = ((Rank1_Bb | Rank8_Bb) &^ sq.RankOf().Bb()) |
			((FileA_Bb | FileH_Bb) &^ sq.FileOf().Bb())

		// The mask is the bitboard of sliding attacks from sq computed
		// on an empty board without the edges. The index must be big
		// enough to contain all attacks for each possible subset of
		// the mask, hence the shift of 64 minus the mask popcount.
		m := &(*magics)[sq]
		m.Mask = slidingAttack(directions, sq, BbZero) &^ edges
		m.Shift = uint(64 - m.Mask.PopCount())

		// each square gets its own slice of the shared attack table
		if sq == SqA1 {
			m.Attacks = *table
		} else {
			m.Attacks = magics[sq-1].Attacks[size:]
		}

		// Carry-Rippler trick to enumerate all subsets of the mask and
		// store the corresponding reference attack set
		b = 0
		size = 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(directions, sq, b)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 {
				break
			}
		}

		rng := NewPrnG(seeds[sq.RankOf()])

		// Find a magic for sq picking up an (almost) random number
		// until one passes the verification test. The attack table for
		// the square is built as a side effect of the verification.
		// epoch[] avoids resetting the attacks after a failed attempt.
		attempts := 0
		for i := 0; i < size; {
			for m.Magic = 0; ((m.Magic * m.Mask) >> 56).PopCount() < 6; {
				m.Magic = Bitboard(rng.SparseRand())
			}
			if attempts++; attempts > 100_000_000 {
				// a magic must exist - not finding one is a bug
				panic("magic bitboard initialization failed to find an injective magic")
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.Attacks[idx] = reference[i]
				} else if m.Attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// slidingAttack calculates sliding attacks along the given directions
// for the given square and board occupation by ray scanning. The scan
// stops at the first blocker and includes it. Too slow for move
// generation but fine for pre-computing.
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for i := 0; i < 4; i++ {
		s := sq
		for {
			s = s.To(directions[i])
			if !s.IsValid() {
				break
			}
			attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}

// PrnG is a xorshift64star pseudo random number generator based on
// code written and dedicated to the public domain by Sebastiano
// Vigna (2014). Used to find magic numbers and to create the
// deterministic zobrist keys.
type PrnG struct {
	s uint64
}

// NewPrnG creates a new instance of the pseudo random generator
func NewPrnG(seed uint64) *PrnG {
	return &PrnG{s: seed}
}

// Rand64 returns the next pseudo random uint64
func (r *PrnG) Rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// SparseRand returns values with only 1/8th of their bits set on
// average. Used to quickly find magic numbers.
func (r *PrnG) SparseRand() uint64 {
	return r.Rand64() & r.Rand64() & r.Rand64()
}
