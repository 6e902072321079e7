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

// Package transpositiontable implements the shared transposition
// table (cache) of the chess engine search.
// The table is shared by all search workers and is updated without
// locks. Entries are XOR-validated so torn reads are detected and
// treated as misses. Resize and Clear must not be called while a
// search is running.
package transpositiontable

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/kseidel/KestrelGo/internal/logging"
	"github.com/kseidel/KestrelGo/internal/position"
	. "github.com/kseidel/KestrelGo/internal/types"
)

var out = message.NewPrinter(language.German)

// MaxSizeInMB is the maximal memory usage of the tt
const MaxSizeInMB = 2_048

// TtTable is the transposition table object holding the data array
// and state. Create with NewTtTable().
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	generation         uint8

	// statistics - updated atomically as they are shared by workers
	numberOfPuts   uint64
	numberOfProbes uint64
	numberOfHits   uint64
	numberOfMisses uint64
}

// NewTtTable creates a new TtTable with the given number of MBytes
// as the maximum of memory usage. The actual size is the largest
// power of two of entries fitting into this size for efficient
// addressing with a bit mask.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := &TtTable{
		log: myLogging.GetLog(),
	}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize resizes the tt table. All entries will be cleared.
// Not thread safe - must not be called during a search.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	// calculate the maximum power of 2 of entries fitting into the given size
	tt.sizeInByte = uint64(sizeInMByte) * MB
	tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/TtEntrySize))))
	tt.hashKeyMask = tt.maxNumberOfEntries - 1

	if tt.sizeInByte == 0 {
		tt.maxNumberOfEntries = 0
		tt.hashKeyMask = 0
	}

	// the real memory usage
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize

	// create a new slice - garbage collection takes care of the old one
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.generation = 0

	tt.log.Info(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%dByte) (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), sizeInMByte))
}

// Clear clears all entries of the tt and resets the generation.
// Not thread safe - must not be called during a search.
func (tt *TtTable) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.generation = 0
	atomic.StoreUint64(&tt.numberOfPuts, 0)
	atomic.StoreUint64(&tt.numberOfProbes, 0)
	atomic.StoreUint64(&tt.numberOfHits, 0)
	atomic.StoreUint64(&tt.numberOfMisses, 0)
}

// NewSearch bumps the table generation. Entries of older generations
// become preferred victims of the replacement scheme.
func (tt *TtTable) NewSearch() {
	tt.generation = (tt.generation + 1) & 0x3F
}

// Probe returns the decoded entry for the given key or ok=false if
// no valid entry exists. Mate values are adjusted from their
// root-independent stored form by the distance of the probing node
// to the root (ply).
// Lock-free: a torn entry fails the XOR validation and is a miss.
func (tt *TtTable) Probe(key position.Key, ply int) (TtData, bool) {
	if tt.maxNumberOfEntries == 0 {
		return TtData{}, false
	}
	atomic.AddUint64(&tt.numberOfProbes, 1)
	e := &tt.data[tt.hash(key)]
	xkey := atomic.LoadUint64(&e.xkey)
	data := atomic.LoadUint64(&e.data)
	if data == 0 || xkey^data != uint64(key) {
		atomic.AddUint64(&tt.numberOfMisses, 1)
		return TtData{}, false
	}
	atomic.AddUint64(&tt.numberOfHits, 1)
	ttData := decodeData(data)
	ttData.Value = valueFromTT(ttData.Value, ply)
	return ttData, true
}

// Put stores an entry into the tt. Mate values are adjusted to their
// root-independent form before storing (distance to the current node
// instead of distance to the root).
// Replacement scheme: an entry with the same key is always replaced
// (keeping the old move when the new one is MoveNone); otherwise
// entries of older generations or with no more depth than the new
// one are replaced.
func (tt *TtTable) Put(key position.Key, move Move, depth int8, value Value, valueType ValueType, ply int) {
	if tt.maxNumberOfEntries == 0 {
		return
	}
	atomic.AddUint64(&tt.numberOfPuts, 1)

	value = valueToTT(value, ply)
	e := &tt.data[tt.hash(key)]
	oldXkey := atomic.LoadUint64(&e.xkey)
	oldData := atomic.LoadUint64(&e.data)

	sameKey := oldData != 0 && oldXkey^oldData == uint64(key)
	if sameKey {
		// preserve an existing move when storing without one
		if move == MoveNone {
			move = decodeData(oldData).Move
		}
	} else if oldData != 0 {
		// different position mapping to the same bucket - keep the
		// old entry when it is from the current generation and
		// deeper than the new one
		old := decodeData(oldData)
		if old.Age == tt.generation && old.Depth > depth {
			return
		}
	}

	data := encodeData(move, value, depth, valueType, tt.generation)
	atomic.StoreUint64(&e.data, data)
	atomic.StoreUint64(&e.xkey, uint64(key)^data)
}

// GetMove returns the stored move for the given key or MoveNone.
// Used for pv line retrieval and the ponder move.
func (tt *TtTable) GetMove(key position.Key) Move {
	if entry, ok := tt.Probe(key, 0); ok {
		return entry.Move
	}
	return MoveNone
}

// Hashfull returns how full the transposition table is in permill as
// per UCI. Determined by sampling to avoid a full table scan.
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	sample := uint64(1_000)
	if sample > tt.maxNumberOfEntries {
		sample = tt.maxNumberOfEntries
	}
	filled := uint64(0)
	for i := uint64(0); i < sample; i++ {
		data := atomic.LoadUint64(&tt.data[i].data)
		if data != 0 && decodeData(data).Age == tt.generation {
			filled++
		}
	}
	return int((1000 * filled) / sample)
}

// Len returns the number of non empty entries in the tt.
// Scans the whole table - only for tests and statistics.
func (tt *TtTable) Len() uint64 {
	count := uint64(0)
	for i := range tt.data {
		if atomic.LoadUint64(&tt.data[i].data) != 0 {
			count++
		}
	}
	return count
}

// String returns a string representation of this TtTable instance
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes generation %d puts %d probes %d hits %d misses %d",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, TtEntrySize, tt.generation,
		atomic.LoadUint64(&tt.numberOfPuts), atomic.LoadUint64(&tt.numberOfProbes),
		atomic.LoadUint64(&tt.numberOfHits), atomic.LoadUint64(&tt.numberOfMisses))
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

// hash generates the internal index into the data array
func (tt *TtTable) hash(key position.Key) uint64 {
	return uint64(key) & tt.hashKeyMask
}

// valueToTT corrects the value for the mate distance when storing to
// the TT. Stored mate values are relative to the storing node, not
// to the root.
func valueToTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			return value + Value(ply)
		}
		return value - Value(ply)
	}
	return value
}

// valueFromTT corrects the value for the mate distance when reading
// from the TT.
func valueFromTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			return value - Value(ply)
		}
		return value + Value(ply)
	}
	return value
}
