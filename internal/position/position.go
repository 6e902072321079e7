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

// Package position represents the data structures and functions for a
// chess board and its position. It uses an 8x8 piece board (mailbox)
// and bitboards, a stack for undoing moves, zobrist keys for the
// transposition table and incremental material and positional value
// counters.
//
// Create a new instance with NewPosition() (start position) or
// NewPositionFen(fen).
package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kseidel/KestrelGo/internal/assert"
	. "github.com/kseidel/KestrelGo/internal/types"
)

var initialized = false

// initialize package
func init() {
	if !initialized {
		initZobrist()
		initialized = true
	}
}

// StartFen is the fen string of the standard chess start position
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Key is used for zobrist keys of chess positions.
// Zobrist keys need all 64 bits for distribution.
type Key uint64

// Position represents the chess board and its state.
// Mutated only via DoMove/UndoMove and DoNullMove/UndoNullMove.
// A position is copyable by value - each search worker owns its own
// copy during a search.
type Position struct {

	// The zobrist key to use as a hash key in transposition tables.
	// Updated incrementally every time one of the state variables
	// changes.
	zobristKey Key

	// Board state - unique chess position (except 3-fold repetition
	// which is not represented in a FEN either)
	board           [SqLength]Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	nextPlayer      Color

	// Extended board state - not necessary for a unique position
	kingSquare         [ColorLength]Square
	nextHalfMoveNumber int
	piecesBb           [ColorLength][PtLength]Bitboard
	occupiedBb         [ColorLength]Bitboard

	// history information for undo and repetition detection
	historyCounter int
	history        [maxHistory]historyState

	// Calculated by DoMove/UndoMove - always up to date
	material        [ColorLength]Value
	materialNonPawn [ColorLength]Value
	psqMidValue     [ColorLength]Value
	psqEndValue     [ColorLength]Value
	gamePhase       int

	// caches the hasCheck flag for the current position. Will be set
	// by HasCheck(), reset to TBD every time a move is made and
	// restored from the history when a move is unmade.
	hasCheckFlag int
}

// historyState is the information to reverse exactly one move
type historyState struct {
	zobristKey      Key
	move            Move
	fromPiece       Piece
	capturedPiece   Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	hasCheckFlag    int
}

const maxHistory int = MaxMoves

// state flags for cached values
const (
	flagTBD   int = 0
	flagFalse int = 1
	flagTrue  int = 2
)

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewPosition creates a new position with the standard chess start
// position. When a fen string is given it will create a position
// based on this fen. Additional fens/strings are ignored.
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := NewPositionFen(StartFen)
		return p
	}
	p, _ := NewPositionFen(fen[0])
	return p
}

// NewPositionFen creates a new position with the given fen string as
// board position. It returns nil and an error if the fen was invalid.
func NewPositionFen(fen string) (*Position, error) {
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		return nil, e
	}
	return p, nil
}

// DoMove commits a move to the board. For performance reasons there
// is no check if this move is legal on the current position. Legality
// needs to be checked beforehand or after the move in case of pseudo
// legal moves. Usually moves are created by the move generator and
// can be assumed to be at least pseudo legal.
func (p *Position) DoMove(m Move) {
	fromSq := m.From()
	fromPc := p.board[fromSq]
	myColor := fromPc.ColorOf()
	toSq := m.To()
	targetPc := p.board[toSq]

	if assert.DEBUG {
		assert.Assert(m.IsValid(), "DoMove: invalid move %s", m.String())
		assert.Assert(fromPc != PieceNone, "DoMove: no piece on %s for move %s", fromSq.String(), m.StringUci())
		assert.Assert(myColor == p.nextPlayer, "DoMove: piece to move does not belong to next player")
		assert.Assert(targetPc.TypeOf() != King, "DoMove: king cannot be captured")
	}

	// save state of board for undo
	// update the existing history entry to not allocate a new one
	h := &p.history[p.historyCounter]
	h.zobristKey = p.zobristKey
	h.move = m
	h.fromPiece = fromPc
	h.capturedPiece = targetPc
	h.castlingRights = p.castlingRights
	h.enPassantSquare = p.enPassantSquare
	h.halfMoveClock = p.halfMoveClock
	h.hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	// do the move depending on its type
	switch {
	case m.IsCastling():
		p.doCastlingMove(fromSq, toSq)
	case m.IsEnPassant():
		p.doEnPassantMove(fromSq, toSq, myColor)
	case m.IsPromotion():
		p.doPromotionMove(m, fromSq, toSq, targetPc, myColor)
	default:
		p.doNormalMove(fromSq, toSq, targetPc, fromPc, myColor)
	}

	// update additional state info
	p.hasCheckFlag = flagTBD
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UndoMove resets the position to the state before the last move was
// made. The zobrist key is restored byte for byte from the history.
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.historyCounter > 0, "UndoMove: cannot undo initial position")
	}

	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	h := &p.history[p.historyCounter]
	move := h.move

	// undo piece movement / restore board
	switch {
	case move.IsCastling():
		p.movePiece(move.To(), move.From()) // king
		switch move.To() {
		case SqG1:
			p.movePiece(SqF1, SqH1)
		case SqC1:
			p.movePiece(SqD1, SqA1)
		case SqG8:
			p.movePiece(SqF8, SqH8)
		case SqC8:
			p.movePiece(SqD8, SqA8)
		default:
			panic("invalid castling move")
		}
	case move.IsEnPassant():
		p.movePiece(move.To(), move.From())
		// the captured pawn is "behind" the to square
		p.putPiece(MakePiece(p.nextPlayer.Flip(), Pawn), move.To().To(p.nextPlayer.Flip().PawnDir()))
	case move.IsPromotion():
		p.removePiece(move.To())
		p.putPiece(MakePiece(p.nextPlayer, Pawn), move.From())
		if h.capturedPiece != PieceNone {
			p.putPiece(h.capturedPiece, move.To())
		}
	default:
		p.movePiece(move.To(), move.From())
		if h.capturedPiece != PieceNone {
			p.putPiece(h.capturedPiece, move.To())
		}
	}

	// restore state
	p.castlingRights = h.castlingRights
	p.enPassantSquare = h.enPassantSquare
	p.halfMoveClock = h.halfMoveClock
	p.hasCheckFlag = h.hasCheckFlag
	p.zobristKey = h.zobristKey
}

// DoNullMove is used in null move pruning. The board is unchanged but
// the next player flips and the en passant square is cleared. The
// state before the null move is stored to history.
func (p *Position) DoNullMove() {
	h := &p.history[p.historyCounter]
	h.zobristKey = p.zobristKey
	h.move = MoveNone
	h.fromPiece = PieceNone
	h.capturedPiece = PieceNone
	h.castlingRights = p.castlingRights
	h.enPassantSquare = p.enPassantSquare
	h.halfMoveClock = p.halfMoveClock
	h.hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	p.hasCheckFlag = flagTBD
	p.clearEnPassant()
	p.halfMoveClock++
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UndoNullMove restores the state of the position to before the
// DoNullMove() call.
func (p *Position) UndoNullMove() {
	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	h := &p.history[p.historyCounter]
	p.castlingRights = h.castlingRights
	p.enPassantSquare = h.enPassantSquare
	p.halfMoveClock = h.halfMoveClock
	p.hasCheckFlag = h.hasCheckFlag
	p.zobristKey = h.zobristKey
}

// AttacksTo determines all pieces of the given color which attack the
// given square. This is done by a reverse attack from the target
// square.
func (p *Position) AttacksTo(sq Square, by Color) Bitboard {
	occupiedAll := p.OccupiedAll()
	return (GetPawnAttacks(by.Flip(), sq) & p.piecesBb[by][Pawn]) |
		(GetAttacksBb(Knight, sq, occupiedAll) & p.piecesBb[by][Knight]) |
		(GetAttacksBb(King, sq, occupiedAll) & p.piecesBb[by][King]) |
		(GetAttacksBb(Rook, sq, occupiedAll) & (p.piecesBb[by][Rook] | p.piecesBb[by][Queen])) |
		(GetAttacksBb(Bishop, sq, occupiedAll) & (p.piecesBb[by][Bishop] | p.piecesBb[by][Queen]))
}

// IsAttacked checks if the given square is attacked by a piece of the
// given color.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.AttacksTo(sq, by) != BbZero
}

// CheckersBb returns a bitboard of all opponent pieces attacking the
// king of the next player.
func (p *Position) CheckersBb() Bitboard {
	return p.AttacksTo(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
}

// IsLegalMove tests a pseudo legal move for legality on the current
// position. It tests if the king would be left in check after the
// move or if the king crosses an attacked square during castling.
func (p *Position) IsLegalMove(move Move) bool {
	// the king must not be in check before castling and is not
	// allowed to pass over an attacked square
	if move.IsCastling() {
		if p.IsAttacked(move.From(), p.nextPlayer.Flip()) {
			return false
		}
		switch move.To() {
		case SqG1:
			if p.IsAttacked(SqF1, p.nextPlayer.Flip()) {
				return false
			}
		case SqC1:
			if p.IsAttacked(SqD1, p.nextPlayer.Flip()) {
				return false
			}
		case SqG8:
			if p.IsAttacked(SqF8, p.nextPlayer.Flip()) {
				return false
			}
		case SqC8:
			if p.IsAttacked(SqD8, p.nextPlayer.Flip()) {
				return false
			}
		}
	}
	// make the move on the position and check if the own king is
	// attacked afterwards. This also covers pinned pieces and the
	// en passant capture exposing the king on the 5th rank.
	p.DoMove(move)
	legal := !p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer)
	p.UndoMove()
	return legal
}

// WasLegalMove tests if the last move was legal, e.g. if the king of
// the moving side could now be captured or the king crossed an
// attacked square during castling.
func (p *Position) WasLegalMove() bool {
	if p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer) {
		return false
	}
	if p.historyCounter > 0 {
		move := p.history[p.historyCounter-1].move
		if move.IsCastling() {
			if p.IsAttacked(move.From(), p.nextPlayer) {
				return false
			}
			switch move.To() {
			case SqG1:
				if p.IsAttacked(SqF1, p.nextPlayer) {
					return false
				}
			case SqC1:
				if p.IsAttacked(SqD1, p.nextPlayer) {
					return false
				}
			case SqG8:
				if p.IsAttacked(SqF8, p.nextPlayer) {
					return false
				}
			case SqC8:
				if p.IsAttacked(SqD8, p.nextPlayer) {
					return false
				}
			}
		}
	}
	return true
}

// HasCheck returns true if the next player's king is attacked.
// This is cached for the current position so multiple calls on the
// same position are cheap.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag != flagTBD {
		return p.hasCheckFlag == flagTrue
	}
	check := p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
	if check {
		p.hasCheckFlag = flagTrue
	} else {
		p.hasCheckFlag = flagFalse
	}
	return check
}

// GivesCheck determines if the given move will give check to the
// opponent of the next player.
func (p *Position) GivesCheck(move Move) bool {
	us := p.nextPlayer
	them := us.Flip()
	kingSq := p.kingSquare[them]

	fromSq := move.From()
	toSq := move.To()
	fromPt := p.board[fromSq].TypeOf()
	epTargetSq := SqNone

	switch {
	case move.IsPromotion():
		fromPt = move.Promoted()
	case move.IsCastling():
		// the rook can give check after castling, the king cannot -
		// check the rook target square instead
		fromPt = Rook
		switch toSq {
		case SqG1:
			toSq = SqF1
		case SqC1:
			toSq = SqD1
		case SqG8:
			toSq = SqF8
		case SqC8:
			toSq = SqD8
		}
	case move.IsEnPassant():
		epTargetSq = toSq.To(them.PawnDir())
	}

	// board occupancy after the move to check intermediate squares
	boardAfterMove := p.OccupiedAll()
	boardAfterMove.PopSquare(fromSq)
	boardAfterMove.PushSquare(toSq)
	if epTargetSq != SqNone {
		boardAfterMove.PopSquare(epTargetSq)
	}

	// direct checks
	switch fromPt {
	case Pawn:
		if GetPawnAttacks(us, toSq).Has(kingSq) {
			return true
		}
	case King:
		// the king itself cannot give check
	default:
		if GetAttacksBb(fromPt, toSq, boardAfterMove).Has(kingSq) {
			return true
		}
	}

	// revealed checks - only sliders can be revealed. The en passant
	// capture can reveal a check by removing the captured pawn.
	switch {
	case GetAttacksBb(Bishop, kingSq, boardAfterMove)&p.piecesBb[us][Bishop] > 0:
		return true
	case GetAttacksBb(Rook, kingSq, boardAfterMove)&p.piecesBb[us][Rook] > 0:
		return true
	case GetAttacksBb(Queen, kingSq, boardAfterMove)&p.piecesBb[us][Queen] > 0:
		return true
	}
	return false
}

// IsCapturingMove determines if a move on this position is a
// capturing move incl. en passant
func (p *Position) IsCapturingMove(move Move) bool {
	return p.occupiedBb[p.nextPlayer.Flip()].Has(move.To()) || move.IsEnPassant()
}

// CheckRepetitions checks if the current position has occurred at
// least the given number of times before in the position history.
// checkRepetitions(2) checks for 3-fold repetition.
// Every time the half move clock is reset (irreversible move) the
// scan can stop as no earlier position can repeat.
func (p *Position) CheckRepetitions(reps int) bool {
	counter := 0
	i := p.historyCounter - 2
	lastHalfMove := p.halfMoveClock
	for i >= 0 {
		if p.history[i].halfMoveClock >= lastHalfMove {
			break
		}
		lastHalfMove = p.history[i].halfMoveClock
		if p.zobristKey == p.history[i].zobristKey {
			counter++
		}
		if counter >= reps {
			return true
		}
		i -= 2
	}
	return false
}

// HasInsufficientMaterial returns true if no side has enough material
// to force a mate: lone kings, a single minor piece against a bare
// king, two knights against a bare king or only bishops which all
// stand on squares of the same color.
func (p *Position) HasInsufficientMaterial() bool {
	// a pawn, rook or queen on the board is always sufficient
	if p.piecesBb[White][Pawn]|p.piecesBb[Black][Pawn]|
		p.piecesBb[White][Rook]|p.piecesBb[Black][Rook]|
		p.piecesBb[White][Queen]|p.piecesBb[Black][Queen] != BbZero {
		return false
	}
	knights := p.piecesBb[White][Knight] | p.piecesBb[Black][Knight]
	bishops := p.piecesBb[White][Bishop] | p.piecesBb[Black][Bishop]
	minors := knights.PopCount() + bishops.PopCount()

	// lone kings or a single minor against a bare king
	if minors <= 1 {
		return true
	}
	// knights only - two knights cannot force a mate
	if bishops == BbZero && knights.PopCount() <= 2 {
		return true
	}
	// bishops only and all on the same square color
	if knights == BbZero &&
		(bishops&SquaresBb(White) == bishops || bishops&SquaresBb(Black) == bishops) {
		return true
	}
	return false
}

// String returns a string representing the position instance. This
// includes the fen, a board matrix, game phase, material and
// positional values.
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringFen())
	os.WriteString("\n")
	os.WriteString(p.StringBoard())
	os.WriteString("\n")
	os.WriteString(fmt.Sprintf("Next Player    : %s\n", p.nextPlayer.String()))
	os.WriteString(fmt.Sprintf("Game Phase     : %d\n", p.gamePhase))
	os.WriteString(fmt.Sprintf("Material White : %d\n", p.material[White]))
	os.WriteString(fmt.Sprintf("Material Black : %d\n", p.material[Black]))
	os.WriteString(fmt.Sprintf("Pos value White: %d/%d\n", p.psqMidValue[White], p.psqEndValue[White]))
	os.WriteString(fmt.Sprintf("Pos value Black: %d/%d\n", p.psqMidValue[Black], p.psqEndValue[Black]))
	return os.String()
}

// StringFen returns a string with the FEN of the current position
func (p *Position) StringFen() string {
	return p.fen()
}

// StringBoard returns a visual matrix of the board and pieces
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(p.board[SquareOf(f, Rank8-r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

func (p *Position) doNormalMove(fromSq Square, toSq Square, targetPc Piece, fromPc Piece, myColor Color) {
	// invalidate castling rights when the move touches one of the
	// castling squares - this includes captures of an untouched rook
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
		}
	}
	p.clearEnPassant()
	if targetPc != PieceNone { // capture
		p.removePiece(toSq)
		p.halfMoveClock = 0
	} else if fromPc.TypeOf() == Pawn {
		p.halfMoveClock = 0
		if SquareDistance(fromSq, toSq) == 2 { // pawn double push
			// the en passant target is always "behind" the to square
			p.enPassantSquare = toSq.To(myColor.Flip().PawnDir())
			p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()] // in
		}
	} else {
		p.halfMoveClock++
	}
	p.movePiece(fromSq, toSq)
}

func (p *Position) doCastlingMove(fromSq Square, toSq Square) {
	switch toSq {
	case SqG1:
		p.movePiece(fromSq, toSq) // king
		p.movePiece(SqH1, SqF1)   // rook
	case SqC1:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqA1, SqD1)
	case SqG8:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqH8, SqF8)
	case SqC8:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqA8, SqD8)
	default:
		panic("invalid castling move")
	}
	cr := GetCastlingRights(fromSq)
	p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
	p.castlingRights.Remove(cr)
	p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
	p.clearEnPassant()
	p.halfMoveClock++
}

func (p *Position) doEnPassantMove(fromSq Square, toSq Square, myColor Color) {
	// the captured pawn is on the rank the capturing pawn came from,
	// not on the to square
	capSq := toSq.To(myColor.Flip().PawnDir())
	if assert.DEBUG {
		assert.Assert(p.enPassantSquare != SqNone, "DoMove: en passant move without en passant square")
		assert.Assert(p.board[capSq] == MakePiece(myColor.Flip(), Pawn), "DoMove: captured en passant piece invalid")
	}
	p.removePiece(capSq)
	p.movePiece(fromSq, toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) doPromotionMove(m Move, fromSq Square, toSq Square, targetPc Piece, myColor Color) {
	if targetPc != PieceNone { // capture
		p.removePiece(toSq)
	}
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // out
			p.castlingRights.Remove(cr)
			p.zobristKey ^= zobristBase.castlingRights[p.castlingRights] // in
		}
	}
	// the pawn is removed and the promoted piece placed instead
	p.removePiece(fromSq)
	p.putPiece(MakePiece(myColor, m.Promoted()), toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) movePiece(fromSq Square, toSq Square) {
	p.putPiece(p.removePiece(fromSq), toSq)
}

func (p *Position) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] == PieceNone, "putPiece: square %s occupied", square.String())
	}

	// update board
	p.board[square] = piece
	if pieceType == King {
		p.kingSquare[color] = square
	}
	// update bitboards
	p.piecesBb[color][pieceType].PushSquare(square)
	p.occupiedBb[color].PushSquare(square)
	// zobrist
	p.zobristKey ^= zobristBase.pieces[piece][square]
	// game phase
	p.gamePhase += pieceType.GamePhaseValue()
	if p.gamePhase > GamePhaseMax {
		p.gamePhase = GamePhaseMax
	}
	// material
	p.material[color] += pieceType.ValueOf()
	if pieceType > Pawn && pieceType < King {
		p.materialNonPawn[color] += pieceType.ValueOf()
	}
	// positional value
	p.psqMidValue[color] += PosMidValue(piece, square)
	p.psqEndValue[color] += PosEndValue(piece, square)
}

func (p *Position) removePiece(square Square) Piece {
	removed := p.board[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] != PieceNone, "removePiece: square %s empty", square.String())
	}

	// update board
	p.board[square] = PieceNone
	// update bitboards
	p.piecesBb[color][pieceType].PopSquare(square)
	p.occupiedBb[color].PopSquare(square)
	// zobrist
	p.zobristKey ^= zobristBase.pieces[removed][square]
	// game phase
	p.gamePhase -= pieceType.GamePhaseValue()
	if p.gamePhase < 0 {
		p.gamePhase = 0
	}
	// material
	p.material[color] -= pieceType.ValueOf()
	if pieceType > Pawn && pieceType < King {
		p.materialNonPawn[color] -= pieceType.ValueOf()
	}
	// positional value
	p.psqMidValue[color] -= PosMidValue(removed, square)
	p.psqEndValue[color] -= PosEndValue(removed, square)
	return removed
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()] // out
		p.enPassantSquare = SqNone
	}
}

func (p *Position) fen() string {
	var fen strings.Builder
	// pieces
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, Rank8-r)]
			if pc == PieceNone {
				emptySquares++
			} else {
				if emptySquares > 0 {
					fen.WriteString(strconv.Itoa(emptySquares))
					emptySquares = 0
				}
				fen.WriteString(pc.String())
			}
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	// next player
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	// castling rights
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	// en passant
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	// half move clock
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	// full move number
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa((p.nextHalfMoveNumber + 1) / 2))
	return fen.String()
}

// regex for the first part of a fen (position of pieces)
var regexFenPos = regexp.MustCompile("^[0-8pPnNbBrRqQkK/]+$")

// regex for the next player color in a fen
var regexWorB = regexp.MustCompile("^[w|b]$")

// regex for the castling rights in a fen
var regexCastlingRights = regexp.MustCompile("^(K?Q?k?q?|-)$")

// regex for the en passant square in a fen
var regexEnPassant = regexp.MustCompile("^([a-h][36]|-)$")

// setupBoard sets up a board based on a fen. This is basically the
// only way to get a valid Position instance. All six fen fields are
// required.
func (p *Position) setupBoard(fen string) error {

	fenParts := strings.Split(strings.TrimSpace(fen), " ")
	if len(fenParts) != 6 {
		return errors.New("fen must have 6 fields")
	}

	// make sure only valid chars are used
	if !regexFenPos.MatchString(fenParts[0]) {
		return errors.New("fen position contains invalid characters")
	}
	if strings.Count(fenParts[0], "/") != 7 {
		return errors.New("fen position must have 8 ranks")
	}

	// fen string starts at a8 and runs to h1 with "/" jumping to
	// file A of the next lower rank
	currentSquare := SqA8
	rankStart := SqA8

	for _, c := range fenParts[0] {
		if number, e := strconv.Atoi(string(c)); e == nil { // number of empty squares
			currentSquare = Square(int(currentSquare) + (number * int(East)))
		} else if c == '/' { // rank separator
			if int(currentSquare) != int(rankStart)+8 {
				return errors.New("fen position has an invalid rank length")
			}
			currentSquare = Square(int(currentSquare) + 2*int(South))
			rankStart = currentSquare
		} else {
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return fmt.Errorf("invalid piece character: %s", string(c))
			}
			if !currentSquare.IsValid() {
				return errors.New("fen position is too long")
			}
			p.putPiece(piece, currentSquare)
			currentSquare++
		}
	}
	if currentSquare != SqA2 { // after h1++ we need to be at a2
		return errors.New("fen position does not cover all squares")
	}

	// sanity checks on the resulting board
	if p.piecesBb[White][King].PopCount() != 1 || p.piecesBb[Black][King].PopCount() != 1 {
		return errors.New("fen position must have exactly one king per side")
	}
	if (p.piecesBb[White][Pawn]|p.piecesBb[Black][Pawn])&(Rank1_Bb|Rank8_Bb) != BbZero {
		return errors.New("fen position has pawns on rank 1 or 8")
	}
	p.kingSquare[White] = p.piecesBb[White][King].Lsb()
	p.kingSquare[Black] = p.piecesBb[Black][King].Lsb()

	// next player
	if !regexWorB.MatchString(fenParts[1]) {
		return errors.New("fen next player field invalid")
	}
	p.nextHalfMoveNumber = 1
	p.enPassantSquare = SqNone
	if fenParts[1] == "b" {
		p.nextPlayer = Black
		p.zobristKey ^= zobristBase.nextPlayer
		p.nextHalfMoveNumber++
	}

	// castling rights
	if !regexCastlingRights.MatchString(fenParts[2]) {
		return errors.New("fen castling rights field invalid")
	}
	if fenParts[2] != "-" {
		for _, c := range fenParts[2] {
			switch c {
			case 'K':
				p.castlingRights.Add(CastlingWhiteOO)
			case 'Q':
				p.castlingRights.Add(CastlingWhiteOOO)
			case 'k':
				p.castlingRights.Add(CastlingBlackOO)
			case 'q':
				p.castlingRights.Add(CastlingBlackOOO)
			}
		}
	}
	p.zobristKey ^= zobristBase.castlingRights[p.castlingRights]

	// en passant
	if !regexEnPassant.MatchString(fenParts[3]) {
		return errors.New("fen en passant field invalid")
	}
	if fenParts[3] != "-" {
		p.enPassantSquare = MakeSquare(fenParts[3])
		p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()]
	}

	// half move clock (50 moves rule)
	if number, e := strconv.Atoi(fenParts[4]); e == nil {
		p.halfMoveClock = number
	} else {
		return fmt.Errorf("fen half move clock not a number: %s", fenParts[4])
	}

	// full move number - convert to the next half move number (ply)
	if moveNumber, e := strconv.Atoi(fenParts[5]); e == nil {
		if moveNumber == 0 {
			moveNumber = 1
		}
		p.nextHalfMoveNumber = 2*moveNumber - (1 - int(p.nextPlayer))
	} else {
		return fmt.Errorf("fen move number not a number: %s", fenParts[5])
	}

	return nil
}

// //////////////////////////////////////////////////////
// // Getter and Setter functions
// //////////////////////////////////////////////////////

// ZobristKey returns the current zobrist key for this position
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// NextPlayer returns the next player as Color for the position
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on the given square. Empty squares
// return PieceNone.
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the Bitboard for the given piece type of the given color
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns a Bitboard of all pieces currently on the board
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBb returns a Bitboard of all pieces of Color c
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// GamePhase returns the current game phase value of the position.
// 24 at the start of the game (also the max), 0 when no officers
// are left.
func (p *Position) GamePhase() int {
	return p.gamePhase
}

// GamePhaseFactor returns a factor between 0 and 1 which reflects the
// ratio between the actual game phase and the max game phase
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.gamePhase) / GamePhaseMax
}

// GetEnPassantSquare returns the en passant square or SqNone if not set
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// CastlingRights returns the castling rights of the position
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// KingSquare returns the current square of the king of color c
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// HalfMoveClock returns the positions half move clock
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// Material returns the material value in centipawns for the given
// color on this position
func (p *Position) Material(c Color) Value {
	return p.material[c]
}

// MaterialNonPawn returns the non pawn material value for the given color
func (p *Position) MaterialNonPawn(c Color) Value {
	return p.materialNonPawn[c]
}

// PsqMidValue returns the positional value for the given color for
// early game phases
func (p *Position) PsqMidValue(c Color) Value {
	return p.psqMidValue[c]
}

// PsqEndValue returns the positional value for the given color for
// later game phases
func (p *Position) PsqEndValue(c Color) Value {
	return p.psqEndValue[c]
}

// LastMove returns the last move made on the position or MoveNone if
// the position has no history of earlier moves.
func (p *Position) LastMove() Move {
	if p.historyCounter <= 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the captured piece of the last move made
// on the position or PieceNone if the move was non capturing or the
// position has no history.
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter <= 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove returns true if the last move was a capturing move.
func (p *Position) WasCapturingMove() bool {
	return p.LastCapturedPiece() != PieceNone
}
