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

// Package movegen contains the functionality to create moves on a
// chess position. It generates pseudo legal moves restricted by a
// check evasion mask when the side to move is in check and filters
// them to fully legal moves via make/unmake and a king attack test.
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kseidel/KestrelGo/internal/moveslice"
	"github.com/kseidel/KestrelGo/internal/position"
	. "github.com/kseidel/KestrelGo/internal/types"
)

// Movegen data structure. Create a new move generator via
// movegen.NewMoveGen(). The generator reuses pre-allocated move
// lists and does not allocate during generation.
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
}

// GenMode generation modes for the move generation
type GenMode int

// Generation modes. GenCap generates captures and promotions,
// GenNonCap the remaining quiet moves.
const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// NewMoveGen creates a new instance of a move generator
func NewMoveGen() *Movegen {
	return &Movegen{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// GeneratePseudoLegalMoves generates the pseudo legal moves for the
// next player. Does not check if the king is left in check or passes
// an attacked square when castling. When the side to move is in
// check the generation is restricted to check evasions: with a
// double check only king moves are generated, with a single check
// all targets are masked to the checker square and the squares in
// between checker and king.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()

	targets := BbAll
	evasion := false
	if p.HasCheck() {
		evasion = true
		checkers := p.CheckersBb()
		if checkers.PopCount() > 1 {
			// double check - only the king can move
			mg.generateKingMoves(p, mode, mg.pseudoLegalMoves)
			return mg.pseudoLegalMoves
		}
		checkerSq := checkers.Lsb()
		targets = checkers | Intermediate(p.KingSquare(p.NextPlayer()), checkerSq)
	}

	mg.generatePawnMoves(p, mode, targets, mg.pseudoLegalMoves)
	if !evasion {
		mg.generateCastling(p, mode, mg.pseudoLegalMoves)
	}
	mg.generatePieceMoves(p, mode, targets, mg.pseudoLegalMoves)
	mg.generateKingMoves(p, mode, mg.pseudoLegalMoves)

	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates only legal moves for the next player.
// Uses GeneratePseudoLegalMoves and filters out illegal moves.
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GeneratePseudoLegalMoves(p, mode)
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return p.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return mg.legalMoves
}

// HasLegalMove determines if the position has at least one legal
// move. Only a single legal move needs to be found. The search order
// is roughly from the most to the least likely piece to have a move.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {

	us := p.NextPlayer()
	usBb := p.OccupiedBb(us)

	// King - castling needs no check as a possible castling implies
	// other legal king or rook moves
	kingSquare := p.KingSquare(us)
	tmpMoves := GetPseudoAttacks(King, kingSquare) &^ usBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		if p.IsLegalMove(MakeMove(kingSquare, toSquare, 0, PtNone, PtNone)) {
			return true
		}
	}

	myPawns := p.PiecesBb(us, Pawn)
	oppBb := p.OccupiedBb(us.Flip())
	occupiedBb := p.OccupiedAll()
	up := us.PawnDir()

	// pawn captures
	for _, dir := range []Direction{West, East} {
		tmpMoves = ShiftBitboard(myPawns, Direction(int8(up)+int8(dir))) & oppBb
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := Square(int(toSquare) - int(up) - int(dir))
			if p.IsLegalMove(MakeMove(fromSquare, toSquare, 0, PtNone, PtNone)) {
				return true
			}
		}
	}

	// pawn pushes - a double step would be redundant to its single
	// step for the purpose of finding one legal move
	tmpMoves = ShiftBitboard(myPawns, up) &^ occupiedBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := Square(int(toSquare) - int(up))
		if p.IsLegalMove(MakeMove(fromSquare, toSquare, 0, PtNone, PtNone)) {
			return true
		}
	}

	// officers
	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(us, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupiedBb) &^ usBb
			for moves != 0 {
				toSquare := moves.PopLsb()
				if p.IsLegalMove(MakeMove(fromSquare, toSquare, 0, PtNone, PtNone)) {
					return true
				}
			}
		}
	}

	// en passant captures
	epSquare := p.GetEnPassantSquare()
	if epSquare != SqNone {
		for _, dir := range []Direction{West, East} {
			tmpMoves = ShiftBitboard(epSquare.Bb(), Direction(int8(us.Flip().PawnDir())+int8(dir))) & myPawns
			if tmpMoves != 0 {
				fromSquare := tmpMoves.PopLsb()
				if p.IsLegalMove(MakeMove(fromSquare, epSquare, FlagEnPassant|FlagCapture, Pawn, PtNone)) {
					return true
				}
			}
		}
	}

	return false
}

// regex for moves in UCI notation
var regexUciMove = regexp.MustCompile("^([a-h][1-8][a-h][1-8])([nbrqNBRQ])?$")

// GetMoveFromUci generates all legal moves and matches the given UCI
// move string against them. If there is a match the actual move is
// returned, otherwise MoveNone.
//
// As this uses string creation and comparison this is not very
// efficient. Use only when performance is not critical.
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}
	// we also allow upper case promotion letters - not really UCI
	// but many input files have this wrong
	moveString := matches[1] + strings.ToLower(matches[2])

	mg.GenerateLegalMoves(p, GenAll)
	for _, m := range *mg.legalMoves {
		if m.StringUci() == moveString {
			return m
		}
	}
	return MoveNone
}

// ValidateMove validates if a move is a legal move on the given position
func (mg *Movegen) ValidateMove(p *position.Position, move Move) bool {
	if move == MoveNone {
		return false
	}
	ml := mg.GenerateLegalMoves(p, GenAll)
	return ml.Contains(move)
}

// String returns a string representation of a Movegen instance
func (mg *Movegen) String() string {
	return fmt.Sprintf("Movegen: { pseudo legal: %d, legal: %d }",
		mg.pseudoLegalMoves.Len(), mg.legalMoves.Len())
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// generatePawnMoves shifts the own pawn bitboard into the direction
// of the pawn moves and ANDs it with the possible target squares.
// The from square is recovered with the backwards shift.
func (mg *Movegen) generatePawnMoves(p *position.Position, mode GenMode, targets Bitboard, ml *moveslice.MoveSlice) {

	us := p.NextPlayer()
	myPawns := p.PiecesBb(us, Pawn)
	oppPieces := p.OccupiedBb(us.Flip())
	up := us.PawnDir()

	// captures and promotions
	if mode&GenCap != 0 {

		for _, dir := range []Direction{West, East} {
			shift := Direction(int8(up) + int8(dir))
			tmpCaptures := ShiftBitboard(myPawns, shift) & oppPieces & targets
			promCaptures := tmpCaptures & us.PromotionRankBb()
			tmpCaptures &^= us.PromotionRankBb()

			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := Square(int(toSquare) - int(shift))
				captured := p.GetPiece(toSquare).TypeOf()
				ml.PushBack(MakeMove(fromSquare, toSquare, FlagPromotion|FlagCapture, captured, Queen))
				ml.PushBack(MakeMove(fromSquare, toSquare, FlagPromotion|FlagCapture, captured, Rook))
				ml.PushBack(MakeMove(fromSquare, toSquare, FlagPromotion|FlagCapture, captured, Bishop))
				ml.PushBack(MakeMove(fromSquare, toSquare, FlagPromotion|FlagCapture, captured, Knight))
			}
			for tmpCaptures != 0 {
				toSquare := tmpCaptures.PopLsb()
				fromSquare := Square(int(toSquare) - int(shift))
				captured := p.GetPiece(toSquare).TypeOf()
				ml.PushBack(MakeMove(fromSquare, toSquare, FlagCapture, captured, PtNone))
			}
		}

		// en passant captures. The captured pawn is not on the target
		// square so the evasion mask is checked against both the en
		// passant square (blocking) and the captured pawn (checker).
		epSquare := p.GetEnPassantSquare()
		if epSquare != SqNone {
			capSq := epSquare.To(us.Flip().PawnDir())
			if targets == BbAll || targets.Has(capSq) || targets.Has(epSquare) {
				for _, dir := range []Direction{West, East} {
					shift := Direction(int8(us.Flip().PawnDir()) + int8(dir))
					tmpCaptures := ShiftBitboard(epSquare.Bb(), shift) & myPawns
					if tmpCaptures != 0 {
						fromSquare := tmpCaptures.PopLsb()
						ml.PushBack(MakeMove(fromSquare, epSquare, FlagEnPassant|FlagCapture, Pawn, PtNone))
					}
				}
			}
		}

		// push promotions
		promPushes := ShiftBitboard(myPawns, up) &^ p.OccupiedAll() & us.PromotionRankBb() & targets
		for promPushes != 0 {
			toSquare := promPushes.PopLsb()
			fromSquare := Square(int(toSquare) - int(up))
			ml.PushBack(MakeMove(fromSquare, toSquare, FlagPromotion, PtNone, Queen))
			ml.PushBack(MakeMove(fromSquare, toSquare, FlagPromotion, PtNone, Rook))
			ml.PushBack(MakeMove(fromSquare, toSquare, FlagPromotion, PtNone, Bishop))
			ml.PushBack(MakeMove(fromSquare, toSquare, FlagPromotion, PtNone, Knight))
		}
	}

	// quiet pawn moves
	if mode&GenNonCap != 0 {

		// move the pawns forward one step to unoccupied squares, then
		// move the ones now on the double push rank another step
		tmpMoves := ShiftBitboard(myPawns, up) &^ p.OccupiedAll()
		tmpMovesDouble := ShiftBitboard(tmpMoves&us.PawnDoubleRank(), up) &^ p.OccupiedAll() & targets
		tmpMoves = tmpMoves &^ us.PromotionRankBb() & targets

		for tmpMovesDouble != 0 {
			toSquare := tmpMovesDouble.PopLsb()
			fromSquare := Square(int(toSquare) - 2*int(up))
			ml.PushBack(MakeMove(fromSquare, toSquare, FlagDoublePush, PtNone, PtNone))
		}
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := Square(int(toSquare) - int(up))
			ml.PushBack(MakeMove(fromSquare, toSquare, 0, PtNone, PtNone))
		}
	}
}

// generateCastling generates pseudo castling moves - it does not
// check if the king is in check or passes an attacked square
func (mg *Movegen) generateCastling(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	if mode&GenNonCap == 0 || p.CastlingRights() == CastlingNone {
		return
	}
	occupiedBb := p.OccupiedAll()
	cr := p.CastlingRights()
	if p.NextPlayer() == White {
		if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occupiedBb == 0 {
			ml.PushBack(MakeMove(SqE1, SqG1, FlagCastling, PtNone, PtNone))
		}
		if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occupiedBb == 0 {
			ml.PushBack(MakeMove(SqE1, SqC1, FlagCastling, PtNone, PtNone))
		}
	} else {
		if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occupiedBb == 0 {
			ml.PushBack(MakeMove(SqE8, SqG8, FlagCastling, PtNone, PtNone))
		}
		if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occupiedBb == 0 {
			ml.PushBack(MakeMove(SqE8, SqC8, FlagCastling, PtNone, PtNone))
		}
	}
}

// generateKingMoves generates the 8-neighbour king moves. King moves
// are not restricted by the evasion target mask - their legality is
// decided by the make/unmake filter which tests the king attack with
// the king removed from the occupancy (x-rays through the king).
func (mg *Movegen) generateKingMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	fromSquare := p.KingSquare(us)
	pseudoMoves := GetPseudoAttacks(King, fromSquare)

	if mode&GenCap != 0 {
		captures := pseudoMoves & p.OccupiedBb(us.Flip())
		for captures != 0 {
			toSquare := captures.PopLsb()
			ml.PushBack(MakeMove(fromSquare, toSquare, FlagCapture, p.GetPiece(toSquare).TypeOf(), PtNone))
		}
	}
	if mode&GenNonCap != 0 {
		nonCaptures := pseudoMoves &^ p.OccupiedAll()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			ml.PushBack(MakeMove(fromSquare, toSquare, 0, PtNone, PtNone))
		}
	}
}

// generatePieceMoves generates knight, bishop, rook and queen moves
// using the pre-computed pseudo attacks and the magic bitboard
// attacks for sliders. Piece types are selected by their small
// integer tag - no dynamic dispatch on the hot path.
func (mg *Movegen) generatePieceMoves(p *position.Position, mode GenMode, targets Bitboard, ml *moveslice.MoveSlice) {
	us := p.NextPlayer()
	occupiedBb := p.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(us, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupiedBb) & targets

			if mode&GenCap != 0 {
				captures := moves & p.OccupiedBb(us.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					ml.PushBack(MakeMove(fromSquare, toSquare, FlagCapture, p.GetPiece(toSquare).TypeOf(), PtNone))
				}
			}
			if mode&GenNonCap != 0 {
				nonCaptures := moves &^ occupiedBb
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					ml.PushBack(MakeMove(fromSquare, toSquare, 0, PtNone, PtNone))
				}
			}
		}
	}
}
