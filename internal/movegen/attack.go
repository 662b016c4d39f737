package movegen

import "github.com/benbeisheim/chessrules-backend/internal/chess"

var (
	rookDirs   = []chess.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []chess.Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]chess.Position{}, rookDirs...), bishopDirs...)
	knightDirs = []chess.Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = queenDirs
)

// IsKingDirectlyThreatened reports whether an enemy of kingColor attacks pos,
// whoever is to move. pos need not hold a king, which is how castling checks
// the squares the king crosses.
func IsKingDirectlyThreatened(pos chess.Position, board *chess.Board, kingColor chess.Color) bool {
	enemy := kingColor.Opponent()

	// enemy pawns sit one row ahead of the king from the king's point of view
	pawnRow := chess.Forward(kingColor)
	for _, dx := range []int{1, -1} {
		target := chess.Position{X: pos.X + dx, Y: pos.Y + pawnRow}
		if target.InBounds() && board.At(target).Is(chess.Pawn, enemy) {
			return true
		}
	}

	for _, dir := range queenDirs {
		orthogonal := dir.X == 0 || dir.Y == 0
		target := pos.Add(dir)
		for target.InBounds() {
			piece := board.At(target)
			if piece.IsEmpty() {
				target = target.Add(dir)
				continue
			}
			if piece.Color == enemy {
				if piece.Type == chess.Queen {
					return true
				}
				if orthogonal && piece.Type == chess.Rook {
					return true
				}
				if !orthogonal && piece.Type == chess.Bishop {
					return true
				}
			}
			break
		}
	}

	for _, dir := range knightDirs {
		target := pos.Add(dir)
		if target.InBounds() && board.At(target).Is(chess.Knight, enemy) {
			return true
		}
	}

	for _, dir := range kingDirs {
		target := pos.Add(dir)
		if target.InBounds() && board.At(target).Is(chess.King, enemy) {
			return true
		}
	}
	return false
}

// InCheck reports whether the king of color is attacked.
func InCheck(board *chess.Board, color chess.Color) (bool, error) {
	king, ok := board.FindKing(color)
	if !ok {
		return false, chess.ErrMissingKing
	}
	return IsKingDirectlyThreatened(king, board, color), nil
}
