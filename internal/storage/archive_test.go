package storage

import (
	"errors"
	"sort"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/status"
)

const (
	startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	afterE4  = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 1 1"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(Options{InMemory: true})
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestArchive(t *testing.T) {
	a := openTestArchive(t)

	t.Run("CreateAndLoad", func(t *testing.T) {
		if err := a.CreateGame("g1", startFEN); err != nil {
			t.Fatalf("CreateGame: %v", err)
		}
		game, err := a.LoadGame("g1")
		if err != nil {
			t.Fatalf("LoadGame: %v", err)
		}
		if game.Status != status.Ongoing || len(game.Positions) != 1 || game.Positions[0] != startFEN {
			t.Fatalf("unexpected game %+v", game)
		}
		if game.FinishedAt != nil || game.Result != nil {
			t.Fatalf("new game should not be finished")
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		if err := a.CreateGame("g1", startFEN); err == nil {
			t.Fatalf("expected error for duplicate game")
		}
	})

	t.Run("AppendPly", func(t *testing.T) {
		if err := a.AppendPly("g1", "e4", afterE4, status.Ongoing, nil); err != nil {
			t.Fatalf("AppendPly: %v", err)
		}
		positions, err := a.History("g1")
		if err != nil {
			t.Fatalf("History: %v", err)
		}
		if len(positions) != 2 || positions[1] != afterE4 {
			t.Fatalf("positions = %v", positions)
		}
		game, err := a.LoadGame("g1")
		if err != nil {
			t.Fatalf("LoadGame: %v", err)
		}
		if len(game.Moves) != 1 || game.Moves[0] != "e4" {
			t.Fatalf("moves = %v", game.Moves)
		}
	})

	t.Run("Finish", func(t *testing.T) {
		result := status.BlackWins
		if err := a.AppendPly("g1", "Qh4#", "final", status.Checkmate, &result); err != nil {
			t.Fatalf("AppendPly: %v", err)
		}
		game, err := a.LoadGame("g1")
		if err != nil {
			t.Fatalf("LoadGame: %v", err)
		}
		if game.FinishedAt == nil || game.Result == nil || *game.Result != status.BlackWins {
			t.Fatalf("game not finished: %+v", game)
		}
		if err := a.AppendPly("g1", "e5", "after", status.Ongoing, nil); err == nil {
			t.Fatalf("expected error appending to a finished game")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := a.LoadGame("missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("LoadGame error = %v", err)
		}
		if _, err := a.History("missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("History error = %v", err)
		}
		if err := a.AppendPly("missing", "e4", afterE4, status.Ongoing, nil); !errors.Is(err, ErrNotFound) {
			t.Fatalf("AppendPly error = %v", err)
		}
	})

	t.Run("ListGames", func(t *testing.T) {
		if err := a.CreateGame("g2", startFEN); err != nil {
			t.Fatalf("CreateGame: %v", err)
		}
		ids, err := a.ListGames()
		if err != nil {
			t.Fatalf("ListGames: %v", err)
		}
		sort.Strings(ids)
		if len(ids) != 2 || ids[0] != "g1" || ids[1] != "g2" {
			t.Fatalf("ids = %v", ids)
		}
	})
}
