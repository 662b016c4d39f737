// Package storage keeps the notation history of every game in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/status"
	"github.com/dgraph-io/badger/v4"
)

var ErrNotFound = errors.New("archived game not found")

const keyGamePrefix = "game:"

// ArchivedGame is the persisted form of a game: the record string after
// every ply, starting with the initial one.
type ArchivedGame struct {
	ID         string         `json:"id"`
	Positions  []string       `json:"positions"`
	Moves      []string       `json:"moves"`
	Status     status.Status  `json:"status"`
	Result     *status.Result `json:"result,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
}

// Archive wraps BadgerDB for game history
type Archive struct {
	db *badger.DB
}

// Options selects where the archive lives. InMemory ignores Dir.
type Options struct {
	Dir      string
	InMemory bool
}

func Open(opts Options) (*Archive, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts = badger.DefaultOptions(opts.Dir)
	}
	bopts.Logger = nil // Disable logging

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(keyGamePrefix + id)
}

// CreateGame stores a new game whose first position is fen.
func (a *Archive) CreateGame(id, fen string) error {
	now := time.Now()
	game := &ArchivedGame{
		ID:        id,
		Positions: []string{fen},
		Moves:     []string{},
		Status:    status.Ongoing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return a.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(gameKey(id))
		if err == nil {
			return fmt.Errorf("archive game %s: already exists", id)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return put(txn, game)
	})
}

// AppendPly records a move and the record string that followed it.
// The status is updated alongside; a terminal status also sets the result.
func (a *Archive) AppendPly(id, move, fen string, st status.Status, result *status.Result) error {
	return a.update(id, func(game *ArchivedGame) error {
		if game.FinishedAt != nil {
			return fmt.Errorf("archive game %s: already finished", id)
		}
		game.Moves = append(game.Moves, move)
		game.Positions = append(game.Positions, fen)
		game.Status = st
		game.UpdatedAt = time.Now()
		if st.Terminal() {
			game.Result = result
			finished := game.UpdatedAt
			game.FinishedAt = &finished
		}
		return nil
	})
}

// LoadGame returns the archived game or ErrNotFound.
func (a *Archive) LoadGame(id string) (*ArchivedGame, error) {
	var game *ArchivedGame
	err := a.db.View(func(txn *badger.Txn) error {
		var err error
		game, err = get(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

// History returns the record strings of a game in play order.
func (a *Archive) History(id string) ([]string, error) {
	game, err := a.LoadGame(id)
	if err != nil {
		return nil, err
	}
	return game.Positions, nil
}

// ListGames returns the ids of all archived games.
func (a *Archive) ListGames() ([]string, error) {
	var ids []string
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyGamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(keyGamePrefix):]))
		}
		return nil
	})
	return ids, err
}

func (a *Archive) update(id string, fn func(*ArchivedGame) error) error {
	return a.db.Update(func(txn *badger.Txn) error {
		game, err := get(txn, id)
		if err != nil {
			return err
		}
		if err := fn(game); err != nil {
			return err
		}
		return put(txn, game)
	})
}

func get(txn *badger.Txn, id string) (*ArchivedGame, error) {
	item, err := txn.Get(gameKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	game := &ArchivedGame{}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, game)
	})
	return game, err
}

func put(txn *badger.Txn, game *ArchivedGame) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return txn.Set(gameKey(game.ID), data)
}
