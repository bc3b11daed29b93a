package ledger

import (
	"fmt"
	"sync"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain/types"
)

type account struct {
	points int64
	// history is oldest first; readers see it reversed.
	history []types.Transaction
}

// Store is the in-memory ledger of every program in a catalog.
type Store struct {
	catalog *catalog.Catalog

	mu       sync.RWMutex
	accounts map[types.ProgramID]*account
}

// New returns a ledger with every program at its initial points and no history.
func New(c *catalog.Catalog) *Store {
	s := &Store{catalog: c}
	s.accounts = s.defaults()
	return s
}

func (s *Store) defaults() map[types.ProgramID]*account {
	out := make(map[types.ProgramID]*account)
	for _, p := range s.catalog.Programs() {
		out[p.ID] = &account{points: p.InitialPoints}
	}
	return out
}

// Balance returns the current points of program id.
func (s *Store) Balance(id types.ProgramID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrProgramNotFound, id)
	}
	return acc.points, nil
}

// History returns a copy of program id's transactions, most recent first.
func (s *Store) History(id types.ProgramID) ([]types.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrProgramNotFound, id)
	}
	return newestFirst(acc.history), nil
}

// Append sets program id's balance to points and records tx as its newest
// transaction.
//
// A negative points value is a caller bug. The balance is clamped to zero, tx
// is still recorded so balance and history stay in step, and an error wrapping
// ErrNegativeBalance is returned.
func (s *Store) Append(id types.ProgramID, points int64, tx types.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrProgramNotFound, id)
	}
	var err error
	if points < 0 {
		err = fmt.Errorf("%w: program %q balance %d clamped to 0", types.ErrNegativeBalance, id, points)
		points = 0
	}
	acc.points = points
	acc.history = append(acc.history, tx)
	return err
}

func newestFirst(history []types.Transaction) []types.Transaction {
	out := make([]types.Transaction, len(history))
	for i, tx := range history {
		out[len(history)-1-i] = tx
	}
	return out
}
