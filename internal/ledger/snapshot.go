package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/types"
)

// number is a decimal written as a bare JSON number.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = number(d)
	return nil
}

type record struct {
	Date           types.Date `json:"date"`
	Amount         number     `json:"amount"`
	PointsEarned   int64      `json:"pointsEarned"`
	PointsRedeemed int64      `json:"pointsRedeemed"`
	Discount       number     `json:"discount"`
}

type entry struct {
	Points  int64    `json:"points"`
	History []record `json:"history"`
}

// rawEntry defers decoding so each field can fall back on its own.
type rawEntry struct {
	Points  json.RawMessage `json:"points"`
	History json.RawMessage `json:"history"`
}

// Snapshot serialises every program's balance and history.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[types.ProgramID]entry, len(s.accounts))
	for id, acc := range s.accounts {
		history := make([]record, 0, len(acc.history))
		for _, tx := range newestFirst(acc.history) {
			history = append(history, record{
				Date:           tx.Date,
				Amount:         number(tx.Amount),
				PointsEarned:   tx.PointsEarned,
				PointsRedeemed: tx.PointsRedeemed,
				Discount:       number(tx.DiscountValue),
			})
		}
		out[id] = entry{Points: acc.points, History: history}
	}
	return json.Marshal(out)
}

// LoadSnapshot replaces the ledger with the state in blob.
//
// Programs missing from blob, or whose points are not a non-negative integer,
// start from their initial points; a missing or non-array history starts
// empty, and history entries that do not decode are dropped. Unknown program
// ids are ignored. If blob is not a JSON object at all, every program is reset
// to its defaults and an error wrapping ErrPersistenceParse is returned.
func (s *Store) LoadSnapshot(blob []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		s.mu.Lock()
		s.accounts = s.defaults()
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", types.ErrPersistenceParse, err)
	}

	accounts := s.defaults()
	for id, acc := range accounts {
		msg, ok := raw[id.String()]
		if !ok {
			continue
		}
		var re rawEntry
		if err := json.Unmarshal(msg, &re); err != nil {
			continue
		}
		if points, ok := decodePoints(re.Points); ok {
			acc.points = points
		}
		acc.history = decodeHistory(re.History)
	}

	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()
	return nil
}

func decodePoints(msg json.RawMessage) (int64, bool) {
	if len(msg) == 0 {
		return 0, false
	}
	var points int64
	if err := json.Unmarshal(msg, &points); err != nil || points < 0 {
		return 0, false
	}
	return points, true
}

// decodeHistory returns the entries oldest first.
func decodeHistory(msg json.RawMessage) []types.Transaction {
	if !bytes.HasPrefix(bytes.TrimSpace(msg), []byte("[")) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil
	}
	out := make([]types.Transaction, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		var r record
		if err := json.Unmarshal(items[i], &r); err != nil {
			continue
		}
		out = append(out, types.Transaction{
			Date:           r.Date,
			Amount:         decimal.Decimal(r.Amount),
			PointsEarned:   r.PointsEarned,
			PointsRedeemed: r.PointsRedeemed,
			DiscountValue:  decimal.Decimal(r.Discount),
		})
	}
	return out
}

// Restore builds a ledger for c from whatever st holds.
//
// A snapshot that does not parse is not fatal: Restore returns a usable ledger
// at initial balances together with an error wrapping ErrPersistenceParse.
// Any other error means st could not be read at all and no ledger is
// returned, so that a later save cannot overwrite data that merely failed to
// load.
func Restore(c *catalog.Catalog, st domain.SnapshotStore, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := New(c)
	blob, ok, err := st.LoadSnapshot()
	if err != nil {
		return nil, fmt.Errorf("load ledger snapshot: %w", err)
	}
	if !ok {
		logger.Info("no saved ledger; starting from initial balances")
		return s, nil
	}
	if err := s.LoadSnapshot(blob); err != nil {
		logger.Warn("saved ledger is corrupt; starting from initial balances", "error", err)
		return s, err
	}
	logger.Debug("ledger restored", "bytes", len(blob))
	return s, nil
}
