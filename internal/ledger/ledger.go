// Package ledger keeps an append-only in-memory record of every resource
// mutation in a match. Nothing here survives a restart; the record exists
// so settlement math and economy rejections can be audited and surfaced.
package ledger

import (
	"sync"
	"time"
)

type Entry struct {
	ID       string    `json:"id"`
	PlayerID string    `json:"player_id"`
	Delta    int       `json:"delta"`
	Balance  int       `json:"balance"`
	Reason   string    `json:"reason"`
	RefType  string    `json:"ref_type"`
	RefID    string    `json:"ref_id"`
	At       time.Time `json:"at"`
}

type Ledger struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Ledger {
	return &Ledger{}
}

// Debit records a resource deduction. balance is the post-operation value.
func (l *Ledger) Debit(playerID string, amount, balance int, reason, refType, refID string) Entry {
	return l.append(playerID, -amount, balance, reason, refType, refID)
}

// Credit records a resource grant. balance is the post-operation value.
func (l *Ledger) Credit(playerID string, amount, balance int, reason, refType, refID string) Entry {
	return l.append(playerID, amount, balance, reason, refType, refID)
}

func (l *Ledger) append(playerID string, delta, balance int, reason, refType, refID string) Entry {
	e := Entry{
		ID:       NewID(),
		PlayerID: playerID,
		Delta:    delta,
		Balance:  balance,
		Reason:   reason,
		RefType:  refType,
		RefID:    refID,
		At:       time.Now(),
	}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
	return e
}

func (l *Ledger) ForPlayer(playerID string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, 0, 8)
	for _, e := range l.entries {
		if e.PlayerID == playerID {
			out = append(out, e)
		}
	}
	return out
}

func (l *Ledger) All() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
