package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pair is an unordered pair of two identities stored in canonical
// (lexicographically sorted) order.
type Pair struct {
	First  string
	Second string
}

// NewPair canonicalizes a and b so that the pair has a single representation
// regardless of who liked whom first.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{First: a, Second: b}
}

// Has reports whether identity is a member of the pair.
func (p Pair) Has(identity string) bool {
	return p.First == identity || p.Second == identity
}

// Other returns the member of the pair that is not identity.
func (p Pair) Other(identity string) (string, bool) {
	switch identity {
	case p.First:
		return p.Second, true
	case p.Second:
		return p.First, true
	}
	return "", false
}

// Match is the durable record of a mutual like. At most one exists per Pair.
type Match struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	User1ID       string     `json:"user1_id" db:"user1_identity"`
	User2ID       string     `json:"user2_id" db:"user2_identity"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	LastMessage   *string    `json:"lastMessage" db:"last_message"`
	LastMessageAt *time.Time `json:"lastMessageAt" db:"last_message_at"`
}

// NewMatch builds a match for the canonical pair with empty last-message metadata.
func NewMatch(pair Pair, createdAt time.Time) *Match {
	return &Match{
		ID:        uuid.New(),
		User1ID:   pair.First,
		User2ID:   pair.Second,
		CreatedAt: createdAt,
	}
}

func (m *Match) Pair() Pair {
	return NewPair(m.User1ID, m.User2ID)
}

func (m *Match) HasUser(identity string) bool {
	return m.User1ID == identity || m.User2ID == identity
}

func (m *Match) GetOtherUserID(identity string) (string, bool) {
	return m.Pair().Other(identity)
}
