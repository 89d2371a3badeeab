package domain

import "time"

// Like is a unilateral like from one identity to another.
// At most one exists per ordered (FromID, ToID) pair.
type Like struct {
	FromID    string    `json:"fromUserId" db:"from_identity"`
	ToID      string    `json:"toUserId" db:"to_identity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
