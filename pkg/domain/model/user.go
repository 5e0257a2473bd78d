package model

import (
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// Reputation points awarded for participation
const (
	PointsReportIssue = 10
	PointsCastVote    = 2
)

// User represents a platform user with reputation points
type User struct {
	ID        types.UserID `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	Email     string       `json:"email,omitempty" bson:"email,omitempty"`
	Points    int          `json:"points" bson:"points"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updated_at"`
}

// NewUser creates a new User instance
func NewUser(id types.UserID, name, email string) *User {
	now := time.Now()
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddPoints adds reputation points and bumps the update timestamp
func (u *User) AddPoints(points int) {
	u.Points += points
	u.UpdatedAt = time.Now()
}
