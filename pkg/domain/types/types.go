package types

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// IssueID represents an issue serial number (e.g., 1, 2, 3)
type IssueID int

// String returns the string representation
func (id IssueID) String() string {
	return fmt.Sprintf("%d", id)
}

// Int returns the int representation
func (id IssueID) Int() int {
	return int(id)
}

// Validate checks if the issue ID is valid (positive)
func (id IssueID) Validate() error {
	if id <= 0 {
		return goerr.New("issue ID must be positive", goerr.V("id", int(id)))
	}
	return nil
}

// UserID represents a user identifier
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// NewUserID creates a new UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// VoteID represents a vote identifier
type VoteID string

// String returns the string representation
func (id VoteID) String() string {
	return string(id)
}

// NewVoteID creates a new VoteID
func NewVoteID() VoteID {
	return VoteID(fmt.Sprintf("vote-%s", uuid.New().String()))
}

// StatusHistoryID represents a status history identifier (UUID v7)
type StatusHistoryID string

// NewStatusHistoryID generates a new UUID v7 status history ID
func NewStatusHistoryID() StatusHistoryID {
	// UUID v7: timestamp (48 bits) + version (4 bits) + random (12 bits) + variant (2 bits) + random (62 bits)

	// Get current timestamp in milliseconds
	now := time.Now().UnixMilli()

	// Create 16 byte array for UUID
	uid := make([]byte, 16)

	// Set timestamp (48 bits = 6 bytes)
	uid[0] = byte(now >> 40)
	uid[1] = byte(now >> 32)
	uid[2] = byte(now >> 24)
	uid[3] = byte(now >> 16)
	uid[4] = byte(now >> 8)
	uid[5] = byte(now)

	// Fill remaining bytes with random data
	if _, err := rand.Read(uid[6:]); err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		for i := 6; i < 16; i++ {
			shift := 8 * (i - 6)
			if shift < 64 { // Prevent shift overflow
				uid[i] = byte(now >> shift)
			} else {
				uid[i] = 0
			}
		}
	}

	// Set version (7) in the upper 4 bits of byte 6
	uid[6] = (uid[6] & 0x0f) | 0x70

	// Set variant (10) in the upper 2 bits of byte 8
	uid[8] = (uid[8] & 0x3f) | 0x80

	// Convert to hex string with dashes
	return StatusHistoryID(formatUUID(uid))
}

// formatUUID formats a 16-byte array as a UUID string
func formatUUID(uid []byte) string {
	return hex.EncodeToString(uid[0:4]) + "-" +
		hex.EncodeToString(uid[4:6]) + "-" +
		hex.EncodeToString(uid[6:8]) + "-" +
		hex.EncodeToString(uid[8:10]) + "-" +
		hex.EncodeToString(uid[10:16])
}

// String returns the string representation of the status history ID
func (id StatusHistoryID) String() string {
	return string(id)
}

// Validate checks if the status history ID is valid (non-empty)
func (id StatusHistoryID) Validate() error {
	if id == "" {
		return goerr.New("status history ID cannot be empty")
	}
	return nil
}
