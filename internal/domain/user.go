package domain

import (
	"time" // Timestamps

	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB object IDs
)

// User Model
type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`                       // Primary key
	FullName        string               `bson:"fullName" json:"fullName"`                      // Display name; empty for a shadow record
	Email           string               `bson:"email" json:"email"`                            // Unique, stored lowercased
	WalletAddress   string               `bson:"walletAddress,omitempty" json:"walletAddress"`  // Unique when present; empty until registration completes
	Friends         []primitive.ObjectID `bson:"friends" json:"friends"`                        // Symmetric: B in A.Friends iff A in B.Friends
	ReceivedInvites []Invite             `bson:"receivedInvites" json:"receivedInvites"`        // Invites addressed to this user
	SentInvites     []Invite             `bson:"sentInvites" json:"sentInvites"`                // Invites this user sent
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`                    // Timestamp of creation
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`                    // Timestamp of last update
}

// HasFriend reports whether id is already in the user's friends set
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// AddFriend appends id to the friends set if absent
func (u *User) AddFriend(id primitive.ObjectID) {
	if !u.HasFriend(id) {
		u.Friends = append(u.Friends, id)
	}
}

// ReceivedInvite returns the received invite with the given id, or nil
func (u *User) ReceivedInvite(id primitive.ObjectID) *Invite {
	for i := range u.ReceivedInvites {
		if u.ReceivedInvites[i].ID == id {
			return &u.ReceivedInvites[i]
		}
	}
	return nil
}

// SentInviteTo returns the sent invite addressed to email, preferring a
// pending one so that a re-invite after a decline resolves to the live record
func (u *User) SentInviteTo(email string) *Invite {
	var fallback *Invite
	for i := range u.SentInvites {
		if u.SentInvites[i].Email != email {
			continue
		}
		if u.SentInvites[i].Status == InviteStatusPending {
			return &u.SentInvites[i]
		}
		if fallback == nil {
			fallback = &u.SentInvites[i]
		}
	}
	return fallback
}

// HasPendingInviteTo reports whether a pending sent invite to email exists
func (u *User) HasPendingInviteTo(email string) bool {
	for i := range u.SentInvites {
		if u.SentInvites[i].Email == email && u.SentInvites[i].Status == InviteStatusPending {
			return true
		}
	}
	return false
}
