package domain

import (
	"time" // Timestamps

	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB object IDs
)

// Invitation statuses; accepted and declined are terminal for the record itself
const (
	InviteStatusPending  = "pending"  // Awaiting a response
	InviteStatusAccepted = "accepted" // Accepted, parties are friends
	InviteStatusDeclined = "declined" // Declined; the pair may be re-invited later
)

// Invite is embedded in a user's sentInvites or receivedInvites. Email and
// FullName snapshot the counterparty: a sent invite carries the invitee's
// identity, a received invite carries the inviter's.
type Invite struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`              // Embedded document ID
	Email     string             `bson:"email" json:"email"`         // Counterparty email
	FullName  string             `bson:"fullName" json:"fullName"`   // Counterparty display name
	Status    string             `bson:"status" json:"status"`       // pending, accepted or declined
	InvitedAt time.Time          `bson:"invitedAt" json:"invitedAt"` // Timestamp of creation
}
