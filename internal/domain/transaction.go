package domain

import (
	"time" // Timestamps

	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB object IDs
)

// Transaction Model. Records a completed on-chain transfer; immutable once
// written. Amount is a decimal string, never a float.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`    // Primary key
	From      string             `bson:"from" json:"from"`           // Sender wallet address
	To        string             `bson:"to" json:"to"`               // Recipient wallet address, possibly external
	Amount    string             `bson:"amount" json:"amount"`       // Decimal string amount
	Token     string             `bson:"token" json:"token"`         // Token symbol
	Hash      string             `bson:"hash" json:"hash"`           // On-chain transaction hash, unique
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"` // Timestamp of submission
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`       // User that initiated the transfer
}

// EnrichedTransaction is a transaction joined with counterparty identity for
// display. The enrichment is computed at read time, never stored.
type EnrichedTransaction struct {
	Transaction
	FromName  string `json:"fromName"`  // Sender display name, or "Unknown User"
	FromEmail string `json:"fromEmail"` // Sender email, or "Unknown"
	ToName    string `json:"toName"`    // Recipient display name, or "Unknown User"
	ToEmail   string `json:"toEmail"`   // Recipient email, or "Unknown"
}
