package store

import (
	"context" // Context for store operations
	"errors"  // Error inspection
	"regexp"  // Escaping search input for regex matching
	"time"    // Timeouts

	"privypay/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/bson"           // BSON document building
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB object IDs
	"go.mongodb.org/mongo-driver/mongo"          // MongoDB driver
	"go.mongodb.org/mongo-driver/mongo/options"  // Query and index options
)

// opTimeout bounds every store call so a dead mongod surfaces as
// ErrUnavailable instead of hanging the request
const opTimeout = 5 * time.Second

// Mongo implements Store on a MongoDB database
type Mongo struct {
	users        *mongo.Collection // users collection
	transactions *mongo.Collection // transactions collection
	client       *mongo.Client     // Underlying client, kept for pings
}

// Connect dials MongoDB and returns a Store over the named database
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, mapMongoErr(err)
	}
	db := client.Database(dbName)
	return &Mongo{
		users:        db.Collection("users"),
		transactions: db.Collection("transactions"),
		client:       client,
	}, nil
}

// EnsureIndexes creates the unique indexes the consistency model relies on:
// users.email, users.walletAddress (sparse, shadow records have none) and
// transactions.hash. The pending-invite pair uniqueness cannot be expressed as
// a collection index because invites are embedded per user; it is enforced by
// the create-invitation guard instead.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, err := m.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "walletAddress", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "friends", Value: 1}}},
	})
	if err != nil {
		return mapMongoErr(err)
	}
	_, err = m.transactions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return mapMongoErr(err)
}

// FindUserByEmail returns the user with the given email
func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findUser(ctx, bson.M{"email": email})
}

// FindUserByID returns the user with the given ID
func (m *Mongo) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return m.findUser(ctx, bson.M{"_id": id})
}

// FindUserByWallet returns the user owning the given wallet address
func (m *Mongo) FindUserByWallet(ctx context.Context, address string) (*domain.User, error) {
	return m.findUser(ctx, bson.M{"walletAddress": address})
}

// findUser runs a single-document lookup with the shared timeout
func (m *Mongo) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var user domain.User
	if err := m.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapMongoErr(err)
	}
	return &user, nil
}

// SearchUsers matches query case-insensitively over fullName and email
func (m *Mongo) SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"fullName": pattern},
			bson.M{"email": pattern},
		},
		"_id": bson.M{"$ne": exclude},
	}
	cur, err := m.users.Find(ctx, filter)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	defer cur.Close(ctx)
	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, mapMongoErr(err)
	}
	return users, nil
}

// InsertUser creates a new user document and assigns its ID
func (m *Mongo) InsertUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := m.users.InsertOne(ctx, user); err != nil {
		return mapMongoErr(err)
	}
	return nil
}

// ReplaceUser saves the whole user document by ID
func (m *Mongo) ReplaceUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	res, err := m.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return mapMongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertTransaction creates a new transaction document and assigns its ID
func (m *Mongo) InsertTransaction(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	if _, err := m.transactions.InsertOne(ctx, tx); err != nil {
		return mapMongoErr(err)
	}
	return nil
}

// ListTransactions returns transactions submitted by the user or addressed to
// the wallet, newest first
func (m *Mongo) ListTransactions(ctx context.Context, userID primitive.ObjectID, wallet string) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	or := bson.A{bson.M{"userId": userID}}
	if wallet != "" {
		or = append(or, bson.M{"to": wallet})
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := m.transactions.Find(ctx, bson.M{"$or": or}, opts)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	defer cur.Close(ctx)
	var txs []domain.Transaction
	if err := cur.All(ctx, &txs); err != nil {
		return nil, mapMongoErr(err)
	}
	return txs, nil
}

// Ping verifies the connection is alive
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return mapMongoErr(m.client.Ping(ctx, nil))
}

// mapMongoErr translates driver errors into the store taxonomy
func mapMongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, context.DeadlineExceeded):
		return ErrUnavailable
	default:
		return err
	}
}
