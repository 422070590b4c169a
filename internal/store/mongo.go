package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/George-coder-ai/MarkIt-Up1/types"
)

const (
	mongoBackendName   = "MongoDB"
	usersCollection    = "users"
	settingsCollection = "settings"
)

// MongoStore persists users and settings in a MongoDB database.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	PasswordRef string             `bson:"password_ref"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d userDoc) toUser() types.User {
	return types.User{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Email:       d.Email,
		PasswordRef: d.PasswordRef,
		CreatedAt:   d.CreatedAt,
	}
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (types.User, error) {
	var doc userDoc
	err := s.db.Collection(usersCollection).
		FindOne(ctx, bson.M{"email": strings.ToLower(email)}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return doc.toUser(), nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id string) (types.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot match any document.
		return types.User{}, ErrNotFound
	}

	var doc userDoc
	err = s.db.Collection(usersCollection).
		FindOne(ctx, bson.M{"_id": oid}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return doc.toUser(), nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user types.User) (types.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	doc := userDoc{
		Name:        user.Name,
		Email:       strings.ToLower(user.Email),
		PasswordRef: user.PasswordRef,
		CreatedAt:   user.CreatedAt,
	}

	result, err := s.db.Collection(usersCollection).InsertOne(ctx, doc)
	if err != nil {
		return types.User{}, err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return types.User{}, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	user.ID = oid.Hex()
	user.Email = doc.Email
	return user, nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := s.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetUserSettings(ctx context.Context, userID string) (types.Settings, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return types.Settings{}, ErrNotFound
	}

	var doc bson.M
	err = s.db.Collection(settingsCollection).
		FindOne(ctx, bson.M{"user_id": oid}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Settings{}, ErrNotFound
		}
		return types.Settings{}, err
	}

	settings := types.Settings{UserID: userID, Values: make(map[string]any, len(doc))}
	for name, value := range doc {
		if name == "_id" || name == "user_id" {
			continue
		}
		settings.Values[name] = value
	}
	return settings, nil
}

func (s *MongoStore) UpdateUserSettings(ctx context.Context, userID string, fields map[string]any) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	update := bson.M{}
	for name, value := range fields {
		update[name] = value
	}

	_, err = s.db.Collection(settingsCollection).UpdateOne(
		ctx,
		bson.M{"user_id": oid},
		bson.M{"$set": update},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Name() string {
	return mongoBackendName
}
