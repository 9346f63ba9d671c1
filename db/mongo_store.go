package db

import (
	"context"
	"fmt"

	"fightdeck/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB database. Single-document updates
// are atomic on the server, and the driver retries retryable writes on
// transient contention, which is what gives the mutator its all-or-nothing
// contract.
type MongoStore struct {
	database *mongo.Database
}

func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{database: database}
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.database.Collection(name)
}

// mapErr translates driver errors into the service error taxonomy.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return models.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadyExists
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", models.ErrTransient, err)
	}
	return err
}

func (s *MongoStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	err := s.collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	return mapErr(err)
}

func (s *MongoStore) Insert(ctx context.Context, collection, id string, doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var asMap bson.M
	if err := bson.Unmarshal(raw, &asMap); err != nil {
		return err
	}
	asMap["_id"] = id

	_, err = s.collection(collection).InsertOne(ctx, asMap)
	return mapErr(err)
}

func (s *MongoStore) Merge(ctx context.Context, collection, id string, fields bson.M) (MutationResult, error) {
	return s.Update(ctx, collection, id, bson.M{"$set": fields})
}

func (s *MongoStore) AppendUnique(ctx context.Context, collection, id, field string, value interface{}) (MutationResult, error) {
	return s.Update(ctx, collection, id, bson.M{"$addToSet": bson.M{field: value}})
}

func (s *MongoStore) Increment(ctx context.Context, collection, id, field string, delta int) (MutationResult, error) {
	return s.Update(ctx, collection, id, bson.M{"$inc": bson.M{field: delta}})
}

func (s *MongoStore) SetField(ctx context.Context, collection, id, field string, value interface{}) (MutationResult, error) {
	return s.Update(ctx, collection, id, bson.M{"$set": bson.M{field: value}})
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, update bson.M) (MutationResult, error) {
	return s.UpdateGuarded(ctx, collection, bson.M{"_id": id}, update)
}

func (s *MongoStore) UpdateGuarded(ctx context.Context, collection string, filter, update bson.M) (MutationResult, error) {
	result, err := s.collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return MutationAborted, mapErr(err)
	}
	if result.MatchedCount == 0 {
		return MutationNotFound, nil
	}
	return MutationApplied, nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter bson.M, sort bson.D, limit int64, out interface{}) error {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return mapErr(err)
	}
	defer cursor.Close(ctx)

	return mapErr(cursor.All(ctx, out))
}

// Rekey copies the document under a new id and deletes the old one inside a
// single session transaction, so readers never observe zero or two copies.
func (s *MongoStore) Rekey(ctx context.Context, collection, oldID, newID string) error {
	session, err := s.database.Client().StartSession()
	if err != nil {
		return mapErr(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll := s.collection(collection)

		var doc bson.M
		if err := coll.FindOne(sc, bson.M{"_id": oldID}).Decode(&doc); err != nil {
			return nil, mapErr(err)
		}

		count, err := coll.CountDocuments(sc, bson.M{"_id": newID})
		if err != nil {
			return nil, mapErr(err)
		}
		if count > 0 {
			return nil, fmt.Errorf("rekey %s -> %s: %w", oldID, newID, models.ErrAlreadyExists)
		}

		doc["_id"] = newID
		if _, err := coll.InsertOne(sc, doc); err != nil {
			return nil, mapErr(err)
		}
		if _, err := coll.DeleteOne(sc, bson.M{"_id": oldID}); err != nil {
			return nil, mapErr(err)
		}
		return nil, nil
	})
	return err
}
