package locks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLock backs the pair lock with one document per held key. The _id
// unique index provides the mutual exclusion; expires_at lets a new
// holder reclaim a lock orphaned by a crash between Acquire and Release.
type MongoLock struct {
	Collection *mongo.Collection
}

func NewMongoLock(db *mongo.Database) DistributedLock {
	return &MongoLock{
		Collection: db.Collection("pair_locks"),
	}
}

func (l *MongoLock) Acquire(key string, ttl time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := time.Now()
	lock := bson.M{
		"_id":        key,
		"created_at": now,
		"expires_at": now.Add(ttl),
	}

	_, err := l.Collection.InsertOne(ctx, lock)
	if err == nil {
		return true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return false, err
	}

	// The key is held. Reap it if the holder's TTL has lapsed and retry
	// the insert once; losing that race means the lock stays busy.
	reaped, err := l.Collection.DeleteOne(ctx, bson.M{
		"_id":        key,
		"expires_at": bson.M{"$lt": now},
	})
	if err != nil {
		return false, err
	}
	if reaped.DeletedCount == 0 {
		return false, nil
	}

	if _, err := l.Collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *MongoLock) Release(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := l.Collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
