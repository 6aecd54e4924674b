package locks

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// DistributedLock serializes cross-instance operations on a shared key.
type DistributedLock interface {
	Acquire(key string, ttl time.Duration) (bool, error)
	Release(key string) error
}

var distributedLock DistributedLock

func InitLocks(db *mongo.Database) {
	distributedLock = NewMongoLock(db)
}

func GetDistributedLock() DistributedLock {
	return distributedLock
}

// OverrideDistributedLock replaces the lock implementation. Intended for tests.
func OverrideDistributedLock(lock DistributedLock) {
	distributedLock = lock
}
