/*
 * Copyright (c) 2025, FaithMatch (https://faithmatch.dev).
 *
 * FaithMatch licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package mongo

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faithmatch/match-data-service/internal/system/log"
)

// MongoDB holds the client and the database handle used by the document stores.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	mongoInstance *MongoDB
	once          sync.Once
)

// ConnectMongoDB initializes the global MongoDB connection.
func ConnectMongoDB(uri, dbName string) (*MongoDB, error) {

	var connectErr error
	once.Do(func() {
		logger := log.GetLogger()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(uri)
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			connectErr = err
			return
		}

		// Ping to ensure the connection is live.
		if err := client.Ping(ctx, nil); err != nil {
			connectErr = err
			return
		}

		logger.Info("Connected to document store", log.String("database", dbName))
		mongoInstance = &MongoDB{
			Client:   client,
			Database: client.Database(dbName),
		}
	})

	if connectErr != nil {
		return nil, connectErr
	}
	return mongoInstance, nil
}

// GetMongoDBInstance returns the MongoDB instance.
func GetMongoDBInstance() *MongoDB {
	return mongoInstance
}

// OverrideMongoDBInstance replaces the global instance. Intended for tests.
func OverrideMongoDBInstance(instance *MongoDB) {
	mongoInstance = instance
}
