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

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faithmatch/match-data-service/internal/system/locks"
)

func setupMongoLock(t *testing.T) locks.DistributedLock {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(
		fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	return locks.NewMongoLock(client.Database("faithmatch_test"))
}

func TestMongoLock_MutualExclusionAndExpiredTakeover(t *testing.T) {
	lock := setupMongoLock(t)

	acquired, err := lock.Acquire("alice:bob", 100*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = lock.Acquire("alice:bob", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "a held key cannot be acquired twice")

	// An unrelated key is unaffected.
	acquired, err = lock.Acquire("carl:dana", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	// Once the holder's TTL lapses the key can be taken over, so a crash
	// between Acquire and Release does not wedge the pair forever.
	time.Sleep(150 * time.Millisecond)
	acquired, err = lock.Acquire("alice:bob", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "an expired lock must be reclaimable")

	require.NoError(t, lock.Release("alice:bob"))
	acquired, err = lock.Acquire("alice:bob", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "a released key is immediately available")
}
