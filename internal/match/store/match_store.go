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

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	model "github.com/faithmatch/match-data-service/internal/match/model"
	"github.com/faithmatch/match-data-service/internal/system/constants"
	mongodb "github.com/faithmatch/match-data-service/internal/system/database/mongo"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

// MatchStoreInterface defines the document store operations for likes and matches.
type MatchStoreInterface interface {
	AddLike(likerId, likedId string) error
	GetMatchByPair(user1, user2 string) (*model.Match, error)
	CreateMutualMatch(match model.Match) error
	GetMatchesForUser(userId string) ([]model.Match, error)
}

// MatchStore spans the match and profile collections: a mutual match
// mutates both.
type MatchStore struct {
	Matches  *mongo.Collection
	Profiles *mongo.Collection
}

// NewMatchStore creates a store bound to the given database.
func NewMatchStore(db *mongo.Database) *MatchStore {
	return &MatchStore{
		Matches:  db.Collection(constants.MatchCollection),
		Profiles: db.Collection(constants.ProfileCollection),
	}
}

// GetMatchStore returns a store bound to the shared database connection.
func GetMatchStore() MatchStoreInterface {
	return NewMatchStore(mongodb.GetMongoDBInstance().Database)
}

// AddLike records the like on the liker's profile and bumps the liked
// user's like counter in one transaction, so a failed counter update
// cannot leave the like recorded without it.
func (s *MatchStore) AddLike(likerId, likedId string) error {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := s.Profiles.Database().Client().StartSession()
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.LIKE_PROFILE.Code,
			Message:     errors2.LIKE_PROFILE.Message,
			Description: "Failed to start session for recording like.",
		}, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := s.Profiles.UpdateOne(sessCtx, bson.M{"user_id": likerId},
			bson.M{"$addToSet": bson.M{"likes": likedId}}); err != nil {
			return nil, err
		}
		if _, err := s.Profiles.UpdateOne(sessCtx, bson.M{"user_id": likedId},
			bson.M{"$inc": bson.M{"like_count": 1}}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to record like from %s", likerId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.LIKE_PROFILE.Code,
			Message:     errors2.LIKE_PROFILE.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetMatchByPair retrieves the match for an ordered user pair.
func (s *MatchStore) GetMatchByPair(user1, user2 string) (*model.Match, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user1, user2 = model.OrderPair(user1, user2)

	var match model.Match
	err := s.Matches.FindOne(ctx, bson.M{"user1": user1, "user2": user2}).Decode(&match)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		errorMsg := fmt.Sprintf("Failed to fetch match for pair %s/%s", user1, user2)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MATCHES.Code,
			Message:     errors2.GET_MATCHES.Message,
			Description: errorMsg,
		}, err)
	}
	return &match, nil
}

// CreateMutualMatch inserts the match and bumps both users' match counters
// in a single transaction.
func (s *MatchStore) CreateMutualMatch(match model.Match) error {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match.User1, match.User2 = model.OrderPair(match.User1, match.User2)

	session, err := s.Matches.Database().Client().StartSession()
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.CREATE_MATCH.Code,
			Message:     errors2.CREATE_MATCH.Message,
			Description: "Failed to start session for match creation.",
		}, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := s.Matches.InsertOne(sessCtx, match); err != nil {
			return nil, err
		}
		userFilter := bson.M{"user_id": bson.M{"$in": []string{match.User1, match.User2}}}
		update := bson.M{
			"$inc":      bson.M{"match_count": 1},
			"$addToSet": bson.M{"matches": match.MatchId},
		}
		if _, err := s.Profiles.UpdateMany(sessCtx, userFilter, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to create match for pair %s/%s", match.User1, match.User2)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.CREATE_MATCH.Code,
			Message:     errors2.CREATE_MATCH.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetMatchesForUser retrieves a user's active matches, most recent
// conversation first, then newest match first.
func (s *MatchStore) GetMatchesForUser(userId string) ([]model.Match, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"$or":    []bson.M{{"user1": userId}, {"user2": userId}},
		"status": model.MatchStatusActive,
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "last_message_at", Value: -1}, {Key: "matched_at", Value: -1}})

	cursor, err := s.Matches.Find(ctx, filter, findOptions)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch matches for user: %s", userId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MATCHES.Code,
			Message:     errors2.GET_MATCHES.Message,
			Description: errorMsg,
		}, err)
	}
	defer cursor.Close(ctx)

	var matches []model.Match
	if err := cursor.All(ctx, &matches); err != nil {
		errorMsg := fmt.Sprintf("Failed to decode matches for user: %s", userId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MATCHES.Code,
			Message:     errors2.GET_MATCHES.Message,
			Description: errorMsg,
		}, err)
	}
	return matches, nil
}
