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

	model "github.com/faithmatch/match-data-service/internal/profile/model"
	"github.com/faithmatch/match-data-service/internal/system/constants"
	mongodb "github.com/faithmatch/match-data-service/internal/system/database/mongo"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

// ProfileStoreInterface defines the document store operations for profiles.
type ProfileStoreInterface interface {
	InsertProfile(profile model.Profile) error
	GetProfileByUserId(userId string) (*model.Profile, error)
	GetProfileByUsername(username string) (*model.Profile, error)
	UpdateProfileFields(userId string, fields bson.M) error
	IncrementProfileViews(userId string) error
	UpdateLastActive(userId string) error
	FindCandidates(filter bson.M, limit, offset int64) ([]model.Profile, error)
}

// ProfileStore handles document store operations for profiles.
type ProfileStore struct {
	Collection *mongo.Collection
}

// NewProfileStore creates a store bound to the given database.
func NewProfileStore(db *mongo.Database) *ProfileStore {
	return &ProfileStore{
		Collection: db.Collection(constants.ProfileCollection),
	}
}

// GetProfileStore returns a store bound to the shared database connection.
func GetProfileStore() ProfileStoreInterface {
	return NewProfileStore(mongodb.GetMongoDBInstance().Database)
}

// InsertProfile saves a new profile.
func (s *ProfileStore) InsertProfile(profile model.Profile) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.Collection.InsertOne(ctx, profile)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert profile for user: %s", profile.UserId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_PROFILE.Code,
			Message:     errors2.ADD_PROFILE.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetProfileByUserId retrieves a profile by its owner's user id.
func (s *ProfileStore) GetProfileByUserId(userId string) (*model.Profile, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var profile model.Profile
	err := s.Collection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		errorMsg := fmt.Sprintf("Failed to fetch profile for user: %s", userId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_PROFILE.Code,
			Message:     errors2.GET_PROFILE.Message,
			Description: errorMsg,
		}, err)
	}
	return &profile, nil
}

// GetProfileByUsername retrieves a profile by username.
func (s *ProfileStore) GetProfileByUsername(username string) (*model.Profile, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var profile model.Profile
	err := s.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		errorMsg := fmt.Sprintf("Failed to fetch profile for username: %s", username)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_PROFILE.Code,
			Message:     errors2.GET_PROFILE.Message,
			Description: errorMsg,
		}, err)
	}
	return &profile, nil
}

// UpdateProfileFields applies a partial update to a profile.
func (s *ProfileStore) UpdateProfileFields(userId string, fields bson.M) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := s.Collection.UpdateOne(ctx, bson.M{"user_id": userId}, bson.M{"$set": fields})
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update profile for user: %s", userId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PROFILE.Code,
			Message:     errors2.UPDATE_PROFILE.Message,
			Description: errorMsg,
		}, err)
	}
	if result.MatchedCount == 0 {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PROFILE.Code,
			Message:     errors2.UPDATE_PROFILE.Message,
			Description: fmt.Sprintf("No profile found to update for user: %s", userId),
		}, mongo.ErrNoDocuments)
	}
	return nil
}

// IncrementProfileViews bumps the view counter.
func (s *ProfileStore) IncrementProfileViews(userId string) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.Collection.UpdateOne(ctx, bson.M{"user_id": userId},
		bson.M{"$inc": bson.M{"profile_views": 1}})
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to increment profile views for user: %s", userId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PROFILE.Code,
			Message:     errors2.UPDATE_PROFILE.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// UpdateLastActive stamps the profile with the current time.
func (s *ProfileStore) UpdateLastActive(userId string) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.Collection.UpdateOne(ctx, bson.M{"user_id": userId},
		bson.M{"$set": bson.M{"last_active": time.Now()}})
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update last active for user: %s", userId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PROFILE.Code,
			Message:     errors2.UPDATE_PROFILE.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// FindCandidates runs a filter over profiles, most complete and most
// recently active first.
func (s *ProfileStore) FindCandidates(filter bson.M, limit, offset int64) ([]model.Profile, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "profile_completion", Value: -1}, {Key: "last_active", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	if offset > 0 {
		findOptions.SetSkip(offset)
	}

	cursor, err := s.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		errorMsg := "Failed to query match candidates."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FIND_CANDIDATES.Code,
			Message:     errors2.FIND_CANDIDATES.Message,
			Description: errorMsg,
		}, err)
	}
	defer cursor.Close(ctx)

	var profiles []model.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		errorMsg := "Failed to decode match candidates."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FIND_CANDIDATES.Code,
			Message:     errors2.FIND_CANDIDATES.Message,
			Description: errorMsg,
		}, err)
	}
	return profiles, nil
}
