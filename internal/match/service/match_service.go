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

package service

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	model "github.com/faithmatch/match-data-service/internal/match/model"
	"github.com/faithmatch/match-data-service/internal/match/store"
	profileModel "github.com/faithmatch/match-data-service/internal/profile/model"
	profileStore "github.com/faithmatch/match-data-service/internal/profile/store"
	"github.com/faithmatch/match-data-service/internal/system/constants"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/locks"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

const pairLockTTL = 5 * time.Second

// MatchServiceInterface defines the service interface for matching.
type MatchServiceInterface interface {
	FindMatches(userId string, limit, offset int64) ([]model.Candidate, error)
	LikeUser(likerId, likedId string) (*model.LikeResult, error)
	GetMatches(userId string) ([]model.MatchDetail, error)
}

// MatchService is the default implementation.
type MatchService struct {
	matches  store.MatchStoreInterface
	profiles profileStore.ProfileStoreInterface
	lock     locks.DistributedLock
}

// GetMatchService returns a service bound to the shared stores and lock.
func GetMatchService() MatchServiceInterface {
	return &MatchService{
		matches:  store.GetMatchStore(),
		profiles: profileStore.GetProfileStore(),
		lock:     locks.GetDistributedLock(),
	}
}

// NewMatchService creates a service with explicit dependencies.
func NewMatchService(matches store.MatchStoreInterface, profiles profileStore.ProfileStoreInterface,
	lock locks.DistributedLock) *MatchService {
	return &MatchService{
		matches:  matches,
		profiles: profiles,
		lock:     lock,
	}
}

// FindMatches returns scored candidates that pass the seeker's hard
// filters, best score first.
func (ms *MatchService) FindMatches(userId string, limit, offset int64) ([]model.Candidate, error) {

	seeker, err := ms.profiles.GetProfileByUserId(userId)
	if err != nil {
		return nil, err
	}
	if seeker == nil {
		return nil, profileNotFoundError()
	}

	candidates, err := ms.profiles.FindCandidates(candidateFilter(seeker), limit, offset)
	if err != nil {
		return nil, err
	}

	results := make([]model.Candidate, 0, len(candidates))
	for i := range candidates {
		candidate := candidates[i]
		score, met := EvaluateCompatibility(seeker, &candidate)
		results = append(results, model.Candidate{
			Profile:            candidate,
			CompatibilityScore: score,
			PreferencesMet:     met,
			MatchesPreferences: met.All(),
			Distance:           distanceLabel(seeker, &candidate),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompatibilityScore > results[j].CompatibilityScore
	})
	return results, nil
}

// LikeUser records a like and creates a match when it is reciprocal. The
// pair lock keeps two concurrent reciprocal likes from racing.
func (ms *MatchService) LikeUser(likerId, likedId string) (*model.LikeResult, error) {

	if likerId == likedId {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Users cannot like themselves.",
		}, http.StatusBadRequest)
	}

	liker, err := ms.profiles.GetProfileByUserId(likerId)
	if err != nil {
		return nil, err
	}
	if liker == nil {
		return nil, profileNotFoundError()
	}
	liked, err := ms.profiles.GetProfileByUserId(likedId)
	if err != nil {
		return nil, err
	}
	if liked == nil {
		return nil, profileNotFoundError()
	}

	// Fast path: reject duplicates without taking the lock.
	if liker.HasLiked(likedId) {
		return nil, alreadyLikedError()
	}

	lockKey := pairLockKey(likerId, likedId)
	acquired, err := ms.acquirePairLock(lockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PAIR_LOCK_BUSY.Code,
			Message:     errors2.PAIR_LOCK_BUSY.Message,
			Description: "Try again shortly.",
		}, http.StatusConflict)
	}
	defer func() {
		if err := ms.lock.Release(lockKey); err != nil {
			log.GetLogger().Warn("Failed to release pair lock", log.String("key", lockKey), log.Error(err))
		}
	}()

	// Re-read the liker under the lock and repeat the duplicate check: a
	// concurrent like for the same pair may have been recorded between
	// the first read and lock acquisition.
	liker, err = ms.profiles.GetProfileByUserId(likerId)
	if err != nil {
		return nil, err
	}
	if liker == nil {
		return nil, profileNotFoundError()
	}
	if liker.HasLiked(likedId) {
		return nil, alreadyLikedError()
	}

	if err := ms.matches.AddLike(likerId, likedId); err != nil {
		return nil, err
	}

	// Re-read under the lock: the reciprocal like may have landed while
	// this request was queued.
	liked, err = ms.profiles.GetProfileByUserId(likedId)
	if err != nil {
		return nil, err
	}
	if liked == nil || !liked.HasLiked(likerId) {
		return &model.LikeResult{Matched: false}, nil
	}

	existing, err := ms.matches.GetMatchByPair(likerId, likedId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &model.LikeResult{Matched: true, MatchId: existing.MatchId}, nil
	}

	score, met := EvaluateCompatibility(liker, liked)
	match := model.Match{
		MatchId:            uuid.New().String(),
		User1:              likerId,
		User2:              likedId,
		MatchedAt:          time.Now(),
		MatchedBy:          model.MatchedByMutualLike,
		CompatibilityScore: score,
		PreferencesMet:     met,
		Status:             model.MatchStatusActive,
	}
	if err := ms.matches.CreateMutualMatch(match); err != nil {
		return nil, err
	}

	log.GetLogger().Info("Mutual match created",
		log.String("user1", match.User1), log.String("user2", match.User2))
	return &model.LikeResult{Matched: true, MatchId: match.MatchId}, nil
}

// GetMatches returns a user's matches joined with counterpart profiles.
func (ms *MatchService) GetMatches(userId string) ([]model.MatchDetail, error) {

	matches, err := ms.matches.GetMatchesForUser(userId)
	if err != nil {
		return nil, err
	}

	details := make([]model.MatchDetail, 0, len(matches))
	for i := range matches {
		match := matches[i]
		counterpart, err := ms.profiles.GetProfileByUserId(match.OtherUser(userId))
		if err != nil {
			return nil, err
		}
		details = append(details, model.MatchDetail{
			MatchId:            match.MatchId,
			MatchedAt:          match.MatchedAt,
			CompatibilityScore: match.CompatibilityScore,
			Profile:            counterpart,
		})
	}
	return details, nil
}

// candidateFilter builds the hard filter query from the seeker's preferences.
func candidateFilter(seeker *profileModel.Profile) bson.M {

	prefs := seeker.MatchPreferences
	filter := bson.M{
		"user_id": bson.M{"$ne": seeker.UserId},
	}

	if prefs.Gender == constants.MatchGenderBoth || prefs.Gender == "" {
		filter["gender"] = bson.M{"$in": []string{constants.GenderMale, constants.GenderFemale}}
	} else {
		filter["gender"] = prefs.Gender
	}

	if prefs.AgeRange.Min > 0 && prefs.AgeRange.Max > 0 {
		now := time.Now()
		// A candidate aged in [min, max] was born in this window.
		earliest := now.AddDate(-(prefs.AgeRange.Max + 1), 0, 0)
		latest := now.AddDate(-prefs.AgeRange.Min, 0, 0)
		filter["date_of_birth"] = bson.M{"$gt": earliest, "$lte": latest}
	}

	if prefs.Religion == constants.MatchReligionSame && seeker.Religion != "" {
		filter["religion"] = seeker.Religion
	}

	switch prefs.WantsChildren {
	case constants.WantsChildrenYes:
		filter["wants_children"] = true
	case constants.WantsChildrenNo:
		filter["wants_children"] = false
	}

	return filter
}

func (ms *MatchService) acquirePairLock(lockKey string) (bool, error) {

	for i := 0; i < constants.MaxLockRetryAttempts; i++ {
		acquired, err := ms.lock.Acquire(lockKey, pairLockTTL)
		if err != nil {
			return false, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.ACQUIRE_PAIR_LOCK.Code,
				Message:     errors2.ACQUIRE_PAIR_LOCK.Message,
				Description: fmt.Sprintf("Failed to acquire lock: %s", lockKey),
			}, err)
		}
		if acquired {
			return true, nil
		}
		time.Sleep(constants.LockRetryIntervalMs * time.Millisecond)
	}
	return false, nil
}

// pairLockKey is order independent so both like directions contend on one key.
func pairLockKey(a, b string) string {

	first, second := model.OrderPair(a, b)
	return "lock:pair:" + first + ":" + second
}

func distanceLabel(seeker, candidate *profileModel.Profile) string {

	if seeker.CurrentLocation.City != "" && candidate.CurrentLocation.City != "" {
		return "Within range"
	}
	return "Unknown"
}

func profileNotFoundError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.PROFILE_NOT_FOUND.Code,
		Message:     errors2.PROFILE_NOT_FOUND.Message,
		Description: "Profile not found.",
	}, http.StatusNotFound)
}

func alreadyLikedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ALREADY_LIKED.Code,
		Message:     errors2.ALREADY_LIKED.Message,
		Description: "This profile has already been liked.",
	}, http.StatusConflict)
}
