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

package model

import (
	"time"

	profileModel "github.com/faithmatch/match-data-service/internal/profile/model"
)

// Match statuses.
const (
	MatchStatusPending = "pending"
	MatchStatusActive  = "active"
	MatchStatusPaused  = "paused"
	MatchStatusBlocked = "blocked"
	MatchStatusEnded   = "ended"
)

// How a match came to be.
const (
	MatchedByMutualLike = "mutual-like"
)

// PreferencesMet records which of a user's criteria the counterpart
// satisfied at matching time.
type PreferencesMet struct {
	Age       bool `json:"age" bson:"age"`
	Gender    bool `json:"gender" bson:"gender"`
	Religion  bool `json:"religion" bson:"religion"`
	Children  bool `json:"children" bson:"children"`
	Education bool `json:"education" bson:"education"`
}

// All reports whether every criterion was satisfied.
func (p PreferencesMet) All() bool {
	return p.Age && p.Gender && p.Religion && p.Children && p.Education
}

// Match records a mutual-like pairing of two users. User1 and User2 are
// stored in lexical order so a pair maps to exactly one document.
type Match struct {
	MatchId            string         `json:"match_id" bson:"match_id"`
	User1              string         `json:"user1" bson:"user1"`
	User2              string         `json:"user2" bson:"user2"`
	MatchedAt          time.Time      `json:"matched_at" bson:"matched_at"`
	MatchedBy          string         `json:"matched_by" bson:"matched_by"`
	CompatibilityScore int            `json:"compatibility_score" bson:"compatibility_score"`
	PreferencesMet     PreferencesMet `json:"preferences_met" bson:"preferences_met"`
	Status             string         `json:"status" bson:"status"`
	MessageCount       int            `json:"message_count" bson:"message_count"`
	LastMessageAt      time.Time      `json:"last_message_at,omitempty" bson:"last_message_at,omitempty"`
}

// OtherUser returns the counterpart of the given user in the pair.
func (m *Match) OtherUser(userId string) string {

	if m.User1 == userId {
		return m.User2
	}
	return m.User1
}

// OrderPair returns the two user ids in lexical order.
func OrderPair(a, b string) (string, string) {

	if a <= b {
		return a, b
	}
	return b, a
}

// Candidate is a scored potential match. MatchesPreferences aggregates
// the per-criterion booleans.
type Candidate struct {
	Profile            profileModel.Profile `json:"profile"`
	CompatibilityScore int                  `json:"compatibility_score"`
	PreferencesMet     PreferencesMet       `json:"preferences_met"`
	MatchesPreferences bool                 `json:"matches_preferences"`
	Distance           string               `json:"distance"`
}

// LikeResult reports the outcome of a like.
type LikeResult struct {
	Matched bool   `json:"matched"`
	MatchId string `json:"match_id,omitempty"`
}

// MatchDetail is a match joined with the counterpart's profile.
type MatchDetail struct {
	MatchId            string                `json:"match_id"`
	MatchedAt          time.Time             `json:"matched_at"`
	CompatibilityScore int                   `json:"compatibility_score"`
	Profile            *profileModel.Profile `json:"profile,omitempty"`
}
