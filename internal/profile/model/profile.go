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
	"math"
	"time"
)

// ProfilePicture is the primary photo shown in listings.
type ProfilePicture struct {
	URL string `json:"url,omitempty" bson:"url,omitempty"`
}

// Location is a coarse city/country pair. Exact coordinates are out of scope.
type Location struct {
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

// AgeRange bounds candidate ages, inclusive on both ends.
type AgeRange struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max" bson:"max"`
}

// MatchPreferences captures what a user is looking for in candidates.
type MatchPreferences struct {
	Gender          string   `json:"gender,omitempty" bson:"gender,omitempty"`
	AgeRange        AgeRange `json:"age_range" bson:"age_range"`
	Religion        string   `json:"religion,omitempty" bson:"religion,omitempty"`
	EducationLevel  string   `json:"education_level,omitempty" bson:"education_level,omitempty"`
	WantsChildren   string   `json:"wants_children,omitempty" bson:"wants_children,omitempty"`
	LocationRangeKm int      `json:"location_range_km,omitempty" bson:"location_range_km,omitempty"`
}

// Profile is a user's dating profile.
type Profile struct {
	UserId             string           `json:"user_id" bson:"user_id"`
	Username           string           `json:"username" bson:"username"`
	ProfilePicture     ProfilePicture   `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	Bio                string           `json:"bio,omitempty" bson:"bio,omitempty"`
	DateOfBirth        time.Time        `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Gender             string           `json:"gender,omitempty" bson:"gender,omitempty"`
	CountryOfOrigin    string           `json:"country_of_origin,omitempty" bson:"country_of_origin,omitempty"`
	CurrentLocation    Location         `json:"current_location,omitempty" bson:"current_location,omitempty"`
	HomeLanguage       string           `json:"home_language,omitempty" bson:"home_language,omitempty"`
	Religion           string           `json:"religion,omitempty" bson:"religion,omitempty"`
	ServingAs          string           `json:"serving_as,omitempty" bson:"serving_as,omitempty"`
	RelationshipStatus string           `json:"relationship_status,omitempty" bson:"relationship_status,omitempty"`
	LookingFor         string           `json:"looking_for,omitempty" bson:"looking_for,omitempty"`
	HaveChildren       string           `json:"have_children,omitempty" bson:"have_children,omitempty"`
	WantsChildren      *bool            `json:"wants_children,omitempty" bson:"wants_children,omitempty"`
	Education          string           `json:"education,omitempty" bson:"education,omitempty"`
	Occupation         string           `json:"occupation,omitempty" bson:"occupation,omitempty"`
	Income             string           `json:"income,omitempty" bson:"income,omitempty"`
	Height             int              `json:"height,omitempty" bson:"height,omitempty"`
	Interests          []string         `json:"interests,omitempty" bson:"interests,omitempty"`
	Photos             []string         `json:"photos,omitempty" bson:"photos,omitempty"`
	IsVerified         bool             `json:"is_verified" bson:"is_verified"`
	VerificationBadges []string         `json:"verification_badges,omitempty" bson:"verification_badges,omitempty"`
	MatchPreferences   MatchPreferences `json:"match_preferences" bson:"match_preferences"`
	Likes              []string         `json:"likes,omitempty" bson:"likes,omitempty"`
	Matches            []string         `json:"matches,omitempty" bson:"matches,omitempty"`
	LikeCount          int              `json:"like_count" bson:"like_count"`
	MatchCount         int              `json:"match_count" bson:"match_count"`
	ProfileViews       int              `json:"profile_views" bson:"profile_views"`
	ProfileCompletion  int              `json:"profile_completion" bson:"profile_completion"`
	LastActive         time.Time        `json:"last_active,omitempty" bson:"last_active,omitempty"`
	CreatedAt          time.Time        `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt          time.Time        `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// CompletionBreakdown explains how the completion score was reached.
type CompletionBreakdown struct {
	CompletedFields int  `json:"completed_fields"`
	TotalFields     int  `json:"total_fields"`
	HasPhotos       bool `json:"has_photos"`
	HasPreferences  bool `json:"has_preferences"`
	Percentage      int  `json:"completion_percentage"`
}

// Breakdown returns the completion score with its contributing parts.
func (p *Profile) Breakdown() CompletionBreakdown {

	completed, total := p.completionFieldCount()
	return CompletionBreakdown{
		CompletedFields: completed,
		TotalFields:     total,
		HasPhotos:       len(p.Photos) > 0,
		HasPreferences:  p.MatchPreferences.Gender != "" || p.MatchPreferences.AgeRange.Min > 0 || p.MatchPreferences.AgeRange.Max > 0,
		Percentage:      p.CalculateCompletion(),
	}
}

// Age returns the profile owner's age in whole years at the given time.
// Returns -1 when the date of birth is not set.
func (p *Profile) Age(now time.Time) int {

	if p.DateOfBirth.IsZero() {
		return -1
	}
	age := now.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(age, 0, 0)
	if anniversary.After(now) {
		age--
	}
	return age
}

// HasLiked reports whether the profile owner already liked the given user.
func (p *Profile) HasLiked(userId string) bool {

	for _, liked := range p.Likes {
		if liked == userId {
			return true
		}
	}
	return false
}

// completionFieldCount counts how many of the basic profile fields are filled.
func (p *Profile) completionFieldCount() (completed, total int) {

	filled := []bool{
		p.Username != "",
		p.ProfilePicture.URL != "",
		p.Bio != "",
		!p.DateOfBirth.IsZero(),
		p.Gender != "",
		p.CountryOfOrigin != "",
		p.CurrentLocation.City != "" || p.CurrentLocation.Country != "",
		p.HomeLanguage != "",
		p.Religion != "",
		p.ServingAs != "",
		p.RelationshipStatus != "",
		p.LookingFor != "",
		p.HaveChildren != "",
		p.Education != "",
		p.Occupation != "",
		p.Income != "",
		p.Height > 0,
	}
	for _, ok := range filled {
		if ok {
			completed++
		}
	}
	return completed, len(filled)
}

// CalculateCompletion scores the profile between 0 and 100. Basic fields
// contribute up to 85 points, photos 10 and match preferences 5.
func (p *Profile) CalculateCompletion() int {

	completed, total := p.completionFieldCount()
	basic := int(math.Round(float64(completed) / float64(total) * 85))

	extra := 0
	if len(p.Photos) > 0 {
		extra += 10
	}
	if p.MatchPreferences.Gender != "" || p.MatchPreferences.AgeRange.Min > 0 || p.MatchPreferences.AgeRange.Max > 0 {
		extra += 5
	}

	score := basic + extra
	if score > 100 {
		score = 100
	}
	return score
}
