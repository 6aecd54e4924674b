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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fullProfile() Profile {
	return Profile{
		Username:           "ruth",
		ProfilePicture:     ProfilePicture{URL: "https://cdn.example/ruth.jpg"},
		Bio:                "Hello",
		DateOfBirth:        time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:             "female",
		CountryOfOrigin:    "ZA",
		CurrentLocation:    Location{City: "Cape Town"},
		HomeLanguage:       "english",
		Religion:           "christian",
		ServingAs:          "volunteer",
		RelationshipStatus: "single",
		LookingFor:         "marriage",
		HaveChildren:       "no",
		Education:          "bachelors",
		Occupation:         "teacher",
		Income:             "average",
		Height:             165,
	}
}

func TestCalculateCompletion_EmptyProfile(t *testing.T) {
	p := Profile{}
	assert.Equal(t, 0, p.CalculateCompletion())
}

func TestCalculateCompletion_PartialProfile(t *testing.T) {
	p := Profile{Username: "ruth", Gender: "female"}

	// 2 of 17 basic fields: round(2/17*85) = 10.
	assert.Equal(t, 10, p.CalculateCompletion())
}

func TestCalculateCompletion_AllBasicFields(t *testing.T) {
	p := fullProfile()
	assert.Equal(t, 85, p.CalculateCompletion())
}

func TestCalculateCompletion_PhotosAddTenPoints(t *testing.T) {
	p := Profile{Username: "ruth", Photos: []string{"a.jpg"}}

	// round(1/17*85) = 5, plus 10 for photos.
	assert.Equal(t, 15, p.CalculateCompletion())
}

func TestCalculateCompletion_PreferencesAddFivePoints(t *testing.T) {
	p := Profile{Username: "ruth", MatchPreferences: MatchPreferences{Gender: "male"}}
	assert.Equal(t, 10, p.CalculateCompletion())

	p = Profile{Username: "ruth", MatchPreferences: MatchPreferences{AgeRange: AgeRange{Min: 25, Max: 35}}}
	assert.Equal(t, 10, p.CalculateCompletion())
}

func TestCalculateCompletion_CappedAtHundred(t *testing.T) {
	p := fullProfile()
	p.Photos = []string{"a.jpg"}
	p.MatchPreferences = MatchPreferences{Gender: "male", AgeRange: AgeRange{Min: 25, Max: 35}}

	assert.Equal(t, 100, p.CalculateCompletion())
}

func TestBreakdown(t *testing.T) {
	p := fullProfile()
	p.Photos = []string{"a.jpg"}

	breakdown := p.Breakdown()
	assert.Equal(t, 17, breakdown.TotalFields)
	assert.Equal(t, 17, breakdown.CompletedFields)
	assert.True(t, breakdown.HasPhotos)
	assert.False(t, breakdown.HasPreferences)
	assert.Equal(t, 95, breakdown.Percentage)
}

func TestAge_UnsetDateOfBirth(t *testing.T) {
	p := Profile{}
	assert.Equal(t, -1, p.Age(time.Now()))
}

func TestAge_BeforeAndAfterAnniversary(t *testing.T) {
	p := Profile{DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)}

	dayBefore := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 34, p.Age(dayBefore))

	onTheDay := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 35, p.Age(onTheDay))
}

func TestHasLiked(t *testing.T) {
	p := Profile{Likes: []string{"a", "b"}}

	assert.True(t, p.HasLiked("a"))
	assert.False(t, p.HasLiked("c"))

	empty := Profile{}
	assert.False(t, empty.HasLiked("a"))
}
