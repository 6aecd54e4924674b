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
	"time"

	model "github.com/faithmatch/match-data-service/internal/match/model"
	profileModel "github.com/faithmatch/match-data-service/internal/profile/model"
	"github.com/faithmatch/match-data-service/internal/system/constants"
)

// Compatibility weights. They sum to 100 so the score is a percentage.
const (
	ageWeight       = 25
	genderWeight    = 20
	religionWeight  = 25
	childrenWeight  = 15
	educationWeight = 15
)

// educationRank orders education levels so a preference acts as a floor.
// Unranked values never satisfy an education preference.
var educationRank = map[string]int{
	"high-school": 1,
	"certificate": 2,
	"diploma":     3,
	"bachelors":   4,
	"masters":     5,
	"phd":         6,
}

// religionForPreference maps faith-specific preference values to the
// religion a candidate must hold.
var religionForPreference = map[string]string{
	"christian-only": "christianity",
	"muslim-only":    "islam",
}

// EvaluateCompatibility scores how well the candidate fits the seeker's
// preferences, between 0 and 100, and records which criteria were met.
// An unset preference counts as met and grants its weight.
func EvaluateCompatibility(seeker, candidate *profileModel.Profile) (int, model.PreferencesMet) {

	prefs := seeker.MatchPreferences
	met := model.PreferencesMet{
		Age:       agePreferenceMet(prefs, candidate),
		Gender:    genderPreferenceMet(prefs, candidate),
		Religion:  religionPreferenceMet(seeker, candidate),
		Children:  childrenPreferenceMet(prefs, candidate),
		Education: educationPreferenceMet(seeker, candidate),
	}

	score := 0
	if met.Age {
		score += ageWeight
	}
	if met.Gender {
		score += genderWeight
	}
	if met.Religion {
		score += religionWeight
	}
	if met.Children {
		score += childrenWeight
	}
	if met.Education {
		score += educationWeight
	}
	return score, met
}

// CalculateCompatibility returns just the score.
func CalculateCompatibility(seeker, candidate *profileModel.Profile) int {

	score, _ := EvaluateCompatibility(seeker, candidate)
	return score
}

func agePreferenceMet(prefs profileModel.MatchPreferences, candidate *profileModel.Profile) bool {

	if prefs.AgeRange.Min == 0 && prefs.AgeRange.Max == 0 {
		return true
	}
	age := candidate.Age(time.Now())
	return age >= prefs.AgeRange.Min && age <= prefs.AgeRange.Max
}

func genderPreferenceMet(prefs profileModel.MatchPreferences, candidate *profileModel.Profile) bool {

	switch prefs.Gender {
	case "", constants.MatchGenderBoth:
		return true
	default:
		return candidate.Gender == prefs.Gender
	}
}

func religionPreferenceMet(seeker, candidate *profileModel.Profile) bool {

	switch pref := seeker.MatchPreferences.Religion; pref {
	case "", constants.MatchReligionAny, "similar", "not-important":
		return true
	case constants.MatchReligionSame:
		return seeker.Religion != "" && candidate.Religion == seeker.Religion
	default:
		if required, ok := religionForPreference[pref]; ok {
			return candidate.Religion == required
		}
		return candidate.Religion == pref
	}
}

func childrenPreferenceMet(prefs profileModel.MatchPreferences, candidate *profileModel.Profile) bool {

	switch prefs.WantsChildren {
	case "", constants.WantsChildrenEither, constants.WantsChildrenNotSpecified:
		return true
	case constants.WantsChildrenYes:
		return candidate.WantsChildren != nil && *candidate.WantsChildren
	case constants.WantsChildrenNo:
		return candidate.WantsChildren != nil && !*candidate.WantsChildren
	default:
		return true
	}
}

func educationPreferenceMet(seeker, candidate *profileModel.Profile) bool {

	candidateRank, candidateRanked := educationRank[candidate.Education]

	switch pref := seeker.MatchPreferences.EducationLevel; pref {
	case "", "any", "not-important":
		return true
	case "same-or-higher":
		floor, seekerRanked := educationRank[seeker.Education]
		if !seekerRanked {
			return true
		}
		return candidateRanked && candidateRank >= floor
	case "bachelors-plus":
		return candidateRanked && candidateRank >= educationRank["bachelors"]
	default:
		floor, ok := educationRank[pref]
		return ok && candidateRanked && candidateRank >= floor
	}
}
