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
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	optionModel "github.com/faithmatch/match-data-service/internal/options/model"
	"github.com/faithmatch/match-data-service/internal/options/registry"
	model "github.com/faithmatch/match-data-service/internal/profile/model"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeProfileStore struct {
	profiles         map[string]*model.Profile
	updates          map[string]bson.M
	viewsIncremented []string
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		profiles: make(map[string]*model.Profile),
		updates:  make(map[string]bson.M),
	}
}

func (f *fakeProfileStore) InsertProfile(profile model.Profile) error {
	f.profiles[profile.UserId] = &profile
	return nil
}

func (f *fakeProfileStore) GetProfileByUserId(userId string) (*model.Profile, error) {
	return f.profiles[userId], nil
}

func (f *fakeProfileStore) GetProfileByUsername(username string) (*model.Profile, error) {
	for _, p := range f.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileStore) UpdateProfileFields(userId string, fields bson.M) error {
	f.updates[userId] = fields
	return nil
}

func (f *fakeProfileStore) IncrementProfileViews(userId string) error {
	f.viewsIncremented = append(f.viewsIncremented, userId)
	return nil
}

func (f *fakeProfileStore) UpdateLastActive(userId string) error { return nil }

func (f *fakeProfileStore) FindCandidates(filter bson.M, limit, offset int64) ([]model.Profile, error) {
	return nil, nil
}

func testCatalog() ([]optionModel.Option, error) {
	catalog := []struct{ category, value string }{
		{"gender", "male"},
		{"gender", "female"},
		{"religion", "christian"},
		{"religion", "catholic"},
		{"relationshipStatus", "single"},
		{"lookingFor", "not-sure"},
		{"lookingFor", "marriage"},
		{"haveChildren", "no"},
		{"haveChildren", "yes"},
		{"education", "bachelors"},
		{"matchGender", "both"},
		{"matchGender", "female"},
		{"matchReligion", "same"},
		{"matchReligion", "any"},
		{"matchEducationLevel", "bachelors"},
		{"matchWantsChildren", "yes"},
	}
	options := make([]optionModel.Option, 0, len(catalog))
	for i, entry := range catalog {
		options = append(options, optionModel.Option{
			OptionId: string(rune('a' + i)), Category: entry.category,
			Value: entry.value, Label: entry.value, IsActive: true,
		})
	}
	return options, nil
}

func newTestProfileService(store *fakeProfileStore) *ProfileService {
	return NewProfileService(store, registry.NewOptionRegistry(testCatalog, time.Minute))
}

func validProfile(username string) model.Profile {
	return model.Profile{
		Username:    username,
		Gender:      "female",
		Religion:    "christian",
		DateOfBirth: time.Now().AddDate(-28, 0, 0),
	}
}

func assertClientError(t *testing.T, err error, code string, status int) {
	t.Helper()
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, code, clientErr.Code)
	assert.Equal(t, status, clientErr.StatusCode)
}

// ---------------------------------------------------------------------------
// CreateProfile
// ---------------------------------------------------------------------------

func TestCreateProfile_SeedsDefaultsAndCompletion(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	created, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	assert.Equal(t, "user-1", created.UserId)
	assert.Equal(t, "single", created.RelationshipStatus)
	assert.Equal(t, "not-sure", created.LookingFor)
	assert.Equal(t, "no", created.HaveChildren)
	assert.Equal(t, "both", created.MatchPreferences.Gender)
	assert.Equal(t, 21, created.MatchPreferences.AgeRange.Min)
	assert.Equal(t, 50, created.MatchPreferences.AgeRange.Max)
	assert.Equal(t, 100, created.MatchPreferences.LocationRangeKm)
	assert.Greater(t, created.ProfileCompletion, 0)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NotNil(t, store.profiles["user-1"])
}

func TestCreateProfile_MissingUsername(t *testing.T) {
	svc := newTestProfileService(newFakeProfileStore())

	_, err := svc.CreateProfile("user-1", model.Profile{})
	assertClientError(t, err, errors2.PROFILE_VALIDATION.Code, http.StatusBadRequest)
}

func TestCreateProfile_DuplicateUser(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	_, err = svc.CreateProfile("user-1", validProfile("naomi"))
	assertClientError(t, err, errors2.PROFILE_ALREADY_EXISTS.Code, http.StatusConflict)
}

func TestCreateProfile_UsernameTaken(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	_, err = svc.CreateProfile("user-2", validProfile("ruth"))
	assertClientError(t, err, errors2.USERNAME_TAKEN.Code, http.StatusConflict)
}

func TestCreateProfile_UnknownEnumValueRejected(t *testing.T) {
	svc := newTestProfileService(newFakeProfileStore())

	profile := validProfile("ruth")
	profile.Religion = "unheard-of"

	_, err := svc.CreateProfile("user-1", profile)
	assertClientError(t, err, errors2.PROFILE_VALIDATION.Code, http.StatusBadRequest)
}

func TestCreateProfile_UnderageRejected(t *testing.T) {
	svc := newTestProfileService(newFakeProfileStore())

	profile := validProfile("ruth")
	profile.DateOfBirth = time.Now().AddDate(-17, 0, 0)

	_, err := svc.CreateProfile("user-1", profile)
	assertClientError(t, err, errors2.PROFILE_VALIDATION.Code, http.StatusBadRequest)
}

func TestCreateProfile_InvertedAgeRangeRejected(t *testing.T) {
	svc := newTestProfileService(newFakeProfileStore())

	profile := validProfile("ruth")
	profile.MatchPreferences.AgeRange = model.AgeRange{Min: 40, Max: 25}

	_, err := svc.CreateProfile("user-1", profile)
	assertClientError(t, err, errors2.PROFILE_VALIDATION.Code, http.StatusBadRequest)
}

func TestCreateProfile_UsernameIsNormalized(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	created, err := svc.CreateProfile("user-1", validProfile("  RuTh "))
	require.NoError(t, err)
	assert.Equal(t, "ruth", created.Username)

	_, err = svc.CreateProfile("user-2", validProfile("RUTH"))
	assertClientError(t, err, errors2.USERNAME_TAKEN.Code, http.StatusConflict)
}

func TestCreateProfile_LocationRangeBounds(t *testing.T) {
	svc := newTestProfileService(newFakeProfileStore())

	profile := validProfile("ruth")
	profile.MatchPreferences.LocationRangeKm = 20000

	_, err := svc.CreateProfile("user-1", profile)
	assertClientError(t, err, errors2.PROFILE_VALIDATION.Code, http.StatusBadRequest)
}

func TestCreateProfile_CatalogDefaultWinsOverFallback(t *testing.T) {
	catalog := func() ([]optionModel.Option, error) {
		options, _ := testCatalog()
		return append(options, optionModel.Option{
			OptionId: "z", Category: "lookingFor", Value: "marriage",
			Label: "Marriage", IsActive: true, IsDefault: true,
		}), nil
	}
	store := newFakeProfileStore()
	svc := NewProfileService(store, registry.NewOptionRegistry(catalog, time.Minute))

	created, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)
	assert.Equal(t, "marriage", created.LookingFor)
}

// ---------------------------------------------------------------------------
// GetProfile
// ---------------------------------------------------------------------------

func TestGetProfile_NotFound(t *testing.T) {
	svc := newTestProfileService(newFakeProfileStore())

	_, err := svc.GetProfile("ghost", "")
	assertClientError(t, err, errors2.PROFILE_NOT_FOUND.Code, http.StatusNotFound)
}

func TestGetProfile_ViewByOtherUserCountsAsView(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	response, err := svc.GetProfile("user-1", "user-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, store.viewsIncremented)
	assert.Equal(t, 1, response.ProfileViews)
}

func TestGetProfile_OwnViewDoesNotCount(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	_, err = svc.GetProfile("user-1", "user-1")
	require.NoError(t, err)
	assert.Empty(t, store.viewsIncremented)
}

func TestGetProfile_ResolvesFieldLabels(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	response, err := svc.GetProfile("user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "christian", response.FieldLabels["religion"])
	assert.Equal(t, "female", response.FieldLabels["gender"])
}

func TestGetProfile_ResolvesVerificationBadges(t *testing.T) {
	catalog := func() ([]optionModel.Option, error) {
		options, _ := testCatalog()
		return append(options, optionModel.Option{
			OptionId: "badge-1", Category: "verificationBadge", Value: "photo-verified",
			Label: "Photo Verified", Description: "Photos reviewed by the team", IsActive: true,
		}), nil
	}
	store := newFakeProfileStore()
	svc := NewProfileService(store, registry.NewOptionRegistry(catalog, time.Minute))

	profile := validProfile("ruth")
	profile.VerificationBadges = []string{"photo-verified", "legacy-badge"}
	_, err := svc.CreateProfile("user-1", profile)
	require.NoError(t, err)

	response, err := svc.GetProfile("user-1", "")
	require.NoError(t, err)
	require.Len(t, response.Badges, 2)
	assert.Equal(t, "Photo Verified", response.Badges[0].Label)
	assert.Equal(t, "Photos reviewed by the team", response.Badges[0].Description)
	assert.Equal(t, "legacy-badge", response.Badges[1].Label, "unknown badges fall back to the raw value")
}

// ---------------------------------------------------------------------------
// UpdateProfile
// ---------------------------------------------------------------------------

func TestUpdateProfile_NotFound(t *testing.T) {
	svc := newTestProfileService(newFakeProfileStore())

	_, err := svc.UpdateProfile("ghost", map[string]interface{}{"bio": "hi"})
	assertClientError(t, err, errors2.PROFILE_NOT_FOUND.Code, http.StatusNotFound)
}

func TestUpdateProfile_UnknownFieldsAreDropped(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	updated, err := svc.UpdateProfile("user-1", map[string]interface{}{
		"bio":        "New bio",
		"like_count": 9999,
	})
	require.NoError(t, err)
	assert.Equal(t, "New bio", updated.Bio)
	assert.Equal(t, 0, updated.LikeCount, "counters are not client writable")

	fields := store.updates["user-1"]
	_, present := fields["like_count"]
	assert.False(t, present)
}

func TestUpdateProfile_OnlyUnknownFieldsRejected(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile("user-1", map[string]interface{}{"like_count": 5})
	assertClientError(t, err, errors2.PROFILE_VALIDATION.Code, http.StatusBadRequest)
}

func TestUpdateProfile_RecomputesCompletion(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	created, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	updated, err := svc.UpdateProfile("user-1", map[string]interface{}{
		"bio":        "New bio",
		"occupation": "teacher",
	})
	require.NoError(t, err)
	assert.Greater(t, updated.ProfileCompletion, created.ProfileCompletion)

	fields := store.updates["user-1"]
	assert.Equal(t, updated.ProfileCompletion, fields["profile_completion"])
	assert.Contains(t, fields, "last_active")
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)
	_, err = svc.CreateProfile("user-2", validProfile("naomi"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile("user-2", map[string]interface{}{"username": "ruth"})
	assertClientError(t, err, errors2.USERNAME_TAKEN.Code, http.StatusConflict)
}

func TestUpdateProfile_InvalidEnumValueRejected(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile("user-1", map[string]interface{}{"looking_for": "adventure"})
	assertClientError(t, err, errors2.PROFILE_VALIDATION.Code, http.StatusBadRequest)
}

func TestUpdateProfile_NestedPreferencesValidated(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	updated, err := svc.UpdateProfile("user-1", map[string]interface{}{
		"match_preferences": map[string]interface{}{
			"gender":    "female",
			"age_range": map[string]interface{}{"min": 25, "max": 35},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "female", updated.MatchPreferences.Gender)
	assert.Equal(t, 25, updated.MatchPreferences.AgeRange.Min)
}

// ---------------------------------------------------------------------------
// GetProfileCompletion
// ---------------------------------------------------------------------------

func TestGetProfileCompletion(t *testing.T) {
	store := newFakeProfileStore()
	svc := newTestProfileService(store)

	_, err := svc.CreateProfile("user-1", validProfile("ruth"))
	require.NoError(t, err)

	breakdown, err := svc.GetProfileCompletion("user-1")
	require.NoError(t, err)
	assert.Equal(t, 17, breakdown.TotalFields)
	assert.Greater(t, breakdown.CompletedFields, 0)
	assert.True(t, breakdown.HasPreferences, "defaults seed match preferences")
}

func TestGetProfileCompletion_NotFound(t *testing.T) {
	svc := newTestProfileService(newFakeProfileStore())

	_, err := svc.GetProfileCompletion("ghost")
	assertClientError(t, err, errors2.PROFILE_NOT_FOUND.Code, http.StatusNotFound)
}
