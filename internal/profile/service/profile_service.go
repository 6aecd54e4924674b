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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/faithmatch/match-data-service/internal/options/registry"
	model "github.com/faithmatch/match-data-service/internal/profile/model"
	"github.com/faithmatch/match-data-service/internal/profile/store"
	"github.com/faithmatch/match-data-service/internal/system/constants"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

const minimumAge = 18

// ProfileResponse is a profile with its enumerated values resolved to labels.
type ProfileResponse struct {
	model.Profile
	FieldLabels map[string]string `json:"field_labels,omitempty"`
	Badges      []BadgeDetail     `json:"verification_badge_details,omitempty"`
}

// BadgeDetail is a verification badge resolved against the option catalog.
type BadgeDetail struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// ProfileServiceInterface defines the service interface for profiles.
type ProfileServiceInterface interface {
	CreateProfile(userId string, profile model.Profile) (*model.Profile, error)
	GetProfile(userId, viewerId string) (*ProfileResponse, error)
	UpdateProfile(userId string, updates map[string]interface{}) (*model.Profile, error)
	GetProfileCompletion(userId string) (*model.CompletionBreakdown, error)
}

// ProfileService is the default implementation.
type ProfileService struct {
	store    store.ProfileStoreInterface
	registry *registry.OptionRegistry
}

// GetProfileService returns a service bound to the shared store and registry.
func GetProfileService() ProfileServiceInterface {
	return &ProfileService{
		store:    store.GetProfileStore(),
		registry: registry.GetOptionRegistry(),
	}
}

// NewProfileService creates a service with explicit dependencies.
func NewProfileService(s store.ProfileStoreInterface, r *registry.OptionRegistry) *ProfileService {
	return &ProfileService{
		store:    s,
		registry: r,
	}
}

// CreateProfile creates the profile for a user, seeding catalog defaults.
func (ps *ProfileService) CreateProfile(userId string, profile model.Profile) (*model.Profile, error) {

	profile.Username = normalizeUsername(profile.Username)
	if userId == "" || profile.Username == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PROFILE_VALIDATION.Code,
			Message:     errors2.PROFILE_VALIDATION.Message,
			Description: "user id and username are required.",
		}, http.StatusBadRequest)
	}

	existing, err := ps.store.GetProfileByUserId(userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PROFILE_ALREADY_EXISTS.Code,
			Message:     errors2.PROFILE_ALREADY_EXISTS.Message,
			Description: "A profile already exists for this user.",
		}, http.StatusConflict)
	}

	taken, err := ps.store.GetProfileByUsername(profile.Username)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.USERNAME_TAKEN.Code,
			Message:     errors2.USERNAME_TAKEN.Message,
			Description: "Username already taken.",
		}, http.StatusConflict)
	}

	profile.UserId = userId
	ps.applyDefaults(&profile)

	if err := ps.validateProfile(&profile); err != nil {
		return nil, err
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.LastActive = now
	profile.ProfileCompletion = profile.CalculateCompletion()

	if err := ps.store.InsertProfile(profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile retrieves a profile with resolved labels. A view by anyone but
// the owner bumps the view counter.
func (ps *ProfileService) GetProfile(userId, viewerId string) (*ProfileResponse, error) {

	profile, err := ps.store.GetProfileByUserId(userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profileNotFoundError()
	}

	if viewerId != "" && viewerId != userId {
		if err := ps.store.IncrementProfileViews(userId); err != nil {
			// A lost view count must not fail the read.
			log.GetLogger().Debug("Failed to increment profile views", log.Error(err))
		} else {
			profile.ProfileViews++
		}
	}

	return &ProfileResponse{
		Profile:     *profile,
		FieldLabels: ps.resolveLabels(profile),
		Badges:      ps.resolveBadges(profile),
	}, nil
}

// UpdateProfile applies a whitelisted partial update and recomputes the
// completion score.
func (ps *ProfileService) UpdateProfile(userId string, updates map[string]interface{}) (*model.Profile, error) {

	existing, err := ps.store.GetProfileByUserId(userId)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, profileNotFoundError()
	}

	filtered := make(map[string]interface{})
	for field, value := range updates {
		if constants.AllowedFieldsForProfileUpdate[field] {
			filtered[field] = value
		}
	}
	if len(filtered) == 0 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PROFILE_VALIDATION.Code,
			Message:     errors2.PROFILE_VALIDATION.Message,
			Description: "No updatable fields in request.",
		}, http.StatusBadRequest)
	}

	if raw, present := filtered["username"]; present {
		username, _ := raw.(string)
		filtered["username"] = normalizeUsername(username)
	}
	if filtered["username"] != nil && filtered["username"] != existing.Username {
		username, _ := filtered["username"].(string)
		taken, err := ps.store.GetProfileByUsername(username)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.UserId != userId {
			return nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.USERNAME_TAKEN.Code,
				Message:     errors2.USERNAME_TAKEN.Message,
				Description: "Username already taken.",
			}, http.StatusConflict)
		}
	}

	merged := *existing
	if err := applyUpdates(&merged, filtered); err != nil {
		return nil, err
	}
	if err := ps.validateProfile(&merged); err != nil {
		return nil, err
	}

	merged.ProfileCompletion = merged.CalculateCompletion()

	fields := bson.M(filtered)
	fields["profile_completion"] = merged.ProfileCompletion
	fields["last_active"] = time.Now()

	if err := ps.store.UpdateProfileFields(userId, fields); err != nil {
		return nil, err
	}
	return &merged, nil
}

// GetProfileCompletion returns the completion breakdown for a profile.
func (ps *ProfileService) GetProfileCompletion(userId string) (*model.CompletionBreakdown, error) {

	profile, err := ps.store.GetProfileByUserId(userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profileNotFoundError()
	}

	breakdown := profile.Breakdown()
	return &breakdown, nil
}

// applyDefaults seeds unset enumerated fields and preference bounds. The
// option catalog's per-category defaults win over the static fallbacks.
func (ps *ProfileService) applyDefaults(profile *model.Profile) {

	if profile.RelationshipStatus == "" {
		profile.RelationshipStatus = ps.defaultFor("relationshipStatus", constants.DefaultRelationshipStatus)
	}
	if profile.LookingFor == "" {
		profile.LookingFor = ps.defaultFor("lookingFor", constants.DefaultLookingFor)
	}
	if profile.HaveChildren == "" {
		profile.HaveChildren = ps.defaultFor("haveChildren", constants.DefaultHaveChildren)
	}
	if profile.MatchPreferences.Gender == "" {
		profile.MatchPreferences.Gender = ps.defaultFor("matchGender", constants.MatchGenderBoth)
	}
	if profile.MatchPreferences.AgeRange.Min == 0 {
		profile.MatchPreferences.AgeRange.Min = constants.DefaultAgeRangeMin
	}
	if profile.MatchPreferences.AgeRange.Max == 0 {
		profile.MatchPreferences.AgeRange.Max = constants.DefaultAgeRangeMax
	}
	if profile.MatchPreferences.LocationRangeKm == 0 {
		profile.MatchPreferences.LocationRangeKm = constants.DefaultLocationRangeKm
	}
}

// validateProfile checks enumerated values against the option catalog and
// enforces age and preference bounds.
func (ps *ProfileService) validateProfile(profile *model.Profile) error {

	if !profile.DateOfBirth.IsZero() && profile.Age(time.Now()) < minimumAge {
		return validationError(fmt.Sprintf("Users must be at least %d years old.", minimumAge))
	}

	ageRange := profile.MatchPreferences.AgeRange
	if ageRange.Min > ageRange.Max {
		return validationError("Preference age range minimum cannot exceed its maximum.")
	}
	if ageRange.Min < minimumAge {
		return validationError(fmt.Sprintf("Preference age range must start at %d or above.", minimumAge))
	}

	if rangeKm := profile.MatchPreferences.LocationRangeKm; rangeKm != 0 && (rangeKm < 1 || rangeKm > 10000) {
		return validationError("Preference location range must be between 1 and 10000 km.")
	}

	enumFields := map[string]string{
		"gender":              profile.Gender,
		"religion":            profile.Religion,
		"serving_as":          profile.ServingAs,
		"relationship_status": profile.RelationshipStatus,
		"looking_for":         profile.LookingFor,
		"have_children":       profile.HaveChildren,
		"education":           profile.Education,
		"income":              profile.Income,
	}
	for field, value := range enumFields {
		if err := ps.validateEnumValue(constants.ProfileFieldOptionCategory[field], field, value); err != nil {
			return err
		}
	}

	prefFields := map[string]string{
		"gender":          profile.MatchPreferences.Gender,
		"religion":        profile.MatchPreferences.Religion,
		"education_level": profile.MatchPreferences.EducationLevel,
		"wants_children":  profile.MatchPreferences.WantsChildren,
	}
	for field, value := range prefFields {
		if err := ps.validateEnumValue(constants.PreferenceFieldOptionCategory[field], field, value); err != nil {
			return err
		}
	}
	return nil
}

func (ps *ProfileService) validateEnumValue(category, field, value string) error {

	if value == "" || category == "" {
		return nil
	}
	valid, err := ps.registry.HasValue(category, value)
	if err != nil {
		return err
	}
	if !valid {
		return validationError(fmt.Sprintf("Value '%s' is not a recognized option for %s.", value, field))
	}
	return nil
}

// resolveLabels maps enumerated field values to their display labels.
func (ps *ProfileService) resolveLabels(profile *model.Profile) map[string]string {

	labels := make(map[string]string)
	fields := map[string]string{
		"gender":              profile.Gender,
		"religion":            profile.Religion,
		"serving_as":          profile.ServingAs,
		"relationship_status": profile.RelationshipStatus,
		"looking_for":         profile.LookingFor,
		"have_children":       profile.HaveChildren,
		"education":           profile.Education,
		"income":              profile.Income,
	}
	for field, value := range fields {
		if value == "" {
			continue
		}
		labels[field] = ps.registry.GetOptionLabel(constants.ProfileFieldOptionCategory[field], value)
	}
	return labels
}

// resolveBadges resolves verification badge values against the catalog. An
// unknown badge still renders with its raw value.
func (ps *ProfileService) resolveBadges(profile *model.Profile) []BadgeDetail {

	if len(profile.VerificationBadges) == 0 {
		return nil
	}
	badges := make([]BadgeDetail, 0, len(profile.VerificationBadges))
	for _, value := range profile.VerificationBadges {
		detail := BadgeDetail{Value: value, Label: value}
		if option, err := ps.registry.GetOption("verificationBadge", value); err == nil && option != nil {
			detail.Label = option.Label
			detail.Description = option.Description
		}
		badges = append(badges, detail)
	}
	return badges
}

func (ps *ProfileService) defaultFor(category, fallback string) string {

	if value := ps.registry.GetDefaultValue(category); value != "" {
		return value
	}
	return fallback
}

func normalizeUsername(username string) string {

	return strings.ToLower(strings.TrimSpace(username))
}

// applyUpdates overlays the filtered update payload on a copy of the profile.
func applyUpdates(profile *model.Profile, updates map[string]interface{}) error {

	raw, err := json.Marshal(updates)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PROFILE.Code,
			Message:     errors2.UPDATE_PROFILE.Message,
			Description: "Failed to serialize profile updates.",
		}, err)
	}
	if err := json.Unmarshal(raw, profile); err != nil {
		return validationError("Update payload does not match the profile schema.")
	}
	return nil
}

func validationError(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.PROFILE_VALIDATION.Code,
		Message:     errors2.PROFILE_VALIDATION.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func profileNotFoundError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.PROFILE_NOT_FOUND.Code,
		Message:     errors2.PROFILE_NOT_FOUND.Message,
		Description: "Profile not found.",
	}, http.StatusNotFound)
}
