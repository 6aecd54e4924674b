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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	profileModel "github.com/faithmatch/match-data-service/internal/profile/model"
	"github.com/faithmatch/match-data-service/internal/profile/provider"
	"github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/utils"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {

	userId, err := utils.AuthnAndAuthz(r, "profiles:create")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var profile profileModel.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "profile"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewProfileProvider().GetProfileService()
	created, err := service.CreateProfile(userId, profile)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// GetProfile handles GET /profiles/{userId}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {

	viewerId, err := utils.AuthnAndAuthz(r, "profiles:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	userId := extractLastPathSegment(r.URL.Path)
	if userId == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "User Id is required to fetch the profile.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewProfileProvider().GetProfileService()
	profile, err := service.GetProfile(userId, viewerId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

// GetOwnProfile handles GET /profiles/me
func (h *ProfileHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {

	userId, err := utils.AuthnAndAuthz(r, "profiles:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewProfileProvider().GetProfileService()
	profile, err := service.GetProfile(userId, userId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

// UpdateProfile handles PATCH /profiles/me
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {

	userId, err := utils.AuthnAndAuthz(r, "profiles:update")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "profile"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewProfileProvider().GetProfileService()
	updated, err := service.UpdateProfile(userId, updates)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, updated)
}

// GetProfileCompletion handles GET /profiles/me/completion
func (h *ProfileHandler) GetProfileCompletion(w http.ResponseWriter, r *http.Request) {

	userId, err := utils.AuthnAndAuthz(r, "profiles:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewProfileProvider().GetProfileService()
	breakdown, err := service.GetProfileCompletion(userId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, breakdown)
}

func extractLastPathSegment(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
