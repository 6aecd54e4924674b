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
	"net/http"
	"strconv"
	"strings"

	"github.com/faithmatch/match-data-service/internal/match/provider"
	"github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/utils"
)

const defaultCandidateLimit = 20

type MatchHandler struct{}

func NewMatchHandler() *MatchHandler {
	return &MatchHandler{}
}

// FindMatches handles GET /matches/candidates
func (h *MatchHandler) FindMatches(w http.ResponseWriter, r *http.Request) {

	userId, err := utils.AuthnAndAuthz(r, "matches:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	limit := int64(defaultCandidateLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			clientError := errors.NewClientError(errors.ErrorMessage{
				Code:        errors.BAD_REQUEST.Code,
				Message:     errors.BAD_REQUEST.Message,
				Description: "limit must be a positive integer.",
			}, http.StatusBadRequest)
			utils.HandleError(w, clientError)
			return
		}
		limit = parsed
	}

	var offset int64
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			clientError := errors.NewClientError(errors.ErrorMessage{
				Code:        errors.BAD_REQUEST.Code,
				Message:     errors.BAD_REQUEST.Message,
				Description: "offset must be a non-negative integer.",
			}, http.StatusBadRequest)
			utils.HandleError(w, clientError)
			return
		}
		offset = parsed
	}

	service := provider.NewMatchProvider().GetMatchService()
	candidates, err := service.FindMatches(userId, limit, offset)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, candidates)
}

// LikeUser handles POST /matches/likes/{userId}
func (h *MatchHandler) LikeUser(w http.ResponseWriter, r *http.Request) {

	likerId, err := utils.AuthnAndAuthz(r, "matches:like")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	likedId := extractLastPathSegment(r.URL.Path)
	if likedId == "" || likedId == "likes" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "User Id is required to like a profile.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewMatchProvider().GetMatchService()
	result, err := service.LikeUser(likerId, likedId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, result)
}

// GetMatches handles GET /matches
func (h *MatchHandler) GetMatches(w http.ResponseWriter, r *http.Request) {

	userId, err := utils.AuthnAndAuthz(r, "matches:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewMatchProvider().GetMatchService()
	matches, err := service.GetMatches(userId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, matches)
}

func extractLastPathSegment(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
