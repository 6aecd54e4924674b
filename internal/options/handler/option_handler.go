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
	"strconv"
	"strings"

	optionModel "github.com/faithmatch/match-data-service/internal/options/model"
	"github.com/faithmatch/match-data-service/internal/options/provider"
	"github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/utils"
)

type OptionHandler struct{}

func NewOptionHandler() *OptionHandler {
	return &OptionHandler{}
}

// GetOptions handles GET /options. Without query parameters the full catalog
// is returned grouped by category; category, search, limit and offset switch
// to a flat filtered listing.
func (h *OptionHandler) GetOptions(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, "options:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewOptionProvider().GetOptionService()

	query := r.URL.Query()
	category := query.Get("category")
	search := query.Get("search")
	limit, err := parseOptionalInt(query.Get("limit"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	if search != "" || limit > 0 || offset > 0 {
		options, err := service.SearchOptions(category, search, limit, offset)
		if err != nil {
			utils.HandleError(w, err)
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, options)
		return
	}

	if category != "" {
		options, err := service.GetOptionsByCategory(category)
		if err != nil {
			utils.HandleError(w, err)
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, options)
		return
	}

	grouped, err := service.GetGroupedOptions()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, grouped)
}

// GetOption handles GET /options/{id}
func (h *OptionHandler) GetOption(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, "options:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	optionId := extractLastPathSegment(r.URL.Path)
	if optionId == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "Option Id is required to retrieve the option.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewOptionProvider().GetOptionService()
	option, err := service.GetOption(optionId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, option)
}

// AddOption handles POST /options
func (h *OptionHandler) AddOption(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, "options:create")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var option optionModel.Option
	if err := json.NewDecoder(r.Body).Decode(&option); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "option"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewOptionProvider().GetOptionService()
	created, err := service.AddOption(option)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// UpdateOption handles PUT /options/{id}
func (h *OptionHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, "options:update")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	optionId := extractLastPathSegment(r.URL.Path)
	if optionId == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "Option Id is required to update the option.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	var option optionModel.Option
	if err := json.NewDecoder(r.Body).Decode(&option); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "option"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	option.OptionId = optionId

	service := provider.NewOptionProvider().GetOptionService()
	if err := service.UpdateOption(option); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, option)
}

// DeleteOption handles DELETE /options/{id}
func (h *OptionHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, "options:delete")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	optionId := extractLastPathSegment(r.URL.Path)
	if optionId == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "Option Id is required to delete the option.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewOptionProvider().GetOptionService()
	if err := service.DeleteOption(optionId); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseOptionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "limit and offset must be non-negative integers.",
		}, http.StatusBadRequest)
	}
	return value, nil
}

func extractLastPathSegment(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
