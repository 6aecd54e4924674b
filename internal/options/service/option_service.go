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
	"sort"
	"strings"

	"github.com/google/uuid"

	model "github.com/faithmatch/match-data-service/internal/options/model"
	"github.com/faithmatch/match-data-service/internal/options/registry"
	"github.com/faithmatch/match-data-service/internal/options/store"
	"github.com/faithmatch/match-data-service/internal/system/constants"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
)

// OptionServiceInterface defines the service interface for the option catalog.
type OptionServiceInterface interface {
	GetGroupedOptions() (map[string][]model.Option, error)
	GetOptionsByCategory(category string) ([]model.Option, error)
	GetOption(optionId string) (*model.Option, error)
	SearchOptions(category, search string, limit, offset int) ([]model.Option, error)
	AddOption(option model.Option) (*model.Option, error)
	UpdateOption(option model.Option) error
	DeleteOption(optionId string) error
}

// OptionService is the default implementation.
type OptionService struct{}

// GetOptionService returns a new instance.
func GetOptionService() OptionServiceInterface {
	return &OptionService{}
}

// GetGroupedOptions retrieves the full catalog grouped by category.
func (os *OptionService) GetGroupedOptions() (map[string][]model.Option, error) {

	grouped, err := registry.GetOptionRegistry().GetGroupedOptions()
	if err != nil {
		return nil, err
	}
	if grouped == nil {
		return map[string][]model.Option{}, nil
	}
	return grouped, nil
}

// GetOptionsByCategory retrieves the options of one category.
func (os *OptionService) GetOptionsByCategory(category string) ([]model.Option, error) {

	if !constants.AllowedOptionCategories[category] {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.OPTION_VALIDATION.Code,
			Message:     errors2.OPTION_VALIDATION.Message,
			Description: "Unknown option category.",
		}, http.StatusBadRequest)
	}

	options, err := registry.GetOptionRegistry().GetOptionsByCategory(category)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return []model.Option{}, nil
	}
	return options, nil
}

// GetOption retrieves a single option by id. Retired options are still
// returned so values referenced by existing profiles resolve.
func (os *OptionService) GetOption(optionId string) (*model.Option, error) {

	if optionId == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Option ID is required.",
		}, http.StatusBadRequest)
	}

	option, err := store.GetOptionByID(optionId)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.OPTION_NOT_FOUND.Code,
			Message:     errors2.OPTION_NOT_FOUND.Message,
			Description: "Option not found.",
		}, http.StatusNotFound)
	}
	return option, nil
}

// SearchOptions lists catalog options for the admin view, filtered by
// category and a case-insensitive substring over value and label, paginated.
func (os *OptionService) SearchOptions(category, search string, limit, offset int) ([]model.Option, error) {

	var options []model.Option
	if category != "" {
		byCategory, err := os.GetOptionsByCategory(category)
		if err != nil {
			return nil, err
		}
		options = byCategory
	} else {
		grouped, err := registry.GetOptionRegistry().GetGroupedOptions()
		if err != nil {
			return nil, err
		}
		categories := make([]string, 0, len(grouped))
		for name := range grouped {
			categories = append(categories, name)
		}
		sort.Strings(categories)
		for _, name := range categories {
			options = append(options, grouped[name]...)
		}
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := options[:0:0]
		for _, option := range options {
			if strings.Contains(strings.ToLower(option.Value), needle) ||
				strings.Contains(strings.ToLower(option.Label), needle) {
				filtered = append(filtered, option)
			}
		}
		options = filtered
	}

	if offset > 0 {
		if offset >= len(options) {
			return []model.Option{}, nil
		}
		options = options[offset:]
	}
	if limit > 0 && limit < len(options) {
		options = options[:limit]
	}
	if options == nil {
		return []model.Option{}, nil
	}
	return options, nil
}

// AddOption adds a new option and invalidates the catalog cache.
func (os *OptionService) AddOption(option model.Option) (*model.Option, error) {

	if err, isValid := os.validateOption(option); !isValid || err != nil {
		return nil, err
	}

	existing, err := store.GetOptionByCategoryAndValue(option.Category, option.Value)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.OPTION_ALREADY_EXISTS.Code,
			Message:     errors2.OPTION_ALREADY_EXISTS.Message,
			Description: "An option with the same value already exists in this category.",
		}, http.StatusConflict)
	}

	if option.OptionId == "" {
		option.OptionId = uuid.New().String()
	}
	if option.Label == "" {
		option.Label = option.Value
	}

	if err := store.AddOption(option); err != nil {
		return nil, err
	}
	registry.GetOptionRegistry().InvalidateCache()
	return &option, nil
}

// UpdateOption updates an existing option and invalidates the catalog cache.
func (os *OptionService) UpdateOption(option model.Option) error {

	if option.OptionId == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Option ID is required for update.",
		}, http.StatusBadRequest)
	}

	existing, err := store.GetOptionByID(option.OptionId)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.OPTION_NOT_FOUND.Code,
			Message:     errors2.OPTION_NOT_FOUND.Message,
			Description: "Option not found.",
		}, http.StatusNotFound)
	}

	if err := store.UpdateOption(option); err != nil {
		return err
	}
	registry.GetOptionRegistry().InvalidateCache()
	return nil
}

// DeleteOption removes an option and invalidates the catalog cache.
func (os *OptionService) DeleteOption(optionId string) error {

	if optionId == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Option ID is required for delete.",
		}, http.StatusBadRequest)
	}

	if err := store.DeleteOption(optionId); err != nil {
		return err
	}
	registry.GetOptionRegistry().InvalidateCache()
	return nil
}

func (os *OptionService) validateOption(option model.Option) (error, bool) {

	if option.Category == "" || option.Value == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.OPTION_VALIDATION.Code,
			Message:     errors2.OPTION_VALIDATION.Message,
			Description: "category and value are required.",
		}, http.StatusBadRequest), false
	}

	if !constants.AllowedOptionCategories[option.Category] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.OPTION_VALIDATION.Code,
			Message:     errors2.OPTION_VALIDATION.Message,
			Description: "Unknown option category.",
		}, http.StatusBadRequest), false
	}
	return nil, true
}
