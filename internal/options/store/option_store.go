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
 * KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package store

import (
	"encoding/json"
	"fmt"

	model "github.com/faithmatch/match-data-service/internal/options/model"
	"github.com/faithmatch/match-data-service/internal/system/database/provider"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

const optionColumns = `option_id, category, value, label, translations, display_order, is_active, is_default, description`

// AddOption inserts a new option into the database.
func AddOption(option model.Option) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for inserting option: %s/%s", option.Category, option.Value)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_OPTION.Code,
			Message:     errors2.ADD_OPTION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `INSERT INTO options (option_id, category, value, label, translations, display_order, is_active, is_default, description)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for inserting option: %s/%s", option.Category, option.Value)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_OPTION.Code,
			Message:     errors2.ADD_OPTION.Message,
			Description: errorMsg,
		}, err)
	}
	_, err = tx.Exec(query, option.OptionId, option.Category, option.Value, option.Label,
		marshalTranslations(option.Translations), option.DisplayOrder, option.IsActive, option.IsDefault,
		option.Description)
	if err != nil {
		errRollback := tx.Rollback()
		if errRollback != nil {
			errorMsg := fmt.Sprintf("Failed to rollback inserting option: %s/%s", option.Category, option.Value)
			logger.Debug(errorMsg, log.Error(errRollback))
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.ADD_OPTION.Code,
				Message:     errors2.ADD_OPTION.Message,
				Description: errorMsg,
			}, errRollback)
		}
		errorMsg := fmt.Sprintf("Failed to execute query for inserting option: %s/%s", option.Category, option.Value)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_OPTION.Code,
			Message:     errors2.ADD_OPTION.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info(fmt.Sprintf("Successfully inserted option: %s/%s", option.Category, option.Value))
	return tx.Commit()
}

// GetAllOptions retrieves every active option ordered for display.
func GetAllOptions() ([]model.Option, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching options."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_OPTIONS.Code,
			Message:     errors2.FETCH_OPTIONS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT ` + optionColumns + ` FROM options WHERE is_active = TRUE
				ORDER BY category, display_order, label`
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed to execute query for fetching options."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_OPTIONS.Code,
			Message:     errors2.FETCH_OPTIONS.Message,
			Description: errorMsg,
		}, err)
	}

	options := make([]model.Option, 0, len(results))
	for _, row := range results {
		options = append(options, buildOption(row))
	}
	if len(options) == 0 {
		logger.Debug("No options found")
		return nil, nil
	}
	return options, nil
}

// GetOptionsByCategory retrieves the active options of one category ordered for display.
func GetOptionsByCategory(category string) ([]model.Option, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching options of category: %s", category)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_OPTIONS.Code,
			Message:     errors2.FETCH_OPTIONS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT ` + optionColumns + ` FROM options WHERE category = $1 AND is_active = TRUE
				ORDER BY display_order, label`
	results, err := dbClient.ExecuteQuery(query, category)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching options of category: %s", category)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_OPTIONS.Code,
			Message:     errors2.FETCH_OPTIONS.Message,
			Description: errorMsg,
		}, err)
	}

	options := make([]model.Option, 0, len(results))
	for _, row := range results {
		options = append(options, buildOption(row))
	}
	if len(options) == 0 {
		logger.Debug(fmt.Sprintf("No options found for category: %s", category))
		return nil, nil
	}
	return options, nil
}

// GetOptionByID retrieves an option by its identifier.
func GetOptionByID(optionId string) (*model.Option, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching option: %s", optionId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_OPTIONS.Code,
			Message:     errors2.FETCH_OPTIONS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT ` + optionColumns + ` FROM options WHERE option_id = $1`
	results, err := dbClient.ExecuteQuery(query, optionId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching option: %s", optionId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_OPTIONS.Code,
			Message:     errors2.FETCH_OPTIONS.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("Option not found for id: %s", optionId))
		return nil, nil
	}
	option := buildOption(results[0])
	return &option, nil
}

// GetOptionByCategoryAndValue retrieves an option by its unique (category, value) pair.
func GetOptionByCategoryAndValue(category, value string) (*model.Option, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching option: %s/%s", category, value)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_OPTIONS.Code,
			Message:     errors2.FETCH_OPTIONS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT ` + optionColumns + ` FROM options WHERE category = $1 AND value = $2`
	results, err := dbClient.ExecuteQuery(query, category, value)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching option: %s/%s", category, value)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_OPTIONS.Code,
			Message:     errors2.FETCH_OPTIONS.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		return nil, nil
	}
	option := buildOption(results[0])
	return &option, nil
}

// UpdateOption updates the mutable attributes of an existing option.
func UpdateOption(option model.Option) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating option: %s", option.OptionId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_OPTION.Code,
			Message:     errors2.UPDATE_OPTION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for updating option: %s", option.OptionId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_OPTION.Code,
			Message:     errors2.UPDATE_OPTION.Message,
			Description: errorMsg,
		}, err)
	}

	query := `UPDATE options SET label=$1, translations=$2, display_order=$3, is_active=$4, is_default=$5,
				description=$6 WHERE option_id=$7`
	_, err = tx.Exec(query, option.Label, marshalTranslations(option.Translations), option.DisplayOrder,
		option.IsActive, option.IsDefault, option.Description, option.OptionId)
	if err != nil {
		logger.Debug("Failed to update option", log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_OPTION.Code,
			Message:     errors2.UPDATE_OPTION.Message,
			Description: "Failed to update option.",
		}, err)
	}
	return tx.Commit()
}

// DeleteOption retires an option. The row is kept, flagged inactive, so
// profiles holding the value still resolve it by id.
func DeleteOption(optionId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_OPTION.Code,
			Message:     errors2.DELETE_OPTION.Message,
			Description: "Database connection failed.",
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for deleting option: %s", optionId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_OPTION.Code,
			Message:     errors2.DELETE_OPTION.Message,
			Description: errorMsg,
		}, err)
	}

	query := `UPDATE options SET is_active=FALSE WHERE option_id=$1`
	_, err = tx.Exec(query, optionId)
	if err != nil {
		logger.Debug("Failed to delete option", log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_OPTION.Code,
			Message:     errors2.DELETE_OPTION.Message,
			Description: "Failed to delete option.",
		}, err)
	}
	return tx.Commit()
}

func buildOption(row map[string]interface{}) model.Option {

	return model.Option{
		OptionId:     asString(row["option_id"]),
		Category:     asString(row["category"]),
		Value:        asString(row["value"]),
		Label:        asString(row["label"]),
		Translations: asTranslations(row["translations"]),
		DisplayOrder: asInt(row["display_order"]),
		IsActive:     asBool(row["is_active"]),
		IsDefault:    asBool(row["is_default"]),
		Description:  asString(row["description"]),
	}
}

func marshalTranslations(translations map[string]string) string {

	if len(translations) == 0 {
		return "{}"
	}
	encoded, err := json.Marshal(translations)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

func asTranslations(raw interface{}) map[string]string {

	encoded := asString(raw)
	if encoded == "" || encoded == "{}" {
		return nil
	}
	translations := map[string]string{}
	if err := json.Unmarshal([]byte(encoded), &translations); err != nil {
		return nil
	}
	return translations
}

func asString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func asInt(raw interface{}) int {
	switch v := raw.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func asBool(raw interface{}) bool {
	b, ok := raw.(bool)
	return ok && b
}
