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

// Option is one enumerated value of a profile or preference field.
type Option struct {
	OptionId     string            `json:"option_id"`              // Identifier used for internal referencing
	Category     string            `json:"category"`               // Field category the option belongs to
	Value        string            `json:"value"`                  // Stored value, unique within its category
	Label        string            `json:"label"`                  // Human-readable label shown to users
	Translations map[string]string `json:"translations,omitempty"` // Locale code to localized label
	DisplayOrder int               `json:"display_order"`          // Sort position within the category
	IsActive     bool              `json:"is_active"`              // Inactive options are hidden from read paths
	IsDefault    bool              `json:"is_default"`             // Seeded into new profiles for its category
	Description  string            `json:"description,omitempty"`  // Optional admin note
}

// LocalizedLabel returns the label for the given locale, falling back
// to the default label when no translation exists.
func (o *Option) LocalizedLabel(locale string) string {

	if translated, ok := o.Translations[locale]; ok && translated != "" {
		return translated
	}
	return o.Label
}
