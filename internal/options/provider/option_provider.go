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

package provider

import (
	"github.com/faithmatch/match-data-service/internal/options/service"
)

// OptionProviderInterface defines the interface for the option provider.
type OptionProviderInterface interface {
	GetOptionService() service.OptionServiceInterface
}

// OptionProvider is the default implementation of the OptionProviderInterface.
type OptionProvider struct{}

// NewOptionProvider creates a new instance of OptionProvider.
func NewOptionProvider() OptionProviderInterface {
	return &OptionProvider{}
}

// GetOptionService returns the option service instance.
func (op *OptionProvider) GetOptionService() service.OptionServiceInterface {
	return service.GetOptionService()
}
