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
	"github.com/faithmatch/match-data-service/internal/profile/service"
)

// ProfileProviderInterface defines the interface for the profile provider.
type ProfileProviderInterface interface {
	GetProfileService() service.ProfileServiceInterface
}

// ProfileProvider is the default implementation of the ProfileProviderInterface.
type ProfileProvider struct{}

// NewProfileProvider creates a new instance of ProfileProvider.
func NewProfileProvider() ProfileProviderInterface {
	return &ProfileProvider{}
}

// GetProfileService returns the profile service instance.
func (pp *ProfileProvider) GetProfileService() service.ProfileServiceInterface {
	return service.GetProfileService()
}
