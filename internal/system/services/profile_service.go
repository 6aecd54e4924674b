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

package services

import (
	"fmt"
	"net/http"

	"github.com/faithmatch/match-data-service/internal/profile/handler"
)

type ProfileRouteService struct {
	handler *handler.ProfileHandler
}

func NewProfileRouteService(mux *http.ServeMux, apiBasePath string) *ProfileRouteService {
	instance := &ProfileRouteService{
		handler: handler.NewProfileHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *ProfileRouteService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("POST %s/profiles", apiBasePath), s.handler.CreateProfile)
	mux.HandleFunc(fmt.Sprintf("GET %s/profiles/me", apiBasePath), s.handler.GetOwnProfile)
	mux.HandleFunc(fmt.Sprintf("PATCH %s/profiles/me", apiBasePath), s.handler.UpdateProfile)
	mux.HandleFunc(fmt.Sprintf("GET %s/profiles/me/completion", apiBasePath), s.handler.GetProfileCompletion)
	mux.HandleFunc(fmt.Sprintf("GET %s/profiles/", apiBasePath), s.handler.GetProfile)
}
