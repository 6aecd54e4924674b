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

	"github.com/faithmatch/match-data-service/internal/match/handler"
)

type MatchRouteService struct {
	handler *handler.MatchHandler
}

func NewMatchRouteService(mux *http.ServeMux, apiBasePath string) *MatchRouteService {
	instance := &MatchRouteService{
		handler: handler.NewMatchHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *MatchRouteService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s/matches", apiBasePath), s.handler.GetMatches)
	mux.HandleFunc(fmt.Sprintf("GET %s/matches/candidates", apiBasePath), s.handler.FindMatches)
	mux.HandleFunc(fmt.Sprintf("POST %s/matches/likes/", apiBasePath), s.handler.LikeUser)
}
