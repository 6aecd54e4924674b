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

	"github.com/faithmatch/match-data-service/internal/options/handler"
)

type OptionRouteService struct {
	handler *handler.OptionHandler
}

func NewOptionRouteService(mux *http.ServeMux, apiBasePath string) *OptionRouteService {
	instance := &OptionRouteService{
		handler: handler.NewOptionHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *OptionRouteService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s/options", apiBasePath), s.handler.GetOptions)
	mux.HandleFunc(fmt.Sprintf("GET %s/options/", apiBasePath), s.handler.GetOption)
	mux.HandleFunc(fmt.Sprintf("POST %s/options", apiBasePath), s.handler.AddOption)
	mux.HandleFunc(fmt.Sprintf("PUT %s/options/", apiBasePath), s.handler.UpdateOption)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/options/", apiBasePath), s.handler.DeleteOption)
}
