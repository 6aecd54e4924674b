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

package authn

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/faithmatch/match-data-service/internal/system/config"
	errors2 "github.com/faithmatch/match-data-service/internal/system/errors"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

// ValidateAuthenticationAndReturnClaims verifies a signed bearer token and
// returns its claims. Tokens are HMAC signed with the configured secret.
func ValidateAuthenticationAndReturnClaims(token string) (map[string]interface{}, error) {

	logger := log.GetLogger()
	cfg := config.GetMDSRuntime().Config

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Auth.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		logger.Debug("Token signature or expiry validation failed.", log.Error(err))
		return nil, unauthorizedError()
	}

	if cfg.Auth.JWTIssuer != "" {
		issuer, err := claims.GetIssuer()
		if err != nil || issuer != cfg.Auth.JWTIssuer {
			logger.Debug("Token issuer does not match expected issuer.")
			return nil, unauthorizedError()
		}
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		logger.Debug("Token does not carry a subject claim.")
		return nil, unauthorizedError()
	}

	return claims, nil
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: errors2.UN_AUTHORIZED.Description,
	}, http.StatusUnauthorized)
}
