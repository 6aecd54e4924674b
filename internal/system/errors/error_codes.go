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

package errors

const errorPrefix = "MDS-"

var (
	// Server error codes

	ADD_OPTION = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while adding option.",
	}

	FETCH_OPTIONS = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while fetching option(s).",
	}

	UPDATE_OPTION = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while updating option.",
	}

	DELETE_OPTION = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while deleting option.",
	}

	ADD_PROFILE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while adding profile.",
	}

	GET_PROFILE = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching profile.",
	}

	UPDATE_PROFILE = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while updating profile.",
	}

	FIND_CANDIDATES = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while finding match candidates.",
	}

	LIKE_PROFILE = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while recording like.",
	}

	CREATE_MATCH = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while creating match.",
	}

	GET_MATCHES = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while fetching matches.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while initializing database client.",
	}

	MONGO_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while initializing document store client.",
	}

	ACQUIRE_PAIR_LOCK = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while acquiring pair lock.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11000",
		Message: "Invalid request.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Unauthorized request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Forbidden request.",
	}

	OPTION_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Option not found.",
	}

	OPTION_ALREADY_EXISTS = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Option already exists.",
	}

	OPTION_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Invalid option data.",
	}

	PROFILE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Profile not found.",
	}

	PROFILE_ALREADY_EXISTS = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Profile already exists.",
	}

	USERNAME_TAKEN = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Username already taken.",
	}

	PROFILE_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Invalid profile data.",
	}

	ALREADY_LIKED = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Profile already liked.",
	}

	MATCH_ALREADY_EXISTS = ErrorMessage{
		Code:    errorPrefix + "11011",
		Message: "Match already exists for this pair.",
	}

	PAIR_LOCK_BUSY = ErrorMessage{
		Code:    errorPrefix + "11012",
		Message: "Another like for this pair is in flight.",
	}
)
