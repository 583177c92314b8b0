/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
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

const errorPrefix = "TCF-"

var (
	// Model validation errors

	INVALID_VECTOR_ID = ErrorMessage{
		Code:    errorPrefix + "10001",
		Message: "Vector ids must be positive integers.",
	}

	INVALID_LANGUAGE_CODE = ErrorMessage{
		Code:    errorPrefix + "10002",
		Message: "Invalid consent language code.",
	}

	INVALID_COUNTRY_CODE = ErrorMessage{
		Code:    errorPrefix + "10003",
		Message: "Invalid publisher country code.",
	}

	INVALID_MODEL_FIELD = ErrorMessage{
		Code:    errorPrefix + "10004",
		Message: "Invalid consent record field value.",
	}

	INVALID_RESTRICTION = ErrorMessage{
		Code:    errorPrefix + "10005",
		Message: "Invalid publisher restriction.",
	}

	// Codec errors

	UNSUPPORTED_VERSION = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Unsupported TC string version.",
	}

	TRUNCATED_DATA = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "TC string segment ended before all fields were read.",
	}

	RANGE_OVERFLOW = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Value does not fit in its field width.",
	}

	INVALID_ENCODING = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "TC string segment is not valid base64url.",
	}

	EMPTY_TC_STRING = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "TC string is empty.",
	}

	UNSUPPORTED_DEFAULT_CONSENT = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Range encoded vectors with default consent are not supported.",
	}

	INVALID_RANGE = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Id ranges must be ascending and must not overlap.",
	}

	// CMP API errors

	INVALID_CMP_ID = ErrorMessage{
		Code:    errorPrefix + "12001",
		Message: "Invalid cmpId.",
	}

	INVALID_CMP_VERSION = ErrorMessage{
		Code:    errorPrefix + "12002",
		Message: "Invalid cmpVersion.",
	}

	INVALID_COMMAND = ErrorMessage{
		Code:    errorPrefix + "12003",
		Message: "invalid command:",
	}

	UNSUPPORTED_API_VERSION = ErrorMessage{
		Code:    errorPrefix + "12004",
		Message: "unsupported version:",
	}

	INVALID_CALLBACK = ErrorMessage{
		Code:    errorPrefix + "12005",
		Message: "invalid callback function",
	}

	CMP_API_DISABLED = ErrorMessage{
		Code:    errorPrefix + "12006",
		Message: "CmpApi Disabled",
	}

	INVALID_PARAMETER = ErrorMessage{
		Code:    errorPrefix + "12007",
		Message: "invalid parameter:",
	}

	UNSUPPORTED_COMMAND = ErrorMessage{
		Code:    errorPrefix + "12008",
		Message: "CmpApi does not support the command:",
	}

	// Configuration errors

	LOAD_CONFIG = ErrorMessage{
		Code:    errorPrefix + "13001",
		Message: "Error while loading configuration.",
	}

	// Command line errors

	INVALID_ARGUMENT = ErrorMessage{
		Code:    errorPrefix + "14001",
		Message: "Invalid command line argument.",
	}

	INVALID_RECORD_FILE = ErrorMessage{
		Code:    errorPrefix + "14002",
		Message: "Consent record file could not be parsed.",
	}
)
