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

package encoder

import (
	"encoding/base64"
	"strings"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/tcf/schema"
)

// encodeSegment renders a finished segment as unpadded base64url.
func encodeSegment(w *bitWriter) string {
	return base64.RawURLEncoding.EncodeToString(w.bytes())
}

// decodeSegment accepts segments of any length, including ones whose last
// character carries fewer than eight bits.
func decodeSegment(s string, segment schema.Segment) (*bitReader, error) {
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("A", 4-rem)
	}
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.NewClientErrorf(errors.INVALID_ENCODING, errors.KindValidation,
			"%s segment: %v", segment, err)
	}
	return newBitReader(data, segment), nil
}
