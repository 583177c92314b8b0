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

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	clientErr := NewClientErrorf(INVALID_COMMAND, KindProtocol, "%v", 42)
	assert.ErrorIs(t, clientErr, ErrProtocol)
	assert.NotErrorIs(t, clientErr, ErrValidation)
	assert.Equal(t, KindProtocol, KindOf(clientErr))
	assert.Equal(t, "invalid command: 42", clientErr.Detail())
	assert.Equal(t, "[TCF-12003] invalid command: 42", clientErr.Error())

	serverErr := NewServerError(INVALID_ENCODING, KindValidation, io.ErrUnexpectedEOF)
	wrapped := Wrapf(serverErr, "decoding segment %d", 1)
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
	assert.Equal(t, KindValidation, KindOf(wrapped))

	var target *ServerError
	assert.True(t, As(wrapped, &target))
	assert.Equal(t, INVALID_ENCODING.Code, target.Code)

	assert.Equal(t, Kind(0), KindOf(io.EOF))
	assert.Equal(t, "unknown", Kind(0).String())
}
