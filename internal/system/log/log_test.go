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

package log

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter("WARN", &buf))

	GetLogger().Info("hidden")
	GetLogger().Warn("shown", String("k", "v"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")

	assert.Error(t, InitWithWriter("LOUD", &buf))
}

func TestWith_AttachesFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter("DEBUG", &buf))

	GetLogger().With(Session("s-1")).Debug("call", Command("ping"), Int("n", 2), Bool("ok", true))

	out := buf.String()
	assert.Contains(t, out, "session_id=s-1")
	assert.Contains(t, out, "command=ping")
	assert.Contains(t, out, "n=2")
	assert.Contains(t, out, "ok=true")
}

func TestAudit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter("INFO", &buf))

	GetLogger().Audit(AuditEvent{
		InitiatorID:   "10",
		InitiatorType: InitiatorTypeCmp,
		TargetType:    TargetTypeTCData,
		ActionID:      ActionSetTCString,
		SessionID:     "s-1",
	})

	line := buf.String()
	require.Contains(t, line, "AUDIT")
	start := strings.Index(line, "audit_event=")
	require.GreaterOrEqual(t, start, 0)

	// The text handler quotes the JSON payload.
	payload, err := strconv.Unquote(strings.TrimSpace(line[start+len("audit_event="):]))
	require.NoError(t, err)
	var event AuditEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &event))
	assert.Equal(t, ActionSetTCString, event.ActionID)
	assert.Equal(t, "s-1", event.SessionID)
	assert.NotEmpty(t, event.RecordedAt)
}
