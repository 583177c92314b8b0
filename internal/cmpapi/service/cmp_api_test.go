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

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-tcf-consent/internal/cmpapi/command"
	"github.com/wso2/identity-tcf-consent/internal/cmpapi/model"
	"github.com/wso2/identity-tcf-consent/internal/system/constants"
	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/system/log"
	"github.com/wso2/identity-tcf-consent/internal/tcf/encoder"
	tcfmodel "github.com/wso2/identity-tcf-consent/internal/tcf/model"
)

// MockHandler implements command.Handler for testing
type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Invoke(callback model.Callback, params ...any) {
	args := m.Called(params...)
	callback(args.Get(0), true)
}

type answer struct {
	response any
	success  bool
}

// recorder collects callback invocations in order.
type recorder struct {
	answers []answer
}

func (r *recorder) callback(response any, success bool) {
	r.answers = append(r.answers, answer{response: response, success: success})
}

func (r *recorder) last(t *testing.T) answer {
	t.Helper()
	require.NotEmpty(t, r.answers)
	return r.answers[len(r.answers)-1]
}

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func newTestApi(t *testing.T, custom command.Registry) (*CmpApi, *Global) {
	t.Helper()
	global := NewGlobal()
	api, err := NewCmpApi(global, 10, 3, custom)
	require.NoError(t, err)
	return api, global
}

func testRecord(t *testing.T) *tcfmodel.TCModel {
	t.Helper()
	m := tcfmodel.NewTCModel()
	m.Created = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	m.LastUpdated = m.Created
	m.CmpID = 10
	m.CmpVersion = 3
	m.VendorListVersion = 55
	require.NoError(t, m.PurposeConsents.Set(1, 2))
	require.NoError(t, m.VendorConsents.Set(4, 8))
	return m
}

func TestNewCmpApi_Validation(t *testing.T) {
	log.Init("DEBUG")

	_, err := NewCmpApi(NewGlobal(), 1, 0, nil)
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = NewCmpApi(NewGlobal(), 2, -1, nil)
	assert.ErrorIs(t, err, errors.ErrValidation)

	api, err := NewCmpApi(NewGlobal(), 2, 0, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, api.SessionID())
}

func TestPing_Active(t *testing.T) {
	_, global := newTestApi(t, nil)
	rec := &recorder{}

	global.Call(constants.CommandPing, 2, rec.callback)

	got := rec.last(t)
	assert.True(t, got.success)
	ping, ok := got.response.(*model.Ping)
	require.True(t, ok)
	assert.True(t, ping.CmpLoaded)
	assert.Equal(t, constants.CmpStatusLoading, ping.CmpStatus)
	assert.Equal(t, model.ApiVersionString, ping.ApiVersion)
	assert.Equal(t, 10, ping.CmpID)
	assert.Equal(t, 3, ping.CmpVersion)
	assert.Nil(t, ping.GdprApplies)
}

func TestPing_AcceptsFloatVersion(t *testing.T) {
	_, global := newTestApi(t, nil)
	rec := &recorder{}

	global.Call(constants.CommandPing, float64(2), rec.callback)

	assert.True(t, rec.last(t).success)
}

func TestDisable(t *testing.T) {
	api, global := newTestApi(t, nil)
	require.NoError(t, api.SetTCModel(testRecord(t)))
	api.Disable()
	assert.True(t, api.Disabled())

	rec := &recorder{}
	global.Call(constants.CommandPing, 2, rec.callback)
	global.Call(constants.CommandGetTCData, 2, rec.callback)
	global.Call("anything", 2, rec.callback)

	require.Len(t, rec.answers, 3)
	for _, a := range rec.answers {
		assert.False(t, a.success)
		assert.Equal(t, rec.answers[0].response, a.response)
	}
	disabled, ok := rec.answers[0].response.(*model.Disabled)
	require.True(t, ok)
	assert.Equal(t, constants.CmpStatusError, disabled.CmpStatus)

	assert.ErrorIs(t, api.SetTCString("CAAAAAAAAAAA"), errors.ErrDisabled)
	assert.ErrorIs(t, api.SetTCModel(testRecord(t)), errors.ErrDisabled)
	assert.ErrorIs(t, api.SetUIVisible(true), errors.ErrDisabled)
}

func TestDisabled_StillValidatesCalls(t *testing.T) {
	api, global := newTestApi(t, nil)
	api.Disable()
	rec := &recorder{}

	global.Call(constants.CommandPing, 1, rec.callback)

	got := rec.last(t)
	assert.False(t, got.success)
	assert.Equal(t, "unsupported version: 1", got.response)
}

func TestProtocolErrors(t *testing.T) {
	_, global := newTestApi(t, nil)

	tests := []struct {
		name    string
		command any
		version any
		want    string
	}{
		{name: "numeric command", command: 42, version: 2, want: "invalid command: 42"},
		{name: "missing command", command: nil, version: 2, want: "invalid command: <nil>"},
		{name: "version 1", command: constants.CommandPing, version: 1, want: "unsupported version: 1"},
		{name: "version 42", command: constants.CommandPing, version: 42, want: "unsupported version: 42"},
		{name: "string version", command: constants.CommandPing, version: "2", want: "unsupported version: 2"},
		{name: "unknown command", command: "getVendorList", version: 2,
			want: `CmpApi does not support the command: "getVendorList"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			global.Call(tt.command, tt.version, rec.callback)
			got := rec.last(t)
			assert.False(t, got.success)
			assert.Equal(t, tt.want, got.response)
		})
	}
}

func TestMissingCallbackPanics(t *testing.T) {
	_, global := newTestApi(t, nil)
	var nilCallback model.Callback

	tests := []struct {
		name string
		args []any
	}{
		{name: "nil callback", args: []any{constants.CommandPing, 2, nilCallback}},
		{name: "not a function", args: []any{constants.CommandPing, 2, "callback"}},
		{name: "missing callback", args: []any{constants.CommandPing, 2}},
		{name: "invalid command without callback", args: []any{42, 2}},
		{name: "no arguments", args: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := recoverError(func() { global.Call(tt.args...) })
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrCallerContract)
		})
	}
}

func TestCustomCommandsTakePrecedence(t *testing.T) {
	handler := new(MockHandler)
	handler.On("Invoke", "extra").Return("custom-ping").Once()
	_, global := newTestApi(t, command.Registry{constants.CommandPing: handler})

	rec := &recorder{}
	global.Call(constants.CommandPing, 2, rec.callback, "extra")

	assert.Equal(t, "custom-ping", rec.last(t).response)
	handler.AssertExpectations(t)
}

func TestStub_AnswersPingAndQueues(t *testing.T) {
	global := NewGlobal()
	InstallStub(global)
	rec := &recorder{}

	global.Call(constants.CommandPing, 2, rec.callback)
	global.Call(constants.CommandGetTCData, 2, rec.callback)

	require.Len(t, rec.answers, 1)
	ping, ok := rec.last(t).response.(*model.Ping)
	require.True(t, ok)
	assert.False(t, ping.CmpLoaded)
	assert.Equal(t, constants.CmpStatusStub, ping.CmpStatus)

	queue, ok := global.Call().([]Args)
	require.True(t, ok)
	require.Len(t, queue, 1)
	assert.Equal(t, constants.CommandGetTCData, queue[0][0])
}

func TestInstallStub_KeepsExistingEntryPoint(t *testing.T) {
	global := NewGlobal()
	api, err := NewCmpApi(global, 10, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, api)

	InstallStub(global)
	rec := &recorder{}
	global.Call(constants.CommandPing, 2, rec.callback)

	ping := rec.last(t).response.(*model.Ping)
	assert.True(t, ping.CmpLoaded)
}

func TestQueuedCallsReplayedOnceBeforeNewCalls(t *testing.T) {
	global := NewGlobal()
	InstallStub(global)

	var order []string
	params := map[string]bool{"tcString": true}
	handler := new(MockHandler)
	handler.On("Invoke", params).Return("tc-data").Once()
	queued := func(response any, success bool) {
		order = append(order, "queued")
		assert.Equal(t, "tc-data", response)
		assert.True(t, success)
	}
	global.Call(constants.CommandGetTCData, 2, queued, params)

	api, err := NewCmpApi(global, 10, 1, command.Registry{constants.CommandGetTCData: handler})
	require.NoError(t, err)
	require.NotNil(t, api)
	assert.Equal(t, []string{"queued"}, order)

	global.Call(constants.CommandPing, 2, func(any, bool) { order = append(order, "new") })
	assert.Equal(t, []string{"queued", "new"}, order)

	require.NoError(t, api.SetTCModel(testRecord(t)))
	assert.Equal(t, []string{"queued", "new"}, order, "queue is not replayed twice")
	handler.AssertExpectations(t)
}

func TestCallsDuringDrainRunAfterQueuedCalls(t *testing.T) {
	global := NewGlobal()
	InstallStub(global)

	var order []string
	note := func(name string) model.Callback {
		return func(any, bool) { order = append(order, name) }
	}
	custom := command.Registry{
		"first": command.HandlerFunc(func(callback model.Callback, _ ...any) {
			global.Call("third", 2, note("third"))
			callback(nil, true)
		}),
		"second": command.HandlerFunc(func(callback model.Callback, _ ...any) { callback(nil, true) }),
		"third":  command.HandlerFunc(func(callback model.Callback, _ ...any) { callback(nil, true) }),
	}
	global.Call("first", 2, note("first"))
	global.Call("second", 2, note("second"))

	_, err := NewCmpApi(global, 10, 1, custom)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestQueuedCallWithoutCallbackIsDropped(t *testing.T) {
	global := NewGlobal()
	InstallStub(global)
	rec := &recorder{}
	global.Call(constants.CommandGetTCData, 2, nil)
	global.Call(constants.CommandGetTCData, 2, rec.callback)

	_, err := NewCmpApi(global, 10, 1, nil)
	require.NoError(t, err)

	require.Len(t, rec.answers, 1)
	assert.True(t, rec.last(t).success)
}

func TestQueuedCallPanicDoesNotStopDrain(t *testing.T) {
	global := NewGlobal()
	InstallStub(global)
	rec := &recorder{}
	global.Call("boom", 2, rec.callback)
	global.Call(constants.CommandGetTCData, 2, rec.callback)

	custom := command.Registry{
		"boom": command.HandlerFunc(func(model.Callback, ...any) { panic("handler failed") }),
	}
	var api *CmpApi
	var err error
	require.NotPanics(t, func() { api, err = NewCmpApi(global, 10, 1, custom) })
	require.NoError(t, err)
	require.NotNil(t, api)

	require.Len(t, rec.answers, 1)
	assert.True(t, rec.last(t).success)
	assert.IsType(t, &model.TCData{}, rec.last(t).response)

	// The api stays installed and serves new calls.
	global.Call(constants.CommandPing, 2, rec.callback)
	assert.IsType(t, &model.Ping{}, rec.last(t).response)
}

func TestRecordedCalls_IgnoresNonStubOccupants(t *testing.T) {
	global := NewGlobal()
	global.Store(func(args ...any) any { panic("not a stub") })
	_, err := NewCmpApi(global, 10, 1, nil)
	require.NoError(t, err)

	global = NewGlobal()
	global.Store(func(args ...any) any { return "something else" })
	_, err = NewCmpApi(global, 10, 1, nil)
	require.NoError(t, err)

	// A second CMP installing over a live one finds nothing to replay.
	_, err = NewCmpApi(global, 11, 1, nil)
	require.NoError(t, err)
	rec := &recorder{}
	global.Call(constants.CommandPing, 2, rec.callback)
	assert.Equal(t, 11, rec.last(t).response.(*model.Ping).CmpID)
}

func TestRecordedCalls_AcceptsPlainQueue(t *testing.T) {
	global := NewGlobal()
	rec := &recorder{}
	global.Store(func(args ...any) any {
		return [][]any{{constants.CommandPing, 2, rec.callback}}
	})

	_, err := NewCmpApi(global, 10, 1, nil)
	require.NoError(t, err)

	require.Len(t, rec.answers, 1)
	assert.IsType(t, &model.Ping{}, rec.last(t).response)
}

func TestSetTCModel(t *testing.T) {
	api, global := newTestApi(t, nil)
	record := testRecord(t)

	require.NoError(t, api.SetTCModel(record))
	want, err := encoder.Encode(record, record.Version)
	require.NoError(t, err)
	assert.Equal(t, want, api.TCString())

	// Later changes by the caller are not visible.
	require.NoError(t, record.VendorConsents.Set(99))

	rec := &recorder{}
	global.Call(constants.CommandGetTCData, 2, rec.callback)
	got := rec.last(t)
	require.True(t, got.success)
	data := got.response.(*model.TCData)
	assert.Equal(t, want, data.TCString)
	assert.Equal(t, constants.EventStatusTCLoaded, data.EventStatus)
	assert.Equal(t, constants.CmpStatusLoaded, data.CmpStatus)
	assert.Equal(t, tcfmodel.IntMap{1: false, 2: false, 3: false, 4: true, 5: false, 6: false, 7: false, 8: true},
		data.Vendor.Consents)
	require.NotNil(t, data.GdprApplies)
	assert.True(t, *data.GdprApplies)
}

func TestSetTCModel_ZeroValueRecord(t *testing.T) {
	api, global := newTestApi(t, nil)
	record := &tcfmodel.TCModel{
		Version:              tcfmodel.DefaultVersion,
		ConsentLanguage:      tcfmodel.DefaultConsentLanguage,
		PublisherCountryCode: tcfmodel.DefaultPublisherCountryCode,
	}

	require.NotPanics(t, func() { require.NoError(t, api.SetTCModel(record)) })
	assert.NotEmpty(t, api.TCString())

	rec := &recorder{}
	global.Call(constants.CommandGetTCData, 2, rec.callback)
	got := rec.last(t)
	require.True(t, got.success)
	data := got.response.(*model.TCData)
	assert.Empty(t, data.Vendor.Consents)
	assert.Empty(t, data.Publisher.Restrictions)
}

func TestSetTCModel_InvalidRecord(t *testing.T) {
	api, _ := newTestApi(t, nil)
	record := testRecord(t)
	record.CmpID = 1 << 12

	err := api.SetTCModel(record)
	assert.ErrorIs(t, err, errors.ErrRangeOverflow)
	assert.Empty(t, api.TCString())
}

func TestSetTCString(t *testing.T) {
	api, global := newTestApi(t, nil)
	tcString, err := encoder.Encode(testRecord(t), 2)
	require.NoError(t, err)

	require.NoError(t, api.SetTCString(tcString))

	rec := &recorder{}
	global.Call(constants.CommandPing, 2, rec.callback)
	ping := rec.last(t).response.(*model.Ping)
	assert.Equal(t, 55, ping.GvlVersion)
	assert.Equal(t, constants.CmpStatusLoaded, ping.CmpStatus)

	err = api.SetTCString("C*AAAA")
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Equal(t, tcString, api.TCString(), "failed decode keeps the current record")
}

func TestSetTCString_GdprDoesNotApply(t *testing.T) {
	api, global := newTestApi(t, nil)
	require.NoError(t, api.SetTCString(""))

	rec := &recorder{}
	global.Call(constants.CommandGetTCData, 2, rec.callback)
	data := rec.last(t).response.(*model.TCData)
	require.NotNil(t, data.GdprApplies)
	assert.False(t, *data.GdprApplies)
	assert.Empty(t, data.TCString)
	assert.Nil(t, data.Vendor.Consents)
}

func TestEventListeners(t *testing.T) {
	api, global := newTestApi(t, nil)
	rec := &recorder{}

	global.Call(constants.CommandAddEventListener, 2, rec.callback)
	require.NoError(t, api.SetTCModel(testRecord(t)))
	require.NoError(t, api.SetUIVisible(true))
	require.NoError(t, api.SetTCModel(testRecord(t)))

	require.Len(t, rec.answers, 4)
	var statuses []string
	for _, a := range rec.answers {
		data := a.response.(*model.TCData)
		require.NotNil(t, data.ListenerID)
		assert.Equal(t, 1, *data.ListenerID)
		statuses = append(statuses, data.EventStatus)
	}
	assert.Equal(t, []string{"", constants.EventStatusTCLoaded, constants.EventStatusCmpUIShown,
		constants.EventStatusUserActionComplete}, statuses)

	removed := &recorder{}
	global.Call(constants.CommandRemoveEventListener, 2, removed.callback, 1)
	assert.Equal(t, answer{response: true, success: true}, removed.last(t))

	require.NoError(t, api.SetTCModel(testRecord(t)))
	assert.Len(t, rec.answers, 4)
}
