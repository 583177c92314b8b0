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
	"fmt"
	"strconv"

	"github.com/wso2/identity-tcf-consent/internal/cmpapi/command"
	"github.com/wso2/identity-tcf-consent/internal/cmpapi/model"
	"github.com/wso2/identity-tcf-consent/internal/system/constants"
	systemcontext "github.com/wso2/identity-tcf-consent/internal/system/context"
	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/system/log"
	"github.com/wso2/identity-tcf-consent/internal/tcf/encoder"
	tcfmodel "github.com/wso2/identity-tcf-consent/internal/tcf/model"
)

// CmpApi owns the page entry point and the state it reports. All methods
// must be called from the page's single thread of execution.
type CmpApi struct {
	global    *Global
	state     *model.CmpApiModel
	builtins  command.Registry
	custom    command.Registry
	listeners *command.EventListenerQueue

	queue    []Args
	draining bool

	sessionID string
	logger    *log.Logger
}

// NewCmpApi installs a CMP API into global. Calls recorded by a stub already
// occupying the slot are replayed before NewCmpApi returns. Custom commands
// take precedence over built-in commands of the same name.
func NewCmpApi(global *Global, cmpID, cmpVersion int, customCommands command.Registry) (*CmpApi, error) {
	if cmpID < constants.MinCmpID {
		return nil, errors.NewClientErrorf(errors.INVALID_CMP_ID, errors.KindValidation,
			"cmpId %d is below %d", cmpID, constants.MinCmpID)
	}
	if cmpVersion < 0 {
		return nil, errors.NewClientErrorf(errors.INVALID_CMP_VERSION, errors.KindValidation,
			"cmpVersion %d is negative", cmpVersion)
	}

	sessionID := systemcontext.GenerateSessionID()
	state := model.NewCmpApiModel(cmpID, cmpVersion)
	listeners := command.NewEventListenerQueue()
	api := &CmpApi{
		global:    global,
		state:     state,
		builtins:  command.NewBuiltinRegistry(state, listeners),
		custom:    customCommands.Clone(),
		listeners: listeners,
		sessionID: sessionID,
		logger:    log.GetLogger().With(log.Session(sessionID)),
	}

	queue := recordedCalls(global)
	global.Store(api.handle)
	api.queue = queue
	api.logger.Audit(log.AuditEvent{
		InitiatorID:   strconv.Itoa(cmpID),
		InitiatorType: log.InitiatorTypeCmp,
		TargetID:      global.Name(),
		TargetType:    log.TargetTypeCmpApi,
		ActionID:      log.ActionInstallCmpApi,
		SessionID:     sessionID,
		Data:          map[string]int{"cmpVersion": cmpVersion, "queuedCalls": len(queue)},
	})

	api.drain()
	return api, nil
}

// recordedCalls asks the current occupant of the slot for its recorded calls.
// Anything that is not a stub, including an occupant that panics, yields none.
func recordedCalls(global *Global) (queue []Args) {
	previous := global.Load()
	if previous == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			log.GetLogger().Debug("Previous entry point did not return a queue", log.Any("panic", r))
			queue = nil
		}
	}()
	switch q := previous().(type) {
	case []Args:
		return q
	case [][]any:
		out := make([]Args, len(q))
		for i, call := range q {
			out[i] = call
		}
		return out
	default:
		return nil
	}
}

// drain replays recorded calls in order. Calls arriving while the drain runs
// are appended and served after everything recorded before them.
func (a *CmpApi) drain() {
	if a.draining || len(a.queue) == 0 {
		return
	}
	a.draining = true
	defer func() {
		a.draining = false
		a.queue = nil
	}()

	a.logger.Debug("Replaying queued page calls", log.Int("calls", len(a.queue)))
	for len(a.queue) > 0 {
		call := a.queue[0]
		a.queue = a.queue[1:]
		a.replay(call)
	}
}

// replay serves one recorded call. A recorded call has no caller left to
// report a failure to, so a panic is logged and the drain moves on.
func (a *CmpApi) replay(call Args) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(error); ok && errors.Is(err, errors.ErrCallerContract) {
			a.logger.Warn("Dropped queued page call", log.Error(err))
			return
		}
		a.logger.Error("Queued page call panicked", log.Command(queuedCommand(call)),
			log.Any("panic", r))
	}()
	a.serve(call...)
}

func queuedCommand(call Args) string {
	if len(call) == 0 {
		return ""
	}
	name, _ := call[0].(string)
	return name
}

// handle is the published entry point.
func (a *CmpApi) handle(args ...any) any {
	if a.draining {
		a.queue = append(a.queue, append(Args(nil), args...))
		return nil
	}
	a.serve(args...)
	return nil
}

// serve validates one page call and routes it. Rejections are answered
// through the callback with success=false. A call without a callable
// callback panics with a caller contract error.
func (a *CmpApi) serve(args ...any) {
	var name, version, rawCallback any
	var params []any
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		version = args[1]
	}
	if len(args) > 2 {
		rawCallback = args[2]
	}
	if len(args) > 3 {
		params = args[3:]
	}
	callback, callable := asCallback(rawCallback)

	commandName, ok := name.(string)
	if !ok {
		a.reject(callback, callable, errors.NewClientErrorf(errors.INVALID_COMMAND, errors.KindProtocol,
			"%v", name))
		return
	}
	if !isApiVersion(version) {
		a.reject(callback, callable, errors.NewClientErrorf(errors.UNSUPPORTED_API_VERSION, errors.KindProtocol,
			"%v", version))
		return
	}
	if !callable {
		panic(errors.NewClientError(errors.INVALID_CALLBACK, errors.KindCallerContract))
	}

	logger := a.logger.With(log.Command(commandName))
	if a.state.Disabled {
		logger.Debug("Answering page call of disabled CMP API")
		command.DisabledHandler{State: a.state}.Invoke(callback, params...)
		return
	}
	if h, ok := a.custom.Lookup(commandName); ok {
		logger.Debug("Routing page call to custom command")
		h.Invoke(callback, params...)
		return
	}
	if h, ok := a.builtins.Lookup(commandName); ok {
		logger.Debug("Routing page call to built-in command")
		h.Invoke(callback, params...)
		return
	}
	a.reject(callback, callable, errors.NewClientErrorf(errors.UNSUPPORTED_COMMAND, errors.KindProtocol,
		"%q", commandName))
}

func (a *CmpApi) reject(callback model.Callback, callable bool, err *errors.ClientError) {
	if !callable {
		panic(errors.NewClientError(errors.INVALID_CALLBACK, errors.KindCallerContract))
	}
	a.logger.Debug("Rejected page call", log.Error(err))
	callback(err.Detail(), false)
}

// isApiVersion accepts the numeric forms of version 2.
func isApiVersion(v any) bool {
	switch n := v.(type) {
	case int:
		return n == constants.ApiVersion
	case int64:
		return n == constants.ApiVersion
	case float64:
		return n == constants.ApiVersion
	default:
		return false
	}
}

// SetTCString publishes a new TC string. An empty string means GDPR does not
// apply. A string that does not decode leaves the current record in place.
func (a *CmpApi) SetTCString(tcString string) error {
	if err := a.checkEnabled(); err != nil {
		return err
	}
	if tcString == "" {
		a.update("", nil)
		a.audit(log.ActionSetTCString, map[string]any{"gdprApplies": false})
		return nil
	}

	m, version, err := encoder.Decode(tcString)
	if err != nil {
		a.logger.Error("Failed to decode TC string", log.Error(err))
		return errors.Wrapf(err, "set TC string")
	}
	a.update(tcString, m)
	a.audit(log.ActionSetTCString, map[string]any{"gdprApplies": true, "version": version})
	return nil
}

// SetTCModel publishes a new record, encoded with its own version. A nil
// record means GDPR does not apply. The record is copied, so later changes by
// the caller are not seen until it is set again.
func (a *CmpApi) SetTCModel(m *tcfmodel.TCModel) error {
	if err := a.checkEnabled(); err != nil {
		return err
	}
	if m == nil {
		a.update("", nil)
		a.audit(log.ActionSetTCModel, map[string]any{"gdprApplies": false})
		return nil
	}

	record := m.Clone()
	tcString, err := encoder.Encode(record, record.Version)
	if err != nil {
		a.logger.Error("Failed to encode TC model", log.Error(err))
		return errors.Wrapf(err, "set TC model")
	}
	a.update(tcString, record)
	a.audit(log.ActionSetTCModel, map[string]any{"gdprApplies": true, "version": record.Version})
	return nil
}

// SetUIVisible records whether the consent UI is showing. Showing the UI
// notifies event listeners with the cmpuishown status.
func (a *CmpApi) SetUIVisible(visible bool) error {
	if err := a.checkEnabled(); err != nil {
		return err
	}
	a.state.UIVisible = visible
	a.logger.Debug("Consent UI visibility changed", log.Bool("visible", visible))
	if visible {
		a.state.DisplayStatus = constants.DisplayStatusVisible
		a.state.EventStatus = constants.EventStatusCmpUIShown
		a.listeners.Notify(a.state)
	} else {
		a.state.DisplayStatus = constants.DisplayStatusHidden
	}
	a.drain()
	return nil
}

// update stores a new record and moves the event status forward: the first
// record loads, later records complete a user action.
func (a *CmpApi) update(tcString string, m *tcfmodel.TCModel) {
	applies := m != nil
	first := a.state.EventStatus == ""
	a.state.GdprApplies = &applies
	a.state.TCString = tcString
	a.state.TCModel = m
	a.state.CmpStatus = constants.CmpStatusLoaded
	if first {
		a.state.EventStatus = constants.EventStatusTCLoaded
	} else {
		a.state.EventStatus = constants.EventStatusUserActionComplete
	}
	if !applies {
		a.state.DisplayStatus = constants.DisplayStatusDisabled
	}
	a.listeners.Notify(a.state)
	a.drain()
}

// Disable makes every later page call answer with the disabled payload and
// every later setter fail. It cannot be undone.
func (a *CmpApi) Disable() {
	if a.state.Disabled {
		return
	}
	a.state.Disabled = true
	a.state.CmpStatus = constants.CmpStatusError
	a.listeners.Clear()
	a.audit(log.ActionDisableCmpApi, nil)
}

// Disabled reports whether Disable has been called.
func (a *CmpApi) Disabled() bool {
	return a.state.Disabled
}

// SessionID identifies this instance in logs and audit events.
func (a *CmpApi) SessionID() string {
	return a.sessionID
}

// TCString returns the currently published TC string.
func (a *CmpApi) TCString() string {
	return a.state.TCString
}

func (a *CmpApi) checkEnabled() error {
	if a.state.Disabled {
		return errors.NewClientError(errors.CMP_API_DISABLED, errors.KindDisabled)
	}
	return nil
}

func (a *CmpApi) audit(action string, data any) {
	a.logger.Audit(log.AuditEvent{
		InitiatorID:   strconv.Itoa(a.state.CmpID),
		InitiatorType: log.InitiatorTypeCmp,
		TargetID:      fmt.Sprintf("%s/%d", a.global.Name(), a.state.CmpVersion),
		TargetType:    targetType(action),
		ActionID:      action,
		SessionID:     a.sessionID,
		Data:          data,
	})
}

func targetType(action string) string {
	if action == log.ActionDisableCmpApi {
		return log.TargetTypeCmpApi
	}
	return log.TargetTypeTCData
}
