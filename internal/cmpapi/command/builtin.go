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

package command

import (
	"math"

	"github.com/wso2/identity-tcf-consent/internal/cmpapi/model"
	"github.com/wso2/identity-tcf-consent/internal/system/constants"
	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/system/log"
)

// NewBuiltinRegistry returns the handlers for the commands every CMP serves.
func NewBuiltinRegistry(state *model.CmpApiModel, listeners *EventListenerQueue) Registry {
	return Registry{
		constants.CommandPing:                pingCommand{state: state},
		constants.CommandGetTCData:           getTCDataCommand{state: state},
		constants.CommandGetInAppTCData:      getInAppTCDataCommand{state: state},
		constants.CommandAddEventListener:    addEventListenerCommand{state: state, listeners: listeners},
		constants.CommandRemoveEventListener: removeEventListenerCommand{listeners: listeners},
	}
}

type pingCommand struct {
	state *model.CmpApiModel
}

func (c pingCommand) Invoke(callback model.Callback, _ ...any) {
	callback(model.NewPing(c.state), true)
}

type getTCDataCommand struct {
	state *model.CmpApiModel
}

func (c getTCDataCommand) Invoke(callback model.Callback, params ...any) {
	vendorIDs, err := vendorIDParam(params)
	if err != nil {
		log.GetLogger().Debug("Rejected getTCData parameter", log.Error(err))
		callback(err.Detail(), false)
		return
	}
	callback(model.NewTCData(c.state, vendorIDs, nil), true)
}

type getInAppTCDataCommand struct {
	state *model.CmpApiModel
}

func (c getInAppTCDataCommand) Invoke(callback model.Callback, _ ...any) {
	callback(model.NewInAppTCData(c.state), true)
}

type addEventListenerCommand struct {
	state     *model.CmpApiModel
	listeners *EventListenerQueue
}

// Invoke registers the callback and answers it once right away with the
// current TC data. Later changes are pushed through the listener queue.
func (c addEventListenerCommand) Invoke(callback model.Callback, params ...any) {
	id := c.listeners.Add(callback, params)
	callback(model.NewTCData(c.state, nil, &id), true)
}

type removeEventListenerCommand struct {
	listeners *EventListenerQueue
}

func (c removeEventListenerCommand) Invoke(callback model.Callback, params ...any) {
	if len(params) == 0 {
		callback(false, false)
		return
	}
	id, ok := toInt(params[0])
	if !ok {
		callback(false, false)
		return
	}
	removed := c.listeners.Remove(id)
	callback(removed, removed)
}

// DisabledHandler answers every command of a disabled CMP API with the same
// payload and success=false.
type DisabledHandler struct {
	State *model.CmpApiModel
}

// Invoke implements Handler.
func (h DisabledHandler) Invoke(callback model.Callback, _ ...any) {
	callback(model.NewDisabled(h.State), false)
}

// vendorIDParam reads the optional vendor id filter of getTCData. A missing
// or nil parameter means no filter.
func vendorIDParam(params []any) ([]int, *errors.ClientError) {
	if len(params) == 0 || params[0] == nil {
		return nil, nil
	}
	switch ids := params[0].(type) {
	case []int:
		return ids, nil
	case []any:
		out := make([]int, 0, len(ids))
		for _, raw := range ids {
			id, ok := toInt(raw)
			if !ok {
				return nil, errors.NewClientErrorf(errors.INVALID_PARAMETER, errors.KindValidation,
					"%v is not a vendor id", raw)
			}
			out = append(out, id)
		}
		return out, nil
	default:
		return nil, errors.NewClientErrorf(errors.INVALID_PARAMETER, errors.KindValidation, "%v", params[0])
	}
}

// toInt accepts integral values of the numeric types page scripts produce.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
