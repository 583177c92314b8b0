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
	"github.com/wso2/identity-tcf-consent/internal/cmpapi/model"
	"github.com/wso2/identity-tcf-consent/internal/system/constants"
)

// EntryPoint is the function page scripts call as
// fn(command, version, callback, params...).
type EntryPoint func(args ...any) any

// Args is one recorded page call.
type Args []any

// Global is the page-global slot the entry point is published under.
type Global struct {
	name  string
	entry EntryPoint
}

// NewGlobal returns an empty slot named after the page API function.
func NewGlobal() *Global {
	return &Global{name: constants.ApiFunctionName}
}

// Name is the page-global name of the slot.
func (g *Global) Name() string {
	return g.name
}

// Load returns the currently published entry point, or nil.
func (g *Global) Load() EntryPoint {
	return g.entry
}

// Store publishes fn, replacing whatever was there.
func (g *Global) Store(fn EntryPoint) {
	g.entry = fn
}

// Call invokes the published entry point. It returns nil when the slot is empty.
func (g *Global) Call(args ...any) any {
	if g.entry == nil {
		return nil
	}
	return g.entry(args...)
}

// NewStub returns the placeholder entry point a page installs before the CMP
// loads. It records every call except ping, which it answers itself, and
// returns the recorded calls when invoked with no arguments.
func NewStub() EntryPoint {
	var queue []Args
	return func(args ...any) any {
		if len(args) == 0 {
			return queue
		}
		if name, ok := args[0].(string); ok && name == constants.CommandPing && len(args) > 2 {
			if callback, ok := asCallback(args[2]); ok {
				callback(model.NewStubPing(), true)
				return nil
			}
		}
		queue = append(queue, append(Args(nil), args...))
		return nil
	}
}

// InstallStub publishes a stub unless something already occupies the slot.
func InstallStub(g *Global) {
	if g.Load() == nil {
		g.Store(NewStub())
	}
}

// asCallback accepts the callback shapes page scripts pass.
func asCallback(v any) (model.Callback, bool) {
	switch fn := v.(type) {
	case model.Callback:
		return fn, fn != nil
	case func(any, bool):
		return fn, fn != nil
	default:
		return nil, false
	}
}
