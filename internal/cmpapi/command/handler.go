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
	"github.com/wso2/identity-tcf-consent/internal/cmpapi/model"
)

// Handler answers one page command. Handlers respond through the callback,
// possibly more than once for listener style commands.
type Handler interface {
	Invoke(callback model.Callback, params ...any)
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc func(callback model.Callback, params ...any)

// Invoke calls f.
func (f HandlerFunc) Invoke(callback model.Callback, params ...any) {
	f(callback, params...)
}

// Registry maps command names to handlers.
type Registry map[string]Handler

// Lookup returns the handler registered for name.
func (r Registry) Lookup(name string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r[name]
	return h, ok && h != nil
}

// Clone copies the registry so later registrations by the caller are not seen.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for name, h := range r {
		out[name] = h
	}
	return out
}
