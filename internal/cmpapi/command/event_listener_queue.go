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
	"sort"

	"github.com/wso2/identity-tcf-consent/internal/cmpapi/model"
	"github.com/wso2/identity-tcf-consent/internal/system/log"
)

type eventListener struct {
	callback model.Callback
	params   []any
}

// EventListenerQueue holds the callbacks registered through addEventListener.
// Listener ids start at 1 and are never reused within one queue.
type EventListenerQueue struct {
	nextID    int
	listeners map[int]eventListener
}

// NewEventListenerQueue creates an empty queue.
func NewEventListenerQueue() *EventListenerQueue {
	return &EventListenerQueue{
		nextID:    1,
		listeners: make(map[int]eventListener),
	}
}

// Add registers a listener and returns its id.
func (q *EventListenerQueue) Add(callback model.Callback, params []any) int {
	id := q.nextID
	q.nextID++
	q.listeners[id] = eventListener{callback: callback, params: params}
	return id
}

// Remove drops the listener with the given id.
func (q *EventListenerQueue) Remove(id int) bool {
	if _, ok := q.listeners[id]; !ok {
		return false
	}
	delete(q.listeners, id)
	return true
}

// Len returns the number of registered listeners.
func (q *EventListenerQueue) Len() int {
	return len(q.listeners)
}

// Clear drops every listener.
func (q *EventListenerQueue) Clear() {
	q.listeners = make(map[int]eventListener)
}

// Notify sends a fresh TC data snapshot to every listener in registration
// order. A listener removed by an earlier callback is skipped.
func (q *EventListenerQueue) Notify(state *model.CmpApiModel) {
	ids := make([]int, 0, len(q.listeners))
	for id := range q.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	log.GetLogger().Debug("Notifying event listeners",
		log.Int("listeners", len(ids)), log.String("eventStatus", state.EventStatus))
	for _, id := range ids {
		l, ok := q.listeners[id]
		if !ok {
			continue
		}
		listenerID := id
		l.callback(model.NewTCData(state, nil, &listenerID), true)
	}
}
