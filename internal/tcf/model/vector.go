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

package model

import (
	"iter"
	"slices"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
)

// IntMap maps positive ids to a value, as page scripts see vector contents.
type IntMap map[int]bool

// Vector is a set of positive integer ids that also tracks its highest id.
// The zero value is an empty vector ready for use. The read-only methods
// also accept a nil *Vector and treat it as empty.
type Vector struct {
	// BitLength is the number of bits this vector occupied in the TC string
	// it was decoded from. Any mutation resets it to zero.
	BitLength int

	maxID int
	ids   map[int]struct{}
}

// NewVector returns a vector holding ids.
func NewVector(ids ...int) (*Vector, error) {
	v := &Vector{}
	if err := v.Set(ids...); err != nil {
		return nil, err
	}
	return v, nil
}

// MaxID returns the highest id this vector has held since it was last
// emptied by Unset. Empty leaves it untouched.
func (v *Vector) MaxID() int {
	if v == nil {
		return 0
	}
	return v.maxID
}

// Size returns the number of ids present.
func (v *Vector) Size() int {
	if v == nil {
		return 0
	}
	return len(v.ids)
}

// Has reports whether id is present.
func (v *Vector) Has(id int) bool {
	if v == nil {
		return false
	}
	_, ok := v.ids[id]
	return ok
}

// Set adds ids. Nothing is added unless every id is a positive integer.
func (v *Vector) Set(ids ...int) error {
	for _, id := range ids {
		if id <= 0 {
			return errors.NewClientErrorf(errors.INVALID_VECTOR_ID, errors.KindValidation,
				"set(): %d must be positive integer", id)
		}
	}
	if v.ids == nil {
		v.ids = make(map[int]struct{}, len(ids))
	}
	for _, id := range ids {
		v.ids[id] = struct{}{}
		v.maxID = max(v.maxID, id)
		v.BitLength = 0
	}
	return nil
}

// Unset removes ids. Removing the current max id triggers one rescan.
func (v *Vector) Unset(ids ...int) {
	rescan := false
	for _, id := range ids {
		if _, ok := v.ids[id]; !ok {
			continue
		}
		delete(v.ids, id)
		v.BitLength = 0
		rescan = rescan || id == v.maxID
	}
	if rescan {
		v.maxID = 0
		for member := range v.ids {
			v.maxID = max(v.maxID, member)
		}
	}
}

// Empty removes every id but keeps MaxID, so a dense walk still covers the
// previous range. Deployed encoders behave the same way.
func (v *Vector) Empty() {
	v.ids = make(map[int]struct{})
}

// SetAll sets every key of intMap. The mapped value is ignored: a key
// mapped to false is still set.
func (v *Vector) SetAll(intMap IntMap) error {
	ids := make([]int, 0, len(intMap))
	for id := range intMap {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return v.Set(ids...)
}

// All walks ids 1 through MaxID inclusive, yielding whether each is present.
// Every call starts a fresh walk over the current contents.
func (v *Vector) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for id := 1; id <= v.MaxID(); id++ {
			if !yield(id, v.Has(id)) {
				return
			}
		}
	}
}

// IDs returns the present ids in ascending order.
func (v *Vector) IDs() []int {
	if v == nil {
		return []int{}
	}
	ids := make([]int, 0, len(v.ids))
	for id := range v.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ToIntMap returns every id from 1 to MaxID mapped to its presence.
func (v *Vector) ToIntMap() IntMap {
	out := make(IntMap, v.MaxID())
	for id, present := range v.All() {
		out[id] = present
	}
	return out
}

// Filter returns the presence of each requested id, whether or not it is
// within MaxID.
func (v *Vector) Filter(ids []int) IntMap {
	out := make(IntMap, len(ids))
	for _, id := range ids {
		out[id] = v.Has(id)
	}
	return out
}

// Equal reports whether both vectors hold the same ids.
func (v *Vector) Equal(other *Vector) bool {
	if other == nil {
		return v.Size() == 0
	}
	if v.Size() != other.Size() {
		return false
	}
	if v == nil {
		return true
	}
	for id := range v.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy, including MaxID and BitLength.
func (v *Vector) Clone() *Vector {
	if v == nil {
		return &Vector{}
	}
	c := &Vector{
		BitLength: v.BitLength,
		maxID:     v.maxID,
		ids:       make(map[int]struct{}, len(v.ids)),
	}
	for id := range v.ids {
		c.ids[id] = struct{}{}
	}
	return c
}
