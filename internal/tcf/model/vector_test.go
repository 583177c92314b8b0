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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
)

type idPresence struct {
	id      int
	present bool
}

func collect(v *Vector) []idPresence {
	var out []idPresence
	for id, present := range v.All() {
		out = append(out, idPresence{id, present})
	}
	return out
}

func TestVector_SetAndHas(t *testing.T) {
	for _, id := range []int{1, 2, 7, 24, 300, 65535} {
		v := &Vector{}
		require.NoError(t, v.Set(id))
		assert.True(t, v.Has(id))
		assert.GreaterOrEqual(t, v.MaxID(), id)

		v.Unset(id)
		assert.False(t, v.Has(id))
	}
}

func TestVector_SetRejectsNonPositiveIds(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
	}{
		{"zero", []int{0}},
		{"negative", []int{-3}},
		{"one bad id among good ones", []int{1, 2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Vector{}
			err := v.Set(tt.ids...)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrValidation)
			assert.Equal(t, 0, v.Size(), "no id is added when any id is invalid")
			assert.Equal(t, 0, v.MaxID())
		})
	}
}

func TestVector_DenseWalk(t *testing.T) {
	v, err := NewVector(2, 5)
	require.NoError(t, err)

	expected := []idPresence{{1, false}, {2, true}, {3, false}, {4, false}, {5, true}}
	assert.Equal(t, expected, collect(v))
	assert.Equal(t, expected, collect(v), "walk is restartable")

	require.NoError(t, v.Set(6))
	assert.Len(t, collect(v), 6, "walk reflects later mutations")
}

func TestVector_WalkStopsEarly(t *testing.T) {
	v, err := NewVector(10)
	require.NoError(t, err)

	seen := 0
	for range v.All() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestVector_UnsetMaxRescans(t *testing.T) {
	v, err := NewVector(3, 9, 4)
	require.NoError(t, err)
	assert.Equal(t, 9, v.MaxID())

	v.Unset(9)
	assert.Equal(t, 4, v.MaxID())

	v.Unset(3)
	assert.Equal(t, 4, v.MaxID(), "removing a non-max id keeps the max")

	v.Unset(4)
	assert.Equal(t, 0, v.MaxID())
	assert.Equal(t, 0, v.Size())
}

func TestVector_MutationClearsBitLength(t *testing.T) {
	v, err := NewVector(1)
	require.NoError(t, err)

	v.BitLength = 40
	require.NoError(t, v.Set(2))
	assert.Equal(t, 0, v.BitLength)

	v.BitLength = 40
	v.Unset(2)
	assert.Equal(t, 0, v.BitLength)
}

func TestVector_EmptyKeepsMaxID(t *testing.T) {
	v, err := NewVector(1, 3)
	require.NoError(t, err)

	v.Empty()
	assert.Equal(t, 0, v.Size())
	assert.False(t, v.Has(3))
	assert.Equal(t, 3, v.MaxID())
	assert.Equal(t, []idPresence{{1, false}, {2, false}, {3, false}}, collect(v))
}

func TestVector_SetAllIgnoresMappedValue(t *testing.T) {
	v := &Vector{}
	require.NoError(t, v.SetAll(IntMap{1: true, 4: false, 2: true}))

	assert.True(t, v.Has(1))
	assert.True(t, v.Has(2))
	assert.True(t, v.Has(4), "keys mapped to false are still set")
	assert.Equal(t, 4, v.MaxID())
}

func TestVector_ToIntMapAndFilter(t *testing.T) {
	v, err := NewVector(1, 3)
	require.NoError(t, err)

	assert.Equal(t, IntMap{1: true, 2: false, 3: true}, v.ToIntMap())
	assert.Equal(t, IntMap{3: true, 8: false}, v.Filter([]int{3, 8}))
}

func TestVector_EqualAndClone(t *testing.T) {
	a, err := NewVector(5, 1, 3)
	require.NoError(t, err)
	b := a.Clone()

	assert.True(t, a.Equal(b))
	assert.Equal(t, []int{1, 3, 5}, b.IDs())

	b.Unset(5)
	assert.False(t, a.Equal(b))
	assert.True(t, a.Has(5), "clone is independent")

	assert.True(t, (&Vector{}).Equal(nil))
}

func TestVector_NilReceiverIsEmpty(t *testing.T) {
	var v *Vector

	assert.Equal(t, 0, v.MaxID())
	assert.Equal(t, 0, v.Size())
	assert.False(t, v.Has(1))
	assert.Empty(t, v.IDs())
	assert.Empty(t, v.ToIntMap())
	assert.Equal(t, IntMap{2: false}, v.Filter([]int{2}))
	for range v.All() {
		t.Fatal("nil vector yields no ids")
	}
	assert.True(t, v.Equal(&Vector{}))
	assert.True(t, (&Vector{}).Equal(v))

	c := v.Clone()
	require.NotNil(t, c)
	require.NoError(t, c.Set(4))
	assert.Equal(t, 4, c.MaxID())
}

func TestVector_UnsetRescansMaxOnce(t *testing.T) {
	v, err := NewVector(1, 2, 9, 10)
	require.NoError(t, err)

	v.Unset(10, 9, 42)
	assert.Equal(t, 2, v.MaxID())
	assert.Equal(t, []int{1, 2}, v.IDs())
}
