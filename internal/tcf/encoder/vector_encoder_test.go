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

package encoder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/tcf/model"
	"github.com/wso2/identity-tcf-consent/internal/tcf/schema"
)

const decodeTimeLimit = 2 * time.Second

type craftedRestriction struct {
	purposeID       int
	restrictionType model.RestrictionType
	ranges          []idRange
}

// coreWithRestrictions writes a valid v2 core segment whose restriction
// section is written verbatim from restrictions, without validation.
func coreWithRestrictions(t *testing.T, restrictions []craftedRestriction) string {
	t.Helper()
	seq, ok := schema.Lookup(2)
	require.True(t, ok)
	m := sampleModel(t)
	codec := fieldCodec{version: 2}

	w := &bitWriter{}
	for _, field := range seq.Core().Fields {
		if field != schema.FieldPublisherRestrictions {
			require.NoError(t, codec.encode(w, m, field))
			continue
		}
		require.NoError(t, w.writeInt(len(restrictions), schema.BitsNumRestrictions, field))
		for _, cr := range restrictions {
			require.NoError(t, w.writeInt(cr.purposeID, schema.BitsPurposeID, field))
			require.NoError(t, w.writeInt(int(cr.restrictionType), schema.BitsRestrictionType, field))
			require.NoError(t, writeRanges(w, cr.ranges, field))
		}
	}
	return encodeSegment(w)
}

// vendorVectorBits writes a range encoded vendor vector with the given
// maxId header, without validating the entries.
func vendorVectorBits(t *testing.T, maxID int, ranges []idRange) *bitReader {
	t.Helper()
	w := &bitWriter{}
	require.NoError(t, w.writeInt(maxID, schema.BitsMaxID, schema.FieldVendorConsents))
	w.writeBool(true)
	require.NoError(t, writeRanges(w, ranges, schema.FieldVendorConsents))
	return newBitReader(w.bytes(), schema.SegmentCore)
}

func decodeWithin(t *testing.T, s string) (*model.TCModel, error) {
	t.Helper()
	type result struct {
		m   *model.TCModel
		err error
	}
	done := make(chan result, 1)
	go func() {
		m, _, err := Decode(s)
		done <- result{m, err}
	}()
	select {
	case r := <-done:
		return r.m, r.err
	case <-time.After(decodeTimeLimit):
		t.Fatalf("decoding did not finish within %s", decodeTimeLimit)
		return nil, nil
	}
}

func TestDecodeRestrictions_Bounded(t *testing.T) {
	full := []idRange{{start: 1, end: maxExpandedIDs}}

	overlapping := make([]idRange, 1<<schema.BitsNumEntries-1)
	for i := range overlapping {
		overlapping[i] = idRange{start: 1, end: maxExpandedIDs}
	}

	var everyRestriction []craftedRestriction
	for purposeID := 1; purposeID <= model.MaxRestrictionPurposeID; purposeID++ {
		for _, rt := range []model.RestrictionType{
			model.RestrictionNotAllowed, model.RestrictionRequireConsent, model.RestrictionRequireLegitInt,
		} {
			everyRestriction = append(everyRestriction, craftedRestriction{purposeID, rt, full})
		}
	}

	tests := []struct {
		name         string
		restrictions []craftedRestriction
		wantErr      error
	}{
		{
			name:         "overlapping entries in one restriction",
			restrictions: []craftedRestriction{{2, model.RestrictionNotAllowed, overlapping}},
			wantErr:      errors.ErrValidation,
		},
		{
			name:         "full range under every restriction",
			restrictions: everyRestriction,
			wantErr:      errors.ErrRangeOverflow,
		},
		{
			name: "descending entries",
			restrictions: []craftedRestriction{
				{3, model.RestrictionRequireConsent, []idRange{{start: 10, end: 12}, {start: 4, end: 4}}},
			},
			wantErr: errors.ErrValidation,
		},
		{
			name: "vendor zero",
			restrictions: []craftedRestriction{
				{3, model.RestrictionRequireConsent, []idRange{{start: 0, end: 4}}},
			},
			wantErr: errors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := decodeWithin(t, coreWithRestrictions(t, tt.restrictions))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, m)
		})
	}
}

func TestDecodeRestrictions_FullVendorRangeIsAccepted(t *testing.T) {
	pr := model.PurposeRestriction{PurposeID: 5, RestrictionType: model.RestrictionRequireLegitInt}
	s := coreWithRestrictions(t, []craftedRestriction{
		{pr.PurposeID, pr.RestrictionType, []idRange{{start: 1, end: maxExpandedIDs}}},
	})

	m, err := decodeWithin(t, s)
	require.NoError(t, err)
	assert.Len(t, m.PublisherRestrictions.Vendors(pr), maxExpandedIDs)
	assert.Equal(t, maxExpandedIDs, m.PublisherRestrictions.MaxVendorID())
}

func TestDecodeVendorVector_RangeValidation(t *testing.T) {
	tests := []struct {
		name    string
		maxID   int
		ranges  []idRange
		want    []int
		wantErr error
	}{
		{name: "valid", maxID: 9, ranges: []idRange{{1, 2}, {5, 5}, {8, 9}}, want: []int{1, 2, 5, 8, 9}},
		{name: "ends past maxId", maxID: 10, ranges: []idRange{{1, maxExpandedIDs}}, wantErr: errors.ErrRangeOverflow},
		{name: "single past maxId", maxID: 10, ranges: []idRange{{11, 11}}, wantErr: errors.ErrRangeOverflow},
		{name: "overlapping", maxID: 8, ranges: []idRange{{1, 5}, {3, 8}}, wantErr: errors.ErrValidation},
		{name: "repeated single", maxID: 8, ranges: []idRange{{4, 4}, {4, 4}}, wantErr: errors.ErrValidation},
		{name: "starts at zero", maxID: 8, ranges: []idRange{{0, 3}}, wantErr: errors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decodeVendorVector(vendorVectorBits(t, tt.maxID, tt.ranges), 2, schema.FieldVendorConsents)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.IDs())
		})
	}
}

func TestExpandRanges(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 7, 10, 11}, expandRanges([]idRange{{1, 3}, {7, 7}, {10, 11}}))
	assert.Empty(t, expandRanges(nil))
}
