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

package schema

import "slices"

// Segment names an independently encoded part of a TC string.
type Segment string

const (
	SegmentCore             Segment = "core"
	SegmentVendorsDisclosed Segment = "vendorsDisclosed"
	SegmentVendorsAllowed   Segment = "vendorsAllowed"
	SegmentPublisherTC      Segment = "publisherTC"
)

var segmentTypes = map[Segment]int{
	SegmentCore:             0,
	SegmentVendorsDisclosed: 1,
	SegmentVendorsAllowed:   2,
	SegmentPublisherTC:      3,
}

// SegmentType returns the 3-bit id written ahead of an optional segment.
func SegmentType(s Segment) (int, bool) {
	id, ok := segmentTypes[s]
	return id, ok
}

// SegmentForType maps a decoded 3-bit segment id back to its segment.
func SegmentForType(id int) (Segment, bool) {
	for s, segID := range segmentTypes {
		if segID == id {
			return s, true
		}
	}
	return "", false
}

// SegmentFields is the ordered field list of one segment.
type SegmentFields struct {
	Segment Segment
	Fields  []Field
}

// Sequence is the wire layout of one TC string version: the core segment
// first, then each optional segment in the order it is written.
type Sequence []SegmentFields

// Core returns the mandatory first segment.
func (s Sequence) Core() SegmentFields {
	return s[0]
}

// Optional returns the segments after the core one.
func (s Sequence) Optional() []SegmentFields {
	return s[1:]
}

// Fields returns the ordered field list of seg, if this version has it.
func (s Sequence) Fields(seg Segment) ([]Field, bool) {
	for _, sf := range s {
		if sf.Segment == seg {
			return sf.Fields, true
		}
	}
	return nil, false
}

// Declares reports whether any segment of this version carries f.
func (s Sequence) Declares(f Field) bool {
	for _, sf := range s {
		if slices.Contains(sf.Fields, f) {
			return true
		}
	}
	return false
}

var sequences = map[int]Sequence{
	1: {
		{SegmentCore, []Field{
			FieldVersion,
			FieldCreated,
			FieldLastUpdated,
			FieldCmpID,
			FieldCmpVersion,
			FieldConsentScreen,
			FieldConsentLanguage,
			FieldVendorListVersion,
			FieldPurposeConsents,
			FieldVendorConsents,
		}},
	},
	2: {
		{SegmentCore, []Field{
			FieldVersion,
			FieldCreated,
			FieldLastUpdated,
			FieldCmpID,
			FieldCmpVersion,
			FieldConsentScreen,
			FieldConsentLanguage,
			FieldVendorListVersion,
			FieldPolicyVersion,
			FieldIsServiceSpecific,
			FieldUseNonStandardStacks,
			FieldSpecialFeatureOptIns,
			FieldPurposeConsents,
			FieldPurposeLegitimateInterests,
			FieldPurposeOneTreatment,
			FieldPublisherCountryCode,
			FieldVendorConsents,
			FieldVendorLegitimateInterests,
			FieldPublisherRestrictions,
		}},
		{SegmentPublisherTC, []Field{
			FieldPublisherConsents,
			FieldPublisherLegitimateInterests,
			FieldNumCustomPurposes,
			FieldPublisherCustomConsents,
			FieldPublisherCustomLegitimateInterests,
		}},
		{SegmentVendorsAllowed, []Field{
			FieldVendorsAllowed,
		}},
		{SegmentVendorsDisclosed, []Field{
			FieldVendorsDisclosed,
		}},
	},
}

// Lookup returns a copy of the layout for version.
func Lookup(version int) (Sequence, bool) {
	seq, ok := sequences[version]
	if !ok {
		return nil, false
	}
	out := make(Sequence, len(seq))
	for i, sf := range seq {
		out[i] = SegmentFields{Segment: sf.Segment, Fields: slices.Clone(sf.Fields)}
	}
	return out, true
}

// Versions returns the supported versions in ascending order.
func Versions() []int {
	out := make([]int, 0, len(sequences))
	for v := range sequences {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
