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

// Field names one value carried by a TC string.
type Field string

const (
	FieldVersion                            Field = "version"
	FieldCreated                            Field = "created"
	FieldLastUpdated                        Field = "lastUpdated"
	FieldCmpID                              Field = "cmpId"
	FieldCmpVersion                         Field = "cmpVersion"
	FieldConsentScreen                      Field = "consentScreen"
	FieldConsentLanguage                    Field = "consentLanguage"
	FieldVendorListVersion                  Field = "vendorListVersion"
	FieldPolicyVersion                      Field = "policyVersion"
	FieldIsServiceSpecific                  Field = "isServiceSpecific"
	FieldUseNonStandardStacks               Field = "useNonStandardStacks"
	FieldSpecialFeatureOptIns               Field = "specialFeatureOptIns"
	FieldPurposeConsents                    Field = "purposeConsents"
	FieldPurposeLegitimateInterests         Field = "purposeLegitimateInterests"
	FieldPurposeOneTreatment                Field = "purposeOneTreatment"
	FieldPublisherCountryCode               Field = "publisherCountryCode"
	FieldVendorConsents                     Field = "vendorConsents"
	FieldVendorLegitimateInterests          Field = "vendorLegitimateInterests"
	FieldPublisherRestrictions              Field = "publisherRestrictions"
	FieldPublisherConsents                  Field = "publisherConsents"
	FieldPublisherLegitimateInterests       Field = "publisherLegitimateInterests"
	FieldNumCustomPurposes                  Field = "numCustomPurposes"
	FieldPublisherCustomConsents            Field = "publisherCustomConsents"
	FieldPublisherCustomLegitimateInterests Field = "publisherCustomLegitimateInterests"
	FieldVendorsAllowed                     Field = "vendorsAllowed"
	FieldVendorsDisclosed                   Field = "vendorsDisclosed"
)

// Kind selects how a field's value is packed into bits.
type Kind int

const (
	// KindBool is a single bit.
	KindBool Kind = iota + 1
	// KindInt is an unsigned integer of fixed width.
	KindInt
	// KindDate is a timestamp in deciseconds since the Unix epoch.
	KindDate
	// KindLanguage is a two-letter code, six bits per letter.
	KindLanguage
	// KindFixedVector is one bit per id from 1 to the field width.
	KindFixedVector
	// KindVendorVector is a max id, an encoding flag, then a bitfield or ranges.
	KindVendorVector
	// KindCustomVector is one bit per id up to numCustomPurposes.
	KindCustomVector
	// KindRestrictions is the publisher restriction list.
	KindRestrictions
)

// FieldSpec describes the wire form of a field. Bits is zero for
// variable-width kinds.
type FieldSpec struct {
	Field Field
	Kind  Kind
	Bits  int
}

// Widths of the sub-fields inside variable-width fields and segment headers.
const (
	BitsSegmentType     = 3
	BitsMaxID           = 16
	BitsEncodingType    = 1
	BitsDefaultConsent  = 1
	BitsNumEntries      = 12
	BitsSingleOrRange   = 1
	BitsVendorID        = 16
	BitsNumRestrictions = 12
	BitsPurposeID       = 6
	BitsRestrictionType = 2
	BitsLanguageChar    = 6
)

var fieldSpecs = map[Field]FieldSpec{
	FieldVersion:                            {FieldVersion, KindInt, 6},
	FieldCreated:                            {FieldCreated, KindDate, 36},
	FieldLastUpdated:                        {FieldLastUpdated, KindDate, 36},
	FieldCmpID:                              {FieldCmpID, KindInt, 12},
	FieldCmpVersion:                         {FieldCmpVersion, KindInt, 12},
	FieldConsentScreen:                      {FieldConsentScreen, KindInt, 6},
	FieldConsentLanguage:                    {FieldConsentLanguage, KindLanguage, 12},
	FieldVendorListVersion:                  {FieldVendorListVersion, KindInt, 12},
	FieldPolicyVersion:                      {FieldPolicyVersion, KindInt, 6},
	FieldIsServiceSpecific:                  {FieldIsServiceSpecific, KindBool, 1},
	FieldUseNonStandardStacks:               {FieldUseNonStandardStacks, KindBool, 1},
	FieldSpecialFeatureOptIns:               {FieldSpecialFeatureOptIns, KindFixedVector, 12},
	FieldPurposeConsents:                    {FieldPurposeConsents, KindFixedVector, 24},
	FieldPurposeLegitimateInterests:         {FieldPurposeLegitimateInterests, KindFixedVector, 24},
	FieldPurposeOneTreatment:                {FieldPurposeOneTreatment, KindBool, 1},
	FieldPublisherCountryCode:               {FieldPublisherCountryCode, KindLanguage, 12},
	FieldVendorConsents:                     {FieldVendorConsents, KindVendorVector, 0},
	FieldVendorLegitimateInterests:          {FieldVendorLegitimateInterests, KindVendorVector, 0},
	FieldPublisherRestrictions:              {FieldPublisherRestrictions, KindRestrictions, 0},
	FieldPublisherConsents:                  {FieldPublisherConsents, KindFixedVector, 24},
	FieldPublisherLegitimateInterests:       {FieldPublisherLegitimateInterests, KindFixedVector, 24},
	FieldNumCustomPurposes:                  {FieldNumCustomPurposes, KindInt, 6},
	FieldPublisherCustomConsents:            {FieldPublisherCustomConsents, KindCustomVector, 0},
	FieldPublisherCustomLegitimateInterests: {FieldPublisherCustomLegitimateInterests, KindCustomVector, 0},
	FieldVendorsAllowed:                     {FieldVendorsAllowed, KindVendorVector, 0},
	FieldVendorsDisclosed:                   {FieldVendorsDisclosed, KindVendorVector, 0},
}

// Spec returns the wire description of f.
func Spec(f Field) (FieldSpec, bool) {
	spec, ok := fieldSpecs[f]
	return spec, ok
}

// Fields returns every field the schema knows about.
func Fields() []Field {
	out := make([]Field, 0, len(fieldSpecs))
	for f := range fieldSpecs {
		out = append(out, f)
	}
	return out
}
