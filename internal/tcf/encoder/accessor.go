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
	"time"

	"github.com/wso2/identity-tcf-consent/internal/tcf/model"
	"github.com/wso2/identity-tcf-consent/internal/tcf/schema"
)

// accessor reads and writes one field of a TCModel. Only the member that
// matches the field's kind is set.
type accessor struct {
	getInt func(m *model.TCModel) int
	setInt func(m *model.TCModel, v int) error

	boolean func(m *model.TCModel) *bool
	text    func(m *model.TCModel) *string
	date    func(m *model.TCModel) *time.Time
	vector  func(m *model.TCModel) **model.Vector

	restrictions func(m *model.TCModel) **model.PurposeRestrictionVector
}

func intField(ptr func(m *model.TCModel) *int) accessor {
	return accessor{
		getInt: func(m *model.TCModel) int { return *ptr(m) },
		setInt: func(m *model.TCModel, v int) error { *ptr(m) = v; return nil },
	}
}

var accessors = map[schema.Field]accessor{
	schema.FieldVersion:           intField(func(m *model.TCModel) *int { return &m.Version }),
	schema.FieldCreated:           {date: func(m *model.TCModel) *time.Time { return &m.Created }},
	schema.FieldLastUpdated:       {date: func(m *model.TCModel) *time.Time { return &m.LastUpdated }},
	schema.FieldCmpID:             intField(func(m *model.TCModel) *int { return &m.CmpID }),
	schema.FieldCmpVersion:        intField(func(m *model.TCModel) *int { return &m.CmpVersion }),
	schema.FieldConsentScreen:     intField(func(m *model.TCModel) *int { return &m.ConsentScreen }),
	schema.FieldConsentLanguage:   {text: func(m *model.TCModel) *string { return &m.ConsentLanguage }},
	schema.FieldVendorListVersion: intField(func(m *model.TCModel) *int { return &m.VendorListVersion }),
	schema.FieldPolicyVersion:     intField(func(m *model.TCModel) *int { return &m.PolicyVersion }),
	schema.FieldIsServiceSpecific: {boolean: func(m *model.TCModel) *bool { return &m.IsServiceSpecific }},
	schema.FieldUseNonStandardStacks: {
		boolean: func(m *model.TCModel) *bool { return &m.UseNonStandardStacks },
	},
	schema.FieldSpecialFeatureOptIns: {
		vector: func(m *model.TCModel) **model.Vector { return &m.SpecialFeatureOptIns },
	},
	schema.FieldPurposeConsents: {
		vector: func(m *model.TCModel) **model.Vector { return &m.PurposeConsents },
	},
	schema.FieldPurposeLegitimateInterests: {
		vector: func(m *model.TCModel) **model.Vector { return &m.PurposeLegitimateInterests },
	},
	schema.FieldPurposeOneTreatment: {
		boolean: func(m *model.TCModel) *bool { return &m.PurposeOneTreatment },
	},
	schema.FieldPublisherCountryCode: {
		text: func(m *model.TCModel) *string { return &m.PublisherCountryCode },
	},
	schema.FieldVendorConsents: {
		vector: func(m *model.TCModel) **model.Vector { return &m.VendorConsents },
	},
	schema.FieldVendorLegitimateInterests: {
		vector: func(m *model.TCModel) **model.Vector { return &m.VendorLegitimateInterests },
	},
	schema.FieldPublisherRestrictions: {
		restrictions: func(m *model.TCModel) **model.PurposeRestrictionVector { return &m.PublisherRestrictions },
	},
	schema.FieldPublisherConsents: {
		vector: func(m *model.TCModel) **model.Vector { return &m.PublisherConsents },
	},
	schema.FieldPublisherLegitimateInterests: {
		vector: func(m *model.TCModel) **model.Vector { return &m.PublisherLegitimateInterests },
	},
	schema.FieldNumCustomPurposes: {
		getInt: (*model.TCModel).NumCustomPurposes,
		setInt: (*model.TCModel).SetNumCustomPurposes,
	},
	schema.FieldPublisherCustomConsents: {
		vector: func(m *model.TCModel) **model.Vector { return &m.PublisherCustomConsents },
	},
	schema.FieldPublisherCustomLegitimateInterests: {
		vector: func(m *model.TCModel) **model.Vector { return &m.PublisherCustomLegitimateInterests },
	},
	schema.FieldVendorsAllowed: {
		vector: func(m *model.TCModel) **model.Vector { return &m.VendorsAllowed },
	},
	schema.FieldVendorsDisclosed: {
		vector: func(m *model.TCModel) **model.Vector { return &m.VendorsDisclosed },
	},
}
