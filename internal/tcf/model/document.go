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
	"time"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
)

// RecordDocument is the file and CLI representation of a TCModel. Vectors
// are listed as ascending ids and timestamps as RFC 3339 strings.
type RecordDocument struct {
	Version              int    `json:"version" yaml:"version"`
	Created              string `json:"created,omitempty" yaml:"created,omitempty"`
	LastUpdated          string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	CmpID                int    `json:"cmp_id" yaml:"cmp_id"`
	CmpVersion           int    `json:"cmp_version" yaml:"cmp_version"`
	ConsentScreen        int    `json:"consent_screen" yaml:"consent_screen"`
	ConsentLanguage      string `json:"consent_language,omitempty" yaml:"consent_language,omitempty"`
	VendorListVersion    int    `json:"vendor_list_version" yaml:"vendor_list_version"`
	PolicyVersion        int    `json:"policy_version" yaml:"policy_version"`
	IsServiceSpecific    bool   `json:"is_service_specific" yaml:"is_service_specific"`
	UseNonStandardStacks bool   `json:"use_non_standard_stacks" yaml:"use_non_standard_stacks"`
	PurposeOneTreatment  bool   `json:"purpose_one_treatment" yaml:"purpose_one_treatment"`
	PublisherCountryCode string `json:"publisher_country_code,omitempty" yaml:"publisher_country_code,omitempty"`
	NumCustomPurposes    int    `json:"num_custom_purposes,omitempty" yaml:"num_custom_purposes,omitempty"`

	SpecialFeatureOptIns               []int `json:"special_feature_opt_ins,omitempty" yaml:"special_feature_opt_ins,omitempty"`
	PurposeConsents                    []int `json:"purpose_consents,omitempty" yaml:"purpose_consents,omitempty"`
	PurposeLegitimateInterests         []int `json:"purpose_legitimate_interests,omitempty" yaml:"purpose_legitimate_interests,omitempty"`
	VendorConsents                     []int `json:"vendor_consents,omitempty" yaml:"vendor_consents,omitempty"`
	VendorLegitimateInterests          []int `json:"vendor_legitimate_interests,omitempty" yaml:"vendor_legitimate_interests,omitempty"`
	PublisherConsents                  []int `json:"publisher_consents,omitempty" yaml:"publisher_consents,omitempty"`
	PublisherLegitimateInterests       []int `json:"publisher_legitimate_interests,omitempty" yaml:"publisher_legitimate_interests,omitempty"`
	PublisherCustomConsents            []int `json:"publisher_custom_consents,omitempty" yaml:"publisher_custom_consents,omitempty"`
	PublisherCustomLegitimateInterests []int `json:"publisher_custom_legitimate_interests,omitempty" yaml:"publisher_custom_legitimate_interests,omitempty"`
	VendorsAllowed                     []int `json:"vendors_allowed,omitempty" yaml:"vendors_allowed,omitempty"`
	VendorsDisclosed                   []int `json:"vendors_disclosed,omitempty" yaml:"vendors_disclosed,omitempty"`

	PublisherRestrictions []RestrictionDocument `json:"publisher_restrictions,omitempty" yaml:"publisher_restrictions,omitempty"`
}

// RestrictionDocument lists the vendors one purpose restriction applies to.
type RestrictionDocument struct {
	PurposeRestriction `json:",inline" yaml:",inline"`
	Vendors            []int `json:"vendors" yaml:"vendors"`
}

// ToDocument converts m into its document form.
func ToDocument(m *TCModel) RecordDocument {
	doc := RecordDocument{
		Version:                            m.Version,
		Created:                            formatTime(m.Created),
		LastUpdated:                        formatTime(m.LastUpdated),
		CmpID:                              m.CmpID,
		CmpVersion:                         m.CmpVersion,
		ConsentScreen:                      m.ConsentScreen,
		ConsentLanguage:                    m.ConsentLanguage,
		VendorListVersion:                  m.VendorListVersion,
		PolicyVersion:                      m.PolicyVersion,
		IsServiceSpecific:                  m.IsServiceSpecific,
		UseNonStandardStacks:               m.UseNonStandardStacks,
		PurposeOneTreatment:                m.PurposeOneTreatment,
		PublisherCountryCode:               m.PublisherCountryCode,
		NumCustomPurposes:                  m.NumCustomPurposes(),
		SpecialFeatureOptIns:               m.SpecialFeatureOptIns.IDs(),
		PurposeConsents:                    m.PurposeConsents.IDs(),
		PurposeLegitimateInterests:         m.PurposeLegitimateInterests.IDs(),
		VendorConsents:                     m.VendorConsents.IDs(),
		VendorLegitimateInterests:          m.VendorLegitimateInterests.IDs(),
		PublisherConsents:                  m.PublisherConsents.IDs(),
		PublisherLegitimateInterests:       m.PublisherLegitimateInterests.IDs(),
		PublisherCustomConsents:            m.PublisherCustomConsents.IDs(),
		PublisherCustomLegitimateInterests: m.PublisherCustomLegitimateInterests.IDs(),
		VendorsAllowed:                     m.VendorsAllowed.IDs(),
		VendorsDisclosed:                   m.VendorsDisclosed.IDs(),
	}
	for _, pr := range m.PublisherRestrictions.Restrictions() {
		doc.PublisherRestrictions = append(doc.PublisherRestrictions, RestrictionDocument{
			PurposeRestriction: pr,
			Vendors:            m.PublisherRestrictions.Vendors(pr),
		})
	}
	return doc
}

// ToModel builds a validated TCModel from the document.
func (d RecordDocument) ToModel() (*TCModel, error) {
	m := NewTCModel()
	if d.Version != 0 {
		m.Version = d.Version
	}
	var err error
	if m.Created, err = parseTime("created", d.Created); err != nil {
		return nil, err
	}
	if m.LastUpdated, err = parseTime("last_updated", d.LastUpdated); err != nil {
		return nil, err
	}
	m.CmpID = d.CmpID
	m.CmpVersion = d.CmpVersion
	m.ConsentScreen = d.ConsentScreen
	m.VendorListVersion = d.VendorListVersion
	if d.PolicyVersion != 0 {
		m.PolicyVersion = d.PolicyVersion
	}
	m.IsServiceSpecific = d.IsServiceSpecific
	m.UseNonStandardStacks = d.UseNonStandardStacks
	m.PurposeOneTreatment = d.PurposeOneTreatment
	if d.ConsentLanguage != "" {
		if err := m.SetConsentLanguage(d.ConsentLanguage); err != nil {
			return nil, err
		}
	}
	if d.PublisherCountryCode != "" {
		if err := m.SetPublisherCountryCode(d.PublisherCountryCode); err != nil {
			return nil, err
		}
	}
	if err := m.SetNumCustomPurposes(d.NumCustomPurposes); err != nil {
		return nil, err
	}

	vectors := []struct {
		target *Vector
		ids    []int
	}{
		{m.SpecialFeatureOptIns, d.SpecialFeatureOptIns},
		{m.PurposeConsents, d.PurposeConsents},
		{m.PurposeLegitimateInterests, d.PurposeLegitimateInterests},
		{m.VendorConsents, d.VendorConsents},
		{m.VendorLegitimateInterests, d.VendorLegitimateInterests},
		{m.PublisherConsents, d.PublisherConsents},
		{m.PublisherLegitimateInterests, d.PublisherLegitimateInterests},
		{m.PublisherCustomConsents, d.PublisherCustomConsents},
		{m.PublisherCustomLegitimateInterests, d.PublisherCustomLegitimateInterests},
		{m.VendorsAllowed, d.VendorsAllowed},
		{m.VendorsDisclosed, d.VendorsDisclosed},
	}
	for _, v := range vectors {
		if err := v.target.Set(v.ids...); err != nil {
			return nil, err
		}
	}
	for _, r := range d.PublisherRestrictions {
		for _, vendorID := range r.Vendors {
			if err := m.PublisherRestrictions.Add(vendorID, r.PurposeRestriction); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, errors.NewClientErrorf(errors.INVALID_MODEL_FIELD, errors.KindValidation,
			"%s: %v", field, err)
	}
	return t, nil
}
