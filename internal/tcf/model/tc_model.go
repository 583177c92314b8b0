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
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
)

// Defaults stamped onto a new TCModel.
const (
	DefaultVersion              = 2
	DefaultPolicyVersion        = 2
	DefaultConsentLanguage      = "EN"
	DefaultPublisherCountryCode = "AA"
)

// TCModel is the consent record of one page session: who wrote it, when,
// and which purposes and vendors the user agreed to.
type TCModel struct {
	Version              int
	Created              time.Time
	LastUpdated          time.Time
	CmpID                int
	CmpVersion           int
	ConsentScreen        int
	ConsentLanguage      string
	VendorListVersion    int
	PolicyVersion        int
	IsServiceSpecific    bool
	UseNonStandardStacks bool
	PurposeOneTreatment  bool
	PublisherCountryCode string

	SpecialFeatureOptIns               *Vector
	PurposeConsents                    *Vector
	PurposeLegitimateInterests         *Vector
	VendorConsents                     *Vector
	VendorLegitimateInterests          *Vector
	PublisherConsents                  *Vector
	PublisherLegitimateInterests       *Vector
	PublisherCustomConsents            *Vector
	PublisherCustomLegitimateInterests *Vector
	VendorsAllowed                     *Vector
	VendorsDisclosed                   *Vector

	PublisherRestrictions *PurposeRestrictionVector

	numCustomPurposes int
}

// NewTCModel returns a record with every vector empty and default metadata.
func NewTCModel() *TCModel {
	return &TCModel{
		Version:                            DefaultVersion,
		PolicyVersion:                      DefaultPolicyVersion,
		ConsentLanguage:                    DefaultConsentLanguage,
		PublisherCountryCode:               DefaultPublisherCountryCode,
		SpecialFeatureOptIns:               &Vector{},
		PurposeConsents:                    &Vector{},
		PurposeLegitimateInterests:         &Vector{},
		VendorConsents:                     &Vector{},
		VendorLegitimateInterests:          &Vector{},
		PublisherConsents:                  &Vector{},
		PublisherLegitimateInterests:       &Vector{},
		PublisherCustomConsents:            &Vector{},
		PublisherCustomLegitimateInterests: &Vector{},
		VendorsAllowed:                     &Vector{},
		VendorsDisclosed:                   &Vector{},
		PublisherRestrictions:              &PurposeRestrictionVector{},
	}
}

// SetConsentLanguage stores an ISO 639-1 two-letter language code.
func (m *TCModel) SetConsentLanguage(code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 2 || !isUpperAlpha(normalized) {
		return errors.NewClientErrorf(errors.INVALID_LANGUAGE_CODE, errors.KindValidation,
			"%q is not a two-letter code", code)
	}
	if _, err := language.ParseBase(normalized); err != nil {
		return errors.NewClientErrorf(errors.INVALID_LANGUAGE_CODE, errors.KindValidation,
			"%q: %v", code, err)
	}
	m.ConsentLanguage = normalized
	return nil
}

// SetPublisherCountryCode stores an ISO 3166-1 alpha-2 country code. "AA"
// is accepted as the unknown-country placeholder.
func (m *TCModel) SetPublisherCountryCode(code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 2 || !isUpperAlpha(normalized) {
		return errors.NewClientErrorf(errors.INVALID_COUNTRY_CODE, errors.KindValidation,
			"%q is not a two-letter code", code)
	}
	if normalized != DefaultPublisherCountryCode {
		if _, err := language.ParseRegion(normalized); err != nil {
			return errors.NewClientErrorf(errors.INVALID_COUNTRY_CODE, errors.KindValidation,
				"%q: %v", code, err)
		}
	}
	m.PublisherCountryCode = normalized
	return nil
}

// NumCustomPurposes returns the explicit custom purpose count, or the
// highest custom purpose id recorded if that is larger.
func (m *TCModel) NumCustomPurposes() int {
	n := m.numCustomPurposes
	if m.PublisherCustomConsents != nil {
		n = max(n, m.PublisherCustomConsents.MaxID())
	}
	if m.PublisherCustomLegitimateInterests != nil {
		n = max(n, m.PublisherCustomLegitimateInterests.MaxID())
	}
	return n
}

// SetNumCustomPurposes declares how many custom purposes the publisher has.
func (m *TCModel) SetNumCustomPurposes(n int) error {
	if n < 0 {
		return errors.NewClientErrorf(errors.INVALID_MODEL_FIELD, errors.KindValidation,
			"numCustomPurposes must not be negative, got %d", n)
	}
	m.numCustomPurposes = n
	return nil
}

// HasPublisherTC reports whether any publisher transparency and consent
// data is recorded.
func (m *TCModel) HasPublisherTC() bool {
	return m.PublisherConsents.Size() > 0 ||
		m.PublisherLegitimateInterests.Size() > 0 ||
		m.NumCustomPurposes() > 0
}

// Touch stamps LastUpdated, and Created when it is still unset.
func (m *TCModel) Touch(now time.Time) {
	if m.Created.IsZero() {
		m.Created = now
	}
	m.LastUpdated = now
}

// Clone returns a deep copy. Nil vectors come back empty.
func (m *TCModel) Clone() *TCModel {
	c := *m
	c.SpecialFeatureOptIns = m.SpecialFeatureOptIns.Clone()
	c.PurposeConsents = m.PurposeConsents.Clone()
	c.PurposeLegitimateInterests = m.PurposeLegitimateInterests.Clone()
	c.VendorConsents = m.VendorConsents.Clone()
	c.VendorLegitimateInterests = m.VendorLegitimateInterests.Clone()
	c.PublisherConsents = m.PublisherConsents.Clone()
	c.PublisherLegitimateInterests = m.PublisherLegitimateInterests.Clone()
	c.PublisherCustomConsents = m.PublisherCustomConsents.Clone()
	c.PublisherCustomLegitimateInterests = m.PublisherCustomLegitimateInterests.Clone()
	c.VendorsAllowed = m.VendorsAllowed.Clone()
	c.VendorsDisclosed = m.VendorsDisclosed.Clone()
	c.PublisherRestrictions = m.PublisherRestrictions.Clone()
	return &c
}

func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
