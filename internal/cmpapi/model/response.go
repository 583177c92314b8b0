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
	"strconv"
	"strings"

	"github.com/wso2/identity-tcf-consent/internal/system/constants"
	tcfmodel "github.com/wso2/identity-tcf-consent/internal/tcf/model"
)

// ApiVersionString is reported by ping.
const ApiVersionString = "2.0"

// Response carries the fields every answer shares.
type Response struct {
	CmpID            int   `json:"cmpId"`
	CmpVersion       int   `json:"cmpVersion"`
	GdprApplies      *bool `json:"gdprApplies,omitempty"`
	TCFPolicyVersion int   `json:"tcfPolicyVersion"`
}

func newResponse(s *CmpApiModel) Response {
	return Response{
		CmpID:            s.CmpID,
		CmpVersion:       s.CmpVersion,
		GdprApplies:      s.GdprApplies,
		TCFPolicyVersion: s.TCFPolicyVersion(),
	}
}

// Ping answers the ping command.
type Ping struct {
	GdprApplies      *bool  `json:"gdprApplies,omitempty"`
	CmpLoaded        bool   `json:"cmpLoaded"`
	CmpStatus        string `json:"cmpStatus"`
	DisplayStatus    string `json:"displayStatus"`
	ApiVersion       string `json:"apiVersion"`
	CmpVersion       int    `json:"cmpVersion,omitempty"`
	CmpID            int    `json:"cmpId,omitempty"`
	GvlVersion       int    `json:"gvlVersion,omitempty"`
	TCFPolicyVersion int    `json:"tcfPolicyVersion,omitempty"`
}

// NewPing reports the current loading and display state.
func NewPing(s *CmpApiModel) *Ping {
	return &Ping{
		GdprApplies:      s.GdprApplies,
		CmpLoaded:        true,
		CmpStatus:        s.CmpStatus,
		DisplayStatus:    s.DisplayStatus,
		ApiVersion:       ApiVersionString,
		CmpVersion:       s.CmpVersion,
		CmpID:            s.CmpID,
		GvlVersion:       s.GvlVersion(),
		TCFPolicyVersion: s.TCFPolicyVersion(),
	}
}

// NewStubPing is what the placeholder entry point answers before the CMP loads.
func NewStubPing() *Ping {
	return &Ping{
		CmpLoaded:     false,
		CmpStatus:     constants.CmpStatusStub,
		DisplayStatus: constants.DisplayStatusHidden,
		ApiVersion:    ApiVersionString,
	}
}

// Disabled is the only answer a disabled CMP API gives.
type Disabled struct {
	Response
	CmpStatus string `json:"cmpStatus"`
}

// NewDisabled builds the disabled payload.
func NewDisabled(s *CmpApiModel) *Disabled {
	return &Disabled{
		Response:  newResponse(s),
		CmpStatus: constants.CmpStatusError,
	}
}

// Consents groups the consent and legitimate interest maps of one axis.
type Consents[T any] struct {
	Consents            T `json:"consents"`
	LegitimateInterests T `json:"legitimateInterests"`
}

// PublisherData is the publisher section of TCData.
type PublisherData[T any] struct {
	Consents            T                   `json:"consents"`
	LegitimateInterests T                   `json:"legitimateInterests"`
	CustomPurpose       Consents[T]         `json:"customPurpose"`
	Restrictions        map[int]map[int]int `json:"restrictions,omitempty"`
}

// OutOfBand lists the vendors allowed and disclosed for out-of-band signalling.
type OutOfBand struct {
	AllowedVendors   tcfmodel.IntMap `json:"allowedVendors"`
	DisclosedVendors tcfmodel.IntMap `json:"disclosedVendors"`
}

// TCData answers getTCData and feeds event listeners.
type TCData struct {
	Response
	TCString             string                         `json:"tcString,omitempty"`
	ListenerID           *int                           `json:"listenerId,omitempty"`
	EventStatus          string                         `json:"eventStatus,omitempty"`
	CmpStatus            string                         `json:"cmpStatus"`
	IsServiceSpecific    bool                           `json:"isServiceSpecific"`
	UseNonStandardStacks bool                           `json:"useNonStandardStacks"`
	PublisherCC          string                         `json:"publisherCC,omitempty"`
	PurposeOneTreatment  bool                           `json:"purposeOneTreatment"`
	OutOfBand            *OutOfBand                     `json:"outOfBand,omitempty"`
	Purpose              Consents[tcfmodel.IntMap]      `json:"purpose"`
	Vendor               Consents[tcfmodel.IntMap]      `json:"vendor"`
	SpecialFeatureOptins tcfmodel.IntMap                `json:"specialFeatureOptins"`
	Publisher            PublisherData[tcfmodel.IntMap] `json:"publisher"`
}

// NewTCData snapshots the current record. When vendorIDs is non-empty the
// vendor maps are limited to those ids. listenerID is set for event
// listener callbacks.
func NewTCData(s *CmpApiModel, vendorIDs []int, listenerID *int) *TCData {
	data := &TCData{
		Response:    newResponse(s),
		ListenerID:  listenerID,
		EventStatus: s.EventStatus,
		CmpStatus:   s.CmpStatus,
	}
	if !s.HasTCData() {
		return data
	}

	m := s.TCModel
	vendors := func(v *tcfmodel.Vector) tcfmodel.IntMap {
		if len(vendorIDs) > 0 {
			return v.Filter(vendorIDs)
		}
		return v.ToIntMap()
	}

	data.TCString = s.TCString
	data.IsServiceSpecific = m.IsServiceSpecific
	data.UseNonStandardStacks = m.UseNonStandardStacks
	data.PublisherCC = m.PublisherCountryCode
	data.PurposeOneTreatment = m.PurposeOneTreatment
	if !m.IsServiceSpecific {
		data.OutOfBand = &OutOfBand{
			AllowedVendors:   vendors(m.VendorsAllowed),
			DisclosedVendors: vendors(m.VendorsDisclosed),
		}
	}
	data.Purpose = Consents[tcfmodel.IntMap]{
		Consents:            m.PurposeConsents.ToIntMap(),
		LegitimateInterests: m.PurposeLegitimateInterests.ToIntMap(),
	}
	data.Vendor = Consents[tcfmodel.IntMap]{
		Consents:            vendors(m.VendorConsents),
		LegitimateInterests: vendors(m.VendorLegitimateInterests),
	}
	data.SpecialFeatureOptins = m.SpecialFeatureOptIns.ToIntMap()
	data.Publisher = PublisherData[tcfmodel.IntMap]{
		Consents:            m.PublisherConsents.ToIntMap(),
		LegitimateInterests: m.PublisherLegitimateInterests.ToIntMap(),
		CustomPurpose: Consents[tcfmodel.IntMap]{
			Consents:            m.PublisherCustomConsents.ToIntMap(),
			LegitimateInterests: m.PublisherCustomLegitimateInterests.ToIntMap(),
		},
		Restrictions: restrictionMap(m.PublisherRestrictions, vendorIDs),
	}
	return data
}

// restrictionMap indexes restrictions as purpose -> vendor -> restriction type.
// A non-empty vendorIDs limits the index to those vendors.
func restrictionMap(p *tcfmodel.PurposeRestrictionVector, vendorIDs []int) map[int]map[int]int {
	out := make(map[int]map[int]int)
	put := func(pr tcfmodel.PurposeRestriction, vendorID int) {
		if out[pr.PurposeID] == nil {
			out[pr.PurposeID] = make(map[int]int)
		}
		out[pr.PurposeID][vendorID] = int(pr.RestrictionType)
	}
	if len(vendorIDs) > 0 {
		for _, vendorID := range vendorIDs {
			for _, pr := range p.RestrictionsFor(vendorID) {
				put(pr, vendorID)
			}
		}
		return out
	}
	for _, pr := range p.Restrictions() {
		for _, vendorID := range p.Vendors(pr) {
			put(pr, vendorID)
		}
	}
	return out
}

// InAppTCData answers getInAppTCData. Vectors are rendered as strings of
// '0' and '1' where position i is id i+1.
type InAppTCData struct {
	Response
	TCString             string             `json:"tcString,omitempty"`
	EventStatus          string             `json:"eventStatus,omitempty"`
	CmpStatus            string             `json:"cmpStatus"`
	IsServiceSpecific    bool               `json:"isServiceSpecific"`
	UseNonStandardStacks bool               `json:"useNonStandardStacks"`
	PublisherCC          string             `json:"publisherCC,omitempty"`
	PurposeOneTreatment  bool               `json:"purposeOneTreatment"`
	Purpose              Consents[string]   `json:"purpose"`
	Vendor               Consents[string]   `json:"vendor"`
	SpecialFeatureOptins string             `json:"specialFeatureOptins"`
	Publisher            InAppPublisherData `json:"publisher"`
}

// InAppPublisherData is the publisher section of InAppTCData. Restrictions
// map a purpose to one character per vendor: the restriction type digit, or
// '_' when the vendor is unrestricted.
type InAppPublisherData struct {
	Consents            string           `json:"consents"`
	LegitimateInterests string           `json:"legitimateInterests"`
	CustomPurpose       Consents[string] `json:"customPurpose"`
	Restrictions        map[int]string   `json:"restrictions,omitempty"`
}

// NewInAppTCData snapshots the current record in its in-app form.
func NewInAppTCData(s *CmpApiModel) *InAppTCData {
	data := &InAppTCData{
		Response:    newResponse(s),
		EventStatus: s.EventStatus,
		CmpStatus:   s.CmpStatus,
	}
	if !s.HasTCData() {
		return data
	}
	m := s.TCModel
	data.TCString = s.TCString
	data.IsServiceSpecific = m.IsServiceSpecific
	data.UseNonStandardStacks = m.UseNonStandardStacks
	data.PublisherCC = m.PublisherCountryCode
	data.PurposeOneTreatment = m.PurposeOneTreatment
	data.Purpose = Consents[string]{
		Consents:            BitString(m.PurposeConsents),
		LegitimateInterests: BitString(m.PurposeLegitimateInterests),
	}
	data.Vendor = Consents[string]{
		Consents:            BitString(m.VendorConsents),
		LegitimateInterests: BitString(m.VendorLegitimateInterests),
	}
	data.SpecialFeatureOptins = BitString(m.SpecialFeatureOptIns)
	data.Publisher = InAppPublisherData{
		Consents:            BitString(m.PublisherConsents),
		LegitimateInterests: BitString(m.PublisherLegitimateInterests),
		CustomPurpose: Consents[string]{
			Consents:            BitString(m.PublisherCustomConsents),
			LegitimateInterests: BitString(m.PublisherCustomLegitimateInterests),
		},
		Restrictions: restrictionStrings(m.PublisherRestrictions),
	}
	return data
}

// BitString renders ids 1..MaxID as '0' and '1'.
func BitString(v *tcfmodel.Vector) string {
	var sb strings.Builder
	sb.Grow(v.MaxID())
	for _, present := range v.All() {
		if present {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func restrictionStrings(p *tcfmodel.PurposeRestrictionVector) map[int]string {
	maxVendor := p.MaxVendorID()
	byPurpose := make(map[int][]byte)
	for _, pr := range p.Restrictions() {
		row, ok := byPurpose[pr.PurposeID]
		if !ok {
			row = []byte(strings.Repeat("_", maxVendor))
			byPurpose[pr.PurposeID] = row
		}
		for _, vendorID := range p.Vendors(pr) {
			row[vendorID-1] = strconv.Itoa(int(pr.RestrictionType))[0]
		}
	}
	out := make(map[int]string, len(byPurpose))
	for purposeID, row := range byPurpose {
		out[purposeID] = string(row)
	}
	return out
}
