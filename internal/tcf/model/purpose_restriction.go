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
	"cmp"
	"fmt"
	"slices"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
)

// RestrictionType is the kind of legal basis a publisher imposes on a
// purpose for a vendor.
type RestrictionType int

const (
	RestrictionNotAllowed      RestrictionType = 0
	RestrictionRequireConsent  RestrictionType = 1
	RestrictionRequireLegitInt RestrictionType = 2
)

// MaxRestrictionPurposeID is the highest purpose id a restriction can name.
const MaxRestrictionPurposeID = 24

// PurposeRestriction pairs a purpose with a restriction type.
type PurposeRestriction struct {
	PurposeID       int             `json:"purpose_id" yaml:"purpose_id"`
	RestrictionType RestrictionType `json:"restriction_type" yaml:"restriction_type"`
}

// NewPurposeRestriction validates and returns a restriction.
func NewPurposeRestriction(purposeID int, restrictionType RestrictionType) (PurposeRestriction, error) {
	pr := PurposeRestriction{PurposeID: purposeID, RestrictionType: restrictionType}
	if !pr.IsValid() {
		return PurposeRestriction{}, errors.NewClientErrorf(errors.INVALID_RESTRICTION, errors.KindValidation,
			"purpose %d with restriction type %d", purposeID, restrictionType)
	}
	return pr, nil
}

// IsValid reports whether the purpose id and type are in range.
func (pr PurposeRestriction) IsValid() bool {
	return pr.PurposeID > 0 && pr.PurposeID <= MaxRestrictionPurposeID &&
		pr.RestrictionType >= RestrictionNotAllowed && pr.RestrictionType <= RestrictionRequireLegitInt
}

// Hash renders the restriction as "purposeId-restrictionType".
func (pr PurposeRestriction) Hash() string {
	return fmt.Sprintf("%d-%d", pr.PurposeID, pr.RestrictionType)
}

func comparePurposeRestrictions(a, b PurposeRestriction) int {
	if c := cmp.Compare(a.PurposeID, b.PurposeID); c != 0 {
		return c
	}
	return cmp.Compare(a.RestrictionType, b.RestrictionType)
}

// PurposeRestrictionVector maps each restriction to the vendors it applies to.
// The zero value is empty and ready for use. The read-only methods also
// accept a nil *PurposeRestrictionVector and treat it as empty.
type PurposeRestrictionVector struct {
	BitLength int

	vendors map[PurposeRestriction]*Vector
}

// Add restricts vendorID under pr. A vendor carries at most one restriction
// type per purpose, so any other type for the same purpose is dropped.
func (p *PurposeRestrictionVector) Add(vendorID int, pr PurposeRestriction) error {
	return p.AddAll(pr, vendorID)
}

// AddAll restricts every vendor in vendorIDs under pr. Nothing is added
// unless pr is valid and every vendor id is positive.
func (p *PurposeRestrictionVector) AddAll(pr PurposeRestriction, vendorIDs ...int) error {
	if !pr.IsValid() {
		return errors.NewClientErrorf(errors.INVALID_RESTRICTION, errors.KindValidation,
			"purpose %d with restriction type %d", pr.PurposeID, pr.RestrictionType)
	}
	for _, vendorID := range vendorIDs {
		if vendorID <= 0 {
			return errors.NewClientErrorf(errors.INVALID_VECTOR_ID, errors.KindValidation,
				"add(): vendor %d must be positive integer", vendorID)
		}
	}
	if len(vendorIDs) == 0 {
		return nil
	}
	if p.vendors == nil {
		p.vendors = make(map[PurposeRestriction]*Vector)
	}
	for existing, v := range p.vendors {
		if existing.PurposeID != pr.PurposeID || existing == pr {
			continue
		}
		v.Unset(vendorIDs...)
		if v.Size() == 0 {
			delete(p.vendors, existing)
		}
	}
	v, ok := p.vendors[pr]
	if !ok {
		v = &Vector{}
		p.vendors[pr] = v
	}
	p.BitLength = 0
	return v.Set(vendorIDs...)
}

// Remove lifts pr from vendorID. Restrictions left without vendors are dropped.
func (p *PurposeRestrictionVector) Remove(vendorID int, pr PurposeRestriction) {
	v, ok := p.vendors[pr]
	if !ok {
		return
	}
	v.Unset(vendorID)
	if v.Size() == 0 {
		delete(p.vendors, pr)
	}
	p.BitLength = 0
}

// Vendors returns the vendors restricted under pr in ascending order.
func (p *PurposeRestrictionVector) Vendors(pr PurposeRestriction) []int {
	if p == nil {
		return nil
	}
	v, ok := p.vendors[pr]
	if !ok {
		return nil
	}
	return v.IDs()
}

// RestrictionsFor returns every restriction that applies to vendorID.
func (p *PurposeRestrictionVector) RestrictionsFor(vendorID int) []PurposeRestriction {
	if p == nil {
		return nil
	}
	var out []PurposeRestriction
	for pr, v := range p.vendors {
		if v.Has(vendorID) {
			out = append(out, pr)
		}
	}
	slices.SortFunc(out, comparePurposeRestrictions)
	return out
}

// Restrictions returns every restriction with at least one vendor, ordered
// by purpose id then restriction type.
func (p *PurposeRestrictionVector) Restrictions() []PurposeRestriction {
	if p == nil {
		return []PurposeRestriction{}
	}
	out := make([]PurposeRestriction, 0, len(p.vendors))
	for pr := range p.vendors {
		out = append(out, pr)
	}
	slices.SortFunc(out, comparePurposeRestrictions)
	return out
}

// NumRestrictions returns the number of distinct restrictions.
func (p *PurposeRestrictionVector) NumRestrictions() int {
	if p == nil {
		return 0
	}
	return len(p.vendors)
}

// IsEmpty reports whether no restriction is recorded.
func (p *PurposeRestrictionVector) IsEmpty() bool {
	return p.NumRestrictions() == 0
}

// MaxVendorID returns the highest restricted vendor id.
func (p *PurposeRestrictionVector) MaxVendorID() int {
	if p == nil {
		return 0
	}
	maxID := 0
	for _, v := range p.vendors {
		maxID = max(maxID, v.MaxID())
	}
	return maxID
}

// Equal reports whether both hold the same restrictions for the same vendors.
func (p *PurposeRestrictionVector) Equal(other *PurposeRestrictionVector) bool {
	if p.NumRestrictions() != other.NumRestrictions() {
		return false
	}
	if p == nil || other == nil {
		return true
	}
	for pr, v := range p.vendors {
		if !v.Equal(other.vendors[pr]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy, including BitLength.
func (p *PurposeRestrictionVector) Clone() *PurposeRestrictionVector {
	c := &PurposeRestrictionVector{}
	if p == nil {
		return c
	}
	c.BitLength = p.BitLength
	if len(p.vendors) > 0 {
		c.vendors = make(map[PurposeRestriction]*Vector, len(p.vendors))
		for pr, v := range p.vendors {
			c.vendors[pr] = v.Clone()
		}
	}
	return c
}
