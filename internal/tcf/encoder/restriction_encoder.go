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
	"github.com/wso2/identity-tcf-consent/internal/tcf/model"
	"github.com/wso2/identity-tcf-consent/internal/tcf/schema"
)

// encodeRestrictions writes the restriction count, then per restriction its
// purpose, type and the restricted vendors as ranges.
func encodeRestrictions(w *bitWriter, p *model.PurposeRestrictionVector, field schema.Field) error {
	restrictions := p.Restrictions()
	if err := w.writeInt(len(restrictions), schema.BitsNumRestrictions, field); err != nil {
		return err
	}
	for _, pr := range restrictions {
		if err := w.writeInt(pr.PurposeID, schema.BitsPurposeID, field); err != nil {
			return err
		}
		if err := w.writeInt(int(pr.RestrictionType), schema.BitsRestrictionType, field); err != nil {
			return err
		}
		if err := writeRanges(w, toRanges(p.Vendors(pr)), field); err != nil {
			return err
		}
	}
	return nil
}

func decodeRestrictions(r *bitReader, field schema.Field) (*model.PurposeRestrictionVector, error) {
	start := r.pos
	count, err := r.readInt(schema.BitsNumRestrictions, field)
	if err != nil {
		return nil, err
	}
	p := &model.PurposeRestrictionVector{}
	expanded := 0
	for i := 0; i < count; i++ {
		purposeID, err := r.readInt(schema.BitsPurposeID, field)
		if err != nil {
			return nil, err
		}
		restrictionType, err := r.readInt(schema.BitsRestrictionType, field)
		if err != nil {
			return nil, err
		}
		pr, err := model.NewPurposeRestriction(purposeID, model.RestrictionType(restrictionType))
		if err != nil {
			return nil, err
		}
		ranges, err := readRanges(r, field, maxExpandedIDs, &expanded)
		if err != nil {
			return nil, err
		}
		if err := p.AddAll(pr, expandRanges(ranges)...); err != nil {
			return nil, err
		}
	}
	p.BitLength = r.pos - start
	return p, nil
}
