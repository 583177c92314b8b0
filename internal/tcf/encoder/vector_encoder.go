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
	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/tcf/model"
	"github.com/wso2/identity-tcf-consent/internal/tcf/schema"
)

// idRange is an inclusive run of consecutive ids.
type idRange struct {
	start int
	end   int
}

// toRanges groups ascending ids into consecutive runs.
func toRanges(ids []int) []idRange {
	var ranges []idRange
	for _, id := range ids {
		if n := len(ranges); n > 0 && ranges[n-1].end == id-1 {
			ranges[n-1].end = id
			continue
		}
		ranges = append(ranges, idRange{start: id, end: id})
	}
	return ranges
}

// rangesBitLength is the size of a numEntries header plus its entries.
func rangesBitLength(ranges []idRange) int {
	bits := schema.BitsNumEntries
	for _, r := range ranges {
		bits += schema.BitsSingleOrRange + schema.BitsVendorID
		if r.end > r.start {
			bits += schema.BitsVendorID
		}
	}
	return bits
}

func writeRanges(w *bitWriter, ranges []idRange, field schema.Field) error {
	if err := w.writeInt(len(ranges), schema.BitsNumEntries, field); err != nil {
		return err
	}
	for _, r := range ranges {
		isRange := r.end > r.start
		w.writeBool(isRange)
		if err := w.writeInt(r.start, schema.BitsVendorID, field); err != nil {
			return err
		}
		if isRange {
			if err := w.writeInt(r.end, schema.BitsVendorID, field); err != nil {
				return err
			}
		}
	}
	return nil
}

// maxExpandedIDs bounds how many ids the ranges of one section may cover.
const maxExpandedIDs = 1<<schema.BitsVendorID - 1

// readRanges reads a numEntries header and its entries. Entries must be
// ascending, must not overlap and must not end past limit. expanded carries
// the running id count of the section across calls.
func readRanges(r *bitReader, field schema.Field, limit int, expanded *int) ([]idRange, error) {
	numEntries, err := r.readInt(schema.BitsNumEntries, field)
	if err != nil {
		return nil, err
	}
	ranges := make([]idRange, 0, numEntries)
	prevEnd := 0
	for i := 0; i < numEntries; i++ {
		isRange, err := r.readBool(field)
		if err != nil {
			return nil, err
		}
		start, err := r.readInt(schema.BitsVendorID, field)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = r.readInt(schema.BitsVendorID, field); err != nil {
				return nil, err
			}
			if end < start {
				return nil, errors.NewClientErrorf(errors.INVALID_RANGE, errors.KindValidation,
					"%s: range %d-%d ends before it starts", field, start, end)
			}
		}
		if start < 1 || start <= prevEnd {
			return nil, errors.NewClientErrorf(errors.INVALID_RANGE, errors.KindValidation,
				"%s: entry %d-%d does not follow %d", field, start, end, prevEnd)
		}
		if end > limit {
			return nil, errors.NewClientErrorf(errors.RANGE_OVERFLOW, errors.KindRangeOverflow,
				"%s: id %d exceeds %d", field, end, limit)
		}
		*expanded += end - start + 1
		if *expanded > maxExpandedIDs {
			return nil, errors.NewClientErrorf(errors.RANGE_OVERFLOW, errors.KindRangeOverflow,
				"%s: ranges cover more than %d ids", field, maxExpandedIDs)
		}
		prevEnd = end
		ranges = append(ranges, idRange{start: start, end: end})
	}
	return ranges, nil
}

// expandRanges lists every id the ranges cover in ascending order.
func expandRanges(ranges []idRange) []int {
	n := 0
	for _, rg := range ranges {
		n += rg.end - rg.start + 1
	}
	ids := make([]int, 0, n)
	for _, rg := range ranges {
		for id := rg.start; id <= rg.end; id++ {
			ids = append(ids, id)
		}
	}
	return ids
}

// encodeVendorVector writes maxId, then whichever of bitfield or range
// encoding is shorter. Bitfield wins a tie.
func encodeVendorVector(w *bitWriter, v *model.Vector, version int, field schema.Field) error {
	maxID := v.MaxID()
	if err := w.writeInt(maxID, schema.BitsMaxID, field); err != nil {
		return err
	}

	ranges := toRanges(v.IDs())
	rangeBits := rangesBitLength(ranges)
	if version == 1 {
		rangeBits += schema.BitsDefaultConsent
	}

	if rangeBits < maxID {
		w.writeBool(true)
		if version == 1 {
			w.writeBool(false)
		}
		return writeRanges(w, ranges, field)
	}

	w.writeBool(false)
	for _, present := range v.All() {
		w.writeBool(present)
	}
	return nil
}

func decodeVendorVector(r *bitReader, version int, field schema.Field) (*model.Vector, error) {
	start := r.pos
	maxID, err := r.readInt(schema.BitsMaxID, field)
	if err != nil {
		return nil, err
	}
	isRange, err := r.readBool(field)
	if err != nil {
		return nil, err
	}

	v := &model.Vector{}
	if isRange {
		if version == 1 {
			defaultConsent, err := r.readBool(field)
			if err != nil {
				return nil, err
			}
			if defaultConsent {
				return nil, errors.NewClientErrorf(errors.UNSUPPORTED_DEFAULT_CONSENT, errors.KindValidation,
					"%s", field)
			}
		}
		expanded := 0
		ranges, err := readRanges(r, field, maxID, &expanded)
		if err != nil {
			return nil, err
		}
		if err := v.Set(expandRanges(ranges)...); err != nil {
			return nil, err
		}
	} else {
		if err := r.need(maxID, field); err != nil {
			return nil, err
		}
		for id := 1; id <= maxID; id++ {
			present, _ := r.readBool(field)
			if present {
				if err := v.Set(id); err != nil {
					return nil, err
				}
			}
		}
	}
	v.BitLength = r.pos - start
	return v, nil
}

// encodeFixedVector writes one bit per id from 1 to width.
func encodeFixedVector(w *bitWriter, v *model.Vector, width int, field schema.Field) error {
	if v.MaxID() > width {
		for _, id := range v.IDs() {
			if id > width {
				return errors.NewClientErrorf(errors.RANGE_OVERFLOW, errors.KindRangeOverflow,
					"%s: id %d exceeds %d", field, id, width)
			}
		}
	}
	for id := 1; id <= width; id++ {
		w.writeBool(v.Has(id))
	}
	return nil
}

func decodeFixedVector(r *bitReader, width int, field schema.Field) (*model.Vector, error) {
	if err := r.need(width, field); err != nil {
		return nil, err
	}
	v := &model.Vector{}
	for id := 1; id <= width; id++ {
		present, _ := r.readBool(field)
		if present {
			if err := v.Set(id); err != nil {
				return nil, err
			}
		}
	}
	v.BitLength = width
	return v, nil
}
