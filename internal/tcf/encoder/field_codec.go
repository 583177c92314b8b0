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
	"fmt"
	"time"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/tcf/model"
	"github.com/wso2/identity-tcf-consent/internal/tcf/schema"
)

// fieldCodec packs the fields of one segment for a given TC string version.
type fieldCodec struct {
	version int
}

func (c fieldCodec) lookup(field schema.Field) (schema.FieldSpec, accessor) {
	spec, ok := schema.Spec(field)
	acc, hasAccessor := accessors[field]
	if !ok || !hasAccessor {
		// The schema table and the accessor table are both closed; a miss
		// means they disagree.
		panic(fmt.Sprintf("encoder: no wire description for field %q", field))
	}
	return spec, acc
}

func (c fieldCodec) encode(w *bitWriter, m *model.TCModel, field schema.Field) error {
	spec, acc := c.lookup(field)

	switch spec.Kind {
	case schema.KindBool:
		w.writeBool(*acc.boolean(m))
		return nil
	case schema.KindInt:
		value := acc.getInt(m)
		if field == schema.FieldVersion {
			value = c.version
		}
		return w.writeInt(value, spec.Bits, field)
	case schema.KindDate:
		return w.writeInt(toDeciseconds(*acc.date(m)), spec.Bits, field)
	case schema.KindLanguage:
		return encodeLanguage(w, *acc.text(m), spec.Bits, field)
	case schema.KindFixedVector:
		return encodeFixedVector(w, *acc.vector(m), spec.Bits, field)
	case schema.KindCustomVector:
		return encodeFixedVector(w, *acc.vector(m), m.NumCustomPurposes(), field)
	case schema.KindVendorVector:
		return encodeVendorVector(w, *acc.vector(m), c.version, field)
	case schema.KindRestrictions:
		return encodeRestrictions(w, *acc.restrictions(m), field)
	}
	panic(fmt.Sprintf("encoder: unknown kind %d for field %q", spec.Kind, field))
}

func (c fieldCodec) decode(r *bitReader, m *model.TCModel, field schema.Field) error {
	spec, acc := c.lookup(field)

	switch spec.Kind {
	case schema.KindBool:
		b, err := r.readBool(field)
		if err != nil {
			return err
		}
		*acc.boolean(m) = b
	case schema.KindInt:
		value, err := r.readInt(spec.Bits, field)
		if err != nil {
			return err
		}
		return acc.setInt(m, value)
	case schema.KindDate:
		value, err := r.readInt(spec.Bits, field)
		if err != nil {
			return err
		}
		*acc.date(m) = fromDeciseconds(value)
	case schema.KindLanguage:
		code, err := decodeLanguage(r, spec.Bits, field)
		if err != nil {
			return err
		}
		*acc.text(m) = code
	case schema.KindFixedVector:
		v, err := decodeFixedVector(r, spec.Bits, field)
		if err != nil {
			return err
		}
		*acc.vector(m) = v
	case schema.KindCustomVector:
		v, err := decodeFixedVector(r, m.NumCustomPurposes(), field)
		if err != nil {
			return err
		}
		*acc.vector(m) = v
	case schema.KindVendorVector:
		v, err := decodeVendorVector(r, c.version, field)
		if err != nil {
			return err
		}
		*acc.vector(m) = v
	case schema.KindRestrictions:
		p, err := decodeRestrictions(r, field)
		if err != nil {
			return err
		}
		*acc.restrictions(m) = p
	default:
		panic(fmt.Sprintf("encoder: unknown kind %d for field %q", spec.Kind, field))
	}
	return nil
}

// toDeciseconds rounds t to the nearest tenth of a second since the epoch.
// The zero time encodes as 0.
func toDeciseconds(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	ms := t.UnixMilli()
	if ms < 0 {
		return -1
	}
	return int((ms + 50) / 100)
}

func fromDeciseconds(ds int) time.Time {
	if ds == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ds) * 100).UTC()
}

func encodeLanguage(w *bitWriter, code string, width int, field schema.Field) error {
	chars := width / schema.BitsLanguageChar
	if len(code) != chars {
		return errors.NewClientErrorf(errors.INVALID_LANGUAGE_CODE, errors.KindValidation,
			"%s: %q must be %d letters", field, code, chars)
	}
	for i := 0; i < chars; i++ {
		c := code[i]
		if c < 'A' || c > 'Z' {
			return errors.NewClientErrorf(errors.INVALID_LANGUAGE_CODE, errors.KindValidation,
				"%s: %q must be upper case A-Z", field, code)
		}
		if err := w.writeInt(int(c-'A'), schema.BitsLanguageChar, field); err != nil {
			return err
		}
	}
	return nil
}

func decodeLanguage(r *bitReader, width int, field schema.Field) (string, error) {
	chars := width / schema.BitsLanguageChar
	out := make([]byte, chars)
	for i := range out {
		value, err := r.readInt(schema.BitsLanguageChar, field)
		if err != nil {
			return "", err
		}
		if value > 'Z'-'A' {
			return "", errors.NewClientErrorf(errors.INVALID_LANGUAGE_CODE, errors.KindValidation,
				"%s: letter value %d is outside A-Z", field, value)
		}
		out[i] = byte('A' + value)
	}
	return string(out), nil
}
