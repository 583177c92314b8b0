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
	"github.com/wso2/identity-tcf-consent/internal/tcf/schema"
)

// segmentAlignment is the bit boundary every segment is padded to. 24 bits
// is three bytes, which base64 renders as exactly four characters.
const segmentAlignment = 24

// bitWriter accumulates one segment, one bit per byte.
type bitWriter struct {
	bits []byte
}

func (w *bitWriter) writeBool(b bool) {
	if b {
		w.bits = append(w.bits, 1)
	} else {
		w.bits = append(w.bits, 0)
	}
}

// writeInt appends value as an unsigned big-endian integer of width bits.
func (w *bitWriter) writeInt(value, width int, field schema.Field) error {
	if value < 0 || (width < 63 && value >= 1<<width) {
		return errors.NewClientErrorf(errors.RANGE_OVERFLOW, errors.KindRangeOverflow,
			"%s: %d does not fit in %d bits", field, value, width)
	}
	for i := width - 1; i >= 0; i-- {
		w.bits = append(w.bits, byte(value>>i)&1)
	}
	return nil
}

func (w *bitWriter) len() int {
	return len(w.bits)
}

// bytes packs the bits, zero-padded to the segment alignment.
func (w *bitWriter) bytes() []byte {
	padded := len(w.bits)
	if rem := padded % segmentAlignment; rem != 0 {
		padded += segmentAlignment - rem
	}
	out := make([]byte, padded/8)
	for i, b := range w.bits {
		out[i/8] |= b << (7 - i%8)
	}
	return out
}

// bitReader consumes one decoded segment.
type bitReader struct {
	bits    []byte
	pos     int
	segment schema.Segment
}

func newBitReader(data []byte, segment schema.Segment) *bitReader {
	bits := make([]byte, len(data)*8)
	for i := range bits {
		bits[i] = (data[i/8] >> (7 - i%8)) & 1
	}
	return &bitReader{bits: bits, segment: segment}
}

func (r *bitReader) remaining() int {
	return len(r.bits) - r.pos
}

func (r *bitReader) need(width int, field schema.Field) error {
	if r.remaining() < width {
		return errors.NewClientErrorf(errors.TRUNCATED_DATA, errors.KindTruncatedData,
			"%s segment: %s needs %d bits, %d left", r.segment, field, width, r.remaining())
	}
	return nil
}

func (r *bitReader) readBool(field schema.Field) (bool, error) {
	if err := r.need(1, field); err != nil {
		return false, err
	}
	b := r.bits[r.pos] == 1
	r.pos++
	return b, nil
}

func (r *bitReader) readInt(width int, field schema.Field) (int, error) {
	if err := r.need(width, field); err != nil {
		return 0, err
	}
	value := 0
	for _, b := range r.bits[r.pos : r.pos+width] {
		value = value<<1 | int(b)
	}
	r.pos += width
	return value, nil
}
