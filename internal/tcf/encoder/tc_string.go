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
	"strings"

	"github.com/wso2/identity-tcf-consent/internal/system/constants"
	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/system/log"
	"github.com/wso2/identity-tcf-consent/internal/tcf/model"
	"github.com/wso2/identity-tcf-consent/internal/tcf/schema"
)

// segmentConditions decide whether an optional segment is written at all.
// Segments without an entry are always written.
var segmentConditions = map[schema.Segment]func(m *model.TCModel) bool{
	schema.SegmentPublisherTC:      (*model.TCModel).HasPublisherTC,
	schema.SegmentVendorsAllowed:   func(m *model.TCModel) bool { return m.VendorsAllowed.Size() > 0 },
	schema.SegmentVendorsDisclosed: func(m *model.TCModel) bool { return m.VendorsDisclosed.Size() > 0 },
}

// Encode renders m as a TC string laid out for version. Fields the version
// does not declare are not written.
func Encode(m *model.TCModel, version int) (string, error) {
	seq, ok := schema.Lookup(version)
	if !ok {
		return "", errors.NewClientErrorf(errors.UNSUPPORTED_VERSION, errors.KindUnsupportedVersion,
			"version %d", version)
	}
	codec := fieldCodec{version: version}

	core := &bitWriter{}
	for _, field := range seq.Core().Fields {
		if err := codec.encode(core, m, field); err != nil {
			return "", err
		}
	}
	segments := []string{encodeSegment(core)}

	for _, sf := range seq.Optional() {
		if cond, ok := segmentConditions[sf.Segment]; ok && !cond(m) {
			continue
		}
		segmentType, _ := schema.SegmentType(sf.Segment)
		w := &bitWriter{}
		if err := w.writeInt(segmentType, schema.BitsSegmentType, "segmentType"); err != nil {
			return "", err
		}
		for _, field := range sf.Fields {
			if err := codec.encode(w, m, field); err != nil {
				return "", err
			}
		}
		segments = append(segments, encodeSegment(w))
	}

	log.GetLogger().Debug("Encoded TC string",
		log.Int("version", version), log.Int("segments", len(segments)),
		log.Int("restrictions", m.PublisherRestrictions.NumRestrictions()),
		log.Bool("publisher_tc", m.HasPublisherTC()))
	return strings.Join(segments, constants.WireSegmentSeparator), nil
}

// Decode parses a TC string. It returns the record and the version whose
// layout governed it. On any error no record is returned.
func Decode(tcString string) (*model.TCModel, int, error) {
	if tcString == "" {
		return nil, 0, errors.NewClientError(errors.EMPTY_TC_STRING, errors.KindTruncatedData)
	}
	parts := strings.Split(tcString, constants.WireSegmentSeparator)

	core, err := decodeSegment(parts[0], schema.SegmentCore)
	if err != nil {
		return nil, 0, err
	}
	versionSpec, _ := schema.Spec(schema.FieldVersion)
	version, err := core.readInt(versionSpec.Bits, schema.FieldVersion)
	if err != nil {
		return nil, 0, err
	}
	seq, ok := schema.Lookup(version)
	if !ok {
		return nil, 0, errors.NewClientErrorf(errors.UNSUPPORTED_VERSION, errors.KindUnsupportedVersion,
			"version %d", version)
	}

	m := model.NewTCModel()
	m.Version = version
	codec := fieldCodec{version: version}
	for _, field := range seq.Core().Fields {
		if field == schema.FieldVersion {
			continue
		}
		if err := codec.decode(core, m, field); err != nil {
			return nil, 0, err
		}
	}

	logger := log.GetLogger()
	for _, part := range parts[1:] {
		r, err := decodeSegment(part, "optional")
		if err != nil {
			return nil, 0, err
		}
		segmentType, err := r.readInt(schema.BitsSegmentType, "segmentType")
		if err != nil {
			return nil, 0, err
		}
		segment, known := schema.SegmentForType(segmentType)
		fields, declared := seq.Fields(segment)
		if !known || !declared || segment == schema.SegmentCore {
			logger.Debug("Skipping unrecognized TC string segment",
				log.Int("segment_type", segmentType), log.Int("version", version))
			continue
		}
		r.segment = segment
		for _, field := range fields {
			if err := codec.decode(r, m, field); err != nil {
				return nil, 0, err
			}
		}
	}
	return m, version, nil
}
