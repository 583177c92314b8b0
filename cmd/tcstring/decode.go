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

package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/wso2/identity-tcf-consent/internal/system/constants"
	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/system/log"
	"github.com/wso2/identity-tcf-consent/internal/tcf/encoder"
	"github.com/wso2/identity-tcf-consent/internal/tcf/model"
)

// cborEncMode produces deterministic output so equal records encode to
// equal bytes.
var cborEncMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("tcstring: invalid CBOR encoding options: " + err.Error())
	}
	return mode
}()

func runDecode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var format string
	var output string

	flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&format, "format", "f", constants.FormatYAML, "output format: yaml, json or cbor")
	flagSet.StringVarP(&output, "output", "o", "", "write to this file instead of standard output")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if !constants.AllowedOutputFormats[format] {
		return errors.NewClientErrorf(errors.INVALID_ARGUMENT, errors.KindValidation,
			"unsupported format %q", format)
	}
	if flagSet.NArg() != 1 {
		return errors.NewClientErrorf(errors.INVALID_ARGUMENT, errors.KindValidation,
			"decode takes exactly one TC string")
	}

	tcString := flagSet.Arg(0)
	if tcString == "-" {
		data, err := readInput(tcString, stdin)
		if err != nil {
			return err
		}
		tcString = string(data)
	}
	tcString = strings.TrimSpace(tcString)

	m, version, err := encoder.Decode(tcString)
	if err != nil {
		return err
	}
	log.GetLogger().Debug("Decoded TC string", log.Int("version", version), log.String("format", format))

	data, err := marshalRecord(model.ToDocument(m), format)
	if err != nil {
		return err
	}
	if output != "" {
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", output)
		}
		return nil
	}
	_, err = stdout.Write(data)
	return err
}

func marshalRecord(doc model.RecordDocument, format string) ([]byte, error) {
	var data []byte
	var err error
	switch format {
	case constants.FormatJSON:
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	case constants.FormatCBOR:
		data, err = cborEncMode.Marshal(doc)
	default:
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "rendering record as %s", format)
	}
	return data, nil
}
