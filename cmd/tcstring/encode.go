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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v2"

	"github.com/wso2/identity-tcf-consent/internal/system/config"
	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/system/log"
	"github.com/wso2/identity-tcf-consent/internal/tcf/encoder"
	"github.com/wso2/identity-tcf-consent/internal/tcf/model"
)

// now is replaced in tests.
var now = time.Now

func runEncode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var version int
	var stamp bool

	flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVar(&version, "tcf-version", 0, "TC string version to write (default: the record's version)")
	flagSet.BoolVar(&stamp, "stamp", false, "set last_updated, and created when unset, to the current time")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		return errors.NewClientErrorf(errors.INVALID_ARGUMENT, errors.KindValidation,
			"encode takes exactly one record file")
	}
	path := flagSet.Arg(0)

	data, err := readInput(path, stdin)
	if err != nil {
		return err
	}
	doc, err := parseRecord(path, data)
	if err != nil {
		return err
	}
	applyDefaults(&doc, config.GetTCFRuntime().Config)

	m, err := doc.ToModel()
	if err != nil {
		return err
	}
	if stamp {
		m.Touch(now())
	}
	if version == 0 {
		version = m.Version
	}

	tcString, err := encoder.Encode(m, version)
	if err != nil {
		return err
	}
	log.GetLogger().Debug("Encoded consent record",
		log.String("file", path), log.Int("version", version), log.Int("length", len(tcString)))
	_, err = fmt.Fprintln(stdout, tcString)
	return err
}

// parseRecord reads a record as JSON with comments when the file says so,
// and as YAML otherwise.
func parseRecord(path string, data []byte) (model.RecordDocument, error) {
	var doc model.RecordDocument
	if isJSONInput(path, data) {
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return doc, errors.NewServerError(errors.INVALID_RECORD_FILE, errors.KindValidation,
				errors.Wrapf(err, "parsing %s as JSON", path))
		}
		return doc, nil
	}
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return doc, errors.NewServerError(errors.INVALID_RECORD_FILE, errors.KindValidation,
			errors.Wrapf(err, "parsing %s as YAML", path))
	}
	return doc, nil
}

func isJSONInput(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	case ".yaml", ".yml":
		return false
	}
	return bytes.HasPrefix(bytes.TrimSpace(jsonc.ToJSON(data)), []byte("{"))
}

// applyDefaults fills metadata the record leaves unset from the deployment
// configuration.
func applyDefaults(doc *model.RecordDocument, cfg config.Config) {
	if doc.Version == 0 {
		doc.Version = cfg.TCF.Version
	}
	if doc.CmpID == 0 {
		doc.CmpID = cfg.Cmp.ID
	}
	if doc.CmpVersion == 0 {
		doc.CmpVersion = cfg.Cmp.Version
	}
	if doc.ConsentScreen == 0 {
		doc.ConsentScreen = cfg.TCF.ConsentScreen
	}
	if doc.ConsentLanguage == "" {
		doc.ConsentLanguage = cfg.TCF.ConsentLanguage
	}
	if doc.PublisherCountryCode == "" {
		doc.PublisherCountryCode = cfg.TCF.PublisherCountryCode
	}
	if doc.VendorListVersion == 0 {
		doc.VendorListVersion = cfg.TCF.VendorListVersion
	}
	if doc.PolicyVersion == 0 {
		doc.PolicyVersion = cfg.TCF.PolicyVersion
	}
	doc.IsServiceSpecific = doc.IsServiceSpecific || cfg.TCF.IsServiceSpecific
}
