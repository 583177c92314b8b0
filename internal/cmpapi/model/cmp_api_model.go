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
	"github.com/wso2/identity-tcf-consent/internal/system/constants"
	tcfmodel "github.com/wso2/identity-tcf-consent/internal/tcf/model"
)

// Callback receives the answer to a page call.
type Callback func(response any, success bool)

// CmpApiModel is the state one CMP API instance exposes to page scripts.
// It is owned by the dispatcher and only changed through its setters.
type CmpApiModel struct {
	CmpID      int
	CmpVersion int

	// GdprApplies is nil until the CMP has decided.
	GdprApplies *bool
	TCString    string
	TCModel     *tcfmodel.TCModel

	EventStatus   string
	CmpStatus     string
	DisplayStatus string
	UIVisible     bool
	Disabled      bool
}

// NewCmpApiModel returns the state of a freshly loaded CMP.
func NewCmpApiModel(cmpID, cmpVersion int) *CmpApiModel {
	return &CmpApiModel{
		CmpID:         cmpID,
		CmpVersion:    cmpVersion,
		CmpStatus:     constants.CmpStatusLoading,
		DisplayStatus: constants.DisplayStatusHidden,
	}
}

// TCFPolicyVersion is the policy version of the current record, or 0.
func (s *CmpApiModel) TCFPolicyVersion() int {
	if s.TCModel == nil {
		return 0
	}
	return s.TCModel.PolicyVersion
}

// GvlVersion is the vendor list version of the current record, or 0.
func (s *CmpApiModel) GvlVersion() int {
	if s.TCModel == nil {
		return 0
	}
	return s.TCModel.VendorListVersion
}

// HasTCData reports whether a record is available to answer TC data calls.
func (s *CmpApiModel) HasTCData() bool {
	return s.GdprApplies != nil && *s.GdprApplies && s.TCModel != nil
}
