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

package constants

// ApiFunctionName is the page-global name the CMP API is reachable under.
const ApiFunctionName = "__tcfapi"

// ApiVersion is the only page call protocol version the dispatcher serves.
const ApiVersion = 2

// MinCmpID is the lowest cmpId the registry hands out.
const MinCmpID = 2

// Built-in page commands.
const (
	CommandPing                = "ping"
	CommandGetTCData           = "getTCData"
	CommandGetInAppTCData      = "getInAppTCData"
	CommandAddEventListener    = "addEventListener"
	CommandRemoveEventListener = "removeEventListener"
)

// Event status values reported in TC data.
const (
	EventStatusTCLoaded           = "tcloaded"
	EventStatusCmpUIShown         = "cmpuishown"
	EventStatusUserActionComplete = "useractioncomplete"
)

// CMP status values reported by ping and TC data.
const (
	CmpStatusStub    = "stub"
	CmpStatusLoading = "loading"
	CmpStatusLoaded  = "loaded"
	CmpStatusError   = "error"
)

// Display status values reported by ping.
const (
	DisplayStatusVisible  = "visible"
	DisplayStatusHidden   = "hidden"
	DisplayStatusDisabled = "disabled"
)

// WireSegmentSeparator joins the base64url segments of a TC string.
const WireSegmentSeparator = "."

// Output formats accepted by the tcstring CLI.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

var AllowedOutputFormats = map[string]bool{
	FormatYAML: true,
	FormatJSON: true,
	FormatCBOR: true,
}
