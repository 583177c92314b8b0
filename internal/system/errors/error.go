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

package errors

import "fmt"

// Kind classifies how a failure is propagated to its recipient.
type Kind int

const (
	// KindValidation marks malformed input supplied by the caller.
	KindValidation Kind = iota + 1
	// KindProtocol marks a page call rejected before routing.
	KindProtocol
	// KindCallerContract marks a call that cannot be answered at all.
	KindCallerContract
	// KindUnsupportedVersion marks a TC string version without a schema.
	KindUnsupportedVersion
	// KindTruncatedData marks a TC string that ends before its schema does.
	KindTruncatedData
	// KindRangeOverflow marks a value wider than its schema field.
	KindRangeOverflow
	// KindDisabled marks a setter called after the CMP API was disabled.
	KindDisabled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindProtocol:
		return "protocol"
	case KindCallerContract:
		return "caller-contract"
	case KindUnsupportedVersion:
		return "unsupported-version"
	case KindTruncatedData:
		return "truncated-data"
	case KindRangeOverflow:
		return "range-overflow"
	case KindDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description"`
}

// ClientError reports input the caller can correct.
type ClientError struct {
	ErrorMessage
	Kind Kind
}

// ServerError reports a failure caused by an underlying error.
type ServerError struct {
	ErrorMessage
	Kind Kind
	Err  error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

// Is matches kind sentinels such as ErrTruncatedData.
func (e *ServerError) Is(target error) bool {
	return matchesKind(e.Kind, target)
}

func (e *ClientError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s %s", e.Code, e.Message, e.Description)
}

// Detail is the message without the error code, as handed to page callbacks.
func (e *ClientError) Detail() string {
	if e.Description == "" {
		return e.Message
	}
	return e.Message + " " + e.Description
}

// Is matches kind sentinels such as ErrValidation.
func (e *ClientError) Is(target error) bool {
	return matchesKind(e.Kind, target)
}

func NewServerError(msg ErrorMessage, kind Kind, cause error) *ServerError {
	return &ServerError{
		ErrorMessage: msg,
		Kind:         kind,
		Err:          cause,
	}
}

func NewClientError(msg ErrorMessage, kind Kind) *ClientError {
	return &ClientError{
		ErrorMessage: msg,
		Kind:         kind,
	}
}

// NewClientErrorf builds a ClientError from a catalogue entry and a
// formatted description.
func NewClientErrorf(msg ErrorMessage, kind Kind, format string, args ...any) *ClientError {
	msg.Description = fmt.Sprintf(format, args...)
	return NewClientError(msg, kind)
}

// Sentinels for errors.Is. Only the kind is compared.
var (
	ErrValidation         error = &kindSentinel{KindValidation}
	ErrProtocol           error = &kindSentinel{KindProtocol}
	ErrCallerContract     error = &kindSentinel{KindCallerContract}
	ErrUnsupportedVersion error = &kindSentinel{KindUnsupportedVersion}
	ErrTruncatedData      error = &kindSentinel{KindTruncatedData}
	ErrRangeOverflow      error = &kindSentinel{KindRangeOverflow}
	ErrDisabled           error = &kindSentinel{KindDisabled}
)

type kindSentinel struct {
	kind Kind
}

func (s *kindSentinel) Error() string {
	return s.kind.String() + " error"
}

func matchesKind(kind Kind, target error) bool {
	s, ok := target.(*kindSentinel)
	return ok && s.kind == kind
}

// KindOf returns the Kind carried by err, or zero when err is not one of ours.
func KindOf(err error) Kind {
	for _, sentinel := range []error{ErrValidation, ErrProtocol, ErrCallerContract,
		ErrUnsupportedVersion, ErrTruncatedData, ErrRangeOverflow, ErrDisabled} {
		if Is(err, sentinel) {
			return sentinel.(*kindSentinel).kind
		}
	}
	return 0
}
