// Package faults defines the closed set of coded errors used across the
// edge configuration core. Every fallible operation fails with one of the
// kinds declared here so callers can dispatch on stable numeric codes.
package faults

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Kind is a named error variant with a stable numeric code and a message
// template using positional fmt verbs.
type Kind struct {
	code     int
	name     string
	template string
}

// Code returns the stable numeric code of the kind.
func (k *Kind) Code() int { return k.code }

// Name returns the identifier of the kind.
func (k *Kind) Name() string { return k.name }

// Template returns the raw message template.
func (k *Kind) Template() string { return k.template }

// Error makes a Kind usable as an errors.Is target. The rendered text is the
// raw template because a bare kind carries no params.
func (k *Kind) Error() string { return k.template }

// Message renders the template with the given positional params. A mismatch
// between the number of template verbs and supplied params is logged and
// tolerated; rendering proceeds with whatever was supplied.
func (k *Kind) Message(params ...any) string {
	if want := k.paramCount(); want != len(params) {
		diagnostics().Warn().
			Str("kind", k.name).
			Int("expected", want).
			Int("got", len(params)).
			Msg("error template parameter count mismatch")
	}
	rendered := make([]any, len(params))
	for i, p := range params {
		rendered[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf(k.template, rendered...)
}

func (k *Kind) paramCount() int {
	return strings.Count(k.template, "%") - 2*strings.Count(k.template, "%%")
}

// New constructs an error value carrying this kind and the given params.
func (k *Kind) New(params ...any) error {
	return &Error{kind: k, params: params, message: k.Message(params...)}
}

// Error is a failure tagged with a Kind. It satisfies errors.Is against the
// originating kind and against other Errors of the same kind.
type Error struct {
	kind    *Kind
	params  []any
	message string
}

func (e *Error) Error() string { return e.message }

// Kind returns the error kind.
func (e *Error) Kind() *Kind { return e.kind }

// Code returns the numeric code of the underlying kind.
func (e *Error) Code() int { return e.kind.code }

// Params returns the positional parameters the error was raised with.
func (e *Error) Params() []any { return e.params }

// Is matches the bare kind as well as any error of the same kind.
func (e *Error) Is(target error) bool {
	if k, ok := target.(*Kind); ok {
		return e.kind == k
	}
	if other, ok := target.(*Error); ok {
		return e.kind == other.kind
	}
	return false
}

/*
 * Generic error.
 */
var Generic = &Kind{1, "Generic", "%s"}

/*
 * Common errors. 1000-1999
 */
var (
	NoValidChannelAddress = &Kind{1000, "NoValidChannelAddress", "This [%s] is not a valid channel address"}
	UserNotAuthenticated  = &Kind{1001, "UserNotAuthenticated", "User is not authenticated. [%s]"}
	RoleAccessDenied      = &Kind{1002, "RoleAccessDenied", "Access to this resource [%s] is denied for User with Role [%s]"}
	AuthenticationFailed  = &Kind{1003, "AuthenticationFailed", "Authentication failed"}
	UserUndefined         = &Kind{1004, "UserUndefined", "User [%s] is not defined"}
	RoleUndefined         = &Kind{1005, "RoleUndefined", "Role for User [%s] is not defined"}
)

/*
 * Edge errors. 2000-2999
 */
var (
	EdgeNoComponentWithID        = &Kind{2000, "EdgeNoComponentWithID", "Unable to find Component with ID [%s]"}
	EdgeMultipleComponentsWithID = &Kind{2001, "EdgeMultipleComponentsWithID", "Found more than one Component with ID [%s]"}
	EdgeApplyConfigFailed        = &Kind{2002, "EdgeApplyConfigFailed", "Unable to apply configuration to Component [%s]: [%s]"}
	EdgeCreateConfigFailed       = &Kind{2003, "EdgeCreateConfigFailed", "Unable to create configuration for Factory [%s]: [%s]"}
	EdgeDeleteConfigFailed       = &Kind{2004, "EdgeDeleteConfigFailed", "Unable to delete configuration for Component [%s]: [%s]"}
	EdgeChannelNoOption          = &Kind{2005, "EdgeChannelNoOption", "Channel has no Option [%s]. Existing options: %s"}
)

/*
 * Backend errors. 3000-3999
 */
var (
	BackendEdgeNotConnected = &Kind{3000, "BackendEdgeNotConnected", "Edge [%s] is not connected"}
	BackendUITokenMissing   = &Kind{3001, "BackendUITokenMissing", "Token for UI connection is missing"}
	BackendNoUIWithToken    = &Kind{3002, "BackendNoUIWithToken", "No open connection with Token [%s]"}
)

/*
 * JSON-RPC Request/Response/Notification errors. 4000-4999
 */
var (
	RPCIDNotUnique            = &Kind{4000, "RPCIDNotUnique", "A Request with this ID [%s] had already been existing"}
	RPCUnhandledMethod        = &Kind{4001, "RPCUnhandledMethod", "Unhandled JSON-RPC method [%s]"}
	RPCInvalidMessage         = &Kind{4002, "RPCInvalidMessage", "JSON-RPC Message is not a valid Request, Result or Notification: %s"}
	RPCResponseWithoutRequest = &Kind{4003, "RPCResponseWithoutRequest", "Got Response without Request: %s"}
)

/*
 * JSON access errors. 5000-5999
 */
var (
	JSONHasNoMember        = &Kind{5000, "JSONHasNoMember", "JSON [%s] has no member [%s]"}
	JSONNoIntegerMember    = &Kind{5001, "JSONNoIntegerMember", "JSON [%s:%s] is not an Integer"}
	JSONNoObject           = &Kind{5002, "JSONNoObject", "JSON [%s] is not a JSON-Object"}
	JSONNoObjectMember     = &Kind{5003, "JSONNoObjectMember", "JSON [%s:%s] is not a JSON-Object"}
	JSONNoPrimitive        = &Kind{5004, "JSONNoPrimitive", "JSON [%s] is not a JSON-Primitive"}
	JSONNoPrimitiveMember  = &Kind{5005, "JSONNoPrimitiveMember", "JSON [%s:%s] is not a JSON-Primitive"}
	JSONNoArray            = &Kind{5006, "JSONNoArray", "JSON [%s] is not a JSON-Array"}
	JSONNoArrayMember      = &Kind{5007, "JSONNoArrayMember", "JSON [%s:%s] is not a JSON-Array"}
	JSONNoDateMember       = &Kind{5008, "JSONNoDateMember", "JSON [%s:%s] is not a Date. Error: %s"}
	JSONNoString           = &Kind{5009, "JSONNoString", "JSON [%s] is not a String"}
	JSONNoStringMember     = &Kind{5010, "JSONNoStringMember", "JSON [%s:%s] is not a String"}
	JSONNoBoolean          = &Kind{5011, "JSONNoBoolean", "JSON [%s] is not a Boolean"}
	JSONNoBooleanMember    = &Kind{5012, "JSONNoBooleanMember", "JSON [%s:%s] is not a Boolean"}
	JSONNoNumber           = &Kind{5013, "JSONNoNumber", "JSON [%s] is not a Number"}
	JSONNoNumberMember     = &Kind{5014, "JSONNoNumberMember", "JSON [%s:%s] is not a Number"}
	JSONParseElementFailed = &Kind{5015, "JSONParseElementFailed", "JSON failed to parse [%s]. %s: %s"}
	JSONParseFailed        = &Kind{5016, "JSONParseFailed", "JSON failed to parse [%s]: %s"}
	JSONNoFloatMember      = &Kind{5017, "JSONNoFloatMember", "JSON [%s:%s] is not a Float"}
)

func allKinds() []*Kind {
	return []*Kind{
		Generic,
		NoValidChannelAddress, UserNotAuthenticated, RoleAccessDenied,
		AuthenticationFailed, UserUndefined, RoleUndefined,
		EdgeNoComponentWithID, EdgeMultipleComponentsWithID, EdgeApplyConfigFailed,
		EdgeCreateConfigFailed, EdgeDeleteConfigFailed, EdgeChannelNoOption,
		BackendEdgeNotConnected, BackendUITokenMissing, BackendNoUIWithToken,
		RPCIDNotUnique, RPCUnhandledMethod, RPCInvalidMessage, RPCResponseWithoutRequest,
		JSONHasNoMember, JSONNoIntegerMember, JSONNoObject, JSONNoObjectMember,
		JSONNoPrimitive, JSONNoPrimitiveMember, JSONNoArray, JSONNoArrayMember,
		JSONNoDateMember, JSONNoString, JSONNoStringMember, JSONNoBoolean,
		JSONNoBooleanMember, JSONNoNumber, JSONNoNumberMember,
		JSONParseElementFailed, JSONParseFailed, JSONNoFloatMember,
	}
}

var (
	indexOnce sync.Once
	codeIndex map[int]*Kind
)

// The index is built on first use and never mutated afterwards. A duplicate
// code is a defect in the kind table; the first registration wins and the
// collision is logged.
func buildIndex() {
	codeIndex = make(map[int]*Kind)
	for _, kind := range allKinds() {
		if existing, ok := codeIndex[kind.code]; ok {
			diagnostics().Warn().
				Int("code", kind.code).
				Str("kind", kind.name).
				Str("registered", existing.name).
				Msg("duplicate error code")
			continue
		}
		codeIndex[kind.code] = kind
	}
}

// ForCode resolves a numeric code to its Kind. An unknown code resolves to
// Generic; the miss is logged and counted, never rejected.
func ForCode(code int) *Kind {
	indexOnce.Do(buildIndex)
	kind, ok := codeIndex[code]
	if !ok {
		diagnostics().Warn().Int("code", code).Msg("unknown error code")
		unknownCodes().IncUnknownErrorCode(code)
		return Generic
	}
	return kind
}

var (
	loggerMu sync.RWMutex
	logger   = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// SetLogger replaces the diagnostics logger used for latent-defect signals
// (duplicate codes, template arity mismatches, unknown code lookups).
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func diagnostics() *zerolog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	return &l
}

// Collector counts unknown-code lookups. telemetry.Collector satisfies it.
type Collector interface {
	IncUnknownErrorCode(code int)
}

type noopCollector struct{}

func (noopCollector) IncUnknownErrorCode(int) {}

var (
	collectorMu sync.RWMutex
	collector   Collector = noopCollector{}
)

// SetCollector installs the counter fired when ForCode misses. A nil
// collector restores the no-op default.
func SetCollector(c Collector) {
	collectorMu.Lock()
	if c == nil {
		collector = noopCollector{}
	} else {
		collector = c
	}
	collectorMu.Unlock()
}

func unknownCodes() Collector {
	collectorMu.RLock()
	defer collectorMu.RUnlock()
	return collector
}
