// SPDX-License-Identifier: MIT

// Package wire holds the plain data shapes of the conversation webhook
// protocol: two API generations crossed with two front-end integrations.
// Nothing in this package has behavior beyond JSON (un)marshalling.
package wire

// Generation identifies the API generation that produced a request.
type Generation int

const (
	// Gen1 is the legacy generation with snake_case field naming.
	Gen1 Generation = 1
	// Gen2 is the current generation with camelCase field naming.
	Gen2 Generation = 2
)

// String returns the wire value of the generation ("1" or "2").
func (g Generation) String() string {
	if g == Gen2 {
		return "2"
	}
	return "1"
}

// FrontEnd identifies the integration that delivered the request.
type FrontEnd int

const (
	// ActionsSDK requests carry a top-level inputs array.
	ActionsSDK FrontEnd = iota
	// Dialogflow requests carry a result/queryResult envelope.
	Dialogflow
)

// String returns a label for logging and metrics.
func (f FrontEnd) String() string {
	if f == ActionsSDK {
		return "actions_sdk"
	}
	return "dialogflow"
}

// Header names consumed and produced by the adapter.
const (
	// HeaderAPIVersion is the legacy platform version header, echoed back on
	// responses when present on the request.
	HeaderAPIVersion = "Google-Assistant-Api-Version"
	// HeaderActionsAPIVersion marks generation-2 requests with value "2".
	HeaderActionsAPIVersion = "Google-Actions-Api-Version"
	// HeaderAgentVersionLabel carries the deployed agent version label.
	HeaderAgentVersionLabel = "Agent-Version-Label"
	// HeaderContentType is attached to every serialized response.
	HeaderContentType = "Content-Type"

	// ContentTypeJSON is the fixed response content type.
	ContentTypeJSON = "application/json; charset=utf-8"
)

// Built-in intent identifiers, per generation.
const (
	IntentMainV1 = "assistant.intent.action.MAIN"
	IntentTextV1 = "assistant.intent.action.TEXT"

	IntentMainV2                  = "actions.intent.MAIN"
	IntentTextV2                  = "actions.intent.TEXT"
	IntentPermissionV2            = "actions.intent.PERMISSION"
	IntentOptionV2                = "actions.intent.OPTION"
	IntentConfirmationV2          = "actions.intent.CONFIRMATION"
	IntentDateTimeV2              = "actions.intent.DATETIME"
	IntentSignInV2                = "actions.intent.SIGN_IN"
	IntentDeliveryAddressV2       = "actions.intent.DELIVERY_ADDRESS"
	IntentTransactionRequirements = "actions.intent.TRANSACTION_REQUIREMENTS_CHECK"
	IntentTransactionDecision     = "actions.intent.TRANSACTION_DECISION"
)

// Built-in argument names populated by system intents.
const (
	ArgPermission              = "PERMISSION"
	ArgOption                  = "OPTION"
	ArgConfirmation            = "CONFIRMATION"
	ArgDateTime                = "DATETIME"
	ArgSignIn                  = "SIGN_IN"
	ArgDeliveryAddress         = "DELIVERY_ADDRESS"
	ArgTransactionRequirements = "TRANSACTION_REQUIREMENTS_CHECK_RESULT"
	ArgTransactionDecision     = "TRANSACTION_DECISION_VALUE"
)

// Value-spec type URLs attached to generation-2 system intent payloads.
const (
	TypePermissionValueSpec       = "type.googleapis.com/google.actions.v2.PermissionValueSpec"
	TypeOptionValueSpec           = "type.googleapis.com/google.actions.v2.OptionValueSpec"
	TypeConfirmationValueSpec     = "type.googleapis.com/google.actions.v2.ConfirmationValueSpec"
	TypeDateTimeValueSpec         = "type.googleapis.com/google.actions.v2.DateTimeValueSpec"
	TypeSignInValueSpec           = "type.googleapis.com/google.actions.v2.SignInValueSpec"
	TypeDeliveryAddressValueSpec  = "type.googleapis.com/google.actions.v2.DeliveryAddressValueSpec"
	TypeTransactionRequirements   = "type.googleapis.com/google.actions.v2.TransactionRequirementsCheckSpec"
	TypeTransactionDecisionSpec   = "type.googleapis.com/google.actions.v2.TransactionDecisionValueSpec"
)
