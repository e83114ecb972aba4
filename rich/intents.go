// SPDX-License-Identifier: MIT

package rich

import (
	"encoding/json"

	"github.com/voxhook/voxhook/internal/wire"
)

// Permission is a user-data permission the app can request.
type Permission string

// Permissions the platform understands.
const (
	PermissionName            Permission = "NAME"
	PermissionPreciseLocation Permission = "DEVICE_PRECISE_LOCATION"
	PermissionCoarseLocation  Permission = "DEVICE_COARSE_LOCATION"
	PermissionUpdate          Permission = "UPDATE"
)

func (p Permission) valid() bool {
	switch p {
	case PermissionName, PermissionPreciseLocation, PermissionCoarseLocation, PermissionUpdate:
		return true
	}
	return false
}

// SystemIntent is a platform-defined request for structured input. The
// rendering text of these flows is owned by the platform at runtime; the
// library only installs a placeholder initial prompt.
type SystemIntent struct {
	// IntentV1 and IntentV2 are the generation-specific intent identifiers.
	IntentV1 string
	IntentV2 string
	// ExpectedArgument names the argument the follow-up turn will carry.
	ExpectedArgument string
	// Placeholder is the initial prompt text the serializer installs.
	Placeholder string

	specV1 any
	specV2 any
}

// SpecV1JSON marshals the generation-1 (snake_case) value spec.
func (si *SystemIntent) SpecV1JSON() (json.RawMessage, error) {
	if si.specV1 == nil {
		return nil, nil
	}
	return json.Marshal(si.specV1)
}

// SpecV2JSON marshals the generation-2 value spec including its @type URL.
func (si *SystemIntent) SpecV2JSON() (json.RawMessage, error) {
	if si.specV2 == nil {
		return nil, nil
	}
	return json.Marshal(si.specV2)
}

type permissionSpecV2 struct {
	Type        string   `json:"@type"`
	OptContext  string   `json:"optContext,omitempty"`
	Permissions []string `json:"permissions"`
}

type permissionSpecV1 struct {
	OptContext  string   `json:"opt_context,omitempty"`
	Permissions []string `json:"permissions"`
}

// NewPermission requests one or more user-data permissions. optContext
// explains why the data is needed. At least one valid permission is required.
func NewPermission(optContext string, permissions ...Permission) (*SystemIntent, error) {
	if len(permissions) == 0 {
		return nil, ErrNoPermissions
	}
	names := make([]string, 0, len(permissions))
	for _, p := range permissions {
		if !p.valid() {
			return nil, ErrInvalidPermission
		}
		names = append(names, string(p))
	}
	return &SystemIntent{
		IntentV1:         wire.IntentPermissionV1,
		IntentV2:         wire.IntentPermissionV2,
		ExpectedArgument: wire.ArgPermission,
		Placeholder:      "PLACEHOLDER_FOR_PERMISSION",
		specV1:           permissionSpecV1{OptContext: optContext, Permissions: names},
		specV2: permissionSpecV2{
			Type:        wire.TypePermissionValueSpec,
			OptContext:  optContext,
			Permissions: names,
		},
	}, nil
}

type signInSpecV2 struct {
	Type       string `json:"@type"`
	OptContext string `json:"optContext,omitempty"`
}

// NewSignIn requests account linking. The action phrase explaining the
// request must be non-empty.
func NewSignIn(actionPhrase string) (*SystemIntent, error) {
	if actionPhrase == "" {
		return nil, ErrEmptyPrompt
	}
	return &SystemIntent{
		IntentV1:         wire.IntentSignInV1,
		IntentV2:         wire.IntentSignInV2,
		ExpectedArgument: wire.ArgSignIn,
		Placeholder:      "PLACEHOLDER_FOR_SIGN_IN",
		specV1:           struct{}{},
		specV2:           signInSpecV2{Type: wire.TypeSignInValueSpec, OptContext: actionPhrase},
	}, nil
}

type confirmationDialogSpec struct {
	RequestConfirmationText string `json:"requestConfirmationText,omitempty"`
}

type confirmationSpecV2 struct {
	Type       string                 `json:"@type"`
	DialogSpec confirmationDialogSpec `json:"dialogSpec"`
}

// NewConfirmation asks the user a yes/no question. The question text must be
// non-empty.
func NewConfirmation(text string) (*SystemIntent, error) {
	if text == "" {
		return nil, ErrEmptyPrompt
	}
	return &SystemIntent{
		IntentV1:         wire.IntentConfirmV1,
		IntentV2:         wire.IntentConfirmationV2,
		ExpectedArgument: wire.ArgConfirmation,
		Placeholder:      "PLACEHOLDER_FOR_CONFIRMATION",
		specV1: struct {
			RequestConfirmationText string `json:"request_confirmation_text,omitempty"`
		}{text},
		specV2: confirmationSpecV2{
			Type:       wire.TypeConfirmationValueSpec,
			DialogSpec: confirmationDialogSpec{RequestConfirmationText: text},
		},
	}, nil
}

type dateTimeDialogSpec struct {
	RequestDatetimeText string `json:"requestDatetimeText,omitempty"`
	RequestDateText     string `json:"requestDateText,omitempty"`
	RequestTimeText     string `json:"requestTimeText,omitempty"`
}

type dateTimeSpecV2 struct {
	Type       string             `json:"@type"`
	DialogSpec dateTimeDialogSpec `json:"dialogSpec"`
}

// NewDateTime asks the user for a date and time. The initial prompt must be
// non-empty; the date and time sub-prompts may be empty.
func NewDateTime(initialPrompt, datePrompt, timePrompt string) (*SystemIntent, error) {
	if initialPrompt == "" {
		return nil, ErrEmptyPrompt
	}
	return &SystemIntent{
		IntentV1:         wire.IntentDateTimeV1,
		IntentV2:         wire.IntentDateTimeV2,
		ExpectedArgument: wire.ArgDateTime,
		Placeholder:      "PLACEHOLDER_FOR_DATETIME",
		specV1: struct {
			RequestDatetimeText string `json:"request_datetime_text,omitempty"`
			RequestDateText     string `json:"request_date_text,omitempty"`
			RequestTimeText     string `json:"request_time_text,omitempty"`
		}{initialPrompt, datePrompt, timePrompt},
		specV2: dateTimeSpecV2{
			Type: wire.TypeDateTimeValueSpec,
			DialogSpec: dateTimeDialogSpec{
				RequestDatetimeText: initialPrompt,
				RequestDateText:     datePrompt,
				RequestTimeText:     timePrompt,
			},
		},
	}, nil
}

type deliveryAddressSpecV2 struct {
	Type           string `json:"@type"`
	AddressOptions struct {
		Reason string `json:"reason,omitempty"`
	} `json:"addressOptions"`
}

// NewDeliveryAddress asks the user for a delivery address.
func NewDeliveryAddress(reason string) *SystemIntent {
	spec := deliveryAddressSpecV2{Type: wire.TypeDeliveryAddressValueSpec}
	spec.AddressOptions.Reason = reason
	return &SystemIntent{
		IntentV2:         wire.IntentDeliveryAddressV2,
		ExpectedArgument: wire.ArgDeliveryAddress,
		Placeholder:      "PLACEHOLDER_FOR_DELIVERY_ADDRESS",
		specV2:           spec,
	}
}

type transactionRequirementsSpecV2 struct {
	Type           string         `json:"@type"`
	OrderOptions   map[string]any `json:"orderOptions,omitempty"`
	PaymentOptions map[string]any `json:"paymentOptions,omitempty"`
}

// NewTransactionRequirements checks whether the user can transact.
func NewTransactionRequirements(orderOptions, paymentOptions map[string]any) *SystemIntent {
	return &SystemIntent{
		IntentV2:         wire.IntentTransactionRequirements,
		ExpectedArgument: wire.ArgTransactionRequirements,
		Placeholder:      "PLACEHOLDER_FOR_TXN_REQUIREMENTS",
		specV2: transactionRequirementsSpecV2{
			Type:           wire.TypeTransactionRequirements,
			OrderOptions:   orderOptions,
			PaymentOptions: paymentOptions,
		},
	}
}

type transactionDecisionSpecV2 struct {
	Type           string         `json:"@type"`
	ProposedOrder  map[string]any `json:"proposedOrder"`
	OrderOptions   map[string]any `json:"orderOptions,omitempty"`
	PaymentOptions map[string]any `json:"paymentOptions,omitempty"`
}

// NewTransactionDecision asks the user to confirm a proposed order. The
// proposed order is required.
func NewTransactionDecision(proposedOrder, orderOptions, paymentOptions map[string]any) (*SystemIntent, error) {
	if len(proposedOrder) == 0 {
		return nil, ErrMissingOrder
	}
	return &SystemIntent{
		IntentV2:         wire.IntentTransactionDecision,
		ExpectedArgument: wire.ArgTransactionDecision,
		Placeholder:      "PLACEHOLDER_FOR_TXN_DECISION",
		specV2: transactionDecisionSpecV2{
			Type:           wire.TypeTransactionDecisionSpec,
			ProposedOrder:  proposedOrder,
			OrderOptions:   orderOptions,
			PaymentOptions: paymentOptions,
		},
	}, nil
}

type optionSpecV2 struct {
	Type           string          `json:"@type"`
	ListSelect     *ListSelect     `json:"listSelect,omitempty"`
	CarouselSelect *CarouselSelect `json:"carouselSelect,omitempty"`
}

type optionSpecV1 struct {
	ListSelect     *ListSelect     `json:"list_select,omitempty"`
	CarouselSelect *CarouselSelect `json:"carousel_select,omitempty"`
}

// NewListOption asks the user to pick from a selection list.
func NewListOption(list *ListSelect) (*SystemIntent, error) {
	if list == nil || len(list.Items) < 2 {
		return nil, ErrListTooSmall
	}
	return &SystemIntent{
		IntentV1:         wire.IntentOptionV1,
		IntentV2:         wire.IntentOptionV2,
		ExpectedArgument: wire.ArgOption,
		Placeholder:      "PLACEHOLDER_FOR_OPTION",
		specV1:           optionSpecV1{ListSelect: list},
		specV2:           optionSpecV2{Type: wire.TypeOptionValueSpec, ListSelect: list},
	}, nil
}

// NewCarouselOption asks the user to pick from a selection carousel.
func NewCarouselOption(carousel *CarouselSelect) (*SystemIntent, error) {
	if carousel == nil || len(carousel.Items) < 2 {
		return nil, ErrCarouselTooSmall
	}
	return &SystemIntent{
		IntentV1:         wire.IntentOptionV1,
		IntentV2:         wire.IntentOptionV2,
		ExpectedArgument: wire.ArgOption,
		Placeholder:      "PLACEHOLDER_FOR_OPTION",
		specV1:           optionSpecV1{CarouselSelect: carousel},
		specV2:           optionSpecV2{Type: wire.TypeOptionValueSpec, CarouselSelect: carousel},
	}, nil
}
