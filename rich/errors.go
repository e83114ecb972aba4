// SPDX-License-Identifier: MIT

package rich

import "errors"

// Validation failures are distinct sentinels so callers can classify them
// with errors.Is instead of string matching.
var (
	// ErrNoSimpleItem rejects a rich response that carries no text/SSML item
	// and no system intent.
	ErrNoSimpleItem = errors.New("rich response requires at least one simple response item")

	// ErrListTooSmall rejects a list with fewer than two selectable items.
	ErrListTooSmall = errors.New("list requires at least 2 items")

	// ErrCarouselTooSmall rejects a carousel with fewer than two selectable items.
	ErrCarouselTooSmall = errors.New("carousel requires at least 2 items")

	// ErrTooManyPrompts rejects a no-input or no-match prompt list with more
	// than three entries. The surplus is an error, never a silent truncation.
	ErrTooManyPrompts = errors.New("prompt list exceeds 3 entries")

	// ErrNoPermissions rejects a permission request naming no permissions.
	ErrNoPermissions = errors.New("permission request requires at least one permission")

	// ErrInvalidPermission rejects an unknown permission name.
	ErrInvalidPermission = errors.New("unknown permission")

	// ErrEmptyPrompt rejects a system-intent prompt built from an empty string.
	ErrEmptyPrompt = errors.New("prompt text must not be empty")

	// ErrMissingOrder rejects a transaction decision without a proposed order.
	ErrMissingOrder = errors.New("transaction decision requires a proposed order")
)

// MaxReprompts is the ceiling on no-input and no-match prompt lists.
const MaxReprompts = 3

// CheckPromptCount enforces the reprompt ceiling.
func CheckPromptCount(prompts []string) error {
	if len(prompts) > MaxReprompts {
		return ErrTooManyPrompts
	}
	return nil
}

// IsValidationError reports whether err is (or wraps) one of the package's
// structural validation sentinels.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrNoSimpleItem,
		ErrListTooSmall,
		ErrCarouselTooSmall,
		ErrTooManyPrompts,
		ErrNoPermissions,
		ErrInvalidPermission,
		ErrEmptyPrompt,
		ErrMissingOrder,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
