// Package errs holds the sentinel errors returned by clikit. Every error is translatable and
// can be matched with errors.Is regardless of arguments or wrapping.
package errs

import (
	"github.com/napalu/clikit/i18n"
	"github.com/napalu/clikit/types"
)

// Parser errors
var (
	ErrNilCommand          = i18n.NewError(types.ErrNilCommandKey)
	ErrCommandNotFound     = i18n.NewError(types.ErrCommandNotFoundKey)
	ErrCommandNoCallback   = i18n.NewError(types.ErrCommandNoCallbackKey)
	ErrUnknownFlag         = i18n.NewError(types.ErrUnknownFlagKey)
	ErrFlagExpectsValue    = i18n.NewError(types.ErrFlagExpectsValueKey)
	ErrFlagNotRepeatable   = i18n.NewError(types.ErrFlagNotRepeatableKey)
	ErrRequiredFlag        = i18n.NewError(types.ErrRequiredFlagKey)
	ErrRequiredPositional  = i18n.NewError(types.ErrRequiredPositionalKey)
	ErrUnexpectedArgument  = i18n.NewError(types.ErrUnexpectedArgumentKey)
	ErrInvalidValue        = i18n.NewError(types.ErrInvalidValueKey)
	ErrCommandCallback     = i18n.NewError(types.ErrCommandCallbackKey)
	ErrDeferredLoad        = i18n.NewError(types.ErrDeferredLoadKey)
	ErrLanguageUnavailable = i18n.NewError(types.ErrLanguageUnavailableKey)
)

// Completion model construction errors. These are configuration mistakes and abort script
// generation for the whole command tree.
var (
	ErrPositionalAfterVariadic = i18n.NewError(types.ErrPositionalAfterVariadicKey)
	ErrRequiredAfterOptional   = i18n.NewError(types.ErrRequiredAfterOptionalKey)
	ErrDuplicateOption         = i18n.NewError(types.ErrDuplicateOptionKey)
	ErrDuplicateAlias          = i18n.NewError(types.ErrDuplicateAliasKey)
	ErrInvalidAlias            = i18n.NewError(types.ErrInvalidAliasKey)
	ErrInvalidMatcher          = i18n.NewError(types.ErrInvalidMatcherKey)
	ErrInCommand               = i18n.NewError(types.ErrInCommandKey)
)

// Completion caller and installation errors
var (
	ErrUnsupportedShell = i18n.NewError(types.ErrUnsupportedShellKey)
	ErrNoScript         = i18n.NewError(types.ErrNoScriptKey)
	ErrCompletionPath   = i18n.NewError(types.ErrCompletionPathKey)
	ErrWriteScript      = i18n.NewError(types.ErrWriteScriptKey)
)

// Definition file errors
var (
	ErrReadDefinition    = i18n.NewError(types.ErrReadDefinitionKey)
	ErrDecodeDefinition  = i18n.NewError(types.ErrDecodeDefinitionKey)
	ErrInvalidValueType  = i18n.NewError(types.ErrInvalidValueTypeKey)
	ErrInvalidCompletion = i18n.NewError(types.ErrInvalidCompletionKey)
	ErrMissingName       = i18n.NewError(types.ErrMissingNameKey)
)
