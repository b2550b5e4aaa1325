// Package types provides common type definitions for the clikit library.
// This file contains constants for all translation keys used throughout the library.
package types

// Prefix for all clikit translation keys
const (
	PrefixKey = "clikit"
)

// Error prefixes
const (
	ErrorPrefixKey       = PrefixKey + ".error"
	CompletionErrorKey   = ErrorPrefixKey + ".completion"
	DefinitionErrorKey   = ErrorPrefixKey + ".definition"
	MessagePrefixKey     = PrefixKey + ".msg"
	CompletionMessageKey = MessagePrefixKey + ".completion"
)

// Core parser errors
const (
	ErrNilCommandKey          = ErrorPrefixKey + ".nil_command"
	ErrCommandNotFoundKey     = ErrorPrefixKey + ".command_not_found"
	ErrCommandNoCallbackKey   = ErrorPrefixKey + ".command_no_callback"
	ErrUnknownFlagKey         = ErrorPrefixKey + ".unknown_flag"
	ErrFlagExpectsValueKey    = ErrorPrefixKey + ".flag_expects_value"
	ErrFlagNotRepeatableKey   = ErrorPrefixKey + ".flag_not_repeatable"
	ErrRequiredFlagKey        = ErrorPrefixKey + ".required_flag"
	ErrRequiredPositionalKey  = ErrorPrefixKey + ".required_positional"
	ErrUnexpectedArgumentKey  = ErrorPrefixKey + ".unexpected_argument"
	ErrInvalidValueKey        = ErrorPrefixKey + ".invalid_value"
	ErrCommandCallbackKey     = ErrorPrefixKey + ".command_callback_error"
	ErrDeferredLoadKey        = ErrorPrefixKey + ".deferred_load"
	ErrLanguageUnavailableKey = ErrorPrefixKey + ".language_not_available"
)

// Completion model construction errors
const (
	ErrPositionalAfterVariadicKey = CompletionErrorKey + ".positional_after_variadic"
	ErrRequiredAfterOptionalKey   = CompletionErrorKey + ".required_after_optional"
	ErrDuplicateOptionKey         = CompletionErrorKey + ".duplicate_option"
	ErrDuplicateAliasKey          = CompletionErrorKey + ".duplicate_alias"
	ErrInvalidAliasKey            = CompletionErrorKey + ".invalid_alias"
	ErrInvalidMatcherKey          = CompletionErrorKey + ".invalid_matcher"
	ErrInCommandKey               = CompletionErrorKey + ".in_command"
	ErrUnsupportedShellKey        = CompletionErrorKey + ".unsupported_shell"
	ErrNoScriptKey                = CompletionErrorKey + ".no_script"
	ErrCompletionPathKey          = CompletionErrorKey + ".path"
	ErrWriteScriptKey             = CompletionErrorKey + ".write_script"
)

// Definition file errors
const (
	ErrReadDefinitionKey    = DefinitionErrorKey + ".read"
	ErrDecodeDefinitionKey  = DefinitionErrorKey + ".decode"
	ErrInvalidValueTypeKey  = DefinitionErrorKey + ".invalid_value_type"
	ErrInvalidCompletionKey = DefinitionErrorKey + ".invalid_completion"
	ErrMissingNameKey       = DefinitionErrorKey + ".missing_name"
)

// UI messages
const (
	MsgUsageKey           = MessagePrefixKey + ".usage"
	MsgCommandsKey        = MessagePrefixKey + ".commands"
	MsgOptionsKey         = MessagePrefixKey + ".options"
	MsgArgumentsKey       = MessagePrefixKey + ".arguments"
	MsgRequiredKey        = MessagePrefixKey + ".required"
	MsgDefaultsToKey      = MessagePrefixKey + ".defaults_to"
	MsgHelpFlagKey        = MessagePrefixKey + ".help_flag"
	MsgPlaceholderKey     = CompletionMessageKey + ".placeholder"
	MsgCompletionCmdKey   = CompletionMessageKey + ".command"
	MsgCompletionShellKey = CompletionMessageKey + ".shell"
	MsgCompletionDynKey   = CompletionMessageKey + ".dynamic"
	MsgCompletionInstKey  = CompletionMessageKey + ".install"
	MsgCompletionSavedKey = CompletionMessageKey + ".saved"
)
