package i18n

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// TranslatableError represents an error that can be translated
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
}

// MessageProvider defines an interface for getting messages by key
type MessageProvider interface {
	GetMessage(key string) string
}

// TrError represents a translatable error with optional formatting arguments
// and error wrapping support.
//
// Example usage:
//
//	err := NewError("clikit.error.unknown_flag")
//	err = err.WithArgs("--colour")
//	err = err.Wrap(originalError)
type TrError struct {
	// sentinel is shared by all copies of the error for errors.Is comparison
	sentinel error
	key      string
	args     []interface{}
	wrapped  error
}

// DefaultMessageProvider implements MessageProvider using a bundle and a language
type DefaultMessageProvider struct {
	bundle *Bundle
	lang   language.Tag
}

// GetMessage returns the raw message for key or the key itself when unknown
func (p *DefaultMessageProvider) GetMessage(key string) string {
	if msg, ok := p.bundle.Lookup(p.lang, key); ok {
		return msg
	}
	return key
}

// NewError creates a new translatable error with a key
func NewError(key string) *TrError {
	return &TrError{
		sentinel: errors.New(key),
		key:      key,
	}
}

// Error returns the message in the current default language, formatted with args if provided
func (e *TrError) Error() string {
	msg := getDefaultProvider().GetMessage(e.key)
	if len(e.args) > 0 {
		msg = fmt.Sprintf(msg, e.args...)
	}

	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     args,
		wrapped:  e.wrapped,
	}
}

// Wrap returns a new error that wraps another error
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     e.args,
		wrapped:  err,
	}
}

// Is implements errors.Is for comparison with the sentinel error
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}
	return target == e.sentinel
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider allows users to set their own provider
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	defaultProvider = p
}

// SetDefaultLanguage switches the language used by Error() for all translatable errors.
// Languages the default bundle does not know fall back to the closest match.
func SetDefaultLanguage(lang language.Tag) {
	SetDefaultMessageProvider(&DefaultMessageProvider{
		bundle: Default(),
		lang:   Default().Match(lang),
	})
}

func getDefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	if defaultProvider != nil {
		defer defaultProviderMux.RUnlock()
		return defaultProvider
	}
	defaultProviderMux.RUnlock()

	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()

	if defaultProvider == nil {
		defaultProvider = &DefaultMessageProvider{
			bundle: Default(),
			lang:   language.English,
		}
	}
	return defaultProvider
}
