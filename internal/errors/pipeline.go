package errors

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a missing or unusable required input. The
// operation that raises it aborts before producing any partial state.
type ConfigurationError struct {
	Setting string `json:"setting"`
	Message string `json:"message"`
}

func (ce *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", ce.Setting, ce.Message)
}

func NewConfigurationError(setting, message string) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Message: message}
}

// MalformedRecordError reports a single input record that failed structural
// validation. The record is skipped and the batch continues; callers receive
// the collected errors alongside the surviving results.
type MalformedRecordError struct {
	Kind   string `json:"kind"` // "question", "submission", "analysis", "student"
	Ref    string `json:"ref"`  // record identifier or row reference
	Reason string `json:"reason"`
}

func (me *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record %s: %s", me.Kind, me.Ref, me.Reason)
}

func NewMalformedRecordError(kind, ref, reason string) *MalformedRecordError {
	return &MalformedRecordError{Kind: kind, Ref: ref, Reason: reason}
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsMalformedRecord reports whether err is a MalformedRecordError.
func IsMalformedRecord(err error) bool {
	var me *MalformedRecordError
	return errors.As(err, &me)
}

// IsValidation reports whether err carries field validation failures.
func IsValidation(err error) bool {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}
