// Package helpers provides small shared utilities used across the module.
package helpers

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// isEmptyPrimitive handles primitive type checks
func isEmptyPrimitive(v reflect.Value) (bool, bool) {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == "", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0, true
	case reflect.Bool:
		return !v.Bool(), true
	}
	return false, false
}

// IsEmpty checks if the given value represents an empty or zero value.
// Strings count as empty when they contain only whitespace.
func IsEmpty[T any](value T) bool {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return true
	}

	// Handle pointer and interface types first
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return true
		}
		return IsEmpty(v.Elem().Interface())
	}

	if isEmpty, ok := isEmptyPrimitive(v); ok {
		return isEmpty
	}

	switch v.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return v.IsNil() || v.Len() == 0
	}

	return false
}

// ValidateURL validates the provided request URL.
func ValidateURL(requestURL string) error {
	_, err := url.ParseRequestURI(requestURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	return nil
}
