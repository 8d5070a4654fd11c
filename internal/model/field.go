// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the field value types and their parse rules.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FieldType is the declared type of a field. Values are always stored as text.
type FieldType int

const (
	FieldBoolean FieldType = iota
	FieldInteger
	FieldString
)

// String returns the lowercase name of the field type.
func (f FieldType) String() string {
	switch f {
	case FieldBoolean:
		return "boolean"
	case FieldInteger:
		return "integer"
	case FieldString:
		return "string"
	default:
		return fmt.Sprintf("fieldtype(%d)", int(f))
	}
}

// CtyType maps the field type onto the cty type system used by canvas files.
func (f FieldType) CtyType() cty.Type {
	switch f {
	case FieldBoolean:
		return cty.Bool
	case FieldInteger:
		return cty.Number
	default:
		return cty.String
	}
}

// FieldTypeFromCty is the inverse of CtyType.
func FieldTypeFromCty(t cty.Type) (FieldType, error) {
	switch {
	case t.Equals(cty.Bool):
		return FieldBoolean, nil
	case t.Equals(cty.Number):
		return FieldInteger, nil
	case t.Equals(cty.String):
		return FieldString, nil
	default:
		return FieldString, fmt.Errorf("unsupported field type %s: must be bool, number or string", t.FriendlyName())
	}
}

// ErrFieldValue is wrapped by every Validate failure.
var ErrFieldValue = errors.New("invalid field value")

// Validate checks value against the type's parse rule. Booleans must be exactly
// "true" or "false", integers must parse as 32-bit signed decimals and strings
// are unconstrained.
func (f FieldType) Validate(value string) error {
	switch f {
	case FieldBoolean:
		if value != "true" && value != "false" {
			return fmt.Errorf("%w: %q is not a boolean (want \"true\" or \"false\")", ErrFieldValue, value)
		}
	case FieldInteger:
		if _, err := strconv.ParseInt(value, 10, 32); err != nil {
			return fmt.Errorf("%w: %q is not a 32-bit integer", ErrFieldValue, value)
		}
	}
	return nil
}

// ParseValue converts a text value into its cty form.
func (f FieldType) ParseValue(value string) (cty.Value, error) {
	if err := f.Validate(value); err != nil {
		return cty.NilVal, err
	}
	switch f {
	case FieldBoolean:
		return cty.BoolVal(value == "true"), nil
	case FieldInteger:
		n, _ := strconv.ParseInt(value, 10, 32)
		return cty.NumberIntVal(n), nil
	default:
		return cty.StringVal(value), nil
	}
}

// FormatValue renders a cty value as the field's text form.
func (f FieldType) FormatValue(v cty.Value) (string, error) {
	if v.IsNull() || !v.IsKnown() {
		return "", fmt.Errorf("%w: value must be known and non-null", ErrFieldValue)
	}
	var text string
	switch {
	case v.Type().Equals(cty.Bool):
		text = strconv.FormatBool(v.True())
	case v.Type().Equals(cty.Number):
		var n int64
		if err := gocty.FromCtyValue(v, &n); err != nil {
			return "", fmt.Errorf("%w: %s", ErrFieldValue, err)
		}
		text = strconv.FormatInt(n, 10)
	case v.Type().Equals(cty.String):
		text = v.AsString()
	default:
		return "", fmt.Errorf("%w: unsupported value type %s", ErrFieldValue, v.Type().FriendlyName())
	}
	if f == FieldBoolean {
		text = strings.ToLower(text)
	}
	if err := f.Validate(text); err != nil {
		return "", err
	}
	return text, nil
}
