// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides reflection helpers for
// setting struct fields from their field tags.
package reflectx

import (
	"fmt"
	"reflect"
	"strconv"

	"cogentcore.org/bridge/base/errors"
)

// SetFromDefaultTags sets the zero-valued fields of the given struct
// pointer from their `default:` field tags, recursing into embedded
// and nested structs. Fields that already have a value are unchanged.
// It returns the errors for all tags that could not be parsed, joined.
func SetFromDefaultTags(obj any) error {
	if obj == nil {
		return nil
	}
	val := NonPointerValue(reflect.ValueOf(obj))
	if val.Kind() != reflect.Struct || !val.CanSet() {
		return fmt.Errorf("reflectx.SetFromDefaultTags: expected a pointer to a struct, not %T", obj)
	}
	return setFromDefaultTags(val)
}

func setFromDefaultTags(val reflect.Value) error {
	typ := val.Type()
	var errs []error
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		if fv.Kind() == reflect.Struct {
			errs = append(errs, setFromDefaultTags(fv))
			continue
		}
		def, ok := f.Tag.Lookup("default")
		if !ok || !fv.IsZero() {
			continue
		}
		if err := setString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("reflectx.SetFromDefaultTags: field %s.%s: %w", typ.Name(), f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// setString sets the given basic-kind value from its string representation.
func setString(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %v", v.Kind())
	}
	return nil
}
