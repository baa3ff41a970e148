// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package extract maps parsed Exchange response fragments onto flat property
// sets using declarative field specifications. Each entity type declares its
// wire mapping as pure data (name → path + optional cast), keeping the entity
// code free of parsing logic and making every mapping independently testable
// against fixture XML.
package extract

import (
	"fmt"

	"github.com/beevik/etree"
)

// FieldSpec describes where in a response fragment a single property lives
// and how its raw text is converted.
//
// Path is an etree path evaluated relative to the root element handed to
// Properties; paths beginning with a slash resolve against the root's
// document, which keeps legacy absolute selectors working. If Attr is set,
// the value is read from that attribute of the matched element instead of its
// text content.
type FieldSpec struct {
	Path string
	Attr string
	Cast Cast
}

// Values is the flat property set produced by Properties. Fields whose path
// matched nothing are absent, not present with a zero value; the caller
// decides the default.
type Values map[string]any

// Properties evaluates every spec against root and returns the extracted
// values. Only the first match of each path is used; multi-match fields are
// handled by the caller issuing one extraction per matched node. A declared
// cast that fails on the matched text is returned as an error naming the
// field.
func Properties(root *etree.Element, specs map[string]FieldSpec) (Values, error) {
	values := make(Values, len(specs))

	for name, spec := range specs {
		el := root.FindElement(spec.Path)
		if el == nil {
			continue
		}

		var raw string
		if spec.Attr != "" {
			attr := el.SelectAttr(spec.Attr)
			if attr == nil {
				continue
			}
			raw = attr.Value
		} else {
			raw = el.Text()
		}

		value, err := convert(raw, spec.Cast)
		if err != nil {
			return nil, fmt.Errorf("extract field %q: %w", name, err)
		}
		values[name] = value
	}

	return values, nil
}

// Has reports whether the field was present in the response.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// String returns the field as a string, or "" when absent.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the field as an int, or 0 when absent.
func (v Values) Int(key string) int {
	n, _ := v[key].(int)
	return n
}

// Bool returns the field as a bool, or false when absent.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}
