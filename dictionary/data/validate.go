// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package data embeds the JSON Schema that every per-version orchestration
// document (fix42/data.json, fix44/data.json, fix50sp2/data.json) is
// validated against before it is parsed into dictionary tables. The pattern
// (embed.FS registered as a jsonschema.Loaders entry, compiled once) follows
// the convention used elsewhere in this module for embedded-resource validation.
package data

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaFiles embed.FS

func load(s string) (io.ReadCloser, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return schemaFiles.Open(u.Host + u.Path)
}

func init() {
	jsonschema.Loaders["embedfs"] = load
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = jsonschema.Compile("embedfs://schema.json")
	})
	return compiled, compileErr
}

// Validate decodes raw as JSON and checks it against the orchestration data
// schema, returning a *jsonschema.ValidationError describing the first
// violation found.
func Validate(raw []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("dictionary/data: compile schema: %w", err)
	}

	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
		return fmt.Errorf("dictionary/data: decode document: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("dictionary/data: validate document: %w", err)
	}
	return nil
}
