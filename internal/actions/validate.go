package actions

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

// fieldMessages overrides the generic schema messages for the fields users
// type into directly.
var fieldMessages = map[string]string{
	"task:minLength":        MsgTaskRequired,
	"task:maxLength":        MsgTaskTooLong,
	"description:maxLength": MsgDescriptionTooLong,
	"name:minLength":        MsgNameRequired,
	"name:maxLength":        MsgNameTooLong,
}

// compileSchemas compiles every embedded schema once, keyed by action name
func compileSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		entries, err := schemaFS.ReadDir("schemas")
		if err != nil {
			schemasErr = err
			return
		}

		compiler := jsonschema.NewCompiler()
		urls := make(map[string]string, len(entries))
		for _, e := range entries {
			f, err := schemaFS.Open("schemas/" + e.Name())
			if err != nil {
				schemasErr = err
				return
			}
			name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
			url := "mem://actions/" + e.Name()
			err = compiler.AddResource(url, f)
			_ = f.Close()
			if err != nil {
				schemasErr = fmt.Errorf("add schema %s: %w", name, err)
				return
			}
			urls[name] = url
		}

		compiled := make(map[string]*jsonschema.Schema, len(urls))
		for name, url := range urls {
			s, err := compiler.Compile(url)
			if err != nil {
				schemasErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
		schemas = compiled
	})
	return schemas, schemasErr
}

// toDocument turns a typed input into the generic JSON value the validator expects
func toDocument(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// validateDocument checks doc against the named action schema and returns
// per-field messages. A nil map means the document is valid.
func validateDocument(action string, doc any) (map[string][]string, error) {
	compiled, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	schema, ok := compiled[action]
	if !ok {
		return nil, fmt.Errorf("no schema for action %q", action)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}

	fields := make(map[string][]string)
	collectFieldErrors(ve, fields)
	return fields, nil
}

// collectFieldErrors walks to the leaf causes, which carry the useful locations
func collectFieldErrors(ve *jsonschema.ValidationError, fields map[string][]string) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectFieldErrors(cause, fields)
		}
		return
	}

	field := lastSegment(ve.InstanceLocation)
	keyword := lastSegment(ve.KeywordLocation)
	msg := ve.Message
	if custom, ok := fieldMessages[field+":"+keyword]; ok {
		msg = custom
	}
	if field == "" {
		field = "_"
	}
	fields[field] = append(fields[field], msg)
}

func lastSegment(pointer string) string {
	pointer = strings.TrimSuffix(pointer, "/")
	if i := strings.LastIndex(pointer, "/"); i >= 0 {
		return pointer[i+1:]
	}
	return pointer
}
