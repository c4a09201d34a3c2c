// Package merge applies JSON merge-patch bodies onto stored entities: members
// that are present and not null overwrite the target, everything else is left
// alone.
package merge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var ErrNotObject = errors.New("patch body must be a JSON object")

// Apply copies the non-null members of patch named in fields onto dst, which
// must be a pointer to a struct.
func Apply(dst interface{}, patch []byte, fields []string) error {
	patch = bytes.TrimSpace(patch)
	if len(patch) == 0 || patch[0] != '{' {
		return ErrNotObject
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(patch, &members); err != nil {
		return fmt.Errorf("decode patch: %w", err)
	}

	allowed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allowed[f] = struct{}{}
	}

	kept := make(map[string]json.RawMessage, len(members))
	for name, raw := range members {
		if _, ok := allowed[name]; !ok {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		kept[name] = raw
	}
	if len(kept) == 0 {
		return nil
	}

	filtered, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(filtered, dst); err != nil {
		return fmt.Errorf("apply patch: %w", err)
	}
	return nil
}

// JSONFields lists the JSON member names of v's struct type, descending into
// embedded structs, minus exclude.
func JSONFields(v interface{}, exclude ...string) []string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}
	var out []string
	collect(t, skip, &out)
	return out
}

func collect(t reflect.Type, skip map[string]struct{}, out *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collect(ft, skip, out)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, ok := skip[name]; ok {
			continue
		}
		*out = append(*out, name)
	}
}
