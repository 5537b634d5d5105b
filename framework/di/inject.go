package di

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// InjectSpec lists the container keys injected ahead of a constructor's
// extra arguments. An empty entry is a placeholder: it keeps its position
// and receives nil.
type InjectSpec []string

// Named reports how many entries are real keys rather than placeholders.
func (s InjectSpec) Named() int {
	n := 0
	for _, key := range s {
		if key != "" {
			n++
		}
	}
	return n
}

// ParseInjects normalizes an injects specification. Accepted forms are nil,
// InjectSpec, []string and []any holding strings or nils. Whitespace-only
// keys become placeholders. An empty specification yields a nil InjectSpec,
// i.e. no injected slots at all. The input is never modified.
func ParseInjects(v any) (InjectSpec, error) {
	var raw []string

	switch injects := v.(type) {
	case nil:
		return nil, nil
	case InjectSpec:
		raw = injects
	case []string:
		raw = injects
	case []any:
		raw = make([]string, len(injects))
		for i, item := range injects {
			switch key := item.(type) {
			case nil:
			case string:
				raw[i] = key
			default:
				return nil, errors.WithStack(&ValidationError{
					Reason: fmt.Sprintf("inject identity at index %d must be a string, got %T", i, item),
				})
			}
		}
	default:
		return nil, errors.WithStack(&ValidationError{
			Reason: fmt.Sprintf("injects must be a list of strings, got %T", v),
		})
	}

	if len(raw) == 0 {
		return nil, nil
	}

	spec := make(InjectSpec, len(raw))
	for i, key := range raw {
		if strings.TrimSpace(key) != "" {
			spec[i] = key
		}
	}
	return spec, nil
}
