package form

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrLastStep         = errors.New("already at the last step")
	ErrFirstStep        = errors.New("already at the first step")
	ErrFieldNotInSchema = errors.New("field is not part of this form")
	ErrLastEntry        = errors.New("cannot remove the only entry")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrWrongValue       = errors.New("value has the wrong type for this field")
	ErrNotAList         = errors.New("field is not an editable list")
	ErrCompleted        = errors.New("form already submitted")
)

// ValidationErrors maps field names to the message shown next to them.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, k+": "+v[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
