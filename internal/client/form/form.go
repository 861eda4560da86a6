package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Payload is the merged result of a form, keyed by field name.
type Payload map[string]any

// Decode copies the payload into v through its JSON representation.
func (p Payload) Decode(v any) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// SubmitFunc receives the payload of a valid form. Returning
// ValidationErrors attaches them to the fields instead of to the form.
type SubmitFunc func(ctx context.Context, p Payload) error

type Option func(*Form)

// WithMode selects create or update wording.
func WithMode(m Mode) Option {
	return func(f *Form) { f.mode = m }
}

// WithInitial pre-populates the form from an existing entity. Keys outside
// the schema are ignored; list fields adopt non-empty initial slices.
func WithInitial(values map[string]any) Option {
	return func(f *Form) { f.initial = values }
}

// WithoutSteps shows every field at once and validates all of them on Submit.
func WithoutSteps() Option {
	return func(f *Form) { f.showSteps = false }
}

// WithOptions replaces the option list of a select field, for options only
// known at run time such as the list of charities.
func WithOptions(field string, options []string) Option {
	return func(f *Form) {
		if fd, ok := f.schema.Fields[field]; ok {
			fd.Options = slices.Clone(options)
			f.schema.Fields[field] = fd
		}
	}
}

// WithDefaults sets values for fields the initial entity leaves unset.
func WithDefaults(values map[string]any) Option {
	return func(f *Form) { f.defaults = values }
}

// Form is the state of one multi-step form. It is not safe for concurrent
// use.
type Form struct {
	schema    Schema
	mode      Mode
	showSteps bool
	submit    SubmitFunc

	initial  map[string]any
	defaults map[string]any

	current   int
	values    map[string]any
	accepted  map[string]bool
	lists     map[string]*ListField
	tags      map[string]*TagSet
	errs      ValidationErrors
	err       error
	completed bool
}

func New(schema Schema, submit SubmitFunc, opts ...Option) *Form {
	fields := make(map[string]Field, len(schema.Fields))
	for k, v := range schema.Fields {
		fields[k] = v
	}
	schema.Fields = fields

	f := &Form{
		schema:    schema,
		showSteps: true,
		submit:    submit,
		values:    map[string]any{},
		accepted:  map[string]bool{},
		lists:     map[string]*ListField{},
		tags:      map[string]*TagSet{},
	}
	for _, o := range opts {
		o(f)
	}

	for _, name := range schema.FieldNames() {
		fd := f.schema.Fields[name]
		v, ok := f.initial[name]
		if !ok {
			v, ok = f.defaults[name]
		}

		switch fd.Kind {
		case List:
			var init []string
			if ok {
				if c, err := coerce(fd, v); err == nil {
					init = c.([]string)
				}
			}
			f.lists[name] = NewListField(init)
		case Tags:
			var init []string
			if ok {
				if c, err := coerce(fd, v); err == nil {
					init = c.([]string)
				}
			}
			f.tags[name] = NewTagSet(init)
		default:
			if ok {
				if c, err := coerce(fd, v); err == nil {
					f.values[name] = c
				}
			}
		}
	}
	return f
}

// Schema returns the schema the form was built from, with run-time options
// applied.
func (f *Form) Schema() Schema { return f.schema }

// Title is the heading matching the form mode.
func (f *Form) Title() string {
	if f.mode == ModeUpdate && f.schema.UpdateTitle != "" {
		return f.schema.UpdateTitle
	}
	return f.schema.CreateTitle
}

func (f *Form) Mode() Mode { return f.mode }

func (f *Form) ShowSteps() bool { return f.showSteps }

// Current is the 0-based index of the visible step.
func (f *Form) Current() int { return f.current }

func (f *Form) StepCount() int { return len(f.schema.Steps) }

// IsLast reports whether the visible step is the final one.
func (f *Form) IsLast() bool {
	return !f.showSteps || f.current == len(f.schema.Steps)-1
}

// Step returns the visible step. Without steps it is one step holding every
// field.
func (f *Form) Step() Step {
	if !f.showSteps {
		return Step{Title: f.Title(), Fields: f.schema.FieldNames()}
	}
	return f.schema.Steps[f.current]
}

// Fields returns the definitions of the visible fields.
func (f *Form) Fields() []Field {
	st := f.Step()
	out := make([]Field, 0, len(st.Fields))
	for _, n := range st.Fields {
		out = append(out, f.schema.Fields[n])
	}
	return out
}

// Set stores the value of a plain field. Values are coerced to the field's
// kind; List and Tags fields are replaced wholesale.
func (f *Form) Set(name string, v any) error {
	if !f.schema.Has(name) {
		return fmt.Errorf("%w: %s", ErrFieldNotInSchema, name)
	}
	fd := f.schema.Fields[name]
	c, err := coerce(fd, v)
	if err != nil {
		return err
	}

	switch fd.Kind {
	case List:
		f.lists[name] = NewListField(c.([]string))
	case Tags:
		f.tags[name] = NewTagSet(c.([]string))
	default:
		f.values[name] = c
	}
	delete(f.accepted, name)
	delete(f.errs, name)
	return nil
}

// Value returns the current value of name and whether the field belongs to
// the form. Unset plain fields yield nil.
func (f *Form) Value(name string) (any, bool) {
	if !f.schema.Has(name) {
		return nil, false
	}
	if l, ok := f.lists[name]; ok {
		return l.Values(), true
	}
	if t, ok := f.tags[name]; ok {
		return t.Values(), true
	}
	return f.values[name], true
}

// String returns the value of a plain field as a string, or "".
func (f *Form) String(name string) string {
	v, _ := f.Value(name)
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case bool:
		if x {
			return "yes"
		}
		return "no"
	}
	return ""
}

// ListField returns the editor of a List field.
func (f *Form) ListField(name string) (*ListField, error) {
	if !f.schema.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotInSchema, name)
	}
	l, ok := f.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAList, name)
	}
	delete(f.accepted, name)
	return l, nil
}

// TagSet returns the editor of a Tags field.
func (f *Form) TagSet(name string) (*TagSet, error) {
	if !f.schema.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotInSchema, name)
	}
	t, ok := f.tags[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAList, name)
	}
	delete(f.accepted, name)
	return t, nil
}

// Errors returns the field errors of the last Next or Submit.
func (f *Form) Errors() ValidationErrors {
	out := ValidationErrors{}
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Err returns the error of the last failed submission.
func (f *Form) Err() error { return f.err }

// Completed reports whether the form was submitted successfully.
func (f *Form) Completed() bool { return f.completed }

// Next validates the visible step and advances. On failure it returns
// ValidationErrors and stays.
func (f *Form) Next() error {
	if !f.showSteps || f.current >= len(f.schema.Steps)-1 {
		return ErrLastStep
	}
	st := f.schema.Steps[f.current]
	if err := f.validate(st.Fields); err != nil {
		return err
	}
	for _, n := range st.Fields {
		f.accepted[n] = true
	}
	f.current++
	return nil
}

// Back returns to the previous step without validating.
func (f *Form) Back() error {
	if !f.showSteps || f.current == 0 {
		return ErrFirstStep
	}
	f.current--
	f.errs = nil
	return nil
}

// Submit validates every field not already accepted by Next, merges the
// values into a Payload and hands it to the SubmitFunc. A failed submission
// keeps the entered data and is reported by Err.
func (f *Form) Submit(ctx context.Context) error {
	if f.completed {
		return ErrCompleted
	}

	var pending []string
	for _, n := range f.schema.FieldNames() {
		if !f.showSteps || !f.accepted[n] {
			pending = append(pending, n)
		}
	}
	if err := f.validate(pending); err != nil {
		return err
	}

	p := f.Payload()
	if f.submit != nil {
		if err := f.submit(ctx, p); err != nil {
			var verrs ValidationErrors
			if errors.As(err, &verrs) {
				f.errs = verrs
			}
			f.err = err
			return err
		}
	}
	f.err = nil
	f.completed = true
	return nil
}

// Payload merges the plain values that were set with every list and tag
// field. Fields outside the schema never appear.
func (f *Form) Payload() Payload {
	p := Payload{}
	for _, n := range f.schema.FieldNames() {
		if l, ok := f.lists[n]; ok {
			p[n] = l.Values()
			continue
		}
		if t, ok := f.tags[n]; ok {
			p[n] = t.Values()
			continue
		}
		if v, ok := f.values[n]; ok {
			p[n] = v
		}
	}
	return p
}

func (f *Form) validate(names []string) error {
	errs := ValidationErrors{}
	for _, n := range names {
		fd := f.schema.Fields[n]
		v, _ := f.Value(n)
		if msg := fd.Validate(v); msg != "" {
			errs[n] = msg
		}
	}
	if len(errs) > 0 {
		f.errs = errs
		return errs
	}
	f.errs = nil
	return nil
}

// ValuesOf turns an entity into initial values through its JSON form.
func ValuesOf(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
