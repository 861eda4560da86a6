package form

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/goowi/internal/common"
	"github.com/go-playground/validator/v10"
)

// validate checks single values against validator tags. It is safe for
// concurrent use.
var validate = validator.New()

// Kind decides how a field is entered and what Go type its value has:
// string for Text, TextArea, Password, Select and Image; []string for
// MultiSelect, List, Images and Tags; bool for Bool.
type Kind int

const (
	Text Kind = iota
	TextArea
	Password
	Select
	MultiSelect
	List
	Image
	Images
	Tags
	Bool
)

// Multi reports whether values of k are string slices.
func (k Kind) Multi() bool {
	switch k {
	case MultiSelect, List, Images, Tags:
		return true
	}
	return false
}

type RuleKind int

const (
	RuleRequired RuleKind = iota + 1
	RuleURL
	RuleEmail
	RuleMinLen
	RuleMaxLen
	RuleOneOf
	RuleMaxItems
)

// Rule is one validation check with the message shown when it fails.
type Rule struct {
	Kind    RuleKind
	Message string
	N       int
}

func Required(msg string) Rule { return Rule{Kind: RuleRequired, Message: msg} }
func URL(msg string) Rule { return Rule{Kind: RuleURL, Message: msg} }
func Email(msg string) Rule { return Rule{Kind: RuleEmail, Message: msg} }
func MinLen(n int, msg string) Rule { return Rule{Kind: RuleMinLen, N: n, Message: msg} }
func MaxLen(n int, msg string) Rule { return Rule{Kind: RuleMaxLen, N: n, Message: msg} }
func OneOf(msg string) Rule { return Rule{Kind: RuleOneOf, Message: msg} }
func MaxItems(n int, msg string) Rule { return Rule{Kind: RuleMaxItems, N: n, Message: msg} }

// Field describes one input. Width, Height and MaxImages only apply to
// Image and Images fields.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Kind        Kind
	Options     []string
	Rules       []Rule

	Width, Height, MaxImages int
}

// IsRequired reports whether the field carries a RuleRequired.
func (f Field) IsRequired() bool {
	return slices.ContainsFunc(f.Rules, func(r Rule) bool { return r.Kind == RuleRequired })
}

// Validate returns the message of the first failing rule, or "".
func (f Field) Validate(v any) string {
	for _, r := range f.Rules {
		if !r.check(f, v) {
			return r.Message
		}
	}
	return ""
}

func (r Rule) check(f Field, v any) bool {
	switch r.Kind {
	case RuleRequired:
		return !isEmpty(v)
	case RuleURL:
		s := asString(v)
		return s == "" || validURL(s)
	case RuleEmail:
		s := asString(v)
		if s == "" {
			return true
		}
		return validate.Var(s, "email") == nil
	case RuleMinLen:
		s := asString(v)
		return s == "" || utf8.RuneCountInString(s) >= r.N
	case RuleMaxLen:
		return utf8.RuneCountInString(asString(v)) <= r.N
	case RuleOneOf:
		if len(f.Options) == 0 {
			return true
		}
		if f.Kind.Multi() {
			for _, s := range asStrings(v) {
				if !slices.Contains(f.Options, s) {
					return false
				}
			}
			return true
		}
		s := asString(v)
		return s == "" || slices.Contains(f.Options, s)
	case RuleMaxItems:
		return len(asStrings(v)) <= r.N
	}
	return true
}

// validURL accepts absolute http and https URLs only.
func validURL(s string) bool {
	return validate.Var(s, "http_url") == nil
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []string:
		for _, s := range x {
			if strings.TrimSpace(s) != "" {
				return false
			}
		}
		return true
	}
	return false
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asStrings(v any) []string {
	s, _ := v.([]string)
	return s
}

// coerce converts user or entity input into the value type of f. Strings
// are accepted for every kind: comma separated for slices, yes/no style for
// booleans.
func coerce(f Field, v any) (any, error) {
	switch f.Kind {
	case Bool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(x)) {
			case "y", "yes", "on":
				return true, nil
			case "n", "no", "off", "":
				return false, nil
			}
			b, err := strconv.ParseBool(strings.TrimSpace(x))
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrWrongValue, f.Name)
			}
			return b, nil
		}
	case MultiSelect, List, Images, Tags:
		switch x := v.(type) {
		case nil:
			return []string{}, nil
		case []string:
			return slices.Clone(x), nil
		case []any:
			out := make([]string, 0, len(x))
			for _, e := range x {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrWrongValue, f.Name)
				}
				out = append(out, s)
			}
			return out, nil
		case string:
			return common.SplitList(x), nil
		}
	default:
		switch x := v.(type) {
		case nil:
			return "", nil
		case string:
			if f.Kind == Password {
				return x, nil
			}
			return strings.TrimSpace(x), nil
		case fmt.Stringer:
			return x.String(), nil
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
			return strings.TrimSpace(rv.String()), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWrongValue, f.Name)
}
