package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/goowi/internal/client/form"
	"github.com/dmitrijs2005/goowi/internal/client/media"
	"github.com/dmitrijs2005/goowi/internal/common"
	"github.com/dmitrijs2005/goowi/internal/filex"
)

// optionLabels gives display names for option values, e.g. charity ids.
type optionLabels map[string]string

func (l optionLabels) label(v string) string {
	if s, ok := l[v]; ok && s != "" {
		return s
	}
	return v
}

// fillForm walks f step by step, prompting for every visible field and
// re-prompting only the fields that failed validation, then submits.
func (a *App) fillForm(ctx context.Context, f *form.Form, labels optionLabels) error {
	a.println("== " + f.Title() + " ==")
	uploaders := map[string]*media.Uploader{}

	todo := f.Fields()
	a.printStep(f)
	for {
		for _, fd := range todo {
			if err := a.promptField(ctx, f, fd, labels, uploaders); err != nil {
				return err
			}
		}

		var err error
		if f.IsLast() {
			err = f.Submit(ctx)
		} else {
			err = f.Next()
		}

		var verrs form.ValidationErrors
		switch {
		case err == nil && f.Completed():
			return nil
		case err == nil:
			todo = f.Fields()
			a.printStep(f)
		case errors.As(err, &verrs):
			a.printErrors(f, err)
			todo = todo[:0:0]
			for _, name := range f.Schema().FieldNames() {
				if _, bad := verrs[name]; bad {
					fd, _ := f.Schema().Field(name)
					todo = append(todo, fd)
				}
			}
			if len(todo) == 0 {
				return err
			}
		default:
			return err
		}
	}
}

func (a *App) printStep(f *form.Form) {
	if !f.ShowSteps() {
		return
	}
	st := f.Step()
	a.printf("-- Step %d/%d: %s --\n", f.Current()+1, f.StepCount(), st.Title)
	if st.Description != "" {
		a.println(st.Description)
	}
	if len(st.Fields) == 0 {
		a.println(a.review(f))
	}
}

// review renders every value entered so far.
func (a *App) review(f *form.Form) string {
	var b strings.Builder
	for _, name := range f.Schema().FieldNames() {
		fd, _ := f.Schema().Field(name)
		if fd.Kind == form.Password {
			continue
		}
		if s := f.String(name); s != "" {
			fmt.Fprintf(&b, "  %s: %s\n", fd.Label, s)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) printErrors(f *form.Form, err error) {
	var verrs form.ValidationErrors
	if !errors.As(err, &verrs) {
		a.println("Error:", userMessage(err))
		return
	}
	for _, name := range f.Schema().FieldNames() {
		if msg, ok := verrs[name]; ok {
			fd, _ := f.Schema().Field(name)
			a.printf("  %s: %s\n", fd.Label, msg)
		}
	}
}

func (a *App) prompt(fd form.Field, current string) string {
	p := fd.Label
	if fd.IsRequired() {
		p += " *"
	}
	if fd.Placeholder != "" {
		p += " (" + fd.Placeholder + ")"
	}
	if current != "" {
		p += " [" + current + "]"
	}
	return p
}

// promptField reads one field. An empty answer keeps the current value.
func (a *App) promptField(ctx context.Context, f *form.Form, fd form.Field, labels optionLabels, uploaders map[string]*media.Uploader) error {
	current := f.String(fd.Name)

	switch fd.Kind {
	case form.Password:
		pw, err := getPassword(a.out)
		if err != nil {
			return err
		}
		return a.set(f, fd.Name, string(pw))

	case form.TextArea:
		text, err := GetMultiline(a.reader, a.prompt(fd, current), a.out)
		if err != nil || text == "" {
			return err
		}
		return a.set(f, fd.Name, text)

	case form.Select, form.MultiSelect:
		a.printOptions(fd, labels)
		ans, err := getSimpleText(a.reader, a.prompt(fd, labelsOf(current, labels)), a.out)
		if err != nil || ans == "" {
			return err
		}
		picked := pickOptions(fd, ans, labels)
		if fd.Kind == form.Select {
			return a.set(f, fd.Name, first(picked))
		}
		return a.set(f, fd.Name, picked)

	case form.List:
		lines, err := GetLines(a.reader, a.prompt(fd, current), a.out)
		if err != nil || len(lines) == 0 {
			return err
		}
		l, err := f.ListField(fd.Name)
		if err != nil {
			return err
		}
		for l.Len() > 1 {
			_ = l.Remove(l.Len() - 1)
		}
		for i, line := range lines {
			if i > 0 {
				l.Add()
			}
			if err := l.Update(i, line); err != nil {
				return err
			}
		}
		return nil

	case form.Tags:
		ans, err := getSimpleText(a.reader, a.prompt(fd, current)+"\n(comma separated, -tag removes)", a.out)
		if err != nil || ans == "" {
			return err
		}
		ts, err := f.TagSet(fd.Name)
		if err != nil {
			return err
		}
		for _, t := range common.SplitList(ans) {
			if rest, ok := strings.CutPrefix(t, "-"); ok {
				ts.Remove(rest)
				continue
			}
			ts.Add(t)
		}
		return nil

	case form.Bool:
		ans, err := getSimpleText(a.reader, a.prompt(fd, current)+" (yes/no)", a.out)
		if err != nil || ans == "" {
			return err
		}
		return a.set(f, fd.Name, ans)

	case form.Image, form.Images:
		return a.promptImages(ctx, f, fd, uploaders)

	default:
		ans, err := getSimpleText(a.reader, a.prompt(fd, current), a.out)
		if err != nil || ans == "" {
			return err
		}
		return a.set(f, fd.Name, ans)
	}
}

func (a *App) set(f *form.Form, name string, v any) error {
	if err := f.Set(name, v); err != nil {
		a.println("  " + userMessage(err))
	}
	return nil
}

func (a *App) printOptions(fd form.Field, labels optionLabels) {
	for i, o := range fd.Options {
		a.printf("  %2d) %s\n", i+1, labels.label(o))
	}
}

func labelsOf(current string, labels optionLabels) string {
	if current == "" {
		return ""
	}
	parts := strings.Split(current, ", ")
	for i, p := range parts {
		parts[i] = labels.label(p)
	}
	return strings.Join(parts, ", ")
}

// pickOptions maps a comma separated answer of option numbers, values or
// labels onto option values. Unknown entries are passed through so the
// form's option rule can report them.
func pickOptions(fd form.Field, ans string, labels optionLabels) []string {
	var out []string
	for _, item := range common.SplitList(ans) {
		if n, err := strconv.Atoi(item); err == nil && n >= 1 && n <= len(fd.Options) {
			out = append(out, fd.Options[n-1])
			continue
		}
		i := slices.IndexFunc(fd.Options, func(o string) bool {
			return strings.EqualFold(o, item) || strings.EqualFold(labels.label(o), item)
		})
		if i >= 0 {
			out = append(out, fd.Options[i])
			continue
		}
		out = append(out, item)
	}
	return out
}

// promptImages reads file paths, uploads them through the field's uploader
// and stores the resulting URLs. "-n" removes the n-th current image.
func (a *App) promptImages(ctx context.Context, f *form.Form, fd form.Field, uploaders map[string]*media.Uploader) error {
	u, ok := uploaders[fd.Name]
	if !ok {
		v, _ := f.Value(fd.Name)
		var initial []string
		switch x := v.(type) {
		case string:
			initial = []string{x}
		case []string:
			initial = x
		}
		u = media.NewUploader(a.media, fd.Width, fd.Height, fd.MaxImages).WithInitial(initial)
		uploaders[fd.Name] = u
	}

	for i, url := range u.URLs() {
		a.printf("  %d) %s\n", i+1, url)
	}
	ans, err := getSimpleText(a.reader, fmt.Sprintf("%s (file paths, comma separated, up to %d; -n removes)", fd.Label, u.MaxImages()), a.out)
	if err != nil || ans == "" {
		return err
	}

	var files []media.File
	for _, item := range common.SplitList(ans) {
		if rest, ok := strings.CutPrefix(item, "-"); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				if err := u.Remove(n - 1); err != nil {
					a.println("  " + userMessage(err))
				}
				continue
			}
		}
		data, err := filex.ReadLimited(item, maxImageBytes)
		if err != nil {
			a.printf("  %s: %v\n", item, err)
			continue
		}
		files = append(files, media.File{Name: filepath.Base(item), Data: data})
	}

	if a.media == nil && len(files) > 0 {
		a.println("  image uploads are not configured")
		files = nil
	}
	for _, r := range u.AddAll(ctx, files) {
		if r.Err != nil {
			a.printf("  %s: %s\n", r.Name, userMessage(r.Err))
			continue
		}
		a.printf("  %s uploaded\n", r.Name)
	}

	urls := u.URLs()
	if fd.Kind == form.Image {
		return a.set(f, fd.Name, first(urls))
	}
	return a.set(f, fd.Name, urls)
}
