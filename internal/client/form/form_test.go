package form

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestNext_ValidatesExactlyTheVisibleStep(t *testing.T) {
	kinds := map[string]func(models.Role) Schema{
		"profile": ProfileSchema,
		"wave":    WaveSchema,
	}
	for kind, schemaFor := range kinds {
		for _, role := range models.Roles() {
			schema := schemaFor(role)
			for i, st := range schema.Steps {
				t.Run(kind+"/"+string(role)+"/"+st.Title, func(t *testing.T) {
					f := New(schema, nil)
					for j := 0; j < i; j++ {
						fillStep(t, f, schema.Steps[j])
						require.NoError(t, f.Next())
					}
					require.Equal(t, i, f.Current())

					if i == len(schema.Steps)-1 {
						require.ErrorIs(t, f.Next(), ErrLastStep)
						return
					}

					required := map[string]bool{}
					for _, n := range st.Fields {
						if schema.Fields[n].IsRequired() {
							required[n] = true
						}
					}

					err := f.Next()
					if len(required) == 0 {
						require.NoError(t, err)
						assert.Equal(t, i+1, f.Current())
						return
					}

					var verrs ValidationErrors
					require.ErrorAs(t, err, &verrs)
					reported := map[string]bool{}
					for name := range verrs {
						reported[name] = true
					}
					assert.Equal(t, required, reported)
					assert.Equal(t, i, f.Current())

					fillStep(t, f, st)
					require.NoError(t, f.Next())
					assert.Equal(t, i+1, f.Current())
				})
			}
		}
	}
}

func TestWaveSchema_CharityIDOnlyForOtherRoles(t *testing.T) {
	for _, role := range models.Roles() {
		has := WaveSchema(role).Has("charityId")
		assert.Equal(t, role != models.RoleCharity, has, role)
	}
}

// fillStep gives every required field of st a valid value.
func fillStep(t *testing.T, f *Form, st Step) {
	t.Helper()
	for _, n := range st.Fields {
		fd := f.Schema().Fields[n]
		if !fd.IsRequired() {
			continue
		}
		var v any = "some value"
		switch {
		case fd.Kind.Multi() && len(fd.Options) > 0:
			v = []string{fd.Options[0]}
		case fd.Kind.Multi():
			v = []string{"x"}
		case len(fd.Options) > 0:
			v = fd.Options[0]
		}
		require.NoError(t, f.Set(n, v))
	}
}

func TestNext_RequiredMessages(t *testing.T) {
	f := New(ProfileSchema(models.RoleCompany), nil)

	err := f.Next()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)

	want := ValidationErrors{
		"name":             "This field is required",
		"shortDescription": "Please provide a short description",
		"industry":         "This field is required",
		"location":         "Please enter your location",
	}
	if diff := cmp.Diff(want, verrs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, want, f.Errors())
}

func TestNext_URLRule(t *testing.T) {
	f := New(ProfileSchema(models.RoleCharity), nil)
	fillStep(t, f, f.Schema().Steps[0])
	require.NoError(t, f.Set("website", "not a url"))

	err := f.Next()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ValidationErrors{"website": "Please enter a valid URL"}, verrs)

	require.NoError(t, f.Set("website", "https://goowi.org"))
	require.NoError(t, f.Next())
}

func TestRules_EmailAndURL(t *testing.T) {
	email := Field{Name: "email", Rules: []Rule{Email("bad email")}}
	link := Field{Name: "website", Rules: []Rule{URL("bad url")}}

	tests := []struct {
		field Field
		value string
		want  string
	}{
		{email, "ann@example.com", ""},
		{email, "", ""},
		{email, "not-an-email", "bad email"},
		{email, "Ann <ann@example.com>", "bad email"},
		{link, "https://goowi.org/waves?id=1", ""},
		{link, "http://localhost:8080", ""},
		{link, "", ""},
		{link, "goowi.org", "bad url"},
		{link, "ftp://goowi.org", "bad url"},
		{link, "not a url", "bad url"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.field.Validate(tc.value), "%s=%q", tc.field.Name, tc.value)
	}
}

func TestBack(t *testing.T) {
	f := New(ProfileSchema(models.RolePerson), nil)
	require.ErrorIs(t, f.Back(), ErrFirstStep)

	fillStep(t, f, f.Schema().Steps[0])
	require.NoError(t, f.Next())
	require.NoError(t, f.Set("logoImage", ""))
	require.NoError(t, f.Back())
	assert.Equal(t, 0, f.Current())
	require.ErrorIs(t, f.Back(), ErrFirstStep)
}

func TestSet_RejectsFieldsOutsideTheRoleSchema(t *testing.T) {
	company := New(ProfileSchema(models.RoleCompany), nil)
	require.ErrorIs(t, company.Set("impactMetrics", "trees"), ErrFieldNotInSchema)
	_, ok := company.Value("impactMetrics")
	assert.False(t, ok)

	charity := New(ProfileSchema(models.RoleCharity), nil)
	require.NoError(t, charity.Set("impactMetrics", ""))
	v, ok := charity.Value("impactMetrics")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	require.ErrorIs(t, charity.Set("supportTypes", "Donations"), ErrFieldNotInSchema)
	require.ErrorIs(t, New(ProfileSchema(models.RolePerson), nil).Set("industry", "Retail"), ErrFieldNotInSchema)
}

func TestListField(t *testing.T) {
	l := NewListField(nil)
	require.Equal(t, 1, l.Len())
	require.ErrorIs(t, l.Remove(0), ErrLastEntry)

	l.Add()
	l.Add()
	require.NoError(t, l.Update(0, "a"))
	require.NoError(t, l.Update(1, "b"))
	require.NoError(t, l.Update(2, "c"))
	assert.Equal(t, []string{"a", "b", "c"}, l.Items())

	require.NoError(t, l.Remove(1))
	assert.Equal(t, []string{"a", "c"}, l.Items())

	require.ErrorIs(t, l.Remove(5), ErrIndexOutOfRange)
	require.ErrorIs(t, l.Update(-1, "x"), ErrIndexOutOfRange)

	require.NoError(t, l.Remove(0))
	assert.Equal(t, []string{"c"}, l.Items())
	require.ErrorIs(t, l.Remove(0), ErrLastEntry)
	assert.Equal(t, 1, l.Len())
}

func TestListField_RemovePreservesOrder(t *testing.T) {
	base := []string{"a", "b", "c", "d", "e"}
	for i := range base {
		l := NewListField(base)
		require.NoError(t, l.Remove(i))
		want := append(append([]string{}, base[:i]...), base[i+1:]...)
		assert.Equal(t, want, l.Items())
	}
}

func TestTagSet(t *testing.T) {
	ts := NewTagSet([]string{"ocean", "ocean", " "})
	assert.Equal(t, []string{"ocean"}, ts.Values())

	assert.True(t, ts.Add("trees"))
	assert.False(t, ts.Add("trees"))
	assert.False(t, ts.Add(""))
	assert.True(t, ts.Add("air"))
	assert.Equal(t, []string{"ocean", "trees", "air"}, ts.Values())

	assert.True(t, ts.Remove("trees"))
	assert.False(t, ts.Remove("trees"))
	assert.Equal(t, []string{"ocean", "air"}, ts.Values())
}

func TestSubmit_CompanyPayloadCarriesEveryCompanyField(t *testing.T) {
	var got Payload
	f := New(ProfileSchema(models.RoleCompany), func(ctx context.Context, p Payload) error {
		got = p
		return nil
	})

	require.NoError(t, f.Set("name", "Acme"))
	require.NoError(t, f.Set("shortDescription", "We build things"))
	require.NoError(t, f.Set("industry", "Technology"))
	require.NoError(t, f.Set("location", "Riga"))
	require.NoError(t, f.Set("phone", "+371 1234"))
	require.NoError(t, f.Set("overview", "Long story"))
	require.NoError(t, f.Set("website", "https://acme.example"))
	require.NoError(t, f.Set("address", "Main st 1"))
	require.NoError(t, f.Next())

	links, err := f.ListField("socialMediaLinks")
	require.NoError(t, err)
	require.NoError(t, links.Update(0, "https://x.example/acme"))
	links.Add()
	require.NoError(t, links.Update(1, "https://y.example/acme"))

	values, err := f.ListField("values")
	require.NoError(t, err)
	require.NoError(t, values.Update(0, "Transparency"))

	require.NoError(t, f.Set("supportTypes", []string{"Donations", "Volunteering"}))
	require.NoError(t, f.Set("causesSupported", "Environment, Health"))
	require.NoError(t, f.Set("bannerImage", "https://cdn.example/banner.jpg"))
	require.NoError(t, f.Set("logoImage", "https://cdn.example/logo.jpg"))
	require.NoError(t, f.Set("certifications", []string{"B-Corp"}))

	require.NoError(t, f.Submit(context.Background()))
	require.True(t, f.Completed())

	want := Payload{
		"name":             "Acme",
		"shortDescription": "We build things",
		"industry":         "Technology",
		"location":         "Riga",
		"phone":            "+371 1234",
		"overview":         "Long story",
		"website":          "https://acme.example",
		"address":          "Main st 1",
		"socialMediaLinks": []string{"https://x.example/acme", "https://y.example/acme"},
		"values":           []string{"Transparency"},
		"supportTypes":     []string{"Donations", "Volunteering"},
		"causesSupported":  []string{"Environment", "Health"},
		"bannerImage":      "https://cdn.example/banner.jpg",
		"logoImage":        "https://cdn.example/logo.jpg",
		"certifications":   []string{"B-Corp"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, keys(got), "impactMetrics")

	var p models.Profile
	require.NoError(t, got.Decode(&p))
	assert.Equal(t, "Acme", p.Name)
	assert.Equal(t, []string{"B-Corp"}, p.Certifications)
}

func TestSubmit_FailureKeepsData(t *testing.T) {
	boom := errors.New("backend down")
	calls := 0
	f := New(LoginSchema(), func(ctx context.Context, p Payload) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	})
	require.NoError(t, f.Set("email", "ann@example.com"))
	require.NoError(t, f.Set("password", "secret1"))

	require.ErrorIs(t, f.Submit(context.Background()), boom)
	assert.ErrorIs(t, f.Err(), boom)
	assert.False(t, f.Completed())
	assert.Equal(t, "ann@example.com", f.String("email"))

	require.NoError(t, f.Submit(context.Background()))
	assert.NoError(t, f.Err())
	assert.True(t, f.Completed())
	require.ErrorIs(t, f.Submit(context.Background()), ErrCompleted)
}

func TestSubmit_ServerErrorsAttachToFields(t *testing.T) {
	f := New(LoginSchema(), func(ctx context.Context, p Payload) error {
		return ValidationErrors{"email": "Invalid email or password", "password": "Invalid email or password"}
	})
	require.NoError(t, f.Set("email", "ann@example.com"))
	require.NoError(t, f.Set("password", "wrong-pass"))

	require.Error(t, f.Submit(context.Background()))
	assert.Equal(t, ValidationErrors{
		"email":    "Invalid email or password",
		"password": "Invalid email or password",
	}, f.Errors())
}

func TestLoginSchema_Rules(t *testing.T) {
	called := false
	f := New(LoginSchema(), func(ctx context.Context, p Payload) error {
		called = true
		return nil
	})
	require.NoError(t, f.Set("email", "not-an-email"))
	require.NoError(t, f.Set("password", "123"))

	err := f.Submit(context.Background())
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ValidationErrors{
		"email":    "Please enter a valid email!",
		"password": "Password must be at least 6 characters",
	}, verrs)
	assert.False(t, called)
}

func TestRegisterSchema_DecodesIntoRequest(t *testing.T) {
	var req models.RegisterRequest
	f := New(RegisterSchema(), func(ctx context.Context, p Payload) error {
		return p.Decode(&req)
	})
	require.NoError(t, f.Set("firstName", "Ann"))
	require.NoError(t, f.Set("lastName", "Lee"))
	require.NoError(t, f.Set("email", "ann@example.com"))
	require.NoError(t, f.Set("password", " pass with spaces "))
	require.NoError(t, f.Set("role", models.RoleCharity))

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, models.RegisterRequest{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
		Password: " pass with spaces ", Role: models.RoleCharity,
	}, req)

	admin := New(RegisterSchema(), nil)
	fillStep(t, admin, admin.Schema().Steps[0])
	require.NoError(t, admin.Set("email", "a@b.co"))
	require.NoError(t, admin.Set("password", "123456"))
	require.NoError(t, admin.Set("role", "admin"))
	var verrs ValidationErrors
	require.ErrorAs(t, admin.Submit(context.Background()), &verrs)
	assert.Equal(t, ValidationErrors{"role": "Please select account type!"}, verrs)
}

func TestWithInitial_UpdateMode(t *testing.T) {
	existing := models.Profile{
		Name:             "Green Earth",
		ShortDescription: "Planting trees",
		Industry:         "Non-Profit",
		Location:         "Oslo",
		SocialMediaLinks: []string{"https://a.example", "https://b.example"},
		CausesSupported:  []string{"Environment"},
		ImpactMetrics:    "trees planted",
	}
	initial, err := ValuesOf(existing)
	require.NoError(t, err)

	var got Payload
	f := New(ProfileSchema(models.RoleCharity), func(ctx context.Context, p Payload) error {
		got = p
		return nil
	}, WithMode(ModeUpdate), WithInitial(initial), WithoutSteps())

	assert.Equal(t, "Update Your Charity Profile", f.Title())
	assert.False(t, f.ShowSteps())
	assert.True(t, f.IsLast())
	assert.Len(t, f.Fields(), len(f.Schema().FieldNames()))
	require.ErrorIs(t, f.Next(), ErrLastStep)

	links, err := f.ListField("socialMediaLinks")
	require.NoError(t, err)
	assert.Equal(t, 2, links.Len())
	values, err := f.ListField("values")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, values.Items())

	require.NoError(t, f.Set("location", "Bergen"))
	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, "Bergen", got["location"])
	assert.Equal(t, "trees planted", got["impactMetrics"])
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, got["socialMediaLinks"])
	assert.NotContains(t, keys(got), "supportTypes")
}

func TestWithoutSteps_SubmitValidatesEverything(t *testing.T) {
	f := New(ProfileSchema(models.RoleCompany), func(ctx context.Context, p Payload) error { return nil }, WithoutSteps())
	require.NoError(t, f.Set("name", "Acme"))
	require.NoError(t, f.Set("certifications", []string{"Made Up"}))

	var verrs ValidationErrors
	require.ErrorAs(t, f.Submit(context.Background()), &verrs)
	assert.Equal(t, []string{"certifications", "industry", "location", "shortDescription"}, keys(verrs))
}

func TestTitles(t *testing.T) {
	assert.Equal(t, "Complete Your Company Profile", New(ProfileSchema(models.RoleCompany), nil).Title())
	assert.Equal(t, "Complete Your Personal Profile", New(ProfileSchema(models.RolePerson), nil).Title())
	assert.Equal(t, "Update Your Admin Profile", New(ProfileSchema(models.RoleAdmin), nil, WithMode(ModeUpdate)).Title())
	assert.Equal(t, "Create a new wave", New(WaveSchema(models.RolePerson), nil).Title())
}

func TestWaveSchema(t *testing.T) {
	assert.True(t, WaveSchema(models.RoleCompany).Has("charityId"))
	assert.False(t, WaveSchema(models.RoleCharity).Has("charityId"))

	s := WaveSchema(models.RolePerson)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, "Review", s.Steps[4].Title)
	assert.Empty(t, s.Steps[4].Fields)
}

func TestWaveForm_Walkthrough(t *testing.T) {
	var got Payload
	f := New(WaveSchema(models.RolePerson), func(ctx context.Context, p Payload) error {
		got = p
		return nil
	}, WithOptions("charityId", []string{"c1", "c2"}), WithDefaults(map[string]any{"allowComments": true}))

	require.NoError(t, f.Set("title", "Beach clean-up"))
	require.NoError(t, f.Set("shortDescription", "Saturday morning"))
	require.NoError(t, f.Next())

	require.NoError(t, f.Set("causeName", "Environment"))
	require.NoError(t, f.Set("charityId", "c9"))
	require.NoError(t, f.Set("supportTypes", "volunteering"))
	var verrs ValidationErrors
	require.ErrorAs(t, f.Next(), &verrs)
	assert.Equal(t, ValidationErrors{"charityId": "Please select a charity from the list"}, verrs)

	require.NoError(t, f.Set("charityId", "c2"))
	require.NoError(t, f.Next())

	require.NoError(t, f.Set("imageUrls", []string{"u1", "u2", "u3", "u4"}))
	require.ErrorAs(t, f.Next(), &verrs)
	assert.Equal(t, "You can upload up to 3 images", verrs["imageUrls"])
	require.NoError(t, f.Set("imageUrls", []string{"u1"}))
	require.NoError(t, f.Next())

	tags, err := f.TagSet("tags")
	require.NoError(t, err)
	tags.Add("beach")
	tags.Add("beach")
	require.NoError(t, f.Set("hashtag", "ocean"))
	require.NoError(t, f.Next())
	assert.True(t, f.IsLast())
	require.ErrorIs(t, f.Next(), ErrLastStep)

	require.NoError(t, f.Submit(context.Background()))

	var w models.Wave
	require.NoError(t, got.Decode(&w))
	assert.Equal(t, "c2", w.CharityID.ID)
	assert.Equal(t, []string{"beach"}, w.Tags)
	assert.Equal(t, []string{"volunteering"}, w.SupportTypes)
	assert.True(t, w.AllowComments)
	assert.Equal(t, []string{"u1"}, w.ImageURLs)
}

func TestField_Coerce(t *testing.T) {
	f := New(WaveSchema(models.RolePerson), nil)
	require.NoError(t, f.Set("allowComments", "yes"))
	assert.Equal(t, "yes", f.String("allowComments"))
	require.ErrorIs(t, f.Set("allowComments", "maybe"), ErrWrongValue)
	require.ErrorIs(t, f.Set("title", 42), ErrWrongValue)

	_, err := f.ListField("tags")
	require.ErrorIs(t, err, ErrNotAList)
	_, err = f.TagSet("nope")
	require.ErrorIs(t, err, ErrFieldNotInSchema)
}
