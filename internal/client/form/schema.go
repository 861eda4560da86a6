package form

import (
	"fmt"

	"github.com/dmitrijs2005/goowi/internal/client/models"
)

type Step struct {
	Title       string
	Description string
	Fields      []string
}

// Schema is the static configuration of one form.
type Schema struct {
	CreateTitle string
	UpdateTitle string
	Steps       []Step
	Fields      map[string]Field
}

// Has reports whether name belongs to any step.
func (s Schema) Has(name string) bool {
	for _, st := range s.Steps {
		for _, f := range st.Fields {
			if f == name {
				return true
			}
		}
	}
	return false
}

// FieldNames lists the fields of every step in order.
func (s Schema) FieldNames() []string {
	var out []string
	for _, st := range s.Steps {
		out = append(out, st.Fields...)
	}
	return out
}

// Field returns the definition of name.
func (s Schema) Field(name string) (Field, bool) {
	f, ok := s.Fields[name]
	return f, ok
}

const (
	msgRequired   = "This field is required"
	msgInvalidURL = "Please enter a valid URL"
	msgOption     = "Please select one of the offered options"
)

// profileSteps is the step layout of the profile form per role.
var profileSteps = map[models.Role][]Step{
	models.RoleCompany: {
		{
			Title:       "Company Details",
			Description: "Basic organization information",
			Fields:      []string{"name", "shortDescription", "industry", "location", "phone", "overview", "website", "address"},
		},
		{
			Title:       "Social Impact",
			Description: "Values and contributions",
			Fields:      []string{"socialMediaLinks", "values", "supportTypes", "causesSupported", "bannerImage", "logoImage", "certifications"},
		},
	},
	models.RolePerson: {
		{
			Title:       "Personal Info",
			Description: "Your basic details",
			Fields:      []string{"name", "shortDescription", "location", "overview", "phone"},
		},
		{
			Title:       "Social Impact",
			Description: "Causes and contributions",
			Fields:      []string{"socialMediaLinks", "values", "supportTypes", "causesSupported", "logoImage"},
		},
	},
	models.RoleCharity: {
		{
			Title:       "Organization Details",
			Description: "Basic charity information",
			Fields:      []string{"name", "shortDescription", "industry", "location", "phone", "overview", "website", "address"},
		},
		{
			Title:       "Impact & Focus",
			Description: "Causes and metrics",
			Fields:      []string{"socialMediaLinks", "values", "causesSupported", "bannerImage", "logoImage", "certifications", "impactMetrics"},
		},
	},
	models.RoleAdmin: {
		{Title: "Admin Info", Description: "Basic details", Fields: []string{"name", "overview"}},
		{Title: "Profile Image", Description: "Admin profile", Fields: []string{"logoImage"}},
	},
}

func profileFields(role models.Role) map[string]Field {
	person := role == models.RolePerson
	charity := role == models.RoleCharity

	nameLabel, namePlaceholder := "Organization Name", "e.g., Goowi Inc."
	shortPlaceholder := "e.g., Connecting companies, people, and charities for social good"
	overviewPlaceholder := "Tell us about your organization's mission and vision..."
	logoLabel := "Logo Image"
	if person {
		nameLabel, namePlaceholder = "Full Name", "e.g., John Smith"
		shortPlaceholder = "e.g., Environmental advocate and volunteer"
		overviewPlaceholder = "Tell us about yourself, your interests, and what causes you're passionate about..."
		logoLabel = "Profile Picture"
	}
	industryLabel, causesLabel := "Industry", "Causes Supported"
	if charity {
		industryLabel, causesLabel = "Category", "Focus Areas"
	}

	fields := []Field{
		{Name: "name", Label: nameLabel, Placeholder: namePlaceholder, Rules: []Rule{Required(msgRequired)}},
		{Name: "shortDescription", Label: "One-Liner Description", Placeholder: shortPlaceholder,
			Rules: []Rule{Required("Please provide a short description")}},
		{Name: "industry", Label: industryLabel, Kind: Select, Options: models.IndustryOptions,
			Rules: []Rule{Required(msgRequired), OneOf(msgOption)}},
		{Name: "location", Label: "Location", Placeholder: "e.g., New York, USA",
			Rules: []Rule{Required("Please enter your location")}},
		{Name: "phone", Label: "Phone Number", Placeholder: "+1 (123) 456-7890"},
		{Name: "overview", Label: "Overview (Longer Description)", Placeholder: overviewPlaceholder, Kind: TextArea},
		{Name: "website", Label: "Website", Placeholder: "https://www.example.com", Rules: []Rule{URL(msgInvalidURL)}},
		{Name: "address", Label: "Address", Placeholder: "123 Main St, City, Country"},
		{Name: "socialMediaLinks", Label: "Social Media Links", Placeholder: "https://www.linkedin.com/in/yourprofile", Kind: List},
		{Name: "values", Label: "Core Values", Placeholder: "e.g., Sustainability, Transparency, Equality", Kind: List},
		{Name: "supportTypes", Label: "Support Types", Kind: MultiSelect, Options: models.SupportTypeOptions,
			Rules: []Rule{OneOf(msgOption)}},
		{Name: "causesSupported", Label: causesLabel, Kind: MultiSelect, Options: models.CauseOptions,
			Rules: []Rule{OneOf(msgOption)}},
		{Name: "bannerImage", Label: "Banner Image", Kind: Image, Width: 800, Height: 800, MaxImages: 1},
		{Name: "logoImage", Label: logoLabel, Kind: Image, Width: 100, Height: 100, MaxImages: 1},
		{Name: "certifications", Label: "Certifications", Kind: MultiSelect, Options: models.CertificationOptions,
			Rules: []Rule{OneOf(msgOption)}},
		{Name: "impactMetrics", Label: "Impact Metrics", Kind: TextArea,
			Placeholder: "Describe how your organization measures impact..."},
	}
	return index(fields)
}

// ProfileSchema returns the profile form of role. Unknown roles get the
// personal layout.
func ProfileSchema(role models.Role) Schema {
	steps, ok := profileSteps[role]
	if !ok {
		role = models.RolePerson
		steps = profileSteps[role]
	}
	return Schema{
		CreateTitle: fmt.Sprintf("Complete Your %s Profile", role.Label()),
		UpdateTitle: fmt.Sprintf("Update Your %s Profile", role.Label()),
		Steps:       steps,
		Fields:      profileFields(role),
	}
}

// WaveSchema returns the wave form as seen by role. A charity creates waves
// on its own behalf, so it is not asked for charityId.
func WaveSchema(role models.Role) Schema {
	cause := []string{"causeName", "charityId", "supportTypes", "location", "eventLink"}
	if role == models.RoleCharity {
		cause = []string{"causeName", "supportTypes", "location", "eventLink"}
	}

	fields := []Field{
		{Name: "title", Label: "Wave Title", Placeholder: "Give your wave a compelling title",
			Rules: []Rule{Required("Please enter a title for your wave")}},
		{Name: "shortDescription", Label: "Short Description", Placeholder: "A brief summary of your wave (100 characters max)",
			Rules: []Rule{Required("Please provide a brief description"), MaxLen(100, "Please keep the description under 100 characters")}},
		{Name: "longDescription", Label: "Full Description", Placeholder: "Describe your wave in detail", Kind: TextArea},
		{Name: "causeName", Label: "Cause Name", Placeholder: "What cause are you supporting?",
			Rules: []Rule{Required("Please specify the cause")}},
		{Name: "charityId", Label: "Select Charity", Placeholder: "Select the charity associated with this wave", Kind: Select,
			Rules: []Rule{Required("Please select the charity which is related to the wave"), OneOf("Please select a charity from the list")}},
		{Name: "supportTypes", Label: "Support Types", Placeholder: "How will you support this cause?", Kind: MultiSelect,
			Options: models.WaveSupportTypeOptions,
			Rules:   []Rule{Required("Select at least one support type"), OneOf(msgOption)}},
		{Name: "location", Label: "Location", Placeholder: "Where is this wave taking place?"},
		{Name: "eventLink", Label: "Event Link", Placeholder: "Link to event page or website", Rules: []Rule{URL(msgInvalidURL)}},
		{Name: "imageUrls", Label: "Images", Kind: Images, Width: 500, Height: 500, MaxImages: models.MaxWaveImages,
			Rules: []Rule{MaxItems(models.MaxWaveImages, fmt.Sprintf("You can upload up to %d images", models.MaxWaveImages))}},
		{Name: "tags", Label: "Tags", Kind: Tags},
		{Name: "hashtag", Label: "Primary Hashtag", Placeholder: "Main hashtag for your wave"},
		{Name: "allowComments", Label: "Allow Comments", Kind: Bool},
	}

	return Schema{
		CreateTitle: "Create a new wave",
		UpdateTitle: "Edit Wave",
		Steps: []Step{
			{Title: "Basic Information", Description: "Fill in the fundamental details about your wave",
				Fields: []string{"title", "shortDescription", "longDescription"}},
			{Title: "Cause & Support", Description: "Tell us about the cause you're supporting and how", Fields: cause},
			{Title: "Media", Description: "Add media to your wave", Fields: []string{"imageUrls"}},
			{Title: "Tags & Settings", Description: "Add tags and configure additional settings for your wave",
				Fields: []string{"tags", "hashtag", "allowComments"}},
			{Title: "Review", Description: "Review the information before submitting your wave"},
		},
		Fields: index(fields),
	}
}

// LoginSchema is the single-step login form.
func LoginSchema() Schema {
	return Schema{
		CreateTitle: "Login",
		Steps:       []Step{{Title: "Login", Fields: []string{"email", "password"}}},
		Fields: index([]Field{
			{Name: "email", Label: "Email", Rules: []Rule{
				Required("Please input your email!"), Email("Please enter a valid email!"),
			}},
			{Name: "password", Label: "Password", Kind: Password, Rules: []Rule{
				Required("Please input your password!"), MinLen(6, "Password must be at least 6 characters"),
			}},
		}),
	}
}

// RegisterSchema is the single-step registration form.
func RegisterSchema() Schema {
	return Schema{
		CreateTitle: "Register",
		Steps:       []Step{{Title: "Register", Fields: []string{"firstName", "lastName", "email", "password", "role"}}},
		Fields: index([]Field{
			{Name: "firstName", Label: "First Name", Rules: []Rule{Required("Please input your first name!")}},
			{Name: "lastName", Label: "Last Name", Rules: []Rule{Required("Please input your last name!")}},
			{Name: "email", Label: "Email", Rules: []Rule{
				Required("Please input your email!"), Email("Please input a valid email!"),
			}},
			{Name: "password", Label: "Password", Kind: Password, Rules: []Rule{
				Required("Please input your password!"), MinLen(6, "Password must be at least 6 characters!"),
			}},
			{Name: "role", Label: "Register as", Kind: Select, Options: models.RegistrationRoles, Rules: []Rule{
				Required("Please select account type!"), OneOf("Please select account type!"),
			}},
		}),
	}
}

func index(fields []Field) map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}
