package models

// Option tables offered by the profile and wave forms.
var (
	IndustryOptions = []string{
		"Technology", "Healthcare", "Education", "Finance",
		"Retail", "Manufacturing", "Non-Profit", "Other",
	}
	SupportTypeOptions = []string{
		"Volunteering", "Donations", "Sponsorships", "Endorsements", "In-Kind Support",
	}
	CauseOptions = []string{
		"Environment", "Health", "Education", "Poverty",
		"Children", "Animals", "Human Rights", "Disaster Relief",
	}
	CertificationOptions = []string{
		"B-Corp", "1% for the Planet", "Fair Trade", "LEED", "Energy Star", "Carbon Neutral",
	}
)

// WaveSupportTypeOptions are the values a wave's supportTypes may take. They
// differ from the profile options in spelling.
var WaveSupportTypeOptions = []string{
	"volunteering", "donation", "sponsorship", "endorsement", "in-kind",
}

// RegistrationRoles are the roles an account can be registered with.
var RegistrationRoles = []string{
	string(RoleCompany), string(RolePerson), string(RoleCharity),
}
