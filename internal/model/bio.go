package model

// Bio is the static part of the panel
type Bio struct {
	Name   string `yaml:"name" env:"BIO_NAME" json:"name"`
	GitHub string `yaml:"github" env:"BIO_GITHUB" json:"github"`
	Email  string `yaml:"email" env:"BIO_EMAIL" json:"email,omitempty"`
}

// GitHubURL returns a browsable link to the GitHub profile
func (b Bio) GitHubURL() string {
	if b.GitHub == "" {
		return ""
	}
	return "https://" + b.GitHub
}

// MailtoURL returns a mailto link for the email or an empty string
func (b Bio) MailtoURL() string {
	if b.Email == "" {
		return ""
	}
	return "mailto:" + b.Email
}
