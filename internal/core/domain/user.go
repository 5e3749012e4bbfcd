package domain

// User is a GitHub account returned by the user search endpoint.
type User struct {
	// ID is the numeric GitHub account identifier.
	ID int64 `json:"id"`

	// Login is the account handle, used as the key for nested repository lists.
	Login string `json:"login"`

	// URL is the API reference for the account.
	URL string `json:"url"`

	// HTMLURL is the browser profile link.
	HTMLURL string `json:"html_url,omitempty"`

	// AvatarURL is the profile image link.
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Repository is a public repository owned by a User.
type Repository struct {
	// ID is the numeric GitHub repository identifier.
	ID int64 `json:"id"`

	// Name is the short repository name (without owner).
	Name string `json:"name"`

	// Description is optional; nil when the repository has none.
	Description *string `json:"description"`

	// Stars is the stargazer count.
	Stars int `json:"stargazers_count"`

	// HTMLURL is the browser link to the repository.
	HTMLURL string `json:"html_url"`
}

// DescriptionText returns the description or an empty string.
func (r Repository) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}
