package domain

import "fmt"

// Account is the GitHub identity used for an update cycle.
// Commits are authored as Name <Email>; pushes and pull requests are
// authenticated with PersonalAccessToken.
type Account struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	PersonalAccessToken string `json:"-"`
}

// Validate checks the account can author commits.
func (a Account) Validate() error {
	if a.Name == "" || a.Email == "" {
		return fmt.Errorf("%w: account name and email are required", ErrMissingAccount)
	}
	return nil
}

// HasToken reports whether the account can authenticate remote operations.
func (a Account) HasToken() bool {
	return a.PersonalAccessToken != ""
}

// Author formats the account as a git author string.
func (a Account) Author() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}
