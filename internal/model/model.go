package model

// Recipient is one entry in a bulk send request. Email is required;
// entries with a blank email address are skipped during dispatch.
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the OAuth token bundle stored in the session. It is
// opaque to this system beyond being replayed verbatim to Google's
// client libraries.
type Credentials struct {
	AccessToken  string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
}

// UserInfo is the Google profile cached in the session after the OAuth
// callback. It supplies the "From" identity for user-authenticated sends.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
