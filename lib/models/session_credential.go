package models

// SessionCredential is the token triplet returned by the identity provider.
// It only ever lives on the in-flight request.
type SessionCredential struct {
	IDToken     string `json:"idToken"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int32  `json:"expiresIn"`
}

// Complete reports whether every field needed to write cookies is present
func (c *SessionCredential) Complete() bool {
	return c != nil && c.IDToken != "" && c.AccessToken != "" && c.ExpiresIn > 0
}
