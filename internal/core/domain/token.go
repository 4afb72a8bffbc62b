package domain

// TokenPair is issued on a successful login. Neither token is stored server-side.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken is the payload of a standalone refresh token issuance.
type RefreshToken struct {
	RefreshToken string `json:"refreshToken"`
}
