package request

// GoogleSignInDTO carries the verified profile handed over by the OAuth
// front-door. Verification of the Google credential happens upstream; this
// service only assigns the role and issues its own tokens.
type GoogleSignInDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	GoogleID string `json:"googleId" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
