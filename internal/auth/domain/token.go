package domain

// AuthResult is what a successful login produces: the public user projection,
// a signed access token for the response body, and the raw refresh token the
// HTTP layer sets as an HttpOnly cookie.
type AuthResult struct {
	User         PublicUser
	AccessToken  string
	RefreshToken string
}
