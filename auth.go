package newsroom

import "crypto/subtle"

// Authenticator validates admin credentials. The default implementation
// checks against the configured static username and password; deployments
// with a real credential store can swap it via WithAuthenticator.
type Authenticator interface {
	Authenticate(username, password string) bool
}

// staticCredentials authenticates against a single fixed username/password
// pair using constant-time comparison.
type staticCredentials struct {
	username string
	password string
}

func (s staticCredentials) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return userOK && passOK
}
