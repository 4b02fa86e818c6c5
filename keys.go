package trellis

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by trellis.
	IpAddrKey Key = "IpAddrKey"

	// JWTClaimsKey stashes the claims of a verified bearer token.
	JWTClaimsKey Key = "JWTClaimsKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "trellis context key: " + string(k)
}
