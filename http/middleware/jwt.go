package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// JWTQueryParam is the query parameter RequireJWT falls back to
// when no bearer token is in the Authorization header.
const JWTQueryParam = "jwt"

const bearer = "Bearer"

// RequireJWT verifies an HS256 signed JWT and stores its claims in the request context
// under trellis.JWTClaimsKey.
//
// The token is taken from the "Authorization: Bearer" header or else the "jwt" query parameter.
// newClaims returns the pointer ParseWithClaims hydrates;
// if newClaims is nil, *jwt.RegisteredClaims are used.
//
// A missing, malformed, expired or wrongly signed token fails with 401 Unauthorized.
//
// RequireJWT returns nil if key is empty so that Compose rejects it.
//
// Like every decorator, RequireJWT checks the token after next returns.
// In a route's decorator list it must therefore come after the endpoint it guards:
//
//	r.Post("/trails", pipeline.Endpoint(create), middleware.RequireJWT(key, nil))
//
// Listed before the endpoint, the endpoint runs first and cannot see the claims.
func RequireJWT(key []byte, newClaims func() jwt.Claims) pipeline.Decorator {
	if len(key) == 0 {
		return nil
	}

	if newClaims == nil {
		newClaims = func() jwt.Claims { return new(jwt.RegisteredClaims) }
	}

	parser := &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	keyFunc := func(*jwt.Token) (any, error) { return key, nil }

	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			raw := bearerToken(c)
			if raw == "" {
				return unauthorized(c, fmt.Errorf("%w: no token", trellis.ErrNotValid))
			}

			token, err := parser.ParseWithClaims(raw, newClaims(), keyFunc)
			if err != nil {
				return unauthorized(c, fmt.Errorf("%w: %s", trellis.ErrNotValid, err))
			}

			c.SetValue(trellis.JWTClaimsKey, token.Claims)
			return res
		}
	}
}

// bearerToken pulls the raw token out of the request.
func bearerToken(c *pipeline.Context) string {
	h := c.Request().Header.Get("Authorization")
	if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, bearer) {
		return strings.TrimSpace(tok)
	}

	if tok := c.Query.Get(JWTQueryParam); tok != "" {
		return tok
	}

	return c.Request().URL.Query().Get(JWTQueryParam)
}

func unauthorized(c *pipeline.Context, err error) pipeline.Result {
	c.Header().Set("WWW-Authenticate", bearer)
	return pipeline.Fail(http.StatusUnauthorized, payload.Value(map[string]string{"error": err.Error()}))
}
