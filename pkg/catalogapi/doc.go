/*
Package catalogapi is the Go client for the AI tool catalog service, and the
home of its JSON wire types.

# Sessions

The service authenticates with an HttpOnly cookie. A Client carries a cookie
jar, so logging in once authenticates every following call made with the
same Client:

	c := catalogapi.NewClient("http://localhost:8080")

	res, err := c.Login(ctx, catalogapi.LoginRequest{Email: email, Password: pw})
	if err == nil && res.RequiresTwoFactor {
		// A code was sent (or is shown in the authenticator app).
		res, err = c.Login(ctx, catalogapi.LoginRequest{Email: email, Password: pw, TwoFactorCode: code})
	}

	me, err := c.Me(ctx)

# Errors

Any unexpected status is returned as *APIError, carrying the message and
per-field validation errors from the response envelope. The Is* helpers
match on status:

	if _, err := c.SetUserStatus(ctx, id, "approved"); catalogapi.IsForbidden(err) {
		// only approved owners may approve users
	}
*/
package catalogapi
