package graph

import (
	"context"

	"golang.org/x/oauth2"
)

type tokenSourceKey struct{}

// WithTokenSource returns a copy of ctx whose Graph calls authenticate with ts.
func WithTokenSource(ctx context.Context, ts oauth2.TokenSource) context.Context {
	return context.WithValue(ctx, tokenSourceKey{}, ts)
}

// TokenSourceFromContext returns the token source bound by WithTokenSource.
func TokenSourceFromContext(ctx context.Context) (oauth2.TokenSource, bool) {
	ts, ok := ctx.Value(tokenSourceKey{}).(oauth2.TokenSource)
	return ts, ok && ts != nil
}

// accessToken resolves the bearer token for the current request.
func accessToken(ctx context.Context) (string, error) {
	ts, ok := TokenSourceFromContext(ctx)
	if !ok {
		return "", newAuthChallengeError("No signed-in user is associated with the request.", ErrNoTokenSource)
	}

	tok, err := ts.Token()
	if err != nil {
		return "", newAuthChallengeError("The access token could not be refreshed.", err)
	}
	if !tok.Valid() {
		return "", newAuthChallengeError("The access token has expired.", nil)
	}

	return tok.AccessToken, nil
}
