// Package graph is a small Microsoft Graph v1.0 client built on imroc/req.
//
// The signed-in user's token source travels in the request context (see
// WithTokenSource), so a single Client is shared by all requests. Every
// failure is reported as a *ServiceError; failures to obtain a token carry
// a nested *AuthenticationError whose code tells the caller whether an
// interactive sign-in is required.
package graph
