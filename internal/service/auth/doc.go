// Package auth keeps the signed-in user's state between requests: a
// server-side session store holding the user's OAuth token, and the signed
// token written to the session cookie that names the session.
package auth
