// Package api handles incoming HTTP requests for the web application. The
// handlers translate each request into one directory operation, render the
// resulting page, or send the browser to sign-in or to the error page.
package api
