// Package service contains the directory operations offered by the web
// application. GroupsService is the facade the handlers call: one method
// per group operation, each returning display items or an error that
// unwraps to a *graph.ServiceError.
//
// Services receive their dependencies through constructor injection and
// never see HTTP requests; the signed-in user's credentials travel in the
// context passed to every call.
package service
