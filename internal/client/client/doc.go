// Package client talks to the NutriCare REST API.
//
// # Overview
//
//  1. Client is the API contract the stores depend on.
//  2. HTTPClient implements it over net/http. Its transport is an
//     interceptor that attaches the bearer token and a request id to every
//     non-public request, and reports 401/403 responses through Hooks.
//
// # Public endpoints
//
// POST /users and POST /users/login never carry Authorization.
//
// # Error Handling
//
// Non-2xx responses come back as *APIError, which unwraps to one of
// ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound or ErrUnavailable.
// Transport failures and timeouts wrap ErrUnavailable. Match with errors.Is.
//
// # Timeouts
//
// Every call is bounded by the request timeout. Diet recommendation creation
// uses the shorter create timeout and AI generation the longer generation
// timeout.
package client
