// Package common contains shared constants and sentinel errors used across
// the NutriCare client components.
package common

// AccessTokenStorageKey is the fixed local-storage key the access token is
// persisted under.
const AccessTokenStorageKey = "accessToken"

// UserIDStorageKey is the local-storage key holding the id of the logged-in user.
const UserIDStorageKey = "userId"

// AuthorizationHeaderName carries the bearer token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-Id"

// BearerPrefix is prepended to the access token in the Authorization header.
const BearerPrefix = "Bearer "
