// Package stores holds the client's application state.
//
// Each store owns one slice of state (session, board, comment, analysis),
// guards it with a mutex and exposes a snapshot through State. Stores call
// the REST API through client.Client and never touch each other's state;
// cross-store reactions (logout on 401, navigation after logout) are wired
// by the application through hooks.
//
// Failures are logged and recorded in the state's Error field as a
// human-readable message. Read operations swallow the error after recording
// it; mutations also return it.
package stores
