// Package session owns the authenticated state of the client: the bearer
// credential, the identity decoded from it and the account details fetched
// from the backend.
//
// Store is the only writer of that state. Other components read it through
// accessors and learn about changes by subscribing to events; the API
// gateway reports rejected credentials through HandleUnauthorized.
package session
