// Package cli provides the interactive Goowi command-line client.
//
// Every screen is a REPL command bound to a route; a
// command only runs when the navigator lets the route through its guard, so
// anonymous users are sent to login and accounts without a profile are sent
// to complete their registration first.
//
// Key features:
//   - Login / Register / Logout, email verification
//   - Home feed with title and hashtag filters, paging and participation
//   - Creating, editing, deleting and approving waves
//   - Completing, editing and viewing profiles
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
