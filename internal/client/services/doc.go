// Package services contains the application services of the Goowi client.
// They sit between the REPL and the API gateway and add what a single
// backend call does not: the caller's identity, derived fields and fan-out
// of independent fetches.
package services
