// Package common contains shared constants, sentinel errors and small helpers
// used across the Goowi client packages.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// AccessTokenKey is the metadata key under which the bearer credential is
// persisted locally.
const AccessTokenKey = "accessToken"
