// Package common contains shared constants, error kinds and sentinel errors
// used across blogauth components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"
