package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// PublicOwner is the owner reported for every entry of the public namespace.
const PublicOwner = "Public"
