// Package common provides common constants shared by the SLS client packages.
package common

// APIVersion is the SLS API version sent with every request.
const APIVersion = "0.6.0"

// SignatureMethod is the signing algorithm marker sent with every request.
const SignatureMethod = "hmac-sha1"

// AuthScheme is the scheme prefix of the authorization header value.
const AuthScheme = "SLS"

// HeaderAPIVersion is the request header carrying the API version.
const HeaderAPIVersion = "x-log-apiversion"

// HeaderSignatureMethod is the request header carrying the signing algorithm marker.
const HeaderSignatureMethod = "x-log-signaturemethod"

// HeaderSecurityToken is the request header carrying the STS session token.
const HeaderSecurityToken = "x-acs-security-token"

// HeaderBodyRawSize is the request header carrying the uncompressed payload size.
const HeaderBodyRawSize = "x-log-bodyrawsize"

// HeaderRequestID is the response header carrying the server-assigned request id.
const HeaderRequestID = "x-log-requestid"

// TopicKey is the metadata key tagging each query result with its topic.
const TopicKey = "__topic__"

// SourceKey is the metadata key tagging each query result with its source.
const SourceKey = "__source__"

// TimeKey is the metadata key tagging each query result with its event time in seconds.
const TimeKey = "__time__"

// TimeNsPartKey is the metadata key tagging each query result with the sub-second
// nanosecond part of its event time.
const TimeNsPartKey = "__time_ns_part__"

// EnvEndpoint is the name of the environment variable for the service endpoint.
const EnvEndpoint = "SLS_ENDPOINT"

// EnvProject is the name of the environment variable for the project name.
const EnvProject = "SLS_PROJECT"

// EnvAccessKeyID is the name of the environment variable for the access key id.
const EnvAccessKeyID = "SLS_ACCESS_KEY_ID"

// EnvAccessKeySecret is the name of the environment variable for the access key secret.
const EnvAccessKeySecret = "SLS_ACCESS_KEY_SECRET"

// EnvSecurityToken is the name of the environment variable for the STS session token.
const EnvSecurityToken = "SLS_SECURITY_TOKEN"

// TimestampMsThreshold separates second-precision from millisecond-precision epoch
// timestamps. A raw value below it is taken as seconds, at or above it as milliseconds.
const TimestampMsThreshold = int64(1e12)
