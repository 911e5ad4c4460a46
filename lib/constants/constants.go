package constants

// SSM parameter suffixes, joined as {prefix}/{stage}/{suffix}.
const (
	COGNITO_USER_POOL_ID = "cognito/user-pool-id"
	COGNITO_CLIENT_ID    = "cognito/client-id"
	VISITOR_LINK_TABLE   = "dynamodb/visitor-link-table"
)

// Transport headers carried from the request phase to the response phase.
const (
	CREDENTIALS_HEADER = "x-visitor-credentials"
	LINK_ID_HEADER     = "x-visitor-link-id"
)

// Cookies written on the response phase.
const (
	ID_TOKEN_COOKIE         = "IdToken"
	ACCESS_TOKEN_COOKIE     = "AccessToken"
	LINK_ID_COOKIE          = "LinkId"
	VISITOR_NAME_COOKIE     = "VisitorName"
	TOKEN_EXPIRES_AT_COOKIE = "TokenExpiresAt"
)

// CloudFront event types.
const (
	VIEWER_REQUEST  = "viewer-request"
	VIEWER_RESPONSE = "viewer-response"
	ORIGIN_REQUEST  = "origin-request"
	ORIGIN_RESPONSE = "origin-response"
)

const (
	STATIC_ASSET_PREFIX = "/_next/"
	LINK_ID_ATTRIBUTE   = "linkId"
)
