package auth

type AuthType string

const (
	AuthTypeJWT AuthType = "jwt"

	ContextKeyUserID   = "user_id"
	ContextKeyAuthType = "auth_type"

	headerAuthorization = "Authorization"
	bearerScheme        = "bearer"
	authHeaderParts     = 2
)

const (
	msgMissingAuthorization    = "missing authorization header"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgUserNotAuthenticated    = "user not authenticated"
	msgInvalidUserIDCtx        = "invalid user ID in context"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
)
