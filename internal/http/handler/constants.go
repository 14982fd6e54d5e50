package handler

const (
	paramID     = "id"
	paramUserID = "user_id"
	paramLinkID = "link_id"
	paramToken  = "token"
	paramTag    = "tag"

	queryLimit    = "limit"
	queryPassword = "password"

	headerSharePassword = "X-Share-Password"

	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidProjectID        = "invalid project ID"
	msgInvalidFileID           = "invalid file ID"
	msgInvalidUserID           = "invalid user ID"
	msgInvalidLinkID           = "invalid link ID"
	msgInvalidShareID          = "invalid share ID"
	msgInvalidShareToken       = "invalid share token"
	msgInvalidLimitParam       = "invalid limit parameter"
	msgProjectDeleted          = "project deleted"
	msgFileDeleted             = "file deleted"
	msgLinkRevoked             = "share link revoked"
	msgLimitsUpdated           = "size limits updated"

	shareTokenLength = 64
)
