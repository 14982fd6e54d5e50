package service

const (
	msgProjectNotFound       = "project not found"
	msgProjectNameTaken      = "a project with this name already exists"
	msgProjectOwnerOnly      = "only the project owner may perform this action"
	msgFileNotFound          = "file not found"
	msgShareLinkNotFound     = "share link not found"
	msgShareLinkPassword     = "share link password required or incorrect"
	msgTargetUserNotFound    = "target user not found"
	msgEmailShareNotFound    = "email share not found"
	msgEmailShareNotForUser  = "email share was not issued to this user"
	msgEmailShareAccepted    = "email share already accepted"
	msgEmailShareExpired     = "email share has expired"
	msgShareLinkExpired      = "share link has expired"
	msgShareLinkUsesExceeded = "share link usage limit reached"
	msgEmailTaken            = "an account with this email already exists"
	msgInvalidRegistration   = "invalid registration input"
	msgInvalidProjectInput   = "invalid project input"
	msgInvalidFileInput      = "invalid file input"
	msgInvalidShareInput     = "invalid share input"
	msgInvalidSizeLimit      = "invalid size limit"
	msgPermissionListOwnOnly = "permission required to view other users' grants"
	msgInvalidPermissionSet  = "invalid permission set"
	msgCommentEmpty          = "comment cannot be empty"
	msgTagEmpty              = "tag cannot be empty"
	msgTagNotFound           = "tag not found on project"
	msgStoredContentRead     = "failed to read stored file content"
	msgStoredContentWrite    = "failed to write file content"

	detailKeyFileID     = "file_id"
	detailKeyFileName   = "file_name"
	detailKeyTag        = "tag"
	detailKeyComment    = "comment"
	detailKeyTargetID   = "target_project_id"
	detailKeySourceID   = "source_project_id"
	detailKeySharedWith = "shared_with"
	detailKeyEmail      = "email"
	detailKeyVia        = "via"
	detailViaShareLink  = "share_link"
)
