package memory

const (
	errUserNotFound       = "user not found"
	errProjectNotFound    = "project not found"
	errFileNotFound       = "file not found"
	errPermissionNotFound = "permission record not found"
	errEmailShareNotFound = "email share not found"
	errShareLinkNotFound  = "share link not found"
	errEmailTaken         = "email already registered"
	errProjectNameTaken   = "project name already exists for this owner"
	errLinkUsesExhausted  = "share link usage limit reached"
)
