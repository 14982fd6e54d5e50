package postgres

import "time"

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound       = "user not found"
	errProjectNotFound    = "project not found"
	errFileNotFound       = "file not found"
	errPermissionNotFound = "permission record not found"
	errEmailShareNotFound = "email share not found"
	errShareLinkNotFound  = "share link not found"
	errEmailTaken         = "email already registered"
	errProjectNameTaken   = "project name already exists for this owner"
	errLinkUsesExhausted  = "share link usage limit reached"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"

	errFailedCreateProjectFmt = "failed to create project: %w"
	errFailedGetProjectFmt    = "failed to get project: %w"
	errFailedListProjectsFmt  = "failed to list projects: %w"
	errFailedScanProjectFmt   = "failed to scan project: %w"
	errFailedUpdateProjectFmt = "failed to update project: %w"
	errFailedSetTagsFmt       = "failed to set project tags: %w"
	errFailedDeleteProjectFmt = "failed to delete project: %w"

	errFailedCreateFileFmt          = "failed to create file: %w"
	errFailedGetFileFmt             = "failed to get file: %w"
	errFailedListFilesFmt           = "failed to list files: %w"
	errFailedScanFileFmt            = "failed to scan file: %w"
	errFailedUpdateFileFmt          = "failed to update file: %w"
	errFailedDeleteFileFmt          = "failed to delete file: %w"
	errFailedDeleteProjectFilesFmt  = "failed to delete project files: %w"

	errFailedSetPermissionsFmt    = "failed to set permissions: %w"
	errFailedGetPermissionFmt     = "failed to get permission record: %w"
	errFailedListPermissionsFmt   = "failed to list permission records: %w"
	errFailedScanPermissionFmt    = "failed to scan permission record: %w"
	errFailedDeletePermissionsFmt = "failed to delete permission records: %w"

	errFailedCreateUserShareFmt  = "failed to create user share: %w"
	errFailedListUserSharesFmt   = "failed to list user shares: %w"
	errFailedScanUserShareFmt    = "failed to scan user share: %w"
	errFailedCreateEmailShareFmt = "failed to create email share: %w"
	errFailedGetEmailShareFmt    = "failed to get email share: %w"
	errFailedListEmailSharesFmt  = "failed to list email shares: %w"
	errFailedScanEmailShareFmt   = "failed to scan email share: %w"
	errFailedAcceptEmailShareFmt = "failed to mark email share accepted: %w"

	errFailedCreateShareLinkFmt  = "failed to create share link: %w"
	errFailedGetShareLinkFmt     = "failed to get share link: %w"
	errFailedListShareLinksFmt   = "failed to list share links: %w"
	errFailedScanShareLinkFmt    = "failed to scan share link: %w"
	errFailedConsumeLinkUseFmt   = "failed to consume share link use: %w"
	errFailedDeleteShareLinkFmt  = "failed to delete share link: %w"

	errFailedCreateActivityFmt = "failed to create activity: %w"
	errFailedListActivitiesFmt = "failed to list activities: %w"
	errFailedScanActivityFmt   = "failed to scan activity: %w"
)
