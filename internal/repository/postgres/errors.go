package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var (
	errFailedAcceptEmailShare     = func(err error) error { return fmt.Errorf(errFailedAcceptEmailShareFmt, err) }
	errFailedConsumeLinkUse       = func(err error) error { return fmt.Errorf(errFailedConsumeLinkUseFmt, err) }
	errFailedCreateActivity       = func(err error) error { return fmt.Errorf(errFailedCreateActivityFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedCreateEmailShare     = func(err error) error { return fmt.Errorf(errFailedCreateEmailShareFmt, err) }
	errFailedCreateFile           = func(err error) error { return fmt.Errorf(errFailedCreateFileFmt, err) }
	errFailedCreateProject        = func(err error) error { return fmt.Errorf(errFailedCreateProjectFmt, err) }
	errFailedCreateShareLink      = func(err error) error { return fmt.Errorf(errFailedCreateShareLinkFmt, err) }
	errFailedCreateUser           = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedCreateUserShare      = func(err error) error { return fmt.Errorf(errFailedCreateUserShareFmt, err) }
	errFailedDeleteFile           = func(err error) error { return fmt.Errorf(errFailedDeleteFileFmt, err) }
	errFailedDeletePermissions    = func(err error) error { return fmt.Errorf(errFailedDeletePermissionsFmt, err) }
	errFailedDeleteProject        = func(err error) error { return fmt.Errorf(errFailedDeleteProjectFmt, err) }
	errFailedDeleteProjectFiles   = func(err error) error { return fmt.Errorf(errFailedDeleteProjectFilesFmt, err) }
	errFailedDeleteShareLink      = func(err error) error { return fmt.Errorf(errFailedDeleteShareLinkFmt, err) }
	errFailedGetEmailShare        = func(err error) error { return fmt.Errorf(errFailedGetEmailShareFmt, err) }
	errFailedGetFile              = func(err error) error { return fmt.Errorf(errFailedGetFileFmt, err) }
	errFailedGetPermission        = func(err error) error { return fmt.Errorf(errFailedGetPermissionFmt, err) }
	errFailedGetProject           = func(err error) error { return fmt.Errorf(errFailedGetProjectFmt, err) }
	errFailedGetShareLink         = func(err error) error { return fmt.Errorf(errFailedGetShareLinkFmt, err) }
	errFailedGetUser              = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedListActivities       = func(err error) error { return fmt.Errorf(errFailedListActivitiesFmt, err) }
	errFailedListEmailShares      = func(err error) error { return fmt.Errorf(errFailedListEmailSharesFmt, err) }
	errFailedListFiles            = func(err error) error { return fmt.Errorf(errFailedListFilesFmt, err) }
	errFailedListPermissions      = func(err error) error { return fmt.Errorf(errFailedListPermissionsFmt, err) }
	errFailedListProjects         = func(err error) error { return fmt.Errorf(errFailedListProjectsFmt, err) }
	errFailedListShareLinks       = func(err error) error { return fmt.Errorf(errFailedListShareLinksFmt, err) }
	errFailedListUserShares       = func(err error) error { return fmt.Errorf(errFailedListUserSharesFmt, err) }
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedScanActivity         = func(err error) error { return fmt.Errorf(errFailedScanActivityFmt, err) }
	errFailedScanEmailShare       = func(err error) error { return fmt.Errorf(errFailedScanEmailShareFmt, err) }
	errFailedScanFile             = func(err error) error { return fmt.Errorf(errFailedScanFileFmt, err) }
	errFailedScanPermission       = func(err error) error { return fmt.Errorf(errFailedScanPermissionFmt, err) }
	errFailedScanProject          = func(err error) error { return fmt.Errorf(errFailedScanProjectFmt, err) }
	errFailedScanShareLink        = func(err error) error { return fmt.Errorf(errFailedScanShareLinkFmt, err) }
	errFailedScanUserShare        = func(err error) error { return fmt.Errorf(errFailedScanUserShareFmt, err) }
	errFailedSetPermissions       = func(err error) error { return fmt.Errorf(errFailedSetPermissionsFmt, err) }
	errFailedSetTags              = func(err error) error { return fmt.Errorf(errFailedSetTagsFmt, err) }
	errFailedUpdateFile           = func(err error) error { return fmt.Errorf(errFailedUpdateFileFmt, err) }
	errFailedUpdateProject        = func(err error) error { return fmt.Errorf(errFailedUpdateProjectFmt, err) }
)
