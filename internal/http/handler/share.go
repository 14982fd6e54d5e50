package handler

import (
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"docvault/internal/auth"
	"docvault/internal/domain/permission"
	"docvault/internal/service"
)

var shareTokenPattern = regexp.MustCompile("^[a-f0-9]{64}$")

type ShareHandler struct {
	shares ShareOperations
}

func NewShareHandler(shares ShareOperations) *ShareHandler {
	return &ShareHandler{shares: shares}
}

type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

type ShareWithUserRequest struct {
	SharedWith  string     `json:"shared_with"`
	Permissions []string   `json:"permissions"`
	Message     string     `json:"message"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type ShareWithEmailRequest struct {
	Email       string     `json:"email"`
	Permissions []string   `json:"permissions"`
	Message     string     `json:"message"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type GenerateLinkRequest struct {
	Permissions []string   `json:"permissions"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Password    string     `json:"password"`
	MaxUses     *int       `json:"max_uses"`
}

func permissionSet(raw []string) permission.Set {
	set := make(permission.Set, 0, len(raw))
	for _, p := range raw {
		set = append(set, permission.Permission(p))
	}
	return set
}

func (h *ShareHandler) GetPermissions(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	records, err := h.shares.GetFilePermissions(c.Request().Context(), userID, fileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, records)
}

func (h *ShareHandler) UpdatePermissions(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	targetUserID, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	var req UpdatePermissionsRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	rec, err := h.shares.UpdateFilePermissions(c.Request().Context(), userID, fileID, targetUserID, permissionSet(req.Permissions))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rec)
}

func (h *ShareHandler) ShareWithUser(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	var req ShareWithUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	sharedWith, err := uuid.Parse(req.SharedWith)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	created, err := h.shares.ShareWithUser(c.Request().Context(), userID, service.ShareWithUserInput{
		FileID:      fileID,
		SharedWith:  sharedWith,
		Permissions: permissionSet(req.Permissions),
		Message:     req.Message,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *ShareHandler) ShareWithEmail(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	var req ShareWithEmailRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	created, err := h.shares.ShareWithEmail(c.Request().Context(), userID, service.ShareWithEmailInput{
		FileID:      fileID,
		Email:       req.Email,
		Permissions: permissionSet(req.Permissions),
		Message:     req.Message,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *ShareHandler) AcceptEmailShare(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	shareID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidShareID)
	}

	rec, err := h.shares.AcceptEmailShare(c.Request().Context(), userID, shareID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rec)
}

func (h *ShareHandler) ListUserShares(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	shares, err := h.shares.ListUserShares(c.Request().Context(), userID, fileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shares)
}

func (h *ShareHandler) ListEmailShares(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	shares, err := h.shares.ListEmailShares(c.Request().Context(), userID, fileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shares)
}

func (h *ShareHandler) GenerateLink(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	var req GenerateLinkRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	link, err := h.shares.GenerateLink(c.Request().Context(), userID, service.GenerateLinkInput{
		FileID:      fileID,
		Permissions: permissionSet(req.Permissions),
		ExpiresAt:   req.ExpiresAt,
		Password:    req.Password,
		MaxUses:     req.MaxUses,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, link)
}

func (h *ShareHandler) ListLinks(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	links, err := h.shares.ListLinks(c.Request().Context(), userID, fileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, links)
}

func (h *ShareHandler) RevokeLink(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	linkID, err := uuid.Parse(c.Param(paramLinkID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidLinkID)
	}

	if err := h.shares.RevokeLink(c.Request().Context(), userID, fileID, linkID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, msgLinkRevoked)
}

// ResolveShareLink is the anonymous entry point: no user context, the
// token is the whole credential. The optional password rides in a
// header or query parameter.
func (h *ShareHandler) ResolveShareLink(c echo.Context) error {
	shareToken := c.Param(paramToken)

	// Fast format rejection, not timing sensitive.
	if !isValidShareTokenFormat(shareToken) {
		return respondError(c, http.StatusBadRequest, msgInvalidShareToken)
	}

	linkPassword := c.Request().Header.Get(headerSharePassword)
	if linkPassword == "" {
		linkPassword = c.QueryParam(queryPassword)
	}

	resolved, err := h.shares.ResolveLink(c.Request().Context(), shareToken, linkPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resolved)
}

func isValidShareTokenFormat(token string) bool {
	if len(token) != shareTokenLength {
		return false
	}
	return shareTokenPattern.MatchString(token)
}
