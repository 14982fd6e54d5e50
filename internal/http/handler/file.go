package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"docvault/internal/auth"
	"docvault/internal/domain/file"
	"docvault/internal/service"
)

type FileHandler struct {
	files FileOperations
}

func NewFileHandler(files FileOperations) *FileHandler {
	return &FileHandler{files: files}
}

type UploadFileRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Format      string `json:"format"`
	Description string `json:"description"`
	Content     []byte `json:"content"` // base64 over the wire
}

type DownloadFileResponse struct {
	File    *file.File `json:"file"`
	Content []byte     `json:"content"` // base64 over the wire
}

type UpdateFileRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type MoveFileRequest struct {
	TargetProjectID string `json:"target_project_id"`
}

type SizeLimitRuleRequest struct {
	Types    []string `json:"types"`
	Formats  []string `json:"formats"`
	MaxBytes int64    `json:"max_bytes"`
}

type UpdateSizeLimitsRequest struct {
	GlobalMaxBytes *int64                 `json:"global_max_bytes"`
	Rules          []SizeLimitRuleRequest `json:"rules"`
}

func (h *FileHandler) Upload(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	var req UploadFileRequest
	if err := bindUploadJSON(c, &req); err != nil {
		return err
	}

	f, err := h.files.Upload(c.Request().Context(), userID, projectID, service.UploadFileInput{
		Name:        req.Name,
		Type:        file.Type(req.Type),
		Format:      file.Format(req.Format),
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, f)
}

func (h *FileHandler) GetFile(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	f, err := h.files.GetFile(c.Request().Context(), userID, fileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, f)
}

func (h *FileHandler) ListFiles(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	files, err := h.files.ListFiles(c.Request().Context(), userID, projectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, files)
}

func (h *FileHandler) Download(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	f, content, err := h.files.Download(c.Request().Context(), userID, fileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DownloadFileResponse{
		File:    f,
		Content: content,
	})
}

func (h *FileHandler) UpdateFile(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	var req UpdateFileRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	f, err := h.files.UpdateFile(c.Request().Context(), userID, fileID, file.UpdateFileInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, f)
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	if err := h.files.DeleteFile(c.Request().Context(), userID, fileID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, msgFileDeleted)
}

func (h *FileHandler) MoveFile(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fileID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidFileID)
	}

	var req MoveFileRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	targetProjectID, err := uuid.Parse(req.TargetProjectID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	f, err := h.files.MoveFile(c.Request().Context(), userID, fileID, targetProjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, f)
}

// UpdateSizeLimits replaces the global ceiling and/or registers
// narrowing rules scoped to file types and formats.
func (h *FileHandler) UpdateSizeLimits(c echo.Context) error {
	if _, err := auth.GetUserID(c); err != nil {
		return err
	}

	var req UpdateSizeLimitsRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	if req.GlobalMaxBytes != nil {
		if err := h.files.SetGlobalSizeLimit(*req.GlobalMaxBytes); err != nil {
			return err
		}
	}

	for _, r := range req.Rules {
		rule := file.LimitRule{MaxBytes: r.MaxBytes}
		for _, t := range r.Types {
			rule.Types = append(rule.Types, file.Type(t))
		}
		for _, f := range r.Formats {
			rule.Formats = append(rule.Formats, file.Format(f))
		}
		if err := h.files.AddSizeLimitRule(rule); err != nil {
			return err
		}
	}

	return respondMessage(c, http.StatusOK, msgLimitsUpdated)
}
