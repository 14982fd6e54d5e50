package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"docvault/internal/auth"
	"docvault/internal/domain/project"
	"docvault/internal/service"
)

type ProjectHandler struct {
	projects ProjectOperations
}

func NewProjectHandler(projects ProjectOperations) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type TagRequest struct {
	Tag string `json:"tag"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	p, err := h.projects.CreateProject(c.Request().Context(), userID, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) GetProject(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	p, err := h.projects.GetProject(c.Request().Context(), userID, projectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.ListProjects(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	var req UpdateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	p, err := h.projects.UpdateProject(c.Request().Context(), userID, projectID, project.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	if err := h.projects.DeleteProject(c.Request().Context(), userID, projectID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, msgProjectDeleted)
}

func (h *ProjectHandler) AddTag(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	var req TagRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	p, err := h.projects.AddTag(c.Request().Context(), userID, projectID, req.Tag)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) RemoveTag(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	p, err := h.projects.RemoveTag(c.Request().Context(), userID, projectID, c.Param(paramTag))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Comment(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	var req CommentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	a, err := h.projects.Comment(c.Request().Context(), userID, projectID, req.Text)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, a)
}

func (h *ProjectHandler) ListActivities(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidProjectID)
	}

	limit := 0
	if raw := c.QueryParam(queryLimit); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return respondError(c, http.StatusBadRequest, msgInvalidLimitParam)
		}
	}

	activities, err := h.projects.ListActivities(c.Request().Context(), userID, projectID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, activities)
}
