package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prudvireddyNS/mentor/api/http/presenter"
	"github.com/prudvireddyNS/mentor/pkg/course"
	"github.com/prudvireddyNS/mentor/pkg/security/jwt"
)

type CourseHandler struct {
	courses course.UseCase
}

func NewCourseHandler(courses course.UseCase) *CourseHandler { return &CourseHandler{courses: courses} }

type courseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
}

type coursePatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Duration    *string `json:"duration"`
	Level       *string `json:"level"`
}

type courseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Duration    string    `json:"duration"`
	Level       string    `json:"level"`
	AdminID     string    `json:"admin_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCourseResponse(c course.Course) courseResponse {
	resp := courseResponse{
		ID:          c.ID.String(),
		Title:       c.Title,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Duration:    c.Duration,
		Level:       c.Level,
		CreatedAt:   c.CreatedAt,
	}
	if c.AdminID != uuid.Nil {
		resp.AdminID = c.AdminID.String()
	}
	return resp
}

// Create adds a course owned by the calling admin.
// @Summary Create course
// @Tags    courses
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body courseRequest true "course"
// @Success 200 {object} courseResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /courses/ [post]
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req courseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	adminID, _ := jwt.CurrentUserID(c)
	created, err := h.courses.Create(c.UserContext(), adminID, course.Course{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Duration:    req.Duration,
		Level:       req.Level,
	})
	if err != nil {
		return courseError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toCourseResponse(created))
}

// List returns the whole catalogue.
// @Summary List courses
// @Tags    courses
// @Produce json
// @Success 200 {array} courseResponse
// @Router  /courses/ [get]
func (h *CourseHandler) List(c *fiber.Ctx) error {
	list, err := h.courses.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]courseResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toCourseResponse(item))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Get returns one course.
// @Summary Get course
// @Tags    courses
// @Produce json
// @Param   id path string true "course id"
// @Success 200 {object} courseResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /courses/{id} [get]
func (h *CourseHandler) Get(c *fiber.Ctx) error {
	id, err := course.ParseID(c.Params("id"))
	if err != nil {
		return courseError(c, err)
	}
	found, err := h.courses.Get(c.UserContext(), id)
	if err != nil {
		return courseError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toCourseResponse(found))
}

// Update changes the fields present in the body.
// @Summary Update course
// @Tags    courses
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path string true "course id"
// @Param   input body coursePatchRequest true "fields to change"
// @Success 200 {object} courseResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /courses/{id} [put]
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := course.ParseID(c.Params("id"))
	if err != nil {
		return courseError(c, err)
	}
	var req coursePatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	updated, err := h.courses.Update(c.UserContext(), id, course.Patch{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Duration:    req.Duration,
		Level:       req.Level,
	})
	if err != nil {
		return courseError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toCourseResponse(updated))
}

// Delete removes a course without enrollments.
// @Summary Delete course
// @Tags    courses
// @Produce json
// @Security BearerAuth
// @Param   id path string true "course id"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /courses/{id} [delete]
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := course.ParseID(c.Params("id"))
	if err != nil {
		return courseError(c, err)
	}
	if err := h.courses.Delete(c.UserContext(), id); err != nil {
		return courseError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, presenter.MessageResponse{Message: "Course deleted successfully"})
}

func courseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, course.ErrIDRequired):
		return presenter.Error(c, http.StatusBadRequest, "Course ID is required and cannot be undefined")
	case errors.Is(err, course.ErrInvalidID):
		return presenter.Error(c, http.StatusBadRequest, "Invalid course ID format")
	case errors.Is(err, course.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "Course not found")
	case errors.Is(err, course.ErrHasEnrollments):
		return presenter.Error(c, http.StatusBadRequest, "Cannot delete course with active enrollments")
	case errors.Is(err, course.ErrTitleRequired):
		return presenter.Error(c, http.StatusUnprocessableEntity, "title is required")
	default:
		return err
	}
}
