package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/prudvireddyNS/mentor/api/http/presenter"
	"github.com/prudvireddyNS/mentor/pkg/course"
	"github.com/prudvireddyNS/mentor/pkg/enrollment"
	"github.com/prudvireddyNS/mentor/pkg/security/jwt"
)

type EnrollmentHandler struct {
	enrollments enrollment.UseCase
}

func NewEnrollmentHandler(enrollments enrollment.UseCase) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type enrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

type enrollmentResponse struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Progress   float64   `json:"progress"`
}

type enrolledCourseResponse struct {
	EnrollmentID string    `json:"enrollment_id"`
	CourseID     string    `json:"course_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Duration     string    `json:"duration"`
	Level        string    `json:"level"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// Enroll signs the calling student up for a course.
// @Summary Enroll in course
// @Tags    enrollments
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body enrollRequest true "course to join"
// @Success 200 {object} enrollmentResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /enrollments/ [post]
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	var req enrollRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	courseID, err := course.ParseID(req.CourseID)
	if err != nil {
		return courseError(c, err)
	}
	studentID, _ := jwt.CurrentUserID(c)

	e, err := h.enrollments.Enroll(c.UserContext(), studentID, courseID)
	switch {
	case errors.Is(err, enrollment.ErrAlreadyEnrolled):
		return presenter.Error(c, http.StatusBadRequest, "Already enrolled in this course")
	case err != nil:
		return courseError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, enrollmentResponse{
		ID:         e.ID.String(),
		StudentID:  e.StudentID.String(),
		CourseID:   e.CourseID.String(),
		EnrolledAt: e.EnrolledAt,
		Progress:   e.Progress,
	})
}

// ListMine returns the calling student's courses.
// @Summary Student enrollments
// @Tags    enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} enrolledCourseResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /enrollments/student [get]
func (h *EnrollmentHandler) ListMine(c *fiber.Ctx) error {
	studentID, _ := jwt.CurrentUserID(c)
	list, err := h.enrollments.ListForStudent(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	out := make([]enrolledCourseResponse, 0, len(list))
	for _, ec := range list {
		out = append(out, enrolledCourseResponse{
			EnrollmentID: ec.EnrollmentID.String(),
			CourseID:     ec.Course.ID.String(),
			Title:        ec.Course.Title,
			Description:  ec.Course.Description,
			ImageURL:     ec.Course.ImageURL,
			Duration:     ec.Course.Duration,
			Level:        ec.Course.Level,
			EnrolledAt:   ec.EnrolledAt,
		})
	}
	return presenter.JSON(c, http.StatusOK, out)
}
