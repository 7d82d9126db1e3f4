package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prudvireddyNS/mentor/api/http/presenter"
	"github.com/prudvireddyNS/mentor/pkg/assignment"
	"github.com/prudvireddyNS/mentor/pkg/course"
	"github.com/prudvireddyNS/mentor/pkg/security/jwt"
)

type AssignmentHandler struct {
	assignments assignment.UseCase
}

func NewAssignmentHandler(assignments assignment.UseCase) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

type createAssignmentRequest struct {
	CourseID    string    `json:"course_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	TotalPoints int       `json:"total_points"`
}

type submitRequest struct {
	Content string `json:"content" validate:"required"`
}

type gradeRequest struct {
	SubmissionID string   `json:"submission_id" validate:"required"`
	Grade        *float64 `json:"grade" validate:"required"`
	Feedback     string   `json:"feedback"`
}

type assignmentResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	CourseTitle string    `json:"course_title,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	TotalPoints int       `json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
}

type submissionResponse struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Content      string    `json:"content"`
	Grade        *float64  `json:"grade"`
	Feedback     *string   `json:"feedback"`
}

type studentAssignmentResponse struct {
	assignmentResponse
	Status     assignment.Status   `json:"status"`
	Submission *submissionResponse `json:"submission"`
}

type adminAssignmentResponse struct {
	assignmentResponse
	Status          assignment.Status `json:"status"`
	SubmissionCount int               `json:"submission_count"`
	GradedCount     int               `json:"graded_count"`
}

type submissionDetailResponse struct {
	submissionResponse
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
}

func toAssignmentResponse(a assignment.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:          a.ID.String(),
		CourseID:    a.CourseID.String(),
		CourseTitle: a.CourseTitle,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		TotalPoints: a.TotalPoints,
		CreatedAt:   a.CreatedAt,
	}
}

func toSubmissionResponse(s assignment.Submission) submissionResponse {
	return submissionResponse{
		ID:           s.ID.String(),
		AssignmentID: s.AssignmentID.String(),
		StudentID:    s.StudentID.String(),
		SubmittedAt:  s.SubmittedAt,
		Content:      s.Content,
		Grade:        s.Grade,
		Feedback:     s.Feedback,
	}
}

func toStudentResponse(v assignment.StudentView) studentAssignmentResponse {
	resp := studentAssignmentResponse{assignmentResponse: toAssignmentResponse(v.Assignment), Status: v.Status}
	if v.Submission != nil {
		sub := toSubmissionResponse(*v.Submission)
		resp.Submission = &sub
	}
	return resp
}

func toStudentList(views []assignment.StudentView) []studentAssignmentResponse {
	out := make([]studentAssignmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toStudentResponse(v))
	}
	return out
}

// Create adds an assignment to a course.
// @Summary Create assignment
// @Tags    assignments
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body createAssignmentRequest true "assignment"
// @Success 200 {object} assignmentResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /assignments/ [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var req createAssignmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	courseID, err := course.ParseID(req.CourseID)
	if err != nil {
		return courseError(c, err)
	}
	created, err := h.assignments.Create(c.UserContext(), assignment.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		TotalPoints: req.TotalPoints,
	})
	if err != nil {
		return assignmentError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toAssignmentResponse(created))
}

// Submit records the calling student's work.
// @Summary Submit assignment
// @Tags    assignments
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path string true "assignment id"
// @Param   input body submitRequest true "submission"
// @Success 200 {object} submissionResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /assignments/{id}/submit [post]
func (h *AssignmentHandler) Submit(c *fiber.Ctx) error {
	id, err := assignmentID(c)
	if err != nil {
		return err
	}
	var req submitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	studentID, _ := jwt.CurrentUserID(c)
	sub, err := h.assignments.Submit(c.UserContext(), studentID, id, req.Content)
	if err != nil {
		return assignmentError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toSubmissionResponse(sub))
}

// Grade scores a submission.
// @Summary Grade submission
// @Tags    assignments
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path string true "assignment id"
// @Param   input body gradeRequest true "grade"
// @Success 200 {object} submissionResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /assignments/{id}/grade [post]
func (h *AssignmentHandler) Grade(c *fiber.Ctx) error {
	id, err := assignmentID(c)
	if err != nil {
		return err
	}
	var req gradeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	subID, err := uuid.Parse(req.SubmissionID)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Submission not found")
	}
	sub, err := h.assignments.Grade(c.UserContext(), id, subID, *req.Grade, req.Feedback)
	if err != nil {
		return assignmentError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toSubmissionResponse(sub))
}

// ListMine returns every assignment of the student's courses.
// @Summary Student assignments
// @Tags    assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} studentAssignmentResponse
// @Router  /assignments/student [get]
func (h *AssignmentHandler) ListMine(c *fiber.Ctx) error {
	studentID, _ := jwt.CurrentUserID(c)
	views, err := h.assignments.ListForStudent(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, toStudentList(views))
}

// Upcoming returns the student's assignments that are not yet due.
// @Summary Upcoming assignments
// @Tags    assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} studentAssignmentResponse
// @Router  /assignments/student/upcoming [get]
func (h *AssignmentHandler) Upcoming(c *fiber.Ctx) error {
	studentID, _ := jwt.CurrentUserID(c)
	views, err := h.assignments.UpcomingForStudent(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, toStudentList(views))
}

// ListAll returns every assignment with submission counters.
// @Summary Admin assignments
// @Tags    assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} adminAssignmentResponse
// @Router  /assignments/admin [get]
func (h *AssignmentHandler) ListAll(c *fiber.Ctx) error {
	views, err := h.assignments.ListForAdmin(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]adminAssignmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, adminAssignmentResponse{
			assignmentResponse: toAssignmentResponse(v.Assignment),
			Status:             v.Status,
			SubmissionCount:    v.SubmissionCount,
			GradedCount:        v.GradedCount,
		})
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Get shows one assignment.
// @Summary Get assignment
// @Tags    assignments
// @Produce json
// @Security BearerAuth
// @Param   id path string true "assignment id"
// @Success 200 {object} studentAssignmentResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	id, err := assignmentID(c)
	if err != nil {
		return err
	}
	viewer, _ := jwt.CurrentUser(c)
	view, err := h.assignments.Details(c.UserContext(), viewer, id)
	if err != nil {
		return assignmentError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toStudentResponse(view))
}

// Submissions lists every submission of an assignment.
// @Summary Assignment submissions
// @Tags    assignments
// @Produce json
// @Security BearerAuth
// @Param   id path string true "assignment id"
// @Success 200 {array} submissionDetailResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /assignments/{id}/submissions [get]
func (h *AssignmentHandler) Submissions(c *fiber.Ctx) error {
	id, err := assignmentID(c)
	if err != nil {
		return err
	}
	subs, err := h.assignments.Submissions(c.UserContext(), id)
	if err != nil {
		return assignmentError(c, err)
	}
	out := make([]submissionDetailResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, submissionDetailResponse{
			submissionResponse: toSubmissionResponse(s.Submission),
			StudentName:        s.StudentName,
			StudentEmail:       s.StudentEmail,
		})
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// MySubmission shows the calling student's latest submission.
// @Summary Student submission
// @Tags    assignments
// @Produce json
// @Security BearerAuth
// @Param   id path string true "assignment id"
// @Success 200 {object} studentAssignmentResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /assignments/{id}/submission [get]
func (h *AssignmentHandler) MySubmission(c *fiber.Ctx) error {
	id, err := assignmentID(c)
	if err != nil {
		return err
	}
	studentID, _ := jwt.CurrentUserID(c)
	view, err := h.assignments.StudentSubmission(c.UserContext(), studentID, id)
	if err != nil {
		return assignmentError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toStudentResponse(view))
}

func assignmentID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(http.StatusBadRequest, "Invalid assignment ID format")
	}
	return id, nil
}

func assignmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, assignment.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "Assignment not found")
	case errors.Is(err, assignment.ErrSubmissionNotFound):
		return presenter.Error(c, http.StatusNotFound, "Submission not found")
	case errors.Is(err, assignment.ErrNotEnrolled):
		return presenter.Error(c, http.StatusForbidden, "Not enrolled in this course")
	case errors.Is(err, assignment.ErrInvalidGrade):
		return presenter.Error(c, http.StatusBadRequest, "Grade must not be negative")
	case errors.Is(err, assignment.ErrTitleRequired):
		return presenter.Error(c, http.StatusUnprocessableEntity, "title is required")
	default:
		return courseError(c, err)
	}
}
