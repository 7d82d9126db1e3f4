package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/prudvireddyNS/mentor/api/http/presenter"
	"github.com/prudvireddyNS/mentor/pkg/dashboard"
)

type DashboardHandler struct {
	dashboard dashboard.UseCase
}

func NewDashboardHandler(uc dashboard.UseCase) *DashboardHandler { return &DashboardHandler{dashboard: uc} }

type courseEnrollmentResponse struct {
	CourseID        string `json:"course_id"`
	CourseTitle     string `json:"course_title"`
	EnrollmentCount int    `json:"enrollment_count"`
}

type statsResponse struct {
	TotalStudents       int                        `json:"total_students"`
	TotalCourses        int                        `json:"total_courses"`
	TotalEnrollments    int                        `json:"total_enrollments"`
	TotalAssignments    int                        `json:"total_assignments"`
	TotalSubmissions    int                        `json:"total_submissions"`
	PendingSubmissions  int                        `json:"pending_submissions"`
	UpcomingAssignments int                        `json:"upcoming_assignments"`
	RecentEnrollments   int                        `json:"recent_enrollments"`
	CourseEnrollments   []courseEnrollmentResponse `json:"course_enrollments"`
}

// Stats returns platform-wide counters.
// @Summary Admin dashboard statistics
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} statsResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	s, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return err
	}
	resp := statsResponse{
		TotalStudents:       s.TotalStudents,
		TotalCourses:        s.TotalCourses,
		TotalEnrollments:    s.TotalEnrollments,
		TotalAssignments:    s.TotalAssignments,
		TotalSubmissions:    s.TotalSubmissions,
		PendingSubmissions:  s.PendingSubmissions,
		UpcomingAssignments: s.UpcomingAssignments,
		RecentEnrollments:   s.RecentEnrollments,
		CourseEnrollments:   make([]courseEnrollmentResponse, 0, len(s.CourseEnrollments)),
	}
	for _, ce := range s.CourseEnrollments {
		resp.CourseEnrollments = append(resp.CourseEnrollments, courseEnrollmentResponse{
			CourseID:        ce.CourseID.String(),
			CourseTitle:     ce.CourseTitle,
			EnrollmentCount: ce.EnrollmentCount,
		})
	}
	return presenter.JSON(c, http.StatusOK, resp)
}
