package http

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/prudvireddyNS/mentor/api/http/handlers"
	"github.com/prudvireddyNS/mentor/pkg/auth"
	"github.com/prudvireddyNS/mentor/pkg/security/jwt"
)

// Gate authenticates bearer tokens and checks roles.
type Gate interface {
	jwt.Authenticator
	jwt.Authorizer
}

// Deps carries everything Register mounts.
type Deps struct {
	Gate        Gate
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Courses     *handlers.CourseHandler
	Enrollments *handlers.EnrollmentHandler
	Assignments *handlers.AssignmentHandler
	Dashboard   *handlers.DashboardHandler
	Health      *handlers.HealthHandler
	Metrics     fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, d Deps) {
	authn := jwt.NewAuthMiddleware(d.Gate)
	admin := func(detail string) fiber.Handler { return jwt.RequireRole(d.Gate, auth.RoleAdmin, detail) }
	student := func(detail string) fiber.Handler { return jwt.RequireRole(d.Gate, auth.RoleStudent, detail) }

	// Health and readiness endpoints for probes/monitoring
	if d.Health != nil {
		app.Get("/health", d.Health.Health)
		app.Get("/ready", d.Health.Ready)
	}
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics)
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Post("/token", d.Auth.Token)
	app.Post("/google-login", d.Auth.GoogleLogin)

	app.Post("/users/", d.Users.Create)
	app.Get("/users/me", authn, d.Users.Me)

	app.Get("/courses/", d.Courses.List)
	app.Post("/courses/", authn, admin("Not authorized"), d.Courses.Create)
	app.Get("/courses/:id", d.Courses.Get)
	app.Put("/courses/:id", authn, admin("Not authorized"), d.Courses.Update)
	app.Delete("/courses/:id", authn, admin("Not authorized"), d.Courses.Delete)

	app.Post("/enrollments/", authn, student("Only students can enroll in courses"), d.Enrollments.Enroll)
	app.Get("/enrollments/student", authn, student("Only students can view their enrollments"), d.Enrollments.ListMine)

	// static paths first so they are not taken for an :id
	as := app.Group("/assignments", authn)
	as.Post("/", admin("Only admins can create assignments"), d.Assignments.Create)
	as.Get("/student", student("Only students can view their assignments"), d.Assignments.ListMine)
	as.Get("/student/upcoming", student("Only students can view their assignments"), d.Assignments.Upcoming)
	as.Get("/admin", admin("Not authorized"), d.Assignments.ListAll)
	as.Get("/:id", d.Assignments.Get)
	as.Post("/:id/submit", student("Only students can submit assignments"), d.Assignments.Submit)
	as.Post("/:id/grade", admin("Only admins can grade assignments"), d.Assignments.Grade)
	as.Get("/:id/submissions", admin("Not authorized"), d.Assignments.Submissions)
	as.Get("/:id/submission", student("Not authorized"), d.Assignments.MySubmission)

	app.Get("/admin/dashboard/stats", authn, admin("Not authorized"), d.Dashboard.Stats)
}
