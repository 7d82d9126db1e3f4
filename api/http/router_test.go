package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	api "github.com/prudvireddyNS/mentor/api/http"
	"github.com/prudvireddyNS/mentor/api/http/handlers"
	"github.com/prudvireddyNS/mentor/pkg/assignment"
	"github.com/prudvireddyNS/mentor/pkg/auth"
	"github.com/prudvireddyNS/mentor/pkg/course"
	"github.com/prudvireddyNS/mentor/pkg/dashboard"
	"github.com/prudvireddyNS/mentor/pkg/enrollment"
	"github.com/prudvireddyNS/mentor/pkg/metrics"
	"github.com/prudvireddyNS/mentor/pkg/repository/memory"
	"github.com/prudvireddyNS/mentor/pkg/security/jwt"
	"github.com/prudvireddyNS/mentor/pkg/security/password"
)

type env struct {
	app         *fiber.App
	users       *memory.UserRepository
	limiter     *fakeLimiter
	broker      *fakeBroker
	courses     *memCourses
	assignments *fakeAssignments
	dashboard   *fakeDashboard
}

func newEnv(t *testing.T) *env {
	t.Helper()
	users := memory.NewUserRepository()
	tokens, err := jwt.NewService([]byte("test-secret"), jwt.WithIssuer("mentor"))
	require.NoError(t, err)
	accounts := auth.NewService(users, password.NewHasher(bcrypt.MinCost), tokens,
		auth.ServiceConfig{TokenTTL: 30 * time.Minute, AllowAdminRegistration: true}, nil)

	courses := newMemCourses()
	e := &env{
		users:       users,
		limiter:     &fakeLimiter{allow: true},
		broker:      &fakeBroker{},
		courses:     courses,
		assignments: &fakeAssignments{},
		dashboard:   &fakeDashboard{},
	}
	e.app = fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(zap.NewNop())})
	api.Register(e.app, api.Deps{
		Gate:        auth.NewGate(tokens, users),
		Auth:        handlers.NewAuthHandler(accounts, e.broker, e.limiter, metrics.New(), zap.NewNop()),
		Users:       handlers.NewUserHandler(accounts),
		Courses:     handlers.NewCourseHandler(course.NewService(courses)),
		Enrollments: handlers.NewEnrollmentHandler(enrollment.NewService(courses.enrollments, courses)),
		Assignments: handlers.NewAssignmentHandler(e.assignments),
		Dashboard:   handlers.NewDashboardHandler(e.dashboard),
	})
	return e
}

type result struct {
	status int
	header http.Header
	body   []byte
}

func (r result) detail(t *testing.T) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(r.body, &body), string(r.body))
	return body.Detail
}

func (r result) decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, dst), string(r.body))
}

func (e *env) do(t *testing.T, method, path, token string, body any) result {
	t.Helper()
	var (
		reader      io.Reader
		contentType string
	)
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = fiber.MIMEApplicationForm
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
		contentType = fiber.MIMEApplicationJSON
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{status: resp.StatusCode, header: resp.Header, body: raw}
}

func (e *env) register(t *testing.T, email string, role auth.Role) {
	t.Helper()
	res := e.do(t, http.MethodPost, "/users/", "", map[string]string{
		"email": email, "password": "pw", "role": string(role), "first_name": "Ada", "last_name": "Lovelace",
	})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
}

func (e *env) login(t *testing.T, email string) string {
	t.Helper()
	res := e.do(t, http.MethodPost, "/token", "", url.Values{"username": {email}, "password": {"pw"}})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	var tok auth.TokenResponse
	res.decode(t, &tok)
	return tok.AccessToken
}

func (e *env) account(t *testing.T, email string, role auth.Role) string {
	t.Helper()
	e.register(t, email, role)
	return e.login(t, email)
}

func TestPasswordLoginFlow(t *testing.T) {
	e := newEnv(t)
	e.register(t, "ada@example.com", auth.RoleStudent)

	res := e.do(t, http.MethodPost, "/token", "", url.Values{"username": {"ada@example.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusOK, res.status)
	var tok auth.TokenResponse
	res.decode(t, &tok)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, auth.RoleStudent, tok.Role)
	assert.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, 1, e.limiter.resets)

	me := e.do(t, http.MethodGet, "/users/me", tok.AccessToken, nil)
	require.Equal(t, http.StatusOK, me.status)
	var user map[string]any
	me.decode(t, &user)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, "student", user["role"])
	assert.NotContains(t, user, "password_hash")
}

func TestPasswordLoginFailuresLookAlike(t *testing.T) {
	e := newEnv(t)
	e.register(t, "ada@example.com", auth.RoleStudent)

	for name, form := range map[string]url.Values{
		"unknown email":  {"username": {"nobody@example.com"}, "password": {"pw"}},
		"wrong password": {"username": {"ada@example.com"}, "password": {"nope"}},
	} {
		t.Run(name, func(t *testing.T) {
			res := e.do(t, http.MethodPost, "/token", "", form)
			assert.Equal(t, http.StatusUnauthorized, res.status)
			assert.Equal(t, "Bearer", res.header.Get("WWW-Authenticate"))
			assert.Equal(t, "Incorrect email or password", res.detail(t))
		})
	}
	assert.Equal(t, 2, e.limiter.fails)
}

func TestPasswordLoginThrottled(t *testing.T) {
	e := newEnv(t)
	e.register(t, "ada@example.com", auth.RoleStudent)
	e.limiter.allow = false

	res := e.do(t, http.MethodPost, "/token", "", url.Values{"username": {"ada@example.com"}, "password": {"pw"}})
	assert.Equal(t, http.StatusTooManyRequests, res.status)
	assert.Equal(t, "Too many login attempts", res.detail(t))
}

func TestPasswordLoginThrottleOutageFailsOpen(t *testing.T) {
	e := newEnv(t)
	e.register(t, "ada@example.com", auth.RoleStudent)
	e.limiter.err = errors.New("redis down")

	res := e.do(t, http.MethodPost, "/token", "", url.Values{"username": {"ada@example.com"}, "password": {"pw"}})
	assert.Equal(t, http.StatusOK, res.status)
}

func TestRequestValidation(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		name   string
		path   string
		body   any
		detail string
	}{
		{"token without password", "/token", url.Values{"username": {"a@b.c"}}, "password is required"},
		{"register without password", "/users/", map[string]string{"email": "ada@example.com"}, "password is required"},
		{"register with bad email", "/users/", map[string]string{"email": "nope", "password": "pw"}, "email must be a valid email address"},
		{"google login without token", "/google-login", nil, "token is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.do(t, http.MethodPost, tc.path, "", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, res.status)
			assert.Equal(t, tc.detail, res.detail(t))
		})
	}
}

func TestRegistration(t *testing.T) {
	e := newEnv(t)
	e.register(t, "ada@example.com", auth.RoleStudent)

	dup := e.do(t, http.MethodPost, "/users/", "", map[string]string{"email": "ada@example.com", "password": "pw2"})
	assert.Equal(t, http.StatusBadRequest, dup.status)
	assert.Equal(t, "Email already registered", dup.detail(t))

	bad := e.do(t, http.MethodPost, "/users/", "", map[string]string{"email": "x@example.com", "password": "pw", "role": "teacher"})
	assert.Equal(t, http.StatusBadRequest, bad.status)

	res := e.do(t, http.MethodPost, "/users/", "", map[string]string{"email": "bob@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, res.status)
	var user map[string]any
	res.decode(t, &user)
	assert.Equal(t, "student", user["role"], "role defaults to student")
}

func TestRegistrationRejectsOverlongPassword(t *testing.T) {
	e := newEnv(t)

	res := e.do(t, http.MethodPost, "/users/", "", map[string]string{
		"email": "ada@example.com", "password": strings.Repeat("p", 80),
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Password must be at most 72 bytes", res.detail(t))
	assert.Equal(t, 0, e.users.Len())
}

func TestGoogleLogin(t *testing.T) {
	e := newEnv(t)

	e.broker.resp = auth.TokenResponse{AccessToken: "tok", TokenType: "bearer", Role: auth.RoleStudent}
	res := e.do(t, http.MethodPost, "/google-login?token=abc", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "abc", e.broker.got)
	var tok auth.TokenResponse
	res.decode(t, &tok)
	assert.Equal(t, auth.RoleStudent, tok.Role)

	e.broker.err = auth.ErrInvalidAssertion
	res = e.do(t, http.MethodPost, "/google-login?token=abc", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Google authentication failed", res.detail(t))

	e.broker.err = auth.ErrProvisionConflict
	res = e.do(t, http.MethodPost, "/google-login?token=abc", "", nil)
	assert.Equal(t, http.StatusConflict, res.status)
}

func TestProtectedRoutes(t *testing.T) {
	e := newEnv(t)
	student := e.account(t, "stu@example.com", auth.RoleStudent)

	res := e.do(t, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Could not validate credentials", res.detail(t))

	res = e.do(t, http.MethodGet, "/users/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = e.do(t, http.MethodPost, "/courses/", student, map[string]string{"title": "Go"})
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Not authorized", res.detail(t))

	res = e.do(t, http.MethodGet, "/admin/dashboard/stats", student, nil)
	assert.Equal(t, http.StatusForbidden, res.status)
}

func TestDeletedUserTokenIsRejected(t *testing.T) {
	e := newEnv(t)
	token := e.account(t, "stu@example.com", auth.RoleStudent)

	u, err := e.users.GetByEmail(context.Background(), "stu@example.com")
	require.NoError(t, err)
	e.users.Delete(u.ID)

	res := e.do(t, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

func TestCourseLifecycle(t *testing.T) {
	e := newEnv(t)
	admin := e.account(t, "admin@example.com", auth.RoleAdmin)
	student := e.account(t, "stu@example.com", auth.RoleStudent)

	res := e.do(t, http.MethodPost, "/courses/", admin, map[string]string{"title": "Go", "level": "beginner"})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	var created map[string]any
	res.decode(t, &created)
	id := created["id"].(string)

	res = e.do(t, http.MethodGet, "/courses/", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	var list []map[string]any
	res.decode(t, &list)
	assert.Len(t, list, 1)

	res = e.do(t, http.MethodPut, "/courses/"+id, admin, map[string]string{"title": "Go 2"})
	require.Equal(t, http.StatusOK, res.status)
	var updated map[string]any
	res.decode(t, &updated)
	assert.Equal(t, "Go 2", updated["title"])
	assert.Equal(t, "beginner", updated["level"], "untouched fields survive")

	res = e.do(t, http.MethodPost, "/enrollments/", admin, map[string]string{"course_id": id})
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Only students can enroll in courses", res.detail(t))

	res = e.do(t, http.MethodPost, "/enrollments/", student, map[string]string{"course_id": id})
	require.Equal(t, http.StatusOK, res.status, string(res.body))

	res = e.do(t, http.MethodPost, "/enrollments/", student, map[string]string{"course_id": id})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Already enrolled in this course", res.detail(t))

	res = e.do(t, http.MethodGet, "/enrollments/student", student, nil)
	require.Equal(t, http.StatusOK, res.status)
	var mine []map[string]any
	res.decode(t, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0]["course_id"])
	assert.Equal(t, "Go 2", mine[0]["title"])

	res = e.do(t, http.MethodDelete, "/courses/"+id, admin, nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Cannot delete course with active enrollments", res.detail(t))
}

func TestCourseDelete(t *testing.T) {
	e := newEnv(t)
	admin := e.account(t, "admin@example.com", auth.RoleAdmin)

	res := e.do(t, http.MethodPost, "/courses/", admin, map[string]string{"title": "Go"})
	require.Equal(t, http.StatusOK, res.status)
	var created map[string]any
	res.decode(t, &created)

	res = e.do(t, http.MethodDelete, "/courses/"+created["id"].(string), admin, nil)
	require.Equal(t, http.StatusOK, res.status)
	var msg map[string]string
	res.decode(t, &msg)
	assert.Equal(t, "Course deleted successfully", msg["message"])

	res = e.do(t, http.MethodGet, "/courses/"+created["id"].(string), "", nil)
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestCourseIDErrors(t *testing.T) {
	e := newEnv(t)

	cases := map[string]struct {
		status int
		detail string
	}{
		"undefined":      {http.StatusBadRequest, "Course ID is required and cannot be undefined"},
		"not-a-uuid":     {http.StatusBadRequest, "Invalid course ID format"},
		uuid.NewString(): {http.StatusNotFound, "Course not found"},
	}
	for id, want := range cases {
		res := e.do(t, http.MethodGet, "/courses/"+id, "", nil)
		assert.Equal(t, want.status, res.status, id)
		assert.Equal(t, want.detail, res.detail(t), id)
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	e := newEnv(t)
	student := e.account(t, "stu@example.com", auth.RoleStudent)

	res := e.do(t, http.MethodPost, "/enrollments/", student, map[string]string{"course_id": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Course not found", res.detail(t))
}

func TestAssignmentRoutes(t *testing.T) {
	e := newEnv(t)
	admin := e.account(t, "admin@example.com", auth.RoleAdmin)
	student := e.account(t, "stu@example.com", auth.RoleStudent)

	res := e.do(t, http.MethodGet, "/assignments/student", student, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "ListForStudent", e.assignments.last, "static path wins over :id")

	res = e.do(t, http.MethodGet, "/assignments/student/upcoming", student, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "UpcomingForStudent", e.assignments.last)

	res = e.do(t, http.MethodGet, "/assignments/admin", admin, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "ListForAdmin", e.assignments.last)

	res = e.do(t, http.MethodGet, "/assignments/admin", student, nil)
	assert.Equal(t, http.StatusForbidden, res.status)

	res = e.do(t, http.MethodGet, "/assignments/not-a-uuid", student, nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid assignment ID format", res.detail(t))

	id := uuid.NewString()
	res = e.do(t, http.MethodPost, "/assignments/"+id+"/submit", admin, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Only students can submit assignments", res.detail(t))

	res = e.do(t, http.MethodPost, "/assignments/"+id+"/grade", student, map[string]any{"submission_id": uuid.NewString(), "grade": 5})
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Only admins can grade assignments", res.detail(t))

	res = e.do(t, http.MethodPost, "/assignments/", student, map[string]any{})
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Only admins can create assignments", res.detail(t))
}

func TestAssignmentErrors(t *testing.T) {
	e := newEnv(t)
	admin := e.account(t, "admin@example.com", auth.RoleAdmin)
	student := e.account(t, "stu@example.com", auth.RoleStudent)
	id := uuid.NewString()

	e.assignments.err = assignment.ErrNotEnrolled
	res := e.do(t, http.MethodGet, "/assignments/"+id, student, nil)
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Not enrolled in this course", res.detail(t))

	e.assignments.err = assignment.ErrNotFound
	res = e.do(t, http.MethodPost, "/assignments/"+id+"/submit", student, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Assignment not found", res.detail(t))

	e.assignments.err = assignment.ErrSubmissionNotFound
	res = e.do(t, http.MethodPost, "/assignments/"+id+"/grade", admin, map[string]any{"submission_id": uuid.NewString(), "grade": 5})
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Submission not found", res.detail(t))

	res = e.do(t, http.MethodPost, "/assignments/"+id+"/grade", admin, map[string]any{"submission_id": uuid.NewString()})
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Equal(t, "grade is required", res.detail(t))
}

func TestAssignmentCreate(t *testing.T) {
	e := newEnv(t)
	admin := e.account(t, "admin@example.com", auth.RoleAdmin)
	courseID := uuid.NewString()
	due := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	res := e.do(t, http.MethodPost, "/assignments/", admin, map[string]any{
		"course_id": courseID, "title": "Essay", "due_date": due, "total_points": 10,
	})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	require.Len(t, e.assignments.created, 1)
	got := e.assignments.created[0]
	assert.Equal(t, courseID, got.CourseID.String())
	assert.Equal(t, "Essay", got.Title)
	assert.True(t, due.Equal(got.DueDate))
	assert.Equal(t, 10, got.TotalPoints)
}

func TestUnexpectedErrorsAreInternal(t *testing.T) {
	e := newEnv(t)
	admin := e.account(t, "admin@example.com", auth.RoleAdmin)
	e.dashboard.err = errors.New("db down")

	res := e.do(t, http.MethodGet, "/admin/dashboard/stats", admin, nil)
	assert.Equal(t, http.StatusInternalServerError, res.status)
	assert.Equal(t, "Internal server error", res.detail(t))
}

func TestDashboardStats(t *testing.T) {
	e := newEnv(t)
	admin := e.account(t, "admin@example.com", auth.RoleAdmin)
	e.dashboard.stats = dashboard.Stats{TotalStudents: 3, PendingSubmissions: 2}

	res := e.do(t, http.MethodGet, "/admin/dashboard/stats", admin, nil)
	require.Equal(t, http.StatusOK, res.status)
	var stats map[string]any
	res.decode(t, &stats)
	assert.EqualValues(t, 3, stats["total_students"])
	assert.EqualValues(t, 2, stats["pending_submissions"])
	assert.Equal(t, []any{}, stats["course_enrollments"])
}

type fakeLimiter struct {
	allow  bool
	err    error
	fails  int
	resets int
}

func (f *fakeLimiter) Allow(context.Context, string) (bool, error) {
	if f.err != nil {
		return true, f.err
	}
	return f.allow, nil
}

func (f *fakeLimiter) Fail(context.Context, string) error  { f.fails++; return nil }
func (f *fakeLimiter) Reset(context.Context, string) error { f.resets++; return nil }

type fakeBroker struct {
	resp auth.TokenResponse
	err  error
	got  string
}

func (f *fakeBroker) Login(_ context.Context, assertion string) (auth.TokenResponse, error) {
	f.got = assertion
	return f.resp, f.err
}

type fakeDashboard struct {
	stats dashboard.Stats
	err   error
}

func (f *fakeDashboard) Stats(context.Context) (dashboard.Stats, error) { return f.stats, f.err }

// memCourses stores courses and enrollments for routing tests.
type memCourses struct {
	mu          sync.Mutex
	items       map[uuid.UUID]course.Course
	enrollments *memEnrollments
}

func newMemCourses() *memCourses {
	c := &memCourses{items: make(map[uuid.UUID]course.Course)}
	c.enrollments = &memEnrollments{courses: c}
	return c
}

func (m *memCourses) Create(_ context.Context, c course.Course) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[c.ID] = c
	return c, nil
}

func (m *memCourses) Get(_ context.Context, id uuid.UUID) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (m *memCourses) List(context.Context) ([]course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]course.Course, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memCourses) Update(_ context.Context, c course.Course) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[c.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	m.items[c.ID] = c
	return c, nil
}

func (m *memCourses) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return course.ErrNotFound
	}
	if m.enrollments.countFor(id) > 0 {
		return course.ErrHasEnrollments
	}
	delete(m.items, id)
	return nil
}

type memEnrollments struct {
	mu      sync.Mutex
	items   []enrollment.Enrollment
	courses *memCourses
}

func (m *memEnrollments) countFor(courseID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.items {
		if e.CourseID == courseID {
			n++
		}
	}
	return n
}

func (m *memEnrollments) Create(_ context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.items {
		if x.StudentID == e.StudentID && x.CourseID == e.CourseID {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
	}
	m.items = append(m.items, e)
	return e, nil
}

func (m *memEnrollments) IsEnrolled(_ context.Context, studentID, courseID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.items {
		if x.StudentID == studentID && x.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memEnrollments) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]enrollment.EnrolledCourse, error) {
	m.mu.Lock()
	mine := make([]enrollment.Enrollment, 0)
	for _, x := range m.items {
		if x.StudentID == studentID {
			mine = append(mine, x)
		}
	}
	m.mu.Unlock()

	out := make([]enrollment.EnrolledCourse, 0, len(mine))
	for _, x := range mine {
		c, err := m.courses.Get(ctx, x.CourseID)
		if err != nil {
			return nil, err
		}
		out = append(out, enrollment.EnrolledCourse{EnrollmentID: x.ID, Course: c, EnrolledAt: x.EnrolledAt})
	}
	return out, nil
}

// fakeAssignments records which operation a route reached.
type fakeAssignments struct {
	last    string
	err     error
	created []assignment.Assignment
}

func (f *fakeAssignments) Create(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	f.last = "Create"
	if f.err != nil {
		return assignment.Assignment{}, f.err
	}
	a.ID = uuid.New()
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAssignments) Submit(_ context.Context, studentID, assignmentID uuid.UUID, content string) (assignment.Submission, error) {
	f.last = "Submit"
	return assignment.Submission{ID: uuid.New(), AssignmentID: assignmentID, StudentID: studentID, Content: content}, f.err
}

func (f *fakeAssignments) Grade(_ context.Context, assignmentID, submissionID uuid.UUID, grade float64, feedback string) (assignment.Submission, error) {
	f.last = "Grade"
	return assignment.Submission{ID: submissionID, AssignmentID: assignmentID, Grade: &grade, Feedback: &feedback}, f.err
}

func (f *fakeAssignments) ListForStudent(context.Context, uuid.UUID) ([]assignment.StudentView, error) {
	f.last = "ListForStudent"
	return nil, f.err
}

func (f *fakeAssignments) UpcomingForStudent(context.Context, uuid.UUID) ([]assignment.StudentView, error) {
	f.last = "UpcomingForStudent"
	return nil, f.err
}

func (f *fakeAssignments) ListForAdmin(context.Context) ([]assignment.AdminView, error) {
	f.last = "ListForAdmin"
	return nil, f.err
}

func (f *fakeAssignments) Details(_ context.Context, _ auth.User, id uuid.UUID) (assignment.StudentView, error) {
	f.last = "Details"
	return assignment.StudentView{Assignment: assignment.Assignment{ID: id}}, f.err
}

func (f *fakeAssignments) Submissions(context.Context, uuid.UUID) ([]assignment.SubmissionDetail, error) {
	f.last = "Submissions"
	return nil, f.err
}

func (f *fakeAssignments) StudentSubmission(_ context.Context, _, id uuid.UUID) (assignment.StudentView, error) {
	f.last = "StudentSubmission"
	return assignment.StudentView{Assignment: assignment.Assignment{ID: id}}, f.err
}
