package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/hirehive/hirehive/internal/auth"
	"github.com/hirehive/hirehive/internal/repository/sqlite"
	"github.com/hirehive/hirehive/internal/service"
)

const (
	testJWTSecret      = "test-jwt-secret-16-chars"
	testIdentitySecret = "test-identity-secret-16c"
)

// testEnv wires real services over an in-memory database behind the same
// router shape the server uses, so handler tests exercise middleware,
// URL params and the wire format together.
type testEnv struct {
	db       *sqlite.DB
	tokens   *auth.TokenService
	uploader *fakeUploader
	verifier *fakeVerifier
	router   chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService(testJWTSecret)
	require.NoError(t, err)
	identity, err := auth.NewIdentityVerifier(testIdentitySecret)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uploader := &fakeUploader{}
	verifier := &fakeVerifier{}

	companySvc := service.NewCompanyService(db, auth.NewPasswordServiceForTest(4), tokens, uploader)
	jobSvc := service.NewJobService(db)
	appSvc := service.NewApplicationService(db, db)
	userSvc := service.NewUserService(db, uploader)
	syncSvc := service.NewSyncService(db, logger)

	companyH := NewCompanyHandler(companySvc, jobSvc, appSvc, logger)
	jobH := NewJobHandler(jobSvc, logger)
	userH := NewUserHandler(userSvc, appSvc, logger)
	webhookH := NewWebhookHandler(verifier, syncSvc, logger)

	r := chi.NewRouter()
	r.Post("/webhooks", webhookH.Handle)
	r.Get("/api/jobs", jobH.List)
	r.Get("/api/jobs/{id}", jobH.Get)
	r.Route("/api/company", func(r chi.Router) {
		r.Post("/register", companyH.Register)
		r.Post("/login", companyH.Login)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireCompany(tokens))
			r.Get("/company", companyH.Profile)
			r.Post("/post-job", companyH.PostJob)
			r.Get("/list-jobs", companyH.ListJobs)
			r.Post("/change-visibility", companyH.ChangeVisibility)
			r.Get("/applicants", companyH.Applicants)
			r.Post("/change-status", companyH.ChangeStatus)
		})
	})
	r.Route("/api/users", func(r chi.Router) {
		r.Use(auth.RequireUser(identity))
		r.Get("/user", userH.Profile)
		r.Post("/apply", userH.Apply)
		r.Get("/applications", userH.Applications)
		r.Post("/update-resume", userH.UpdateResume)
	})

	return &testEnv{db: db, tokens: tokens, uploader: uploader, verifier: verifier, router: r}
}

type fakeUploader struct {
	err     error
	uploads int
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	return fmt.Sprintf("https://cdn.example.com/%s/file-%d", folder, f.uploads), nil
}

// fakeVerifier accepts every payload unless err is set.
type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Verify(payload []byte, headers http.Header) error {
	return f.err
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// doRegister runs the multipart registration flow and returns the raw
// response.
func doRegister(t *testing.T, env *testEnv, name, email string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("email", email))
	require.NoError(t, mw.WriteField("password", "hunter22valid"))
	part, err := mw.CreateFormFile("image", "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("logo-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/company/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return env.do(t, req)
}

// registerCompany registers and returns the session token.
func registerCompany(t *testing.T, env *testEnv, name, email string) string {
	t.Helper()
	rec := doRegister(t, env, name, email)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func postJob(t *testing.T, env *testEnv, token, title string) string {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/api/company/post-job", map[string]any{
		"title":    title,
		"location": "Remote",
		"category": "Programming",
		"level":    "Senior",
		"salary":   90000,
	})
	req.Header.Set(auth.CompanyTokenHeader, token)
	rec := env.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	job, _ := body["job"].(map[string]any)
	id, _ := job["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// seekerToken signs a provider-style session token for the given user.
func seekerToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testIdentitySecret))
	require.NoError(t, err)
	return signed
}

// createSeeker inserts a user and returns a valid bearer token for them.
func createSeeker(t *testing.T, env *testEnv, id string) string {
	t.Helper()
	body := fmt.Sprintf(`{
		"type": "user.created",
		"data": {
			"id": %q,
			"first_name": "Test",
			"last_name": "Seeker",
			"email_addresses": [{"email_address": "%s@example.com"}]
		}
	}`, id, id)
	req := httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body))
	rec := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return seekerToken(t, id)
}
