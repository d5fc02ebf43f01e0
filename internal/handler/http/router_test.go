package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/jwt"
	authService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/auth"
	chatService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/chat"
	companyService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/company"
	documentService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/document"
	employeeService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/employee"
	inviteService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/invite"
	roleService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/role"
	teamService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	env     *fixtures.Env
	jwt     jwt.Service
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	env := fixtures.NewEnv()
	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)

	ledger := documentService.NewLedger(env.Tx, env.Documents, env.Versions, env.Metrics)
	handlers := Handlers{
		Auth:     NewAuthHandler(authService.NewAuthService(env.Employees, jwtService)),
		Company:  NewCompanyHandler(companyService.NewCompanyService(env.Tx, env.Companies, env.Employees, env.Roles, env.Evaluator)),
		Employee: NewEmployeeHandler(employeeService.NewEmployeeService(env.Employees)),
		Role:     NewRoleHandler(roleService.NewRoleService(env.Tx, env.Roles, env.Employees, env.Evaluator)),
		Invite: NewInviteHandler(inviteService.NewInviteService(
			env.Tx, env.Invites, env.Employees, env.Roles, env.Evaluator, env.Metrics, 24*time.Hour)),
		Team: NewTeamHandler(teamService.NewTeamService(
			env.Tx, env.Teams, env.Employees, env.Evaluator, []string{"manager", "lead"})),
		Document: NewDocumentHandler(documentService.NewDocumentService(
			env.Tx, env.Documents, env.Teams, ledger, env.Evaluator)),
		Chat: NewChatHandler(chatService.NewChatService(
			env.Chats, env.Messages, env.Teams, env.Employees, env.Evaluator, env.Metrics, chatService.MessageLimits{})),
	}

	router := NewRouter(jwtService, RouterOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
		Env:            "test",
		Logger:         slog.New(slog.DiscardHandler),
		Metrics:        env.Metrics,
		Gatherer:       env.Registry,
	}, handlers)

	return &testServer{env: env, jwt: jwtService, handler: router}
}

func (s *testServer) token(t *testing.T, emp employee.Employee) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(emp.ID, emp.Email)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

type idBody struct {
	ID string `json:"id"`
}

func TestRouter_OnboardingFlow(t *testing.T) {
	s := newTestServer(t)

	register := func(name, email, title string) {
		rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"name": name, "email": email, "job_title": title,
			"password": "password123", "confirm_password": "password123",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	login := func(email string) string {
		rec, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": email, "password": "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decodeData[struct {
			AccessToken string `json:"access_token"`
		}](t, env).AccessToken
	}

	register("Ayu", "ayu@acme.test", "Manager")
	ownerToken := login("AYU@acme.test")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ayu@acme.test", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/api/v1/companies", ownerToken, map[string]string{"company_name": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	companyID := decodeData[idBody](t, env).ID

	rec, env = s.do(t, http.MethodGet, "/api/v1/me", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeData[struct {
		ID        string  `json:"id"`
		CompanyID *string `json:"company_id"`
	}](t, env)
	require.NotNil(t, me.CompanyID)
	assert.Equal(t, companyID, *me.CompanyID)

	register("Budi", "budi@acme.test", "Developer")
	memberToken := login("budi@acme.test")

	rec, _ = s.do(t, http.MethodPost, "/api/v1/invites/consume", memberToken, map[string]string{"token": "NOPE42"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/companies/"+companyID, memberToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "outsiders cannot read the company")

	rec, env = s.do(t, http.MethodPost, "/api/v1/companies/"+companyID+"/invites", ownerToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	code := decodeData[struct {
		Token  string `json:"token"`
		Status string `json:"status"`
	}](t, env)
	assert.Equal(t, "active", code.Status)

	rec, env = s.do(t, http.MethodPost, "/api/v1/invites/consume", memberToken, map[string]string{"token": code.Token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	joined := decodeData[struct {
		CompanyID  string    `json:"company_id"`
		EmployeeID string    `json:"employee_id"`
		Role       role.Role `json:"role"`
	}](t, env)
	assert.Equal(t, companyID, joined.CompanyID)
	assert.Equal(t, role.RoleMember, joined.Role)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/invites/consume", memberToken, map[string]string{"token": code.Token})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "a consumed code cannot be reused")

	rec, env = s.do(t, http.MethodGet, "/api/v1/companies/"+companyID+"/employees", memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]idBody](t, env), 2)

	rolePath := fmt.Sprintf("/api/v1/companies/%s/roles/%s", companyID, joined.EmployeeID)
	rec, _ = s.do(t, http.MethodPatch, rolePath, memberToken, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = s.do(t, http.MethodPatch, rolePath, ownerToken, map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "admin", decodeData[struct {
		Role string `json:"role"`
	}](t, env).Role)

	rec, env = s.do(t, http.MethodGet, "/api/v1/companies/"+companyID+"/invites", memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, "promoted admins may list invites")
	assert.Len(t, decodeData[[]idBody](t, env), 1)
}

func TestRouter_Authentication(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := jwt.NewJWTService("some-other-secret", time.Hour)
	forged, _, err := other.GenerateAccessToken("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", "x@y.test")
	require.NoError(t, err)
	rec, _ = s.do(t, http.MethodGet, "/api/v1/me", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequestValidation(t *testing.T) {
	s := newTestServer(t)
	emp := s.env.Employee(t, "Citra", "Manager")
	token := s.token(t, emp)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"malformed json", http.MethodPost, "/api/v1/companies", "{", http.StatusBadRequest},
		{"missing company name", http.MethodPost, "/api/v1/companies", map[string]string{}, http.StatusUnprocessableEntity},
		{"company id not a uuid", http.MethodGet, "/api/v1/companies/acme", nil, http.StatusBadRequest},
		{"version id not a uuid", http.MethodGet, "/api/v1/documents/0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b/versions/v1", nil, http.StatusBadRequest},
		{"unknown company", http.MethodGet, "/api/v1/companies/0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", nil, http.StatusNotFound},
		{"documents without scope", http.MethodGet, "/api/v1/documents", nil, http.StatusUnprocessableEntity},
		{"documents with bad scope", http.MethodGet, "/api/v1/documents?team_id=abc", nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := s.do(t, tc.method, tc.path, token, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_DocumentLifecycle(t *testing.T) {
	s := newTestServer(t)
	owner := s.env.Employee(t, "Dimas", "Manager")
	acme := s.env.Company(t, owner, "Acme")
	writer := s.env.Join(t, s.env.Employee(t, "Eka", "Writer"), acme.ID, role.RoleMember)
	outsider := s.env.Join(t, s.env.Employee(t, "Fajar", "Writer"), acme.ID, role.RoleMember)
	squad := s.env.Team(t, acme.ID, owner, writer)

	writerToken := s.token(t, writer)

	rec, env := s.do(t, http.MethodPost, "/api/v1/documents", writerToken, map[string]any{
		"title":      "Roadmap",
		"content":    "a\nb",
		"company_id": acme.ID,
		"team_id":    squad.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	docID := decodeData[idBody](t, env).ID
	docPath := "/api/v1/documents/" + docID

	for _, content := range []string{"a\nc", "a\nc\nd"} {
		rec, _ = s.do(t, http.MethodPatch, docPath, writerToken, map[string]string{"content": content})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec, env = s.do(t, http.MethodGet, docPath+"/versions", writerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	versions := decodeData[[]struct {
		ID      string `json:"id"`
		Version int    `json:"version"`
	}](t, env)
	require.Len(t, versions, 3)
	assert.Equal(t, 1, versions[0].Version)

	rec, env = s.do(t, http.MethodGet, fmt.Sprintf("%s/diff?from=%s&to=%s", docPath, versions[0].ID, versions[1].ID), writerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	diff := decodeData[struct {
		FromVersion int `json:"from_version"`
		ToVersion   int `json:"to_version"`
	}](t, env)
	assert.Equal(t, 1, diff.FromVersion)
	assert.Equal(t, 2, diff.ToVersion)

	rec, _ = s.do(t, http.MethodGet, docPath+"/diff?from="+versions[0].ID, writerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(t, http.MethodPost, docPath+"/versions/"+versions[0].ID+"/restore", writerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	restored := decodeData[struct {
		Content string `json:"content"`
		Version int    `json:"version"`
	}](t, env)
	assert.Equal(t, "a\nb", restored.Content)
	assert.Equal(t, 4, restored.Version)

	rec, env = s.do(t, http.MethodGet, "/api/v1/documents?team_id="+squad.ID, writerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]idBody](t, env), 1)

	outsiderToken := s.token(t, outsider)
	rec, _ = s.do(t, http.MethodGet, docPath, outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = s.do(t, http.MethodPatch, docPath, outsiderToken, map[string]string{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, float64(1), s.env.CounterValue(t, "teamspace_document_versions_total", map[string]string{"cause": "restore"}))
}

func TestRouter_TeamAndChat(t *testing.T) {
	s := newTestServer(t)
	owner := s.env.Employee(t, "Gita", "Manager")
	acme := s.env.Company(t, owner, "Acme")
	lead := s.env.Join(t, s.env.Employee(t, "Hadi", "Lead"), acme.ID, role.RoleMember)
	dev := s.env.Join(t, s.env.Employee(t, "Indah", "Developer"), acme.ID, role.RoleMember)

	leadToken := s.token(t, lead)
	devToken := s.token(t, dev)
	ownerToken := s.token(t, owner)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/teams", devToken, map[string]string{"name": "Core", "company_id": acme.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code, "developer is not a creator title here")

	rec, env := s.do(t, http.MethodPost, "/api/v1/teams", leadToken, map[string]string{"name": "Core", "company_id": acme.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	teamID := decodeData[idBody](t, env).ID

	rec, _ = s.do(t, http.MethodPost, "/api/v1/chats/team/"+teamID, devToken, map[string]string{"name": "general"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/teams/"+teamID+"/members", leadToken, map[string]string{"employee_id": dev.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = s.do(t, http.MethodGet, "/api/v1/teams/"+teamID+"/members", devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]json.RawMessage](t, env), 2)

	rec, env = s.do(t, http.MethodPost, "/api/v1/chats/team/"+teamID, devToken, map[string]string{"name": "general"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	chatID := decodeData[idBody](t, env).ID
	messagesPath := "/api/v1/chats/" + chatID + "/messages"

	var firstMessageID string
	for i := range 3 {
		rec, env = s.do(t, http.MethodPost, messagesPath, leadToken, map[string]string{"content": fmt.Sprintf("m%d", i)})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		if i == 0 {
			firstMessageID = decodeData[idBody](t, env).ID
		}
	}

	rec, env = s.do(t, http.MethodGet, messagesPath+"?limit=2", devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	window := decodeData[[]struct {
		Content string `json:"content"`
	}](t, env)
	require.Len(t, window, 2)
	assert.Equal(t, "m1", window[0].Content)
	assert.Equal(t, "m2", window[1].Content)

	rec, _ = s.do(t, http.MethodGet, messagesPath+"?limit=abc", devToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPatch, "/api/v1/messages/"+firstMessageID, devToken, map[string]string{"content": "edited"})
	assert.Equal(t, http.StatusForbidden, rec.Code, "only the author edits")

	rec, env = s.do(t, http.MethodPatch, "/api/v1/messages/"+firstMessageID, leadToken, map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeData[struct {
		Edited bool `json:"edited"`
	}](t, env).Edited)

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/messages/"+firstMessageID, leadToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "team messages are not deletable")

	rec, _ = s.do(t, http.MethodPost, "/api/v1/chats/company/"+acme.ID, devToken, map[string]string{"name": "announcements"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/chats/company/"+acme.ID, ownerToken, map[string]string{"name": "announcements"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = s.do(t, http.MethodGet, "/api/v1/chats/company/"+acme.ID, devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]idBody](t, env), 1)

	assert.Equal(t, float64(3), s.env.CounterValue(t, "teamspace_chat_messages_total", map[string]string{"scope": "team"}))
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodGet, "/api/v1/me", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "teamspace_http_requests_total")
	assert.Contains(t, body, `route="/api/v1/me"`)
	assert.Contains(t, body, `status="401"`)
}
