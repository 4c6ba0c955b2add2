package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/response"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func nullLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withClaims(req *http.Request, claims domain.Claims) *http.Request {
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileField string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "photo.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeValidation(t *testing.T, rec *httptest.ResponseRecorder) response.ValidationBody {
	t.Helper()
	var body response.ValidationBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthHandler_Registration(t *testing.T) {
	svc := new(web.MockAuthService)
	h := NewAuthHandler(svc, "http://front.example", nullLogger())

	in := domain.RegistrationInput{Username: "alice_1", Email: "alice@example.com", Password: "secret1"}
	svc.On("Register", mock.Anything, in, "http://app.example").Return(nil)

	req := jsonRequest(http.MethodPost, "/auth/registration", `{"username":"alice_1","email":"alice@example.com","password":"secret1"}`)
	req.Header.Set("Origin", "http://app.example/")
	rec := httptest.NewRecorder()
	h.HandleRegistration(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_RegistrationValidation(t *testing.T) {
	svc := new(web.MockAuthService)
	h := NewAuthHandler(svc, "http://front.example", nullLogger())

	req := jsonRequest(http.MethodPost, "/auth/registration", `{"username":"a b","email":"nope","password":"1"}`)
	rec := httptest.NewRecorder()
	h.HandleRegistration(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeValidation(t, rec)

	var fields []string
	for _, fe := range body.ErrorsMessages {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"username", "email", "password"}, fields)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_RegistrationDuplicate(t *testing.T) {
	svc := new(web.MockAuthService)
	h := NewAuthHandler(svc, "http://front.example", nullLogger())

	svc.On("Register", mock.Anything, mock.Anything, "http://front.example").
		Return(domain.FieldErrors{{Field: "email", Message: "email already exists"}})

	req := jsonRequest(http.MethodPost, "/auth/registration", `{"username":"alice_1","email":"alice@example.com","password":"secret1"}`)
	rec := httptest.NewRecorder()
	h.HandleRegistration(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeValidation(t, rec)
	require.Len(t, body.ErrorsMessages, 1)
	assert.Equal(t, "email", body.ErrorsMessages[0].Field)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(web.MockAuthService)
	h := NewAuthHandler(svc, "", nullLogger())

	pair := domain.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Refresh:      domain.Claims{UserID: 1, DeviceID: "dev", ExpiresAt: time.Now().Add(20 * time.Minute)},
	}
	creds := domain.Credentials{Email: "alice@example.com", Password: "secret1"}
	svc.On("Login", mock.Anything, creds, "test-agent", "10.0.0.1").Return(pair, nil)

	req := jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret1"}`)
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "10.0.0.1:4000"
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body accessTokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "access", body.AccessToken)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.RefreshCookie, cookies[0].Name)
	assert.Equal(t, "refresh", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestAuthHandler_LoginUnauthorized(t *testing.T) {
	svc := new(web.MockAuthService)
	h := NewAuthHandler(svc, "", nullLogger())
	svc.On("Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.TokenPair{}, domain.Unauthorized("invalid credentials"))

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(web.MockAuthService)
	h := NewAuthHandler(svc, "", nullLogger())

	claims := domain.Claims{UserID: 1, DeviceID: "dev"}
	svc.On("Logout", mock.Anything, claims).Return(nil)

	rec := httptest.NewRecorder()
	h.HandleLogout(rec, withClaims(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), claims))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthHandler_Me(t *testing.T) {
	svc := new(web.MockAuthService)
	h := NewAuthHandler(svc, "", nullLogger())
	svc.On("Me", mock.Anything, int64(5)).Return(domain.Me{Email: "e@example.com", Username: "user_5", UserID: 5}, nil)

	rec := httptest.NewRecorder()
	h.HandleMe(rec, withClaims(httptest.NewRequest(http.MethodGet, "/auth/me", nil), domain.Claims{UserID: 5}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"e@example.com","username":"user_5","userId":5}`, rec.Body.String())
}

func TestAuthHandler_MissingClaims(t *testing.T) {
	h := NewAuthHandler(new(web.MockAuthService), "", nullLogger())

	rec := httptest.NewRecorder()
	h.HandleMe(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeviceHandler(t *testing.T) {
	svc := new(web.MockSessionService)
	h := NewDeviceHandler(svc, nullLogger())
	claims := domain.Claims{UserID: 1, DeviceID: "current"}

	svc.On("List", mock.Anything, int64(1)).Return([]domain.SessionView{{DeviceID: "current", Title: "firefox"}}, nil)
	svc.On("TerminateOthers", mock.Anything, int64(1), "current").Return(nil)
	svc.On("Terminate", mock.Anything, int64(1), "foreign").Return(domain.Forbidden("device belongs to another user"))

	rec := httptest.NewRecorder()
	h.HandleList(rec, withClaims(httptest.NewRequest(http.MethodGet, "/security/devices", nil), claims))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deviceId":"current"`)

	rec = httptest.NewRecorder()
	h.HandleTerminateOthers(rec, withClaims(httptest.NewRequest(http.MethodDelete, "/security/devices", nil), claims))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req := withClaims(httptest.NewRequest(http.MethodDelete, "/security/devices/foreign", nil), claims)
	req = mux.SetURLVars(req, map[string]string{"deviceId": "foreign"})
	rec = httptest.NewRecorder()
	h.HandleTerminate(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	svc.AssertExpectations(t)
}

func TestProfileHandler_Update(t *testing.T) {
	svc := new(web.MockProfileService)
	h := NewProfileHandler(svc, nullLogger())

	want := domain.UpdateProfileInput{Username: "alice_1", Name: "Alice", City: "Lisbon", Birthday: "1990-05-01"}
	svc.On("Update", mock.Anything, int64(1), want, mock.MatchedBy(func(u *domain.Upload) bool {
		return u != nil && u.Filename == "photo.png" && u.Size == 3
	})).Return(nil)

	req := multipartRequest(t, http.MethodPut, "/user/profile", map[string]string{
		"username": "alice_1",
		"name":     "Alice",
		"city":     "Lisbon",
		"birthday": "1990-05-01",
	}, "avatar", []byte{1, 2, 3})

	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, withClaims(req, domain.Claims{UserID: 1}))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestProfileHandler_UpdateValidation(t *testing.T) {
	svc := new(web.MockProfileService)
	h := NewProfileHandler(svc, nullLogger())

	req := multipartRequest(t, http.MethodPut, "/user/profile", map[string]string{
		"username": "bob",
		"birthday": "3000-01-01",
	}, "", nil)

	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, withClaims(req, domain.Claims{UserID: 1}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeValidation(t, rec)
	var fields []string
	for _, fe := range body.ErrorsMessages {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"username", "birthday"}, fields)
}

func TestProfileHandler_GetNotFound(t *testing.T) {
	svc := new(web.MockProfileService)
	h := NewProfileHandler(svc, nullLogger())
	svc.On("Get", mock.Anything, int64(1)).Return(domain.ProfileView{}, domain.NotFound("profile"))

	rec := httptest.NewRecorder()
	h.HandleGet(rec, withClaims(httptest.NewRequest(http.MethodGet, "/user/profile", nil), domain.Claims{UserID: 1}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostHandler_Create(t *testing.T) {
	svc := new(web.MockPostService)
	h := NewPostHandler(svc, nullLogger())

	view := domain.PostView{ID: 9, Description: "hello", PostPhotos: []string{}}
	svc.On("Create", mock.Anything, int64(1), domain.CreatePostInput{Description: "hello"}, (*domain.Upload)(nil)).Return(view, nil)

	req := multipartRequest(t, http.MethodPost, "/user/post", map[string]string{"description": "hello"}, "", nil)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, withClaims(req, domain.Claims{UserID: 1}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":9`)
}

func TestPostHandler_GetInvalidID(t *testing.T) {
	svc := new(web.MockPostService)
	h := NewPostHandler(svc, nullLogger())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/user/post/abc", nil), map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPostHandler_UpdateForbidden(t *testing.T) {
	svc := new(web.MockPostService)
	h := NewPostHandler(svc, nullLogger())
	svc.On("Update", mock.Anything, int64(2), int64(9), domain.UpdatePostInput{Description: "x"}, (*domain.Upload)(nil)).
		Return(domain.Forbidden("not the owner"))

	req := multipartRequest(t, http.MethodPut, "/user/post/9", map[string]string{"description": "x"}, "", nil)
	req = mux.SetURLVars(withClaims(req, domain.Claims{UserID: 2}), map[string]string{"id": "9"})
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPostHandler_ListByUser(t *testing.T) {
	svc := new(web.MockPostService)
	h := NewPostHandler(svc, nullLogger())

	page := domain.PostsPage{PagesCount: 1, Page: 2, PageSize: 5, TotalCount: 0, Posts: []domain.PostView{}}
	svc.On("ListByUser", mock.Anything, int64(3), domain.Paginator{PageNumber: 2, PageSize: 5}).Return(page, nil)

	req := httptest.NewRequest(http.MethodGet, "/user/3/posts?pageNumber=2&pageSize=5", nil)
	req = mux.SetURLVars(req, map[string]string{"userId": "3"})
	rec := httptest.NewRecorder()
	h.HandleListByUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pagesCount":1,"page":2,"pageSize":5,"totalCount":0,"posts":[]}`, rec.Body.String())
}

func TestAuditHandler_GetLogs(t *testing.T) {
	svc := new(web.MockAuditService)
	h := NewAuditHandler(svc, nullLogger())
	svc.On("GetLogs", mock.Anything, int64(1), 10).Return([]domain.AuditLog{{UserID: 1, Action: domain.ActionLogin}}, nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/security/audit-logs?limit=10", nil), domain.Claims{UserID: 1})
	rec := httptest.NewRecorder()
	h.HandleGetLogs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"action":"LOGIN"`)
}

func TestTestingHandler_DeleteAll(t *testing.T) {
	svc := new(web.MockMaintenanceService)
	h := NewTestingHandler(svc, nullLogger())
	svc.On("DeleteAllData", mock.Anything).Return(nil)

	rec := httptest.NewRecorder()
	h.HandleDeleteAll(rec, httptest.NewRequest(http.MethodDelete, "/testing/all-data", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
