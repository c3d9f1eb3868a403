package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type testResponse struct {
	status  int
	header  http.Header
	cookies []*http.Cookie
	body    []byte
}

func (response testResponse) decode(t *testing.T, out any) {
	t.Helper()
	if err := json.Unmarshal(response.body, out); err != nil {
		t.Fatalf("decode response %s: %v", response.body, err)
	}
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return sendRequest(t, app, request)
}

func sendRequest(t *testing.T, app *fiber.App, request *http.Request) testResponse {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", request.Method, request.URL.Path, err)
	}
	return testResponse{
		status:  response.StatusCode,
		header:  response.Header,
		cookies: response.Cookies(),
		body:    content,
	}
}

func expectStatus(t *testing.T, response testResponse, expected int) {
	t.Helper()
	if response.status != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, response.status, response.body)
	}
}

func signupAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	signup := doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]any{
		"username":         username,
		"password":         testPassword,
		"password_confirm": testPassword,
		"email":            username + "@example.com",
	})
	expectStatus(t, signup, http.StatusCreated)

	login := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"username": username,
		"password": testPassword,
	})
	expectStatus(t, login, http.StatusOK)

	payload := tokenResponse{}
	login.decode(t, &payload)
	if payload.AccessToken == "" {
		t.Fatal("access token is missing in login response")
	}
	return payload.AccessToken
}
