package acceptance

import (
	"net/http"
	"net/url"
)

func (s *Suite) cookiesFor(client *http.Client) map[string]*http.Cookie {
	u, err := url.Parse(s.BaseURL)
	s.Require().NoError(err)

	cookies := make(map[string]*http.Cookie)
	for _, c := range client.Jar.Cookies(u) {
		cookies[c.Name] = c
	}
	return cookies
}

func (s *Suite) TestRegisterSetsSessionCookies() {
	client := s.newClient()

	body := s.register(client, "alice", "alice@example.com", "password123")
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	s.Equal("alice@example.com", user["email"])
	s.Equal("USER", user["role"])
	s.NotContains(data, "access_token", "tokens must only travel in cookies")

	cookies := s.cookiesFor(client)
	s.Require().Contains(cookies, "access")
	s.Require().Contains(cookies, "refresh")
	s.NotEmpty(cookies["access"].Value)
	s.NotEmpty(cookies["refresh"].Value)
}

func (s *Suite) TestRegisterDuplicateEmail() {
	s.register(s.newClient(), "alice", "alice@example.com", "password123")

	resp, body := s.doJSON(s.newClient(), http.MethodPost, "/api/v1/register", map[string]any{
		"username": "alice2",
		"email":    "Alice@Example.com",
		"password": "password123",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.NotEmpty(body["error"])
}

func (s *Suite) TestLoginAndMe() {
	s.register(s.newClient(), "alice", "alice@example.com", "password123")

	client := s.newClient()
	s.login(client, "alice@example.com", "password123")

	resp, body := s.doJSON(client, http.MethodGet, "/api/v1/me", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	s.Equal("alice@example.com", data["email"])
}

func (s *Suite) TestLoginWrongPassword() {
	s.register(s.newClient(), "alice", "alice@example.com", "password123")

	resp, body := s.doJSON(s.newClient(), http.MethodPost, "/api/v1/login", map[string]any{
		"email":    "alice@example.com",
		"password": "not-the-password",
	})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Invalid email or password", body["error"])
}

func (s *Suite) TestMeRequiresAuth() {
	resp, body := s.doJSON(s.newClient(), http.MethodGet, "/api/v1/me", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Authentication required", body["error"])
}

func (s *Suite) TestRefreshMintsNewAccessCookie() {
	client := s.newClient()
	s.register(client, "alice", "alice@example.com", "password123")

	resp, _ := s.doJSON(client, http.MethodPost, "/api/v1/token/refresh", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var access *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "access" {
			access = c
		}
	}
	s.Require().NotNil(access, "refresh must set a fresh access cookie")
	s.NotEmpty(access.Value)
	s.True(access.HttpOnly)
}

func (s *Suite) TestRefreshWithoutCookie() {
	resp, body := s.doJSON(s.newClient(), http.MethodPost, "/api/v1/token/refresh", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Refresh token not found", body["error"])
}

func (s *Suite) TestLogoutEndsSession() {
	client := s.newClient()
	s.register(client, "alice", "alice@example.com", "password123")

	resp, _ := s.doJSON(client, http.MethodPost, "/api/v1/logout", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "access" || c.Name == "refresh" {
			s.Empty(c.Value)
			s.Negative(c.MaxAge)
		}
	}

	// The revoked refresh token is dead even if replayed
	resp, _ = s.doJSON(client, http.MethodPost, "/api/v1/token/refresh", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
