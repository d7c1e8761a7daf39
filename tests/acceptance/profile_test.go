package acceptance

import "net/http"

func (s *Suite) TestProfileLifecycle() {
	client := s.newClient()
	s.register(client, "alice", "alice@example.com", "password123")

	// Nothing there yet
	resp, body := s.doJSON(client, http.MethodGet, "/api/v1/profile", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("Profile not found. Please create a profile first.", body["error"])

	resp, body = s.doJSON(client, http.MethodPost, "/api/v1/profile", map[string]any{
		"bio":        "Backend engineer",
		"location":   "Berlin",
		"birth_date": "1990-04-01",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "create profile: %v", body)
	data := body["data"].(map[string]any)
	s.Equal("Backend engineer", data["bio"])
	s.Equal("1990-04-01", data["birth_date"])
	s.Equal("alice", data["username"])
	s.Equal("alice@example.com", data["email"])

	// Creating twice is an error
	resp, body = s.doJSON(client, http.MethodPost, "/api/v1/profile", map[string]any{
		"bio": "second try",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Profile already exists", body["error"])

	// Partial update leaves untouched fields alone
	resp, body = s.doJSON(client, http.MethodPatch, "/api/v1/profile", map[string]any{
		"location": "Hamburg",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	s.Equal("Hamburg", data["location"])
	s.Equal("Backend engineer", data["bio"])
}

func (s *Suite) TestProfileIsPerUser() {
	alice := s.newClient()
	s.register(alice, "alice", "alice@example.com", "password123")

	resp, _ := s.doJSON(alice, http.MethodPost, "/api/v1/profile", map[string]any{
		"bio": "Alice's profile",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	bob := s.newClient()
	s.register(bob, "bob", "bob@example.com", "password123")

	resp, _ = s.doJSON(bob, http.MethodGet, "/api/v1/profile", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
