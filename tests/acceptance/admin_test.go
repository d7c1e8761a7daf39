package acceptance

import (
	"net/http"
	"time"
)

// newAdmin registers an account, promotes it, and logs in again so the
// access cookie carries the ADMIN role
func (s *Suite) newAdmin() *http.Client {
	client := s.newClient()
	s.register(client, "root", "root@example.com", "password123")
	s.promoteToAdmin("root@example.com")
	s.login(client, "root@example.com", "password123")
	return client
}

func (s *Suite) TestAdminRoutesRejectRegularUsers() {
	client := s.newClient()
	s.register(client, "alice", "alice@example.com", "password123")

	resp, body := s.doJSON(client, http.MethodGet, "/api/v1/admin/users", nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.Equal("You do not have permission to access this resource", body["error"])
}

func (s *Suite) TestAdminRoutesRejectAnonymous() {
	resp, _ := s.doJSON(s.newClient(), http.MethodGet, "/api/v1/admin/users", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestAdminListUsers() {
	admin := s.newAdmin()
	s.register(s.newClient(), "alice", "alice@example.com", "password123")

	resp, body := s.doJSON(admin, http.MethodGet, "/api/v1/admin/users", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	users := body["data"].([]any)
	s.Len(users, 2)
}

func (s *Suite) TestAdminSetRole() {
	admin := s.newAdmin()
	aliceBody := s.register(s.newClient(), "alice", "alice@example.com", "password123")
	aliceID := aliceBody["data"].(map[string]any)["user"].(map[string]any)["id"].(string)

	resp, body := s.doJSON(admin, http.MethodPost, "/api/v1/admin/users/"+aliceID+"/set_role", map[string]any{
		"role": "ADMIN",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ADMIN", body["data"].(map[string]any)["role"])

	// Unknown roles are rejected and nothing changes
	resp, body = s.doJSON(admin, http.MethodPost, "/api/v1/admin/users/"+aliceID+"/set_role", map[string]any{
		"role": "BOGUS",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Invalid role", body["error"])

	resp, body = s.doJSON(admin, http.MethodGet, "/api/v1/admin/users/"+aliceID, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ADMIN", body["data"].(map[string]any)["role"])
}

func (s *Suite) TestAdminCannotDeleteSelf() {
	admin := s.newAdmin()

	resp, body := s.doJSON(admin, http.MethodGet, "/api/v1/me", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	selfID := body["data"].(map[string]any)["id"].(string)

	resp, body = s.doJSON(admin, http.MethodDelete, "/api/v1/admin/users/"+selfID, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Cannot delete your own account", body["error"])
}

func (s *Suite) TestAdminDeleteUser() {
	admin := s.newAdmin()
	aliceBody := s.register(s.newClient(), "alice", "alice@example.com", "password123")
	aliceID := aliceBody["data"].(map[string]any)["user"].(map[string]any)["id"].(string)

	resp, body := s.doJSON(admin, http.MethodDelete, "/api/v1/admin/users/"+aliceID, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("User deleted successfully", body["message"])

	resp, _ = s.doJSON(admin, http.MethodGet, "/api/v1/admin/users/"+aliceID, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestAdminAuditLogs() {
	admin := s.newAdmin()

	// Generate some authenticated traffic worth auditing
	for i := 0; i < 3; i++ {
		resp, _ := s.doJSON(admin, http.MethodGet, "/api/v1/me", nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
	}

	// Audit writes are asynchronous, so poll until they land
	var body map[string]any
	s.Require().Eventually(func() bool {
		var resp *http.Response
		resp, body = s.doJSON(admin, http.MethodGet, "/api/v1/admin/audit-logs", nil)
		if resp.StatusCode != http.StatusOK {
			return false
		}
		logs, ok := body["logs"].([]any)
		return ok && len(logs) >= 3
	}, 3*time.Second, 50*time.Millisecond)

	logs := body["logs"].([]any)
	first := logs[0].(map[string]any)
	s.NotEmpty(first["action"])
	s.Equal("root", first["user"].(map[string]any)["username"])

	pagination := body["pagination"].(map[string]any)
	s.EqualValues(1, pagination["page"])
	s.EqualValues(50, pagination["page_size"])

	// Action filter narrows the listing down
	resp, body := s.doJSON(admin, http.MethodGet, "/api/v1/admin/audit-logs?action=LOGIN", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	for _, raw := range body["logs"].([]any) {
		s.Equal("LOGIN", raw.(map[string]any)["action"])
	}
}

func (s *Suite) TestAdminDashboard() {
	admin := s.newAdmin()
	s.register(s.newClient(), "alice", "alice@example.com", "password123")

	resp, body := s.doJSON(admin, http.MethodGet, "/api/v1/admin/dashboard", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)

	users := data["users"].(map[string]any)
	s.EqualValues(2, users["total"])
	s.EqualValues(2, users["active"])
	s.Contains(data, "api_usage")
	s.Contains(data, "top_users")
	s.Contains(data, "recent_activity")
	s.Contains(data, "action_breakdown")
}
