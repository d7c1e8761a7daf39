package acceptance

import (
	"fmt"
	"net/http"
)

func (s *Suite) createApplication(client *http.Client, fields map[string]any) map[string]any {
	if _, ok := fields["appliedDate"]; !ok {
		fields["appliedDate"] = "2026-08-01"
	}
	resp, body := s.doJSON(client, http.MethodPost, "/api/v1/applications", fields)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "create application: %v", body)
	return body["data"].(map[string]any)
}

func (s *Suite) TestApplicationCRUD() {
	client := s.newClient()
	s.register(client, "alice", "alice@example.com", "password123")

	created := s.createApplication(client, map[string]any{
		"company":  "Acme",
		"position": "Go Developer",
	})
	s.Equal("Acme", created["company"])
	s.Equal("Applied", created["status"], "status defaults when omitted")
	s.Equal("Full-time", created["jobType"], "job type defaults when omitted")

	id := created["id"].(string)

	resp, body := s.doJSON(client, http.MethodGet, "/api/v1/applications/"+id, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Go Developer", body["data"].(map[string]any)["position"])

	resp, body = s.doJSON(client, http.MethodPatch, "/api/v1/applications/"+id, map[string]any{
		"status": "Interview",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	s.Equal("Interview", data["status"])
	s.Equal("Acme", data["company"], "partial update keeps other fields")

	resp, body = s.doJSON(client, http.MethodDelete, "/api/v1/applications/"+id, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Application deleted successfully", body["message"])

	resp, _ = s.doJSON(client, http.MethodGet, "/api/v1/applications/"+id, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestApplicationInvalidStatus() {
	client := s.newClient()
	s.register(client, "alice", "alice@example.com", "password123")

	resp, body := s.doJSON(client, http.MethodPost, "/api/v1/applications", map[string]any{
		"company":     "Acme",
		"position":    "Engineer",
		"appliedDate": "2026-08-01",
		"status":      "Ghosted",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.NotEmpty(body["error"])
}

func (s *Suite) TestApplicationOwnershipIsolation() {
	alice := s.newClient()
	s.register(alice, "alice", "alice@example.com", "password123")
	created := s.createApplication(alice, map[string]any{
		"company":  "Acme",
		"position": "Engineer",
	})
	id := created["id"].(string)

	bob := s.newClient()
	s.register(bob, "bob", "bob@example.com", "password123")

	// Not-owned looks exactly like not-found
	resp, _ := s.doJSON(bob, http.MethodGet, "/api/v1/applications/"+id, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = s.doJSON(bob, http.MethodPatch, "/api/v1/applications/"+id, map[string]any{"status": "Rejected"})
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = s.doJSON(bob, http.MethodDelete, "/api/v1/applications/"+id, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	// Alice's record is untouched
	resp, body := s.doJSON(alice, http.MethodGet, "/api/v1/applications/"+id, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Applied", body["data"].(map[string]any)["status"])
}

func (s *Suite) TestApplicationSearchAndPagination() {
	client := s.newClient()
	s.register(client, "alice", "alice@example.com", "password123")

	for i := 0; i < 7; i++ {
		s.createApplication(client, map[string]any{
			"company":  fmt.Sprintf("Company %d", i),
			"position": "Engineer",
		})
	}
	s.createApplication(client, map[string]any{
		"company":  "Globex",
		"position": "Platform Engineer",
	})

	// Default page size is 5
	resp, body := s.doJSON(client, http.MethodGet, "/api/v1/applications", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	s.Len(data["results"], 5)
	pagination := data["pagination"].(map[string]any)
	s.EqualValues(8, pagination["total"])
	s.EqualValues(2, pagination["total_pages"])

	resp, body = s.doJSON(client, http.MethodGet, "/api/v1/applications?page=2", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Len(body["data"].(map[string]any)["results"], 3)

	// Case-insensitive company search
	resp, body = s.doJSON(client, http.MethodGet, "/api/v1/applications?search=globex", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	results := body["data"].(map[string]any)["results"].([]any)
	s.Require().Len(results, 1)
	s.Equal("Globex", results[0].(map[string]any)["company"])
}

func (s *Suite) TestApplicationStatsAndAnalytics() {
	client := s.newClient()
	s.register(client, "alice", "alice@example.com", "password123")

	s.createApplication(client, map[string]any{
		"company": "A", "position": "Dev", "status": "Applied",
	})
	s.createApplication(client, map[string]any{
		"company": "B", "position": "Dev", "status": "Interview",
		"interviewDate": "2030-01-15",
	})
	s.createApplication(client, map[string]any{
		"company": "C", "position": "Dev", "status": "Rejected",
		"salary": 90000,
	})

	resp, body := s.doJSON(client, http.MethodGet, "/api/v1/applications/stats", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	stats := body["data"].(map[string]any)
	s.EqualValues(3, stats["total_applications"])
	s.EqualValues(1, stats["interviews_scheduled"])
	s.EqualValues(1, stats["rejected_applications"])

	upcoming := stats["upcoming_interviews"].([]any)
	s.Require().Len(upcoming, 1)
	s.Equal("B", upcoming[0].(map[string]any)["company"])

	resp, body = s.doJSON(client, http.MethodGet, "/api/v1/applications/analytics", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	analytics := body["data"].(map[string]any)

	statusBreakdown := analytics["status_breakdown"].(map[string]any)
	applied := statusBreakdown["Applied"].(map[string]any)
	s.EqualValues(1, applied["count"])
	s.InDelta(33.33, applied["percent"].(float64), 0.01)

	// Every enumerated status shows up, zero counts included
	s.Contains(statusBreakdown, "Accepted")
	s.EqualValues(0, statusBreakdown["Accepted"].(map[string]any)["count"])
}
