package acceptance

import "net/http"

func (s *Suite) TestHealthEndpoint() {
	resp, body := s.doJSON(s.newClient(), http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("pass", body["status"])
}

func (s *Suite) TestMetricsEndpoint() {
	resp, err := http.Get(s.BaseURL + "/metrics")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}
