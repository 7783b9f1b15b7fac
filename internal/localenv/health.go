package localenv

import (
	"context"
	"net/http"
	"time"
)

// healthCheckTimeout bounds each individual probe.
const healthCheckTimeout = 4 * time.Second

// DefaultHealthChecks is probed when the persisted config carries no
// healthChecks list.
var DefaultHealthChecks = []string{
	"http://localhost:3000/health",
	"http://localhost:8080/health",
	"http://localhost:9000/health",
}

// HealthCheck is the outcome of probing one endpoint. Status is zero when
// the probe never got a response.
type HealthCheck struct {
	URL     string `json:"url"`
	Healthy bool   `json:"healthy"`
	Status  int    `json:"status,omitempty"`
}

// RunHealthChecks probes each URL in order with an HTTP GET. Endpoints are
// independent: a timeout or transport error marks that endpoint unhealthy
// and the loop continues. Results preserve input order.
func RunHealthChecks(ctx context.Context, urls []string) []HealthCheck {
	client := &http.Client{Timeout: healthCheckTimeout}

	checks := make([]HealthCheck, 0, len(urls))
	for _, url := range urls {
		checks = append(checks, probe(ctx, client, url))
	}
	return checks
}

func probe(ctx context.Context, client *http.Client, url string) HealthCheck {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return HealthCheck{URL: url}
	}

	resp, err := client.Do(req)
	if err != nil {
		return HealthCheck{URL: url}
	}
	defer resp.Body.Close()

	return HealthCheck{
		URL:     url,
		Healthy: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:  resp.StatusCode,
	}
}
