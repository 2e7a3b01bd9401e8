package profile

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// apiKeyTransport adds the service API key and JSON headers to each request.
type apiKeyTransport struct {
	APIKey    string
	Transport http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-API-KEY", t.APIKey)
	req.Header.Set("Content-Type", "application/json")
	return t.Transport.RoundTrip(req)
}

type loggingTransport struct {
	Transport http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	entry := log.WithField("method", req.Method).WithField("url", req.URL.String())
	entry.Debug("profile request")

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		entry.WithField("latency", time.Since(start)).Warnf("profile request failed: %v", err)
		return resp, err
	}

	entry = entry.WithField("status", resp.StatusCode).WithField("latency", time.Since(start))
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		entry.Error("profile response")
	case resp.StatusCode >= http.StatusBadRequest:
		entry.Warn("profile response")
	default:
		entry.Info("profile response")
	}
	return resp, nil
}
