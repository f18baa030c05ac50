package adapters

import (
	"io"
	"net/http"

	"story-production-api/application/ports/outbound"
	"story-production-api/domain"
)

type ContentFetcher interface {
	FetchContent(req *http.Request) ([]byte, error)
}

type contentFetcher struct {
	logger outbound.LoggerPort
}

func NewContentFetcher(logger outbound.LoggerPort) ContentFetcher {
	return &contentFetcher{
		logger: logger,
	}
}

// FetchContent sends the request and returns the response body. Failures are
// classified at this boundary: transport errors and non-OK statuses come back
// as tagged remote errors so retry logic can match on kind.
func (c *contentFetcher) FetchContent(req *http.Request) ([]byte, error) {
	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, domain.NewRemoteError(domain.KindTransport, "fetch", "request failed", err)
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.ErrorWithFields(err, "Failed to close the response body", map[string]interface{}{
				"method": req.Method,
				"URL":    req.URL.String(),
			})
		}
	}(res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, domain.NewRemoteError(domain.KindTransport, "fetch", "failed to read response body", err)
	}

	if res.StatusCode != http.StatusOK {
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"method":  req.Method,
			"URL":     req.URL.String(),
			"status":  res.StatusCode,
			"message": string(payload),
		})
		kind := domain.KindFromStatus(res.StatusCode)
		return nil, domain.NewRemoteError(kind, "fetch",
			"HTTP request returned status "+res.Status, nil)
	}

	return payload, nil
}
