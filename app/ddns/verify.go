package ddns

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cf "github.com/cloudflare/cloudflare-go"
	log "github.com/sirupsen/logrus"
)

// VerifyToken checks with Cloudflare that token is usable before any record
// is touched. A zero timeout means no limit.
func VerifyToken(ctx context.Context, token string, apiBaseURL string, timeout time.Duration) error {
	api, err := cf.NewWithAPIToken(token,
		cf.BaseURL(apiBaseURL),
		cf.UsingRetryPolicy(0, 0, 0),
		cf.HTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	log.Info("Start verifying api token...")
	res, err := api.VerifyAPIToken(ctx)
	if err != nil {
		return fmt.Errorf("verify api token: %w", err)
	}
	if res.Status != "active" {
		return fmt.Errorf("expected api token status to be \"active\"; got %q", res.Status)
	}

	log.Info("Api token verified")
	return nil
}
