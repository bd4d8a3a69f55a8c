package myip

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/cfddns/common/httpclient"
)

// ip is the body of an httpbin style /ip endpoint.
type ip struct {
	Origin string `json:"origin"`
}

// Fetch asks the echo service at url for the caller's public address.
func Fetch(ctx context.Context, client *httpclient.Client, url string) (string, error) {
	log.Info("Start requesting current ip...")
	res, err := httpclient.Get[ip](ctx, client, url)
	if err != nil {
		return "", err
	}

	log.Infof("Current ip is: %s", res.Body.Origin)
	return res.Body.Origin, nil
}
