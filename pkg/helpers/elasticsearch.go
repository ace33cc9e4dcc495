package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESConfig describes an Elasticsearch cluster. Username and Password are
// optional basic auth.
type ESConfig struct {
	Addrs      []string
	Username   string
	Password   string
	MaxRetries int
}

func NewESClient(cfg ESConfig) (*elasticsearch.Client, error) {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 2
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     cfg.Addrs,
		Username:      cfg.Username,
		Password:      cfg.Password,
		MaxRetries:    retries,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		RetryBackoff:  func(attempt int) time.Duration { return time.Duration(attempt) * 100 * time.Millisecond },
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	})
}

// PingES fails unless the cluster answers a ping with a 2xx.
func PingES(ctx context.Context, es *elasticsearch.Client) error {
	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}
