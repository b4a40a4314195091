package couchbase

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchbase/gocb/v2"
)

// Config holds what is needed to reach the bucket and scope holding the records
type Config struct {
	URL      string
	Username string
	Password string
	Bucket   string
	Scope    string
}

// ConnectionManager handles Couchbase cluster, bucket and scope connections
type ConnectionManager struct {
	cluster *gocb.Cluster
	bucket  *gocb.Bucket
	scope   *gocb.Scope
}

// connectionString turns a configured URL into a gocb connection string.
// http:// is rewritten for local development; a bare host gets couchbase://.
func connectionString(url string) string {
	switch {
	case strings.HasPrefix(url, "couchbase://"), strings.HasPrefix(url, "couchbases://"):
		return url
	case strings.HasPrefix(url, "http://"):
		return "couchbase://" + strings.TrimPrefix(url, "http://")
	case strings.HasPrefix(url, "https://"):
		return "couchbases://" + strings.TrimPrefix(url, "https://")
	default:
		return "couchbase://" + url
	}
}

// NewConnectionManager connects to the cluster and opens the configured bucket and scope
func NewConnectionManager(cfg Config) (*ConnectionManager, error) {
	cluster, err := gocb.Connect(connectionString(cfg.URL), gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}

	err = cluster.WaitUntilReady(30*time.Second, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for cluster: %w", err)
	}

	// Bucket and collections are provisioned out of band
	bucket := cluster.Bucket(cfg.Bucket)

	err = bucket.WaitUntilReady(10*time.Second, nil)
	if err != nil {
		return nil, fmt.Errorf("bucket '%s' is not accessible: %w", cfg.Bucket, err)
	}

	scope := bucket.DefaultScope()
	if cfg.Scope != "" && cfg.Scope != "_default" {
		scope = bucket.Scope(cfg.Scope)
	}

	return &ConnectionManager{
		cluster: cluster,
		bucket:  bucket,
		scope:   scope,
	}, nil
}

// Close closes the Couchbase connection
func (cm *ConnectionManager) Close() error {
	return cm.cluster.Close(nil)
}

// GetBucket returns the bucket instance
func (cm *ConnectionManager) GetBucket() *gocb.Bucket {
	return cm.bucket
}

// GetScope returns the scope holding the record collections
func (cm *ConnectionManager) GetScope() *gocb.Scope {
	return cm.scope
}
