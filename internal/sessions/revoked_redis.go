package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// package-level Redis client used for the revoked-credential list (optional)
var revocationClient *redis.Client

// SetRevocationClient configures the Redis client used for revocation checks.
// Safe to call with nil to disable the feature.
func SetRevocationClient(c *redis.Client) {
	revocationClient = c
}

// RevokeCredential stores the credential in the Redis revocation list until
// its natural expiry, so a logged-out cookie is rejected immediately even
// though its signature is still valid. No-op without a configured client.
func RevokeCredential(ctx context.Context, credential string, ttl time.Duration) error {
	if revocationClient == nil {
		return nil
	}
	key := "revoked:session:" + credential
	return revocationClient.Set(ctx, key, "1", ttl).Err()
}

// IsCredentialRevoked returns true when the credential is on the revocation
// list. Without a configured client it returns (false, nil).
func IsCredentialRevoked(ctx context.Context, credential string) (bool, error) {
	if revocationClient == nil {
		return false, nil
	}
	key := "revoked:session:" + credential
	exists, err := revocationClient.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
