package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList checks tokens against the revocation keys the external
// auth provider maintains in the shared Redis. The provider writes a key
// when a token (or a whole account) is revoked before expiry; this backend
// only reads them.
type RevocationList interface {
	// IsRevoked checks whether a single token's JTI has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// IsSubjectRevokedSince checks whether all tokens for a subject issued
	// at or before the stored cutoff have been revoked (account offboarded,
	// credentials rotated).
	IsSubjectRevokedSince(ctx context.Context, subject string, issuedAt time.Time) (bool, error)
}

// RedisRevocationList implements RevocationList over the shared Redis
// keyspace. Key layout is a contract with the auth provider:
//
//	auth:revoked:jti:<jti>      -> "1", TTL = remaining token lifetime
//	auth:revoked:sub:<subject>  -> unix cutoff timestamp
type RedisRevocationList struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRevocationList wraps an existing Redis client. The client is
// shared with the snapshot cache; closing it is the caller's job.
func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{
		client:    client,
		keyPrefix: "auth:revoked:",
	}
}

func (r *RedisRevocationList) jtiKey(jti string) string {
	return r.keyPrefix + "jti:" + jti
}

func (r *RedisRevocationList) subjectKey(subject string) string {
	return r.keyPrefix + "sub:" + subject
}

// IsRevoked checks if a token's JTI is in the revocation list
func (r *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return exists > 0, nil
}

// IsSubjectRevokedSince checks if a token was issued at or before the
// subject's revocation cutoff.
func (r *RedisRevocationList) IsSubjectRevokedSince(ctx context.Context, subject string, issuedAt time.Time) (bool, error) {
	cutoffStr, err := r.client.Get(ctx, r.subjectKey(subject)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check subject revocation: %w", err)
	}

	var cutoff int64
	if _, err := fmt.Sscanf(cutoffStr, "%d", &cutoff); err != nil {
		return false, fmt.Errorf("failed to parse revocation cutoff: %w", err)
	}

	return issuedAt.Unix() <= cutoff, nil
}

var _ RevocationList = (*RedisRevocationList)(nil)

// InMemoryRevocationList provides an in-memory implementation for tests.
// The seed methods stand in for the auth provider's writes.
type InMemoryRevocationList struct {
	mu             sync.RWMutex
	revokedJTIs    map[string]time.Time // JTI -> revocation entry expiry
	subjectCutoffs map[string]time.Time // subject -> cutoff
}

// NewInMemoryRevocationList creates an empty in-memory revocation list.
func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{
		revokedJTIs:    make(map[string]time.Time),
		subjectCutoffs: make(map[string]time.Time),
	}
}

// Revoke marks a JTI revoked until the entry expires.
func (l *InMemoryRevocationList) Revoke(jti string, ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revokedJTIs[jti] = time.Now().Add(ttl)
}

// RevokeSubject marks every token for a subject issued at or before now
// as revoked.
func (l *InMemoryRevocationList) RevokeSubject(subject string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subjectCutoffs[subject] = time.Now()
}

// IsRevoked checks if a token's JTI is revoked (and the entry not expired)
func (l *InMemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiry, exists := l.revokedJTIs[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(l.revokedJTIs, jti)
		return false, nil
	}
	return true, nil
}

// IsSubjectRevokedSince checks a token's issue time against the cutoff.
func (l *InMemoryRevocationList) IsSubjectRevokedSince(_ context.Context, subject string, issuedAt time.Time) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cutoff, exists := l.subjectCutoffs[subject]
	if !exists {
		return false, nil
	}
	// UnixNano keeps sub-second precision for tests
	return issuedAt.UnixNano() <= cutoff.UnixNano(), nil
}

var _ RevocationList = (*InMemoryRevocationList)(nil)
