// Package customdict stores the personal lexicon (learner-added words such
// as names and domain vocabulary) in a Redis set. Words in the personal
// lexicon are treated as valid French and protected from the orthography
// detectors.
package customdict

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CustomDict wraps a Redis client holding the personal lexicon.
type CustomDict struct {
	client *redis.Client
	key    string
}

// New creates a CustomDict backed by the provided Redis client.
func New(client *redis.Client) *CustomDict {
	return &CustomDict{client: client, key: "lexique_perso"}
}

// Add inserts a word into the personal lexicon.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, word).Err()
}

// Remove deletes a word from the personal lexicon.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, word).Err()
}

// All returns every word in the personal lexicon.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}
