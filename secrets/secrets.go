// Package secrets loads chat-platform credentials from AWS Secrets Manager.
// The secret is read once at startup and cached for the lifetime of the
// process; there is no write path.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsClient defines the interface for Secrets Manager operations used by
// the loader. This interface allows for easy mocking in tests without
// requiring actual AWS infrastructure.
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Verify that the real Secrets Manager client implements our interface
var _ SecretsClient = (*secretsmanager.Client)(nil)

// BotCredentials is the JSON shape of the stored secret
type BotCredentials struct {
	// Token is the Telegram bot API token.
	Token string `json:"token"`
	// WebhookSecret is echoed by Telegram in the
	// X-Telegram-Bot-Api-Secret-Token header on every webhook call.
	WebhookSecret string `json:"webhook_secret"`
}

// Loader fetches and caches secrets
type Loader struct {
	client SecretsClient

	mu    sync.Mutex
	cache map[string]BotCredentials
}

// NewLoader creates a new secret loader
func NewLoader(client SecretsClient) *Loader {
	return &Loader{
		client: client,
		cache:  make(map[string]BotCredentials),
	}
}

// BotCredentials retrieves the named secret, decoding its JSON secret string.
// Repeated calls for the same name are served from the cache.
func (l *Loader) BotCredentials(ctx context.Context, secretName string) (BotCredentials, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if creds, ok := l.cache[secretName]; ok {
		return creds, nil
	}

	result, err := l.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return BotCredentials{}, fmt.Errorf("failed to get secret %s: %w", secretName, err)
	}

	if result.SecretString == nil {
		return BotCredentials{}, fmt.Errorf("secret %s has no string payload", secretName)
	}

	var creds BotCredentials
	if err := json.Unmarshal([]byte(*result.SecretString), &creds); err != nil {
		return BotCredentials{}, fmt.Errorf("failed to decode secret %s: %w", secretName, err)
	}

	if creds.Token == "" {
		return BotCredentials{}, fmt.Errorf("secret %s is missing the bot token", secretName)
	}

	l.cache[secretName] = creds
	return creds, nil
}
