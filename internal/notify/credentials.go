// Package notify publishes the one-shot busy-while-unattended notification
// to an SNS topic, with a dry-run variant for debug mode.
package notify

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"idlewatch/internal/secrets"
)

// Environment variables consulted for the notifier credentials
const (
	EnvAccessKeyID     = "IDLEWATCH_AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "IDLEWATCH_AWS_SECRET_ACCESS_KEY"
	EnvRegion          = "IDLEWATCH_AWS_REGION"
	EnvTopicARN        = "IDLEWATCH_SNS_TOPIC_ARN"
)

// Credential store entry names, used when an environment variable is absent
const (
	storeAccessKeyID     = "aws_access_key_id"
	storeSecretAccessKey = "aws_secret_access_key"
	storeRegion          = "aws_region"
	storeTopicARN        = "sns_topic_arn"
)

// Credentials hold everything needed for the single publish call. Values
// are resolved once at startup and never logged.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	TopicARN        string
}

// LoadCredentials resolves credentials from the environment, falling back
// per-field to the encrypted store (which may be nil). It fails fast with a
// single error naming every missing field, so a misconfiguration is visible
// before the notifier is ever needed.
func LoadCredentials(store *secrets.Store) (Credentials, error) {
	creds := Credentials{
		AccessKeyID:     resolve(store, EnvAccessKeyID, storeAccessKeyID),
		SecretAccessKey: resolve(store, EnvSecretAccessKey, storeSecretAccessKey),
		Region:          resolve(store, EnvRegion, storeRegion),
		TopicARN:        resolve(store, EnvTopicARN, storeTopicARN),
	}

	var missing []string
	if creds.AccessKeyID == "" {
		missing = append(missing, EnvAccessKeyID)
	}
	if creds.SecretAccessKey == "" {
		missing = append(missing, EnvSecretAccessKey)
	}
	if creds.Region == "" {
		missing = append(missing, EnvRegion)
	}
	if creds.TopicARN == "" {
		missing = append(missing, EnvTopicARN)
	}

	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing notifier credentials: %s", strings.Join(missing, ", "))
	}

	return creds, nil
}

func resolve(store *secrets.Store, envName, storeName string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	if store == nil {
		return ""
	}

	v, err := store.Get(storeName)
	if err != nil {
		if !errors.Is(err, secrets.ErrNotFound) {
			// A corrupt store entry surfaces as a missing field; the
			// caller's fail-fast error names it.
			return ""
		}
		return ""
	}
	return string(v)
}
