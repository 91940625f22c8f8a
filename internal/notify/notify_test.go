package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"idlewatch/internal/config"
	"idlewatch/internal/resource"
	"idlewatch/internal/secrets"
)

type fakePublisher struct {
	input *sns.PublishInput
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func testThresholds() config.ResourceConfig {
	return config.DefaultConfig().Resource
}

func TestSNSPublisher_PublishesToTopic(t *testing.T) {
	fake := &fakePublisher{}
	pub := &SNSPublisher{
		client:     fake,
		topicARN:   "arn:aws:sns:eu-central-1:123456789012:idlewatch",
		thresholds: testThresholds(),
		logger:     zap.NewNop(),
	}

	sample := resource.Sample{CPUPercent: 82.5, MemoryPercent: 61.2, GPUPercent: -1}
	err := pub.Notify(context.Background(), sample)
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "arn:aws:sns:eu-central-1:123456789012:idlewatch", *fake.input.TopicArn)
	assert.Equal(t, messageSubject, *fake.input.Subject)
	assert.Contains(t, *fake.input.Message, "82.5%")
	assert.Contains(t, *fake.input.Message, "61.2%")
	assert.Contains(t, *fake.input.Message, "Did you leave a task running?")
	assert.NotContains(t, *fake.input.Message, "GPU")
}

func TestSNSPublisher_PublishErrorWrapped(t *testing.T) {
	fake := &fakePublisher{err: errors.New("throttled")}
	pub := &SNSPublisher{
		client:     fake,
		topicARN:   "arn:topic",
		thresholds: testThresholds(),
		logger:     zap.NewNop(),
	}

	err := pub.Notify(context.Background(), resource.Sample{GPUPercent: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sns publish")
}

func TestFormatMessage_IncludesGPUWhenSampled(t *testing.T) {
	sample := resource.Sample{CPUPercent: 40, MemoryPercent: 60, GPUPercent: 95.5}
	msg := formatMessage(sample, testThresholds())
	assert.Contains(t, msg, "GPU usage was 95.5%")
}

func TestDryRun_NeverFails(t *testing.T) {
	dry := NewDryRun(testThresholds(), zap.NewNop())
	err := dry.Notify(context.Background(), resource.Sample{CPUPercent: 90, MemoryPercent: 70, GPUPercent: -1})
	assert.NoError(t, err)
}

func TestLoadCredentials_FromEnvironment(t *testing.T) {
	t.Setenv(EnvAccessKeyID, "AKIAEXAMPLE")
	t.Setenv(EnvSecretAccessKey, "secret")
	t.Setenv(EnvRegion, "eu-central-1")
	t.Setenv(EnvTopicARN, "arn:topic")

	creds, err := LoadCredentials(nil)
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
	assert.Equal(t, "eu-central-1", creds.Region)
	assert.Equal(t, "arn:topic", creds.TopicARN)
}

func TestLoadCredentials_NamesEveryMissingField(t *testing.T) {
	t.Setenv(EnvAccessKeyID, "")
	t.Setenv(EnvSecretAccessKey, "")
	t.Setenv(EnvRegion, "eu-central-1")
	t.Setenv(EnvTopicARN, "")

	_, err := LoadCredentials(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvAccessKeyID)
	assert.Contains(t, err.Error(), EnvSecretAccessKey)
	assert.Contains(t, err.Error(), EnvTopicARN)
	assert.NotContains(t, err.Error(), EnvRegion)
}

func TestLoadCredentials_StoreFallback(t *testing.T) {
	t.Setenv(EnvAccessKeyID, "")
	t.Setenv(EnvSecretAccessKey, "")
	t.Setenv(EnvRegion, "")
	t.Setenv(EnvTopicARN, "arn:from-env")

	store, err := secrets.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Put(storeAccessKeyID, []byte("stored-key")))
	require.NoError(t, store.Put(storeSecretAccessKey, []byte("stored-secret")))
	require.NoError(t, store.Put(storeRegion, []byte("us-east-1")))
	require.NoError(t, store.Put(storeTopicARN, []byte("arn:from-store")))

	creds, err := LoadCredentials(store)
	require.NoError(t, err)
	assert.Equal(t, "stored-key", creds.AccessKeyID)
	assert.Equal(t, "stored-secret", creds.SecretAccessKey)
	assert.Equal(t, "us-east-1", creds.Region)

	// Environment wins over the store when both are set
	assert.Equal(t, "arn:from-env", creds.TopicARN)
}
