package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"idlewatch/internal/config"
	"idlewatch/internal/resource"
)

const messageSubject = "Idlewatch Notification"

// publishAPI is the slice of the SNS client the publisher needs
type publishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher sends the notification to a preconfigured SNS topic. It is
// reached at most once per process run, from the loop's notifying state.
type SNSPublisher struct {
	client     publishAPI
	topicARN   string
	thresholds config.ResourceConfig
	logger     *zap.Logger
}

// NewSNSPublisher builds a publisher with a static-credential SNS client
func NewSNSPublisher(creds Credentials, thresholds config.ResourceConfig, logger *zap.Logger) *SNSPublisher {
	client := sns.New(sns.Options{
		Region: creds.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, "")),
	})

	return &SNSPublisher{
		client:     client,
		topicARN:   creds.TopicARN,
		thresholds: thresholds,
		logger:     logger,
	}
}

// Notify publishes the busy-while-unattended message
func (p *SNSPublisher) Notify(ctx context.Context, sample resource.Sample) error {
	p.logger.Info("sending notification via sns")

	message := formatMessage(sample, p.thresholds)
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(messageSubject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}

	p.logger.Info("notification sent")
	return nil
}

// formatMessage renders the observed utilization and the thresholds that
// were exceeded into the outbound message body
func formatMessage(sample resource.Sample, thresholds config.ResourceConfig) string {
	message := fmt.Sprintf(
		"Your CPU usage was recorded at %.1f%% and your RAM usage was recorded at %.1f%%. "+
			"Did you leave a task running? (Configured limits: CPU %.0f%%, RAM %.0f%%)",
		sample.CPUPercent, sample.MemoryPercent,
		thresholds.CPUThresholdPct, thresholds.MemoryThresholdPct)

	if sample.GPUPercent >= 0 {
		message += fmt.Sprintf(" GPU usage was %.1f%% (limit %.0f%%).",
			sample.GPUPercent, thresholds.GPUThresholdPct)
	}

	return message
}
