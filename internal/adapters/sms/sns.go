package sms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"gymdesk/internal/domain/reminder"
)

// DefaultAWSRegion is used when no region is configured.
const DefaultAWSRegion = "af-south-1"

// publisher is the slice of the SNS client the sender needs.
type publisher interface {
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// SNSSender publishes SMS directly to phone numbers through Amazon SNS.
type SNSSender struct {
	client      publisher
	senderID    string
	countryCode string
}

// NewSNSSender loads the default AWS credential chain and builds an SNS client.
// PRE: AWS credentials are resolvable from the environment or instance profile
// POST: Returns a sender bound to region
func NewSNSSender(ctx context.Context, region, senderID, countryCode string) (*SNSSender, error) {
	if region == "" {
		region = DefaultAWSRegion
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("sms: load aws config: %w", err)
	}
	return newSNSSender(awssns.NewFromConfig(cfg), senderID, countryCode), nil
}

func newSNSSender(client publisher, senderID, countryCode string) *SNSSender {
	return &SNSSender{client: client, senderID: senderID, countryCode: countryCode}
}

// Name identifies the transport in logs and metrics.
func (s *SNSSender) Name() string { return TransportSNS }

// Send publishes one transactional SMS.
// PRE: phone is a local or E.164 number
// POST: Message accepted by SNS; Result carries the SNS message id
func (s *SNSSender) Send(ctx context.Context, phone, message string) (Result, error) {
	if phone == "" {
		return Result{}, ErrEmptyPhone
	}
	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(s.senderID)}
	}

	to := ToE164(phone, s.countryCode)
	out, err := s.client.Publish(ctx, &awssns.PublishInput{
		PhoneNumber:       aws.String(to),
		Message:           aws.String(message),
		MessageAttributes: attrs,
	})
	if err != nil {
		slog.Error("sms_event", "event", "sns_publish_failed", "to", to, "error", err)
		return Result{}, fmt.Errorf("sns publish failed: %w", err)
	}

	id := aws.ToString(out.MessageId)
	slog.Info("sms_event", "event", "sms_sent", "transport", TransportSNS, "to", to, "message_id", id)
	return Result{Status: reminder.StatusSent, MessageID: id}, nil
}
