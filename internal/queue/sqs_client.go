package queue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// Message attribute names mirrored from the body so consumers and the
// console can filter without decoding.
const (
	AttrExportID  = "exportId"
	AttrRequestID = "requestId"
	AttrVersion   = "version"
)

// SQSAPI is the subset of the SQS client used by the queue and worker.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SQSClient publishes export messages. FIFO queues (".fifo" URLs) are
// grouped and deduplicated by export ID so a double submit renders once.
type SQSClient struct {
	client   SQSAPI
	queueURL string
	fifo     bool
}

// NewSQSAPI loads AWS configuration and returns a raw SQS client. A
// non-empty endpoint points it at an SQS-compatible server.
func NewSQSAPI(ctx context.Context, region, endpoint string) (*sqs.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if strings.TrimSpace(region) != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// NewSQSClient constructs an SQS-backed queue client for queueURL.
func NewSQSClient(ctx context.Context, region, endpoint, queueURL string) (*SQSClient, error) {
	queueURL = strings.TrimSpace(queueURL)
	if queueURL == "" {
		return nil, fmt.Errorf("EXPORT_SQS_QUEUE_URL is required")
	}
	api, err := NewSQSAPI(ctx, region, endpoint)
	if err != nil {
		return nil, err
	}
	return NewSQSClientWithAPI(api, queueURL), nil
}

// NewSQSClientWithAPI wraps an existing SQS API implementation.
func NewSQSClientWithAPI(api SQSAPI, queueURL string) *SQSClient {
	return &SQSClient{
		client:   api,
		queueURL: queueURL,
		fifo:     strings.HasSuffix(queueURL, ".fifo"),
	}
}

// Send validates and delivers msg.
func (s *SQSClient) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	payload, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode sqs message: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:          aws.String(s.queueURL),
		MessageBody:       aws.String(string(payload)),
		MessageAttributes: messageAttributes(msg),
	}
	if s.fifo {
		input.MessageGroupId = aws.String(msg.ExportID)
		input.MessageDeduplicationId = aws.String(msg.ExportID)
	}
	if _, err := s.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("sqs send message export=%s: %w", msg.ExportID, err)
	}
	return nil
}

func messageAttributes(msg Message) map[string]sqstypes.MessageAttributeValue {
	attrs := map[string]sqstypes.MessageAttributeValue{
		AttrExportID: {DataType: aws.String("String"), StringValue: aws.String(msg.ExportID)},
		AttrVersion:  {DataType: aws.String("Number"), StringValue: aws.String(strconv.Itoa(msg.Version))},
	}
	if msg.RequestID != "" {
		attrs[AttrRequestID] = sqstypes.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(msg.RequestID)}
	}
	return attrs
}

var _ Client = (*SQSClient)(nil)
