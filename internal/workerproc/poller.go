package workerproc

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"resume-builder/internal/queue"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

const (
	DefaultVisibilitySeconds = 300
	DefaultConcurrency       = 4
	DefaultShutdownTimeout   = 30 * time.Second
	receiveWaitSeconds       = 20
	receiveBatchSize         = 10
)

// Poller long-polls an SQS queue and hands export messages to a Processor.
type Poller struct {
	Client            queue.SQSAPI
	QueueURL          string
	Processor         Processor
	Concurrency       int
	VisibilitySeconds int
	ShutdownTimeout   time.Duration
}

// Run polls until ctx is cancelled, then waits up to ShutdownTimeout for
// in-flight messages to finish.
func (p *Poller) Run(ctx context.Context) {
	concurrency := p.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	visibility := p.VisibilitySeconds
	if visibility <= 0 {
		visibility = DefaultVisibilitySeconds
	}
	shutdownTimeout := p.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	telemetry.Info("worker.started", map[string]any{
		"queue_url":   p.QueueURL,
		"concurrency": concurrency,
		"visibility":  visibility,
	})

pollLoop:
	for {
		if ctx.Err() != nil {
			break
		}

		resp, err := p.Client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(p.QueueURL),
			MaxNumberOfMessages: receiveBatchSize,
			WaitTimeSeconds:     receiveWaitSeconds,
			VisibilityTimeout:   int32(visibility),
			MessageSystemAttributeNames: []sqstypes.MessageSystemAttributeName{
				sqstypes.MessageSystemAttributeNameApproximateReceiveCount,
			},
			MessageAttributeNames: []string{queue.AttrRequestID},
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break
			}
			telemetry.Error("worker.receive_failed", map[string]any{"error": err.Error()})
			continue
		}

		for _, msg := range resp.Messages {
			select {
			case <-ctx.Done():
				break pollLoop
			case sem <- struct{}{}:
			}
			metrics.IncExportJobsReceived()
			wg.Add(1)
			go func(m sqstypes.Message) {
				defer wg.Done()
				defer func() { <-sem }()
				// In-flight jobs finish even after shutdown is requested.
				p.HandleSQSMessage(context.WithoutCancel(ctx), m)
			}(msg)
		}
	}

	telemetry.Info("worker.draining", map[string]any{"timeout": shutdownTimeout.String()})
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		telemetry.Info("worker.stopped", nil)
	case <-time.After(shutdownTimeout):
		telemetry.Error("worker.shutdown_timeout", nil)
	}
}

// delivery is one received SQS message plus what has been learned about it.
type delivery struct {
	msg       sqstypes.Message
	exportID  string
	requestID string
}

func newDelivery(msg sqstypes.Message) *delivery {
	d := &delivery{msg: msg}
	if attr, ok := msg.MessageAttributes[queue.AttrRequestID]; ok {
		d.requestID = aws.ToString(attr.StringValue)
	}
	return d
}

func (d *delivery) fields(extra map[string]any) map[string]any {
	out := map[string]any{
		"export_id":      d.exportID,
		"sqs_message_id": aws.ToString(d.msg.MessageId),
		"receive_count":  receiveCount(d.msg),
	}
	if d.requestID != "" {
		out["request_id"] = d.requestID
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// HandleSQSMessage processes one delivery. Successful and unrecoverable
// messages are deleted; anything else stays on the queue and is redelivered
// once the visibility timeout lapses.
func (p *Poller) HandleSQSMessage(ctx context.Context, msg sqstypes.Message) {
	d := newDelivery(msg)

	decoded, meta, err := ParseMessage(aws.ToString(msg.Body))
	d.exportID = decoded.ExportID
	if decoded.RequestID != "" {
		d.requestID = decoded.RequestID
	}
	if err == nil {
		telemetry.Info("worker.export.received", d.fields(nil))
		err = HandleMessage(ctx, p.Processor, decoded)
	} else {
		telemetry.Error("worker.export.invalid_message", d.fields(map[string]any{
			"body_len":    meta.Len,
			"body_sha256": meta.SHA256,
		}))
	}

	switch {
	case err == nil:
		if p.deleteMessage(ctx, d) {
			telemetry.Info("worker.export.completed", d.fields(nil))
		}
	case Unrecoverable(err):
		telemetry.Error("worker.export.dropped", d.fields(map[string]any{"error": err.Error()}))
		if p.deleteMessage(ctx, d) {
			metrics.IncExportJobsDeletedUnrecoverable()
		}
	default:
		telemetry.Error("worker.export.failed", d.fields(map[string]any{"error": err.Error()}))
	}
}

func (p *Poller) deleteMessage(ctx context.Context, d *delivery) bool {
	receipt := aws.ToString(d.msg.ReceiptHandle)
	if receipt == "" {
		telemetry.Error("worker.export.delete_failed", d.fields(map[string]any{"error": "missing receipt handle"}))
		return false
	}
	_, err := p.Client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(p.QueueURL),
		ReceiptHandle: aws.String(receipt),
	})
	if err != nil {
		telemetry.Error("worker.export.delete_failed", d.fields(map[string]any{"error": err.Error()}))
		return false
	}
	return true
}

func receiveCount(msg sqstypes.Message) int {
	n, err := strconv.Atoi(msg.Attributes[string(sqstypes.MessageSystemAttributeNameApproximateReceiveCount)])
	if err != nil {
		return 0
	}
	return n
}
