package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ticketports "trafficdesk/contexts/ad-operations/ticket-service/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQS delay ceiling per SendMessage; longer waits re-enter the queue with
// the remaining delay burned down by redelivery timing.
const maxSQSDelay = 900 * time.Second

// SQSConfig carries queue connectivity. Endpoint is set only for local
// stacks (ElasticMQ/LocalStack) and switches the client to static dummy
// credentials.
type SQSConfig struct {
	QueueURL string
	Region   string
	Endpoint string
	WaitTime time.Duration
}

// SQSQueue is the durable deployment queue. Visibility-timeout redelivery
// gives at-least-once semantics; the deployment worker tolerates duplicate
// deliveries by re-reading ticket status.
type SQSQueue struct {
	client   *sqs.Client
	queueURL string
	waitTime time.Duration
	logger   *slog.Logger
}

func NewSQSQueue(ctx context.Context, cfg SQSConfig, logger *slog.Logger) (*SQSQueue, error) {
	if cfg.QueueURL == "" {
		return nil, errors.New("sqs queue url is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	configOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	var clientOpts []func(*sqs.Options)
	if cfg.Endpoint != "" {
		configOpts = append(configOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))
		clientOpts = append(clientOpts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	waitTime := cfg.WaitTime
	if waitTime <= 0 {
		waitTime = 10 * time.Second
	}

	logger.Info("sqs deployment queue ready",
		"event", "sqs_queue_ready",
		"module", "internal/platform/queue",
		"layer", "platform",
		"queue_url", cfg.QueueURL,
		"region", cfg.Region,
	)
	return &SQSQueue{
		client:   sqs.NewFromConfig(awsCfg, clientOpts...),
		queueURL: cfg.QueueURL,
		waitTime: waitTime,
		logger:   logger,
	}, nil
}

func (q *SQSQueue) Enqueue(ctx context.Context, job ticketports.DeploymentJob, delay time.Duration) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode deployment job: %w", err)
	}
	if delay < 0 {
		delay = 0
	}
	if delay > maxSQSDelay {
		delay = maxSQSDelay
	}
	_, err = q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(q.queueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})
	if err != nil {
		return fmt.Errorf("send deployment job: %w", err)
	}
	return nil
}

func (q *SQSQueue) Dequeue(ctx context.Context) (ticketports.DeploymentJob, ticketports.Ack, error) {
	for {
		out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(q.queueURL),
			MaxNumberOfMessages: 1,
			WaitTimeSeconds:     int32(q.waitTime / time.Second),
		})
		if err != nil {
			if ctx.Err() != nil {
				return ticketports.DeploymentJob{}, nil, ctx.Err()
			}
			return ticketports.DeploymentJob{}, nil, err
		}
		if len(out.Messages) == 0 {
			if ctx.Err() != nil {
				return ticketports.DeploymentJob{}, nil, ctx.Err()
			}
			continue
		}

		msg := out.Messages[0]
		var job ticketports.DeploymentJob
		if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &job); err != nil {
			q.logger.Error("dropping malformed deployment job",
				"event", "sqs_job_decode_failed",
				"module", "internal/platform/queue",
				"layer", "platform",
				"error", err.Error(),
			)
			_, _ = q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(q.queueURL),
				ReceiptHandle: msg.ReceiptHandle,
			})
			continue
		}

		receipt := msg.ReceiptHandle
		ack := func(ackCtx context.Context) error {
			_, err := q.client.DeleteMessage(ackCtx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(q.queueURL),
				ReceiptHandle: receipt,
			})
			return err
		}
		return job, ack, nil
	}
}
