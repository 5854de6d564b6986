// Package ses implements an emailsink.Transport backed by the AWS SES v2
// API, for hosts that cannot reach an SMTP relay directly.
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	emailsink "github.com/Etogy/serilog-sinks-email"
)

// Config holds the AWS settings for creating a Transport. When the
// static credentials are empty the default AWS credential chain applies.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// SendEmailAPI is the interface for the SES v2 SendEmail operation.
// Used for testing with mock implementations.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Transport sends sink messages via the AWS SES v2 API. The API is
// connectionless, so Connect only hands out a handle bound to the shared
// client and Close is a no-op.
type Transport struct {
	client SendEmailAPI
}

// New creates a Transport with the given configuration.
func New(ctx context.Context, cfg Config) (*Transport, error) {
	var opts []func(*awsconfig.LoadOptions) error

	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Transport{client: sesv2.NewFromConfig(awsCfg)}, nil
}

// NewWithClient creates a Transport with a custom client, used for testing.
func NewWithClient(client SendEmailAPI) *Transport {
	return &Transport{client: client}
}

// Connect returns a handle ready to send one message.
func (t *Transport) Connect(ctx context.Context) (emailsink.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &connection{client: t.client}, nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "ses"
}

type connection struct {
	client SendEmailAPI
}

// Send delivers the message as SES simple content, mapping the body to
// HTML or text per the message flag.
func (c *connection) Send(ctx context.Context, msg *emailsink.Message) error {
	if _, err := c.client.SendEmail(ctx, buildInput(msg)); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

// Close is a no-op: the SES API holds no per-message connection.
func (c *connection) Close() error {
	return nil
}

// buildInput creates the SES SendEmailInput for a sink message.
func buildInput(msg *emailsink.Message) *sesv2.SendEmailInput {
	body := &types.Body{}
	content := &types.Content{
		Data:    aws.String(msg.Body),
		Charset: aws.String("UTF-8"),
	}
	if msg.HTML {
		body.Html = content
	} else {
		body.Text = content
	}

	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: body,
			},
		},
	}
}
