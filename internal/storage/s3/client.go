package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"docvault/internal/config"
	apperrors "docvault/pkg/errors"
)

const (
	emptyAWSSessionToken         = ""
	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
	errFailedPutObjectFmt        = "failed to put object: %w"
	errFailedGetObjectFmt        = "failed to get object: %w"
	errFailedReadObjectFmt       = "failed to read object body: %w"
	errFailedDeleteObjectFmt     = "failed to delete object: %w"
	errObjectNotFound            = "object not found"
)

// Client stores blobs as objects in a single S3 bucket.
type Client struct {
	svc    *s3.S3
	bucket string
}

func NewClient(cfg *config.AWSConfig) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	})
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Client{
		svc:    s3.New(sess),
		bucket: cfg.Bucket,
	}, nil
}

func (c *Client) Put(ctx context.Context, key string, data []byte) error {
	_, err := c.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf(errFailedPutObjectFmt, err)
	}

	return nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := c.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == s3.ErrCodeNoSuchKey {
			return nil, apperrors.NotFound(errObjectNotFound)
		}
		return nil, fmt.Errorf(errFailedGetObjectFmt, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedReadObjectFmt, err)
	}

	return data, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf(errFailedDeleteObjectFmt, err)
	}

	return nil
}
