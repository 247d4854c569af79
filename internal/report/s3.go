package report

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Sink mirrors every written report to an S3 bucket in addition to the
// local copy. The local write happens first so a failed upload never loses
// the report.
type S3Sink struct {
	local  *FileSink
	client *s3.Client
	bucket string
	prefix string
	log    *zap.SugaredLogger
}

func NewS3Sink(ctx context.Context, local *FileSink, bucket, region, prefix string, log *zap.SugaredLogger) (*S3Sink, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &S3Sink{
		local:  local,
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
		log:    log,
	}, nil
}

func (s *S3Sink) Write(ctx context.Context, name string, content []byte) (string, error) {
	localPath, err := s.local.Write(ctx, name, content)
	if err != nil {
		return "", err
	}

	key := path.Join(s.prefix, name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return localPath, fmt.Errorf("unable to upload %s to S3: %w", name, err)
	}
	s.log.Infow("report uploaded", "bucket", s.bucket, "key", key)
	return localPath, nil
}
