package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type getObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3State reads a document from an S3 object on every Load.
type S3State struct {
	bucket string
	key    string
	kind   string
	s3     getObjectAPI
}

// NewS3State returns state backed by bucket/key. kind names the document in errors.
func NewS3State(client getObjectAPI, kind, bucket, key string) *S3State {
	return &S3State{
		bucket: bucket,
		key:    key,
		kind:   kind,
		s3:     client,
	}
}

func (s *S3State) Load(ctx context.Context) ([]byte, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s object from S3: %w", s.kind, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (s *S3State) String() string { return fmt.Sprintf("s3://%s/%s", s.bucket, s.key) }
