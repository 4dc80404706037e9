// Package sink implements io.WriteCloser destinations for a finished ORC
// file, beyond the plain os.File case the cmd/orcgen CLI defaults to.
package sink

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 streams writes to an S3 object via a multipart upload running on a
// background goroutine, so orcfile.Writer never has to buffer the whole
// file in memory before it can be shipped out (spec §6's "pluggable sink"
// note).
type S3 struct {
	pw   *io.PipeWriter
	done chan error
}

// NewS3 starts the background upload and returns a sink ready for writes.
// Close must be called exactly once, after the last Write, to flush the
// upload and report any error the S3 client encountered.
func NewS3(ctx context.Context, client *s3.Client, bucket, key string) *S3 {
	pr, pw := io.Pipe()
	s := &S3{pw: pw, done: make(chan error, 1)}

	uploader := manager.NewUploader(client)
	go func() {
		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   pr,
		})
		pr.CloseWithError(err)
		s.done <- err
	}()

	return s
}

func (s *S3) Write(p []byte) (int, error) {
	return s.pw.Write(p)
}

// Close signals end-of-file to the uploader and waits for the multipart
// upload to complete, returning its error (if any).
func (s *S3) Close() error {
	if err := s.pw.Close(); err != nil {
		return err
	}
	return <-s.done
}
