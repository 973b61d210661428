package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrSourceNotFound is returned when the corpus file does not exist.
var ErrSourceNotFound = errors.New("corpus source not found")

// Source yields the raw corpus text.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// S3GetObjectAPI is the part of the S3 client used to fetch a corpus object.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewSource picks a source for uri: s3://bucket/key goes through client,
// anything else is a local path.
func NewSource(uri string, client S3GetObjectAPI) (Source, error) {
	if !strings.HasPrefix(uri, "s3://") {
		return FileSource{Path: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("corpus: parsing source uri %q: %w", uri, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, fmt.Errorf("corpus: source uri %q must be s3://bucket/key", uri)
	}
	if client == nil {
		return nil, fmt.Errorf("corpus: source uri %q needs an S3 client", uri)
	}
	return S3Source{Client: client, Bucket: u.Host, Key: key}, nil
}

// FileSource reads the corpus from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("corpus: %s: %w", s.Path, ErrSourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("corpus: opening %s: %w", s.Path, err)
	}
	return f, nil
}

func (s FileSource) String() string { return s.Path }

// S3Source reads the corpus from an S3 object.
type S3Source struct {
	Client S3GetObjectAPI
	Bucket string
	Key    string
}

func (s S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("corpus: %s: %w", s, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("corpus: fetching %s: %w", s, err)
	}
	return out.Body, nil
}

func (s S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }
