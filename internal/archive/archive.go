// Package archive stores completed tournament brackets on S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/config"
)

// ErrDisabled is returned by New when archiving is not configured.
var ErrDisabled = errors.New("archive disabled")

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader writes bracket snapshots to a bucket.
type Uploader struct {
	client        putObjectAPI
	bucket        string
	publicBaseURL string
	logger        *zap.SugaredLogger
}

// New builds an uploader for the configured bucket. A custom endpoint is used
// with path-style addressing so R2 and MinIO work alongside AWS.
func New(ctx context.Context, cfg config.ArchiveConfig, logger *zap.SugaredLogger) (*Uploader, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newUploader(client, cfg.Bucket, cfg.PublicBaseURL, logger), nil
}

func newUploader(client putObjectAPI, bucket, publicBaseURL string, logger *zap.SugaredLogger) *Uploader {
	return &Uploader{client: client, bucket: bucket, publicBaseURL: publicBaseURL, logger: logger}
}

// Key returns the object key of a tournament's bracket snapshot.
func Key(tournamentID string) string {
	return "tournaments/" + tournamentID + "/bracket.json"
}

// ArchiveBracket uploads snapshot as JSON and returns its public URL,
// or the object key when no public base URL is configured.
func (u *Uploader) ArchiveBracket(ctx context.Context, tournamentID string, snapshot any) (string, error) {
	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode bracket snapshot: %w", err)
	}

	key := Key(tournamentID)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload bracket snapshot (key: %s): %w", key, err)
	}

	location := u.PublicURL(key)
	if location == "" {
		location = key
	}
	u.logger.Infow("bracket archived", "tournament_id", tournamentID, "location", location)
	return location, nil
}

// PublicURL joins key onto the public base URL. It returns "" when there is none.
func (u *Uploader) PublicURL(key string) string {
	if u.publicBaseURL == "" || key == "" {
		return ""
	}
	base, err := url.Parse(u.publicBaseURL)
	if err != nil {
		u.logger.Warnw("invalid archive public base URL", "url", u.publicBaseURL, "error", err)
		return ""
	}
	return base.JoinPath(strings.TrimPrefix(key, "/")).String()
}
