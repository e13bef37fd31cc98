// Package storage keeps game logs in an S3-compatible bucket (AWS S3,
// Cloudflare R2, MinIO).
//
// A game's logs are three objects under <prefix>/<gameId>/:
// player_1.log, player_2.log and game.log. game.log is written last, so its
// presence means the upload completed.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/delta/codecharacter/api/internal/model"
)

// ErrObjectNotFound is returned when a log object does not exist
var ErrObjectNotFound = errors.New("object not found")

const (
	gameLogName    = "game.log"
	player1LogName = "player_1.log"
	player2LogName = "player_2.log"

	logContentType = "text/plain; charset=utf-8"
)

// ObjectAPI is the subset of the S3 client the log store uses
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Config selects the bucket and how to reach it
type Config struct {
	Endpoint        string // empty for AWS
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// LogStore reads and writes game logs
type LogStore struct {
	client ObjectAPI
	bucket string
	prefix string
}

// NewLogStore builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewLogStore(ctx context.Context, cfg Config) (*LogStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load object store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewLogStoreWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewLogStoreWithClient wraps an existing client
func NewLogStoreWithClient(client ObjectAPI, bucket, prefix string) *LogStore {
	return &LogStore{client: client, bucket: bucket, prefix: prefix}
}

// Ping checks that the bucket is reachable
func (s *LogStore) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("object store unreachable: %w", err)
	}
	return nil
}

// GetGameLog loads the logs of a game. ErrObjectNotFound means no log was
// uploaded; a missing player log reads as empty.
func (s *LogStore) GetGameLog(ctx context.Context, gameID int) (*model.LogDetails, error) {
	gameLog, err := s.get(ctx, s.key(gameID, gameLogName))
	if err != nil {
		return nil, err
	}

	details := &model.LogDetails{GameLog: gameLog}
	if details.Player1Log, err = s.getOptional(ctx, s.key(gameID, player1LogName)); err != nil {
		return nil, err
	}
	if details.Player2Log, err = s.getOptional(ctx, s.key(gameID, player2LogName)); err != nil {
		return nil, err
	}
	return details, nil
}

// PutGameLog uploads the logs of a game, overwriting any earlier upload
func (s *LogStore) PutGameLog(ctx context.Context, gameID int, details *model.LogDetails) error {
	// game.log last: readers treat it as the completion marker
	objects := []struct {
		name, body string
	}{
		{player1LogName, details.Player1Log},
		{player2LogName, details.Player2Log},
		{gameLogName, details.GameLog},
	}

	for _, obj := range objects {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(s.key(gameID, obj.name)),
			Body:        bytes.NewReader([]byte(obj.body)),
			ContentType: aws.String(logContentType),
		})
		if err != nil {
			return fmt.Errorf("failed to upload %s for game %d: %w", obj.name, gameID, err)
		}
	}
	return nil
}

func (s *LogStore) key(gameID int, name string) string {
	return path.Join(s.prefix, strconv.Itoa(gameID), name)
}

func (s *LogStore) get(ctx context.Context, key string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(body), nil
}

func (s *LogStore) getOptional(ctx context.Context, key string) (string, error) {
	body, err := s.get(ctx, key)
	if errors.Is(err, ErrObjectNotFound) {
		return "", nil
	}
	return body, err
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
