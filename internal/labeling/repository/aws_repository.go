package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amankumarsingh77/cube-phase-detector/internal/labeling"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type awsRepository struct {
	client  *s3.Client
	bucket  string
	tempDir string
	logger  logger.Logger
}

func NewAwsRepository(awsClient *s3.Client, bucket, tempDir string, log logger.Logger) labeling.ObjectRepository {
	return &awsRepository{
		client:  awsClient,
		bucket:  bucket,
		tempDir: tempDir,
		logger:  log,
	}
}

func (a *awsRepository) PutObject(ctx context.Context, input models.UploadInput) error {
	bucket := input.BucketName
	if bucket == "" {
		bucket = a.bucket
	}
	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(input.Key),
		ContentType: aws.String(input.MimeType),
		Body:        input.File,
	}
	if input.Size > 0 {
		putInput.ContentLength = aws.Int64(input.Size)
	}
	if _, err := a.client.PutObject(ctx, putInput); err != nil {
		return fmt.Errorf("failed to upload file : %w", err)
	}
	return nil
}

func (a *awsRepository) GetObject(ctx context.Context, key string) (*models.Object, error) {
	res, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("object %s: %w", key, httpErrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to download file : %w", err)
	}
	obj := &models.Object{
		Key:         key,
		Body:        res.Body,
		Size:        aws.ToInt64(res.ContentLength),
		ContentType: aws.ToString(res.ContentType),
	}
	if res.LastModified != nil {
		obj.ModTime = *res.LastModified
	}
	return obj, nil
}

func (a *awsRepository) FetchToFile(ctx context.Context, key string) (string, func(), error) {
	obj, err := a.GetObject(ctx, key)
	if err != nil {
		return "", func() {}, err
	}
	defer obj.Body.Close()

	f, err := os.CreateTemp(a.tempDir, "video-*"+filepath.Ext(key))
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
			a.logger.Warnf("FetchToFile - failed to remove %s: %v", f.Name(), err)
		}
	}

	if _, err = io.Copy(f, obj.Body); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("failed to download file : %w", err)
	}
	if err = f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("failed to download file : %w", err)
	}
	return f.Name(), cleanup, nil
}

func (a *awsRepository) RemoveObject(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to remove file : %w", err)
	}
	return nil
}
