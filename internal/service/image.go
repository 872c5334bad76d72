package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/hearthside/recipebook/config"
)

// ImageService stores recipe images in S3 behind the ImageStore contract.
// Object keys are random, independent of the recipe slug, because slugs can
// change over edits.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// Upload stores image data under a collision-free key and returns the
// public URL.
func (s *ImageService) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), extensionFor(contentType))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("Successfully uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

// Remove deletes a previously uploaded object by its public URL.
func (s *ImageService) Remove(ctx context.Context, url string) error {
	key, err := s.objectKey(url)
	if err != nil {
		return err
	}

	_, err = s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// objectKey extracts the S3 key from a public URL produced by Upload.
func (s *ImageService) objectKey(url string) (string, error) {
	prefix := fmt.Sprintf("https://%s.s3.amazonaws.com/", s.s3Config.BucketName)
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("url %q does not belong to bucket %s", url, s.s3Config.BucketName)
	}
	return strings.TrimPrefix(url, prefix), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ""
}
