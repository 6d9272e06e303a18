package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lapicera/asistente-compras/internal/models"
)

const mirrorTimeout = 10 * time.Second

// MirrorService keeps a denormalized JSON copy of products and shopping
// lists in an S3-compatible document store. It is strictly best-effort: every
// hook runs fire-and-forget and failures are logged, never propagated, so the
// mirror's availability cannot affect a core operation. A nil *MirrorService
// disables mirroring entirely.
type MirrorService struct {
	client     *minio.Client
	bucketName string
	region     string
}

// NewMirrorService creates a new mirror service backed by S3-compatible storage
func NewMirrorService(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool) (*MirrorService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror client: %w", err)
	}

	return &MirrorService{
		client:     client,
		bucketName: bucketName,
		region:     region,
	}, nil
}

// EnsureBucket creates the mirror bucket if it doesn't exist
func (s *MirrorService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// MirrorProduct pushes a product document after a create or update
func (s *MirrorService) MirrorProduct(product *models.Product) {
	if s == nil {
		return
	}
	s.put(fmt.Sprintf("products/%d.json", product.ID), product)
}

// MirrorList pushes a full list document, lines and totals included, after
// any change to the list or one of its lines
func (s *MirrorService) MirrorList(list *models.ShoppingListWithLines) {
	if s == nil {
		return
	}
	s.put(fmt.Sprintf("shopping_lists/%d.json", list.ID), list)
}

// RemoveProduct deletes a mirrored product document
func (s *MirrorService) RemoveProduct(id int) {
	if s == nil {
		return
	}
	s.remove(fmt.Sprintf("products/%d.json", id))
}

// RemoveList deletes a mirrored list document
func (s *MirrorService) RemoveList(id int) {
	if s == nil {
		return
	}
	s.remove(fmt.Sprintf("shopping_lists/%d.json", id))
}

func (s *MirrorService) put(key string, doc interface{}) {
	data, err := json.Marshal(doc)
	if err != nil {
		log.Printf("mirror: failed to encode %s: %v", key, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()

		_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
		if err != nil {
			log.Printf("mirror: failed to write %s: %v", key, err)
		}
	}()
}

func (s *MirrorService) remove(key string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()

		if err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
			log.Printf("mirror: failed to delete %s: %v", key, err)
		}
	}()
}
