package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"CONVITE_GO/models"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config configura o bucket das confirmações.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // opcional, para MinIO/LocalStack
	Prefix   string
}

// S3Store grava cada confirmação como um objeto JSON.
type S3Store struct {
	client s3API
	bucket string
	prefix string
	now    func() time.Time
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("AWS_BUCKET_NAME não definida nas variáveis de ambiente")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, now: time.Now}, nil
}

func (s *S3Store) Save(ctx context.Context, data map[string]any) (models.ConfirmationMeta, error) {
	now := s.now()
	meta := newMeta(now)

	doc := make(map[string]any, len(data)+2)
	for k, v := range data {
		doc[k] = v
	}
	doc["id"] = meta.ID
	doc["timestamp"] = meta.Timestamp

	body, err := json.Marshal(doc)
	if err != nil {
		return models.ConfirmationMeta{}, fmt.Errorf("erro ao serializar confirmação: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(meta, now)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return models.ConfirmationMeta{}, fmt.Errorf("s3 put falhou: %w", err)
	}
	return meta, nil
}

func (s *S3Store) key(meta models.ConfirmationMeta, now time.Time) string {
	return s.prefix + "confirmations/" + now.UTC().Format("2006-01-02") + "/" + meta.ID + ".json"
}
