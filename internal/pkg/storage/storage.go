// Package storage guarda blobs em object storage compatível com S3.
package storage

import (
	"context"

	"github.com/pkg/errors"
)

// ErrObjectNotFound indica que a chave não existe no bucket.
var ErrObjectNotFound = errors.New("objeto não encontrado no storage")

// BlobStore é o contrato mínimo de object storage usado pela sincronização do banco.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}
