package syncservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"cadastro/internal/pkg/database"
	"cadastro/internal/pkg/logger"
	"cadastro/internal/pkg/storage"
)

// Service mantém o arquivo local do banco espelhado em uma chave do object storage.
// Modelo: baixa no start, sobe o arquivo inteiro após cada escrita (last-writer-wins).
type Service struct {
	store     storage.BlobStore
	localPath string
	key       string
	breaker   *gobreaker.CircuitBreaker
	logger    logger.Logger

	pushMu sync.Mutex
	db     *sql.DB
	wg     sync.WaitGroup
}

// NewService cria o serviço de sincronização para o arquivo e a chave informados.
func NewService(store storage.BlobStore, localPath, key string, log logger.Logger) *Service {
	st := gobreaker.Settings{
		Name:        "SnapshotPushBreaker",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker do snapshot mudou de estado.", map[string]interface{}{
				"breaker": name, "from": from.String(), "to": to.String(),
			})
		},
	}

	return &Service{
		store:     store,
		localPath: localPath,
		key:       key,
		breaker:   gobreaker.NewCircuitBreaker(st),
		logger:    log,
	}
}

// EnsureLocal garante o arquivo local antes de abrir o banco.
// Snapshot remoto presente: sobrescreve o local. Ausente: cria um arquivo vazio se não houver local.
// Outros erros são apenas logados; só falha se no fim não existir arquivo local.
func (s *Service) EnsureLocal(ctx context.Context) error {
	fields := map[string]interface{}{"key": s.key, "path": s.localPath}
	s.logger.Info("Baixando snapshot do banco do storage.", fields)

	body, err := s.store.Get(ctx, s.key)
	switch {
	case err == nil:
		if err := writeAtomic(s.localPath, body); err != nil {
			s.logger.Error("Falha ao gravar snapshot baixado no disco.", err)
		} else {
			s.logger.Info("Snapshot do banco restaurado.", map[string]interface{}{"key": s.key, "bytes": len(body)})
		}
	case errors.Is(err, storage.ErrObjectNotFound):
		s.logger.Info("Snapshot remoto inexistente, iniciando com banco local vazio.", fields)
		if err := createIfMissing(s.localPath); err != nil {
			s.logger.Error("Falha ao criar arquivo local do banco.", err)
		}
	default:
		s.logger.Error("Falha ao baixar snapshot do banco; seguindo com o estado local.", err)
	}

	if _, err := os.Stat(s.localPath); err != nil {
		return fmt.Errorf("arquivo do banco %s indisponível após a sincronização: %w", s.localPath, err)
	}
	return nil
}

// AttachDB liga o serviço à conexão aberta sobre o arquivo local.
// Com a conexão ligada, Push envia um snapshot gerado pelo próprio SQLite.
func (s *Service) AttachDB(db *sql.DB) {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()
	s.db = db
}

// Push envia o banco local inteiro para a chave remota.
// Envios concorrentes são serializados; o último a terminar prevalece.
func (s *Service) Push(ctx context.Context) error {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()

	body, err := s.readSnapshot(ctx)
	if err != nil {
		return err
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.store.Put(ctx, s.key, body)
	})
	if err != nil {
		return fmt.Errorf("falha ao enviar snapshot %s: %w", s.key, err)
	}

	s.logger.Info("Snapshot do banco enviado ao storage.", map[string]interface{}{"key": s.key, "bytes": len(body)})
	return nil
}

// readSnapshot lê o banco para envio. Sem conexão ligada, lê o arquivo direto.
func (s *Service) readSnapshot(ctx context.Context) ([]byte, error) {
	if s.db == nil {
		body, err := os.ReadFile(s.localPath)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler arquivo do banco %s: %w", s.localPath, err)
		}
		return body, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.localPath), filepath.Base(s.localPath)+".snapshot-*")
	if err != nil {
		return nil, fmt.Errorf("falha ao criar arquivo temporário do snapshot: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	if err := database.SnapshotInto(ctx, s.db, tmpName); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(tmpName)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler snapshot %s: %w", tmpName, err)
	}
	return body, nil
}

// PushAsync dispara Push em background. Falhas são logadas e não chegam ao cliente.
func (s *Service) PushAsync() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Push(context.Background()); err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				s.logger.Warn("Envio do snapshot rejeitado pelo circuit breaker.", map[string]interface{}{"key": s.key})
				return
			}
			s.logger.Error("Falha ao sincronizar snapshot do banco.", err)
		}
	}()
}

// Wait aguarda os envios em andamento ou o fim do contexto.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writeAtomic grava em um temporário no mesmo diretório e renomeia sobre o destino.
func writeAtomic(path string, body []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".download-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Journal antigo não pertence ao snapshot novo; se ficasse, o SQLite faria rollback sobre ele.
	if err := os.Remove(path + "-journal"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func createIfMissing(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return f.Close()
}
