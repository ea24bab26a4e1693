package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"CONVITE_GO/config"
	"CONVITE_GO/database"
	"CONVITE_GO/handlers"
	"CONVITE_GO/logger"
	"CONVITE_GO/mailer"
	"CONVITE_GO/repository"
	"CONVITE_GO/storage"
)

func newLogger() (*zap.Logger, error) {
	return logger.New(logLevel)
}

// openDatabase conecta e executa as migrações. Sem DATABASE_URL devolve (nil, nil).
func openDatabase(log *zap.Logger) (*sql.DB, error) {
	db, err := database.Connect()
	if errors.Is(err, database.ErrNotConfigured) {
		log.Warn("DATABASE_URL não definida, pagamentos e consulta de confirmações desativados")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Executar migrações
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao executar migrações: %w", err)
	}
	log.Info("banco conectado e migrações executadas",
		zap.String("host", database.Host(config.GetDatabaseURL())),
	)
	return db, nil
}

// requireDatabase é usado pelos comandos que só fazem sentido com Postgres
func requireDatabase(log *zap.Logger) (*sql.DB, error) {
	db, err := openDatabase(log)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, database.ErrNotConfigured
	}
	return db, nil
}

// confirmationBackend é o backend de confirmações já montado. Finder e Files
// ficam nil quando o backend não oferece consulta ou arquivos.
type confirmationBackend struct {
	Store  handlers.ConfirmationStore
	Finder handlers.ConfirmationFinder
	Files  handlers.FileStore
}

func buildConfirmationBackend(ctx context.Context, backend string, db *sql.DB, log *zap.Logger) (confirmationBackend, error) {
	switch backend {
	case config.BackendPostgres:
		if db == nil {
			return confirmationBackend{}, fmt.Errorf("backend %s: %w", backend, database.ErrNotConfigured)
		}
		repo := repository.NewConfirmationRepository(db)
		return confirmationBackend{Store: repo, Finder: repo}, nil

	case config.BackendCSV:
		store, err := storage.NewCSVStore(config.GetDataDir())
		if err != nil {
			return confirmationBackend{}, err
		}
		log.Info("confirmações em CSV", zap.String("dir", store.Dir()))
		return confirmationBackend{Store: store, Files: store}, nil

	case config.BackendS3:
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:   config.GetAwsBucket(),
			Region:   config.GetAwsRegion(),
			Endpoint: config.GetAwsEndpoint(),
		})
		if err != nil {
			return confirmationBackend{}, err
		}
		return confirmationBackend{Store: store}, nil

	case config.BackendEmail:
		m, err := mailer.New(config.GetEmailSettings())
		if err != nil {
			return confirmationBackend{}, err
		}
		if err := m.Verify(); err != nil {
			log.Warn("falha ao verificar o servidor SMTP", zap.Error(err))
		}
		return confirmationBackend{Store: storage.NewEmailStore(m)}, nil
	}
	return confirmationBackend{}, fmt.Errorf("backend de confirmações desconhecido: %q", backend)
}
