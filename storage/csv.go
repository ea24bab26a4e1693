package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"CONVITE_GO/models"
)

// FileInfo descreve um arquivo CSV da pasta de dados.
type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// CSVStore acrescenta cada confirmação ao CSV mais recente da pasta.
// Quando as colunas mudam, um novo arquivo é criado.
type CSVStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

func NewCSVStore(dir string) (*CSVStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("pasta de dados inválida: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar pasta de dados: %w", err)
	}
	return &CSVStore{dir: abs, now: time.Now}, nil
}

func (s *CSVStore) Dir() string {
	return s.dir
}

func (s *CSVStore) Save(ctx context.Context, data map[string]any) (models.ConfirmationMeta, error) {
	if err := ctx.Err(); err != nil {
		return models.ConfirmationMeta{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	meta := newMeta(now)
	header, values := withMeta(meta, data)

	path, existing, err := s.target(header, now)
	if err != nil {
		return models.ConfirmationMeta{}, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return models.ConfirmationMeta{}, fmt.Errorf("erro ao abrir csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !existing {
		if err := w.Write(header); err != nil {
			return models.ConfirmationMeta{}, fmt.Errorf("erro ao gravar cabeçalho: %w", err)
		}
	}
	record := make([]string, len(header))
	for i, col := range header {
		record[i] = values[col]
	}
	if err := w.Write(record); err != nil {
		return models.ConfirmationMeta{}, fmt.Errorf("erro ao gravar csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return models.ConfirmationMeta{}, fmt.Errorf("erro ao gravar csv: %w", err)
	}
	return meta, nil
}

// target escolhe o arquivo de destino: o mais recente se o cabeçalho bate, senão um novo.
func (s *CSVStore) target(header []string, now time.Time) (string, bool, error) {
	latest, err := s.Latest()
	if err != nil {
		return "", false, err
	}
	if latest != "" {
		path := filepath.Join(s.dir, latest)
		current, err := readHeader(path)
		if err != nil {
			return "", false, err
		}
		if slices.Equal(current, header) {
			return path, true, nil
		}
	}

	name := "data_" + now.UTC().Format("2006-01-02T15-04-05") + ".csv"
	path := filepath.Join(s.dir, name)
	for i := 1; fileExists(path); i++ {
		name = fmt.Sprintf("data_%s_%d.csv", now.UTC().Format("2006-01-02T15-04-05"), i)
		path = filepath.Join(s.dir, name)
	}
	return path, false, nil
}

func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir csv: %w", err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cabeçalho do csv: %w", err)
	}
	return header, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Files lista os CSVs da pasta, mais recentes primeiro.
func (s *CSVStore) Files() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar arquivos: %w", err)
	}

	files := []FileInfo{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:     e.Name(),
			Size:     info.Size(),
			Created:  info.ModTime(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Modified.Equal(files[j].Modified) {
			return newerName(files[i].Name, files[j].Name)
		}
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// newerName desempata arquivos com o mesmo mtime. Os nomes de um mesmo segundo
// diferem só no sufixo numérico (data_T.csv, data_T_1.csv, ..., data_T_10.csv),
// então o nome mais longo é o mais novo.
func newerName(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}

// Latest devolve o nome do CSV mais recente ou "" quando não há nenhum.
func (s *CSVStore) Latest() (string, error) {
	files, err := s.Files()
	if err != nil || len(files) == 0 {
		return "", err
	}
	return files[0].Name, nil
}

// Path resolve o caminho de um CSV da pasta, recusando qualquer coisa fora dela.
func (s *CSVStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, ".csv") {
		return "", ErrInvalidFileName
	}
	path := filepath.Join(s.dir, name)
	if !strings.HasPrefix(path, s.dir+string(os.PathSeparator)) {
		return "", ErrInvalidFileName
	}
	if !fileExists(path) {
		return "", ErrFileNotFound
	}
	return path, nil
}
