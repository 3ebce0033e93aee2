package orderfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"figurine/internal/entities"
	"figurine/internal/repository"
)

// Store keeps one JSON document per order under dir. Every write goes
// through a temp file plus os.Rename, so a reader (or a restart after a
// crash) only ever observes a complete previous or complete next version of
// the record. Mutations on the same order id are serialized by a per-key
// mutex, which makes Update a single atomic read-transform-write.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create order store dir %s: %w", dir, err)
	}

	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

func (s *Store) Create(ctx context.Context, order entities.Order) error {
	if err := validateID(order.ID); err != nil {
		return err
	}

	lock := s.keyLock(order.ID)
	lock.Lock()
	defer lock.Unlock()

	path := s.path(order.ID)
	if _, err := os.Stat(path); err == nil {
		return repository.ErrOrderAlreadyExists
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat order %s: %w", order.ID, err)
	}

	if err := s.write(order.ID, FromDomain(&order)); err != nil {
		return fmt.Errorf("create order %s: %w", order.ID, err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	model, err := s.read(id)
	if err != nil {
		return nil, err
	}
	return ToDomain(model), nil
}

// Update loads the current record, applies fn and persists the result in a
// single atomic replace. Errors returned by fn abort the update without
// persisting anything. ID, Artifacts and CreatedAt are restored from the
// loaded record after fn runs; transforms cannot touch them.
func (s *Store) Update(
	ctx context.Context,
	id string,
	fn func(entities.Order) (entities.Order, error),
) (*entities.Order, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	lock := s.keyLock(id)
	lock.Lock()
	defer lock.Unlock()

	model, err := s.read(id)
	if err != nil {
		return nil, err
	}

	current := ToDomain(model)
	updated, err := fn(*current)
	if err != nil {
		return nil, err
	}

	updated.ID = current.ID
	updated.Artifacts = current.Artifacts
	updated.CreatedAt = current.CreatedAt

	if err := s.write(id, FromDomain(&updated)); err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	return &updated, nil
}

// List returns every stored order. Partially written temp files are skipped.
func (s *Store) List(ctx context.Context) ([]entities.Order, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read order store dir: %w", err)
	}

	orders := make([]entities.Order, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordSuffix) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), recordSuffix)
		order, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

const recordSuffix = ".json"

func (s *Store) keyLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+recordSuffix)
}

func (s *Store) read(id string) (*OrderFile, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrOrderNotFound
		}
		return nil, fmt.Errorf("read order %s: %w", id, err)
	}

	var model OrderFile
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	return &model, nil
}

func (s *Store) write(id string, model *OrderFile) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, id+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace record: %w", err)
	}
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", repository.ErrOrderNotFound)
	}
	// ids become file names, keep them flat
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("%w: invalid id %q", repository.ErrOrderNotFound, id)
	}
	return nil
}
