package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"boardshelf/internal/domain/entity"
	"boardshelf/internal/domain/repository"
	"boardshelf/internal/infrastructure/localkv"
	"boardshelf/pkg/errors"
	"boardshelf/pkg/logger"
)

const gamesKey = "admin_games_v1"

type localRecordRepository struct {
	store *localkv.Store

	// dataMu serializes read-modify-write cycles on the collection file.
	dataMu sync.Mutex

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]func([]*entity.Record)
}

func NewLocalRecordRepository(store *localkv.Store) repository.RecordRepository {
	return &localRecordRepository{
		store:       store,
		subscribers: make(map[int]func([]*entity.Record)),
	}
}

// readAll loads the full collection. Missing or corrupt content degrades to
// an empty collection with a warning; availability beats strict durability
// for this tool.
func (r *localRecordRepository) readAll() []*entity.Record {
	data, ok, err := r.store.Get(gamesKey)
	if err != nil {
		logger.Warn("Failed to read records, treating as empty: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var records []*entity.Record
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("Records JSON invalid, treating as empty: %v", err)
		return nil
	}
	return records
}

func (r *localRecordRepository) writeAll(records []*entity.Record) error {
	if records == nil {
		records = []*entity.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Internal("Failed to serialize records", err)
	}
	if err := r.store.Set(gamesKey, data); err != nil {
		return errors.Internal("Failed to write records", err)
	}
	r.notify(records)
	return nil
}

func (r *localRecordRepository) notify(records []*entity.Record) {
	r.mu.Lock()
	subs := make([]func([]*entity.Record), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(records)
	}
}

func (r *localRecordRepository) List(ctx context.Context) ([]*entity.Record, error) {
	return r.readAll(), nil
}

func (r *localRecordRepository) Create(ctx context.Context, fields map[string]entity.Value) (*entity.Record, error) {
	r.dataMu.Lock()
	defer r.dataMu.Unlock()

	record := &entity.Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Fields:    make(map[string]entity.Value, len(fields)),
	}
	for k, v := range fields {
		record.Fields[k] = v
	}

	// Newest first, like the original list view.
	records := append([]*entity.Record{record}, r.readAll()...)
	if err := r.writeAll(records); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *localRecordRepository) Update(ctx context.Context, id string, fields map[string]entity.Value) error {
	r.dataMu.Lock()
	defer r.dataMu.Unlock()

	records := r.readAll()
	found := false
	for _, rec := range records {
		if rec.ID != id {
			continue
		}
		found = true
		if rec.Fields == nil {
			rec.Fields = make(map[string]entity.Value, len(fields))
		}
		for k, v := range fields {
			rec.Fields[k] = v
		}
	}
	if !found {
		return nil
	}
	return r.writeAll(records)
}

func (r *localRecordRepository) Delete(ctx context.Context, id string) error {
	r.dataMu.Lock()
	defer r.dataMu.Unlock()

	records := r.readAll()
	kept := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return r.writeAll(kept)
}

func (r *localRecordRepository) Subscribe(ctx context.Context, onChange func([]*entity.Record)) (func(), error) {
	r.mu.Lock()
	r.nextSubID++
	id := r.nextSubID
	r.subscribers[id] = onChange
	r.mu.Unlock()

	// Deliver the current collection up front so subscribers start from a
	// full snapshot, matching the remote backend's behavior.
	onChange(r.readAll())

	release := func() {
		r.mu.Lock()
		delete(r.subscribers, id)
		r.mu.Unlock()
	}
	return release, nil
}
