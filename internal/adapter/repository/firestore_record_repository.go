package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"boardshelf/internal/domain/entity"
	"boardshelf/internal/domain/repository"
	"boardshelf/pkg/errors"
	"boardshelf/pkg/logger"
)

const recordsCollection = "games"

type firestoreRecordRepository struct {
	client *firestore.Client
}

func NewFirestoreRecordRepository(client *firestore.Client) repository.RecordRepository {
	return &firestoreRecordRepository{client: client}
}

func (r *firestoreRecordRepository) query() firestore.Query {
	// Descending creation order stands in for the local backend's prepend.
	return r.client.Collection(recordsCollection).OrderBy("createdAt", firestore.Desc)
}

func (r *firestoreRecordRepository) List(ctx context.Context) ([]*entity.Record, error) {
	iter := r.query().Documents(ctx)
	defer iter.Stop()

	var records []*entity.Record
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			// Unreachable store reads as empty, never as a fatal error.
			logger.Warn("Failed to list records, treating as empty: %v", err)
			return nil, nil
		}
		records = append(records, recordFromDoc(doc))
	}

	return records, nil
}

func (r *firestoreRecordRepository) Create(ctx context.Context, fields map[string]entity.Value) (*entity.Record, error) {
	doc := r.client.Collection(recordsCollection).NewDoc()

	record := &entity.Record{
		ID:        doc.ID,
		CreatedAt: time.Now(),
		Fields:    make(map[string]entity.Value, len(fields)),
	}
	for k, v := range fields {
		record.Fields[k] = v
	}

	data := nativeFields(fields)
	data["createdAt"] = record.CreatedAt

	if _, err := doc.Set(ctx, data); err != nil {
		return nil, errors.Internal("Failed to create record", err)
	}
	return record, nil
}

func (r *firestoreRecordRepository) Update(ctx context.Context, id string, fields map[string]entity.Value) error {
	ref := r.client.Collection(recordsCollection).Doc(id)

	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			// Stale UI state (e.g. double-delete); nothing to do.
			return nil
		}
		return errors.Internal("Failed to get record", err)
	}

	if _, err := ref.Set(ctx, nativeFields(fields), firestore.MergeAll); err != nil {
		return errors.Internal("Failed to update record", err)
	}
	return nil
}

func (r *firestoreRecordRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(recordsCollection).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete record", err)
	}
	return nil
}

func (r *firestoreRecordRepository) Subscribe(ctx context.Context, onChange func([]*entity.Record)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	snapshots := r.query().Snapshots(ctx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Warn("Record subscription ended: %v", err)
				}
				return
			}

			var records []*entity.Record
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					logger.Warn("Failed to read record snapshot: %v", err)
					break
				}
				records = append(records, recordFromDoc(doc))
			}

			// Full-list replacement on every notification; subscribers never
			// reconcile partial changes.
			onChange(records)
		}
	}()

	return cancel, nil
}

func recordFromDoc(doc *firestore.DocumentSnapshot) *entity.Record {
	record := &entity.Record{
		ID:     doc.Ref.ID,
		Fields: make(map[string]entity.Value),
	}

	for k, v := range doc.Data() {
		switch k {
		case "id":
			// The document id is authoritative.
		case "createdAt":
			if t, ok := v.(time.Time); ok {
				record.CreatedAt = t
			}
		default:
			record.Fields[k] = entity.FromNative(v)
		}
	}

	return record
}

func nativeFields(fields map[string]entity.Value) map[string]interface{} {
	data := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		data[k] = v.Native()
	}
	return data
}
