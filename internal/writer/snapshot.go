package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rickgao/bazaar-data/internal/database"
	"github.com/rickgao/bazaar-data/internal/metrics"
	"github.com/rickgao/bazaar-data/internal/model"
)

// SnapshotWriter persists projected records and maintains the freshness counter.
type SnapshotWriter struct {
	cfg    WriterConfig
	logger *slog.Logger

	// Database
	client  *mongo.Client
	records *mongo.Collection
	config  *mongo.Collection

	// Metrics
	metrics *metrics.Metrics
	statsMu sync.Mutex
	stats   WriterMetrics
}

// NewSnapshotWriter creates a new SnapshotWriter backed by store.
func NewSnapshotWriter(
	cfg WriterConfig,
	store *database.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *SnapshotWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotWriter{
		cfg:     cfg,
		logger:  logger,
		client:  store.Client,
		records: store.Records,
		config:  store.Config,
		metrics: m,
	}
}

// Transactional reports whether PersistCycle should be used.
func (w *SnapshotWriter) Transactional() bool {
	return w.cfg.Transactional
}

// Stats returns current metrics.
func (w *SnapshotWriter) Stats() WriterMetrics {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	return w.stats
}

// Persist inserts each record independently, in order. On the first failure
// it returns the number already committed and a *StoreError; committed
// records are not rolled back.
func (w *SnapshotWriter) Persist(ctx context.Context, records []model.PersistedRecord) (int, error) {
	start := time.Now()
	written := 0

	for _, r := range records {
		if _, err := w.records.InsertOne(ctx, toRecordDocument(r)); err != nil {
			w.recordInserts(written, true)
			w.logger.Error("record insert failed",
				"product_id", r.ItemID,
				"written", written,
				"remaining", len(records)-written,
				"error", err,
			)
			return written, &StoreError{Op: "insert record", ItemID: r.ItemID, Written: written, Err: err}
		}
		written++
	}

	w.recordInserts(written, false)

	w.logger.Debug("persisted records",
		"count", written,
		"duration", time.Since(start),
	)

	return written, nil
}

// BumpFreshnessCounter increments the counter document by one. With
// CreateCounter set the document is created on first use; otherwise a
// missing document is logged and left absent.
func (w *SnapshotWriter) BumpFreshnessCounter(ctx context.Context) error {
	matched, err := w.bump(ctx)
	if err != nil {
		w.recordError()
		return &StoreError{Op: "bump counter", Err: err}
	}
	w.recordBump(matched)
	return nil
}

// PersistCycle inserts all records and bumps the counter in a single
// transaction. Requires a replica set or sharded cluster.
func (w *SnapshotWriter) PersistCycle(ctx context.Context, records []model.PersistedRecord) (int, error) {
	sess, err := w.client.StartSession()
	if err != nil {
		w.recordError()
		return 0, &StoreError{Op: "transaction", Err: err}
	}
	defer sess.EndSession(ctx)

	var matched bool
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if len(records) > 0 {
			docs := make([]interface{}, len(records))
			for i, r := range records {
				docs[i] = toRecordDocument(r)
			}
			if _, err := w.records.InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		var err error
		matched, err = w.bump(sc)
		return nil, err
	})
	if err != nil {
		w.recordError()
		w.logger.Error("persist transaction aborted", "records", len(records), "error", err)
		return 0, &StoreError{Op: "transaction", Err: err}
	}

	w.recordInserts(len(records), false)
	w.recordBump(matched)
	return len(records), nil
}

// bump runs the counter update and reports whether a document was touched.
func (w *SnapshotWriter) bump(ctx context.Context) (bool, error) {
	filter := bson.D{{Key: CounterField, Value: bson.D{{Key: "$exists", Value: true}}}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: CounterField, Value: int32(1)}}}}
	opts := options.Update().SetUpsert(w.cfg.CreateCounter)

	res, err := w.config.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0 || res.UpsertedCount > 0, nil
}

func (w *SnapshotWriter) recordInserts(n int, failed bool) {
	w.statsMu.Lock()
	w.stats.Inserts += int64(n)
	if failed {
		w.stats.Errors++
	}
	w.statsMu.Unlock()

	w.metrics.AddRecords(n)
	if failed {
		w.metrics.IncStoreErrors()
	}
}

func (w *SnapshotWriter) recordError() {
	w.statsMu.Lock()
	w.stats.Errors++
	w.statsMu.Unlock()
	w.metrics.IncStoreErrors()
}

func (w *SnapshotWriter) recordBump(matched bool) {
	w.statsMu.Lock()
	if matched {
		w.stats.Cycles++
	} else {
		w.stats.CounterMisses++
	}
	w.statsMu.Unlock()

	w.metrics.IncCounterBump(matched)
	if !matched {
		w.logger.Warn("freshness counter not incremented",
			"field", CounterField,
			"error", ErrCounterMissing,
		)
	}
}
