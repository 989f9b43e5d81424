package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pullnova_marketing/internal/logger"
)

// EnsurePipelineIndexes tạo các index cần thiết cho pipeline:
//   - publications: (state, scheduledAt) cho vòng quét đến hạn; (contentId, state) cho reconciler
//   - connected_accounts: (platform, state) cho lựa chọn tài khoản
//   - metric_samples: (capturedAt, platform) cho rollup theo ngày
//   - daily_summaries: unique (date, platform) để upsert idempotent
func EnsurePipelineIndexes(ctx context.Context, db *mongo.Database) error {
	log := logger.GetAppLogger()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	type indexSpec struct {
		collection string
		model      mongo.IndexModel
	}

	specs := []indexSpec{
		{"publications", mongo.IndexModel{
			Keys: bson.D{{Key: "state", Value: 1}, {Key: "scheduledAt", Value: 1}},
		}},
		{"publications", mongo.IndexModel{
			Keys: bson.D{{Key: "contentId", Value: 1}, {Key: "state", Value: 1}},
		}},
		{"connected_accounts", mongo.IndexModel{
			Keys: bson.D{{Key: "platform", Value: 1}, {Key: "state", Value: 1}},
		}},
		{"metric_samples", mongo.IndexModel{
			Keys: bson.D{{Key: "capturedAt", Value: 1}, {Key: "platform", Value: 1}},
		}},
		{"daily_summaries", mongo.IndexModel{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "platform", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for _, spec := range specs {
		if _, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"collection": spec.collection,
			}).Error("Failed to create index")
			return err
		}
	}

	log.Info("Pipeline indexes ensured")
	return nil
}
