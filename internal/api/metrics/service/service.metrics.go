// Package metricssvc thu thập metric samples của các bài đã đăng và
// tính daily summary theo (ngày, platform).
package metricssvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "pullnova_marketing/internal/api/base/service"
	metricsmodels "pullnova_marketing/internal/api/metrics/models"
	"pullnova_marketing/internal/common"
	"pullnova_marketing/internal/global"
	"pullnova_marketing/internal/utility"
)

// MetricsService là service quản lý metric samples và daily summaries
type MetricsService struct {
	*basesvc.BaseServiceMongoImpl[metricsmodels.MetricSample]
	summaryService *basesvc.BaseServiceMongoImpl[metricsmodels.DailySummary]
}

// NewMetricsService tạo mới MetricsService
func NewMetricsService() (*MetricsService, error) {
	sampleColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MetricSamples)
	if !exist {
		return nil, fmt.Errorf("failed to get metric_samples collection: %v", common.ErrNotFound)
	}
	summaryColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DailySummaries)
	if !exist {
		return nil, fmt.Errorf("failed to get daily_summaries collection: %v", common.ErrNotFound)
	}
	return &MetricsService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[metricsmodels.MetricSample](sampleColl),
		summaryService:       basesvc.NewBaseServiceMongo[metricsmodels.DailySummary](summaryColl),
	}, nil
}

// ComputeEngagementRate tính tỉ lệ tương tác theo phần trăm:
// (likes + comments + shares + saves) / reach * 100.
// Reach = 0 trả về 0, không chia cho 0.
func ComputeEngagementRate(likes, comments, shares, saves, reach int64) float64 {
	if reach == 0 {
		return 0
	}
	return float64(likes+comments+shares+saves) / float64(reach) * 100
}

// AppendSample ghi một lần quan sát mới. Samples là append-only:
// mỗi cycle của metrics collector thêm một bản ghi mới, không ghi đè bản cũ.
func (s *MetricsService) AppendSample(ctx context.Context, sample metricsmodels.MetricSample) (metricsmodels.MetricSample, error) {
	if sample.CapturedAt == 0 {
		sample.CapturedAt = time.Now().UnixMilli()
	}
	sample.EngagementRate = ComputeEngagementRate(sample.Likes, sample.Comments, sample.Shares, sample.Saves, sample.Reach)
	return s.InsertOne(ctx, sample)
}

// AggregateSamples gộp một tập sample thành một DailySummary (chưa có khóa ngày/platform).
// Hàm thuần để test không cần database.
func AggregateSamples(samples []metricsmodels.MetricSample) metricsmodels.DailySummary {
	var summary metricsmodels.DailySummary
	for _, sample := range samples {
		summary.SampleCount++
		summary.Likes += sample.Likes
		summary.Comments += sample.Comments
		summary.Shares += sample.Shares
		summary.Saves += sample.Saves
		summary.Impressions += sample.Impressions
		summary.Reach += sample.Reach
		summary.Clicks += sample.Clicks
	}
	summary.EngagementRate = ComputeEngagementRate(summary.Likes, summary.Comments, summary.Shares, summary.Saves, summary.Reach)
	return summary
}

// RecomputeDailySummary tính lại summary cho một ngày: một bản ghi cho mỗi
// platform có sample trong ngày, cộng thêm một bản ghi platform "all".
// Upsert theo khóa (date, platform) nên chạy lại nhiều lần cho cùng ngày
// là idempotent — ghi đè, không cộng dồn.
func (s *MetricsService) RecomputeDailySummary(ctx context.Context, dateKey string) error {
	startMs, endMs, err := utility.DayBounds(dateKey)
	if err != nil {
		return common.NewError(common.ErrCodeValidation,
			fmt.Sprintf("khóa ngày không hợp lệ: %s", dateKey), common.StatusBadRequest, nil)
	}

	samples, err := s.Find(ctx, bson.M{
		"capturedAt": bson.M{"$gte": startMs, "$lt": endMs},
	}, options.Find().SetSort(bson.D{{Key: "capturedAt", Value: 1}}))
	if err != nil {
		return err
	}

	byPlatform := make(map[string][]metricsmodels.MetricSample)
	for _, sample := range samples {
		byPlatform[sample.Platform] = append(byPlatform[sample.Platform], sample)
	}
	// Bản ghi "all" gộp mọi platform của ngày
	byPlatform[metricsmodels.PlatformAll] = samples

	for platform, platformSamples := range byPlatform {
		summary := AggregateSamples(platformSamples)
		summary.Date = dateKey
		summary.Platform = platform

		if err := s.upsertSummary(ctx, summary); err != nil {
			return err
		}
	}

	return nil
}

// RecomputeRecentSummaries tính lại summary cho hôm nay và hôm qua (UTC).
// Cycle chạy sau nửa đêm vẫn bắt được samples cuối ngày hôm trước.
func (s *MetricsService) RecomputeRecentSummaries(ctx context.Context, now time.Time) error {
	for _, dateKey := range []string{
		utility.DateKey(now.AddDate(0, 0, -1)),
		utility.DateKey(now),
	} {
		if err := s.RecomputeDailySummary(ctx, dateKey); err != nil {
			return err
		}
	}
	return nil
}

// upsertSummary ghi một summary theo khóa (date, platform)
func (s *MetricsService) upsertSummary(ctx context.Context, summary metricsmodels.DailySummary) error {
	_, err := s.summaryService.Upsert(ctx,
		bson.M{"date": summary.Date, "platform": summary.Platform},
		&basesvc.UpdateData{
			Set: map[string]interface{}{
				"sampleCount":    summary.SampleCount,
				"likes":          summary.Likes,
				"comments":       summary.Comments,
				"shares":         summary.Shares,
				"saves":          summary.Saves,
				"impressions":    summary.Impressions,
				"reach":          summary.Reach,
				"clicks":         summary.Clicks,
				"engagementRate": summary.EngagementRate,
			},
			SetOnInsert: map[string]interface{}{
				"date":     summary.Date,
				"platform": summary.Platform,
			},
		},
	)
	return err
}

// ListSummaries trả về daily summaries theo khoảng ngày và platform (tùy chọn)
func (s *MetricsService) ListSummaries(ctx context.Context, fromDate, toDate, platform string) ([]metricsmodels.DailySummary, error) {
	filter := bson.M{}
	dateFilter := bson.M{}
	if fromDate != "" {
		dateFilter["$gte"] = fromDate
	}
	if toDate != "" {
		dateFilter["$lte"] = toDate
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}
	if platform != "" {
		filter["platform"] = platform
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "platform", Value: 1}})
	return s.summaryService.Find(ctx, filter, opts)
}

// ListSamplesByContent trả về lịch sử samples của một content, mới nhất trước
func (s *MetricsService) ListSamplesByContent(ctx context.Context, contentIDHex string) ([]metricsmodels.MetricSample, error) {
	contentID, err := primitive.ObjectIDFromHex(contentIDHex)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidation, "content id không hợp lệ", common.StatusBadRequest, nil)
	}
	opts := options.Find().SetSort(bson.D{{Key: "capturedAt", Value: -1}})
	return s.Find(ctx, bson.M{"contentId": contentID}, opts)
}
