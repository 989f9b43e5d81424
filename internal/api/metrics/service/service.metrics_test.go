// Package metricssvc - Test công thức engagement rate và aggregate của daily summary.
package metricssvc

import (
	"testing"

	metricsmodels "pullnova_marketing/internal/api/metrics/models"
)

func TestComputeEngagementRate_ZeroReach(t *testing.T) {
	if rate := ComputeEngagementRate(10, 5, 2, 3, 0); rate != 0 {
		t.Errorf("reach = 0 phải cho engagement rate = 0, nhận %v", rate)
	}
}

func TestComputeEngagementRate_KnownValue(t *testing.T) {
	// (10+5+2+3)/100 * 100 = 20.00
	if rate := ComputeEngagementRate(10, 5, 2, 3, 100); rate != 20.0 {
		t.Errorf("engagement rate phải là 20.00, nhận %v", rate)
	}
}

func TestComputeEngagementRate_Fractional(t *testing.T) {
	// (1+1+0+0)/3 * 100 ≈ 66.66...
	rate := ComputeEngagementRate(1, 1, 0, 0, 3)
	if rate < 66.6 || rate > 66.7 {
		t.Errorf("engagement rate phải xấp xỉ 66.67, nhận %v", rate)
	}
}

func TestAggregateSamples_Empty(t *testing.T) {
	summary := AggregateSamples(nil)
	if summary.SampleCount != 0 {
		t.Errorf("sampleCount phải là 0, nhận %d", summary.SampleCount)
	}
	if summary.EngagementRate != 0 {
		t.Errorf("engagement rate của tập rỗng phải là 0, nhận %v", summary.EngagementRate)
	}
}

func TestAggregateSamples_Totals(t *testing.T) {
	samples := []metricsmodels.MetricSample{
		{Likes: 10, Comments: 5, Shares: 2, Saves: 3, Impressions: 200, Reach: 100, Clicks: 7},
		{Likes: 20, Comments: 10, Shares: 4, Saves: 6, Impressions: 400, Reach: 300, Clicks: 13},
	}
	summary := AggregateSamples(samples)

	if summary.SampleCount != 2 {
		t.Errorf("sampleCount phải là 2, nhận %d", summary.SampleCount)
	}
	if summary.Likes != 30 || summary.Comments != 15 || summary.Shares != 6 || summary.Saves != 9 {
		t.Errorf("tổng tương tác sai: %+v", summary)
	}
	if summary.Impressions != 600 || summary.Reach != 400 || summary.Clicks != 20 {
		t.Errorf("tổng hiển thị/tiếp cận/click sai: %+v", summary)
	}
	// (30+15+6+9)/400 * 100 = 15.0
	if summary.EngagementRate != 15.0 {
		t.Errorf("engagement rate của summary phải là 15.0, nhận %v", summary.EngagementRate)
	}
}

func TestAggregateSamples_RecomputeOverwritesNotAccumulates(t *testing.T) {
	samples := []metricsmodels.MetricSample{
		{Likes: 10, Reach: 100},
	}
	first := AggregateSamples(samples)
	second := AggregateSamples(samples)
	if first.Likes != second.Likes || first.EngagementRate != second.EngagementRate {
		t.Error("aggregate cùng tập samples phải cho kết quả giống hệt nhau")
	}
}
