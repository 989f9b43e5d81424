package utility

import (
	"testing"
	"time"
)

func TestDateKey_UTC(t *testing.T) {
	// 23:30 ngày 15 ở UTC-7 là 06:30 ngày 16 UTC
	loc := time.FixedZone("UTC-7", -7*3600)
	ts := time.Date(2026, 3, 15, 23, 30, 0, 0, loc)
	if got := DateKey(ts); got != "2026-03-16" {
		t.Errorf("DateKey phải quy về UTC, nhận %q", got)
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2026-03-16")
	if err != nil {
		t.Fatalf("DayBounds trả về lỗi: %v", err)
	}
	if end-start != 24*time.Hour.Milliseconds() {
		t.Errorf("khoảng ngày phải đúng 24 giờ, nhận %d ms", end-start)
	}

	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if start != day.UnixMilli() {
		t.Errorf("start phải là 00:00 UTC của ngày, nhận %d", start)
	}
}

func TestDayBounds_InvalidKey(t *testing.T) {
	if _, _, err := DayBounds("16/03/2026"); err == nil {
		t.Error("khóa ngày sai định dạng phải trả về lỗi")
	}
}
