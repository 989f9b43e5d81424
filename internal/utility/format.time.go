package utility

import "time"

// DateKey trả về khóa ngày dạng YYYY-MM-DD (UTC) dùng cho daily summary
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayBounds trả về mốc đầu ngày và đầu ngày hôm sau (UTC, UnixMilli)
// cho một khóa ngày, dùng để lọc các metric samples trong ngày đó.
func DayBounds(dateKey string) (int64, int64, error) {
	day, err := time.ParseInLocation("2006-01-02", dateKey, time.UTC)
	if err != nil {
		return 0, 0, err
	}
	return day.UnixMilli(), day.Add(24 * time.Hour).UnixMilli(), nil
}
