package scoring

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestWeekdayStreakSkipsWeekend(t *testing.T) {
	// 2026-03-16 是周一；上周四、五和本周一都有登录，周末没有
	today := day(2026, time.March, 16)
	logins := []time.Time{
		day(2026, time.March, 16), // Mon
		day(2026, time.March, 13), // Fri
		day(2026, time.March, 12), // Thu
	}

	if got := WeekdayStreak(logins, today); got != 3 {
		t.Fatalf("expected streak 3 across the weekend, got %d", got)
	}
}

func TestWeekdayStreakStopsAtMissedWeekday(t *testing.T) {
	today := day(2026, time.March, 18) // Wed
	logins := []time.Time{
		day(2026, time.March, 18), // Wed
		// 周二缺席
		day(2026, time.March, 16), // Mon
	}

	if got := WeekdayStreak(logins, today); got != 1 {
		t.Fatalf("missed Tuesday must break the streak, got %d", got)
	}
}

func TestWeekdayStreakNoLoginToday(t *testing.T) {
	today := day(2026, time.March, 17) // Tue
	logins := []time.Time{day(2026, time.March, 16)}

	if got := WeekdayStreak(logins, today); got != 0 {
		t.Fatalf("no login today must be streak 0, got %d", got)
	}
}

func TestMostRecentMonday(t *testing.T) {
	// 周日属于上一周：距最近的周一 6 天
	sunday := day(2026, time.March, 22)
	monday := MostRecentMonday(sunday)
	if monday.Weekday() != time.Monday || monday.Day() != 16 {
		t.Fatalf("expected Monday the 16th, got %v", monday)
	}
	if monday.Hour() != 0 || monday.Minute() != 0 {
		t.Fatalf("monday must be truncated to midnight, got %v", monday)
	}

	if got := MostRecentMonday(day(2026, time.March, 16)); got.Day() != 16 {
		t.Fatalf("monday must map to itself, got %v", got)
	}
}

func TestWorkWeekDays(t *testing.T) {
	now := day(2026, time.March, 19) // Thu
	logins := []time.Time{
		day(2026, time.March, 16), // Mon
		day(2026, time.March, 18), // Wed
		day(2026, time.March, 14), // 上周六，不在本周窗口内
	}

	got := WorkWeekDays(logins, now)
	want := [5]bool{true, false, true, false, false}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
