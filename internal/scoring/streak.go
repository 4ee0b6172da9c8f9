package scoring

import "time"

// 日历相关的纯函数。"今天"一律由调用方注入，便于测试且不依赖系统时钟。

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekdayStreak 计算以 today 结尾的工作日连续登录天数。
// 周六周日既不计数也不中断，遇到第一个没有登录的工作日即停止。
// 最多回看一年。
func WeekdayStreak(logins []time.Time, today time.Time) int {
	loginDays := make(map[string]bool, len(logins))
	for _, t := range logins {
		loginDays[dayKey(t)] = true
	}

	streak := 0
	for i := 0; i < 365; i++ {
		d := today.AddDate(0, 0, -i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if !loginDays[dayKey(d)] {
			break
		}
		streak++
	}
	return streak
}

// MostRecentMonday 返回 now 所在日历周的周一零点。
// 周日视为距最近周一 6 天，即仍算上一周。
func MostRecentMonday(now time.Time) time.Time {
	daysFromMonday := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		daysFromMonday = 6
	}
	d := now.AddDate(0, 0, -daysFromMonday)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// WorkWeekDays 本日历周周一到周五每天是否有登录
func WorkWeekDays(logins []time.Time, now time.Time) [5]bool {
	loginDays := make(map[string]bool, len(logins))
	for _, t := range logins {
		loginDays[dayKey(t)] = true
	}

	monday := MostRecentMonday(now)
	var days [5]bool
	for i := 0; i < 5; i++ {
		days[i] = loginDays[dayKey(monday.AddDate(0, 0, i))]
	}
	return days
}
