package util

import "time"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 会话 Cookie
const (
	SessionCookie = "sid"
	SessionMaxAge = 24 * time.Hour
)
