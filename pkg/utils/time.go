package utils

import "time"

// NowUnixMillis is the timestamp format persisted for audit columns.
func NowUnixMillis() int64 {
	return time.Now().UnixMilli()
}
