// Package ptr builds pointers to literals, mostly for optional config fields
package ptr

import "time"

func String(v string) *string { return &v }

func Int(v int) *int { return &v }

func Int64(v int64) *int64 { return &v }

// Time copies t; it returns nil for a nil t
func Time(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
