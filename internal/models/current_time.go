package models

import "time"

// CurrentTimeModel Current time specific model
type CurrentTimeModel struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
	TimeZone     string `json:"timeZone"`
}

// NewCurrentTime reports t in the zone departure boards are published in.
func NewCurrentTime(t time.Time) CurrentTimeModel {
	return CurrentTimeModel{
		ReadableTime: t.Format(time.RFC3339),
		Time:         t.UnixMilli(),
		TimeZone:     t.Location().String(),
	}
}
