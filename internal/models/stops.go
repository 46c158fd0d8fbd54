package models

import (
	"transitboard.org/internal/arrivals"
)

const (
	StopStatusOK          = "ok"
	StopStatusUnavailable = "unavailable"
	StopStatusPending     = "pending"
)

type ArrivalModel struct {
	VehicleID     string `json:"vehicleId"`
	TimeToArrival int    `json:"timeToArrival"`
	Minutes       int    `json:"minutes"`
	Platform      string `json:"platform,omitempty"`
}

// StopModel is a configured stop together with its latest snapshot. Provider
// error details are never included.
type StopModel struct {
	Index       int            `json:"index"`
	Name        string         `json:"name"`
	ID          string         `json:"id"`
	Destination string         `json:"destination,omitempty"`
	VehicleType string         `json:"vehicleType"`
	WalkingTime int            `json:"walkingTime"`
	Platforms   []string       `json:"platforms,omitempty"`
	InfoService string         `json:"infoService"`
	Status      string         `json:"status"`
	Summary     string         `json:"summary"`
	FetchedAt   int64          `json:"fetchedAt"`
	Arrivals    []ArrivalModel `json:"arrivals"`
}

func NewStopModel(index int, snap arrivals.Snapshot) StopModel {
	cfg := snap.Stop
	model := StopModel{
		Index:       index,
		Name:        cfg.Name,
		ID:          cfg.ID,
		Destination: cfg.Destination,
		VehicleType: cfg.VehicleType,
		WalkingTime: cfg.WalkingTime,
		Platforms:   cfg.Platforms,
		InfoService: cfg.Provider.String(),
		Arrivals:    make([]ArrivalModel, 0, len(snap.Arrivals)),
	}

	switch {
	case snap.FetchedAt.IsZero():
		model.Status = StopStatusPending
		return model
	case snap.Failed():
		model.Status = StopStatusUnavailable
	default:
		model.Status = StopStatusOK
	}

	model.FetchedAt = snap.FetchedAt.UnixMilli()
	model.Summary = arrivals.Format(snap)
	for _, a := range snap.Arrivals {
		model.Arrivals = append(model.Arrivals, ArrivalModel{
			VehicleID:     a.VehicleID,
			TimeToArrival: a.SecondsToArrival,
			Minutes:       a.Minutes(),
			Platform:      a.Platform,
		})
	}
	return model
}

// NewStopModels keeps the order of snaps.
func NewStopModels(snaps []arrivals.Snapshot) []StopModel {
	out := make([]StopModel, 0, len(snaps))
	for i, snap := range snaps {
		out = append(out, NewStopModel(i, snap))
	}
	return out
}
