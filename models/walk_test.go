package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWalkTimeStatusAt(t *testing.T) {
	start := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	walk := Walk{Date: start, DurationMinutes: 60}

	tests := []struct {
		name string
		now  time.Time
		want WalkTimeStatus
	}{
		{"before start", start.Add(-time.Hour), WalkTimeStatusFuture},
		{"exactly at start", start, WalkTimeStatusActive},
		{"mid walk", start.Add(30 * time.Minute), WalkTimeStatusActive},
		{"exactly at end", start.Add(60 * time.Minute), WalkTimeStatusPast},
		{"after end", start.Add(2 * time.Hour), WalkTimeStatusPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := walk.TimeStatusAt(tt.now); got != tt.want {
				t.Errorf("TimeStatusAt(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestLatLngUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LatLng
		wantErr bool
	}{
		{"structured object", `{"latitude": 40.7, "longitude": -74.0}`, LatLng{40.7, -74.0}, false},
		{"legacy string", `"40.7,-74.0"`, LatLng{40.7, -74.0}, false},
		{"legacy string with spaces", `"40.7, -74.0"`, LatLng{40.7, -74.0}, false},
		{"garbage string", `"not-a-location"`, LatLng{}, true},
		{"too many parts", `"1,2,3"`, LatLng{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got LatLng
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
