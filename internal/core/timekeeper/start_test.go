package timekeeper

import (
	"errors"
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{input: "09:30", wantHour: 9, wantMinute: 30},
		{input: "9:05", wantHour: 9, wantMinute: 5},
		{input: " 23:59 ", wantHour: 23, wantMinute: 59},
		{input: "00:00", wantHour: 0, wantMinute: 0},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "1230", wantErr: true},
		{input: "ab:cd", wantErr: true},
		{input: ":30", wantErr: true},
		{input: "123:4", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			hour, minute, err := ParseStartTime(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStartTime) {
					t.Fatalf("err=%v, want ErrInvalidStartTime", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStartTime: %v", err)
			}
			if hour != tt.wantHour || minute != tt.wantMinute {
				t.Fatalf("got %02d:%02d, want %02d:%02d", hour, minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestResolveStart(t *testing.T) {
	location := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 1, 15, 14, 47, 33, 120, location)

	got := ResolveStart(now, 9, 15)
	want := time.Date(2024, 1, 15, 9, 15, 0, 0, location)
	if !got.Equal(want) || got.Location() != location {
		t.Fatalf("ResolveStart=%v, want %v", got, want)
	}
}
