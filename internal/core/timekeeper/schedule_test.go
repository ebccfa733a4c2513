package timekeeper

import (
	"testing"
	"time"
)

func TestBuildSchedule_PomodoroScenario(t *testing.T) {
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)
	schedule := BuildSchedule(base, 25*time.Minute, 5*time.Minute, 3)

	want := [][2]int{{0, 1500}, {1800, 3300}, {3600, 5100}}
	if len(schedule) != len(want) {
		t.Fatalf("len=%d, want %d", len(schedule), len(want))
	}
	for index, pair := range want {
		gotStart := int(schedule[index].Start.Sub(base) / time.Second)
		gotEnd := int(schedule[index].End.Sub(base) / time.Second)
		if gotStart != pair[0] || gotEnd != pair[1] {
			t.Fatalf("session %d = (T+%d, T+%d), want (T+%d, T+%d)", index, gotStart, gotEnd, pair[0], pair[1])
		}
	}
}

func TestBuildSchedule_Invariants(t *testing.T) {
	base := time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)
	for _, work := range []int{1, 25, 50, 90} {
		for _, brk := range []int{1, 5, 10} {
			for sessions := 1; sessions <= 8; sessions++ {
				workDuration := time.Duration(work) * time.Minute
				breakDuration := time.Duration(brk) * time.Minute
				schedule := BuildSchedule(base, workDuration, breakDuration, sessions)

				if len(schedule) != sessions {
					t.Fatalf("work=%d break=%d: len=%d, want %d", work, brk, len(schedule), sessions)
				}
				if !schedule[0].Start.Equal(base) {
					t.Fatalf("first start=%v, want %v", schedule[0].Start, base)
				}
				for index, interval := range schedule {
					if interval.End.Sub(interval.Start) != workDuration {
						t.Fatalf("session %d lasts %v, want %v", index, interval.End.Sub(interval.Start), workDuration)
					}
					if index+1 < len(schedule) {
						if gap := schedule[index+1].Start.Sub(interval.End); gap != breakDuration {
							t.Fatalf("gap after session %d is %v, want %v", index, gap, breakDuration)
						}
					}
				}
			}
		}
	}
}

func TestBuildSchedule_SingleSessionHasNoTrailingBreak(t *testing.T) {
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	schedule := BuildSchedule(base, 50*time.Minute, 10*time.Minute, 1)
	if len(schedule) != 1 {
		t.Fatalf("len=%d, want 1", len(schedule))
	}
	if want := base.Add(50 * time.Minute); !schedule[0].End.Equal(want) {
		t.Fatalf("end=%v, want %v", schedule[0].End, want)
	}
}

func TestBuildSchedule_NoSessions(t *testing.T) {
	if schedule := BuildSchedule(time.Now(), time.Minute, time.Minute, 0); schedule != nil {
		t.Fatalf("schedule=%v, want nil", schedule)
	}
}
