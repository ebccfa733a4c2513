//go:build darwin

package platform

import "testing"

func TestSleepDisabled(t *testing.T) {
	cases := map[string]bool{
		"System-wide power settings:\n SleepDisabled\t\t1\n": true,
		"System-wide power settings:\n SleepDisabled\t\t0\n": false,
		"Currently in use:\n sleep                1\n":       false,
		"": false,
	}
	for output, want := range cases {
		if got := sleepDisabled(output); got != want {
			t.Fatalf("sleepDisabled(%q)=%v, want %v", output, got, want)
		}
	}
}
