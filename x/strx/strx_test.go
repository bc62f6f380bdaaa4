package strx

import "testing"

func TestCoalesce(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"", ""}, ""},
		{[]string{"", "unknown"}, "unknown"},
		{[]string{"pulse-single", "unknown"}, "pulse-single"},
		{[]string{"", "", "R+B"}, "R+B"},
	}
	for _, tc := range cases {
		if got := Coalesce(tc.in...); got != tc.want {
			t.Errorf("Coalesce(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
