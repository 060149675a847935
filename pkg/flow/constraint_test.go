package flow

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		c           Constraint
		start, end  int
		want        int
		wantBounded bool
	}{
		{"exact", ExactOf(100), 10, 5, 85, true},
		{"at most", AtMostOf(100), 0, 0, 100, true},
		{"unspecified", UnspecifiedConstraint(), 10, 10, Unbounded, false},
		{"padding exceeds size", AtMostOf(10), 8, 8, 0, true},
		{"negative value", ExactOf(-20), 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bounded := Resolve(tt.c, tt.start, tt.end)
			if got != tt.want || bounded != tt.wantBounded {
				t.Errorf("Resolve() = %d, %v, want %d, %v", got, bounded, tt.want, tt.wantBounded)
			}
		})
	}
}

func TestChildConstraint(t *testing.T) {
	tests := []struct {
		name    string
		parent  Constraint
		padding int
		dim     Dimension
		want    Constraint
	}{
		{"fixed ignores parent", AtMostOf(50), 10, Fixed(80), ExactOf(80)},
		{"fixed negative", AtMostOf(50), 0, Fixed(-1), ExactOf(0)},
		{"match exact", ExactOf(100), 20, Match(), ExactOf(80)},
		{"match at most", AtMostOf(100), 20, Match(), AtMostOf(80)},
		{"match unspecified", UnspecifiedConstraint(), 20, Match(), UnspecifiedConstraint()},
		{"wrap exact", ExactOf(100), 20, Wrap(), AtMostOf(80)},
		{"wrap at most", AtMostOf(100), 0, Wrap(), AtMostOf(100)},
		{"wrap unspecified", UnspecifiedConstraint(), 0, Wrap(), UnspecifiedConstraint()},
		{"wrap clamps", AtMostOf(10), 30, Wrap(), AtMostOf(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChildConstraint(tt.parent, tt.padding, tt.dim); got != tt.want {
				t.Errorf("ChildConstraint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"exact", Exact, false},
		{"at_most", AtMost, false},
		{"unspecified", Unspecified, false},
		{"", Unspecified, false},
		{"EXACT", Unspecified, true},
		{"wrap", Unspecified, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConstraintString(t *testing.T) {
	if got := AtMostOf(5).String(); got != "at_most(5)" {
		t.Errorf("String() = %q", got)
	}
	if got := UnspecifiedConstraint().String(); got != "unspecified" {
		t.Errorf("String() = %q", got)
	}
}
