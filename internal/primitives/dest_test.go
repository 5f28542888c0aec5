package primitives

import "testing"

func TestDestPackRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		dest   Dest
		packed int
	}{
		{"node", ToNode(3), 3},
		{"decision", ToDecision(2), -2},
		{"final", ToFinal(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dest.Pack(); got != tt.packed {
				t.Fatalf("Pack() = %d, want %d", got, tt.packed)
			}
			if got := UnpackDest(tt.packed); got != tt.dest {
				t.Errorf("UnpackDest(%d) = %v, want %v", tt.packed, got, tt.dest)
			}
		})
	}
}

func TestDestValid(t *testing.T) {
	if ToNode(0).Valid() {
		t.Error("node 0 must be invalid")
	}
	if ToDecision(-1).Valid() {
		t.Error("negative decision id must be invalid")
	}
	if !ToFinal().Valid() {
		t.Error("final must be valid")
	}
	if got := ToDecision(4).String(); got != "decision 4" {
		t.Errorf("String() = %q", got)
	}
}
