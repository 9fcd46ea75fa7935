package sim

import "testing"

func TestNextPhase_Table(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		in    PhaseInputs
		want  Phase
	}{
		{"initial with full core starts processing", PhaseInitial, PhaseInputs{Time: 0, CoreCount: 3, BatchCount: 3}, PhaseProcessing},
		{"initial with partial core stays", PhaseInitial, PhaseInputs{Time: 0, CoreCount: 2, BatchCount: 3}, PhaseInitial},
		{"processing before end stays", PhaseProcessing, PhaseInputs{Time: 7, EndTime: 8, CoreCount: 3, BatchCount: 3}, PhaseProcessing},
		{"processing at end unloads", PhaseProcessing, PhaseInputs{Time: 8, EndTime: 8, CoreCount: 3, BatchCount: 3}, PhaseWaiting},
		{"processing past end does not fire", PhaseProcessing, PhaseInputs{Time: 9, EndTime: 8, CoreCount: 3, BatchCount: 3}, PhaseProcessing},
		{"waiting full core inside refuel time", PhaseWaiting, PhaseInputs{Time: 9, EndTime: 8, RefuelTime: 2, CoreCount: 3, BatchCount: 3}, PhaseWaiting},
		{"waiting full core at refuel boundary", PhaseWaiting, PhaseInputs{Time: 10, EndTime: 8, RefuelTime: 2, CoreCount: 3, BatchCount: 3}, PhaseProcessing},
		{"waiting partial core after refuel time", PhaseWaiting, PhaseInputs{Time: 20, EndTime: 8, RefuelTime: 2, CoreCount: 2, BatchCount: 3}, PhaseWaiting},
		{"waiting zero refuel time restarts same tick", PhaseWaiting, PhaseInputs{Time: 8, EndTime: 8, CoreCount: 3, BatchCount: 3}, PhaseProcessing},
		{"unknown phase has no edges", Phase(7), PhaseInputs{Time: 8, EndTime: 8, CoreCount: 3, BatchCount: 3}, Phase(7)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextPhase(tc.phase, tc.in); got != tc.want {
				t.Errorf("NextPhase(%v, %+v) = %v, want %v", tc.phase, tc.in, got, tc.want)
			}
		})
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseInitial.String() != "initialization" {
		t.Errorf("PhaseInitial.String() = %q", PhaseInitial.String())
	}
	if PhaseProcessing.String() != "processing batch(es)" {
		t.Errorf("PhaseProcessing.String() = %q", PhaseProcessing.String())
	}
	if PhaseWaiting.String() != "waiting for fuel" {
		t.Errorf("PhaseWaiting.String() = %q", PhaseWaiting.String())
	}
	if Phase(42).String() != "unknown" {
		t.Errorf("Phase(42).String() = %q, want unknown", Phase(42).String())
	}
}
