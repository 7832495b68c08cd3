package camera

import "testing"

func TestModeNext(t *testing.T) {
	tests := []struct {
		in, want Mode
	}{
		{ModeOrbit, ModeDrone},
		{ModeDrone, ModeFirstPerson},
		{ModeFirstPerson, ModeOrbit},
		{Mode(42), ModeOrbit},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%v.Next() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"orbit", ModeOrbit, false},
		{"Drone", ModeDrone, false},
		{"first_person", ModeFirstPerson, false},
		{"fps", ModeFirstPerson, false},
		{" walk ", ModeFirstPerson, false},
		{"helicopter", ModeOrbit, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeStringRoundTrip(t *testing.T) {
	for m := ModeOrbit; m < modeCount; m++ {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if Mode(-1).Valid() {
		t.Error("Mode(-1) should be invalid")
	}
}
