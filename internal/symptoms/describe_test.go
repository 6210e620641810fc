package symptoms

import "testing"

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Descriptor
	}{
		{
			name:    "nothing to report",
			message: "hi",
			want:    Descriptor{},
		},
		{
			name:    "severity only",
			message: "Terrible headache",
			want:    Descriptor{Severity: "severe"},
		},
		{
			name:    "severe wins over mild",
			message: "mild cough but severe chest pain",
			want:    Descriptor{Severity: "severe"},
		},
		{
			name:    "all cues",
			message: "I get a slight headache every morning, started 3 days ago",
			want:    Descriptor{Severity: "mild", Frequency: "daily", Onset: "3 days ago"},
		},
		{
			name:    "duration phrase",
			message: "Fever for 2 weeks, comes and goes sometimes",
			want:    Descriptor{Frequency: "occasional", Onset: "for 2 weeks"},
		},
		{
			name:    "specific onset beats vague one",
			message: "recently my back pain started, 5 days ago",
			want:    Descriptor{Onset: "5 days ago"},
		},
		{
			name:    "yesterday",
			message: "constant nausea since yesterday",
			want:    Descriptor{Frequency: "constant", Onset: "yesterday"},
		},
		{
			name:    "possessive onset word",
			message: "I feel nowhere near today's level",
			want:    Descriptor{Onset: "today"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.message)
			if got != tt.want {
				t.Errorf("Describe(%q) = %+v, want %+v", tt.message, got, tt.want)
			}
		})
	}
}

func TestDescriptorString(t *testing.T) {
	tests := []struct {
		d    Descriptor
		want string
	}{
		{Descriptor{}, ""},
		{Descriptor{Severity: "severe"}, "severe"},
		{Descriptor{Severity: "mild", Frequency: "daily", Onset: "yesterday"}, "mild - daily - since yesterday"},
		{Descriptor{Onset: "this week"}, "since this week"},
	}

	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDescriptorIsZero(t *testing.T) {
	if !Describe("hello there").IsZero() {
		t.Error("expected no cues")
	}
	if Describe("sharp pain today").IsZero() {
		t.Error("expected an onset cue")
	}
}
