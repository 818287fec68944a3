package textproc

import "testing"

func TestNoiseClassifier_IsNoise(t *testing.T) {
	c := NewNoiseClassifier(DefaultNoiseConfig())

	cases := []struct {
		candidate string
		noise     bool
	}{
		{"5 years experience", true},
		{"5 years of experience", true},
		{"Bachelor degree", true},
		{"bachelor degree", true},
		{"proven track record", true},
		{"remote work", true},
		{"12345", true},
		{"xy", true},
		{"R", false},
		{"Go", false},
		{"C#", false},
		{"AI", false},
		{"the and of", true},
		{"in the zone", true},
		{"Python", false},
		{"Django", false},
		{"REST API", false},
		{"machine learning", false},
	}

	for _, tc := range cases {
		if got := c.IsNoise(tc.candidate); got != tc.noise {
			t.Errorf("IsNoise(%q) = %t, want %t", tc.candidate, got, tc.noise)
		}
	}
}

func TestNoiseClassifier_WordBoundarySubstring(t *testing.T) {
	c := NewNoiseClassifier(NoiseConfig{Phrases: []string{"years experience"}})

	if !c.IsNoise("10 years experience required") {
		t.Fatalf("phrase inside candidate should be noise")
	}
	// candidate contained in a longer noise phrase, on word boundaries
	if !c.IsNoise("experience") {
		t.Fatalf("candidate inside phrase should be noise")
	}
	// boundary check: a compound name sharing letters is not noise
	if c.IsNoise("lightyears experienced") {
		t.Fatalf("partial-word overlap must not classify as noise")
	}
}
