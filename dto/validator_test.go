package dto

import "testing"

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"  reader  ", 30, "reader"},
		{`<script>"x";</script>`, 30, "scriptx/script"},
		{"abcdefghij", 5, "abcde"},
		{"عبدالله", 3, "عبد"},
		{"", 10, ""},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in, tc.max); got != tc.want {
			t.Errorf("SanitizeString(%q, %d): expected %q, got %q", tc.in, tc.max, tc.want, got)
		}
	}
}

func TestPasswordPolicy(t *testing.T) {
	cases := map[string]bool{
		"Str0ngPass": true,
		"abcdefg1":   true,
		"short1":     false,
		"abcdefgh":   false,
		"12345678":   false,
	}
	for password, valid := range cases {
		err := RegisterRequest{Email: "a@example.com", Username: "abc", Password: password}.Validate()
		if (err == nil) != valid {
			t.Errorf("%q: expected valid=%v, got %v", password, valid, err)
		}
	}
}

func TestValidationErrorMessages(t *testing.T) {
	err := LearningSessionRequest{SurahNumber: 1, AyahNumber: 1, SessionType: "dancing", DurationMinutes: 5}.Validate()
	if err == nil {
		t.Fatal("expected a validation error")
	}

	resp := CreateValidationErrorResponse(err)
	if resp.Code != 400 || len(resp.Errors) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Errors[0].Field != "SessionType" {
		t.Fatalf("unexpected field %q", resp.Errors[0].Field)
	}
}

func TestProgressRequestAllowsZeroExperience(t *testing.T) {
	req := ProgressRequest{SurahNumber: 1, AyahNumber: 1, DifficultyLevel: "beginner"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	req.ExperienceGained = -1
	if err := req.Validate(); err == nil {
		t.Fatal("negative experience must be rejected")
	}
}
