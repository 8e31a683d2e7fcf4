package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-06-03"); !ok {
		t.Error("IsValidDate(2024-06-03) = false, want true")
	}
	for _, input := range []string{"2024-13-03", "03-06-2024", "2024-06-03T09:00:00Z", ""} {
		if _, ok := IsValidDate(input); ok {
			t.Errorf("IsValidDate(%q) = true, want false", input)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"2024-01-15", "2024-01-15 10:30:00", ""}
	for _, input := range valid {
		if _, ok := IsValidDateTime(input); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", input)
		}
	}
	for _, input := range invalid {
		if _, ok := IsValidDateTime(input); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", input)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123E4567-E89B-42D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, input := range valid {
		if !IsValidUUID(input) {
			t.Errorf("IsValidUUID(%q) = false, want true", input)
		}
	}
	for _, input := range invalid {
		if IsValidUUID(input) {
			t.Errorf("IsValidUUID(%q) = true, want false", input)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "staff_id", Message: "staff_id is required"},
		{Field: "start_time", Message: "start_time must be before end_time"},
	}
	if errs.Error() != "staff_id: staff_id is required; start_time: start_time must be before end_time" {
		t.Errorf("unexpected Error(): %s", errs.Error())
	}
	m := errs.ToMap()
	if len(m) != 2 || m["staff_id"] == "" {
		t.Errorf("unexpected ToMap(): %v", m)
	}
}
