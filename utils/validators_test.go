package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "john.doe+walks@example.com", "x_1@sub.domain.org"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plain", "@no-user.com", "user@", "user@domain", "user @domain.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abc123", true},
		{"abc123!", true},
		{"short", false},
		{"alllowercase", false},
		{"abc12", false},
	}

	for _, tt := range tests {
		if got := IsValidPassword(tt.password); got != tt.want {
			t.Errorf("IsValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestCoordinateValidators(t *testing.T) {
	if !IsValidLatitude(45.0) || !IsValidLatitude(-90) || !IsValidLatitude(90) {
		t.Error("valid latitudes rejected")
	}
	if IsValidLatitude(90.1) || IsValidLatitude(-91) {
		t.Error("invalid latitudes accepted")
	}
	if !IsValidLongitude(-180) || !IsValidLongitude(180) {
		t.Error("valid longitudes rejected")
	}
	if IsValidLongitude(181) {
		t.Error("invalid longitude accepted")
	}
}

func TestIsValidWalkDuration(t *testing.T) {
	for _, minutes := range []int{15, 60, 240} {
		if !IsValidWalkDuration(minutes) {
			t.Errorf("IsValidWalkDuration(%d) = false, want true", minutes)
		}
	}
	for _, minutes := range []int{0, 14, 241, -30} {
		if IsValidWalkDuration(minutes) {
			t.Errorf("IsValidWalkDuration(%d) = true, want false", minutes)
		}
	}
}
