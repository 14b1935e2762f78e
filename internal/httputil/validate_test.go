package httputil

import "testing"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/page", false},
		{"http://example.com/page", false},
		{"ftp://example.com/file", true},
		{"://bad", true},
		{"https://", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr = %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://meta.example.com/fetchUrl", false},
		{"http://meta.example.com/fetchUrl", true},
		{"https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateEndpoint(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoint(%q) error = %v, wantErr = %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestSecureURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/icon.png", true},
		{"http://insecure.example/icon.png", false},
		{"/favicon.ico", false},
		{"//cdn.example/icon.png", false},
		{"favicon.ico", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := SecureURL(tt.url); got != tt.want {
				t.Errorf("SecureURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
