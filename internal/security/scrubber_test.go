package security

import (
	"strings"
	"testing"
)

func TestScrub(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		mustHide string
	}{
		{
			name:     "postgres url",
			input:    "failed to connect to postgres://skills:hunter22@db:5432/skills",
			want:     "failed to connect to postgres://skills:***REDACTED***@db:5432/skills",
			mustHide: "hunter22",
		},
		{
			name:     "redis url without user",
			input:    "dial redis://:s3cr3t@cache:6379/0",
			want:     "dial redis://:***REDACTED***@cache:6379/0",
			mustHide: "s3cr3t",
		},
		{
			name:     "keyword dsn",
			input:    "host=db user=skills password=hunter22 dbname=skills",
			want:     "host=db user=skills password=***REDACTED*** dbname=skills",
			mustHide: "hunter22",
		},
		{
			name:     "quoted keyword dsn",
			input:    "host=db password='two words' sslmode=disable",
			want:     "host=db password=***REDACTED*** sslmode=disable",
			mustHide: "two words",
		},
		{
			name:     "yaml password",
			input:    "password: hunter22",
			want:     "password: ***REDACTED***",
			mustHide: "hunter22",
		},
		{
			name:     "json password",
			input:    `{"password": "hunter22", "db": 0}`,
			want:     `{"password": ***REDACTED***, "db": 0}`,
			mustHide: "hunter22",
		},
		{
			name:  "nothing sensitive",
			input: "connecting to redis at localhost:6379",
			want:  "connecting to redis at localhost:6379",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scrub(tt.input)
			if got != tt.want {
				t.Errorf("Scrub(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if tt.mustHide != "" && strings.Contains(got, tt.mustHide) {
				t.Errorf("Scrub(%q) leaked %q", tt.input, tt.mustHide)
			}
		})
	}
}

func TestRedactDSN(t *testing.T) {
	tests := []struct {
		name  string
		dsn   string
		want  string
		leaks string
	}{
		{
			name:  "url with password",
			dsn:   "postgres://skills:hunter22@db:5432/skills?sslmode=disable",
			want:  "postgres://skills:***REDACTED***@db:5432/skills?sslmode=disable",
			leaks: "hunter22",
		},
		{
			name: "url without password",
			dsn:  "postgres://skills@db:5432/skills",
			want: "postgres://skills@db:5432/skills",
		},
		{
			name:  "password query parameter",
			dsn:   "postgres://db/skills?password=hunter22",
			leaks: "hunter22",
		},
		{
			name:  "keyword form",
			dsn:   "host=db password=hunter22",
			want:  "host=db password=***REDACTED***",
			leaks: "hunter22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RedactDSN(tt.dsn)
			if tt.want != "" && got != tt.want {
				t.Errorf("RedactDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
			if tt.leaks != "" && strings.Contains(got, tt.leaks) {
				t.Errorf("RedactDSN(%q) leaked %q: %q", tt.dsn, tt.leaks, got)
			}
		})
	}
}
