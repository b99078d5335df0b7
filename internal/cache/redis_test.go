package cache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestIsNilError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"redis nil", redis.Nil, true},
		{"wrapped nil", fmt.Errorf("get: %w", redis.Nil), true},
		{"other error", errors.New("connection refused"), false},
		{"no error", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNilError(tt.err); got != tt.want {
				t.Errorf("IsNilError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewClientUnreachable(t *testing.T) {
	if _, err := NewClient(Config{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("NewClient() should fail when redis is unreachable")
	}
}
