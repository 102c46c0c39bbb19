package turtle

import (
	"errors"
	"strings"
	"testing"
)

func TestSecurityLimitsMaxLineBytes(t *testing.T) {
	long := strings.Repeat("a", 200)
	src := `@prefix : <http://x/> . :s :p "` + long + `" .`
	_, _, err := ParseAll(strings.NewReader(src), WithMaxLineBytes(50))
	if err == nil {
		t.Fatal("expected ErrLineTooLong, got nil")
	}
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("got %v, want ErrLineTooLong", err)
	}
}

func TestSecurityLimitsMaxLineBytesDisabledByZero(t *testing.T) {
	long := strings.Repeat("a", 200)
	src := `@prefix : <http://x/> . :s :p "` + long + `" .`
	_, _, err := ParseAll(strings.NewReader(src), WithMaxLineBytes(0))
	if err != nil {
		t.Fatalf("unexpected error with limit disabled: %v", err)
	}
}

func TestSecurityLimitsMaxStatementBytes(t *testing.T) {
	var b strings.Builder
	b.WriteString("@prefix : <http://x/> .\n:s :p (\n")
	for i := 0; i < 50; i++ {
		b.WriteString(":a\n")
	}
	b.WriteString(") .\n")
	_, _, err := ParseAll(strings.NewReader(b.String()), WithMaxStatementBytes(100))
	if err == nil {
		t.Fatal("expected ErrStatementTooLong, got nil")
	}
	if !errors.Is(err, ErrStatementTooLong) {
		t.Fatalf("got %v, want ErrStatementTooLong", err)
	}
}

func TestSecurityLimitsMaxStatementBytesResetsPerStatement(t *testing.T) {
	src := `@prefix : <http://x/> . :a :b :c . :d :e :f .`
	_, _, err := ParseAll(strings.NewReader(src), WithMaxStatementBytes(1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSecurityLimitsDefaults(t *testing.T) {
	cfg := defaultConfig()
	if cfg.MaxLineBytes != DefaultMaxLineBytes {
		t.Errorf("MaxLineBytes = %d, want %d", cfg.MaxLineBytes, DefaultMaxLineBytes)
	}
	if cfg.MaxStatementBytes != DefaultMaxStatementBytes {
		t.Errorf("MaxStatementBytes = %d, want %d", cfg.MaxStatementBytes, DefaultMaxStatementBytes)
	}
}
