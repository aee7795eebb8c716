package main

import "testing"

func TestTrimWhitespace(t *testing.T) {
	in := "  first   line \r\n\r\n\n  second\tline\n   \n"
	if got := trimWhitespace(in); got != "first line\nsecond line" {
		t.Fatalf("trimWhitespace = %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("مرحبا بالعالم", 5); got != "مرحبا" {
		t.Fatalf("truncateRunes = %q", got)
	}
	if got := truncateRunes("short", 10); got != "short" {
		t.Fatalf("truncateRunes = %q", got)
	}
}
