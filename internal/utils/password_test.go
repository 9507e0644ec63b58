package utils

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("password stored in the clear")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("wrong password accepted")
	}
}
