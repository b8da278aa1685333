package routes

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := generateOTP()
		if len(otp) != 6 {
			t.Fatalf("expected 6 digits, got %q", otp)
		}
		for _, c := range otp {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit in OTP %q", otp)
			}
		}
	}
}

func TestHashAndSaltPassword(t *testing.T) {
	hash, err := hashAndSaltPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")); err == nil {
		t.Fatal("wrong password verified")
	}
}
