package service

import "testing"

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(4)

	digest, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "s3cret" {
		t.Fatal("digest equals plaintext")
	}
	if !hasher.Verify("s3cret", digest) {
		t.Fatal("correct password rejected")
	}
	if hasher.Verify("wrong", digest) {
		t.Fatal("wrong password accepted")
	}
}

func TestPasswordHasher_SaltedOutput(t *testing.T) {
	hasher := NewPasswordHasher(4)

	a, _ := hasher.Hash("same-password")
	b, _ := hasher.Hash("same-password")
	if a == b {
		t.Fatal("expected distinct digests for repeated input")
	}
}

func TestPasswordHasher_CostOutOfRange(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of failing.
	hasher := NewPasswordHasher(99)
	digest, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !hasher.Verify("pw", digest) {
		t.Fatal("digest does not verify")
	}
}
