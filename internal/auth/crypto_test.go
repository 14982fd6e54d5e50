package auth

import "testing"

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("some-share-token")
	b := HashToken("some-share-token")

	if a != b {
		t.Error("hashing the same token twice must agree")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, expected 64 hex characters", len(a))
	}
	if a == "some-share-token" {
		t.Error("hash must differ from the input")
	}
	if HashToken("another-token") == a {
		t.Error("distinct tokens must not collide")
	}
}

func TestCompareHashes(t *testing.T) {
	h := HashToken("token")

	if !compareHashes(h, h) {
		t.Error("identical hashes should compare equal")
	}
	if compareHashes(h, HashToken("other")) {
		t.Error("different hashes should compare unequal")
	}
	if compareHashes(h, h[:32]) {
		t.Error("hashes of different length should compare unequal")
	}
	if compareHashes("", h) {
		t.Error("empty hash should compare unequal")
	}
}

func TestConstantTimeHashAndCompare(t *testing.T) {
	expected := HashToken("token")

	if !ConstantTimeHashAndCompare("token", expected) {
		t.Error("matching input should compare equal")
	}
	if ConstantTimeHashAndCompare("wrong", expected) {
		t.Error("mismatching input should compare unequal")
	}
	if ConstantTimeHashAndCompare("token", "") {
		t.Error("empty expected hash always fails")
	}
}
