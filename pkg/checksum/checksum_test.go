package checksum

import (
	"strings"
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		kind  Kind
		want  bool
	}{
		{"md5 ok", "d41d8cd98f00b204e9800998ecf8427e", MD5, true},
		{"md5 short", "d41d8cd98f00b204e9800998ecf8427", MD5, false},
		{"md5 long", "d41d8cd98f00b204e9800998ecf8427ee", MD5, false},
		{"md5 non-hex", "z41d8cd98f00b204e9800998ecf8427e", MD5, false},
		{"md5 uppercase", "D41D8CD98F00B204E9800998ECF8427E", MD5, false},
		{"md5 empty", "", MD5, false},
		{"sha256 ok", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256, true},
		{"sha256 as md5", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", MD5, false},
		{"sha256 short", "e3b0c44298fc1c149afbf4c8996fb924", SHA256, false},
		{"sha256 trailing newline", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855\n", SHA256, false},
		{"unknown kind", "d41d8cd98f00b204e9800998ecf8427e", Kind("sha1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.value, tt.kind); got != tt.want {
				t.Errorf("IsValid(%q, %s) = %v, want %v", tt.value, tt.kind, got, tt.want)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	sums, err := Calculate(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if sums.MD5 != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("MD5 = %s", sums.MD5)
	}
	if sums.SHA256 != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("SHA256 = %s", sums.SHA256)
	}
	if sums.Size != 0 {
		t.Errorf("Size = %d, want 0", sums.Size)
	}

	sums, err = Calculate(strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if !IsValidMD5(sums.MD5) || !IsValidSHA256(sums.SHA256) {
		t.Errorf("computed digests should be well-formed: %+v", sums)
	}
	if sums.Size != 5 {
		t.Errorf("Size = %d, want 5", sums.Size)
	}
}
