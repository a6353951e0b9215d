package models

import "testing"

func TestCreateUserRequestValidate(t *testing.T) {
	cases := []struct {
		username string
		password string
		ok       bool
	}{
		{"tester", "secret123", true},
		{"ab_1", "12345678", true},
		{"  tester  ", "secret123", true}, // trim sonrası geçerli
		{"ab", "secret123", false},        // çok kısa
		{"user name", "secret123", false}, // boşluk yasak
		{"user-name", "secret123", false}, // tire yasak
		{"tester", "1234567", false},      // şifre çok kısa
		{"thisusernameiswaytoolong", "secret123", false},
	}
	for i, c := range cases {
		req := &CreateUserRequest{Username: c.username, Password: c.password}
		err := req.Validate()
		if c.ok && err != nil {
			t.Fatalf("case %d expected ok, got err: %v", i, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("case %d expected error, got nil", i)
		}
	}
}

func TestCreatePostRequestValidate(t *testing.T) {
	long := make([]rune, 2001)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		content string
		ok      bool
	}{
		{"merhaba", true},
		{"  boşluklu  ", true},
		{"", false},
		{"   ", false}, // sadece whitespace
		{string(long), false},
	}
	for i, c := range cases {
		req := &CreatePostRequest{Content: c.content}
		err := req.Validate()
		if c.ok && err != nil {
			t.Fatalf("case %d expected ok, got err: %v", i, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("case %d expected error, got nil", i)
		}
	}
}
