package commerce

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"alice@example.com",
		"first.last+tag@sub.domain.org",
		"user_99%x@host-name.io",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@no-local.com",
		"one@two@three.com",
		"short@tld.x",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}
