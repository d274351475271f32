package ledger

import "testing"

func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("Jane", "Customer Name"); err != nil {
		t.Errorf("ValidateRequired(%q) error = %v, want nil", "Jane", err)
	}

	for _, v := range []string{"", "   ", "\t\n"} {
		err := ValidateRequired(v, "Customer Name")
		if err == nil {
			t.Errorf("ValidateRequired(%q) error = nil, want error", v)
			continue
		}
		if err.Error() != "Customer Name is required" {
			t.Errorf("ValidateRequired(%q) message = %q", v, err.Error())
		}
	}
}

func TestValidateMobileNumber_Valid(t *testing.T) {
	for _, v := range []string{"1234567890", "919876543210", "123456789012345"} {
		if err := ValidateMobileNumber(v); err != nil {
			t.Errorf("ValidateMobileNumber(%q) error = %v, want nil", v, err)
		}
	}
}

func TestValidateMobileNumber_Messages(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"", "Mobile Number is required"},
		{"12345abcde", "Mobile Number must contain only digits"},
		{"+911234567890", "Mobile Number must contain only digits"},
		{"123456789", "Mobile Number must be between 10 and 15 digits"},
		{"1234567890123456", "Mobile Number must be between 10 and 15 digits"},
	}
	for _, tc := range cases {
		err := ValidateMobileNumber(tc.value)
		if err == nil {
			t.Errorf("ValidateMobileNumber(%q) error = nil, want %q", tc.value, tc.want)
			continue
		}
		if err.Error() != tc.want {
			t.Errorf("ValidateMobileNumber(%q) message = %q, want %q", tc.value, err.Error(), tc.want)
		}
	}
}

func TestValidateAmount_Valid(t *testing.T) {
	for _, v := range []string{"1", "500", "99.50", "0.01"} {
		if err := ValidateAmount(v); err != nil {
			t.Errorf("ValidateAmount(%q) error = %v, want nil", v, err)
		}
	}
}

func TestValidateAmount_Messages(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"", "Amount is required"},
		{"  ", "Amount is required"},
		{"abc", "Amount must be a valid number"},
		{"12x", "Amount must be a valid number"},
		{"0", "Amount must be greater than 0"},
		{"-5", "Amount must be greater than 0"},
	}
	for _, tc := range cases {
		err := ValidateAmount(tc.value)
		if err == nil {
			t.Errorf("ValidateAmount(%q) error = nil, want %q", tc.value, tc.want)
			continue
		}
		if err.Error() != tc.want {
			t.Errorf("ValidateAmount(%q) message = %q, want %q", tc.value, err.Error(), tc.want)
		}
	}
}
