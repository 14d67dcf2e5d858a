package format

import "testing"

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01012345678", "010-1234-5678"},
		{"0212345678", "021-234-5678"},
		{"010", "010"},
		{"010123", "010-123"},
		{"010-1234-5678", "010-1234-5678"},
		{"010123456789999", "010-1234-5678"}, // 11자리 초과는 자른다
	}
	for _, tt := range tests {
		if got := Phone(tt.in); got != tt.want {
			t.Errorf("Phone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBizNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234567890", "123-45-67890"},
		{"123", "123"},
		{"12345", "123-45"},
		{"123-45-67890", "123-45-67890"},
		{"123456789012", "123-45-67890"}, // 10자리 초과는 자른다
	}
	for _, tt := range tests {
		if got := BizNumber(tt.in); got != tt.want {
			t.Errorf("BizNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAccountNumber(t *testing.T) {
	tests := []struct {
		bank string
		in   string
		want string
	}{
		{"국민은행", "12345612123456", "123456-12-123456"},
		{"농협", "1234567890123", "123-4567-8901-23"},
		{"신한은행", "123456789012", "123-456-789012"},
		{"없는은행", "12345678", "12345678"},
		{"국민은행", "1234", "1234"}, // 패턴보다 짧으면 하이픈 없이
	}
	for _, tt := range tests {
		if got := AccountNumber(tt.bank, tt.in); got != tt.want {
			t.Errorf("AccountNumber(%q, %q) = %q, want %q", tt.bank, tt.in, got, tt.want)
		}
	}
}
