package classify

import (
	"strings"
	"testing"

	"jangbu-backend/internal/datecode"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		owner    string
		supplier string
		buyer    string
		want     DocType
	}{
		{"수요자가 본인이면 매입", "1234567890", "9999999999", "1234567890", Purchase},
		{"공급자가 본인이면 매출", "1234567890", "1234567890", "9999999999", Sale},
		{"양쪽 모두 아니면 판별 불가", "1234567890", "1111111111", "2222222222", Unknown},
		{"본인 번호 미설정이면 항상 판별 불가", "", "1234567890", "1234567890", Unknown},
		{"하이픈 포함 입력도 동일 비교", "123-45-67890", "999-99-99999", "1234567890", Purchase},
		{"앞자리 0은 구분된다", "0123456789", "123456789", "123456789", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.owner, tt.supplier, tt.buyer); got != tt.want {
				t.Errorf("Classify(%q, %q, %q) = %v, want %v",
					tt.owner, tt.supplier, tt.buyer, got, tt.want)
			}
		})
	}
}

// 분류는 전함수: 어떤 입력이든 세 결과 중 정확히 하나
func TestClassifyTotal(t *testing.T) {
	inputs := []string{"", "abc", "123-45-67890", "1234567890", "   ", "000"}
	for _, owner := range inputs {
		for _, s := range inputs {
			for _, b := range inputs {
				got := Classify(owner, s, b)
				if got != Purchase && got != Sale && got != Unknown {
					t.Fatalf("Classify(%q,%q,%q) = %q: 정의되지 않은 결과", owner, s, b, got)
				}
			}
		}
	}
}

// 공급자/수요자를 맞바꿨을 때 매입과 매출이 동시에 나올 수 없다
func TestClassifySwapConsistency(t *testing.T) {
	owner := "1234567890"
	pairs := [][2]string{
		{"1234567890", "9999999999"},
		{"9999999999", "1234567890"},
		{"1111111111", "2222222222"},
		{"1234567890", "1234567890"},
	}
	for _, p := range pairs {
		a := Classify(owner, p[0], p[1])
		b := Classify(owner, p[1], p[0])
		if a == Purchase && b == Purchase && p[0] != p[1] {
			t.Errorf("스왑 후에도 양쪽 모두 매입: %v", p)
		}
		if a == Sale && b == Sale && p[0] != p[1] {
			t.Errorf("스왑 후에도 양쪽 모두 매출: %v", p)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"포항 케이이씨", "포항_케이이씨"},
		{"주식회사/특수:문자*제거", "주식회사특수문자제거"},
		{"  앞뒤 공백  ", "앞뒤_공백"},
		{`경로"문자<모두>제거|`, "경로문자모두제거"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	date := datecode.Date{Year: 2025, Month: 11, Day: 4}

	got := FileName(Purchase, date, "포항 케이이씨", 1100000, ".xlsx")
	want := "25-11-04_포항_케이이씨_1,100,000_01.xlsx"
	if got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}

	got = FileName(Sale, date, "케이이씨", -550000, ".pdf")
	if !strings.HasSuffix(got, "_02.pdf") {
		t.Errorf("매출 플래그가 02가 아님: %q", got)
	}
	if !strings.Contains(got, "-550,000") {
		t.Errorf("음수 합계 표기 누락: %q", got)
	}
}

func TestStoragePath(t *testing.T) {
	date := datecode.Date{Year: 2025, Month: 11, Day: 4}
	got := StoragePath(Purchase, date, "a.xlsx")
	want := "/BUSINESS/2025년 세금계산서/매입/a.xlsx"
	if got != want {
		t.Errorf("StoragePath = %q, want %q", got, want)
	}
}
