package schema

import "testing"

func TestAnalyzeMeaning(t *testing.T) {
	tests := []struct {
		col  string
		want string
	}{
		{"MUSTERI_EPOSTA", "email"},
		{"CUST_TEL", "phone"},
		{"MUSTERI_AD_SOYAD", "name"},
		{"KAYIT_TARIH", "date"},
		{"VA_AKTAR_ZMN", "date"},
		{"AKTIF_MI", "yesno"},
		{"SIPARIS_TUTAR", "amount"},
		{"order-city", "city"},
		{"FOO_BAR", "foo bar"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := AnalyzeMeaning(tt.col); got != tt.want {
			t.Errorf("AnalyzeMeaning(%q) = %q, want %q", tt.col, got, tt.want)
		}
	}
}
