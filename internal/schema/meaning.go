package schema

import "strings"

// abbreviations expands column-name tokens seen in warehouse spreadsheets
// (Turkish and English) to a meaning the seeder understands.
var abbreviations = map[string]string{
	// Common Nouns
	"ad": "name", "adi": "name", "isim": "name", "soyad": "name", "soyadi": "name", "unvan": "name",
	"nm": "name", "name": "name",
	"tel": "phone", "telefon": "phone", "gsm": "phone", "cep": "phone", "phone": "phone",
	"eposta": "email", "email": "email", "mail": "email",
	"adres": "address", "addr": "address", "address": "address",
	"il": "city", "sehir": "city", "city": "city", "ilce": "district",
	"ulke": "country", "country": "country",
	"posta": "zipcode", "zip": "zipcode",
	"aciklama": "description", "acklm": "description", "desc": "description", "not": "description",
	"tutar": "amount", "fiyat": "amount", "bakiye": "amount", "amt": "amount", "price": "amount",
	"adet": "count", "miktar": "count", "qty": "count", "cnt": "count",
	"kod": "code", "cd": "code", "code": "code",
	"no": "number", "numara": "number",

	// Status
	"durum": "status", "stat": "status", "sts": "status",
	"aktif": "yesno", "yn": "yesno", "flg": "yesno", "mi": "yesno", "is": "yesno",
	"tarih": "date", "trh": "date", "dt": "date", "zaman": "date", "zmn": "date",
}

// AnalyzeMeaning decodes a column name such as MUSTERI_EPOSTA or CUST_TEL
// into the meaning of its most specific token ("email", "phone"). Unknown
// names come back as their lowercased tokens joined by spaces.
func AnalyzeMeaning(colName string) string {
	parts := strings.FieldsFunc(strings.ToLower(colName), func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})

	// The last known token wins: MUSTERI_AD_SOYAD -> name, KAYIT_TARIH -> date.
	for i := len(parts) - 1; i >= 0; i-- {
		if full, ok := abbreviations[parts[i]]; ok {
			return full
		}
	}
	return strings.Join(parts, " ")
}
