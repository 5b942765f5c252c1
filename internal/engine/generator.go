package engine

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/dialect"
	"sheet2ddl/internal/schema"
)

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// 로컬 고유 데이터 생성 함수들
func GenerateName() string {
	return FirstNames[seededRand.Intn(len(FirstNames))] + " " + LastNames[seededRand.Intn(len(LastNames))]
}

func GenerateAddress() string {
	street := Streets[seededRand.Intn(len(Streets))]
	district := Districts[seededRand.Intn(len(Districts))]
	city := Cities[seededRand.Intn(len(Cities))]
	return fmt.Sprintf("%s No:%d %s/%s", street, seededRand.Intn(200)+1, district, city)
}

func GeneratePhone() string {
	return fmt.Sprintf("05%02d %03d %02d %02d", 30+seededRand.Intn(30), seededRand.Intn(1000), seededRand.Intn(100), seededRand.Intn(100))
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}

// width is the declared width of a column as it appears in the DDL.
func width(col schema.Column) int {
	p, _, _ := dialect.TypePrecision(ddl.FormatType(col.TargetType, col.Length))
	return p
}

// maxForDigits returns the largest value with the given number of digits,
// capped to keep values within a 32-bit range.
func maxForDigits(digits int) int {
	if digits <= 0 || digits > 9 {
		return math.MaxInt32
	}
	limit := 1
	for i := 0; i < digits; i++ {
		limit *= 10
	}
	return limit - 1
}

// GenerateValue generates a fake value for col. kind is the dialect's
// normalized type; index is the 1-based row number, used to keep primary
// key columns unique.
func GenerateValue(col schema.Column, kind string, index int) interface{} {
	meaning := schema.AnalyzeMeaning(col.Name)
	w := width(col)

	switch kind {
	case "string":
		if w <= 0 {
			w = 30
		}
		if col.IsPK {
			return truncate(strconv.Itoa(index), w)
		}
		switch meaning {
		case "name":
			return truncate(GenerateName(), w)
		case "phone":
			return truncate(GeneratePhone(), w)
		case "email":
			return truncate(gofakeit.Email(), w)
		case "address":
			return truncate(GenerateAddress(), w)
		case "city":
			return truncate(Cities[seededRand.Intn(len(Cities))], w)
		case "district":
			return truncate(Districts[seededRand.Intn(len(Districts))], w)
		case "country":
			return truncate("Türkiye", w)
		case "zipcode":
			return truncate(fmt.Sprintf("%05d", seededRand.Intn(100000)), w)
		case "yesno":
			// 문자열 'E'/'H' (Evet/Hayır)
			if gofakeit.Bool() {
				return "E"
			}
			return "H"
		case "date":
			return truncate(time.Now().Add(-time.Duration(seededRand.Intn(86400))*time.Second).Format("15:04:05"), w)
		case "description":
			return truncate(gofakeit.Sentence(8), w)
		}
		if w < 20 {
			return truncate(gofakeit.Word(), w)
		}
		return truncate(gofakeit.Sentence(5), w)

	case "integer":
		max := maxForDigits(w)
		if w == 0 {
			max = 50000
		}
		if col.IsPK {
			return index
		}
		if meaning == "yesno" {
			return seededRand.Intn(2) // 0 or 1
		}
		return gofakeit.Number(1, max)

	case "decimal":
		if col.IsPK {
			return index
		}
		if p, s, ok := dialect.TypePrecision(ddl.FormatType(col.TargetType, col.Length)); ok && s > 0 {
			max := float64(maxForDigits(p - s))
			scale := math.Pow(10, float64(s))
			return math.Round(gofakeit.Float64Range(0, max)*scale) / scale
		}
		return gofakeit.Price(0.99, 9999.99)

	case "datetime":
		if col.IsPK {
			base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
			return base.AddDate(0, 0, index)
		}
		return gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())

	case "binary":
		return []byte(gofakeit.LetterN(8))
	}

	return nil
}
