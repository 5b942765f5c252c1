package engine

// 로컬 데이터 (이름/주소용). Source systems are Turkish, so seeded rows are too.
var (
	LastNames  = []string{"Yılmaz", "Kaya", "Demir", "Şahin", "Çelik", "Yıldız", "Yıldırım", "Öztürk", "Aydın", "Özdemir", "Arslan", "Doğan", "Kılıç", "Aslan", "Çetin"}
	FirstNames = []string{"Mehmet", "Ayşe", "Mustafa", "Fatma", "Ahmet", "Emine", "Ali", "Hatice", "Hüseyin", "Zeynep", "Hasan", "Elif", "İbrahim", "Merve", "Murat"}
	Cities     = []string{"İstanbul", "Ankara", "İzmir", "Bursa", "Antalya", "Konya", "Adana", "Gaziantep", "Kayseri", "Eskişehir", "Samsun", "Trabzon"}
	Districts  = []string{"Kadıköy", "Beşiktaş", "Üsküdar", "Çankaya", "Keçiören", "Karşıyaka", "Bornova", "Nilüfer", "Muratpaşa", "Selçuklu"}
	Streets    = []string{"Atatürk Cd.", "İstiklal Cd.", "Cumhuriyet Cd.", "Bağdat Cd.", "Gazi Blv.", "Menderes Cd.", "İnönü Cd.", "Fevzi Çakmak Sk."}
)
