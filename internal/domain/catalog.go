package domain

// FeaturedSurahNumbers are the surahs highlighted on the surah list
var FeaturedSurahNumbers = []int{36, 18, 67, 56, 55, 1, 112, 113, 114}

// SurahCount is the number of surahs in the Quran
const SurahCount = 114

var surahs = []Surah{
	{Number: 1, Name: "Al-Fatihah", NameArabic: "الفاتحة", Meaning: "Pembukaan", Ayahs: 7, Revelation: RevelationMakkiyah},
	{Number: 2, Name: "Al-Baqarah", NameArabic: "البقرة", Meaning: "Sapi Betina", Ayahs: 286, Revelation: RevelationMadaniyah},
	{Number: 3, Name: "Ali Imran", NameArabic: "آل عمران", Meaning: "Keluarga Imran", Ayahs: 200, Revelation: RevelationMadaniyah},
	{Number: 4, Name: "An-Nisa", NameArabic: "النساء", Meaning: "Wanita", Ayahs: 176, Revelation: RevelationMadaniyah},
	{Number: 5, Name: "Al-Ma'idah", NameArabic: "المائدة", Meaning: "Hidangan", Ayahs: 120, Revelation: RevelationMadaniyah},
	{Number: 6, Name: "Al-An'am", NameArabic: "الأنعام", Meaning: "Binatang Ternak", Ayahs: 165, Revelation: RevelationMakkiyah},
	{Number: 7, Name: "Al-A'raf", NameArabic: "الأعراف", Meaning: "Tempat Tertinggi", Ayahs: 206, Revelation: RevelationMakkiyah},
	{Number: 8, Name: "Al-Anfal", NameArabic: "الأنفال", Meaning: "Rampasan Perang", Ayahs: 75, Revelation: RevelationMadaniyah},
	{Number: 9, Name: "At-Taubah", NameArabic: "التوبة", Meaning: "Pengampunan", Ayahs: 129, Revelation: RevelationMadaniyah},
	{Number: 10, Name: "Yunus", NameArabic: "يونس", Meaning: "Yunus", Ayahs: 109, Revelation: RevelationMakkiyah},
	{Number: 11, Name: "Hud", NameArabic: "هود", Meaning: "Hud", Ayahs: 123, Revelation: RevelationMakkiyah},
	{Number: 12, Name: "Yusuf", NameArabic: "يوسف", Meaning: "Yusuf", Ayahs: 111, Revelation: RevelationMakkiyah},
	{Number: 13, Name: "Ar-Ra'd", NameArabic: "الرعد", Meaning: "Guruh", Ayahs: 43, Revelation: RevelationMadaniyah},
	{Number: 14, Name: "Ibrahim", NameArabic: "إبراهيم", Meaning: "Ibrahim", Ayahs: 52, Revelation: RevelationMakkiyah},
	{Number: 15, Name: "Al-Hijr", NameArabic: "الحجر", Meaning: "Batu Gunung", Ayahs: 99, Revelation: RevelationMakkiyah},
	{Number: 16, Name: "An-Nahl", NameArabic: "النحل", Meaning: "Lebah", Ayahs: 128, Revelation: RevelationMakkiyah},
	{Number: 17, Name: "Al-Isra", NameArabic: "الإسراء", Meaning: "Perjalanan Malam", Ayahs: 111, Revelation: RevelationMakkiyah},
	{Number: 18, Name: "Al-Kahfi", NameArabic: "الكهف", Meaning: "Gua", Ayahs: 110, Revelation: RevelationMakkiyah},
	{Number: 19, Name: "Maryam", NameArabic: "مريم", Meaning: "Maryam", Ayahs: 98, Revelation: RevelationMakkiyah},
	{Number: 20, Name: "Taha", NameArabic: "طه", Meaning: "Taha", Ayahs: 135, Revelation: RevelationMakkiyah},
	{Number: 21, Name: "Al-Anbiya", NameArabic: "الأنبياء", Meaning: "Para Nabi", Ayahs: 112, Revelation: RevelationMakkiyah},
	{Number: 22, Name: "Al-Hajj", NameArabic: "الحج", Meaning: "Haji", Ayahs: 78, Revelation: RevelationMadaniyah},
	{Number: 23, Name: "Al-Mu'minun", NameArabic: "المؤمنون", Meaning: "Orang-orang Mukmin", Ayahs: 118, Revelation: RevelationMakkiyah},
	{Number: 24, Name: "An-Nur", NameArabic: "النور", Meaning: "Cahaya", Ayahs: 64, Revelation: RevelationMadaniyah},
	{Number: 25, Name: "Al-Furqan", NameArabic: "الفرقان", Meaning: "Pembeda", Ayahs: 77, Revelation: RevelationMakkiyah},
	{Number: 26, Name: "Asy-Syu'ara", NameArabic: "الشعراء", Meaning: "Para Penyair", Ayahs: 227, Revelation: RevelationMakkiyah},
	{Number: 27, Name: "An-Naml", NameArabic: "النمل", Meaning: "Semut", Ayahs: 93, Revelation: RevelationMakkiyah},
	{Number: 28, Name: "Al-Qashash", NameArabic: "القصص", Meaning: "Kisah-kisah", Ayahs: 88, Revelation: RevelationMakkiyah},
	{Number: 29, Name: "Al-Ankabut", NameArabic: "العنكبوت", Meaning: "Laba-laba", Ayahs: 69, Revelation: RevelationMakkiyah},
	{Number: 30, Name: "Ar-Rum", NameArabic: "الروم", Meaning: "Romawi", Ayahs: 60, Revelation: RevelationMakkiyah},
	{Number: 31, Name: "Luqman", NameArabic: "لقمان", Meaning: "Luqman", Ayahs: 34, Revelation: RevelationMakkiyah},
	{Number: 32, Name: "As-Sajdah", NameArabic: "السجدة", Meaning: "Sujud", Ayahs: 30, Revelation: RevelationMakkiyah},
	{Number: 33, Name: "Al-Ahzab", NameArabic: "الأحزاب", Meaning: "Golongan", Ayahs: 73, Revelation: RevelationMadaniyah},
	{Number: 34, Name: "Saba'", NameArabic: "سبأ", Meaning: "Saba'", Ayahs: 54, Revelation: RevelationMakkiyah},
	{Number: 35, Name: "Fathir", NameArabic: "فاطر", Meaning: "Pencipta", Ayahs: 45, Revelation: RevelationMakkiyah},
	{Number: 36, Name: "Yasin", NameArabic: "يس", Meaning: "Yasin", Ayahs: 83, Revelation: RevelationMakkiyah},
	{Number: 37, Name: "Ash-Shaffat", NameArabic: "الصافات", Meaning: "Barisan", Ayahs: 182, Revelation: RevelationMakkiyah},
	{Number: 38, Name: "Shad", NameArabic: "ص", Meaning: "Shad", Ayahs: 88, Revelation: RevelationMakkiyah},
	{Number: 39, Name: "Az-Zumar", NameArabic: "الزمر", Meaning: "Rombongan", Ayahs: 75, Revelation: RevelationMakkiyah},
	{Number: 40, Name: "Ghafir", NameArabic: "غافر", Meaning: "Pengampun", Ayahs: 85, Revelation: RevelationMakkiyah},
	{Number: 41, Name: "Fussilat", NameArabic: "فصلت", Meaning: "Yang Dijelaskan", Ayahs: 54, Revelation: RevelationMakkiyah},
	{Number: 42, Name: "Asy-Syura", NameArabic: "الشورى", Meaning: "Musyawarah", Ayahs: 53, Revelation: RevelationMakkiyah},
	{Number: 43, Name: "Az-Zukhruf", NameArabic: "الزخرف", Meaning: "Perhiasan", Ayahs: 89, Revelation: RevelationMakkiyah},
	{Number: 44, Name: "Ad-Dukhan", NameArabic: "الدخان", Meaning: "Kabut", Ayahs: 59, Revelation: RevelationMakkiyah},
	{Number: 45, Name: "Al-Jasiyah", NameArabic: "الجاثية", Meaning: "Berlutut", Ayahs: 37, Revelation: RevelationMakkiyah},
	{Number: 46, Name: "Al-Ahqaf", NameArabic: "الأحقاف", Meaning: "Bukit Pasir", Ayahs: 35, Revelation: RevelationMakkiyah},
	{Number: 47, Name: "Muhammad", NameArabic: "محمد", Meaning: "Muhammad", Ayahs: 38, Revelation: RevelationMadaniyah},
	{Number: 48, Name: "Al-Fath", NameArabic: "الفتح", Meaning: "Kemenangan", Ayahs: 29, Revelation: RevelationMadaniyah},
	{Number: 49, Name: "Al-Hujurat", NameArabic: "الحجرات", Meaning: "Kamar-kamar", Ayahs: 18, Revelation: RevelationMadaniyah},
	{Number: 50, Name: "Qaf", NameArabic: "ق", Meaning: "Qaf", Ayahs: 45, Revelation: RevelationMakkiyah},
	{Number: 51, Name: "Adz-Dzariyat", NameArabic: "الذاريات", Meaning: "Angin yang Menerbangkan", Ayahs: 60, Revelation: RevelationMakkiyah},
	{Number: 52, Name: "At-Tur", NameArabic: "الطور", Meaning: "Bukit", Ayahs: 49, Revelation: RevelationMakkiyah},
	{Number: 53, Name: "An-Najm", NameArabic: "النجم", Meaning: "Bintang", Ayahs: 62, Revelation: RevelationMakkiyah},
	{Number: 54, Name: "Al-Qamar", NameArabic: "القمر", Meaning: "Bulan", Ayahs: 55, Revelation: RevelationMakkiyah},
	{Number: 55, Name: "Ar-Rahman", NameArabic: "الرحمن", Meaning: "Maha Pengasih", Ayahs: 78, Revelation: RevelationMadaniyah},
	{Number: 56, Name: "Al-Waqi'ah", NameArabic: "الواقعة", Meaning: "Hari Kiamat", Ayahs: 96, Revelation: RevelationMakkiyah},
	{Number: 57, Name: "Al-Hadid", NameArabic: "الحديد", Meaning: "Besi", Ayahs: 29, Revelation: RevelationMadaniyah},
	{Number: 58, Name: "Al-Mujadilah", NameArabic: "المجادلة", Meaning: "Wanita yang Mengajukan Gugatan", Ayahs: 22, Revelation: RevelationMadaniyah},
	{Number: 59, Name: "Al-Hasyr", NameArabic: "الحشر", Meaning: "Pengusiran", Ayahs: 24, Revelation: RevelationMadaniyah},
	{Number: 60, Name: "Al-Mumtahanah", NameArabic: "الممتحنة", Meaning: "Wanita yang Diuji", Ayahs: 13, Revelation: RevelationMadaniyah},
	{Number: 61, Name: "Ash-Shaff", NameArabic: "الصف", Meaning: "Barisan", Ayahs: 14, Revelation: RevelationMadaniyah},
	{Number: 62, Name: "Al-Jumu'ah", NameArabic: "الجمعة", Meaning: "Jumat", Ayahs: 11, Revelation: RevelationMadaniyah},
	{Number: 63, Name: "Al-Munafiqun", NameArabic: "المنافقون", Meaning: "Orang-orang Munafik", Ayahs: 11, Revelation: RevelationMadaniyah},
	{Number: 64, Name: "At-Taghabun", NameArabic: "التغابن", Meaning: "Hari Ditampakkan Kesalahan", Ayahs: 18, Revelation: RevelationMadaniyah},
	{Number: 65, Name: "At-Talaq", NameArabic: "الطلاق", Meaning: "Talak", Ayahs: 12, Revelation: RevelationMadaniyah},
	{Number: 66, Name: "At-Tahrim", NameArabic: "التحريم", Meaning: "Pengharaman", Ayahs: 12, Revelation: RevelationMadaniyah},
	{Number: 67, Name: "Al-Mulk", NameArabic: "الملك", Meaning: "Kerajaan", Ayahs: 30, Revelation: RevelationMakkiyah},
	{Number: 68, Name: "Al-Qalam", NameArabic: "القلم", Meaning: "Pena", Ayahs: 52, Revelation: RevelationMakkiyah},
	{Number: 69, Name: "Al-Haqqah", NameArabic: "الحاقة", Meaning: "Hari Kiamat", Ayahs: 52, Revelation: RevelationMakkiyah},
	{Number: 70, Name: "Al-Ma'arij", NameArabic: "المعارج", Meaning: "Tempat-tempat Naik", Ayahs: 44, Revelation: RevelationMakkiyah},
	{Number: 71, Name: "Nuh", NameArabic: "نوح", Meaning: "Nuh", Ayahs: 28, Revelation: RevelationMakkiyah},
	{Number: 72, Name: "Al-Jinn", NameArabic: "الجن", Meaning: "Jin", Ayahs: 28, Revelation: RevelationMakkiyah},
	{Number: 73, Name: "Al-Muzzammil", NameArabic: "المزمل", Meaning: "Orang yang Berselimut", Ayahs: 20, Revelation: RevelationMakkiyah},
	{Number: 74, Name: "Al-Muddassir", NameArabic: "المدثر", Meaning: "Orang yang Berkemul", Ayahs: 56, Revelation: RevelationMakkiyah},
	{Number: 75, Name: "Al-Qiyamah", NameArabic: "القيامة", Meaning: "Hari Kiamat", Ayahs: 40, Revelation: RevelationMakkiyah},
	{Number: 76, Name: "Al-Insan", NameArabic: "الإنسان", Meaning: "Manusia", Ayahs: 31, Revelation: RevelationMadaniyah},
	{Number: 77, Name: "Al-Mursalat", NameArabic: "المرسلات", Meaning: "Malaikat yang Diutus", Ayahs: 50, Revelation: RevelationMakkiyah},
	{Number: 78, Name: "An-Naba'", NameArabic: "النبأ", Meaning: "Berita Besar", Ayahs: 40, Revelation: RevelationMakkiyah},
	{Number: 79, Name: "An-Nazi'at", NameArabic: "النازعات", Meaning: "Malaikat yang Mencabut", Ayahs: 46, Revelation: RevelationMakkiyah},
	{Number: 80, Name: "'Abasa", NameArabic: "عبس", Meaning: "Bermuka Masam", Ayahs: 42, Revelation: RevelationMakkiyah},
	{Number: 81, Name: "At-Takwir", NameArabic: "التكوير", Meaning: "Menggulung", Ayahs: 29, Revelation: RevelationMakkiyah},
	{Number: 82, Name: "Al-Infitar", NameArabic: "الانفطار", Meaning: "Terbelah", Ayahs: 19, Revelation: RevelationMakkiyah},
	{Number: 83, Name: "Al-Mutaffifin", NameArabic: "المطففين", Meaning: "Orang yang Curang", Ayahs: 36, Revelation: RevelationMakkiyah},
	{Number: 84, Name: "Al-Insyiqaq", NameArabic: "الانشقاق", Meaning: "Terbelah", Ayahs: 25, Revelation: RevelationMakkiyah},
	{Number: 85, Name: "Al-Buruj", NameArabic: "البروج", Meaning: "Gugusan Bintang", Ayahs: 22, Revelation: RevelationMakkiyah},
	{Number: 86, Name: "At-Tariq", NameArabic: "الطارق", Meaning: "Yang Datang di Malam Hari", Ayahs: 17, Revelation: RevelationMakkiyah},
	{Number: 87, Name: "Al-A'la", NameArabic: "الأعلى", Meaning: "Maha Tinggi", Ayahs: 19, Revelation: RevelationMakkiyah},
	{Number: 88, Name: "Al-Gasyiyah", NameArabic: "الغاشية", Meaning: "Hari Pembalasan", Ayahs: 26, Revelation: RevelationMakkiyah},
	{Number: 89, Name: "Al-Fajr", NameArabic: "الفجر", Meaning: "Fajar", Ayahs: 30, Revelation: RevelationMakkiyah},
	{Number: 90, Name: "Al-Balad", NameArabic: "البلد", Meaning: "Negeri", Ayahs: 20, Revelation: RevelationMakkiyah},
	{Number: 91, Name: "Asy-Syams", NameArabic: "الشمس", Meaning: "Matahari", Ayahs: 15, Revelation: RevelationMakkiyah},
	{Number: 92, Name: "Al-Lail", NameArabic: "الليل", Meaning: "Malam", Ayahs: 21, Revelation: RevelationMakkiyah},
	{Number: 93, Name: "Ad-Duha", NameArabic: "الضحى", Meaning: "Waktu Duha", Ayahs: 11, Revelation: RevelationMakkiyah},
	{Number: 94, Name: "Asy-Syarh", NameArabic: "الشرح", Meaning: "Kelapangan", Ayahs: 8, Revelation: RevelationMakkiyah},
	{Number: 95, Name: "At-Tin", NameArabic: "التين", Meaning: "Buah Tin", Ayahs: 8, Revelation: RevelationMakkiyah},
	{Number: 96, Name: "Al-'Alaq", NameArabic: "العلق", Meaning: "Segumpal Darah", Ayahs: 19, Revelation: RevelationMakkiyah},
	{Number: 97, Name: "Al-Qadr", NameArabic: "القدر", Meaning: "Kemuliaan", Ayahs: 5, Revelation: RevelationMakkiyah},
	{Number: 98, Name: "Al-Bayyinah", NameArabic: "البينة", Meaning: "Bukti Nyata", Ayahs: 8, Revelation: RevelationMadaniyah},
	{Number: 99, Name: "Az-Zalzalah", NameArabic: "الزلزلة", Meaning: "Kegoncangan", Ayahs: 8, Revelation: RevelationMadaniyah},
	{Number: 100, Name: "Al-'Adiyat", NameArabic: "العاديات", Meaning: "Kuda Perang", Ayahs: 11, Revelation: RevelationMakkiyah},
	{Number: 101, Name: "Al-Qari'ah", NameArabic: "القارعة", Meaning: "Hari Kiamat", Ayahs: 11, Revelation: RevelationMakkiyah},
	{Number: 102, Name: "At-Takasur", NameArabic: "التكاثر", Meaning: "Bermegah-megahan", Ayahs: 8, Revelation: RevelationMakkiyah},
	{Number: 103, Name: "Al-'Asr", NameArabic: "العصر", Meaning: "Masa", Ayahs: 3, Revelation: RevelationMakkiyah},
	{Number: 104, Name: "Al-Humazah", NameArabic: "الهمزة", Meaning: "Pengumpat", Ayahs: 9, Revelation: RevelationMakkiyah},
	{Number: 105, Name: "Al-Fil", NameArabic: "الفيل", Meaning: "Gajah", Ayahs: 5, Revelation: RevelationMakkiyah},
	{Number: 106, Name: "Quraisy", NameArabic: "قريش", Meaning: "Suku Quraisy", Ayahs: 4, Revelation: RevelationMakkiyah},
	{Number: 107, Name: "Al-Ma'un", NameArabic: "الماعون", Meaning: "Barang yang Berguna", Ayahs: 7, Revelation: RevelationMakkiyah},
	{Number: 108, Name: "Al-Kausar", NameArabic: "الكوثر", Meaning: "Nikmat yang Berlimpah", Ayahs: 3, Revelation: RevelationMakkiyah},
	{Number: 109, Name: "Al-Kafirun", NameArabic: "الكافرون", Meaning: "Orang-orang Kafir", Ayahs: 6, Revelation: RevelationMakkiyah},
	{Number: 110, Name: "An-Nasr", NameArabic: "النصر", Meaning: "Pertolongan", Ayahs: 3, Revelation: RevelationMadaniyah},
	{Number: 111, Name: "Al-Lahab", NameArabic: "المسد", Meaning: "Api yang Bergejolak", Ayahs: 5, Revelation: RevelationMakkiyah},
	{Number: 112, Name: "Al-Ikhlas", NameArabic: "الإخلاص", Meaning: "Keikhlasan", Ayahs: 4, Revelation: RevelationMakkiyah},
	{Number: 113, Name: "Al-Falaq", NameArabic: "الفلق", Meaning: "Waktu Subuh", Ayahs: 5, Revelation: RevelationMakkiyah},
	{Number: 114, Name: "An-Nas", NameArabic: "الناس", Meaning: "Manusia", Ayahs: 6, Revelation: RevelationMakkiyah},
}

// GetAllSurahs returns all surahs ordered by number
func GetAllSurahs() []Surah {
	out := make([]Surah, len(surahs))
	copy(out, surahs)
	return out
}

// GetSurah returns the surah with the given number
func GetSurah(number int) (Surah, error) {
	if number < 1 || number > len(surahs) {
		return Surah{}, ErrInvalidSurah
	}
	return surahs[number-1], nil
}

// FeaturedSurahs returns the featured surahs in display order
func FeaturedSurahs() []Surah {
	out := make([]Surah, 0, len(FeaturedSurahNumbers))
	for _, n := range FeaturedSurahNumbers {
		out = append(out, surahs[n-1])
	}
	return out
}

// SurahsInJuz returns the surahs that have at least one ayah in the given juz
func SurahsInJuz(juz int) []Surah {
	var out []Surah
	for _, s := range surahs {
		for _, j := range s.Juz() {
			if j == juz {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
