package domain

import "strings"

// TajwidRule describes one recitation rule shown in the tajwid guide
type TajwidRule struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameArabic  string `json:"nameArabic"`
	Description string `json:"description"`
	Letters     string `json:"letters"`
	Example     string `json:"example"`
	Color       string `json:"color"`
}

var tajwidRules = []TajwidRule{
	{
		ID:          "ikhfa",
		Name:        "Ikhfa Haqiqi",
		NameArabic:  "إِخْفَاء حَقِيقِي",
		Description: "Menyamarkan bunyi nun mati/tanwin saat bertemu 15 huruf ikhfa dengan dengung.",
		Letters:     "ت ث ج د ذ ز س ش ص ض ط ظ ف ق ك",
		Example:     "مِنْ ثَمَرَةٍ → dibaca samar dengan dengung",
		Color:       "tajwid-ikhfa",
	},
	{
		ID:          "idgham",
		Name:        "Idgham Bighunnah",
		NameArabic:  "إِدْغَام بِغُنَّة",
		Description: "Memasukkan bunyi nun mati/tanwin ke huruf setelahnya dengan dengung.",
		Letters:     "ي ن م و",
		Example:     "مِنْ يَّوْمٍ → nun dilebur dengan ya",
		Color:       "tajwid-idgham",
	},
	{
		ID:          "iqlab",
		Name:        "Iqlab",
		NameArabic:  "إِقْلَاب",
		Description: "Mengubah bunyi nun mati/tanwin menjadi mim saat bertemu huruf ba.",
		Letters:     "ب",
		Example:     "مِنْ بَعْدِ → dibaca \"mim ba'di\"",
		Color:       "tajwid-iqlab",
	},
	{
		ID:          "ghunnah",
		Name:        "Ghunnah",
		NameArabic:  "غُنَّة",
		Description: "Dengung yang keluar dari pangkal hidung, sekitar 2 harakat.",
		Letters:     "ن م (bertasydid)",
		Example:     "إِنَّ → nun tasydid didengungkan",
		Color:       "tajwid-ghunnah",
	},
	{
		ID:          "qalqalah",
		Name:        "Qalqalah",
		NameArabic:  "قَلْقَلَة",
		Description: "Memantulkan bunyi huruf qalqalah saat mati/waqaf.",
		Letters:     "ق ط ب ج د",
		Example:     "يَخْلُقْ → qaf dipantulkan",
		Color:       "tajwid-qalqalah",
	},
	{
		ID:          "mad",
		Name:        "Mad Asli",
		NameArabic:  "مَدّ أَصْلِي",
		Description: "Memanjangkan bacaan 2 harakat pada huruf mad.",
		Letters:     "ا و ي",
		Example:     "قَالَ → alif dipanjangkan 2 harakat",
		Color:       "tajwid-mad",
	},
}

// TajwidRules returns a copy of the guide in display order
func TajwidRules() []TajwidRule {
	return append([]TajwidRule(nil), tajwidRules...)
}

// GetTajwidRule looks a rule up by its ID
func GetTajwidRule(id string) (TajwidRule, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, r := range tajwidRules {
		if r.ID == id {
			return r, true
		}
	}
	return TajwidRule{}, false
}

// TajwidLegend lists the rule names joined by sep
func TajwidLegend(sep string) string {
	names := make([]string, len(tajwidRules))
	for i, r := range tajwidRules {
		names[i] = r.Name
	}
	return strings.Join(names, sep)
}
