package domain

// JuzCount is the number of standard partitions of the Quran
const JuzCount = 30

// juzStarts holds the first surah:ayah of every juz, index 0 is juz 1
var juzStarts = [JuzCount][2]int{
	{1, 1}, {2, 142}, {2, 253}, {3, 93}, {4, 24},
	{4, 148}, {5, 82}, {6, 111}, {7, 88}, {8, 41},
	{9, 93}, {11, 6}, {12, 53}, {15, 1}, {17, 1},
	{18, 75}, {21, 1}, {23, 1}, {25, 21}, {27, 56},
	{29, 46}, {33, 31}, {36, 28}, {39, 32}, {41, 47},
	{46, 1}, {51, 31}, {58, 1}, {67, 1}, {78, 1},
}

func before(s1, a1, s2, a2 int) bool {
	return s1 < s2 || (s1 == s2 && a1 < a2)
}

// JuzOf returns the juz containing the given ayah, or 0 for an invalid position
func JuzOf(surahNumber, ayahNumber int) int {
	if surahNumber < 1 || surahNumber > SurahCount || ayahNumber < 1 {
		return 0
	}
	juz := 1
	for i, start := range juzStarts {
		if before(surahNumber, ayahNumber, start[0], start[1]) {
			break
		}
		juz = i + 1
	}
	return juz
}

// JuzSpan returns the ordered juz numbers covered by ayahs 1..ayahCount of a surah
func JuzSpan(surahNumber, ayahCount int) []int {
	first := JuzOf(surahNumber, 1)
	if first == 0 {
		return nil
	}
	last := JuzOf(surahNumber, ayahCount)
	span := make([]int, 0, last-first+1)
	for j := first; j <= last; j++ {
		span = append(span, j)
	}
	return span
}
