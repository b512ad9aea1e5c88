package dto

type Chapter struct {
	ID              int    `json:"id" example:"1"`
	NameSimple      string `json:"name_simple" example:"Al-Fatihah"`
	NameArabic      string `json:"name_arabic" example:"الفاتحة"`
	VersesCount     int    `json:"verses_count" example:"7"`
	DifficultyLevel string `json:"difficulty_level" example:"beginner"`
	RevelationPlace string `json:"revelation_place" example:"makkah"`
}

type Verse struct {
	VerseNumber     int     `json:"verse_number" example:"1"`
	VerseKey        string  `json:"verse_key" example:"1:1"`
	TextUthmani     string  `json:"text_uthmani"`
	TextSimple      string  `json:"text_simple"`
	Translation     string  `json:"translation"`
	Transliteration string  `json:"transliteration"`
	AudioURL        *string `json:"audio_url"`
}

type Reciter struct {
	ID   string `json:"id" example:"7"`
	Name string `json:"name" example:"Mishary Rashid Alafasy"`
}

type AudioResponse struct {
	AudioURL *string `json:"audio_url" example:"https://verses.quran.com/Alafasy/mp3/001001.mp3"`
}
