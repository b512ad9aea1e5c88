package shared

const (
	UserID      = "user_id"
	CurrentUser = "current_user"

	AUTH_MIDDLEWARE_SVC       = "auth"
	RATE_LIMIT_MIDDLEWARE_SVC = "rate_limit"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	SessionTypeReading      = "reading"
	SessionTypeMemorization = "memorization"
	SessionTypeTranslation  = "translation"
	SessionTypeRecitation   = "recitation"

	PlanFree = "free"

	MinChapterID = 1
	MaxChapterID = 114

	APIVersion = "1.0.0"
)
