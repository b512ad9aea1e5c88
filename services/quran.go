package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/shared"
)

const (
	QURAN_SVC = "quran_svc"

	defaultQuranAPIURL       = "https://api.quran.com/api/v4"
	defaultQuranAudioBaseURL = "https://verses.quran.com/"
	defaultChapterCacheTTL   = time.Hour

	chaptersTimeout = 10 * time.Second
	versesTimeout   = 15 * time.Second
	audioTimeout    = 10 * time.Second

	defaultVersesPerPage = 50
	maxVersesPerPage     = 100
	translationID        = "131"
	defaultReciterID     = "1"

	maxUpstreamBodyBytes = 16 << 20
)

var legacyReciterIDs = map[string]string{
	"ar.alafasy":  "7",
	"ar.husary":   "1",
	"ar.minshawi": "2",
	"ar.muhammed": "3",
	"ar.walk":     "5",
}

var reciters = []dto.Reciter{
	{ID: "7", Name: "Mishary Rashid Alafasy"},
	{ID: "1", Name: "AbdulBaset AbdulSamad (Mujawwad)"},
	{ID: "2", Name: "AbdulBaset AbdulSamad (Murattal)"},
	{ID: "3", Name: "Abdur-Rahman as-Sudais"},
	{ID: "5", Name: "Hani ar-Rifai"},
}

// ChapterSnapshotStore keeps a copy of the last good chapter list outside
// the process.
type ChapterSnapshotStore interface {
	SaveChapters(ctx context.Context, chapters []dto.Chapter) error
	LoadChapters(ctx context.Context) ([]dto.Chapter, error)
}

// QuranService proxies the remote content provider. Upstream failures
// degrade to cached or empty results and are never returned to callers.
type QuranService struct {
	appContext.DefaultService

	httpClient   *http.Client
	apiURL       string
	audioBaseURL string
	cache        *ChapterCache
	snapshot     ChapterSnapshotStore
}

func NewQuranService(apiURL, audioBaseURL string, cache *ChapterCache, snapshot ChapterSnapshotStore) *QuranService {
	return &QuranService{
		httpClient:   &http.Client{},
		apiURL:       strings.TrimRight(apiURL, "/"),
		audioBaseURL: audioBaseURL,
		cache:        cache,
		snapshot:     snapshot,
	}
}

func (svc QuranService) Id() string {
	return QURAN_SVC
}

func (svc *QuranService) Configure(ctx *appContext.Context) error {
	svc.httpClient = &http.Client{}
	svc.apiURL = strings.TrimRight(envOrDefault("QURAN_API_URL", defaultQuranAPIURL), "/")
	svc.audioBaseURL = envOrDefault("QURAN_AUDIO_BASE_URL", defaultQuranAudioBaseURL)
	svc.cache = NewChapterCache(envDurationOrDefault("CHAPTER_CACHE_TTL", defaultChapterCacheTTL))
	return svc.DefaultService.Configure(ctx)
}

func (svc *QuranService) Start() error {
	if redisSvc, ok := svc.Service(REDIS_SVC).(*RedisService); ok && redisSvc.Enabled() {
		svc.snapshot = redisSvc
	}
	log.WithFields(log.Fields{
		"api_url":        svc.apiURL,
		"audio_base_url": svc.audioBaseURL,
		"snapshot":       svc.snapshot != nil,
	}).Info("Quran content proxy ready")
	return nil
}

type upstreamChapter struct {
	ID              int    `json:"id"`
	NameSimple      string `json:"name_simple"`
	NameArabic      string `json:"name_arabic"`
	VersesCount     int    `json:"verses_count"`
	RevelationPlace string `json:"revelation_place"`
}

type upstreamVerse struct {
	VerseNumber  int    `json:"verse_number"`
	VerseKey     string `json:"verse_key"`
	TextUthmani  string `json:"text_uthmani"`
	TextSimple   string `json:"text_simple"`
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
	Words []struct {
		Transliteration *struct {
			Text *string `json:"text"`
		} `json:"transliteration"`
	} `json:"words"`
}

type upstreamAudioFile struct {
	VerseKey string `json:"verse_key"`
	URL      string `json:"url"`
}

// ClassifyDifficulty buckets a chapter by its verse count.
func ClassifyDifficulty(versesCount int) string {
	switch {
	case versesCount <= 10:
		return shared.DifficultyBeginner
	case versesCount <= 50:
		return shared.DifficultyIntermediate
	default:
		return shared.DifficultyAdvanced
	}
}

// GetChapters serves the cached list while fresh, otherwise refetches. On
// failure it falls back to the last list held in memory, then the snapshot
// store, then an empty list.
//
// The snapshot store is optional. Without one (REDIS_ADDR unset) the cache is
// purely in-process and a cold failed fetch returns an empty list. With one,
// the list survives restarts and a cold failure can return the stored copy.
// The snapshot never refills the in-memory cache.
func (svc *QuranService) GetChapters(ctx context.Context) []dto.Chapter {
	if chapters, ok := svc.cache.Fresh(); ok {
		quranChapterCacheTotal.WithLabelValues("hit").Inc()
		return chapters
	}

	chapters, err := svc.fetchChapters(ctx)
	if err != nil {
		log.WithError(err).Error("Error fetching chapters")
		return svc.fallbackChapters(ctx)
	}

	quranChapterCacheTotal.WithLabelValues("refresh").Inc()
	svc.cache.Store(chapters)

	if svc.snapshot != nil && len(chapters) > 0 {
		if err := svc.snapshot.SaveChapters(ctx, chapters); err != nil {
			log.WithError(err).Warn("Failed to save chapter snapshot")
		}
	}

	return chapters
}

func (svc *QuranService) fallbackChapters(ctx context.Context) []dto.Chapter {
	if last := svc.cache.Last(); len(last) > 0 {
		quranChapterCacheTotal.WithLabelValues("stale").Inc()
		return last
	}

	if svc.snapshot != nil {
		chapters, err := svc.snapshot.LoadChapters(ctx)
		if err != nil {
			log.WithError(err).Warn("Failed to load chapter snapshot")
		} else if len(chapters) > 0 {
			quranChapterCacheTotal.WithLabelValues("snapshot").Inc()
			return chapters
		}
	}

	quranChapterCacheTotal.WithLabelValues("empty").Inc()
	return []dto.Chapter{}
}

func (svc *QuranService) fetchChapters(ctx context.Context) ([]dto.Chapter, error) {
	var body struct {
		Chapters []upstreamChapter `json:"chapters"`
	}
	if err := svc.getJSON(ctx, "chapters", svc.apiURL+"/chapters", chaptersTimeout, &body); err != nil {
		return nil, err
	}

	chapters := make([]dto.Chapter, 0, len(body.Chapters))
	for _, ch := range body.Chapters {
		chapters = append(chapters, dto.Chapter{
			ID:              ch.ID,
			NameSimple:      ch.NameSimple,
			NameArabic:      ch.NameArabic,
			VersesCount:     ch.VersesCount,
			DifficultyLevel: ClassifyDifficulty(ch.VersesCount),
			RevelationPlace: ch.RevelationPlace,
		})
	}
	return chapters, nil
}

// GetVerses is uncached. Only an out-of-range chapter is an error.
func (svc *QuranService) GetVerses(ctx context.Context, chapterID, perPage int) ([]dto.Verse, error) {
	if chapterID < shared.MinChapterID || chapterID > shared.MaxChapterID {
		return nil, shared.NewBadRequestError(shared.ErrInvalidArgument, "Invalid chapter ID")
	}
	if perPage < 1 {
		perPage = defaultVersesPerPage
	}
	if perPage > maxVersesPerPage {
		perPage = maxVersesPerPage
	}

	query := url.Values{}
	query.Set("translations", translationID)
	query.Set("words", "true")
	query.Set("fields", "text_uthmani,text_simple")
	query.Set("per_page", strconv.Itoa(perPage))
	endpoint := fmt.Sprintf("%s/verses/by_chapter/%d?%s", svc.apiURL, chapterID, query.Encode())

	var body struct {
		Verses []upstreamVerse `json:"verses"`
	}
	if err := svc.getJSON(ctx, "verses", endpoint, versesTimeout, &body); err != nil {
		log.WithError(err).WithField("chapter_id", chapterID).Error("Error fetching verses")
		return []dto.Verse{}, nil
	}

	verses := make([]dto.Verse, 0, len(body.Verses))
	for _, v := range body.Verses {
		verses = append(verses, toVerse(v))
	}
	return verses, nil
}

func toVerse(v upstreamVerse) dto.Verse {
	translation := ""
	if len(v.Translations) > 0 {
		translation = v.Translations[0].Text
	}

	words := make([]string, 0, len(v.Words))
	for _, w := range v.Words {
		if w.Transliteration == nil || w.Transliteration.Text == nil || *w.Transliteration.Text == "" {
			continue
		}
		words = append(words, *w.Transliteration.Text)
	}

	return dto.Verse{
		VerseNumber:     v.VerseNumber,
		VerseKey:        v.VerseKey,
		TextUthmani:     v.TextUthmani,
		TextSimple:      v.TextSimple,
		Translation:     translation,
		Transliteration: strings.Join(words, " "),
	}
}

// ResolveReciterID maps legacy "ar." identifiers to numeric recitation ids.
func ResolveReciterID(reciter string) string {
	if reciter == "" {
		return defaultReciterID
	}
	if strings.HasPrefix(reciter, "ar.") {
		if id, ok := legacyReciterIDs[reciter]; ok {
			return id
		}
		return defaultReciterID
	}
	return reciter
}

// GetAudioURL returns nil when the chapter is out of range or no audio can
// be found.
func (svc *QuranService) GetAudioURL(ctx context.Context, chapterID, verseNumber int, reciter string) *string {
	if chapterID < shared.MinChapterID || chapterID > shared.MaxChapterID {
		return nil
	}

	reciterID := ResolveReciterID(reciter)
	endpoint := fmt.Sprintf("%s/recitations/%s/by_chapter/%d", svc.apiURL, url.PathEscape(reciterID), chapterID)

	var body struct {
		AudioFiles []upstreamAudioFile `json:"audio_files"`
	}
	if err := svc.getJSON(ctx, "recitations", endpoint, audioTimeout, &body); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"chapter_id": chapterID,
			"verse":      verseNumber,
		}).Error("Error fetching audio")
		return nil
	}
	if len(body.AudioFiles) == 0 {
		return nil
	}

	match := body.AudioFiles[0]
	verseKey := fmt.Sprintf("%d:%d", chapterID, verseNumber)
	for _, f := range body.AudioFiles {
		if f.VerseKey == verseKey {
			match = f
			break
		}
	}

	audioURL := svc.audioBaseURL + match.URL
	return &audioURL
}

func (svc *QuranService) GetReciters() []dto.Reciter {
	out := make([]dto.Reciter, len(reciters))
	copy(out, reciters)
	return out
}

// getJSON performs a bounded GET and decodes a 2xx body into dest.
func (svc *QuranService) getJSON(ctx context.Context, endpoint, rawURL string, timeout time.Duration, dest interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		quranUpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		quranUpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		quranUpstreamRequestsTotal.WithLabelValues(endpoint, "bad_status").Inc()
		return fmt.Errorf("content provider returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBodyBytes))
	if err != nil {
		quranUpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return err
	}

	if err := sonic.Unmarshal(data, dest); err != nil {
		quranUpstreamRequestsTotal.WithLabelValues(endpoint, "decode_error").Inc()
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	quranUpstreamRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return nil
}
