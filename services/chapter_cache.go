package services

import (
	"sync"
	"time"

	"github.com/AmbHasan/My-quran-journey/dto"
)

// ChapterCache memoizes the chapter list for a fixed window. The list and its
// timestamp are always replaced together.
type ChapterCache struct {
	mu        sync.RWMutex
	chapters  []dto.Chapter
	fetchedAt time.Time

	ttl time.Duration
	now func() time.Time
}

func NewChapterCache(ttl time.Duration) *ChapterCache {
	return NewChapterCacheWithClock(ttl, time.Now)
}

func NewChapterCacheWithClock(ttl time.Duration, now func() time.Time) *ChapterCache {
	return &ChapterCache{ttl: ttl, now: now}
}

// Fresh returns a copy of the cached list when it is non-empty and younger
// than the window.
func (c *ChapterCache) Fresh() ([]dto.Chapter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.chapters) == 0 || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return copyChapters(c.chapters), true
}

func (c *ChapterCache) Store(chapters []dto.Chapter) {
	stored := copyChapters(chapters)

	c.mu.Lock()
	c.chapters = stored
	c.fetchedAt = c.now()
	c.mu.Unlock()
}

// Last returns the most recently stored list regardless of age.
func (c *ChapterCache) Last() []dto.Chapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyChapters(c.chapters)
}

func (c *ChapterCache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

func copyChapters(src []dto.Chapter) []dto.Chapter {
	if len(src) == 0 {
		return nil
	}
	dst := make([]dto.Chapter, len(src))
	copy(dst, src)
	return dst
}
