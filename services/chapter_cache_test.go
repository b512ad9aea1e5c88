package services

import (
	"testing"
	"time"

	"github.com/AmbHasan/My-quran-journey/dto"
)

func TestChapterCacheFreshness(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewChapterCacheWithClock(time.Hour, clock.Now)

	if _, ok := cache.Fresh(); ok {
		t.Fatal("empty cache must not be fresh")
	}

	cache.Store([]dto.Chapter{{ID: 1}})
	if got, ok := cache.Fresh(); !ok || len(got) != 1 {
		t.Fatalf("expected a fresh list, got %v %v", got, ok)
	}
	if !cache.FetchedAt().Equal(clock.now) {
		t.Fatalf("fetched at not recorded")
	}

	clock.now = clock.now.Add(time.Hour)
	if _, ok := cache.Fresh(); ok {
		t.Fatal("list must expire at the end of the window")
	}
	if got := cache.Last(); len(got) != 1 {
		t.Fatalf("expected the stale list to remain available, got %v", got)
	}
}

func TestChapterCacheStoreEmptyIsNeverFresh(t *testing.T) {
	cache := NewChapterCache(time.Hour)
	cache.Store([]dto.Chapter{})

	if _, ok := cache.Fresh(); ok {
		t.Fatal("empty list must not be served as fresh")
	}
}

func TestChapterCacheReturnsCopies(t *testing.T) {
	cache := NewChapterCache(time.Hour)
	src := []dto.Chapter{{ID: 1, NameSimple: "Al-Fatihah"}}
	cache.Store(src)

	src[0].NameSimple = "changed"
	got, _ := cache.Fresh()
	if got[0].NameSimple != "Al-Fatihah" {
		t.Fatal("cache shares storage with the caller")
	}

	got[0].NameSimple = "changed"
	if cache.Last()[0].NameSimple != "Al-Fatihah" {
		t.Fatal("cache shares storage with readers")
	}
}
