package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/shared"
)

type QuranHandler struct {
	quranSvc QuranServiceInterface
}

func NewQuranHandler(quranSvc QuranServiceInterface) *QuranHandler {
	return &QuranHandler{quranSvc: quranSvc}
}

// @Summary List chapters
// @Description All chapters with a difficulty level derived from the verse count
// @Tags quran
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.Chapter}
// @Router /api/quran/chapters [get]
func (h *QuranHandler) GetChapters(c *fiber.Ctx) error {
	return shared.ResponseOK(c, h.quranSvc.GetChapters(c.UserContext()))
}

// @Summary List verses of a chapter
// @Description Verses with translation and transliteration. per_page is capped at 100.
// @Tags quran
// @Produce json
// @Param id path int true "Chapter ID (1-114)"
// @Param per_page query int false "Verses per page (default 50, max 100)"
// @Success 200 {object} shared.Response{data=[]dto.Verse}
// @Failure 400 {object} shared.Response
// @Router /api/quran/chapter/{id}/verses [get]
func (h *QuranHandler) GetVerses(c *fiber.Ctx) error {
	chapterID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return shared.ResponseBadRequest(c, "Invalid chapter ID")
	}

	perPage := c.QueryInt("per_page", 50)

	verses, err := h.quranSvc.GetVerses(c.UserContext(), chapterID, perPage)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, verses)
}

// @Summary Get verse audio
// @Description Audio URL for one verse, null when unavailable
// @Tags quran
// @Produce json
// @Param id path int true "Chapter ID (1-114)"
// @Param verse path int true "Verse number"
// @Param reciter query string false "Reciter ID (default 1)"
// @Success 200 {object} shared.Response{data=dto.AudioResponse}
// @Router /api/quran/verse/{id}/{verse}/audio [get]
func (h *QuranHandler) GetVerseAudio(c *fiber.Ctx) error {
	chapterID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return shared.ResponseBadRequest(c, "Invalid chapter ID")
	}
	verseNumber, err := strconv.Atoi(c.Params("verse"))
	if err != nil {
		return shared.ResponseBadRequest(c, "Invalid verse number")
	}

	reciter := c.Query("reciter", "1")
	audioURL := h.quranSvc.GetAudioURL(c.UserContext(), chapterID, verseNumber, reciter)
	return shared.ResponseOK(c, dto.AudioResponse{AudioURL: audioURL})
}

// @Summary List reciters
// @Tags quran
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.Reciter}
// @Router /api/quran/reciters [get]
func (h *QuranHandler) GetReciters(c *fiber.Ctx) error {
	return shared.ResponseOK(c, h.quranSvc.GetReciters())
}
