package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mimiru/mimiru/internal/actions"
)

type ChaptersController struct {
	chapters *actions.Chapters
}

func NewChaptersController(chapters *actions.Chapters) *ChaptersController {
	return &ChaptersController{chapters: chapters}
}

func (controller *ChaptersController) ListChapters(c *gin.Context) {
	versionID := parseQueryInt(c, "title_version_id", 0)
	if versionID <= 0 {
		respondBadRequest(c, "title_version_id query parameter is required")
		return
	}
	respondResult(c, controller.chapters.GetChaptersByTitleVersion(uint(versionID)))
}

func (controller *ChaptersController) ListLatestChapters(c *gin.Context) {
	respondResult(c, controller.chapters.GetLatestChapters(parseQueryInt(c, "limit", 10)))
}

func (controller *ChaptersController) GetChapter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if c.Query("with_pages") == "true" {
		respondResult(c, controller.chapters.GetChapterWithPages(id))
		return
	}
	respondResult(c, controller.chapters.GetChapterByID(id))
}

func (controller *ChaptersController) GetNextChapter(c *gin.Context) {
	versionID := parseQueryInt(c, "title_version_id", 0)
	current, ok := parseQueryFloat(c, "current")
	if !ok {
		return
	}
	respondResult(c, controller.chapters.GetNextChapter(uint(versionID), current))
}

func (controller *ChaptersController) GetPreviousChapter(c *gin.Context) {
	versionID := parseQueryInt(c, "title_version_id", 0)
	current, ok := parseQueryFloat(c, "current")
	if !ok {
		return
	}
	respondResult(c, controller.chapters.GetPreviousChapter(uint(versionID), current))
}

func (controller *ChaptersController) CreateChapter(c *gin.Context) {
	var input actions.CreateChapterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondResult(c, controller.chapters.CreateChapter(input))
}

func (controller *ChaptersController) UpdateChapter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input actions.UpdateChapterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondResult(c, controller.chapters.UpdateChapter(id, input))
}

func (controller *ChaptersController) DeleteChapter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	respondResult(c, controller.chapters.DeleteChapter(id))
}
