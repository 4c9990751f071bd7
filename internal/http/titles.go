package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mimiru/mimiru/internal/actions"
	"github.com/mimiru/mimiru/internal/auth"
	"github.com/mimiru/mimiru/internal/entities"
)

type TitlesController struct {
	titles *actions.Titles
}

func NewTitlesController(titles *actions.Titles) *TitlesController {
	return &TitlesController{titles: titles}
}

func (controller *TitlesController) ListTitles(c *gin.Context) {
	if page := c.Query("page"); page != "" {
		respondResult(c, controller.titles.GetTitlesPaginated(
			parseQueryInt(c, "page", 1),
			parseQueryInt(c, "limit", 10),
		))
		return
	}
	if status := c.Query("status"); status != "" {
		respondResult(c, controller.titles.GetTitlesByStatus(entities.TitleStatus(status)))
		return
	}
	if creator := c.Query("created_by"); creator != "" {
		respondResult(c, controller.titles.GetTitlesByCreator(creator))
		return
	}
	respondResult(c, controller.titles.GetTitles())
}

func (controller *TitlesController) ListTitlesWithGenres(c *gin.Context) {
	respondResult(c, controller.titles.GetTitlesWithGenres())
}

func (controller *TitlesController) SearchTitles(c *gin.Context) {
	respondResult(c, controller.titles.SearchTitles(c.Query("q")))
}

func (controller *TitlesController) GetTitle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	respondResult(c, controller.titles.GetTitleByID(id))
}

func (controller *TitlesController) CreateTitle(c *gin.Context) {
	var input actions.CreateTitleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	// The creator is whoever holds the session, never client-supplied.
	input.CreatedBy = auth.GetAccountID(c)
	respondResult(c, controller.titles.CreateTitle(input))
}

func (controller *TitlesController) UpdateTitle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input actions.UpdateTitleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondResult(c, controller.titles.UpdateTitle(id, input))
}

func (controller *TitlesController) DeleteTitle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	respondResult(c, controller.titles.DeleteTitle(id))
}
