package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mimiru/mimiru/internal/actions"
)

type GenresController struct {
	genres *actions.Genres
}

func NewGenresController(genres *actions.Genres) *GenresController {
	return &GenresController{genres: genres}
}

func (controller *GenresController) ListGenres(c *gin.Context) {
	if c.Query("with_title_count") == "true" {
		respondResult(c, controller.genres.GetGenresWithTitleCount())
		return
	}
	respondResult(c, controller.genres.GetGenres())
}

func (controller *GenresController) SearchGenres(c *gin.Context) {
	respondResult(c, controller.genres.SearchGenres(c.Query("q")))
}

func (controller *GenresController) GetGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	respondResult(c, controller.genres.GetGenreByID(id))
}

func (controller *GenresController) CreateGenre(c *gin.Context) {
	var input actions.CreateGenreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondResult(c, controller.genres.CreateGenre(input))
}

func (controller *GenresController) UpdateGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input actions.UpdateGenreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondResult(c, controller.genres.UpdateGenre(id, input))
}

func (controller *GenresController) DeleteGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	respondResult(c, controller.genres.DeleteGenre(id))
}
