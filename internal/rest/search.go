package rest

import (
	"net/http"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/Guyuepp/Comment-Hub/internal/rest/response"
	"github.com/gin-gonic/gin"
)

type searchHandler struct {
	Service domain.SearchUsecase
}

func NewSearchHandler(svc domain.SearchUsecase) *searchHandler {
	return &searchHandler{
		Service: svc,
	}
}

func (h *searchHandler) Search(c *gin.Context) {
	var criteria domain.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	page, err := h.Service.Search(ctx, criteria)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewSearchPageFromDomain(page))
}

func (h *searchHandler) ListByIDs(c *gin.Context) {
	var commentIDs []string
	if err := c.ShouldBindJSON(&commentIDs); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	comments, err := h.Service.ListByIDs(ctx, commentIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": response.NewCommentsFromDomain(comments)})
}
