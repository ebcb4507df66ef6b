package rest

import (
	"errors"
	"net/http"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/Guyuepp/Comment-Hub/internal/rest/request"
	"github.com/Guyuepp/Comment-Hub/internal/rest/response"
	"github.com/gin-gonic/gin"
)

// HeaderAuthToken carries the caller token for delete operations.
const HeaderAuthToken = "X-Auth-Token"

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func getStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
}

func signatureFromQuery(c *gin.Context) (domain.EntitySignature, bool) {
	sig := domain.EntitySignature{
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityId"),
		Workflow:   c.Query("workflow"),
	}
	if sig.EntityType == "" || sig.EntityID == "" || sig.Workflow == "" {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return domain.EntitySignature{}, false
	}
	return sig, true
}

type commentHandler struct {
	Service   domain.CommentUsecase
	Likes     domain.LikeUsecase
	Validator domain.TokenValidator
}

func NewCommentHandler(svc domain.CommentUsecase, likes domain.LikeUsecase, validator domain.TokenValidator) *commentHandler {
	return &commentHandler{
		Service:   svc,
		Likes:     likes,
		Validator: validator,
	}
}

func (h *commentHandler) AddFirst(c *gin.Context) {
	var req request.AddFirstComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.AddFirst(ctx, req.Signature(), req.Payload, req.AuthorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(comment))
}

func (h *commentHandler) AddReply(c *gin.Context) {
	var req request.AddReplyComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.AddReply(ctx, req.TreeID, req.ParentID, req.Payload, req.AuthorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(comment))
}

func (h *commentHandler) Update(c *gin.Context) {
	var req request.UpdateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.Update(ctx, req.CommentID, req.Payload, req.AuthorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(comment))
}

func (h *commentHandler) GetComments(c *gin.Context) {
	sig, ok := signatureFromQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	view, err := h.Service.GetComments(ctx, sig)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewTreeViewFromDomain(view))
}

// Delete authenticates the caller token before touching the tree; the
// engine itself only sees the verdict.
func (h *commentHandler) Delete(c *gin.Context) {
	commentID := c.Param("commentId")
	sig, ok := signatureFromQuery(c)
	if !ok {
		return
	}

	token := c.GetHeader(HeaderAuthToken)
	if _, err := h.Validator.Validate(token); err != nil {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid auth token"})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.Delete(ctx, commentID, sig)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(comment))
}

func (h *commentHandler) Resolve(c *gin.Context) {
	sig, ok := signatureFromQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	tree, err := h.Service.Resolve(ctx, sig)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentTreeFromDomain(tree))
}

func (h *commentHandler) Like(c *gin.Context) {
	var req request.LikeComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	count, err := h.Likes.Like(ctx, req.CommentID, req.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment_id": req.CommentID, "count": count})
}

func (h *commentHandler) ReadLike(c *gin.Context) {
	commentID := c.Query("commentId")
	userID := c.Query("userId")

	ctx := c.Request.Context()
	status, err := h.Likes.ReadLike(ctx, commentID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *commentHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "success")
}
