package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartkitchen/inventory-api/internal/recommend"
)

type RecommendHandler struct {
	recommender recommend.Recommender
	maxParallel int
}

func NewRecommendHandler(rec recommend.Recommender, maxParallel int) *RecommendHandler {
	if rec == nil {
		rec = recommend.NoopRecommender{}
	}
	return &RecommendHandler{recommender: rec, maxParallel: maxParallel}
}

type similarProductsRequest struct {
	ItemName string `json:"item_name" binding:"required"`
}

// SuggestSimilarProducts recommends alternatives for one item.
func (h *RecommendHandler) SuggestSimilarProducts(c *gin.Context) {
	var req similarProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	products, err := h.recommender.Suggest(c.Request.Context(), req.ItemName)
	if err != nil {
		domainError(c, err)
		return
	}
	if products == nil {
		products = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"item_name":        req.ItemName,
		"similar_products": products,
	})
}

// SuggestForShoppingList recommends alternatives for a whole list at once.
// Failed items resolve to empty lists instead of failing the request.
func (h *RecommendHandler) SuggestForShoppingList(c *gin.Context) {
	var items []string
	if err := c.ShouldBindJSON(&items); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	results := recommend.SuggestAll(c.Request.Context(), h.recommender, items, h.maxParallel)

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"recommendations": results,
	})
}
