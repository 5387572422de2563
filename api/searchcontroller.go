package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"wikibrief/config"
	"wikibrief/types"
)

// Searcher runs one lookup. *orchestrator.Pipeline satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) types.Outcome
}

// RegisterSearchRoutes registers the Wikipedia search endpoint.
func RegisterSearchRoutes(r *gin.Engine, searcher Searcher) {
	r.GET("/wikipedia/search", handleSearch(searcher))
}

// handleSearch resolves ?query= and answers with the merged article or an error object.
func handleSearch(searcher Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := searcher.Search(c.Request.Context(), c.Query("query"))
		status, body := Response(out)
		c.JSON(status, body)
	}
}

// Response maps an outcome to its HTTP status and JSON body. Only an
// internal failure is a 5xx; a missing query and an unmatched query are
// ordinary answers.
func Response(out types.Outcome) (int, any) {
	if out.Err == nil {
		if out.Result == nil {
			return http.StatusInternalServerError, gin.H{"error": config.MessageInternalFailure}
		}
		return http.StatusOK, out.Result.Payload()
	}

	switch out.Err.Reason {
	case types.ReasonMissingQuery:
		return http.StatusOK, gin.H{"error": config.MessageMissingQuery}
	case types.ReasonNoMatch:
		return http.StatusOK, gin.H{"error": config.MessageNoMatch, "query": out.Err.Query}
	default:
		return http.StatusInternalServerError, gin.H{
			"error":   config.MessageInternalFailure,
			"query":   out.Err.Query,
			"details": out.Err.Detail,
		}
	}
}
