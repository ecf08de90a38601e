package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gcbaptista/docsearch/engine"
	"github.com/gcbaptista/docsearch/model"
	"github.com/gcbaptista/docsearch/services"
	"github.com/gcbaptista/docsearch/store"
)

// API holds dependencies for API handlers: the document store backing
// both the live index and its persisted raw content, and the snapshot
// path documents are flushed to after every mutation.
type API struct {
	store        *store.Store
	snapshotPath string
}

// NewAPI creates a new API handler structure. snapshotPath may be empty,
// in which case mutations are never persisted (useful for tests).
func NewAPI(s *store.Store, snapshotPath string) *API {
	return &API{store: s, snapshotPath: snapshotPath}
}

// persist flushes the store to its snapshot path, logging (but not
// failing the request on) any error, matching the teacher's
// best-effort post-mutation persistence.
func (a *API) persist() {
	if a.snapshotPath == "" {
		return
	}
	if err := a.store.Save(a.snapshotPath); err != nil {
		log.Printf("Warning: failed to persist index snapshot to %s: %v", a.snapshotPath, err)
	}
}

// SetupRoutes defines all the API routes for the search engine.
func SetupRoutes(router *gin.Engine, s *store.Store, snapshotPath string) {
	apiHandler := NewAPI(s, snapshotPath)

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/stats", apiHandler.StatsHandler)

	docRoutes := router.Group("/documents")
	{
		docRoutes.POST("", apiHandler.InsertDocumentHandler)
		docRoutes.DELETE("/:key", apiHandler.DeleteDocumentHandler)
	}

	searchRoutes := router.Group("/search")
	{
		searchRoutes.GET("", apiHandler.SearchHandler)
		searchRoutes.GET("/explain", apiHandler.SearchExplainHandler)
	}
}

// HealthCheckHandler provides a simple health check endpoint.
func (a *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "docsearch",
		"timestamp": time.Now().Unix(),
	})
}

// StatsHandler returns corpus-wide counts.
func (a *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, services.StatsResult{
		DocCount:  a.store.Engine.DocCount(),
		TermCount: a.store.Engine.TermCount(),
	})
}

// InsertDocumentHandler handles inserting or replacing a document.
func (a *API) InsertDocumentHandler(c *gin.Context) {
	var req services.InsertDocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if req.Key == "" {
		SendValidationError(c, "key", "document key is required")
		return
	}

	fields := make(map[string]engine.FieldInput, len(req.Fields))
	for name, f := range req.Fields {
		markup, err := decodeMarkup(f.Markup)
		if err != nil {
			SendValidationError(c, "fields."+name+".markup", err.Error())
			return
		}
		fields[name] = engine.FieldInput{Text: f.Text, Markup: markup}
	}

	a.store.InsertDoc(model.DocKey(req.Key), fields, req.Features)
	a.persist()
	c.JSON(http.StatusOK, gin.H{"message": "document '" + req.Key + "' indexed"})
}

// DeleteDocumentHandler handles deleting a document by key.
func (a *API) DeleteDocumentHandler(c *gin.Context) {
	key := c.Param("key")
	if !a.store.DeleteDoc(model.DocKey(key)) {
		SendDocumentNotFoundError(c, key)
		return
	}
	a.persist()
	c.JSON(http.StatusOK, gin.H{"message": "document '" + key + "' deleted"})
}

// SearchHandler handles GET /search?q=...&top_k=...
func (a *API) SearchHandler(c *gin.Context) {
	query := c.Query("q")
	topK := 10
	if raw := c.Query("top_k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			SendValidationError(c, "top_k", "must be a non-negative integer")
			return
		}
		topK = n
	}

	start := time.Now()
	hits := a.store.Engine.Query(query, topK)
	took := time.Since(start).Milliseconds()

	result := services.SearchResult{
		Hits:    make([]services.HitResult, len(hits)),
		Total:   len(hits),
		Took:    took,
		QueryId: uuid.NewString(),
	}
	for i, h := range hits {
		result.Hits[i] = services.HitResult{Key: string(h.Key), Score: h.Score}
	}
	c.JSON(http.StatusOK, result)
}

// SearchExplainHandler handles GET /search/explain?q=...
func (a *API) SearchExplainHandler(c *gin.Context) {
	query := c.Query("q")

	start := time.Now()
	hits := a.store.Engine.QueryExplain(query)
	took := time.Since(start).Milliseconds()

	result := services.ExplainResult{
		Hits:    make([]services.ExplainedHitResult, len(hits)),
		Total:   len(hits),
		Took:    took,
		QueryId: uuid.NewString(),
	}
	schema := a.store.Engine.Schema()
	for i, h := range hits {
		eh := services.ExplainedHitResult{
			Key:          string(h.Key),
			OverallScore: h.Explanation.OverallScore,
		}
		for termId, score := range h.Explanation.TermScores {
			term, _ := a.store.Engine.ResolveTerm(termId)
			eh.TermScores = append(eh.TermScores, services.TermScore{Term: string(term), Score: score})
		}
		for phi, score := range h.Explanation.NonTermScores {
			name := "unknown"
			if int(phi) >= 0 && int(phi) < len(schema.Features) {
				name = schema.Features[phi].Name
			}
			eh.FeatureScores = append(eh.FeatureScores, services.TermScore{Term: name, Score: score})
		}
		result.Hits[i] = eh
	}
	c.JSON(http.StatusOK, result)
}
