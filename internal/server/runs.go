package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
)

type runRequest struct {
	// TargetMonth accepts "2006-01" or "2006-01-02"; empty selects the
	// latest observed month.
	TargetMonth string `json:"target_month"`
}

func (r runRequest) toDomain() (riskdomain.RunRequest, error) {
	if r.TargetMonth == "" {
		return riskdomain.RunRequest{}, nil
	}
	month, err := riskdomain.ParseTargetMonth(r.TargetMonth)
	if err != nil {
		return riskdomain.RunRequest{}, err
	}
	return riskdomain.RunRequest{TargetMonth: &month}, nil
}

func bindRunRequest(c *gin.Context) (riskdomain.RunRequest, bool) {
	var body runRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return riskdomain.RunRequest{}, false
		}
	}
	req, err := body.toDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_month, want YYYY-MM or YYYY-MM-DD"})
		return riskdomain.RunRequest{}, false
	}
	return req, true
}

func (s *Server) TriggerRAGRun(c *gin.Context) {
	req, ok := bindRunRequest(c)
	if !ok {
		return
	}

	resp, err := s.risksvc.RunRAG(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) TriggerValidationRun(c *gin.Context) {
	req, ok := bindRunRequest(c)
	if !ok {
		return
	}

	resp, err := s.risksvc.RunValidation(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetRun(c *gin.Context) {
	run, err := s.risksvc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, run)
}

func (s *Server) GetRiskSummary(c *gin.Context) {
	summary, err := s.risksvc.GetRiskSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, summary)
}

func (s *Server) GetValidationSummary(c *gin.Context) {
	summary, err := s.risksvc.GetValidationSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, summary)
}

func (s *Server) ListHeldRecords(c *gin.Context) {
	held, err := s.risksvc.ListHeldRecords(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, held)
}

func (s *Server) ListCustomerSummaries(c *gin.Context) {
	summaries, err := s.risksvc.ListCustomerSummaries(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, summaries)
}

func (s *Server) ListEnrichedOrders(c *gin.Context) {
	enriched, err := s.risksvc.ListEnrichedOrders(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, enriched)
}
