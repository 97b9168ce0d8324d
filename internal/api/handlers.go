package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"healthscore/internal/analysis"
	"healthscore/internal/logger"
	"healthscore/internal/questionnaire"
	"healthscore/internal/service"
	"healthscore/internal/store"
)

// AssessmentHandler serves the assessment, dashboard and admin endpoints
type AssessmentHandler struct {
	svc *service.AssessmentService
	log *logger.Logger
}

func NewAssessmentHandler(svc *service.AssessmentService, log *logger.Logger) *AssessmentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AssessmentHandler{svc: svc, log: log}
}

type submitRequest struct {
	Answers map[string]any `json:"answers"`
}

// submitResponse is the stored assessment plus the engine feedback for it
type submitResponse struct {
	*store.Assessment
	Feedback    []analysis.PillarFeedback `json:"feedback"`
	Description string                    `json:"description"`
}

// POST /api/users/:userID/assessments
func (h *AssessmentHandler) Submit(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Answers == nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, errors.New("answers required"))
		return
	}

	answers, err := questionnaire.Parse(req.Answers)
	if err != nil {
		var verr *questionnaire.ValidationError
		if errors.As(err, &verr) {
			RespondValidation(c, verr)
			return
		}
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	a, err := h.svc.Submit(c.Request.Context(), userID, answers)
	if err != nil {
		h.log.Error("submit assessment failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}

	result := h.svc.Result(a)
	c.JSON(http.StatusCreated, submitResponse{
		Assessment:  a,
		Feedback:    result.Feedback,
		Description: result.Description,
	})
}

// GET /api/users/:userID/assessments
func (h *AssessmentHandler) ListForUser(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}

	records, err := h.svc.GetHistory(userID)
	if err != nil {
		h.log.Error("list assessments failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	if records == nil {
		records = []store.Assessment{}
	}
	RespondOK(c, gin.H{"assessments": records})
}

// GET /api/assessments/:id
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, ok := assessmentParam(c)
	if !ok {
		return
	}

	a, err := h.svc.GetAssessment(id)
	if errors.Is(err, store.ErrAssessmentNotFound) {
		RespondError(c, http.StatusNotFound, CodeNotFound, err)
		return
	}
	if err != nil {
		h.log.Error("get assessment failed", "assessment_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, a)
}

// DELETE /api/assessments/:id
func (h *AssessmentHandler) Delete(c *gin.Context) {
	id, ok := assessmentParam(c)
	if !ok {
		return
	}

	err := h.svc.DeleteAssessment(id)
	if errors.Is(err, store.ErrAssessmentNotFound) {
		RespondError(c, http.StatusNotFound, CodeNotFound, err)
		return
	}
	if err != nil {
		h.log.Error("delete assessment failed", "assessment_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/users/:userID/dashboard
func (h *AssessmentHandler) Dashboard(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}

	data, err := h.svc.GetDashboardData(userID)
	if err != nil {
		h.log.Error("dashboard failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, data)
}

// GET /api/admin/analytics
func (h *AssessmentHandler) AdminAnalytics(c *gin.Context) {
	stats, err := h.svc.GetAdminAnalytics(c.Request.Context())
	if err != nil {
		h.log.Error("admin analytics failed", "error", err)
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, stats)
}

// GET /api/questions
func (h *AssessmentHandler) Questions(c *gin.Context) {
	RespondOK(c, gin.H{"questions": questionnaire.Questions()})
}

func userParam(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.Param("userID"))
	if userID == "" {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, errors.New("user id required"))
		return "", false
	}
	return userID, true
}

func assessmentParam(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, fmt.Errorf("invalid assessment id: %w", err))
		return "", false
	}
	return id.String(), true
}
