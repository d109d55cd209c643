package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sondeo-backend/internal/service"
)

type SurveyController struct {
	SurveyService service.SurveyService
}

func NewSurveyController(surveyService service.SurveyService) *SurveyController {
	return &SurveyController{SurveyService: surveyService}
}

// GetCategories handles GET /categories
func (sc *SurveyController) GetCategories(c *gin.Context) {
	categories, err := sc.SurveyService.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetSurveysByCategory handles GET /categories/:id/surveys
func (sc *SurveyController) GetSurveysByCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}
	surveys, err := sc.SurveyService.GetSurveysByCategory(uint(categoryID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// GetQuestions handles GET /surveys/:id/questions
func (sc *SurveyController) GetQuestions(c *gin.Context) {
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid survey id"})
		return
	}
	questions, err := sc.SurveyService.GetQuestionsBySurvey(uint(surveyID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}
