package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sondeo-backend/internal/repository"
	"sondeo-backend/internal/scoring"
	"sondeo-backend/internal/service"
)

// flexString accepts a JSON string or number, since clients send question
// ids and answer values in either form.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = flexString(b)
	return nil
}

type submitAnswer struct {
	QuestionID flexString `json:"questionId"`
	Answer     flexString `json:"answer"`
}

type submitRequest struct {
	SurveyID flexString     `json:"surveyId"`
	UserID   flexString     `json:"userId"`
	Answers  []submitAnswer `json:"answers"`
}

type ResponseController struct {
	ResponseService service.ResponseService
}

func NewResponseController(responseService service.ResponseService) *ResponseController {
	return &ResponseController{ResponseService: responseService}
}

// SubmitResponse handles POST /responses
func (rc *ResponseController) SubmitResponse(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	surveyID, err := parseID(string(req.SurveyID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid survey id"})
		return
	}
	if len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no answers submitted"})
		return
	}

	// A user can only submit on their own behalf; admins may submit for
	// anyone (assisted data entry).
	userID := authenticatedUserID(c)
	if req.UserID != "" {
		requested, err := parseID(string(req.UserID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		if requested != userID && !isAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot submit for another user"})
			return
		}
		userID = requested
	}
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	raws := make([]scoring.RawAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		raws = append(raws, scoring.RawAnswer{Key: string(a.QuestionID), Value: string(a.Answer)})
	}

	payload, err := rc.ResponseService.SubmitResponse(surveyID, userID, raws)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save response"})
		return
	}
	c.JSON(http.StatusCreated, payload)
}

// GetResponses handles GET /responses, the admin listing. Optional query
// params: surveyId, userId, from, to (YYYY-MM-DD).
func (rc *ResponseController) GetResponses(c *gin.Context) {
	var filter repository.ResultFilter

	if v := c.Query("surveyId"); v != "" {
		id, err := parseID(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid surveyId filter"})
			return
		}
		filter.SurveyID = id
	}
	if v := c.Query("userId"); v != "" {
		id, err := parseID(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId filter"})
			return
		}
		filter.UserID = id
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		filter.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		// Inclusive end of day.
		filter.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	payloads, err := rc.ResponseService.GetResponses(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payloads)
}

// GetUserResults handles GET /users/:id/results. Users see only their own
// results; admins can read anyone's.
func (rc *ResponseController) GetUserResults(c *gin.Context) {
	requested, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if requested != authenticatedUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's results"})
		return
	}

	payloads, err := rc.ResponseService.GetResultsByUser(requested)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payloads)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	return uint(id), err
}

func authenticatedUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	return exists && role == "admin"
}
