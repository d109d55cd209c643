package service

import (
	"sondeo-backend/internal/model"
	"sondeo-backend/internal/repository"
)

type SurveyService interface {
	GetCategories() ([]model.Category, error)
	GetSurveysByCategory(categoryID uint) ([]model.Survey, error)
	GetSurveyByID(surveyID uint) (*model.Survey, error)
	GetQuestionsBySurvey(surveyID uint) ([]model.Question, error)
}

type surveyService struct {
	surveyRepo repository.SurveyRepository
}

func NewSurveyService(surveyRepo repository.SurveyRepository) SurveyService {
	return &surveyService{surveyRepo: surveyRepo}
}

func (s *surveyService) GetCategories() ([]model.Category, error) {
	return s.surveyRepo.GetCategories()
}

func (s *surveyService) GetSurveysByCategory(categoryID uint) ([]model.Survey, error) {
	return s.surveyRepo.GetSurveysByCategory(categoryID)
}

func (s *surveyService) GetSurveyByID(surveyID uint) (*model.Survey, error) {
	return s.surveyRepo.GetSurveyByID(surveyID)
}

func (s *surveyService) GetQuestionsBySurvey(surveyID uint) ([]model.Question, error) {
	return s.surveyRepo.GetQuestionsBySurvey(surveyID)
}
