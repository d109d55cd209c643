package repository

import (
	"sondeo-backend/internal/db"
	"sondeo-backend/internal/model"
)

type SurveyRepository interface {
	GetCategories() ([]model.Category, error)
	GetSurveysByCategory(categoryID uint) ([]model.Survey, error)
	GetSurveyByID(surveyID uint) (*model.Survey, error)
	GetQuestionsBySurvey(surveyID uint) ([]model.Question, error)
	GetQuestionIDs(surveyID uint) ([]uint, error)
	GetSubscales(surveyID uint) ([]model.Subscale, error)
	HasScaleMarker(surveyID uint, marker string) (bool, error)
}

type surveyRepository struct{}

func NewSurveyRepository() SurveyRepository {
	return &surveyRepository{}
}

func (r *surveyRepository) GetCategories() ([]model.Category, error) {
	var categories []model.Category
	err := db.GetDB().Order("id").Find(&categories).Error
	return categories, err
}

func (r *surveyRepository) GetSurveysByCategory(categoryID uint) ([]model.Survey, error) {
	var surveys []model.Survey
	err := db.GetDB().Where("id_categoria = ?", categoryID).Order("id").Find(&surveys).Error
	return surveys, err
}

func (r *surveyRepository) GetSurveyByID(surveyID uint) (*model.Survey, error) {
	var survey model.Survey
	err := db.GetDB().Where("id = ?", surveyID).First(&survey).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) GetQuestionsBySurvey(surveyID uint) ([]model.Question, error) {
	var questions []model.Question
	err := db.GetDB().Preload("Options").Where("id_encuesta = ?", surveyID).Order("id").Find(&questions).Error
	return questions, err
}

// GetQuestionIDs returns the survey's question ids in ascending order; the
// scoring engine derives ordinal positions from exactly this ordering.
func (r *surveyRepository) GetQuestionIDs(surveyID uint) ([]uint, error) {
	var ids []uint
	err := db.GetDB().Model(&model.Question{}).
		Where("id_encuesta = ?", surveyID).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *surveyRepository) GetSubscales(surveyID uint) ([]model.Subscale, error) {
	var subscales []model.Subscale
	err := db.GetDB().Where("id_encuesta = ?", surveyID).Order("id").Find(&subscales).Error
	return subscales, err
}

// HasScaleMarker reports whether any answer option of the survey carries the
// given scale tag. The tipo_escala column is optional in older deployments,
// so its absence is reported as an error for the caller to degrade on.
func (r *surveyRepository) HasScaleMarker(surveyID uint, marker string) (bool, error) {
	qe := db.NewQueryExecutor(db.GetDB())
	hasCol, err := qe.IsFieldInTable("opciones_respuesta", "tipo_escala")
	if err != nil {
		return false, err
	}
	if !hasCol {
		return false, nil
	}

	var count int64
	err = db.GetDB().Model(&model.AnswerOption{}).
		Joins("JOIN preguntas ON preguntas.id = opciones_respuesta.id_pregunta").
		Where("preguntas.id_encuesta = ? AND opciones_respuesta.tipo_escala = ?", surveyID, marker).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
