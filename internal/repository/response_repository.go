package repository

import (
	"time"

	"gorm.io/gorm"

	"sondeo-backend/internal/db"
	"sondeo-backend/internal/db/query"
	"sondeo-backend/internal/model"
)

// AnswerDetail is a stored answer joined with its question text and, when an
// answer option was linked, the option's sub-label and display label.
type AnswerDetail struct {
	QuestionID    uint     `json:"id_pregunta"`
	QuestionText  string   `json:"pregunta"`
	Respuesta     string   `json:"respuesta"`
	ValorNumerico *float64 `json:"valor_numerico"`
	Subescala     string   `json:"subescala"`
	Etiqueta      string   `json:"etiqueta_opcion"`
}

// ResultFilter narrows the admin results listing. Zero values mean "any".
type ResultFilter struct {
	SurveyID uint
	UserID   uint
	From     time.Time
	To       time.Time
}

type ResponseRepository interface {
	HasResultColumn(column string) (bool, error)
	HasAnswerColumn(column string) (bool, error)
	CreateResult(result *model.Result, answers []model.Answer, linkAnswers bool) error
	FindOptionID(questionID uint, value, subLabel string) (*uint, error)
	SearchResults(filter ResultFilter) ([]model.Result, error)
	GetResultsByUser(userID uint) ([]model.Result, error)
	GetResultByID(resultID uint) (*model.Result, error)
	GetResultByPublicID(publicID string) (*model.Result, error)
	GetAnswerDetails(resultID uint) ([]AnswerDetail, error)
	GetAnswersByUserAndSurvey(userID, surveyID uint) ([]AnswerDetail, error)
}

type responseRepository struct{}

func NewResponseRepository() ResponseRepository {
	return &responseRepository{}
}

// HasResultColumn probes the resultados table for an optional column.
func (r *responseRepository) HasResultColumn(column string) (bool, error) {
	return db.NewQueryExecutor(db.GetDB()).IsFieldInTable("resultados", column)
}

// HasAnswerColumn probes the respuestas table for an optional column.
func (r *responseRepository) HasAnswerColumn(column string) (bool, error) {
	return db.NewQueryExecutor(db.GetDB()).IsFieldInTable("respuestas", column)
}

// CreateResult persists the result header and its answer rows in one
// transaction, so the snapshot is never visible without its raw answers.
// linkAnswers is false when the respuestas table predates the id_resultado
// column; answers are then stored unlinked, as the legacy schema did.
func (r *responseRepository) CreateResult(result *model.Result, answers []model.Answer, linkAnswers bool) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		for i := range answers {
			if linkAnswers {
				answers[i].ResultID = &result.ID
			} else {
				answers[i].ResultID = nil
			}
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindOptionID locates the answer option matching a submitted value, and
// sub-label when the key carried one. Used to link stored answers to their
// display labels.
func (r *responseRepository) FindOptionID(questionID uint, value, subLabel string) (*uint, error) {
	q := db.GetDB().Model(&model.AnswerOption{}).Where("id_pregunta = ? AND valor = ?", questionID, value)
	if subLabel != "" {
		q = q.Where("LOWER(COALESCE(subescala, '')) = ?", subLabel)
	}
	var ids []uint
	if err := q.Order("id").Limit(1).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

// resultListColumns builds the resultados column list, including the
// migration-added columns only when the probe confirms them. Probe failures
// leave the column out rather than failing the listing.
func resultListColumns(hasColumn func(column string) (bool, error)) []string {
	cols := []string{"id", "fecha", "id_usuario", "id_encuesta"}
	for _, col := range []string{"public_id", "puntaje_total", "resumen_json"} {
		if ok, err := hasColumn(col); err == nil && ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// SearchResults lists results narrowed by survey, user and date range.
func (r *responseRepository) SearchResults(filter ResultFilter) ([]model.Result, error) {
	qe := db.NewQueryExecutor(db.GetDB())
	cols := resultListColumns(func(column string) (bool, error) {
		return qe.IsFieldInTable("resultados", column)
	})

	qb := query.NewQueryBuilder().
		Select(cols...).
		From("resultados")
	if filter.SurveyID != 0 {
		qb.Where("id_encuesta = ?", filter.SurveyID)
	}
	if filter.UserID != 0 {
		qb.Where("id_usuario = ?", filter.UserID)
	}
	if !filter.From.IsZero() {
		qb.Where("fecha >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		qb.Where("fecha <= ?", filter.To)
	}
	qb.OrderBy("fecha DESC")

	sql, args := qb.Build()
	var results []model.Result
	err := db.GetDB().Raw(sql, args...).Scan(&results).Error
	return results, err
}

func (r *responseRepository) GetResultsByUser(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := db.GetDB().Where("id_usuario = ?", userID).Order("fecha DESC").Find(&results).Error
	return results, err
}

func (r *responseRepository) GetResultByID(resultID uint) (*model.Result, error) {
	var result model.Result
	err := db.GetDB().Where("id = ?", resultID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *responseRepository) GetResultByPublicID(publicID string) (*model.Result, error) {
	var result model.Result
	err := db.GetDB().Where("public_id = ?", publicID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAnswerDetails returns the raw answers of a result joined with question
// text and option metadata, ordered by question id to match the survey's
// ordinal order.
func (r *responseRepository) GetAnswerDetails(resultID uint) ([]AnswerDetail, error) {
	var details []AnswerDetail
	err := db.GetDB().Raw(`
		SELECT r.id_pregunta AS question_id,
		       p.texto AS question_text,
		       r.respuesta,
		       r.valor_numerico,
		       COALESCE(o.subescala, '') AS subescala,
		       COALESCE(o.etiqueta, '') AS etiqueta
		FROM respuestas r
		INNER JOIN preguntas p ON p.id = r.id_pregunta
		LEFT JOIN opciones_respuesta o ON o.id = r.id_opcion_respuesta
		WHERE r.id_resultado = ?
		ORDER BY p.id, r.id`, resultID).Scan(&details).Error
	return details, err
}

// GetAnswersByUserAndSurvey matches answers by user and survey instead of
// the id_resultado link. This is the only way to reach rows written before
// the respuestas table gained that column.
func (r *responseRepository) GetAnswersByUserAndSurvey(userID, surveyID uint) ([]AnswerDetail, error) {
	var details []AnswerDetail
	err := db.GetDB().Raw(`
		SELECT r.id_pregunta AS question_id,
		       p.texto AS question_text,
		       r.respuesta,
		       r.valor_numerico,
		       COALESCE(o.subescala, '') AS subescala,
		       COALESCE(o.etiqueta, '') AS etiqueta
		FROM respuestas r
		INNER JOIN preguntas p ON p.id = r.id_pregunta
		LEFT JOIN opciones_respuesta o ON o.id = r.id_opcion_respuesta
		WHERE r.id_usuario = ? AND p.id_encuesta = ?
		ORDER BY p.id, r.id`, userID, surveyID).Scan(&details).Error
	return details, err
}
