package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"sondeo-backend/internal/model"
	"sondeo-backend/internal/repository"
	"sondeo-backend/internal/scoring"
	"sondeo-backend/utilities"
)

// ResponsePayload is the API shape of one completed response set, matching
// what the dashboard and results views consume.
type ResponsePayload struct {
	ID          string              `json:"id"`
	SurveyID    string              `json:"surveyId"`
	UserID      string              `json:"userId"`
	Answers     []scoring.RawAnswer `json:"answers"`
	Totals      scoring.Summary     `json:"totals"`
	CompletedAt time.Time           `json:"completedAt"`
}

type ResponseService interface {
	SubmitResponse(surveyID, userID uint, answers []scoring.RawAnswer) (*ResponsePayload, error)
	GetResponses(filter repository.ResultFilter) ([]ResponsePayload, error)
	GetResultsByUser(userID uint) ([]ResponsePayload, error)
}

type responseService struct {
	responseRepo repository.ResponseRepository
	surveyRepo   repository.SurveyRepository
	engine       *scoring.Engine
	bus          *utilities.EventBus
}

func NewResponseService(responseRepo repository.ResponseRepository, surveyRepo repository.SurveyRepository, bus *utilities.EventBus) ResponseService {
	return &responseService{
		responseRepo: responseRepo,
		surveyRepo:   surveyRepo,
		engine:       scoring.NewEngine(NewScoringSource(surveyRepo)),
		bus:          bus,
	}
}

// scoringSource adapts the survey repository to the engine's SurveySource.
type scoringSource struct {
	surveys repository.SurveyRepository
}

// NewScoringSource exposes survey configuration to the scoring engine.
func NewScoringSource(surveys repository.SurveyRepository) scoring.SurveySource {
	return &scoringSource{surveys: surveys}
}

func (s *scoringSource) QuestionIDs(surveyID uint) ([]uint, error) {
	return s.surveys.GetQuestionIDs(surveyID)
}

func (s *scoringSource) SubscaleDefs(surveyID uint) ([]scoring.SubscaleDef, error) {
	subscales, err := s.surveys.GetSubscales(surveyID)
	if err != nil {
		return nil, err
	}
	defs := make([]scoring.SubscaleDef, 0, len(subscales))
	for _, sub := range subscales {
		defs = append(defs, scoring.SubscaleDef{Name: sub.Nombre, RangeItems: sub.RangoItems})
	}
	return defs, nil
}

func (s *scoringSource) HasScaleMarker(surveyID uint, marker string) (bool, error) {
	return s.surveys.HasScaleMarker(surveyID, marker)
}

// SubmitResponse scores the submitted answers, persists the result header,
// the raw answer rows and the scoring snapshot in one transaction, and
// returns the payload echoed to the client. The snapshot columns are probed
// first so the write degrades gracefully on a pre-migration schema.
func (s *responseService) SubmitResponse(surveyID, userID uint, answers []scoring.RawAnswer) (*ResponsePayload, error) {
	summary, err := s.engine.Score(surveyID, answers)
	if err != nil {
		return nil, fmt.Errorf("compute score: %w", err)
	}

	hasTotal, err := s.responseRepo.HasResultColumn("puntaje_total")
	if err != nil {
		return nil, fmt.Errorf("probe schema: %w", err)
	}
	hasResumen, err := s.responseRepo.HasResultColumn("resumen_json")
	if err != nil {
		return nil, fmt.Errorf("probe schema: %w", err)
	}
	hasResultFK, err := s.responseRepo.HasAnswerColumn("id_resultado")
	if err != nil {
		return nil, fmt.Errorf("probe schema: %w", err)
	}

	result := model.Result{
		PublicID: uuid.New().String(),
		Fecha:    time.Now(),
		UserID:   userID,
		SurveyID: surveyID,
	}
	if hasTotal {
		total := summary.Total
		result.PuntajeTotal = &total
	}
	if hasResumen {
		if snap, err := scoring.MarshalSnapshot(summary); err == nil {
			result.ResumenJSON = &snap
		}
	}

	rows := s.buildAnswerRows(userID, answers)
	if err := s.responseRepo.CreateResult(&result, rows, hasResultFK); err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}

	s.bus.Publish(utilities.EventResultCreated, result.ID)

	return &ResponsePayload{
		ID:          strconv.FormatUint(uint64(result.ID), 10),
		SurveyID:    strconv.FormatUint(uint64(surveyID), 10),
		UserID:      strconv.FormatUint(uint64(userID), 10),
		Answers:     answers,
		Totals:      summary,
		CompletedAt: result.Fecha,
	}, nil
}

// buildAnswerRows converts submitted answers into respuestas rows. Keys with
// an unparseable base id are skipped; numeric values additionally get their
// valor_numerico column and a best-effort link to the matching answer
// option.
func (s *responseService) buildAnswerRows(userID uint, answers []scoring.RawAnswer) []model.Answer {
	rows := make([]model.Answer, 0, len(answers))
	for _, a := range answers {
		base, subLabel := scoring.SplitKey(a.Key)
		qid, err := strconv.ParseUint(base, 10, 64)
		if err != nil {
			continue
		}

		row := model.Answer{
			Respuesta:  a.Value,
			QuestionID: uint(qid),
			UserID:     userID,
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64); err == nil {
			value := v
			row.ValorNumerico = &value
			valStr := strconv.FormatFloat(v, 'f', -1, 64)
			if optID, err := s.responseRepo.FindOptionID(uint(qid), valStr, subLabel); err == nil && optID != nil {
				row.OptionID = optID
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// GetResponses lists all results for the admin dashboard, reusing the
// persisted snapshot when present and recomputing from raw answers
// otherwise.
func (s *responseService) GetResponses(filter repository.ResultFilter) ([]ResponsePayload, error) {
	results, err := s.responseRepo.SearchResults(filter)
	if err != nil {
		return nil, err
	}

	payloads := make([]ResponsePayload, 0, len(results))
	for _, result := range results {
		payloads = append(payloads, s.payloadFor(result, true))
	}
	return payloads, nil
}

// GetResultsByUser lists a user's own results. Raw answers are fetched for
// scoring but not echoed back in the payload.
func (s *responseService) GetResultsByUser(userID uint) ([]ResponsePayload, error) {
	results, err := s.responseRepo.GetResultsByUser(userID)
	if err != nil {
		return nil, err
	}

	payloads := make([]ResponsePayload, 0, len(results))
	for _, result := range results {
		payloads = append(payloads, s.payloadFor(result, false))
	}
	return payloads, nil
}

func (s *responseService) payloadFor(result model.Result, includeAnswers bool) ResponsePayload {
	var raws []scoring.RawAnswer
	if details, err := s.fetchRawAnswers(result); err == nil {
		raws = RawAnswersFromDetails(details)
	} else {
		utilities.Warn("failed to load answers for result %d: %v", result.ID, err)
	}

	payload := ResponsePayload{
		ID:          strconv.FormatUint(uint64(result.ID), 10),
		SurveyID:    strconv.FormatUint(uint64(result.SurveyID), 10),
		UserID:      strconv.FormatUint(uint64(result.UserID), 10),
		Answers:     []scoring.RawAnswer{},
		Totals:      s.summaryFor(result, raws),
		CompletedAt: result.Fecha,
	}
	if includeAnswers {
		payload.Answers = raws
	}
	return payload
}

// fetchRawAnswers loads a result's stored answers through the id_resultado
// link when the column exists, and by user+survey match on schemas that
// predate it, where answer rows were written unlinked.
func (s *responseService) fetchRawAnswers(result model.Result) ([]repository.AnswerDetail, error) {
	linked, err := s.responseRepo.HasAnswerColumn("id_resultado")
	if err == nil && linked {
		return s.responseRepo.GetAnswerDetails(result.ID)
	}
	return s.responseRepo.GetAnswersByUserAndSurvey(result.UserID, result.SurveyID)
}

// summaryFor resolves the score of a stored result: the persisted snapshot
// when both columns hold one, else a recompute from the raw answers, else a
// bare numeric sum so the listing never fails on one bad row.
func (s *responseService) summaryFor(result model.Result, raws []scoring.RawAnswer) scoring.Summary {
	if result.PuntajeTotal != nil && result.ResumenJSON != nil {
		if summary, ok := scoring.UnmarshalSnapshot(*result.PuntajeTotal, *result.ResumenJSON); ok {
			return summary
		}
	}
	if summary, err := s.engine.Score(result.SurveyID, raws); err == nil {
		return summary
	} else {
		utilities.Warn("recompute failed for result %d: %v", result.ID, err)
	}

	var total float64
	for _, a := range scoring.Normalize(raws) {
		if a.Numeric {
			total += a.Value
		}
	}
	return scoring.Summary{Total: total, Subscales: map[string]float64{}}
}

// RawAnswersFromDetails rebuilds the submitted answer keys from stored rows,
// reattaching the option's sub-label so recomputation sees the same
// composite keys the client sent.
func RawAnswersFromDetails(details []repository.AnswerDetail) []scoring.RawAnswer {
	raws := make([]scoring.RawAnswer, 0, len(details))
	for _, d := range details {
		key := strconv.FormatUint(uint64(d.QuestionID), 10)
		if d.Subescala != "" {
			key += "|" + d.Subescala
		}
		value := d.Respuesta
		if d.ValorNumerico != nil {
			value = strconv.FormatFloat(*d.ValorNumerico, 'f', -1, 64)
		}
		raws = append(raws, scoring.RawAnswer{Key: key, Value: value})
	}
	return raws
}
