package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"sondeo-backend/internal/model"
	"sondeo-backend/internal/repository"
	"sondeo-backend/internal/scoring"
	"sondeo-backend/utilities"
)

type ExportService interface {
	ExportResultPDF(resultID uint) (filename string, content []byte, err error)
	ResolveResultID(ref string) (uint, error)
	ResultOwner(resultID uint) (uint, error)
}

type exportService struct {
	responseRepo repository.ResponseRepository
	surveyRepo   repository.SurveyRepository
	userRepo     repository.UserRepository
	engine       *scoring.Engine
}

func NewExportService(responseRepo repository.ResponseRepository, surveyRepo repository.SurveyRepository, userRepo repository.UserRepository) ExportService {
	return &exportService{
		responseRepo: responseRepo,
		surveyRepo:   surveyRepo,
		userRepo:     userRepo,
		engine:       scoring.NewEngine(NewScoringSource(surveyRepo)),
	}
}

// InitExportEventListeners pre-renders the PDF report whenever a response is
// saved, so the first download does not pay the rendering cost.
func InitExportEventListeners(responseRepo repository.ResponseRepository, surveyRepo repository.SurveyRepository, userRepo repository.UserRepository) {
	svc := NewExportService(responseRepo, surveyRepo, userRepo)
	utilities.GlobalEventBus.Subscribe(utilities.EventResultCreated, func(data interface{}) {
		resultID, ok := data.(uint)
		if !ok {
			utilities.Warn("invalid result id received for report pre-render")
			return
		}
		_, content, err := svc.ExportResultPDF(resultID)
		if err != nil {
			utilities.Error("pre-rendering report for result %d: %v", resultID, err)
			return
		}
		if err := os.MkdirAll(filepath.Join("working", "reports"), 0755); err != nil {
			utilities.Error("creating report directory: %v", err)
			return
		}
		path := filepath.Join("working", "reports", fmt.Sprintf("reporte_%d.pdf", resultID))
		if err := os.WriteFile(path, content, 0644); err != nil {
			utilities.Error("writing pre-rendered report %s: %v", path, err)
		}
	})
}

// ExportResultPDF renders the full report for one result: survey and user
// header, score summary (total, average, interpretation, subscales) and the
// question/answer listing with option labels.
func (s *exportService) ExportResultPDF(resultID uint) (string, []byte, error) {
	result, err := s.responseRepo.GetResultByID(resultID)
	if err != nil {
		return "", nil, fmt.Errorf("fetch result: %w", err)
	}

	details, err := s.fetchRawAnswers(result)
	if err != nil {
		return "", nil, fmt.Errorf("fetch answers: %w", err)
	}

	// Header lookups are best-effort; a deleted user or survey must not make
	// old reports unexportable.
	var userName, userEmail, surveyTitle string
	if user, err := s.userRepo.GetUserByID(result.UserID); err == nil {
		userName = fmt.Sprintf("%s %s", user.Nombre, user.Apellido)
		userEmail = user.Email
	}
	if survey, err := s.surveyRepo.GetSurveyByID(result.SurveyID); err == nil {
		surveyTitle = survey.Titulo
	}
	if surveyTitle == "" {
		surveyTitle = fmt.Sprintf("Encuesta %d", result.SurveyID)
	}

	summary := s.summaryFor(result, details)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, tr(surveyTitle), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	if userName != "" {
		pdf.CellFormat(0, 6, tr("Usuario: "+userName), "", 1, "L", false, 0, "")
	}
	if userEmail != "" {
		pdf.CellFormat(0, 6, tr("Correo: "+userEmail), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr("Fecha: "+result.Fecha.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Puntaje total: %s", formatScore(summary.Total))), "", 1, "L", false, 0, "")
	if summary.Avg != nil {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Promedio: %s", formatScore(*summary.Avg))), "", 1, "L", false, 0, "")
	}
	if summary.Classification != "" {
		pdf.CellFormat(0, 6, tr("Interpretación: "+summary.Classification), "", 1, "L", false, 0, "")
	}
	if len(summary.Subscales) > 0 {
		pdf.Ln(2)
		pdf.CellFormat(0, 6, tr("Puntajes por subescala:"), "", 1, "L", false, 0, "")
		names := make([]string, 0, len(summary.Subscales))
		for name := range summary.Subscales {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pdf.CellFormat(0, 6, tr(fmt.Sprintf("- %s: %s", name, formatScore(summary.Subscales[name]))), "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(4)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 200, y)
	pdf.Ln(4)

	for i, d := range details {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, d.QuestionText)), "", "L", false)
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(68, 68, 68)
		pdf.MultiCell(0, 6, tr("Respuesta: "+answerLabel(d)), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, fmt.Errorf("render PDF: %w", err)
	}

	filename := sanitizeFilename(fmt.Sprintf("%s - %s - %s.pdf", surveyTitle, userName, result.Fecha.Format("20060102")))
	return filename, buf.Bytes(), nil
}

// ResolveResultID accepts either a numeric result id or the result's public
// uuid, so exported links do not have to expose sequential ids.
func (s *exportService) ResolveResultID(ref string) (uint, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return uint(id), nil
	}
	result, err := s.responseRepo.GetResultByPublicID(ref)
	if err != nil {
		return 0, err
	}
	return result.ID, nil
}

// ResultOwner returns the id of the user a result belongs to.
func (s *exportService) ResultOwner(resultID uint) (uint, error) {
	result, err := s.responseRepo.GetResultByID(resultID)
	if err != nil {
		return 0, err
	}
	return result.UserID, nil
}

// fetchRawAnswers mirrors the response service: id_resultado link when the
// column exists, user+survey match on the legacy schema.
func (s *exportService) fetchRawAnswers(result *model.Result) ([]repository.AnswerDetail, error) {
	linked, err := s.responseRepo.HasAnswerColumn("id_resultado")
	if err == nil && linked {
		return s.responseRepo.GetAnswerDetails(result.ID)
	}
	return s.responseRepo.GetAnswersByUserAndSurvey(result.UserID, result.SurveyID)
}

func (s *exportService) summaryFor(result *model.Result, details []repository.AnswerDetail) scoring.Summary {
	if result.PuntajeTotal != nil && result.ResumenJSON != nil {
		if summary, ok := scoring.UnmarshalSnapshot(*result.PuntajeTotal, *result.ResumenJSON); ok {
			return summary
		}
	}

	raws := RawAnswersFromDetails(details)
	if summary, err := s.engine.Score(result.SurveyID, raws); err == nil {
		return summary
	}

	var total float64
	for _, a := range scoring.Normalize(raws) {
		if a.Numeric {
			total += a.Value
		}
	}
	return scoring.Summary{Total: total, Subscales: map[string]float64{}}
}

// answerLabel prefers the option's display label, then the numeric value,
// then the verbatim answer text.
func answerLabel(d repository.AnswerDetail) string {
	if d.Etiqueta != "" {
		return d.Etiqueta
	}
	if d.ValorNumerico != nil {
		return formatScore(*d.ValorNumerico)
	}
	return d.Respuesta
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
