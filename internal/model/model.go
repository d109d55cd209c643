package model

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"password,omitempty"` // Excluded from JSON responses after auth
	Rol       string    `json:"role" gorm:"column:rol;default:'cliente'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "usuarios" }

type Category struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Nombre string `json:"nombre" gorm:"not null"`
}

func (Category) TableName() string { return "categorias" }

type Survey struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Titulo      string     `json:"titulo" gorm:"not null"`
	Descripcion string     `json:"descripcion"`
	CategoryID  uint       `json:"id_categoria" gorm:"column:id_categoria"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:SurveyID"`
}

func (Survey) TableName() string { return "encuestas" }

type Question struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	SurveyID uint           `json:"id_encuesta" gorm:"column:id_encuesta;not null;index"`
	Texto    string         `json:"texto" gorm:"not null"`
	Tipo     string         `json:"tipo"` // scale, multiple-choice, text, yes-no
	Options  []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

func (Question) TableName() string { return "preguntas" }

// AnswerOption is one selectable option of a question. Subescala carries the
// sub-label for multi-part items (miedo/evitacion) and TipoEscala the scale
// marker tag (e.g. vst-4) used for instrument detection.
type AnswerOption struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"id_pregunta" gorm:"column:id_pregunta;not null;index"`
	Valor      string `json:"valor"`
	Etiqueta   string `json:"etiqueta"`
	Subescala  string `json:"subescala"`
	TipoEscala string `json:"tipo_escala" gorm:"column:tipo_escala"`
}

func (AnswerOption) TableName() string { return "opciones_respuesta" }

// Subscale is a named ordinal range over a survey's question order, stored
// as a "<start>-<end>" string.
type Subscale struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	SurveyID   uint   `json:"id_encuesta" gorm:"column:id_encuesta;not null;index"`
	Nombre     string `json:"nombre" gorm:"not null"`
	RangoItems string `json:"rango_items" gorm:"column:rango_items"`
}

func (Subscale) TableName() string { return "subescalas" }

// Result is one completed response set. PuntajeTotal and ResumenJSON hold
// the denormalized scoring snapshot; both are nullable so read paths keep
// working against rows written before the snapshot columns existed.
type Result struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PublicID     string    `json:"public_id" gorm:"column:public_id;uniqueIndex"`
	Fecha        time.Time `json:"fecha"`
	UserID       uint      `json:"id_usuario" gorm:"column:id_usuario;not null;index"`
	SurveyID     uint      `json:"id_encuesta" gorm:"column:id_encuesta;not null;index"`
	PuntajeTotal *float64  `json:"puntaje_total,omitempty" gorm:"column:puntaje_total"`
	ResumenJSON  *string   `json:"-" gorm:"column:resumen_json"`
}

func (Result) TableName() string { return "resultados" }

// Answer is one stored raw answer row. Respuesta keeps the submitted value
// verbatim; ValorNumerico is set only when it parsed as a number, and
// OptionID links the matching answer option when one was found.
type Answer struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	Respuesta     string   `json:"respuesta" gorm:"type:text"`
	QuestionID    uint     `json:"id_pregunta" gorm:"column:id_pregunta;not null;index"`
	UserID        uint     `json:"id_usuario" gorm:"column:id_usuario;not null"`
	ResultID      *uint    `json:"id_resultado,omitempty" gorm:"column:id_resultado;index"`
	ValorNumerico *float64 `json:"valor_numerico,omitempty" gorm:"column:valor_numerico"`
	OptionID      *uint    `json:"id_opcion_respuesta,omitempty" gorm:"column:id_opcion_respuesta"`
}

func (Answer) TableName() string { return "respuestas" }
