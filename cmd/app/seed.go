package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"sondeo-backend/internal/db"
	"sondeo-backend/internal/model"
	"sondeo-backend/utilities"
)

// seedDatabase creates the admin account and the base instrument fixtures.
// Safe to run repeatedly: fixtures are only inserted into an empty catalog.
func seedDatabase() {
	seedAdmin()

	var count int64
	if err := db.GetDB().Model(&model.Survey{}).Count(&count).Error; err != nil {
		log.Fatalf("failed to inspect survey catalog: %v", err)
	}
	if count > 0 {
		utilities.Info("survey catalog already populated, skipping fixtures")
		return
	}

	seedInstruments()
	utilities.Info("seed completed")
}

func seedAdmin() {
	var existing model.User
	if err := db.GetDB().Where("rol = ?", "admin").First(&existing).Error; err == nil {
		utilities.Info("admin account already exists (%s)", existing.Email)
		return
	}

	password := readAdminPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := model.User{
		Nombre:   "Administrador",
		Apellido: "Sondeo",
		Email:    "admin@sondeo.local",
		Password: string(hashed),
		Rol:      "admin",
	}
	if err := db.GetDB().Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin account: %v", err)
	}
	utilities.Info("admin account created (%s)", admin.Email)
}

// readAdminPassword prompts on the terminal, falling back to the
// SONDEO_ADMIN_PASSWORD variable for non-interactive runs.
func readAdminPassword() string {
	if v := os.Getenv("SONDEO_ADMIN_PASSWORD"); v != "" {
		return v
	}

	for {
		fmt.Print("Admin password: ")
		first, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Fatalf("cannot read password: set SONDEO_ADMIN_PASSWORD for non-interactive seeding (%v)", err)
		}
		fmt.Print("Confirm password: ")
		second, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Fatalf("cannot read password confirmation: %v", err)
		}
		if len(first) < 8 {
			fmt.Println("Password must be at least 8 characters.")
			continue
		}
		if string(first) != string(second) {
			fmt.Println("Passwords do not match.")
			continue
		}
		return string(first)
	}
}

func seedInstruments() {
	tx := db.GetDB()

	bienestar := model.Category{Nombre: "Bienestar psicológico"}
	lenguaje := model.Category{Nombre: "Lenguaje"}
	mustCreate(tx.Create(&bienestar).Error, "categories")
	mustCreate(tx.Create(&lenguaje).Error, "categories")

	// Liebowitz: every situation is rated twice, fear and avoidance.
	lsas := model.Survey{
		ID:          1,
		Titulo:      "Escala de Ansiedad Social de Liebowitz",
		Descripcion: "Evalúa miedo y evitación en situaciones sociales y de desempeño.",
		CategoryID:  bienestar.ID,
	}
	mustCreate(tx.Create(&lsas).Error, "lsas")
	for _, texto := range lsasItems {
		q := model.Question{SurveyID: lsas.ID, Texto: texto, Tipo: "scale"}
		mustCreate(tx.Create(&q).Error, "lsas question")
		for _, sub := range []string{"miedo", "evitacion"} {
			for valor, etiqueta := range map[string]string{
				"0": "Nada", "1": "Leve", "2": "Moderado", "3": "Severo",
			} {
				opt := model.AnswerOption{QuestionID: q.ID, Valor: valor, Etiqueta: etiqueta, Subescala: sub}
				mustCreate(tx.Create(&opt).Error, "lsas option")
			}
		}
	}

	habitos := model.Survey{
		ID:          3,
		Titulo:      "Cuestionario de Hábitos de Estudio",
		Descripcion: "Frecuencia de hábitos y rutinas de estudio.",
		CategoryID:  lenguaje.ID,
	}
	mustCreate(tx.Create(&habitos).Error, "habitos")
	seedLikertQuestions(habitos.ID, habitosItems, map[string]string{
		"1": "Nunca", "2": "Rara vez", "3": "A veces", "4": "Con frecuencia", "5": "Siempre",
	})

	satisfaccion := model.Survey{
		ID:          4,
		Titulo:      "Encuesta de Satisfacción",
		Descripcion: "Satisfacción general con la plataforma.",
		CategoryID:  bienestar.ID,
	}
	mustCreate(tx.Create(&satisfaccion).Error, "satisfaccion")
	seedLikertQuestions(satisfaccion.ID, satisfaccionItems, map[string]string{
		"1": "Muy insatisfecho", "2": "Insatisfecho", "3": "Neutral", "4": "Satisfecho", "5": "Muy satisfecho",
	})

	rosenberg := model.Survey{
		ID:          2,
		Titulo:      "Escala de Autoestima de Rosenberg",
		Descripcion: "Diez afirmaciones sobre la valoración de uno mismo.",
		CategoryID:  bienestar.ID,
	}
	mustCreate(tx.Create(&rosenberg).Error, "rosenberg")
	seedLikertQuestions(rosenberg.ID, rosenbergItems, map[string]string{
		"1": "Muy en desacuerdo", "2": "En desacuerdo", "3": "De acuerdo", "4": "Muy de acuerdo",
	})

	mspss := model.Survey{
		ID:          5,
		Titulo:      "Escala Multidimensional de Apoyo Social Percibido",
		Descripcion: "Percepción del apoyo recibido de otros significativos, familia y amistades.",
		CategoryID:  bienestar.ID,
	}
	mustCreate(tx.Create(&mspss).Error, "mspss")
	seedLikertQuestions(mspss.ID, mspssItems, map[string]string{
		"1": "Totalmente en desacuerdo", "2": "Muy en desacuerdo", "3": "Algo en desacuerdo",
		"4": "Neutral", "5": "Algo de acuerdo", "6": "Muy de acuerdo", "7": "Totalmente de acuerdo",
	})
	for _, sub := range []model.Subscale{
		{SurveyID: mspss.ID, Nombre: "Otros significativos", RangoItems: "1-4"},
		{SurveyID: mspss.ID, Nombre: "Familia", RangoItems: "5-8"},
		{SurveyID: mspss.ID, Nombre: "Amigos", RangoItems: "9-12"},
	} {
		s := sub
		mustCreate(tx.Create(&s).Error, "mspss subscale")
	}

	flcas := model.Survey{
		ID:          6,
		Titulo:      "Escala de Ansiedad en Clase de Lengua Extranjera",
		Descripcion: "Ansiedad experimentada al aprender y usar una lengua extranjera.",
		CategoryID:  lenguaje.ID,
	}
	mustCreate(tx.Create(&flcas).Error, "flcas")
	seedLikertQuestions(flcas.ID, flcasItems, map[string]string{
		"1": "Totalmente en desacuerdo", "2": "En desacuerdo", "3": "Neutral",
		"4": "De acuerdo", "5": "Totalmente de acuerdo",
	})

	vst := model.Survey{
		ID:          7,
		Titulo:      "Prueba de Tamaño de Vocabulario",
		Descripcion: "Reconocimiento de vocabulario; cada acierto suma cien palabras estimadas.",
		CategoryID:  lenguaje.ID,
	}
	mustCreate(tx.Create(&vst).Error, "vst")
	for _, texto := range vstItems {
		q := model.Question{SurveyID: vst.ID, Texto: texto, Tipo: "yes-no"}
		mustCreate(tx.Create(&q).Error, "vst question")
		for valor, etiqueta := range map[string]string{"1": "Correcta", "0": "Incorrecta"} {
			opt := model.AnswerOption{QuestionID: q.ID, Valor: valor, Etiqueta: etiqueta, TipoEscala: "vst-4"}
			mustCreate(tx.Create(&opt).Error, "vst option")
		}
	}
}

func seedLikertQuestions(surveyID uint, items []string, options map[string]string) {
	for _, texto := range items {
		q := model.Question{SurveyID: surveyID, Texto: texto, Tipo: "scale"}
		mustCreate(db.GetDB().Create(&q).Error, "question")
		for valor, etiqueta := range options {
			opt := model.AnswerOption{QuestionID: q.ID, Valor: valor, Etiqueta: etiqueta}
			mustCreate(db.GetDB().Create(&opt).Error, "option")
		}
	}
}

func mustCreate(err error, what string) {
	if err != nil {
		log.Fatalf("seed failed on %s: %v", what, err)
	}
}

var habitosItems = []string{
	"Estudio en un lugar fijo y libre de distracciones.",
	"Planifico mis sesiones de estudio con anticipación.",
	"Repaso mis apuntes el mismo día de la clase.",
	"Hago resúmenes o esquemas del material estudiado.",
	"Duermo lo suficiente antes de un examen.",
	"Consulto fuentes adicionales cuando no entiendo un tema.",
}

var satisfaccionItems = []string{
	"La plataforma es fácil de usar.",
	"Las instrucciones de cada cuestionario son claras.",
	"El tiempo de carga de las páginas es adecuado.",
	"Recomendaría esta plataforma a otras personas.",
}

var rosenbergItems = []string{
	"En general, estoy satisfecho conmigo mismo.",
	"A veces pienso que no sirvo para nada.",
	"Creo que tengo varias cualidades buenas.",
	"Puedo hacer las cosas tan bien como la mayoría de las personas.",
	"Creo que no tengo muchos motivos para sentirme orgulloso de mí.",
	"A veces me siento realmente inútil.",
	"Siento que soy una persona digna de aprecio, al menos en igual medida que los demás.",
	"Desearía valorarme más a mí mismo.",
	"A menudo me inclino a pensar que soy un fracasado.",
	"Tengo una actitud positiva hacia mí mismo.",
}

var mspssItems = []string{
	"Hay una persona especial que está cerca cuando la necesito.",
	"Hay una persona especial con quien puedo compartir mis alegrías y penas.",
	"Tengo una persona especial que es una verdadera fuente de consuelo para mí.",
	"Hay una persona especial en mi vida que se preocupa por mis sentimientos.",
	"Mi familia realmente intenta ayudarme.",
	"Recibo de mi familia la ayuda emocional que necesito.",
	"Puedo hablar de mis problemas con mi familia.",
	"Mi familia está dispuesta a ayudarme a tomar decisiones.",
	"Mis amigos realmente intentan ayudarme.",
	"Puedo contar con mis amigos cuando las cosas van mal.",
	"Tengo amigos con los que puedo compartir mis alegrías y penas.",
	"Puedo hablar de mis problemas con mis amigos.",
}

var flcasItems = []string{
	"Nunca me siento del todo seguro cuando hablo en clase de idioma.",
	"No me preocupa cometer errores en clase de idioma.",
	"Tiemblo cuando sé que me van a preguntar en clase de idioma.",
	"Me asusta no entender lo que el profesor dice en el idioma extranjero.",
	"No me molestaría tomar más clases de idioma.",
	"Durante la clase me sorprendo pensando en cosas que no tienen que ver con la materia.",
	"Pienso que a los demás se les dan mejor los idiomas que a mí.",
	"Normalmente estoy tranquilo durante los exámenes de idioma.",
	"Me entra pánico cuando tengo que hablar sin haberme preparado.",
	"Me preocupan las consecuencias de suspender la clase de idioma.",
	"No entiendo por qué algunas personas se alteran tanto por las clases de idioma.",
	"En clase de idioma me pongo tan nervioso que olvido cosas que sé.",
	"Me da vergüenza ofrecerme voluntario para responder en clase.",
	"No me pondría nervioso hablando el idioma con hablantes nativos.",
	"Me altero cuando no entiendo lo que el profesor está corrigiendo.",
	"Aunque vaya bien preparado, me siento ansioso en la clase de idioma.",
	"A menudo me dan ganas de no ir a la clase de idioma.",
	"Me siento seguro cuando hablo en la clase de idioma.",
	"Me da miedo que mi profesor corrija cada error que cometo.",
	"Siento que el corazón me late con fuerza cuando me van a preguntar.",
	"Cuanto más estudio para un examen de idioma, más me confundo.",
	"No siento presión por prepararme muy bien para la clase de idioma.",
	"Siempre siento que mis compañeros hablan el idioma mejor que yo.",
	"Me siento muy cohibido al hablar el idioma delante de otros estudiantes.",
	"La clase de idioma avanza tan rápido que me preocupa quedarme atrás.",
	"Me siento más tenso y nervioso en la clase de idioma que en otras clases.",
	"Me pongo nervioso y me confundo cuando hablo en la clase de idioma.",
	"Camino a la clase de idioma me siento muy seguro y relajado.",
	"Me pongo nervioso cuando no entiendo cada palabra que dice el profesor.",
	"Me agobia la cantidad de reglas que hay que aprender para hablar un idioma.",
	"Temo que los demás se rían de mí cuando hablo el idioma.",
	"Probablemente me sentiría cómodo entre hablantes nativos del idioma.",
	"Me pongo nervioso cuando el profesor pregunta algo que no he preparado.",
}

var vstItems = []string{
	"Seleccione el significado correcto de la palabra: efímero",
	"Seleccione el significado correcto de la palabra: ubicuo",
	"Seleccione el significado correcto de la palabra: lacónico",
	"Seleccione el significado correcto de la palabra: prosaico",
	"Seleccione el significado correcto de la palabra: diáfano",
	"Seleccione el significado correcto de la palabra: inefable",
	"Seleccione el significado correcto de la palabra: taciturno",
	"Seleccione el significado correcto de la palabra: perspicaz",
	"Seleccione el significado correcto de la palabra: vetusto",
	"Seleccione el significado correcto de la palabra: incólume",
	"Seleccione el significado correcto de la palabra: soslayar",
	"Seleccione el significado correcto de la palabra: abstruso",
	"Seleccione el significado correcto de la palabra: apócrifo",
	"Seleccione el significado correcto de la palabra: insondable",
	"Seleccione el significado correcto de la palabra: exiguo",
	"Seleccione el significado correcto de la palabra: proclive",
	"Seleccione el significado correcto de la palabra: acendrado",
	"Seleccione el significado correcto de la palabra: inextricable",
	"Seleccione el significado correcto de la palabra: prolijo",
	"Seleccione el significado correcto de la palabra: baladí",
	"Seleccione el significado correcto de la palabra: feraz",
	"Seleccione el significado correcto de la palabra: obcecado",
	"Seleccione el significado correcto de la palabra: zahorí",
	"Seleccione el significado correcto de la palabra: atávico",
}

var lsasItems = []string{
	"Hablar por teléfono en público",
	"Participar en un grupo pequeño",
	"Comer en lugares públicos",
	"Beber con otras personas en lugares públicos",
	"Hablar con personas de autoridad",
	"Actuar o dar una charla ante un público",
	"Ir a una fiesta",
	"Trabajar mientras me observan",
	"Escribir mientras me observan",
	"Llamar por teléfono a alguien que no conozco mucho",
	"Hablar con personas que no conozco mucho",
	"Conocer a personas desconocidas",
	"Orinar en baños públicos",
	"Entrar en una sala cuando los demás ya están sentados",
	"Ser el centro de atención",
	"Intervenir en una reunión",
	"Hacer un examen",
	"Expresar desacuerdo a personas que no conozco mucho",
	"Mirar a los ojos a personas que no conozco mucho",
	"Exponer un informe ante un grupo",
	"Intentar ligar con alguien",
	"Devolver un artículo en una tienda",
	"Dar una fiesta",
	"Resistir la presión de un vendedor insistente",
}
