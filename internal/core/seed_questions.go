package core

func seedQuestions() map[int][]Question {
	return map[int][]Question{
		1: {
			{ID: 1, Type: QuestionMultipleChoice,
				Prompt: "La integral definida de una función continua f(x) en el intervalo [a,b] representa:",
				Options: []string{
					"El área bajo la curva entre x=a y x=b",
					"La derivada de la función",
					"El límite de la función",
					"La pendiente de la recta tangente",
				}},
			{ID: 2, Type: QuestionMultipleChoice,
				Prompt:  "¿Cuál es el resultado de ∫x² dx?",
				Options: []string{"x³/3 + C", "x³ + C", "2x + C", "x²/2 + C"}},
			{ID: 3, Type: QuestionTrueFalse,
				Prompt:  "La integral de una constante es igual a cero.",
				Options: trueFalse},
			{ID: 4, Type: QuestionMultipleChoice,
				Prompt: "El teorema fundamental del cálculo establece la relación entre:",
				Options: []string{
					"Derivadas e integrales",
					"Límites y continuidad",
					"Series y sucesiones",
					"Funciones y ecuaciones",
				}},
			{ID: 5, Type: QuestionShortAnswer,
				Prompt: "Explica brevemente qué es una integral impropia y da un ejemplo."},
			{ID: 6, Type: QuestionMultipleChoice,
				Prompt:  "¿Cuál de las siguientes integrales requiere sustitución trigonométrica?",
				Options: []string{"∫ 1/√(1-x²) dx", "∫ x² dx", "∫ e^x dx", "∫ 1/x dx"}},
			{ID: 7, Type: QuestionTrueFalse,
				Prompt:  "La regla de la cadena se aplica también en integración.",
				Options: trueFalse},
			{ID: 8, Type: QuestionMultipleChoice,
				Prompt: "El método de integración por partes se basa en:",
				Options: []string{
					"La regla del producto de derivadas",
					"El teorema de Pitágoras",
					"La regla de la cadena",
					"El teorema del valor medio",
				}},
			{ID: 9, Type: QuestionShortAnswer,
				Prompt: "Calcula la integral definida: ∫[0,2] x² dx (muestra el procedimiento)"},
			{ID: 10, Type: QuestionMultipleChoice,
				Prompt: "¿Qué representa la constante de integración C?",
				Options: []string{
					"Una familia infinita de soluciones",
					"Un número específico",
					"La derivada de la función",
					"El límite superior de integración",
				}},
			{ID: 11, Type: QuestionTrueFalse,
				Prompt:  "Toda función continua es integrable.",
				Options: trueFalse},
			{ID: 12, Type: QuestionMultipleChoice,
				Prompt:  "La integral de sen(x) dx es:",
				Options: []string{"-cos(x) + C", "cos(x) + C", "-sen(x) + C", "tan(x) + C"}},
			{ID: 13, Type: QuestionShortAnswer,
				Prompt: "Describe el método de fracciones parciales y cuándo se utiliza."},
			{ID: 14, Type: QuestionMultipleChoice,
				Prompt: "El área entre dos curvas f(x) y g(x) en [a,b] se calcula como:",
				Options: []string{
					"∫[a,b] |f(x) - g(x)| dx",
					"∫[a,b] f(x) dx + ∫[a,b] g(x) dx",
					"∫[a,b] f(x) · g(x) dx",
					"∫[a,b] f(x)/g(x) dx",
				}},
			{ID: 15, Type: QuestionTrueFalse,
				Prompt:  "La integral definida siempre da un resultado positivo.",
				Options: trueFalse},
		},
		2: {
			{ID: 1, Type: QuestionMultipleChoice,
				Prompt: "El principio de incertidumbre de Heisenberg relaciona:",
				Options: []string{
					"Posición y momento",
					"Masa y energía",
					"Carga y corriente",
					"Presión y volumen",
				}},
			{ID: 2, Type: QuestionTrueFalse,
				Prompt:  "Un electrón puede comportarse como onda y como partícula.",
				Options: trueFalse},
			{ID: 3, Type: QuestionMultipleChoice,
				Prompt:  "La constante de Planck tiene unidades de:",
				Options: []string{"J·s", "J/s", "N·m²", "kg·m/s²"}},
			{ID: 4, Type: QuestionShortAnswer,
				Prompt: "Explica con tus palabras qué describe la función de onda."},
			{ID: 5, Type: QuestionTrueFalse,
				Prompt:  "En el efecto fotoeléctrico la energía de los electrones depende de la intensidad de la luz.",
				Options: trueFalse},
		},
	}
}
