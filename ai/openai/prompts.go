// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"github.com/tmc/langchaingo/prompts"
)

// classificationPromptTemplate is the instruction template sent with every
// query. The marker lines are kept so that models which ignore the JSON
// instruction still route correctly.
const classificationPromptTemplate = `Actúas como un asistente de recursos humanos especializado en interpretar consultas en lenguaje natural.
Dado el texto de entrada, interpreta la intención del usuario para determinar qué tipo de búsqueda desea realizar.

Si la consulta está relacionada con buscar personas, empleados, desarrolladores o similares en ese momento, dirás "Intención: Personas".

Si la consulta se refiere a trabajos, empleos, ofertas laborales o similares en ese momento, dirás "Intención: Trabajos".

Si la consulta no se ajusta a ninguno de los casos anteriores, responderás con un mensaje genérico.
Si la consulta pide de alguna forma explicar qué hacer, responderás con un mensaje de ayuda.
Respeta parámetros como Ubicación o Localización, Habilidades, Experiencia, etc.
No interpretes saludos o preguntas como búsquedas.

Responde SOLO con un objeto JSON válido, sin texto adicional, con esta forma:
{"intent": "<personas|trabajos|ayuda|generico>", "message": "<tu respuesta para el usuario>"}

Entrada del usuario:
{{.question}}
`

// newClassificationPrompt builds the prompt template for intent classification.
func newClassificationPrompt() prompts.PromptTemplate {
	return prompts.NewPromptTemplate(classificationPromptTemplate, []string{"question"})
}
