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


package session

import (
	"strings"
	"unicode"
)

// HelpText is the guidance shown when the user asks for help.
const HelpText = `### ¿Qué puedes buscar aquí?
- **Personas**: Busca por palabras clave, nombre, ubicación o experiencia.
  - Ejemplo: "Busca un Senior Developer con 5 años de experiencia en Python"
- **Trabajos**: Especifica títulos, ubicación y experiencia deseada.
  - Ejemplo: "Busca un Trabajo remoto en desarrollo de software con salario > 60k"`

// Prompt is the input placeholder shown by chat surfaces.
const Prompt = "Escribe tu consulta (Escribe 'ayuda' o 'que hacer' para recibir ayuda):"

var helpKeywords = []string{"ayuda", "que hacer", "qué hacer"}

// IsHelpRequest reports whether the query asks for guidance. Keywords match
// whole words only, so "ayudante" is not a help request.
func IsHelpRequest(query string) bool {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	text := " " + strings.Join(words, " ") + " "
	for _, kw := range helpKeywords {
		if strings.Contains(text, " "+kw+" ") {
			return true
		}
	}
	return false
}
