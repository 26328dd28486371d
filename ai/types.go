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


package ai

// Markers the language backend is instructed to emit. Marker routing is the
// fallback when the backend does not return the structured JSON answer.
const (
	PeopleMarker = "Intención: Personas"
	JobsMarker   = "Intención: Trabajos"
)

// IntentLabels are the values accepted in the "intent" field of the
// structured classifier answer.
var IntentLabels = []string{
	"personas",
	"trabajos",
	"ayuda",
	"generico",
}
