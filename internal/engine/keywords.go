package engine

import "strings"

// symptomKeywords is the fixed vocabulary gate shared by the free-text
// extractor and the question planner. Entries are stems so one entry covers
// inflections under substring matching ("sneez" covers sneeze/sneezing).
// The list is part of the engine contract, not a tunable.
var symptomKeywords = []string{
	"pain", "ache", "sore", "tender",
	"fever", "chill", "sweat",
	"cough", "sneez", "congest", "runny", "throat", "phlegm",
	"nausea", "vomit", "diarrhea", "constipat", "cramp", "bloat", "appetite",
	"fatigue", "tired", "weak", "dizz", "faint",
	"breath", "wheez", "chest", "palpitation",
	"rash", "itch", "swoll", "swelling", "burn",
	"numb", "tingl", "stiff", "bleed", "discharge",
	"gland", "nose", "sleep",
}

// matchesSymptomKeyword reports whether s contains any entry of the fixed
// symptom vocabulary. s is expected to be lowercased already.
func matchesSymptomKeyword(s string) bool {
	for _, kw := range symptomKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
