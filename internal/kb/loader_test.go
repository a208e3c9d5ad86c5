package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preclinic/triage/internal/domain"
)

func TestBuild_TokenizesSymptomBlobs(t *testing.T) {
	built := Build([]domain.ConditionRecord{
		{Condition: "Strep Throat", Symptoms: "Sore throat. Fever; swollen glands\npainful swallowing"},
	})

	assert.Equal(t, []string{"Strep Throat"}, built.Conditions())
	assert.Equal(t,
		[]string{"sore throat", "fever", "swollen glands", "painful swallowing"},
		built.Tokens("Strep Throat"))
}

func TestBuild_DropsShortAndDuplicateTokens(t *testing.T) {
	built := Build([]domain.ConditionRecord{
		{Condition: "Flu", Symptoms: "fever; no; fever; FEVER; ."},
	})

	assert.Equal(t, []string{"fever"}, built.Tokens("Flu"))
}

func TestBuild_DuplicateLabelOverwritesKeepingPosition(t *testing.T) {
	built := Build([]domain.ConditionRecord{
		{Condition: "Flu", Symptoms: "fever"},
		{Condition: "Common Cold", Symptoms: "runny nose"},
		{Condition: "Flu", Symptoms: "cough; chills"},
	})

	assert.Equal(t, []string{"Flu", "Common Cold"}, built.Conditions())
	assert.Equal(t, []string{"cough", "chills"}, built.Tokens("Flu"))
}

func TestBuild_SkipsBlankLabels(t *testing.T) {
	built := Build([]domain.ConditionRecord{
		{Condition: "   ", Symptoms: "fever"},
		{Condition: "Flu", Symptoms: "fever"},
	})

	assert.Equal(t, []string{"Flu"}, built.Conditions())
}

func TestBuild_EmptyBlobYieldsEmptyTokenSet(t *testing.T) {
	built := Build([]domain.ConditionRecord{
		{Condition: "Mystery", Symptoms: ""},
	})

	assert.Equal(t, 1, built.Len())
	assert.Empty(t, built.Tokens("Mystery"))
}

func TestBuild_NoRecords(t *testing.T) {
	assert.True(t, Build(nil).Empty())
}
