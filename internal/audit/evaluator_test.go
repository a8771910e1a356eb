package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/internal/scoring"
)

func findingTexts(r models.CategoryResult) []string {
	texts := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		texts = append(texts, f.Text)
	}
	return texts
}

func TestIdentityAccessEvaluation(t *testing.T) {
	eval := NewEvaluator(IdentityAccessDefinition(), nil)

	result := eval.Evaluate(map[string]models.Answer{
		KeyMFAEnabled:             models.AnswerNo,
		KeyKeyRotation:            models.AnswerNo,
		KeyPrivilegedAccessReview: models.AnswerYes,
	})

	assert.Equal(t, CategoryIdentityAccess, result.Category)
	assert.Equal(t, 3.0, result.Score)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	assert.Equal(t, []string{
		"Multi-factor authentication is disabled.",
		"No key rotation policy detected.",
	}, findingTexts(result))
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "Enable MFA for all administrative and developer accounts.", result.Recommendations[0].Text)
	assert.Equal(t, []string{KeyMFAEnabled, KeyKeyRotation, KeyPrivilegedAccessReview}, result.Questions)
}

func TestIdentityAccessAllControlsMissing(t *testing.T) {
	eval := NewEvaluator(IdentityAccessDefinition(), nil)
	result := eval.Evaluate(map[string]models.Answer{
		KeyMFAEnabled:             "no",
		KeyKeyRotation:            "false",
		KeyPrivilegedAccessReview: models.AnswerNo,
	})
	assert.Equal(t, 1.0, result.Score)
	assert.Len(t, result.Findings, 3)
}

func TestFixedDeductionIgnoresAbsentAndUnknown(t *testing.T) {
	eval := NewEvaluator(RAGPrivacyDefinition(), nil)

	result := eval.Evaluate(map[string]models.Answer{
		KeyRAGSourcesPrivate: models.AnswerUnknown,
	})
	assert.Equal(t, 10.0, result.Score)
	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Empty(t, result.Findings)
	assert.NotNil(t, result.Findings, "empty findings serialize as []")
	assert.NotNil(t, result.Recommendations)
}

func TestRAGPrivacyEvaluation(t *testing.T) {
	eval := NewEvaluator(RAGPrivacyDefinition(), nil)
	result := eval.Evaluate(map[string]models.Answer{
		KeyRAGCachePurge:     models.AnswerNo,
		KeyRAGSourcesPrivate: models.AnswerNo,
		KeyPIIRedaction:      models.AnswerYes,
	})

	assert.Equal(t, 4.0, result.Score)
	assert.Equal(t, []string{
		"RAG model pulls from non-private or public sources.",
		"RAG retrieval cache not periodically cleared.",
	}, findingTexts(result), "findings follow rule declaration order")
}

func TestIntegrationsEvaluation(t *testing.T) {
	tests := []struct {
		answers      map[string]models.Answer
		name         string
		wantFindings []string
		wantScore    float64
	}{
		{
			name: "third party gates review and scope rules",
			answers: map[string]models.Answer{
				KeyThirdPartyIntegrations: models.AnswerNo,
				KeyIntegrationReviewed:    models.AnswerNo,
				KeyScopesLimited:          models.AnswerNo,
				KeyIntegrationLogging:     models.AnswerYes,
			},
			wantScore:    10,
			wantFindings: []string{},
		},
		{
			name: "third party integrations unreviewed",
			answers: map[string]models.Answer{
				KeyThirdPartyIntegrations: models.AnswerYes,
				KeyIntegrationReviewed:    models.AnswerNo,
				KeyScopesLimited:          models.AnswerNo,
				KeyIntegrationLogging:     models.AnswerNo,
			},
			wantScore: 2,
			wantFindings: []string{
				"Third-party integrations not security reviewed.",
				"Integrations have excessive permission scopes.",
				"No activity logging for integrated apps.",
			},
		},
		{
			name: "logging applies without third party",
			answers: map[string]models.Answer{
				KeyIntegrationLogging: models.AnswerNo,
			},
			wantScore:    7,
			wantFindings: []string{"No activity logging for integrated apps."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewEvaluator(IntegrationsDefinition(), nil).Evaluate(tt.answers)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantFindings, findingTexts(result))
		})
	}
}

func TestComplianceMFAUnknown(t *testing.T) {
	question := "Is MFA enforced for all admin and user accounts?"
	eval := NewEvaluator(ComplianceDefinition(), []string{question})

	result := eval.Evaluate(map[string]models.Answer{question: models.AnswerUnknown})

	require.Len(t, result.Findings, 1)
	assert.Equal(t, models.LevelHigh, result.Findings[0].Severity)
	assert.Contains(t, result.Findings[0].Text, "MFA")
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, models.LevelLow, result.Recommendations[0].Effort)
	assert.Equal(t, 5.0, result.Score)
	assert.Equal(t, []string{question}, result.Questions)
}

func TestComplianceRuleOrder(t *testing.T) {
	questions := []string{
		"Are embedding or log buckets public?",
		"Is MFA enforced for all admins?",
		"Is SSO MFA required for contractors?",
	}
	eval := NewEvaluator(ComplianceDefinition(), questions)

	result := eval.Evaluate(map[string]models.Answer{
		questions[0]: models.AnswerYes,
		questions[1]: models.AnswerNo,
		questions[2]: models.AnswerNo,
	})

	assert.Equal(t, []string{
		"MFA not enforced for admins/users.",
		"Public storage detected for logs/embeddings.",
	}, findingTexts(result), "one finding per rule, in rule order")
	assert.Equal(t, 3.33, result.Score)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
}

func TestComplianceNoMatches(t *testing.T) {
	questions := []string{"Is MFA enforced?", "Are buckets public?"}
	result := NewEvaluator(ComplianceDefinition(), questions).Evaluate(map[string]models.Answer{
		questions[0]: models.AnswerYes,
		questions[1]: models.AnswerNo,
	})
	assert.Empty(t, result.Findings)
	assert.Equal(t, 5.0, result.Score)
}

func TestEvaluateEmptyAnswers(t *testing.T) {
	averaged := NewEvaluator(ComplianceDefinition(), []string{"Is MFA enforced?"}).Evaluate(nil)
	assert.Equal(t, scoring.NeutralScore, averaged.Score)
	assert.Equal(t, models.RiskHigh, averaged.RiskLevel)
	assert.Empty(t, averaged.Findings)
	assert.NotNil(t, averaged.Answers)

	fixed := NewEvaluator(IdentityAccessDefinition(), nil).Evaluate(map[string]models.Answer{})
	assert.Equal(t, 10.0, fixed.Score)
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	answers := map[string]models.Answer{KeyMFAEnabled: "no"}
	result := NewEvaluator(IdentityAccessDefinition(), nil).Evaluate(answers)

	result.Answers[KeyMFAEnabled] = models.AnswerYes
	assert.Equal(t, models.Answer("no"), answers[KeyMFAEnabled], "answers are copied verbatim")
	assert.Len(t, answers, 1)
}

func TestKeyedLookupIsCaseInsensitive(t *testing.T) {
	result := NewEvaluator(IdentityAccessDefinition(), nil).Evaluate(map[string]models.Answer{
		"MFA_Enabled": models.AnswerNo,
	})
	assert.Equal(t, 6.0, result.Score)
}

func TestAgentSafetyEvaluation(t *testing.T) {
	questions := []string{
		"Do agent actions require human approval?",
		"Is there a tool allowlist per agent?",
		"Is generated code executed in a sandbox?",
	}
	result := NewEvaluator(AgentSafetyDefinition(), questions).Evaluate(map[string]models.Answer{
		questions[0]: models.AnswerUnknown,
		questions[1]: models.AnswerYes,
		questions[2]: models.AnswerNo,
	})

	assert.Equal(t, []string{
		"Agent actions run without human approval.",
		"Agent code execution is not sandboxed.",
	}, findingTexts(result))
	assert.Equal(t, 5.0, result.Score)
}

func TestQuestionsAreCopied(t *testing.T) {
	questions := []string{"Is MFA enforced?"}
	eval := NewEvaluator(ComplianceDefinition(), questions)
	questions[0] = "changed"
	assert.Equal(t, []string{"Is MFA enforced?"}, eval.Questions())
}

func TestEvaluatorWithoutQuestionsReportsAnsweredKeys(t *testing.T) {
	result := NewEvaluator(ComplianceDefinition(), nil).Evaluate(map[string]models.Answer{
		"Is MFA enforced?":    models.AnswerUnknown,
		"Are buckets public?": models.AnswerNo,
	})
	assert.Equal(t, []string{"Are buckets public?", "Is MFA enforced?"}, result.Questions)
	assert.Len(t, result.Findings, 1)

	generic := NewEvaluator(GenericDefinition("Custom"), nil).Evaluate(map[string]models.Answer{"b": models.AnswerYes, "a": models.AnswerNo})
	assert.Equal(t, []string{"a", "b"}, generic.Questions)

	empty := NewEvaluator(GenericDefinition("Custom"), nil).Evaluate(nil)
	assert.NotNil(t, empty.Questions)
	assert.Empty(t, empty.Questions)
}
