package audit

import (
	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/internal/scoring"
)

// Built-in category names.
const (
	CategoryCompliance     = "Compliance"
	CategoryIdentityAccess = "Identity & Access"
	CategoryIntegrations   = "Integrations"
	CategoryRAGPrivacy     = "RAG Privacy"
	CategoryAgentSafety    = "Agent Safety"
)

// Well-known answer keys for keyed categories.
const (
	KeyMFAEnabled             = "mfa_enabled"
	KeyKeyRotation            = "key_rotation"
	KeyPrivilegedAccessReview = "privileged_access_review"

	KeyThirdPartyIntegrations = "third_party_integrations"
	KeyIntegrationReviewed    = "integration_reviewed"
	KeyScopesLimited          = "scopes_limited"
	KeyIntegrationLogging     = "integration_logging"

	KeyRAGSourcesPrivate = "rag_sources_private"
	KeyPIIRedaction      = "pii_redaction"
	KeyRAGCachePurge     = "rag_cache_purge"
)

var (
	onNo        = []models.Answer{models.AnswerNo}
	onYes       = []models.Answer{models.AnswerYes}
	onNoUnknown = []models.Answer{models.AnswerNo, models.AnswerUnknown}
)

func finding(text string, severity models.Level) *models.Finding {
	return &models.Finding{Text: text, Severity: severity}
}

func recommend(text string, effort models.Level) *models.Recommendation {
	return &models.Recommendation{Text: text, Effort: effort}
}

// ComplianceDefinition matches template question text and scores by averaging.
func ComplianceDefinition() Definition {
	return Definition{
		Name:   CategoryCompliance,
		Policy: scoring.AveragedYesNo{},
		Rules: []Rule{
			{
				Contains:       "mfa",
				Triggers:       onNoUnknown,
				Finding:        finding("MFA not enforced for admins/users.", models.LevelHigh),
				Recommendation: recommend("Enforce MFA via IdP or conditional access.", models.LevelLow),
			},
			{
				Contains:       "public",
				Triggers:       onYes,
				Finding:        finding("Public storage detected for logs/embeddings.", models.LevelHigh),
				Recommendation: recommend("Make buckets private and add KMS encryption.", models.LevelLow),
			},
		},
	}
}

// IdentityAccessDefinition deducts from 10 for missing identity controls.
func IdentityAccessDefinition() Definition {
	return Definition{
		Name:             CategoryIdentityAccess,
		Policy:           scoring.NewFixedDeduction(),
		DefaultQuestions: []string{KeyMFAEnabled, KeyKeyRotation, KeyPrivilegedAccessReview},
		Rules: []Rule{
			{
				Key:            KeyMFAEnabled,
				Triggers:       onNo,
				Penalty:        4,
				Finding:        finding("Multi-factor authentication is disabled.", models.LevelHigh),
				Recommendation: recommend("Enable MFA for all administrative and developer accounts.", models.LevelLow),
			},
			{
				Key:            KeyKeyRotation,
				Triggers:       onNo,
				Penalty:        3,
				Finding:        finding("No key rotation policy detected.", models.LevelMedium),
				Recommendation: recommend("Implement automatic key rotation every 90 days.", models.LevelMedium),
			},
			{
				Key:            KeyPrivilegedAccessReview,
				Triggers:       onNo,
				Penalty:        2,
				Finding:        finding("Privileged access reviews not in place.", models.LevelMedium),
				Recommendation: recommend("Establish periodic access reviews for privileged users.", models.LevelMedium),
			},
		},
	}
}

// IntegrationsDefinition deducts for unreviewed or over-scoped third-party integrations.
func IntegrationsDefinition() Definition {
	usesThirdParty := []Condition{{Key: KeyThirdPartyIntegrations, Is: models.AnswerYes}}

	return Definition{
		Name:   CategoryIntegrations,
		Policy: scoring.NewFixedDeduction(),
		DefaultQuestions: []string{
			KeyThirdPartyIntegrations,
			KeyIntegrationReviewed,
			KeyScopesLimited,
			KeyIntegrationLogging,
		},
		Rules: []Rule{
			{
				Key:            KeyIntegrationReviewed,
				Requires:       usesThirdParty,
				Triggers:       onNo,
				Penalty:        3,
				Finding:        finding("Third-party integrations not security reviewed.", models.LevelMedium),
				Recommendation: recommend("Perform security review for all connected integrations.", models.LevelMedium),
			},
			{
				Key:            KeyScopesLimited,
				Requires:       usesThirdParty,
				Triggers:       onNo,
				Penalty:        2,
				Finding:        finding("Integrations have excessive permission scopes.", models.LevelMedium),
				Recommendation: recommend("Restrict API scopes to minimum required privileges.", models.LevelLow),
			},
			{
				Key:            KeyIntegrationLogging,
				Triggers:       onNo,
				Penalty:        3,
				Finding:        finding("No activity logging for integrated apps.", models.LevelMedium),
				Recommendation: recommend("Enable audit logging for all third-party integrations.", models.LevelLow),
			},
		},
	}
}

// RAGPrivacyDefinition deducts for retrieval pipelines that leak or retain data.
func RAGPrivacyDefinition() Definition {
	return Definition{
		Name:             CategoryRAGPrivacy,
		Policy:           scoring.NewFixedDeduction(),
		DefaultQuestions: []string{KeyRAGSourcesPrivate, KeyPIIRedaction, KeyRAGCachePurge},
		Rules: []Rule{
			{
				Key:            KeyRAGSourcesPrivate,
				Triggers:       onNo,
				Penalty:        4,
				Finding:        finding("RAG model pulls from non-private or public sources.", models.LevelHigh),
				Recommendation: recommend("Restrict RAG data stores to approved private indexes only.", models.LevelMedium),
			},
			{
				Key:            KeyPIIRedaction,
				Triggers:       onNo,
				Penalty:        3,
				Finding:        finding("No PII redaction before RAG ingestion.", models.LevelHigh),
				Recommendation: recommend("Enable automated PII scrubbing or filtering in pipeline.", models.LevelMedium),
			},
			{
				Key:            KeyRAGCachePurge,
				Triggers:       onNo,
				Penalty:        2,
				Finding:        finding("RAG retrieval cache not periodically cleared.", models.LevelLow),
				Recommendation: recommend("Schedule automatic cache purges to limit data retention.", models.LevelLow),
			},
		},
	}
}

// AgentSafetyDefinition matches template question text about autonomous agents.
func AgentSafetyDefinition() Definition {
	return Definition{
		Name:   CategoryAgentSafety,
		Policy: scoring.AveragedYesNo{},
		Rules: []Rule{
			{
				Contains:       "approval",
				Triggers:       onNoUnknown,
				Finding:        finding("Agent actions run without human approval.", models.LevelHigh),
				Recommendation: recommend("Require human approval for destructive or external agent actions.", models.LevelMedium),
			},
			{
				Contains:       "allowlist",
				Triggers:       onNo,
				Finding:        finding("Agent tool access is not restricted to an allowlist.", models.LevelMedium),
				Recommendation: recommend("Define an explicit tool allowlist per agent.", models.LevelLow),
			},
			{
				Contains:       "sandbox",
				Triggers:       onNo,
				Finding:        finding("Agent code execution is not sandboxed.", models.LevelMedium),
				Recommendation: recommend("Run agent-generated code in an isolated sandbox.", models.LevelHigh),
			},
		},
	}
}

// GenericDefinition scores an undeclared category by averaging, with no rules.
func GenericDefinition(name string) Definition {
	return Definition{
		Name:   name,
		Policy: scoring.AveragedYesNo{},
	}
}
