package environment

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/Veraticus/aishield/internal/audit"
	"github.com/Veraticus/aishield/internal/models"
	"github.com/Veraticus/aishield/pkg/logger"
)

// MaxAccessKeyAge is the rotation period access keys are held to.
const MaxAccessKeyAge = 90 * 24 * time.Hour

// IAMAPI is the subset of the IAM client used by IAMProbe.
type IAMAPI interface {
	GetAccountSummary(ctx context.Context, params *iam.GetAccountSummaryInput, optFns ...func(*iam.Options)) (*iam.GetAccountSummaryOutput, error)
	ListUsers(ctx context.Context, params *iam.ListUsersInput, optFns ...func(*iam.Options)) (*iam.ListUsersOutput, error)
	ListAccessKeys(ctx context.Context, params *iam.ListAccessKeysInput, optFns ...func(*iam.Options)) (*iam.ListAccessKeysOutput, error)
}

// IAMProbe derives Identity & Access answers from an AWS account.
type IAMProbe struct {
	client IAMAPI
	logger logger.Logger
	now    func() time.Time
}

// NewIAMProbe creates a probe over client.
func NewIAMProbe(client IAMAPI, log logger.Logger) *IAMProbe {
	return &IAMProbe{client: client, logger: log, now: time.Now}
}

// LoadAWSConfig resolves AWS credentials for profile and region. Empty values fall
// back to the SDK's default chain.
func LoadAWSConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	return cfg, nil
}

// IdentityAnswers answers mfa_enabled and key_rotation. privileged_access_review
// cannot be observed from IAM and is left absent.
func (p *IAMProbe) IdentityAnswers(ctx context.Context) (map[string]models.Answer, error) {
	answers := make(map[string]models.Answer, 2)

	summary, err := p.client.GetAccountSummary(ctx, &iam.GetAccountSummaryInput{})
	if err != nil {
		return nil, fmt.Errorf("getting account summary: %w", err)
	}
	if summary.SummaryMap["AccountMFAEnabled"] == 1 {
		answers[audit.KeyMFAEnabled] = models.AnswerYes
	} else {
		answers[audit.KeyMFAEnabled] = models.AnswerNo
	}

	stale, total, err := p.staleAccessKeys(ctx)
	if err != nil {
		return nil, err
	}
	if stale > 0 {
		answers[audit.KeyKeyRotation] = models.AnswerNo
	} else {
		answers[audit.KeyKeyRotation] = models.AnswerYes
	}

	p.logger.Info("Probed IAM account",
		"mfa_enabled", answers[audit.KeyMFAEnabled],
		"access_keys", total,
		"stale_access_keys", stale)

	return answers, nil
}

func (p *IAMProbe) staleAccessKeys(ctx context.Context) (stale, total int, err error) {
	cutoff := p.now().Add(-MaxAccessKeyAge)

	users := iam.NewListUsersPaginator(p.client, &iam.ListUsersInput{})
	for users.HasMorePages() {
		page, err := users.NextPage(ctx)
		if err != nil {
			return 0, 0, fmt.Errorf("listing users: %w", err)
		}
		for _, u := range page.Users {
			keys := iam.NewListAccessKeysPaginator(p.client, &iam.ListAccessKeysInput{UserName: u.UserName})
			for keys.HasMorePages() {
				kp, err := keys.NextPage(ctx)
				if err != nil {
					return 0, 0, fmt.Errorf("listing access keys for %s: %w", aws.ToString(u.UserName), err)
				}
				for _, k := range kp.AccessKeyMetadata {
					if k.Status != types.StatusTypeActive {
						continue
					}
					total++
					if k.CreateDate != nil && k.CreateDate.Before(cutoff) {
						stale++
					}
				}
			}
		}
	}
	return stale, total, nil
}
