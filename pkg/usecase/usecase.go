package usecase

import (
	"github.com/m-mizutani/gollem"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/service/ratelimit"
	"github.com/remedian-lab/remedian/pkg/service/staging"
)

type UseCases struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient

	Confirmation *ConfirmationUseCase
	Agent        *AgentUseCase
}

type Option func(*UseCases)

func WithLLMClient(llmClient gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = llmClient
	}
}

func New(repo interfaces.Repository, store *staging.Store, limiter *ratelimit.Limiter, validator interfaces.Validator, advisor interfaces.DuplicateAdvisor, executor interfaces.Executor, confirmOpts []ConfirmationOption, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Confirmation = NewConfirmationUseCase(repo, store, limiter, validator, advisor, executor, confirmOpts...)
	if uc.llmClient != nil {
		uc.Agent = NewAgentUseCase(uc.Confirmation, uc.llmClient)
	}

	return uc
}
