package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cplee/ecsdeploy/internal/config"
)

func TestBuild_Default(t *testing.T) {
	t.Parallel()

	plan, err := Build(config.Default())
	require.NoError(t, err)

	assert.Equal(t, "nest-recipes-app", plan.App)
	assert.Equal(t, "EcsServicePipeline", plan.PipelineName)
	assert.Equal(t, "cplee/riv-dop337", plan.Repository)
	assert.Equal(t, "main", plan.Branch)

	require.Len(t, plan.Waves, 2)
	assert.Equal(t, "Gamma", plan.Waves[0].Name)
	assert.Equal(t, "Production", plan.Waves[1].Name)

	var ids []string
	for _, s := range plan.Stages() {
		ids = append(ids, s.ID)
		assert.Equal(t, "464380571579", s.Account)
	}
	assert.Equal(t, []string{"GammaUsEast1", "GammaUsWest2", "ProdUsEast2", "ProdEuWest1"}, ids)

	pre := plan.Waves[0].Pre
	require.Len(t, pre, 4)
	for _, s := range pre {
		assert.Equal(t, StepShell, s.Kind)
		assert.NotEmpty(t, s.Commands)
	}

	e2e := plan.Waves[0].Stages[0].Post
	require.Len(t, e2e, 1)
	assert.Equal(t, map[string]string{"URL": config.OutputLoadBalancerURL}, e2e[0].EnvFromOutputs)
	assert.Equal(t, "aws://464380571579/us-east-1", plan.Waves[0].Stages[0].Environment())
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	_, err := Build(nil)
	assert.EqualError(t, err, "config is nil")

	cfg := config.Default()
	cfg.Pipeline.Waves = nil
	_, err = Build(cfg)
	assert.EqualError(t, err, "pipeline has no waves")

	cfg = config.Default()
	cfg.Pipeline.Waves[0].Stages = []config.Stage{{}}
	_, err = Build(cfg)
	assert.ErrorContains(t, err, "stage has neither name nor region")
}

func TestBuild_ApprovalStep(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Pipeline.Waves[1].Pre = []config.Step{{Name: "PromoteToProduction", Approval: "Ship it?"}}

	plan, err := Build(cfg)
	require.NoError(t, err)

	step := plan.Waves[1].Pre[0]
	assert.Equal(t, StepApproval, step.Kind)
	assert.Equal(t, "Ship it?", step.Comment)
	assert.Empty(t, step.Commands)
}

func TestBuild_CopiesSteps(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	plan, err := Build(cfg)
	require.NoError(t, err)

	cfg.Pipeline.Waves[0].Pre[0].Commands[0] = "changed"
	cfg.Pipeline.Waves[0].Stages[0].Post[0].EnvFromOutputs["URL"] = "changed"

	assert.Equal(t, "pip install semgrep", plan.Waves[0].Pre[0].Commands[0])
	assert.Equal(t, config.OutputLoadBalancerURL, plan.Waves[0].Stages[0].Post[0].EnvFromOutputs["URL"])
}

func TestPlan_Targets(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Pipeline.Waves[1].Stages[1].Account = "111111111111"
	cfg.Pipeline.Waves = append(cfg.Pipeline.Waves, config.Wave{
		Name:   "Canary",
		Stages: []config.Stage{{Name: "CanaryUsEast1", Account: "222222222222", Region: "us-east-1"}},
	})

	plan, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, []Target{
		{Account: "464380571579", Region: "us-east-1"},
		{Account: "464380571579", Region: "us-west-2"},
		{Account: "464380571579", Region: "us-east-2"},
		{Account: "111111111111", Region: "eu-west-1"},
		{Account: "222222222222", Region: "us-east-1"},
	}, plan.Targets())
	assert.Equal(t, []string{"464380571579", "111111111111", "222222222222"}, plan.Accounts())
	assert.True(t, plan.IsCrossAccount())
}

func TestPlan_Gates(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Pipeline.Waves[1].Pre = []config.Step{{Name: "Promote", Approval: "ok?"}}
	cfg.Pipeline.Waves[1].Post = []config.Step{{Name: "Notify", Commands: []string{"echo done"}}}

	plan, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, Gates{Security: 4, EndToEnd: 2, Approvals: 1, Other: 1}, plan.Gates())
	assert.False(t, plan.IsCrossAccount())
}

func TestPlan_BootstrapCommands(t *testing.T) {
	t.Parallel()

	plan, err := Build(config.Default())
	require.NoError(t, err)

	want := []string{
		"cdk bootstrap aws://464380571579/us-east-1",
		"cdk bootstrap aws://464380571579/us-west-2 --trust 464380571579 --cloudformation-execution-policies arn:aws:iam::aws:policy/AdministratorAccess",
		"cdk bootstrap aws://464380571579/us-east-2 --trust 464380571579 --cloudformation-execution-policies arn:aws:iam::aws:policy/AdministratorAccess",
		"cdk bootstrap aws://464380571579/eu-west-1 --trust 464380571579 --cloudformation-execution-policies arn:aws:iam::aws:policy/AdministratorAccess",
	}
	assert.Equal(t, want, plan.BootstrapCommands())
}

func TestPlan_BootstrapCommands_PipelineRegionNotATarget(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Pipeline.Region = "eu-central-1"

	plan, err := Build(cfg)
	require.NoError(t, err)

	cmds := plan.BootstrapCommands()
	require.Len(t, cmds, 5)
	assert.Equal(t, "cdk bootstrap aws://464380571579/eu-central-1", cmds[0])
	assert.Contains(t, cmds[1], "aws://464380571579/us-east-1 --trust")
}
