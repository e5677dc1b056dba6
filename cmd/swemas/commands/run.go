package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/swemas/internal/agent"
	"github.com/slok/swemas/internal/app/run"
	"github.com/slok/swemas/internal/conventions"
	"github.com/slok/swemas/internal/editor"
	"github.com/slok/swemas/internal/git"
	"github.com/slok/swemas/internal/harness"
	"github.com/slok/swemas/internal/llm/openai"
	"github.com/slok/swemas/internal/metrics"
	metricsprometheus "github.com/slok/swemas/internal/metrics/prometheus"
	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/storage"
	storageio "github.com/slok/swemas/internal/storage/io"
	"github.com/slok/swemas/internal/storage/logfile"
	"github.com/slok/swemas/internal/storage/sqlite"
	"github.com/slok/swemas/internal/taskapi"
	"github.com/slok/swemas/internal/tool"
	utilsenv "github.com/slok/swemas/internal/utils/env"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	configFile    string
	flags         model.RunConfig
	gitEnvSpecs   []string
	openAIAPIKey  string
	openAIBaseURL string
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Run the agents on benchmark tasks and evaluate them.")
	c.Cmd.Flag("index", "Task index to run (repeatable).").Short('i').IntsVar(&c.flags.Indexes)
	c.Cmd.Flag("config", "YAML run configuration file, flags override its values.").Short('c').StringVar(&c.configFile)
	c.Cmd.Flag("api-url", fmt.Sprintf("Test case service base URL (default %s).", conventions.DefaultAPIURL)).StringVar(&c.flags.APIURL)
	c.Cmd.Flag("harness-url", fmt.Sprintf("Test harness endpoint (default %s).", conventions.DefaultHarnessURL)).StringVar(&c.flags.HarnessURL)
	c.Cmd.Flag("repos-dir", "Directory where the task repositories are cloned (default <data-dir>/repos).").StringVar(&c.flags.ReposDir)
	c.Cmd.Flag("harness-repos-dir", fmt.Sprintf("Repositories dir as seen by the harness (default %s).", conventions.HarnessReposDir)).StringVar(&c.flags.HarnessReposDir)
	c.Cmd.Flag("results-log", fmt.Sprintf("Append only results log file (default %s).", conventions.ResultsLogFile)).StringVar(&c.flags.ResultsLog)
	c.Cmd.Flag("model", fmt.Sprintf("Model used by the agents (default %s).", openai.DefaultModel)).StringVar(&c.flags.Model)
	c.Cmd.Flag("step-limit", fmt.Sprintf("Maximum agent steps per task (default %d).", agent.DefaultStepLimit)).IntVar(&c.flags.StepLimit)
	c.Cmd.Flag("line-tools", "Give the coder the line editing tools.").BoolVar(&c.flags.LineTools)
	c.Cmd.Flag("git-env", "Extra git environment in KEY=VALUE or KEY (inherit) form (repeatable).").StringsVar(&c.gitEnvSpecs)
	c.Cmd.Flag("openai-api-key", "OpenAI API key.").Envar("OPENAI_API_KEY").StringVar(&c.openAIAPIKey)
	c.Cmd.Flag("openai-base-url", "OpenAI compatible API base URL (e.g. a LiteLLM proxy).").Envar("LITELLM_BASE_URL").StringVar(&c.openAIBaseURL)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Load run config from YAML if provided.
	var fileCfg model.RunConfig
	if c.configFile != "" {
		configPath, err := filepath.Abs(c.configFile)
		if err != nil {
			return fmt.Errorf("could not resolve run config path: %w", err)
		}

		configRepo := storageio.NewRunConfigYAMLRepository(os.DirFS("/"))
		fileCfg, err = configRepo.GetRunConfig(ctx, configPath[1:])
		if err != nil {
			return fmt.Errorf("could not load run config: %w", err)
		}
	}

	cliGitEnv, err := utilsenv.ParseSpecs(c.gitEnvSpecs)
	if err != nil {
		return fmt.Errorf("invalid --git-env value: %w", err)
	}

	cfg := resolveRunConfig(c.flags, fileCfg, c.rootCmd.DataDir)
	cfg.GitEnv = utilsenv.Merge(fileCfg.GitEnv, cliGitEnv)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid run config: %w", err)
	}
	if len(cfg.Indexes) == 0 {
		return fmt.Errorf("at least one task index is required (--index or config indexes)")
	}

	// Metrics.
	var recorder metrics.Recorder = metrics.Noop
	if c.rootCmd.MetricsRegisterer != nil {
		recorder, err = metricsprometheus.NewRecorder(c.rootCmd.MetricsRegisterer)
		if err != nil {
			return fmt.Errorf("could not create metrics recorder: %w", err)
		}
	}

	// Models.
	plannerModel, err := openai.NewClient(openai.ClientConfig{
		APIKey:         c.openAIAPIKey,
		BaseURL:        c.openAIBaseURL,
		Model:          cfg.Model,
		Role:           "planner",
		MetricRecorder: recorder,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create planner model: %w", err)
	}
	coderModel, err := openai.NewClient(openai.ClientConfig{
		APIKey:         c.openAIAPIKey,
		BaseURL:        c.openAIBaseURL,
		Model:          cfg.Model,
		Role:           "coder",
		MetricRecorder: recorder,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create coder model: %w", err)
	}

	// Tools.
	ws, err := editor.NewWorkspace(editor.WorkspaceConfig{
		Root:   cfg.ReposDir,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create workspace: %w", err)
	}
	readTools, err := tool.NewEditorSet(tool.EditorSetConfig{
		Editor:         ws,
		Kind:           tool.KindRead,
		MetricRecorder: recorder,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create read tools: %w", err)
	}
	writeTools, err := tool.NewEditorSet(tool.EditorSetConfig{
		Editor:         ws,
		Kind:           tool.KindReadWrite,
		LineTools:      cfg.LineTools,
		MetricRecorder: recorder,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create write tools: %w", err)
	}

	orchestrator, err := agent.NewOrchestrator(agent.OrchestratorConfig{
		PlannerModel: plannerModel,
		CoderModel:   coderModel,
		ReadTools:    readTools,
		WriteTools:   writeTools,
		StepLimit:    cfg.StepLimit,
		Prompts: agent.Prompts{
			Planner: cfg.PlannerPrompt,
			Coder:   cfg.CoderPrompt,
		},
		LineTools:      cfg.LineTools,
		MetricRecorder: recorder,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create orchestrator: %w", err)
	}

	// External services.
	testCases, err := taskapi.NewClient(taskapi.ClientConfig{
		BaseURL: cfg.APIURL,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create test case client: %w", err)
	}
	evaluator, err := harness.NewClient(harness.ClientConfig{
		URL:    cfg.HarnessURL,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create harness client: %w", err)
	}
	gitCLI, err := git.NewCLI(git.CLIConfig{
		Env:    cfg.GitEnv,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create git manager: %w", err)
	}

	// Run recording (results log and SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DatabasePath(),
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	resultsLog, err := logfile.NewWriter(logfile.WriterConfig{
		Path:   cfg.ResultsLog,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create results log: %w", err)
	}

	svc, err := run.NewService(run.ServiceConfig{
		TestCases:       testCases,
		Git:             gitCLI,
		Runner:          orchestrator,
		Evaluator:       evaluator,
		RunWriter:       storage.NewMultiRunWriter(resultsLog, repo),
		ReposDir:        cfg.ReposDir,
		HarnessReposDir: cfg.HarnessReposDir,
		MetricRecorder:  recorder,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, run.Request{Indexes: cfg.Indexes})
	if err != nil {
		return fmt.Errorf("could not run tasks: %w", err)
	}

	passed := 0
	for _, r := range resp.Runs {
		if r.AllPassed() {
			passed++
		}
	}
	logger.Infof("Finished %d tasks, %d passed all the tests", len(resp.Runs), passed)

	return nil
}

// resolveRunConfig merges the flag values on top of the config file ones and sets the
// defaults of what is still unset.
func resolveRunConfig(flags, file model.RunConfig, dataDir string) model.RunConfig {
	pick := func(values ...string) string {
		for _, v := range values {
			if v != "" {
				return v
			}
		}
		return ""
	}

	res := model.RunConfig{
		Indexes:         flags.Indexes,
		Model:           pick(flags.Model, file.Model, openai.DefaultModel),
		StepLimit:       flags.StepLimit,
		LineTools:       flags.LineTools || file.LineTools,
		APIURL:          pick(flags.APIURL, file.APIURL, conventions.DefaultAPIURL),
		HarnessURL:      pick(flags.HarnessURL, file.HarnessURL, conventions.DefaultHarnessURL),
		ReposDir:        pick(flags.ReposDir, file.ReposDir, filepath.Join(dataDir, conventions.ReposDir)),
		HarnessReposDir: pick(flags.HarnessReposDir, file.HarnessReposDir, conventions.HarnessReposDir),
		ResultsLog:      pick(flags.ResultsLog, file.ResultsLog, conventions.ResultsLogFile),
		PlannerPrompt:   pick(flags.PlannerPrompt, file.PlannerPrompt),
		CoderPrompt:     pick(flags.CoderPrompt, file.CoderPrompt),
	}
	if len(res.Indexes) == 0 {
		res.Indexes = file.Indexes
	}
	if res.StepLimit == 0 {
		res.StepLimit = file.StepLimit
	}
	if res.StepLimit == 0 {
		res.StepLimit = agent.DefaultStepLimit
	}

	return res
}
