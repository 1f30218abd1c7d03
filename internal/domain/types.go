package domain

import "time"

// Status tracks how far a project got through the bootstrap workflow.
type Status string

const (
	StatusScaffolded Status = "scaffolded" // skeleton rendered, no git history yet
	StatusCommitted  Status = "committed"  // initial commit recorded locally
	StatusPushed     Status = "pushed"     // history published to the remote
	StatusInstalled  Status = "installed"  // install hook completed
)

// AfterInstall returns a project's status once its install hook succeeds.
// Installed is only claimed for pushed projects, matching the bootstrap
// pipeline; earlier statuses are kept.
func AfterInstall(s Status) Status {
	if s == StatusPushed || s == StatusInstalled {
		return StatusInstalled
	}
	return s
}

// Project is a registry record for a project stencil has bootstrapped.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Path      string    `json:"path"`
	Remote    string    `json:"remote,omitempty"`
	Template  string    `json:"template"`
	Branch    string    `json:"branch"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Variable is a template variable declared in a manifest.
type Variable struct {
	Name     string `yaml:"name"`
	Prompt   string `yaml:"prompt,omitempty"`
	Default  string `yaml:"default,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

// Hooks are commands a template asks to be run after scaffolding.
// Only the install hook exists today; it defaults to "make install".
type Hooks struct {
	Install string `yaml:"install,omitempty"`
}

// Manifest describes a template: identity, declared variables and hooks.
// It is the parsed form of a template's stencil.yaml.
type Manifest struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Variables   []Variable `yaml:"variables,omitempty"`
	Hooks       Hooks      `yaml:"hooks,omitempty"`
}

// TemplateRef points at a usable template.
type TemplateRef struct {
	Name    string // manifest name
	Dir     string // absolute directory; empty for built-in templates
	BuiltIn bool
}

// StepAction records what the bootstrap pipeline did with a step.
type StepAction string

const (
	ActionRun      StepAction = "run"      // command executed
	ActionSkip     StepAction = "skip"     // already satisfied, nothing to do
	ActionPlan     StepAction = "plan"     // dry run: command printed, not executed
	ActionDisabled StepAction = "disabled" // turned off by flags/config
)

// StepResult is the outcome of a single bootstrap step.
type StepResult struct {
	Step   string
	Action StepAction
	Detail string
}

// Report collects step results for a full bootstrap run.
type Report struct {
	Steps []StepResult
}

// Add appends a step result and returns the report for chaining.
func (r *Report) Add(step string, action StepAction, detail string) {
	r.Steps = append(r.Steps, StepResult{Step: step, Action: action, Detail: detail})
}

// CheckStatus is the severity of a doctor check outcome.
type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// Check is one doctor probe result.
type Check struct {
	Name   string
	Status CheckStatus
	Detail string
}
